package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yourname/shammah/internal"
	"github.com/yourname/shammah/internal/api"
	"github.com/yourname/shammah/internal/auth"
	"github.com/yourname/shammah/internal/config"
	"github.com/yourname/shammah/internal/storage"
)

const demoUsers = `[
  {"id":"u1","token":"MOCK-TOKEN","name":"Demo User","role":"user"},
  {"id":"admin","token":"ADMIN-TOKEN","name":"Content Admin","role":"admin"}
]`

// seedUsers writes the demo users file on first start of a file-backed server.
func seedUsers(path string) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(demoUsers), 0o644)
}

func main() {
	cfg := config.Load()

	logger, err := internal.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if cfg.DBType == "file" {
		if err := seedUsers(cfg.FileUsers); err != nil {
			logger.Fatalf("failed to seed users file: %v", err)
		}
		if err := os.MkdirAll(filepath.Dir(cfg.FileProfiles), 0o755); err != nil {
			logger.Fatalf("failed to create data dir: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := storage.NewRepositories(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("failed to init storage: %v", err)
	}
	provider, err := auth.NewProvider(cfg, repos.Users, logger)
	if err != nil {
		logger.Fatalf("failed to init auth: %v", err)
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.NewRouter(api.NewServer(logger, repos), provider),
		ReadHeaderTimeout: cfg.RequestTimeout,
	}

	go func() {
		logger.Infof("Server running on %s (storage=%s, auth=%s)", cfg.Addr, cfg.DBType, cfg.AuthMode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("server shutdown: %v", err)
	}
	if err := repos.Closer.Close(); err != nil {
		logger.Errorf("failed to flush storage: %v", err)
	}
}
