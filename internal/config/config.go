package config

import (
	"errors"
	"os"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env            string
	LogLevel       string
	Addr           string
	DBType         string
	DBDSN          string
	FileUsers      string
	FileProfiles   string
	FileResources  string
	AuthMode       string
	AuthToken      string
	AuthServiceURL string
	JWTSecret      string
	RequestTimeout time.Duration
}

var (
	cfg  *Config
	once sync.Once
)

// Load reads configuration once per process. A .env file in the working
// directory is applied first; real environment variables win over it.
func Load() *Config {
	once.Do(func() {
		_ = godotenv.Load()
		c, err := FromEnv()
		if err != nil {
			panic("Invalid config: " + err.Error())
		}
		cfg = c
	})
	return cfg
}

// FromEnv builds and validates a Config from the current environment.
func FromEnv() (*Config, error) {
	c := &Config{
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Addr:           getEnv("HTTP_ADDR", ":8088"),
		DBType:         getEnv("STORAGE_BACKEND", "file"),
		DBDSN:          getEnv("POSTGRES_DSN", ""),
		FileUsers:      getEnv("USERS_FILE", "data/users.json"),
		FileProfiles:   getEnv("PROFILES_FILE", "data/profiles.json"),
		FileResources:  getEnv("RESOURCES_FILE", "data/resources.json"),
		AuthMode:       getEnv("AUTH_MODE", "local"),
		AuthToken:      getEnv("AUTH_TOKEN", "MOCK-TOKEN"),
		AuthServiceURL: getEnv("AUTH_SERVICE_URL", ""),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		RequestTimeout: getDuration("REQUEST_TIMEOUT", 10*time.Second),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c.DBType != "file" && c.DBType != "postgres" {
		return errors.New("STORAGE_BACKEND must be one of: file, postgres")
	}
	if c.DBType == "postgres" && c.DBDSN == "" {
		return errors.New("POSTGRES_DSN is required when STORAGE_BACKEND=postgres")
	}
	if c.DBType == "file" && (c.FileProfiles == "" || c.FileResources == "") {
		return errors.New("File storage requires PROFILES_FILE and RESOURCES_FILE to be set")
	}
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return errors.New("APP_ENV must be one of: development, staging, production")
	}
	switch c.AuthMode {
	case "local":
		if c.Env == "production" {
			return errors.New("AUTH_MODE=local is not allowed in production")
		}
	case "jwt":
		if c.JWTSecret == "" {
			return errors.New("JWT_SECRET is required when AUTH_MODE=jwt")
		}
	case "remote":
		if c.AuthServiceURL == "" {
			return errors.New("AUTH_SERVICE_URL is required when AUTH_MODE=remote")
		}
	default:
		return errors.New("AUTH_MODE must be one of: local, jwt, remote")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
