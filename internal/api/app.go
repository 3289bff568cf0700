package api

import (
	"github.com/yourname/shammah/internal"
	"github.com/yourname/shammah/internal/storage"
)

type App interface {
	Logger() internal.Logger
	ProfileRepo() storage.ProfileRepository
	ResourceRepo() storage.ResourceRepository
}

// Server is the App backed by a set of repositories.
type Server struct {
	logger internal.Logger
	repos  *storage.Repositories
}

func NewServer(logger internal.Logger, repos *storage.Repositories) *Server {
	return &Server{logger: logger, repos: repos}
}

func (s *Server) Logger() internal.Logger                  { return s.logger }
func (s *Server) ProfileRepo() storage.ProfileRepository   { return s.repos.Profiles }
func (s *Server) ResourceRepo() storage.ResourceRepository { return s.repos.Resources }
