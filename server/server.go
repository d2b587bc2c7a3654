package server

import (
	"net/http"

	"github.com/booksight/qbo-connect/authflow"
	"github.com/booksight/qbo-connect/connections"
	"github.com/booksight/qbo-connect/internal/config"
	"github.com/booksight/qbo-connect/qbo"
	"github.com/booksight/qbo-connect/users"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Deps holds the core components the thin handlers call into.
type Deps struct {
	Users       users.UserRepo
	Connections connections.Repo
	Flow        *authflow.Service
	Lifecycle   *qbo.Lifecycle

	// ClientOptions are applied to every qbo.Client the handlers build
	// (primarily for testing against a stub provider).
	ClientOptions []qbo.ClientOption
}

type Server struct {
	env    string
	mux    *http.ServeMux
	routes []string
	config config.Config
	deps   Deps
}

func New(cfg config.Config, deps Deps) (*Server, error) {
	if deps.Users == nil {
		return nil, errors.New("[Server New] Users repo is required")
	}
	if deps.Connections == nil {
		return nil, errors.New("[Server New] Connections repo is required")
	}
	if deps.Flow == nil {
		return nil, errors.New("[Server New] authorization flow service is required")
	}
	if deps.Lifecycle == nil {
		return nil, errors.New("[Server New] token lifecycle manager is required")
	}

	s := &Server{
		env:    cfg.GetEnv(),
		mux:    http.NewServeMux(),
		config: cfg,
		deps:   deps,
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	for _, route := range s.routes {
		log.Debug().Str("route", route).Msg("registered route")
	}
}
