// Package service ties the web surface together: it holds the router, the
// logger, the loaded configuration and any other dependencies a handler
// needs, and offers route registration helpers.
//
// Dependencies are injected with the With... builder methods:
//
//	s := service.NewService(r).
//		WithLogger(logger).
//		WithDependency("generator", gen)
package service

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/remiges-tech/logharbour/logharbour"

	"github.com/remiges-tech/tally/config"
)

// Dependencies is a map to hold arbitrary dependencies. Assert the type of
// a dependency before using it because the value is of type any.
type Dependencies map[string]any

// Service is the core struct for a web service, holding essential
// components and optional dependencies.
type Service struct {
	Config       config.Config
	Router       *gin.Engine
	Logger       *logharbour.Logger
	Dependencies Dependencies
}

// NewService constructs a new Service over the given router.
func NewService(r *gin.Engine) *Service {
	return &Service{
		Router:       r,
		Dependencies: make(Dependencies),
	}
}

// WithConfig injects a configuration source into the Service.
func (s *Service) WithConfig(c config.Config) *Service {
	s.Config = c
	return s
}

// WithLogger injects a logger dependency into the Service.
func (s *Service) WithLogger(l *logharbour.Logger) *Service {
	s.Logger = l
	return s
}

// WithDependency injects an arbitrary dependency into the Service.
func (s *Service) WithDependency(key string, value any) *Service {
	if s.Dependencies == nil {
		s.Dependencies = make(Dependencies)
	}
	s.Dependencies[key] = value
	return s
}

// HandlerFunc is a function that handles a request. It receives the
// *gin.Context and the *Service it was registered on.
type HandlerFunc func(*gin.Context, *Service)

// RegisterRoute registers a single route directly on the service's engine.
func (s *Service) RegisterRoute(method, path string, handler HandlerFunc) {
	wrappedHandler := func(c *gin.Context) {
		handler(c, s)
	}
	switch method {
	case http.MethodGet:
		s.Router.GET(path, wrappedHandler)
	case http.MethodPost:
		s.Router.POST(path, wrappedHandler)
	case http.MethodPut:
		s.Router.PUT(path, wrappedHandler)
	case http.MethodDelete:
		s.Router.DELETE(path, wrappedHandler)
	default:
		log.Printf("Unsupported method: %s", method)
	}
}
