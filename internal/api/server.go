// Package api provides the HTTP API server and handlers for the KitBoard dashboard.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/kitboardapp/kitboard-server/internal/auth"
	"github.com/kitboardapp/kitboard-server/internal/ratelimit"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	services *Services
	guard    *auth.Guard
	router   *chi.Mux
	api      huma.API
	logger   *slog.Logger

	// writeLimiter throttles mutating requests per client IP.
	writeLimiter *ratelimit.KeyedLimiter
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(services *Services, guard *auth.Guard, logger *slog.Logger) *Server {
	s := &Server{
		services:     services,
		guard:        guard,
		router:       chi.NewRouter(),
		logger:       logger,
		writeLimiter: NewRateLimiter(30, time.Minute, 10),
	}

	s.setupMiddleware()

	humaConfig := huma.DefaultConfig("KitBoard API", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:   "http",
			Scheme: "bearer",
		},
	}
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.registerHealthRoutes()
	s.registerBookingRoutes()
	s.registerCuratedListRoutes()
	s.registerOverrideRoutes()
	s.registerAuditRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	s.router.Use(WriteRateLimitMiddleware(s.writeLimiter, s.logger))
}
