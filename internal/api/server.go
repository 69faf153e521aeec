// Package api provides the HTTP API server and handlers for the Gatherly application.
package api

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/gatherly/gatherly-server/internal/config"
	"github.com/gatherly/gatherly-server/internal/geocode"
	"github.com/gatherly/gatherly-server/internal/logger"
	"github.com/gatherly/gatherly-server/internal/media/images"
	"github.com/gatherly/gatherly-server/internal/ratelimit"
	"github.com/gatherly/gatherly-server/internal/service"
	"github.com/gatherly/gatherly-server/internal/store"
	"github.com/gatherly/gatherly-server/internal/validation"
)

// apiVersion is reported in the OpenAPI spec and the health endpoint.
const apiVersion = "1.0.0"

// Services bundles the service layer dependencies for handlers.
type Services struct {
	Auth     *service.AuthService
	Event    *service.EventService
	Tag      *service.TagService
	Favorite *service.FavoriteService
	Search   *service.SearchService
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	config      *config.Config
	store       store.Store
	services    *Services
	geocoder    *geocode.Client
	images      *images.Storage
	processor   *images.Processor
	validate    *validation.Validator
	authLimiter *ratelimit.KeyedRateLimiter
	router      *chi.Mux
	api         huma.API
	logger      *logger.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(cfg *config.Config, st store.Store, services *Services, geocoder *geocode.Client, imageStore *images.Storage, processor *images.Processor, log *logger.Logger) *Server {
	s := &Server{
		config:    cfg,
		store:     st,
		services:  services,
		geocoder:  geocoder,
		images:    imageStore,
		processor: processor,
		validate:  validation.New(),
		// Credential endpoints get 1 request/sec with a small burst per key.
		authLimiter: ratelimit.New(1, 5),
		router:      chi.NewRouter(),
		logger:      log,
	}

	s.setupMiddleware()

	humaConfig := huma.DefaultConfig(cfg.Server.Name+" API", apiVersion)
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.registerHealthRoutes()
	s.registerAuthRoutes()
	s.registerEventRoutes()
	s.registerTagRoutes()
	s.registerFavoriteRoutes()
	s.registerSearchRoutes()
	s.registerGeocodeRoutes()
	s.registerImageRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))

	if len(s.config.Server.CORSOrigins) > 0 {
		s.router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.config.Server.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}
}
