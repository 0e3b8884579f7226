// Package api exposes the screen routes as the local HTTP surface of
// the client. Handlers are thin view glue: they read session state,
// talk to the backend through the catalog service, and return JSON
// view models in the response envelope.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shopboxapp/shopbox-client/internal/catalog"
	"github.com/shopboxapp/shopbox-client/internal/http/response"
	"github.com/shopboxapp/shopbox-client/internal/session"
	"github.com/shopboxapp/shopbox-client/internal/store"
	"github.com/shopboxapp/shopbox-client/internal/validation"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	session   *session.Session
	catalog   *catalog.Service
	store     *store.Store
	validator *validation.Validator
	registry  *prometheus.Registry
	router    *chi.Mux
	logger    *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(sess *session.Session, cat *catalog.Service, st *store.Store, validator *validation.Validator, registry *prometheus.Registry, logger *slog.Logger) *Server {
	s := &Server{
		session:   sess,
		catalog:   cat,
		store:     st,
		validator: validator,
		registry:  registry,
		router:    chi.NewRouter(),
		logger:    logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

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
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "Authorization"},
	}))
	s.router.Use(s.tenantContext)
}

// setupRoutes configures all HTTP routes. Screen routes mirror the
// storefront navigation; owner-only screens check the session flag in
// their handlers, the router does not enforce it.
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealthCheck)
	s.router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	s.router.Get("/", s.handleRoot)
	s.router.Get("/welcome", s.handleWelcomeScreen)
	s.router.Get("/oups", s.handleNotFoundScreen)
	s.router.Put("/theme", s.handleSetTheme)

	s.router.Route("/{tenantID}", func(r chi.Router) {
		r.Get("/", s.handleHome)
		r.Get("/search", s.handleSearch)
		r.Get("/card/{itemID}", s.handleCardRedirect)

		r.Get("/cart", s.handleCart)
		r.Post("/cart", s.handleCartAdd)
		r.Delete("/cart/{lineID}", s.handleCartRemove)
		r.Post("/cart/checkout", s.handleCheckout)
		r.Post("/hint", s.handleHint)
		r.Post("/tap", s.handleTap)

		// Owner screens.
		r.Get("/add", s.handleAddScreen)
		r.Post("/add", s.handleCreateCard)
		r.Get("/edit/{itemID}", s.handleEditScreen)
		r.Put("/edit/{itemID}", s.handleUpdateCard)
		r.Delete("/edit/{itemID}", s.handleDeleteCard)
		r.Post("/edit/{itemID}/images", s.handleAddImage)
		r.Delete("/edit/{itemID}/images/{imageID}", s.handleDeleteImage)
		r.Get("/settings", s.handleGetSettings)
		r.Put("/settings", s.handleUpdateSettings)
		r.Post("/settings/logo", s.handleUploadLogo)
	})

	s.router.NotFound(s.handleNotFoundScreen)
}

// handleHealthCheck returns server health status.
func (s *Server) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]any{
		"status":    "healthy",
		"connected": s.session.Connected(),
	}, s.logger)
}

// handleRoot redirects to the persisted tenant's storefront when one is
// stored, else to the not-found screen.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if id := s.store.BusinessID(); id != "" {
		http.Redirect(w, r, "/"+id, http.StatusFound)
		return
	}
	http.Redirect(w, r, "/oups", http.StatusFound)
}
