package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"scamshield/internal/api/handlers"
	apimiddleware "scamshield/internal/api/middleware"
	"scamshield/internal/config"
	"scamshield/internal/infrastructure/cache"
	"scamshield/internal/metrics"
	"scamshield/pkg/logger"
)

// Router holds dependencies for the API router
type Router struct {
	config   config.Config
	handlers *handlers.Handlers
	cache    cache.Store
	metrics  *metrics.Metrics
	logger   *logger.Logger
}

// NewRouter creates a new Router instance. c and m may be nil.
func NewRouter(cfg config.Config, h *handlers.Handlers, c cache.Store, m *metrics.Metrics, log *logger.Logger) *Router {
	return &Router{
		config:   cfg,
		handlers: h,
		cache:    c,
		metrics:  m,
		logger:   log.WithComponent("router"),
	}
}

// Setup sets up the Chi router with all routes and middleware
func (r *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Core middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(apimiddleware.Logger(r.logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(90 * time.Second))

	// CORS
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   r.config.CORS.AllowedOrigins,
		AllowedMethods:   r.config.CORS.AllowedMethods,
		AllowedHeaders:   r.config.CORS.AllowedHeaders,
		AllowCredentials: r.config.CORS.AllowCredentials,
		MaxAge:           r.config.CORS.MaxAge,
	}))

	router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		apimiddleware.WriteError(w, http.StatusNotFound, apimiddleware.ErrorTypeNotFound, "route not found")
	})

	// Public routes
	router.Group(func(pub chi.Router) {
		pub.Get("/health", r.handlers.Health.Check)
		pub.Get("/ready", r.handlers.Health.Ready)
		if r.metrics != nil {
			pub.Handle("/metrics", r.metrics.Handler())
		}
	})

	router.Route("/api/v1", func(api chi.Router) {
		api.Use(apimiddleware.BearerToken)

		// Rate limiting
		if r.config.RateLimit.Enabled && r.cache != nil {
			api.Use(apimiddleware.RateLimiter(r.cache, r.config.RateLimit, r.logger))
		}

		api.Route("/scan", func(scan chi.Router) {
			scan.Post("/url", r.handlers.Scan.URL)
			scan.Post("/url/batch", r.handlers.Scan.URLBatch)
			scan.Post("/text", r.handlers.Scan.Text)
			scan.Post("/screenshot", r.handlers.Scan.Screenshot)
			scan.Post("/audio", r.handlers.Scan.Audio)
		})

		api.Post("/chat", r.handlers.Chat.Ask)
		api.Get("/chat/tips", r.handlers.Chat.Tips)

		api.Route("/community", func(community chi.Router) {
			community.Post("/report", r.handlers.Community.Submit)
			community.Get("/reports", r.handlers.Community.List)
			community.Get("/warning", r.handlers.Community.Warning)
		})

		api.Post("/report", r.handlers.Relay.SubmitReport)
		api.Post("/feedback", r.handlers.Relay.SubmitFeedback)

		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/signup", r.handlers.Auth.Signup)
			auth.Post("/login", r.handlers.Auth.Login)
			auth.With(apimiddleware.RequireToken).Get("/me", r.handlers.Auth.Me)
		})

		// Authenticated listings
		api.Group(func(protected chi.Router) {
			protected.Use(apimiddleware.RequireToken)
			protected.Get("/reports", r.handlers.Relay.Reports)
			protected.Get("/feedback/stats", r.handlers.Relay.FeedbackStats)
		})

		api.Get("/backend/health", r.handlers.Health.Backend)
	})

	return router
}
