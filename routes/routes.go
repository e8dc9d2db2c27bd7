package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/upb/llm-router/app"
	"github.com/upb/llm-router/handlers"
	"github.com/upb/llm-router/middleware"
	"github.com/upb/llm-router/utils"
)

// SetupRoutes configures all application routes and middleware
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()

	// Core middleware
	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Tracing)
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(chimw.Recoverer)

	// Outlasts the dispatch timeout so slow backends surface as a 504 timeout error
	r.Use(chimw.Timeout(requestTimeout(deps)))

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: deps.Config.Server.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID", "traceparent", "tracestate"},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	}))

	healthHandler := handlers.NewHealthHandler(deps.Logger)
	inferenceHandler := handlers.NewInferenceHandler(deps.InferenceService, deps.Logger)
	modelsHandler := handlers.NewModelsHandler(deps.Catalog.Models, deps.RoutingService, deps.Logger)

	// Health check endpoints
	r.Get("/health", healthHandler.HandleHealth)
	r.Get("/healthz", healthHandler.HandleHealth)

	// Routing API
	r.Post("/route", inferenceHandler.HandleRoute)
	r.Post("/chat", inferenceHandler.HandleChat)
	r.Get("/models", modelsHandler.HandleModels)

	if deps.Config.Observability.MetricsEnabled {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteError(w, http.StatusNotFound, "", "endpoint not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteError(w, http.StatusMethodNotAllowed, "", "method not allowed", nil)
	})

	return r
}

func requestTimeout(deps *app.Dependencies) time.Duration {
	return deps.Config.Dispatch.Timeout + 5*time.Second
}
