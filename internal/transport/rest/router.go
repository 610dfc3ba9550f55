package rest

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"kudoswall/internal/cache"
	"kudoswall/internal/config"
	"kudoswall/internal/logger"
	"kudoswall/internal/metrics"
	"kudoswall/internal/service"
	"kudoswall/internal/transport/rest/handler"
	"kudoswall/internal/transport/rest/middleware"
	"kudoswall/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	Config           *config.Config
	AuthService      *service.AuthService
	FormService      *service.FormService
	ResponseService  *service.ResponseService
	AnalyticsService *service.AnalyticsService
	InsightService   *service.InsightService
	UploadService    *service.UploadService
	HealthService    *service.HealthService
	RateLimiter      cache.RateLimiter // nil disables rate limiting
	WSHub            *ws.Hub
	Metrics          *metrics.Metrics
	Gatherer         prometheus.Gatherer
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()
	cfg := c.Config

	// Initialize handlers
	formHandler := handler.NewFormHandler(c.FormService)
	responseHandler := handler.NewResponseHandler(c.ResponseService, cfg.Server.EmbedScriptURL)
	analyticsHandler := handler.NewAnalyticsHandler(c.AnalyticsService)
	embedHandler := handler.NewEmbedHandler(c.ResponseService, cfg.Server.FrameAncestors, c.Metrics)
	insightHandler := handler.NewInsightHandler(c.InsightService)
	uploadHandler := handler.NewUploadHandler(c.UploadService, cfg.Storage.MaxUploadBytes)
	healthHandler := handler.NewHealthHandler(c.HealthService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService, c.FormService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)
	trustedProxies, err := cfg.Server.TrustedProxyPrefixes()
	if err != nil {
		logger.GetLogger().Warnw("Ignoring invalid trusted proxies", "error", err)
	}
	limit := middleware.RateLimit(c.RateLimiter, trustedProxies, "public", cfg.RateLimit.SubmissionsPerWindow, cfg.RateLimit.Window())

	r.Use(middleware.RequestLogger)
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	r.HandleFunc("/health", healthHandler.Check).Methods("GET")
	gatherer := c.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods("GET")

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/forms/{formId}/public", formHandler.Public).Methods("GET", "OPTIONS")
	v1.HandleFunc("/responses/{id}", responseHandler.Embed).Methods("GET", "OPTIONS")
	v1.HandleFunc("/embed/{responseId}", embedHandler.Document).Methods("GET")
	v1.HandleFunc("/embed/{responseId}/fragment", embedHandler.Fragment).Methods("GET", "OPTIONS")

	// Public writes (rate limited per form and client IP)
	limited := v1.NewRoute().Subrouter()
	limited.Use(limit)
	limited.HandleFunc("/forms/{formId}/responses", responseHandler.Submit).Methods("POST", "OPTIONS")
	limited.HandleFunc("/forms/{formId}/suggestions", formHandler.AddSuggestion).Methods("POST", "OPTIONS")
	limited.HandleFunc("/uploads/images", uploadHandler.Image).Methods("POST", "OPTIONS")

	// WebSocket routes (owner token in query param)
	v1.HandleFunc("/ws/forms/{formId}", wsHandler.FormFeed).Methods("GET")

	// Owner routes (require owner auth)
	ownerRoutes := v1.NewRoute().Subrouter()
	ownerRoutes.Use(authMW.RequireOwner)
	ownerRoutes.Use(middleware.RequireMatchingUserRef)

	ownerRoutes.HandleFunc("/analytics", analyticsHandler.Summary).Methods("GET", "OPTIONS")
	ownerRoutes.HandleFunc("/analytics/overtime", analyticsHandler.OverTime).Methods("GET", "OPTIONS")
	ownerRoutes.HandleFunc("/analytics/engagement", analyticsHandler.Engagement).Methods("GET", "OPTIONS")
	ownerRoutes.HandleFunc("/forms/compare", analyticsHandler.Compare).Methods("GET", "OPTIONS")
	ownerRoutes.HandleFunc("/forms", formHandler.Create).Methods("POST", "OPTIONS")
	ownerRoutes.HandleFunc("/forms", formHandler.List).Methods("GET", "OPTIONS")
	ownerRoutes.HandleFunc("/forms/{formId}", formHandler.Get).Methods("GET", "OPTIONS")
	ownerRoutes.HandleFunc("/forms/{formId}/questions", formHandler.UpdateQuestions).Methods("PUT", "OPTIONS")
	ownerRoutes.HandleFunc("/forms/{formId}/responses", responseHandler.List).Methods("GET", "OPTIONS")
	ownerRoutes.HandleFunc("/forms/{formId}/metrics", analyticsHandler.FormMetrics).Methods("GET", "OPTIONS")
	ownerRoutes.HandleFunc("/forms/{formId}/insights", insightHandler.Generate).Methods("POST", "OPTIONS")
	ownerRoutes.HandleFunc("/responses/{id}/snippet", responseHandler.Snippet).Methods("GET", "OPTIONS")
	ownerRoutes.HandleFunc("/responses/{id}/spam", responseHandler.SetSpam).Methods("PATCH", "OPTIONS")

	return r
}
