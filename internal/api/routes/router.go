package routes

import (
	"net/http"

	"github.com/carecompass/backend/internal/api/handlers"
	"github.com/carecompass/backend/internal/api/middleware"
	"github.com/carecompass/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	concernHandler *handlers.ConcernHandler
	doctorHandler  *handlers.DoctorHandler
	catalogHandler *handlers.CatalogHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
	allowedOrigins  []string
}

// NewRouter creates a new router. cacheMiddleware and metrics may be nil.
func NewRouter(
	concernHandler *handlers.ConcernHandler,
	doctorHandler *handlers.DoctorHandler,
	catalogHandler *handlers.CatalogHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
	allowedOrigins []string,
) *Router {
	return &Router{
		mux:             http.NewServeMux(),
		concernHandler:  concernHandler,
		doctorHandler:   doctorHandler,
		catalogHandler:  catalogHandler,
		cacheMiddleware: cacheMiddleware,
		metrics:         metrics,
		allowedOrigins:  allowedOrigins,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Symptom analyzer
	r.mux.HandleFunc("GET /api/symptoms", r.catalogHandler.ListSymptoms)
	r.mux.HandleFunc("POST /api/concerns/analyze", r.concernHandler.AnalyzeConcern)
	r.mux.HandleFunc("GET /api/concerns/recent", r.concernHandler.ListRecentConcerns)
	r.mux.HandleFunc("POST /api/concerns/{id}/feedback", r.concernHandler.SubmitFeedback)

	// Doctor finder
	r.mux.HandleFunc("GET /api/doctors", r.doctorHandler.FindDoctors)
	r.mux.HandleFunc("GET /api/doctors/specialties", r.doctorHandler.ListSpecialties)
	r.mux.HandleFunc("POST /api/appointments", r.doctorHandler.ScheduleAppointment)

	r.mux.HandleFunc("GET /api/catalog/version", r.catalogHandler.Version)

	// Innermost first. Nothing between the observability middleware and the
	// mux may replace the request, or the matched pattern is lost.
	var handler http.Handler = r.mux

	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.Session(handler)
	handler = middleware.CacheControl(middleware.Compression(handler))

	// CORS wraps everything so headers are set even on cache HITs
	handler = middleware.CORS(r.allowedOrigins)(handler)

	return handler
}
