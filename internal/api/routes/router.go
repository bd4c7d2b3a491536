package routes

import (
	"net/http"

	"github.com/medisense-health/scheduler/internal/api/handlers"
	"github.com/medisense-health/scheduler/internal/api/middleware"
	"github.com/medisense-health/scheduler/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	bookingHandler   *handlers.BookingHandler
	hospitalsHandler *handlers.HospitalsHandler
	recordsHandler   *handlers.RecordsHandler

	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	bookingHandler *handlers.BookingHandler,
	hospitalsHandler *handlers.HospitalsHandler,
	recordsHandler *handlers.RecordsHandler,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		bookingHandler:   bookingHandler,
		hospitalsHandler: hospitalsHandler,
		recordsHandler:   recordsHandler,

		metrics: metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Booking session endpoints
	r.mux.HandleFunc("POST /api/sessions", r.bookingHandler.CreateSession)
	r.mux.HandleFunc("GET /api/sessions/{id}", r.bookingHandler.GetSession)
	r.mux.HandleFunc("DELETE /api/sessions/{id}", r.bookingHandler.AbandonSession)
	r.mux.HandleFunc("POST /api/sessions/{id}/auto", r.bookingHandler.ChooseAutoMode)
	r.mux.HandleFunc("POST /api/sessions/{id}/manual", r.bookingHandler.ChooseManualMode)
	r.mux.HandleFunc("POST /api/sessions/{id}/hospital", r.bookingHandler.PickHospital)
	r.mux.HandleFunc("POST /api/sessions/{id}/slot", r.bookingHandler.PickSlot)
	r.mux.HandleFunc("POST /api/sessions/{id}/advance", r.bookingHandler.ConfirmStepAdvance)
	r.mux.HandleFunc("POST /api/sessions/{id}/confirm", r.bookingHandler.ConfirmBooking)

	// Hospital discovery endpoint
	r.mux.HandleFunc("GET /api/hospitals", r.hospitalsHandler.ListHospitals)

	// Record store endpoints
	r.mux.HandleFunc("GET /api/records", r.recordsHandler.ListRecords)
	r.mux.HandleFunc("GET /api/records/stats", r.recordsHandler.GetStats)
	r.mux.HandleFunc("PATCH /api/records/{id}/status", r.recordsHandler.UpdateStatus)
	r.mux.HandleFunc("DELETE /api/records/{id}", r.recordsHandler.DeleteRecord)
	r.mux.HandleFunc("POST /api/records/clear", r.recordsHandler.RequestClear)
	r.mux.HandleFunc("POST /api/records/clear/confirm", r.recordsHandler.ConfirmClear)
	r.mux.HandleFunc("GET /api/records/export", r.recordsHandler.ExportArchive)
	r.mux.HandleFunc("POST /api/records/import", r.recordsHandler.ImportArchive)
	r.mux.HandleFunc("GET /api/records/{id}/calendar.ics", r.recordsHandler.ExportCalendarEvent)

	// Apply middleware in reverse order (last middleware wraps first).
	// CORS must be outermost so error responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
