package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/medisense-health/scheduler/internal/application/services"
	"github.com/medisense-health/scheduler/internal/domain/entities"
)

// RecordService defines the interface for record store operations
type RecordService interface {
	List(ctx context.Context) ([]entities.AppointmentRecord, error)
	Get(ctx context.Context, id string) (*entities.AppointmentRecord, error)
	SetStatus(ctx context.Context, id string, status entities.RecordStatus) error
	Remove(ctx context.Context, id string) error
	RequestClear() string
	ConfirmClear(ctx context.Context, token string) error
	DeriveStatus(record entities.AppointmentRecord) entities.RecordStatus
	Stats(ctx context.Context) (entities.RecordStats, error)
	ExportArchive(ctx context.Context) ([]byte, error)
	ImportArchive(ctx context.Context, archive []byte) (int, error)
}

// RecordQueryService defines the interface for record filtering
type RecordQueryService interface {
	Query(records []entities.AppointmentRecord, criteria services.QueryCriteria) []entities.AppointmentRecord
}

// CalendarService defines the interface for iCalendar export
type CalendarService interface {
	Export(record entities.AppointmentRecord, now time.Time) ([]byte, error)
}

// RecordsHandler handles record store requests
type RecordsHandler struct {
	records  RecordService
	queries  RecordQueryService
	calendar CalendarService
}

// NewRecordsHandler creates a new records handler
func NewRecordsHandler(records RecordService, queries RecordQueryService, calendar CalendarService) *RecordsHandler {
	return &RecordsHandler{
		records:  records,
		queries:  queries,
		calendar: calendar,
	}
}

// recordView pairs a stored record with its derived status. The derived
// value is computed per response and never written back.
type recordView struct {
	entities.AppointmentRecord
	DerivedStatus entities.RecordStatus `json:"derivedStatus"`
}

// ListRecords handles GET /api/records
func (h *RecordsHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	records, err := h.records.List(r.Context())
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	query := r.URL.Query()
	criteria := services.QueryCriteria{
		Search:     query.Get("search"),
		Status:     query.Get("status"),
		DateBucket: query.Get("dateBucket"),
	}
	matched := h.queries.Query(records, criteria)

	views := make([]recordView, 0, len(matched))
	for _, record := range matched {
		views = append(views, recordView{
			AppointmentRecord: record,
			DerivedStatus:     h.records.DeriveStatus(record),
		})
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"records": views,
		"count":   len(views),
	})
}

// GetStats handles GET /api/records/stats
func (h *RecordsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.records.Stats(r.Context())
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, stats)
}

// UpdateStatus handles PATCH /api/records/{id}/status
func (h *RecordsHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status entities.RecordStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.records.SetStatus(r.Context(), r.PathValue("id"), req.Status); err != nil {
		respondWithServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteRecord handles DELETE /api/records/{id}
func (h *RecordsHandler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	if err := h.records.Remove(r.Context(), r.PathValue("id")); err != nil {
		respondWithServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RequestClear handles POST /api/records/clear
func (h *RecordsHandler) RequestClear(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{
		"token": h.records.RequestClear(),
	})
}

// ConfirmClear handles POST /api/records/clear/confirm
func (h *RecordsHandler) ConfirmClear(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.records.ConfirmClear(r.Context(), req.Token); err != nil {
		respondWithServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExportArchive handles GET /api/records/export
func (h *RecordsHandler) ExportArchive(w http.ResponseWriter, r *http.Request) {
	archive, err := h.records.ExportArchive(r.Context())
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="health-records.json"`)
	w.WriteHeader(http.StatusOK)
	w.Write(archive)
}

// ImportArchive handles POST /api/records/import
func (h *RecordsHandler) ImportArchive(w http.ResponseWriter, r *http.Request) {
	archive, err := io.ReadAll(r.Body)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	count, err := h.records.ImportArchive(r.Context(), archive)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]int{
		"imported": count,
	})
}

// ExportCalendarEvent handles GET /api/records/{id}/calendar.ics
func (h *RecordsHandler) ExportCalendarEvent(w http.ResponseWriter, r *http.Request) {
	record, err := h.records.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	event, err := h.calendar.Export(*record, time.Now())
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar")
	w.Header().Set("Content-Disposition", `attachment; filename="appointment.ics"`)
	w.WriteHeader(http.StatusOK)
	w.Write(event)
}
