package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/medisense-health/scheduler/internal/domain/entities"
	apperrors "github.com/medisense-health/scheduler/pkg/errors"
)

// BookingService defines the interface for booking wizard operations
type BookingService interface {
	CreateSession(ctx context.Context, symptoms string) *entities.BookingSession
	GetSession(id string) (*entities.BookingSession, error)
	AbandonSession(id string) error
	RecommendMode(severity *entities.SeverityContext) entities.ModeRecommendation
	ChooseAutoMode(ctx context.Context, sessionID string, req entities.DiscoveryRequest, hospitals []entities.Hospital) (*entities.BookingSession, error)
	ChooseManualMode(sessionID string) (*entities.BookingSession, error)
	PickHospital(sessionID string, hospital entities.Hospital) (*entities.BookingSession, error)
	PickSlot(sessionID string, slot entities.TimeSlot) (*entities.BookingSession, error)
	ConfirmStepAdvance(sessionID string) (*entities.BookingSession, error)
	ConfirmBooking(ctx context.Context, sessionID string) (*entities.BookingSession, error)
}

// BookingHandler handles booking wizard requests
type BookingHandler struct {
	service BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(service BookingService) *BookingHandler {
	return &BookingHandler{
		service: service,
	}
}

type sessionResponse struct {
	Session        *entities.BookingSession    `json:"session"`
	Recommendation entities.ModeRecommendation `json:"recommendation"`
}

func (h *BookingHandler) sessionPayload(session *entities.BookingSession) sessionResponse {
	return sessionResponse{
		Session:        session,
		Recommendation: h.service.RecommendMode(session.Severity),
	}
}

// CreateSession handles POST /api/sessions
func (h *BookingHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Symptoms string `json:"symptoms"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request payload")
			return
		}
	}

	session := h.service.CreateSession(r.Context(), req.Symptoms)
	respondWithJSON(w, http.StatusCreated, h.sessionPayload(session))
}

// GetSession handles GET /api/sessions/{id}
func (h *BookingHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.GetSession(r.PathValue("id"))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, h.sessionPayload(session))
}

// AbandonSession handles DELETE /api/sessions/{id}
func (h *BookingHandler) AbandonSession(w http.ResponseWriter, r *http.Request) {
	if err := h.service.AbandonSession(r.PathValue("id")); err != nil {
		respondWithServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ChooseAutoMode handles POST /api/sessions/{id}/auto
func (h *BookingHandler) ChooseAutoMode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Symptoms  string              `json:"symptoms"`
		Latitude  float64             `json:"latitude"`
		Longitude float64             `json:"longitude"`
		Hospitals []entities.Hospital `json:"hospitals"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request payload")
			return
		}
	}

	discoveryReq := entities.DiscoveryRequest{
		Symptoms:  req.Symptoms,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}

	session, err := h.service.ChooseAutoMode(r.Context(), r.PathValue("id"), discoveryReq, req.Hospitals)
	if err != nil {
		// A recoverable failure still carries the reset session so the
		// caller can render the notice.
		if session != nil && apperrors.IsType(err, apperrors.ErrorTypeNoCandidates) {
			respondWithJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
				"error":   err.Error(),
				"session": session,
			})
			return
		}
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, h.sessionPayload(session))
}

// ChooseManualMode handles POST /api/sessions/{id}/manual
func (h *BookingHandler) ChooseManualMode(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.ChooseManualMode(r.PathValue("id"))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, h.sessionPayload(session))
}

// PickHospital handles POST /api/sessions/{id}/hospital
func (h *BookingHandler) PickHospital(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Hospital entities.Hospital `json:"hospital"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if req.Hospital.Name == "" {
		respondWithError(w, http.StatusBadRequest, "hospital is required")
		return
	}

	session, err := h.service.PickHospital(r.PathValue("id"), req.Hospital)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, h.sessionPayload(session))
}

// PickSlot handles POST /api/sessions/{id}/slot
func (h *BookingHandler) PickSlot(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Slot entities.TimeSlot `json:"slot"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if req.Slot.Date == "" || req.Slot.Time == "" {
		respondWithError(w, http.StatusBadRequest, "slot date and time are required")
		return
	}

	session, err := h.service.PickSlot(r.PathValue("id"), req.Slot)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, h.sessionPayload(session))
}

// ConfirmStepAdvance handles POST /api/sessions/{id}/advance
func (h *BookingHandler) ConfirmStepAdvance(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.ConfirmStepAdvance(r.PathValue("id"))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, h.sessionPayload(session))
}

// ConfirmBooking handles POST /api/sessions/{id}/confirm
func (h *BookingHandler) ConfirmBooking(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.ConfirmBooking(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, h.sessionPayload(session))
}
