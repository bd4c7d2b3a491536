package handlers

import (
	"net/http"
	"strconv"

	"github.com/medisense-health/scheduler/internal/domain/entities"
	"github.com/medisense-health/scheduler/internal/domain/providers"
)

// HospitalsHandler exposes the discovery collaborator's candidate list
type HospitalsHandler struct {
	discovery providers.HospitalDiscoveryProvider
}

// NewHospitalsHandler creates a new hospitals handler
func NewHospitalsHandler(discovery providers.HospitalDiscoveryProvider) *HospitalsHandler {
	return &HospitalsHandler{
		discovery: discovery,
	}
}

// ListHospitals handles GET /api/hospitals
func (h *HospitalsHandler) ListHospitals(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := entities.DiscoveryRequest{
		Symptoms: query.Get("symptoms"),
	}
	if raw := query.Get("lat"); raw != "" {
		lat, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid lat parameter")
			return
		}
		req.Latitude = lat
	}
	if raw := query.Get("lng"); raw != "" {
		lng, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid lng parameter")
			return
		}
		req.Longitude = lng
	}

	hospitals, err := h.discovery.FindNearby(r.Context(), req)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"hospitals": hospitals,
		"count":     len(hospitals),
	})
}
