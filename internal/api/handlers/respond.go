package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "github.com/medisense-health/scheduler/pkg/errors"
)

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithServiceError maps the error taxonomy onto HTTP statuses.
func respondWithServiceError(w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	switch appErr.Type {
	case apperrors.ErrorTypeFormat, apperrors.ErrorTypeValidation:
		respondWithError(w, http.StatusBadRequest, appErr.Message)
	case apperrors.ErrorTypeNotFound:
		respondWithError(w, http.StatusNotFound, appErr.Message)
	case apperrors.ErrorTypeIllegalState, apperrors.ErrorTypeDuplicateID:
		respondWithError(w, http.StatusConflict, appErr.Message)
	case apperrors.ErrorTypeNoCandidates:
		respondWithError(w, http.StatusUnprocessableEntity, appErr.Message)
	case apperrors.ErrorTypeExternal:
		respondWithError(w, http.StatusBadGateway, appErr.Message)
	default:
		respondWithError(w, http.StatusInternalServerError, appErr.Message)
	}
}
