package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/carecompass/backend/internal/infrastructure/observability"
	apperrors "github.com/carecompass/backend/pkg/errors"
)

const maxBodyBytes = 64 << 10

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithAppError maps service errors onto HTTP statuses.
func respondWithAppError(w http.ResponseWriter, r *http.Request, err error) {
	if appErr, ok := apperrors.As(err); ok {
		switch appErr.Type {
		case apperrors.ErrorTypeNotFound:
			respondWithError(w, http.StatusNotFound, appErr.Message)
			return
		case apperrors.ErrorTypeValidation:
			respondWithError(w, http.StatusBadRequest, appErr.Message)
			return
		case apperrors.ErrorTypeExternal:
			observability.LoggerFromContext(r.Context()).Error().Err(err).Msg("backing service failure")
			respondWithError(w, http.StatusBadGateway, appErr.Message)
			return
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		respondWithError(w, http.StatusGatewayTimeout, "request timed out")
		return
	}
	if errors.Is(err, context.Canceled) {
		// client went away; nobody reads this
		respondWithError(w, http.StatusServiceUnavailable, "request cancelled")
		return
	}

	observability.LoggerFromContext(r.Context()).Error().Err(err).Msg("unhandled error")
	respondWithError(w, http.StatusInternalServerError, "internal server error")
}

// decodeJSON reads a bounded JSON body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
