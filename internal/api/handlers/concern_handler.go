package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/carecompass/backend/internal/api/middleware"
	"github.com/carecompass/backend/internal/application/services"
	"github.com/carecompass/backend/internal/domain/entities"
	"github.com/carecompass/backend/internal/domain/providers"
)

const (
	maxConcernLength = 2000
	maxSelectedTags  = 20
)

// ConcernService defines the health concern operations used by the handler.
type ConcernService interface {
	Analyze(ctx context.Context, sessionID, concern string, selectedTags []string) (*services.ConcernAnalysis, error)
	RecentConcerns(ctx context.Context, sessionID string) ([]*entities.HealthConcern, error)
	SubmitFeedback(ctx context.Context, sessionID, concernID string, helpful bool) (*entities.Acknowledgement, error)
}

// ConcernHandler serves the symptom analyzer and recent concerns.
type ConcernHandler struct {
	service ConcernService
	limiter *feedbackLimiter
}

// NewConcernHandler creates a new concern handler. cache backs the feedback
// rate limit and may be nil.
func NewConcernHandler(service ConcernService, cache providers.CacheProvider) *ConcernHandler {
	return &ConcernHandler{
		service: service,
		limiter: newFeedbackLimiter(cache),
	}
}

type analyzeRequest struct {
	Concern          string   `json:"concern"`
	SelectedSymptoms []string `json:"selectedSymptoms"`
}

// AnalyzeConcern handles POST /api/concerns/analyze
func (h *ConcernHandler) AnalyzeConcern(w http.ResponseWriter, r *http.Request) {
	var payload analyzeRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if utf8.RuneCountInString(payload.Concern) > maxConcernLength {
		respondWithError(w, http.StatusBadRequest, "concern is too long")
		return
	}
	if len(payload.SelectedSymptoms) > maxSelectedTags {
		respondWithError(w, http.StatusBadRequest, "too many selected symptoms")
		return
	}

	result, err := h.service.Analyze(r.Context(), middleware.SessionID(r.Context()), payload.Concern, payload.SelectedSymptoms)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// ListRecentConcerns handles GET /api/concerns/recent
func (h *ConcernHandler) ListRecentConcerns(w http.ResponseWriter, r *http.Request) {
	concerns, err := h.service.RecentConcerns(r.Context(), middleware.SessionID(r.Context()))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"concerns": concerns,
		"count":    len(concerns),
	})
}

type feedbackRequest struct {
	Helpful *bool `json:"helpful"`
}

// SubmitFeedback handles POST /api/concerns/{id}/feedback
func (h *ConcernHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	concernID := strings.TrimSpace(r.PathValue("id"))
	if concernID == "" {
		respondWithError(w, http.StatusBadRequest, "concern id is required")
		return
	}

	var payload feedbackRequest
	if err := decodeJSON(w, r, &payload); err != nil || payload.Helpful == nil {
		respondWithError(w, http.StatusBadRequest, "helpful must be true or false")
		return
	}

	if allowed, retryAfter := h.limiter.allow(r.Context(), r); !allowed {
		w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
		respondWithError(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	ack, err := h.service.SubmitFeedback(r.Context(), middleware.SessionID(r.Context()), concernID, *payload.Helpful)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, ack)
}
