package session

import (
	"context"
	"sync"

	"github.com/carecompass/backend/internal/domain/entities"
	"github.com/carecompass/backend/internal/domain/repositories"
	apperrors "github.com/carecompass/backend/pkg/errors"
)

// MemoryFeedbackStore keeps the most recent feedback records in process
// memory. It is used when no database is configured.
type MemoryFeedbackStore struct {
	mu      sync.RWMutex
	records []entities.AnalysisFeedback
	limit   int
}

// NewMemoryFeedbackStore creates a store holding at most limit records.
func NewMemoryFeedbackStore(limit int) *MemoryFeedbackStore {
	return &MemoryFeedbackStore{limit: limit}
}

var _ repositories.FeedbackRepository = (*MemoryFeedbackStore)(nil)

// Create appends a record, dropping the oldest beyond the limit.
func (s *MemoryFeedbackStore) Create(_ context.Context, feedback *entities.AnalysisFeedback) error {
	if feedback == nil {
		return apperrors.NewValidationError("feedback is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, *feedback)
	if s.limit > 0 && len(s.records) > s.limit {
		s.records = append([]entities.AnalysisFeedback(nil), s.records[len(s.records)-s.limit:]...)
	}
	return nil
}

// Records returns a snapshot of the stored feedback, oldest first.
func (s *MemoryFeedbackStore) Records() []entities.AnalysisFeedback {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.AnalysisFeedback(nil), s.records...)
}

// HelpfulRate returns the share of helpful answers, or 0 with no records.
func (s *MemoryFeedbackStore) HelpfulRate() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.records) == 0 {
		return 0
	}
	helpful := 0
	for _, r := range s.records {
		if r.Helpful {
			helpful++
		}
	}
	return float64(helpful) / float64(len(s.records))
}
