package repositories

import (
	"context"

	"github.com/carecompass/backend/internal/domain/entities"
)

// FeedbackRepository defines the interface for feedback operations.
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *entities.AnalysisFeedback) error
}
