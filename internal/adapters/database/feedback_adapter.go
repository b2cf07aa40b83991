package database

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/carecompass/backend/internal/domain/entities"
	"github.com/carecompass/backend/internal/domain/repositories"
	"github.com/carecompass/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/carecompass/backend/pkg/errors"
)

const analysisFeedbackTable = "analysis_feedback"

// FeedbackAdapter implements feedback persistence in Postgres.
type FeedbackAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewFeedbackAdapter creates a new feedback adapter.
func NewFeedbackAdapter(client *postgres.Client) repositories.FeedbackRepository {
	return &FeedbackAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a feedback record.
func (a *FeedbackAdapter) Create(ctx context.Context, feedback *entities.AnalysisFeedback) error {
	if feedback == nil {
		return apperrors.NewInternalError("feedback is nil", fmt.Errorf("feedback is nil"))
	}

	record := goqu.Record{
		"id":         feedback.ID,
		"concern_id": feedback.ConcernID,
		"session_id": feedback.SessionID,
		"helpful":    feedback.Helpful,
		"created_at": feedback.CreatedAt,
	}

	query, args, err := a.db.Insert(analysisFeedbackTable).Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build feedback insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewExternalError("failed to create feedback", err)
	}

	return nil
}
