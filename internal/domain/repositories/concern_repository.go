package repositories

import (
	"context"

	"github.com/carecompass/backend/internal/domain/entities"
)

// ConcernRepository holds the session-scoped list of recent concerns.
type ConcernRepository interface {
	// Add stores a concern at the head of its session's list.
	Add(ctx context.Context, concern *entities.HealthConcern) error

	// ListBySession returns the session's concerns, newest first.
	ListBySession(ctx context.Context, sessionID string) ([]*entities.HealthConcern, error)

	// Get returns one concern of the session, or a not-found error.
	Get(ctx context.Context, sessionID, concernID string) (*entities.HealthConcern, error)

	// Delete removes a concern from the session. Missing concerns are not an error.
	Delete(ctx context.Context, sessionID, concernID string) error
}
