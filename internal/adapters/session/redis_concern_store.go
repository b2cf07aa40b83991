package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/carecompass/backend/internal/domain/entities"
	"github.com/carecompass/backend/internal/domain/repositories"
	redisclient "github.com/carecompass/backend/internal/infrastructure/clients/redis"
	"github.com/carecompass/backend/internal/infrastructure/observability"
	apperrors "github.com/carecompass/backend/pkg/errors"
)

const concernKeyPrefix = "carecompass:concerns:"

// RedisConcernStore keeps each session's concerns as a JSON list in Redis,
// newest at the head, trimmed to a fixed length and expiring with the session.
type RedisConcernStore struct {
	client        *redisclient.Client
	ttl           time.Duration
	maxPerSession int
	metrics       *observability.Metrics
}

// NewRedisConcernStore creates a Redis-backed concern store. metrics may be nil.
func NewRedisConcernStore(client *redisclient.Client, ttl time.Duration, maxPerSession int, metrics *observability.Metrics) repositories.ConcernRepository {
	return &RedisConcernStore{
		client:        client,
		ttl:           ttl,
		maxPerSession: maxPerSession,
		metrics:       metrics,
	}
}

func concernKey(sessionID string) string {
	return concernKeyPrefix + sessionID
}

// Add pushes concern onto the session list.
func (s *RedisConcernStore) Add(ctx context.Context, concern *entities.HealthConcern) error {
	if concern == nil || concern.SessionID == "" {
		return apperrors.NewValidationError("concern must belong to a session")
	}
	defer s.observe(ctx, "add", time.Now())

	payload, err := json.Marshal(concern)
	if err != nil {
		return fmt.Errorf("failed to encode concern: %w", err)
	}

	key := concernKey(concern.SessionID)
	_, err = s.client.Client().TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, key, payload)
		if s.maxPerSession > 0 {
			pipe.LTrim(ctx, key, 0, int64(s.maxPerSession-1))
		}
		if s.ttl > 0 {
			pipe.Expire(ctx, key, s.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store concern: %w", err)
	}
	return nil
}

// ListBySession returns the session's concerns, newest first.
func (s *RedisConcernStore) ListBySession(ctx context.Context, sessionID string) ([]*entities.HealthConcern, error) {
	defer s.observe(ctx, "list", time.Now())

	raw, err := s.client.Client().LRange(ctx, concernKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list concerns: %w", err)
	}

	out := make([]*entities.HealthConcern, 0, len(raw))
	for _, item := range raw {
		var c entities.HealthConcern
		if err := json.Unmarshal([]byte(item), &c); err != nil {
			observability.LoggerFromContext(ctx).Warn().Err(err).
				Str("session_id", sessionID).
				Msg("skipping undecodable concern")
			continue
		}
		out = append(out, &c)
	}
	return out, nil
}

// Get returns one concern of the session.
func (s *RedisConcernStore) Get(ctx context.Context, sessionID, concernID string) (*entities.HealthConcern, error) {
	concern, _, err := s.find(ctx, sessionID, concernID)
	if err != nil {
		return nil, err
	}
	if concern == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("concern %s not found", concernID))
	}
	return concern, nil
}

// Delete removes the concern's list element. Unknown concerns are ignored.
func (s *RedisConcernStore) Delete(ctx context.Context, sessionID, concernID string) error {
	concern, raw, err := s.find(ctx, sessionID, concernID)
	if err != nil || concern == nil {
		return err
	}
	defer s.observe(ctx, "delete", time.Now())

	if err := s.client.Client().LRem(ctx, concernKey(sessionID), 1, raw).Err(); err != nil {
		return fmt.Errorf("failed to delete concern: %w", err)
	}
	return nil
}

// find returns the decoded concern and its raw list element.
func (s *RedisConcernStore) find(ctx context.Context, sessionID, concernID string) (*entities.HealthConcern, string, error) {
	defer s.observe(ctx, "find", time.Now())

	raw, err := s.client.Client().LRange(ctx, concernKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, "", fmt.Errorf("failed to list concerns: %w", err)
	}
	for _, item := range raw {
		var c entities.HealthConcern
		if err := json.Unmarshal([]byte(item), &c); err != nil {
			continue
		}
		if c.ID == concernID {
			return &c, item, nil
		}
	}
	return nil, "", nil
}

func (s *RedisConcernStore) observe(ctx context.Context, op string, start time.Time) {
	observability.RecordStoreMetric(ctx, s.metrics, "redis_concerns", op, time.Since(start))
}
