//go:build integration

package session

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carecompass/backend/internal/domain/entities"
	redisclient "github.com/carecompass/backend/internal/infrastructure/clients/redis"
	apperrors "github.com/carecompass/backend/pkg/errors"
)

func newRedisStore(t *testing.T, max int) *RedisConcernStore {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		t.Skipf("redis not reachable at %s: %v", addr, err)
	}
	t.Cleanup(func() { rdb.Close() })
	return NewRedisConcernStore(redisclient.Wrap(rdb), time.Minute, max, nil).(*RedisConcernStore)
}

func TestRedisConcernStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newRedisStore(t, 2)
	sessionID := uuid.NewString()
	t.Cleanup(func() { store.client.Client().Del(ctx, concernKey(sessionID)) })

	for _, id := range []string{"c1", "c2", "c3"} {
		require.NoError(t, store.Add(ctx, &entities.HealthConcern{
			ID:        id,
			SessionID: sessionID,
			Concern:   "rash",
			Result:    &entities.AnalysisResult{RecommendedSpecialty: "Dermatology"},
			Status:    entities.ConcernStatusActive,
			CreatedAt: time.Now().UTC(),
		}))
	}

	list, err := store.ListBySession(ctx, sessionID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "c3", list[0].ID)
	assert.Equal(t, "Dermatology", list[0].Result.RecommendedSpecialty)

	ttl := store.client.Client().TTL(ctx, concernKey(sessionID)).Val()
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, store.Delete(ctx, sessionID, "c3"))
	_, err = store.Get(ctx, sessionID, "c3")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))

	got, err := store.Get(ctx, sessionID, "c2")
	require.NoError(t, err)
	assert.Equal(t, "c2", got.ID)
}
