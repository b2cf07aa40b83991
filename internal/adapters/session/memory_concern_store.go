package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/carecompass/backend/internal/domain/entities"
	"github.com/carecompass/backend/internal/domain/repositories"
	apperrors "github.com/carecompass/backend/pkg/errors"
)

type memorySession struct {
	concerns  []*entities.HealthConcern // newest first
	expiresAt time.Time
}

// MemoryConcernStore keeps recent concerns in process memory. Sessions expire
// after ttl of inactivity; each session keeps at most maxPerSession entries.
type MemoryConcernStore struct {
	mu            sync.Mutex
	sessions      map[string]*memorySession
	ttl           time.Duration
	maxPerSession int
	now           func() time.Time
}

// NewMemoryConcernStore creates an in-memory concern store
func NewMemoryConcernStore(ttl time.Duration, maxPerSession int) *MemoryConcernStore {
	return newMemoryConcernStore(ttl, maxPerSession, time.Now)
}

var _ repositories.ConcernRepository = (*MemoryConcernStore)(nil)

func newMemoryConcernStore(ttl time.Duration, maxPerSession int, now func() time.Time) *MemoryConcernStore {
	return &MemoryConcernStore{
		sessions:      make(map[string]*memorySession),
		ttl:           ttl,
		maxPerSession: maxPerSession,
		now:           now,
	}
}

// Add stores concern at the head of its session list.
func (s *MemoryConcernStore) Add(_ context.Context, concern *entities.HealthConcern) error {
	if concern == nil || concern.SessionID == "" {
		return apperrors.NewValidationError("concern must belong to a session")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_ = s.evictExpiredLocked()

	sess := s.sessions[concern.SessionID]
	if sess == nil {
		sess = &memorySession{}
		s.sessions[concern.SessionID] = sess
	}

	stored := *concern
	sess.concerns = append([]*entities.HealthConcern{&stored}, sess.concerns...)
	if s.maxPerSession > 0 && len(sess.concerns) > s.maxPerSession {
		sess.concerns = sess.concerns[:s.maxPerSession]
	}
	sess.expiresAt = s.now().Add(s.ttl)
	return nil
}

// ListBySession returns copies of the session's concerns, newest first.
func (s *MemoryConcernStore) ListBySession(_ context.Context, sessionID string) ([]*entities.HealthConcern, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.liveSessionLocked(sessionID)
	out := make([]*entities.HealthConcern, 0)
	if sess == nil {
		return out, nil
	}
	for _, c := range sess.concerns {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

// Get returns one concern of the session.
func (s *MemoryConcernStore) Get(_ context.Context, sessionID, concernID string) (*entities.HealthConcern, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess := s.liveSessionLocked(sessionID); sess != nil {
		for _, c := range sess.concerns {
			if c.ID == concernID {
				cp := *c
				return &cp, nil
			}
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("concern %s not found", concernID))
}

// Delete removes a concern. Deleting an unknown concern is a no-op.
func (s *MemoryConcernStore) Delete(_ context.Context, sessionID, concernID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.liveSessionLocked(sessionID)
	if sess == nil {
		return nil
	}
	for i, c := range sess.concerns {
		if c.ID == concernID {
			sess.concerns = append(sess.concerns[:i:i], sess.concerns[i+1:]...)
			break
		}
	}
	return nil
}

func (s *MemoryConcernStore) liveSessionLocked(sessionID string) *memorySession {
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil
	}
	if s.ttl > 0 && s.now().After(sess.expiresAt) {
		delete(s.sessions, sessionID)
		return nil
	}
	return sess
}

// Sweep drops expired sessions and reports how many were removed.
func (s *MemoryConcernStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.evictExpiredLocked()
}

func (s *MemoryConcernStore) evictExpiredLocked() int {
	if s.ttl <= 0 {
		return 0
	}
	now := s.now()
	removed := 0
	for id, sess := range s.sessions {
		if now.After(sess.expiresAt) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}
