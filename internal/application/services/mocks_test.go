package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/carecompass/backend/internal/domain/entities"
)

type MockConcernRepository struct {
	mock.Mock
}

func (m *MockConcernRepository) Add(ctx context.Context, concern *entities.HealthConcern) error {
	args := m.Called(ctx, concern)
	return args.Error(0)
}

func (m *MockConcernRepository) ListBySession(ctx context.Context, sessionID string) ([]*entities.HealthConcern, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.HealthConcern), args.Error(1)
}

func (m *MockConcernRepository) Get(ctx context.Context, sessionID, concernID string) (*entities.HealthConcern, error) {
	args := m.Called(ctx, sessionID, concernID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.HealthConcern), args.Error(1)
}

func (m *MockConcernRepository) Delete(ctx context.Context, sessionID, concernID string) error {
	args := m.Called(ctx, sessionID, concernID)
	return args.Error(0)
}

type MockFeedbackRepository struct {
	mock.Mock
}

func (m *MockFeedbackRepository) Create(ctx context.Context, feedback *entities.AnalysisFeedback) error {
	args := m.Called(ctx, feedback)
	return args.Error(0)
}

// recordingScheduler runs callbacks immediately and remembers the delays asked for.
type recordingScheduler struct {
	delays []time.Duration
}

func (s *recordingScheduler) After(d time.Duration, fn func()) {
	s.delays = append(s.delays, d)
	fn()
}

// stalledScheduler never fires.
type stalledScheduler struct{}

func (stalledScheduler) After(time.Duration, func()) {}
