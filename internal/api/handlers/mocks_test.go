package handlers_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/carecompass/backend/internal/application/services"
	"github.com/carecompass/backend/internal/domain/entities"
)

type MockConcernService struct {
	mock.Mock
}

func (m *MockConcernService) Analyze(ctx context.Context, sessionID, concern string, selectedTags []string) (*services.ConcernAnalysis, error) {
	args := m.Called(ctx, sessionID, concern, selectedTags)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.ConcernAnalysis), args.Error(1)
}

func (m *MockConcernService) RecentConcerns(ctx context.Context, sessionID string) ([]*entities.HealthConcern, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.HealthConcern), args.Error(1)
}

func (m *MockConcernService) SubmitFeedback(ctx context.Context, sessionID, concernID string, helpful bool) (*entities.Acknowledgement, error) {
	args := m.Called(ctx, sessionID, concernID, helpful)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Acknowledgement), args.Error(1)
}

type MockDoctorService struct {
	mock.Mock
}

func (m *MockDoctorService) Find(ctx context.Context, recommended string, filters entities.DoctorFilters) ([]entities.Doctor, error) {
	args := m.Called(ctx, recommended, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Doctor), args.Error(1)
}

func (m *MockDoctorService) Specialties(ctx context.Context) []string {
	args := m.Called(ctx)
	return args.Get(0).([]string)
}

func (m *MockDoctorService) ScheduleAppointment(ctx context.Context, req entities.AppointmentRequest) (*entities.AppointmentConfirmation, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.AppointmentConfirmation), args.Error(1)
}
