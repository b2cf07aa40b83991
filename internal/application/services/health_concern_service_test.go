package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carecompass/backend/internal/domain/entities"
	apperrors "github.com/carecompass/backend/pkg/errors"
)

func newConcernService(t *testing.T) (*HealthConcernService, *MockConcernRepository, *MockFeedbackRepository, *recordingScheduler) {
	t.Helper()
	concerns := new(MockConcernRepository)
	feedback := new(MockFeedbackRepository)
	scheduler := &recordingScheduler{}
	svc := NewHealthConcernService(loadTestCatalog(t), concerns, feedback, scheduler, 1500*time.Millisecond)
	return svc, concerns, feedback, scheduler
}

func TestHealthConcernService_Analyze(t *testing.T) {
	t.Run("records the concern and ranks doctors for the specialty", func(t *testing.T) {
		svc, concerns, _, scheduler := newConcernService(t)

		concerns.On("Add", mock.Anything, mock.MatchedBy(func(c *entities.HealthConcern) bool {
			return c.SessionID == "sess-1" &&
				c.Status == entities.ConcernStatusActive &&
				c.ID != "" &&
				c.Result.RecommendedSpecialty == "Neurology"
		})).Return(nil)

		out, err := svc.Analyze(context.Background(), "sess-1", "I have a headache and a cough", nil)
		require.NoError(t, err)

		assert.Equal(t, []time.Duration{1500 * time.Millisecond}, scheduler.delays)
		assert.Equal(t, []string{"headache", "cough"}, out.Concern.Result.DetectedSymptoms)
		require.NotEmpty(t, out.Doctors)
		assert.Equal(t, "Neurology", out.Doctors[0].Specialty)
		assert.Equal(t, "Neurology", out.Doctors[1].Specialty)
		assert.Equal(t, "d1", out.Doctors[0].ID, "Today outranks Tomorrow within the specialty")
		concerns.AssertExpectations(t)
	})

	t.Run("validation error skips the store and the delay", func(t *testing.T) {
		svc, concerns, _, scheduler := newConcernService(t)

		out, err := svc.Analyze(context.Background(), "sess-1", "  ", nil)
		assert.Nil(t, out)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
		assert.Empty(t, scheduler.delays)
		concerns.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	})

	t.Run("empty input fails without waiting on the scheduler", func(t *testing.T) {
		svc := NewHealthConcernService(loadTestCatalog(t), new(MockConcernRepository), new(MockFeedbackRepository), stalledScheduler{}, time.Hour)

		_, err := svc.Analyze(context.Background(), "sess-1", "", nil)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})

	t.Run("store failure does not fail the analysis", func(t *testing.T) {
		svc, concerns, _, _ := newConcernService(t)
		concerns.On("Add", mock.Anything, mock.Anything).Return(errors.New("redis down"))

		out, err := svc.Analyze(context.Background(), "sess-1", "rash", nil)
		require.NoError(t, err)
		assert.Equal(t, "Dermatology", out.Concern.Result.RecommendedSpecialty)
	})

	t.Run("cancelled context stops waiting", func(t *testing.T) {
		concerns := new(MockConcernRepository)
		svc := NewHealthConcernService(loadTestCatalog(t), concerns, new(MockFeedbackRepository), stalledScheduler{}, time.Hour)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := svc.Analyze(ctx, "sess-1", "rash", nil)
		assert.ErrorIs(t, err, context.Canceled)
		concerns.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	})
}

func TestHealthConcernService_RecentConcerns(t *testing.T) {
	t.Run("returns the session list", func(t *testing.T) {
		svc, concerns, _, _ := newConcernService(t)
		list := []*entities.HealthConcern{{ID: "c2"}, {ID: "c1"}}
		concerns.On("ListBySession", mock.Anything, "sess-1").Return(list, nil)

		got, err := svc.RecentConcerns(context.Background(), "sess-1")
		require.NoError(t, err)
		assert.Equal(t, list, got)
	})

	t.Run("empty session yields an empty list", func(t *testing.T) {
		svc, concerns, _, _ := newConcernService(t)
		concerns.On("ListBySession", mock.Anything, "new").Return(nil, nil)

		got, err := svc.RecentConcerns(context.Background(), "new")
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("store failure is external", func(t *testing.T) {
		svc, concerns, _, _ := newConcernService(t)
		concerns.On("ListBySession", mock.Anything, "sess-1").Return(nil, errors.New("boom"))

		_, err := svc.RecentConcerns(context.Background(), "sess-1")
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExternal))
	})
}

func TestHealthConcernService_SubmitFeedback(t *testing.T) {
	t.Run("helpful keeps the concern", func(t *testing.T) {
		svc, concerns, feedback, _ := newConcernService(t)
		concerns.On("Get", mock.Anything, "sess-1", "c1").Return(&entities.HealthConcern{ID: "c1"}, nil)
		feedback.On("Create", mock.Anything, mock.MatchedBy(func(f *entities.AnalysisFeedback) bool {
			return f.ConcernID == "c1" && f.SessionID == "sess-1" && f.Helpful && f.ID != ""
		})).Return(nil)

		ack, err := svc.SubmitFeedback(context.Background(), "sess-1", "c1", true)
		require.NoError(t, err)
		assert.Equal(t, "Thank you for your feedback", ack.Title)
		assert.Equal(t, "We're glad our analysis was helpful.", ack.Description)
		concerns.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
		feedback.AssertExpectations(t)
	})

	t.Run("not helpful discards the concern", func(t *testing.T) {
		svc, concerns, feedback, _ := newConcernService(t)
		concerns.On("Get", mock.Anything, "sess-1", "c1").Return(&entities.HealthConcern{ID: "c1"}, nil)
		feedback.On("Create", mock.Anything, mock.Anything).Return(nil)
		concerns.On("Delete", mock.Anything, "sess-1", "c1").Return(nil)

		ack, err := svc.SubmitFeedback(context.Background(), "sess-1", "c1", false)
		require.NoError(t, err)
		assert.Equal(t, NegativeFeedbackAck, *ack)
		concerns.AssertExpectations(t)
	})

	t.Run("unknown concern", func(t *testing.T) {
		svc, concerns, feedback, _ := newConcernService(t)
		concerns.On("Get", mock.Anything, "sess-1", "nope").Return(nil, apperrors.NewNotFoundError("concern nope not found"))

		_, err := svc.SubmitFeedback(context.Background(), "sess-1", "nope", true)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
		feedback.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("feedback store failure", func(t *testing.T) {
		svc, concerns, feedback, _ := newConcernService(t)
		concerns.On("Get", mock.Anything, "sess-1", "c1").Return(&entities.HealthConcern{ID: "c1"}, nil)
		feedback.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

		_, err := svc.SubmitFeedback(context.Background(), "sess-1", "c1", false)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExternal))
		concerns.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestHealthConcernService_CatalogAccessors(t *testing.T) {
	svc, _, _, _ := newConcernService(t)

	assert.Contains(t, svc.CommonSymptoms(), "Shortness of breath")
	assert.Equal(t, "headache", svc.SymptomKeys()[0])
	assert.NotEmpty(t, svc.CatalogVersion())
}
