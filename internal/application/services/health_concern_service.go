package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/carecompass/backend/internal/domain/entities"
	"github.com/carecompass/backend/internal/domain/providers"
	"github.com/carecompass/backend/internal/domain/repositories"
	"github.com/carecompass/backend/internal/infrastructure/observability"
	apperrors "github.com/carecompass/backend/pkg/errors"
)

// Acknowledgements shown after feedback is submitted.
var (
	PositiveFeedbackAck = entities.Acknowledgement{
		Title:       "Thank you for your feedback",
		Description: "We're glad our analysis was helpful.",
	}
	NegativeFeedbackAck = entities.Acknowledgement{
		Title:       "We'll improve our analysis",
		Description: "Thank you for helping us improve our AI system.",
	}
)

// ConcernAnalysis is the outcome of submitting a concern: the stored concern
// with its advisory and the doctors ranked for its recommended specialty.
type ConcernAnalysis struct {
	Concern *entities.HealthConcern `json:"concern"`
	Doctors []entities.Doctor       `json:"doctors"`
}

// HealthConcernService runs the symptom analysis flow for a session.
type HealthConcernService struct {
	catalog   *entities.Catalog
	matcher   *SymptomMatcher
	ranker    *DoctorRanker
	concerns  repositories.ConcernRepository
	feedback  repositories.FeedbackRepository
	scheduler providers.Scheduler
	delay     time.Duration
	now       func() time.Time
}

// NewHealthConcernService creates a new health concern service
func NewHealthConcernService(
	catalog *entities.Catalog,
	concerns repositories.ConcernRepository,
	feedback repositories.FeedbackRepository,
	scheduler providers.Scheduler,
	analysisDelay time.Duration,
) *HealthConcernService {
	return &HealthConcernService{
		catalog:   catalog,
		matcher:   NewSymptomMatcher(catalog),
		ranker:    NewDoctorRanker(catalog.NearTermLabels),
		concerns:  concerns,
		feedback:  feedback,
		scheduler: scheduler,
		delay:     analysisDelay,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Analyze matches the concern against the symptom dictionary, remembers it in
// the session and returns doctors ranked for the recommended specialty.
func (s *HealthConcernService) Analyze(ctx context.Context, sessionID, concern string, selectedTags []string) (*ConcernAnalysis, error) {
	if err := s.matcher.Validate(concern, selectedTags); err != nil {
		return nil, err
	}

	var (
		result *entities.AnalysisResult
		err    error
	)
	if waitErr := runDeferred(ctx, s.scheduler, s.delay, func() {
		result, err = s.matcher.Analyze(concern, selectedTags)
	}); waitErr != nil {
		return nil, waitErr
	}
	if err != nil {
		return nil, err
	}

	hc := &entities.HealthConcern{
		ID:           uuid.New().String(),
		SessionID:    sessionID,
		Concern:      concern,
		SelectedTags: append([]string{}, selectedTags...),
		Result:       result,
		Status:       entities.ConcernStatusActive,
		CreatedAt:    s.now(),
	}

	if err := s.concerns.Add(ctx, hc); err != nil {
		// Recording is best effort.
		observability.LoggerFromContext(ctx).Warn().Err(err).
			Str("session_id", sessionID).
			Msg("failed to record concern")
	}

	doctors := s.ranker.FindDoctors(s.catalog.Doctors, result.RecommendedSpecialty, entities.DoctorFilters{})

	return &ConcernAnalysis{Concern: hc, Doctors: doctors}, nil
}

// RecentConcerns returns the session's concerns, newest first.
func (s *HealthConcernService) RecentConcerns(ctx context.Context, sessionID string) ([]*entities.HealthConcern, error) {
	concerns, err := s.concerns.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, apperrors.NewExternalError("failed to load recent concerns", err)
	}
	if concerns == nil {
		concerns = []*entities.HealthConcern{}
	}
	return concerns, nil
}

// SubmitFeedback records whether the analysis of a concern helped. A negative
// answer discards the concern from the session.
func (s *HealthConcernService) SubmitFeedback(ctx context.Context, sessionID, concernID string, helpful bool) (*entities.Acknowledgement, error) {
	if _, err := s.concerns.Get(ctx, sessionID, concernID); err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			return nil, err
		}
		return nil, apperrors.NewExternalError("failed to load concern", err)
	}

	fb := &entities.AnalysisFeedback{
		ID:        uuid.New().String(),
		ConcernID: concernID,
		SessionID: sessionID,
		Helpful:   helpful,
		CreatedAt: s.now(),
	}
	if err := s.feedback.Create(ctx, fb); err != nil {
		return nil, apperrors.NewExternalError("failed to store feedback", err)
	}

	if helpful {
		ack := PositiveFeedbackAck
		return &ack, nil
	}

	if err := s.concerns.Delete(ctx, sessionID, concernID); err != nil {
		return nil, apperrors.NewExternalError(fmt.Sprintf("failed to discard concern %s", concernID), err)
	}
	ack := NegativeFeedbackAck
	return &ack, nil
}

// CommonSymptoms returns the quick-select tags offered next to the text box.
func (s *HealthConcernService) CommonSymptoms() []string {
	return append([]string(nil), s.catalog.CommonSymptoms...)
}

// SymptomKeys returns every dictionary key in dictionary order.
func (s *HealthConcernService) SymptomKeys() []string {
	return s.catalog.Symptoms.Keys()
}

// CatalogVersion returns the version of the loaded catalog.
func (s *HealthConcernService) CatalogVersion() string {
	return s.catalog.Version
}
