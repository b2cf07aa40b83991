package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/carecompass/backend/internal/domain/entities"
	"github.com/carecompass/backend/internal/domain/providers"
	apperrors "github.com/carecompass/backend/pkg/errors"
)

const appointmentScheduledTitle = "Appointment Scheduled"

// DoctorService serves the doctor finder over the catalog roster.
type DoctorService struct {
	catalog   *entities.Catalog
	ranker    *DoctorRanker
	scheduler providers.Scheduler
	delay     time.Duration
}

// NewDoctorService creates a new doctor service
func NewDoctorService(catalog *entities.Catalog, scheduler providers.Scheduler, searchDelay time.Duration) *DoctorService {
	return &DoctorService{
		catalog:   catalog,
		ranker:    NewDoctorRanker(catalog.NearTermLabels),
		scheduler: scheduler,
		delay:     searchDelay,
	}
}

// Find returns the filtered roster with recommended first.
func (s *DoctorService) Find(ctx context.Context, recommended string, filters entities.DoctorFilters) ([]entities.Doctor, error) {
	if !entities.IsValidAvailabilityFilter(filters.Availability) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown availability filter %q", filters.Availability))
	}

	var doctors []entities.Doctor
	if err := runDeferred(ctx, s.scheduler, s.delay, func() {
		doctors = s.ranker.FindDoctors(s.catalog.Doctors, recommended, filters)
	}); err != nil {
		return nil, err
	}
	return doctors, nil
}

// Specialties returns the specialties present in the roster.
func (s *DoctorService) Specialties(_ context.Context) []string {
	return s.ranker.Specialties(s.catalog.Doctors)
}

// ScheduleAppointment confirms a slot with a doctor. No reservation is kept.
func (s *DoctorService) ScheduleAppointment(_ context.Context, req entities.AppointmentRequest) (*entities.AppointmentConfirmation, error) {
	doctorID := strings.TrimSpace(req.DoctorID)
	if doctorID == "" {
		return nil, apperrors.NewValidationError("doctorId is required")
	}

	doctor, ok := s.catalog.FindDoctor(doctorID)
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("doctor %s not found", doctorID))
	}
	if !doctor.HasSlot(req.Slot) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("%s has no %q slot", doctor.Name, req.Slot))
	}

	return &entities.AppointmentConfirmation{
		DoctorID:   doctor.ID,
		DoctorName: doctor.Name,
		Slot:       req.Slot,
		Message: entities.Acknowledgement{
			Title: appointmentScheduledTitle,
			Description: fmt.Sprintf(
				"Your appointment with %s at %s has been scheduled. We'll send you a confirmation email shortly.",
				doctor.Name, req.Slot,
			),
		},
	}, nil
}
