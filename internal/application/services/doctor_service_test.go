package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carecompass/backend/internal/domain/entities"
	apperrors "github.com/carecompass/backend/pkg/errors"
)

func TestDoctorService_Find(t *testing.T) {
	scheduler := &recordingScheduler{}
	svc := NewDoctorService(loadTestCatalog(t), scheduler, 200*time.Millisecond)

	doctors, err := svc.Find(context.Background(), "Dermatology", entities.DoctorFilters{})
	require.NoError(t, err)
	require.Len(t, doctors, 10)
	assert.Equal(t, "Dermatology", doctors[0].Specialty)
	assert.Equal(t, []time.Duration{200 * time.Millisecond}, scheduler.delays)

	doctors, err = svc.Find(context.Background(), "", entities.DoctorFilters{Availability: "today"})
	require.NoError(t, err)
	for _, d := range doctors {
		assert.Equal(t, "Today", d.Availability)
	}

	_, err = svc.Find(context.Background(), "", entities.DoctorFilters{Availability: "someday"})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestDoctorService_Specialties(t *testing.T) {
	svc := NewDoctorService(loadTestCatalog(t), &recordingScheduler{}, 0)

	specialties := svc.Specialties(context.Background())
	assert.Equal(t, "Neurology", specialties[0])
	assert.Contains(t, specialties, "Pulmonology")
	assert.Len(t, specialties, 8)
}

func TestDoctorService_ScheduleAppointment(t *testing.T) {
	svc := NewDoctorService(loadTestCatalog(t), &recordingScheduler{}, 0)
	ctx := context.Background()

	t.Run("confirms an offered slot", func(t *testing.T) {
		conf, err := svc.ScheduleAppointment(ctx, entities.AppointmentRequest{DoctorID: "d1", Slot: "3:30 PM"})
		require.NoError(t, err)
		assert.Equal(t, "Appointment Scheduled", conf.Message.Title)
		assert.Equal(t,
			"Your appointment with Dr. Maria Gonzalez at 3:30 PM has been scheduled. We'll send you a confirmation email shortly.",
			conf.Message.Description)
	})

	t.Run("unknown doctor", func(t *testing.T) {
		_, err := svc.ScheduleAppointment(ctx, entities.AppointmentRequest{DoctorID: "d99", Slot: "3:30 PM"})
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	})

	t.Run("slot not offered", func(t *testing.T) {
		_, err := svc.ScheduleAppointment(ctx, entities.AppointmentRequest{DoctorID: "d1", Slot: "6:00 AM"})
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})

	t.Run("missing doctor id", func(t *testing.T) {
		_, err := svc.ScheduleAppointment(ctx, entities.AppointmentRequest{Slot: "3:30 PM"})
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})

	t.Run("roster unchanged", func(t *testing.T) {
		before := append([]entities.Doctor(nil), svc.catalog.Doctors...)
		_, _ = svc.ScheduleAppointment(ctx, entities.AppointmentRequest{DoctorID: "d2", Slot: "1:00 PM"})
		assert.Equal(t, before, svc.catalog.Doctors)
	})
}
