package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carecompass/backend/internal/api/handlers"
	"github.com/carecompass/backend/internal/domain/entities"
	apperrors "github.com/carecompass/backend/pkg/errors"
)

func TestDoctorHandler_FindDoctors(t *testing.T) {
	svc := new(MockDoctorService)
	handler := handlers.NewDoctorHandler(svc)

	wantFilters := entities.DoctorFilters{Specialty: "Neurology", Availability: "this-week", SearchText: "wellness"}
	svc.On("Find", mock.Anything, "Neurology", wantFilters).Return([]entities.Doctor{{ID: "d1"}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/doctors?recommended=Neurology&specialty=Neurology&availability=This-Week&q=+wellness+", nil)
	w := httptest.NewRecorder()
	handler.FindDoctors(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var response struct {
		Doctors []entities.Doctor `json:"doctors"`
		Count   int               `json:"count"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, 1, response.Count)
	svc.AssertExpectations(t)
}

func TestDoctorHandler_FindDoctors_BadFilter(t *testing.T) {
	svc := new(MockDoctorService)
	handler := handlers.NewDoctorHandler(svc)
	svc.On("Find", mock.Anything, "", entities.DoctorFilters{Availability: "someday"}).
		Return(nil, apperrors.NewValidationError(`unknown availability filter "someday"`))

	req := httptest.NewRequest(http.MethodGet, "/api/doctors?availability=someday", nil)
	w := httptest.NewRecorder()
	handler.FindDoctors(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDoctorHandler_ListSpecialties(t *testing.T) {
	svc := new(MockDoctorService)
	handler := handlers.NewDoctorHandler(svc)
	svc.On("Specialties", mock.Anything).Return([]string{"Neurology", "Dermatology"})

	w := httptest.NewRecorder()
	handler.ListSpecialties(w, httptest.NewRequest(http.MethodGet, "/api/doctors/specialties", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"specialties":["Neurology","Dermatology"]}`, w.Body.String())
}

func TestDoctorHandler_ScheduleAppointment(t *testing.T) {
	t.Run("confirms", func(t *testing.T) {
		svc := new(MockDoctorService)
		handler := handlers.NewDoctorHandler(svc)
		req := entities.AppointmentRequest{DoctorID: "d1", Slot: "3:30 PM"}
		svc.On("ScheduleAppointment", mock.Anything, req).Return(&entities.AppointmentConfirmation{
			DoctorID: "d1", DoctorName: "Dr. Maria Gonzalez", Slot: "3:30 PM",
			Message: entities.Acknowledgement{Title: "Appointment Scheduled"},
		}, nil)

		w := httptest.NewRecorder()
		handler.ScheduleAppointment(w, httptest.NewRequest(http.MethodPost, "/api/appointments",
			strings.NewReader(`{"doctorId":"d1","slot":"3:30 PM"}`)))

		require.Equal(t, http.StatusOK, w.Code)
		var conf entities.AppointmentConfirmation
		require.NoError(t, json.NewDecoder(w.Body).Decode(&conf))
		assert.Equal(t, "Appointment Scheduled", conf.Message.Title)
	})

	t.Run("unknown doctor", func(t *testing.T) {
		svc := new(MockDoctorService)
		handler := handlers.NewDoctorHandler(svc)
		svc.On("ScheduleAppointment", mock.Anything, mock.Anything).Return(nil, apperrors.NewNotFoundError("doctor d99 not found"))

		w := httptest.NewRecorder()
		handler.ScheduleAppointment(w, httptest.NewRequest(http.MethodPost, "/api/appointments",
			strings.NewReader(`{"doctorId":"d99","slot":"3:30 PM"}`)))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("bad payload", func(t *testing.T) {
		handler := handlers.NewDoctorHandler(new(MockDoctorService))

		w := httptest.NewRecorder()
		handler.ScheduleAppointment(w, httptest.NewRequest(http.MethodPost, "/api/appointments", strings.NewReader(`[`)))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
