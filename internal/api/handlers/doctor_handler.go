package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/carecompass/backend/internal/domain/entities"
)

// DoctorService defines the doctor finder operations used by the handler.
type DoctorService interface {
	Find(ctx context.Context, recommended string, filters entities.DoctorFilters) ([]entities.Doctor, error)
	Specialties(ctx context.Context) []string
	ScheduleAppointment(ctx context.Context, req entities.AppointmentRequest) (*entities.AppointmentConfirmation, error)
}

// DoctorHandler serves the doctor finder and appointment confirmation.
type DoctorHandler struct {
	service DoctorService
}

// NewDoctorHandler creates a new doctor handler
func NewDoctorHandler(service DoctorService) *DoctorHandler {
	return &DoctorHandler{service: service}
}

// FindDoctors handles GET /api/doctors
func (h *DoctorHandler) FindDoctors(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filters := entities.DoctorFilters{
		Specialty:    strings.TrimSpace(query.Get("specialty")),
		Availability: strings.ToLower(strings.TrimSpace(query.Get("availability"))),
		SearchText:   strings.TrimSpace(query.Get("q")),
	}

	doctors, err := h.service.Find(r.Context(), strings.TrimSpace(query.Get("recommended")), filters)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"doctors": doctors,
		"count":   len(doctors),
	})
}

// ListSpecialties handles GET /api/doctors/specialties
func (h *DoctorHandler) ListSpecialties(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"specialties": h.service.Specialties(r.Context()),
	})
}

// ScheduleAppointment handles POST /api/appointments
func (h *DoctorHandler) ScheduleAppointment(w http.ResponseWriter, r *http.Request) {
	var req entities.AppointmentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	confirmation, err := h.service.ScheduleAppointment(r.Context(), req)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, confirmation)
}
