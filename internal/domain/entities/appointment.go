package entities

// AppointmentRequest asks to book one of a doctor's offered slots.
type AppointmentRequest struct {
	DoctorID string `json:"doctorId"`
	Slot     string `json:"slot"`
}

// AppointmentConfirmation acknowledges a booking request. Nothing is reserved.
type AppointmentConfirmation struct {
	DoctorID   string          `json:"doctorId"`
	DoctorName string          `json:"doctorName"`
	Slot       string          `json:"slot"`
	Message    Acknowledgement `json:"message"`
}
