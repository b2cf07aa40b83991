package entities

// Availability labels with their own ranking bucket.
const (
	AvailabilityToday    = "Today"
	AvailabilityTomorrow = "Tomorrow"
)

// Availability filter values accepted from callers.
const (
	AvailabilityFilterToday    = "today"
	AvailabilityFilterTomorrow = "tomorrow"
	AvailabilityFilterThisWeek = "this-week"
)

// Doctor is one entry of the static roster.
type Doctor struct {
	ID                string   `json:"id" db:"id"`
	Name              string   `json:"name" db:"name"`
	Specialty         string   `json:"specialty" db:"specialty"`
	Location          string   `json:"location" db:"location"`
	Distance          float64  `json:"distance" db:"distance"`
	Availability      string   `json:"availability" db:"availability"`
	Timings           string   `json:"timings" db:"timings"`
	AvailableSlots    []string `json:"availableSlots" db:"available_slots"`
	Rating            float64  `json:"rating" db:"rating"`
	InsuranceAccepted []string `json:"insuranceAccepted" db:"insurance_accepted"`
	Phone             string   `json:"phone" db:"phone"`
	Image             string   `json:"image" db:"image"`
}

// HasSlot reports whether slot is one of the doctor's offered slots.
func (d Doctor) HasSlot(slot string) bool {
	for _, s := range d.AvailableSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// DoctorFilters narrows a roster. Empty fields are inactive.
type DoctorFilters struct {
	Specialty    string `json:"specialty,omitempty"`
	Availability string `json:"availability,omitempty"`
	SearchText   string `json:"searchText,omitempty"`
}

// IsValidAvailabilityFilter reports whether v is empty or a known filter value.
func IsValidAvailabilityFilter(v string) bool {
	switch v {
	case "", AvailabilityFilterToday, AvailabilityFilterTomorrow, AvailabilityFilterThisWeek:
		return true
	}
	return false
}
