package services

import (
	"sort"
	"strings"

	"github.com/carecompass/backend/internal/domain/entities"
)

// DoctorRanker filters and orders a doctor roster for display.
type DoctorRanker struct {
	nearTerm map[string]struct{}
}

// NewDoctorRanker creates a ranker. nearTerm lists the availability labels the
// "this-week" filter accepts.
func NewDoctorRanker(nearTerm []string) *DoctorRanker {
	set := make(map[string]struct{}, len(nearTerm))
	for _, label := range nearTerm {
		set[label] = struct{}{}
	}
	return &DoctorRanker{nearTerm: set}
}

// FindDoctors returns the doctors matching filters, recommended specialty
// first, then by availability bucket, then by distance. The roster is never
// modified; the result is a new slice.
func (r *DoctorRanker) FindDoctors(roster []entities.Doctor, recommendedSpecialty string, filters entities.DoctorFilters) []entities.Doctor {
	search := strings.ToLower(strings.TrimSpace(filters.SearchText))

	out := make([]entities.Doctor, 0, len(roster))
	for _, d := range roster {
		if filters.Specialty != "" && d.Specialty != filters.Specialty {
			continue
		}
		if !r.matchesAvailability(d.Availability, filters.Availability) {
			continue
		}
		if search != "" && !matchesSearch(d, search) {
			continue
		}
		out = append(out, d)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if recommendedSpecialty != "" {
			aRec, bRec := a.Specialty == recommendedSpecialty, b.Specialty == recommendedSpecialty
			if aRec != bRec {
				return aRec
			}
		}
		if ab, bb := availabilityBucket(a.Availability), availabilityBucket(b.Availability); ab != bb {
			return ab < bb
		}
		return a.Distance < b.Distance
	})

	return out
}

// Specialties returns the distinct specialties in roster order.
func (r *DoctorRanker) Specialties(roster []entities.Doctor) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, d := range roster {
		if _, ok := seen[d.Specialty]; ok {
			continue
		}
		seen[d.Specialty] = struct{}{}
		out = append(out, d.Specialty)
	}
	return out
}

func (r *DoctorRanker) matchesAvailability(label, filter string) bool {
	switch filter {
	case "":
		return true
	case entities.AvailabilityFilterToday:
		return label == entities.AvailabilityToday
	case entities.AvailabilityFilterTomorrow:
		return label == entities.AvailabilityTomorrow
	case entities.AvailabilityFilterThisWeek:
		_, ok := r.nearTerm[label]
		return ok
	default:
		return false
	}
}

func matchesSearch(d entities.Doctor, search string) bool {
	return strings.Contains(strings.ToLower(d.Name), search) ||
		strings.Contains(strings.ToLower(d.Specialty), search) ||
		strings.Contains(strings.ToLower(d.Location), search)
}

func availabilityBucket(label string) int {
	switch label {
	case entities.AvailabilityToday:
		return 0
	case entities.AvailabilityTomorrow:
		return 1
	default:
		return 2
	}
}
