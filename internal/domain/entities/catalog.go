package entities

// Catalog bundles the static tables the heuristics run against. It is loaded
// once at startup and never mutated.
type Catalog struct {
	Version          string
	Symptoms         *SymptomDictionary
	Specialties      SpecialtyMap
	DefaultSpecialty string
	Doctors          []Doctor
	NearTermLabels   []string
	CommonSymptoms   []string
}

// FindDoctor returns the roster entry with id.
func (c *Catalog) FindDoctor(id string) (Doctor, bool) {
	for _, d := range c.Doctors {
		if d.ID == id {
			return d, true
		}
	}
	return Doctor{}, false
}

// Fallback returns the default specialty, or DefaultSpecialty when unset.
func (c *Catalog) Fallback() string {
	if c.DefaultSpecialty != "" {
		return c.DefaultSpecialty
	}
	return DefaultSpecialty
}
