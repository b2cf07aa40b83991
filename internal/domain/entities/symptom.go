package entities

import "strings"

// DefaultSpecialty is recommended when no symptom maps to a specialty.
const DefaultSpecialty = "Family Medicine"

// SymptomEntry is the self-care guidance for one symptom phrase.
type SymptomEntry struct {
	Key             string   `json:"key"`
	Analysis        string   `json:"analysis"`
	Treatment       string   `json:"treatment"`
	Precautions     []string `json:"precautions"`
	WhenToSeeDoctor string   `json:"whenToSeeDoctor"`
}

// SymptomDictionary is an ordered, read-only set of symptom entries keyed by
// lowercase phrase. Iteration order is insertion order.
type SymptomDictionary struct {
	keys    []string
	entries map[string]SymptomEntry
}

// NewSymptomDictionary builds a dictionary from entries in order. Keys are
// lowercased and trimmed; later duplicates are ignored.
func NewSymptomDictionary(entries []SymptomEntry) *SymptomDictionary {
	d := &SymptomDictionary{
		keys:    make([]string, 0, len(entries)),
		entries: make(map[string]SymptomEntry, len(entries)),
	}
	for _, e := range entries {
		key := NormalizeSymptomKey(e.Key)
		if key == "" {
			continue
		}
		if _, exists := d.entries[key]; exists {
			continue
		}
		e.Key = key
		e.Precautions = append([]string(nil), e.Precautions...)
		d.keys = append(d.keys, key)
		d.entries[key] = e
	}
	return d
}

// Keys returns the symptom keys in dictionary order.
func (d *SymptomDictionary) Keys() []string {
	return append([]string(nil), d.keys...)
}

// Get returns the entry for key.
func (d *SymptomDictionary) Get(key string) (SymptomEntry, bool) {
	e, ok := d.entries[key]
	return e, ok
}

// Len returns the number of entries.
func (d *SymptomDictionary) Len() int {
	return len(d.keys)
}

// NormalizeSymptomKey lowercases and trims a symptom phrase or tag.
func NormalizeSymptomKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// SpecialtyMap maps symptom keys to the specialty that treats them.
type SpecialtyMap map[string]string

// For returns the specialty for key, falling back to fallback.
func (m SpecialtyMap) For(key, fallback string) string {
	if s, ok := m[key]; ok && s != "" {
		return s
	}
	return fallback
}
