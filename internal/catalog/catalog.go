// Package catalog loads the versioned static tables the heuristics run
// against: the symptom dictionary, the specialty map and the doctor roster.
package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/carecompass/backend/internal/domain/entities"
)

//go:embed catalog.json
var embeddedCatalog []byte

// Document is the on-disk JSON shape of a catalog.
type Document struct {
	Version          string                  `json:"version"`
	DefaultSpecialty string                  `json:"defaultSpecialty"`
	Symptoms         []entities.SymptomEntry `json:"symptoms"`
	Specialties      map[string]string       `json:"specialties"`
	NearTerm         []string                `json:"nearTermAvailability"`
	CommonSymptoms   []string                `json:"commonSymptoms"`
	Doctors          []entities.Doctor       `json:"doctors"`
}

// Embedded returns the raw catalog compiled into the binary.
func Embedded() []byte {
	return append([]byte(nil), embeddedCatalog...)
}

// Parse decodes and validates a catalog document.
func Parse(data []byte) (*entities.Catalog, error) {
	doc, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return Build(doc)
}

// Decode reads a catalog document without building it. Unknown fields are rejected.
func Decode(data []byte) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return &doc, nil
}

// Build validates doc and turns it into a catalog.
func Build(doc *Document) (*entities.Catalog, error) {
	if err := Validate(doc); err != nil {
		return nil, err
	}

	specialties := make(entities.SpecialtyMap, len(doc.Specialties))
	for k, v := range doc.Specialties {
		specialties[entities.NormalizeSymptomKey(k)] = v
	}

	defaultSpecialty := doc.DefaultSpecialty
	if defaultSpecialty == "" {
		defaultSpecialty = entities.DefaultSpecialty
	}

	nearTerm := doc.NearTerm
	if len(nearTerm) == 0 {
		nearTerm = []string{entities.AvailabilityToday, entities.AvailabilityTomorrow}
	}

	return &entities.Catalog{
		Version:          doc.Version,
		Symptoms:         entities.NewSymptomDictionary(doc.Symptoms),
		Specialties:      specialties,
		DefaultSpecialty: defaultSpecialty,
		Doctors:          append([]entities.Doctor(nil), doc.Doctors...),
		NearTermLabels:   append([]string(nil), nearTerm...),
		CommonSymptoms:   append([]string(nil), doc.CommonSymptoms...),
	}, nil
}

// Validate checks the structural rules every catalog must satisfy.
func Validate(doc *Document) error {
	if strings.TrimSpace(doc.Version) == "" {
		return fmt.Errorf("catalog version is required")
	}
	if len(doc.Symptoms) == 0 {
		return fmt.Errorf("catalog has no symptoms")
	}

	seenKeys := make(map[string]struct{}, len(doc.Symptoms))
	for i, s := range doc.Symptoms {
		key := entities.NormalizeSymptomKey(s.Key)
		if key == "" {
			return fmt.Errorf("symptom %d: key is required", i)
		}
		if key != s.Key {
			return fmt.Errorf("symptom %q: key must be lowercase and trimmed", s.Key)
		}
		if _, dup := seenKeys[key]; dup {
			return fmt.Errorf("symptom %q: duplicate key", key)
		}
		seenKeys[key] = struct{}{}
		if s.Analysis == "" || s.Treatment == "" || s.WhenToSeeDoctor == "" {
			return fmt.Errorf("symptom %q: analysis, treatment and whenToSeeDoctor are required", key)
		}
		seenPrecautions := make(map[string]struct{}, len(s.Precautions))
		for _, p := range s.Precautions {
			if _, dup := seenPrecautions[p]; dup {
				return fmt.Errorf("symptom %q: duplicate precaution %q", key, p)
			}
			seenPrecautions[p] = struct{}{}
		}
	}

	for k := range doc.Specialties {
		if _, ok := seenKeys[entities.NormalizeSymptomKey(k)]; !ok {
			return fmt.Errorf("specialty mapping for unknown symptom %q", k)
		}
	}

	seenIDs := make(map[string]struct{}, len(doc.Doctors))
	for i, d := range doc.Doctors {
		if d.ID == "" {
			return fmt.Errorf("doctor %d: id is required", i)
		}
		if _, dup := seenIDs[d.ID]; dup {
			return fmt.Errorf("doctor %q: duplicate id", d.ID)
		}
		seenIDs[d.ID] = struct{}{}
		if d.Rating < 0 || d.Rating > 5 {
			return fmt.Errorf("doctor %q: rating %.1f outside 0-5", d.ID, d.Rating)
		}
		if d.Distance < 0 {
			return fmt.Errorf("doctor %q: negative distance", d.ID)
		}
	}
	return nil
}

// EmbeddedSource serves the catalog compiled into the binary.
type EmbeddedSource struct{}

// NewEmbeddedSource creates a source for the built-in catalog.
func NewEmbeddedSource() *EmbeddedSource {
	return &EmbeddedSource{}
}

// Load parses the embedded catalog.
func (s *EmbeddedSource) Load(_ context.Context) (*entities.Catalog, error) {
	return Parse(embeddedCatalog)
}

// FileSource reads a catalog from a JSON file on disk.
type FileSource struct {
	path string
}

// NewFileSource creates a source for the catalog at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Load reads and parses the file.
func (s *FileSource) Load(_ context.Context) (*entities.Catalog, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", s.path, err)
	}
	return Parse(data)
}
