package evaluation

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// LoadGoldenCases reads and parses a golden case set from a JSON file.
func LoadGoldenCases(path string) ([]GoldenCase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read golden cases file: %w", err)
	}
	return ParseGoldenCases(data)
}

// ParseGoldenCases decodes a JSON array of golden cases.
func ParseGoldenCases(data []byte) ([]GoldenCase, error) {
	var cases []GoldenCase
	if err := json.Unmarshal(data, &cases); err != nil {
		return nil, fmt.Errorf("failed to parse golden cases: %w", err)
	}
	return cases, nil
}

// ValidateGoldenCases checks required fields and, when knownSymptoms is
// non-nil, that every expected symptom exists in the dictionary under test.
func ValidateGoldenCases(cases []GoldenCase, knownSymptoms []string) error {
	seen := make(map[string]struct{}, len(cases))

	var known map[string]struct{}
	if knownSymptoms != nil {
		known = make(map[string]struct{}, len(knownSymptoms))
		for _, k := range knownSymptoms {
			known[k] = struct{}{}
		}
	}

	for i, c := range cases {
		if c.ID == "" {
			return fmt.Errorf("case at index %d: missing id", i)
		}
		if _, dup := seen[c.ID]; dup {
			return fmt.Errorf("case at index %d: duplicate id %q", i, c.ID)
		}
		seen[c.ID] = struct{}{}

		if strings.TrimSpace(c.Concern) == "" && len(c.SelectedSymptoms) == 0 {
			return fmt.Errorf("case %q: needs a concern or selected symptoms", c.ID)
		}
		if c.ExpectedSpecialty == "" {
			return fmt.Errorf("case %q: missing expected specialty", c.ID)
		}
		if !c.Difficulty.IsValid() {
			return fmt.Errorf("case %q: invalid difficulty %q (must be easy/medium/hard)", c.ID, c.Difficulty)
		}
		if known == nil {
			continue
		}
		for _, s := range c.ExpectedSymptoms {
			if _, ok := known[s]; !ok {
				return fmt.Errorf("case %q: unknown expected symptom %q", c.ID, s)
			}
		}
	}

	return nil
}
