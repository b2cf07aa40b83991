package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/carecompass/backend/internal/domain/entities"
	apperrors "github.com/carecompass/backend/pkg/errors"
)

// ErrEmptyConcernMessage is shown when neither text nor tags were supplied.
const ErrEmptyConcernMessage = "Please enter your health concern or select symptoms."

const (
	selectedTagScore = 1.0
	prefixMatchScore = 0.5
)

const (
	genericAnalysis = "Based on your description, we recommend consulting with a healthcare professional for a proper diagnosis. " +
		"Your symptoms could be related to various conditions, and a doctor can provide appropriate guidance after examination."
	genericTreatment       = "It's best to consult with a healthcare professional before attempting any self-treatment."
	genericWhenToSeeDoctor = "If symptoms are severe, persistent, or worsening, please seek medical attention promptly."

	multiAnalysisFormat  = "Based on your description, we've identified multiple symptoms including %s. %s"
	multiTreatmentFormat = "For your combination of symptoms: %s However, for multiple symptoms, it's best to consult with a healthcare professional for personalized advice."
	multiWhenToSeeDoctor = "With multiple symptoms, we recommend consulting a healthcare provider soon for proper evaluation."
)

var genericPrecautions = []string{
	"Monitor your symptoms and document any changes",
	"Get adequate rest and stay hydrated",
	"Avoid self-medication without professional advice",
	"Consider consulting with a primary care physician",
}

var (
	analysisCounterOnce sync.Once
	analysisCounter     metric.Int64Counter
)

// SymptomMatch is one detected dictionary key with its relevance score.
type SymptomMatch struct {
	Key   string
	Score float64
}

// SymptomMatcher maps free text and selected tags onto the symptom dictionary.
// It is pure: the same input always yields the same result.
type SymptomMatcher struct {
	dict        *entities.SymptomDictionary
	specialties entities.SpecialtyMap
	fallback    string
}

// NewSymptomMatcher creates a matcher over the catalog's dictionary and specialty map.
func NewSymptomMatcher(catalog *entities.Catalog) *SymptomMatcher {
	return &SymptomMatcher{
		dict:        catalog.Symptoms,
		specialties: catalog.Specialties,
		fallback:    catalog.Fallback(),
	}
}

// Analyze produces an advisory for the concern text and selected tags.
func (m *SymptomMatcher) Analyze(concern string, selectedTags []string) (*entities.AnalysisResult, error) {
	result, _, err := m.AnalyzeWithOutcome(concern, selectedTags)
	return result, err
}

// AnalyzeWithOutcome is Analyze plus the path that produced the result.
func (m *SymptomMatcher) AnalyzeWithOutcome(concern string, selectedTags []string) (*entities.AnalysisResult, entities.AnalysisOutcome, error) {
	if err := m.Validate(concern, selectedTags); err != nil {
		return nil, "", err
	}

	matches, outcome := m.Match(concern, selectedTags)
	recordAnalysisOutcome(outcome)

	if len(matches) == 0 {
		return m.genericResult(), outcome, nil
	}
	return m.buildResult(matches), outcome, nil
}

// Validate rejects input with neither concern text nor selected tags.
func (m *SymptomMatcher) Validate(concern string, selectedTags []string) error {
	if strings.TrimSpace(concern) == "" && len(selectedTags) == 0 {
		return apperrors.NewValidationError(ErrEmptyConcernMessage)
	}
	return nil
}

// Match scores dictionary keys against the input and returns them ordered by
// score, highest first. On equal scores selected tags come before text
// matches, and each group keeps dictionary order.
func (m *SymptomMatcher) Match(concern string, selectedTags []string) ([]SymptomMatch, entities.AnalysisOutcome) {
	text := strings.ToLower(concern)
	scores := make(map[string]float64)
	selected := make(map[string]struct{}, len(selectedTags))

	for _, tag := range selectedTags {
		key := entities.NormalizeSymptomKey(tag)
		if _, ok := m.dict.Get(key); ok {
			scores[key] = selectedTagScore
			selected[key] = struct{}{}
		}
	}

	for _, key := range m.dict.Keys() {
		if _, seen := scores[key]; seen {
			continue
		}
		if !strings.Contains(text, key) {
			continue
		}
		keywordScore := float64(len(key)) / float64(len(text))
		scores[key] = keywordScore * float64(strings.Count(text, key))
	}

	outcome := entities.OutcomeMatched
	if len(scores) == 0 && strings.TrimSpace(text) != "" {
		for _, key := range m.dict.Keys() {
			if strings.Contains(text, prefix(key, 4)) || strings.Contains(text, prefix(key, 3)) {
				scores[key] = prefixMatchScore
			}
		}
		outcome = entities.OutcomeFallback
	}

	if len(scores) == 0 {
		return nil, entities.OutcomeGeneric
	}

	matches := make([]SymptomMatch, 0, len(scores))
	for _, key := range m.dict.Keys() {
		if _, ok := selected[key]; ok {
			matches = append(matches, SymptomMatch{Key: key, Score: scores[key]})
		}
	}
	for _, key := range m.dict.Keys() {
		if _, ok := selected[key]; ok {
			continue
		}
		if score, ok := scores[key]; ok {
			matches = append(matches, SymptomMatch{Key: key, Score: score})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches, outcome
}

func (m *SymptomMatcher) buildResult(matches []SymptomMatch) *entities.AnalysisResult {
	primary, _ := m.dict.Get(matches[0].Key)
	specialty := m.specialties.For(primary.Key, m.fallback)

	if len(matches) == 1 {
		return &entities.AnalysisResult{
			DetectedSymptoms:     []string{primary.Key},
			Analysis:             primary.Analysis,
			Treatment:            primary.Treatment,
			Precautions:          append([]string(nil), primary.Precautions...),
			WhenToSeeDoctor:      primary.WhenToSeeDoctor,
			RecommendedSpecialty: specialty,
		}
	}

	detected := make([]string, len(matches))
	var precautions []string
	for i, match := range matches {
		detected[i] = match.Key
		entry, _ := m.dict.Get(match.Key)
		precautions = append(precautions, entry.Precautions...)
	}

	return &entities.AnalysisResult{
		DetectedSymptoms:     detected,
		Analysis:             fmt.Sprintf(multiAnalysisFormat, strings.Join(detected, ", "), primary.Analysis),
		Treatment:            fmt.Sprintf(multiTreatmentFormat, primary.Treatment),
		Precautions:          dedupe(precautions),
		WhenToSeeDoctor:      multiWhenToSeeDoctor,
		RecommendedSpecialty: specialty,
	}
}

func (m *SymptomMatcher) genericResult() *entities.AnalysisResult {
	return &entities.AnalysisResult{
		DetectedSymptoms:     []string{},
		Analysis:             genericAnalysis,
		Treatment:            genericTreatment,
		Precautions:          append([]string(nil), genericPrecautions...),
		WhenToSeeDoctor:      genericWhenToSeeDoctor,
		RecommendedSpecialty: m.fallback,
	}
}

// prefix returns the first n bytes of s, or s itself when shorter.
func prefix(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// dedupe keeps the first occurrence of each string.
func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

func initAnalysisCounter() {
	meter := otel.Meter("github.com/carecompass/backend/symptom_matcher")
	counter, err := meter.Int64Counter(
		"symptom.analysis.count",
		metric.WithDescription("Count of symptom analyses by outcome"),
	)
	if err == nil {
		analysisCounter = counter
	}
}

func recordAnalysisOutcome(outcome entities.AnalysisOutcome) {
	analysisCounterOnce.Do(initAnalysisCounter)
	if analysisCounter == nil {
		return
	}
	analysisCounter.Add(
		context.Background(),
		1,
		metric.WithAttributes(attribute.String("analysis.outcome", string(outcome))),
	)
}
