package entities

// AnalysisResult is the advisory produced for one submitted concern.
type AnalysisResult struct {
	DetectedSymptoms     []string `json:"detectedSymptoms"`
	Analysis             string   `json:"analysis"`
	Treatment            string   `json:"treatment"`
	Precautions          []string `json:"precautions"`
	WhenToSeeDoctor      string   `json:"whenToSeeDoctor"`
	RecommendedSpecialty string   `json:"recommendedSpecialty"`
}

// AnalysisOutcome classifies how a result was reached.
type AnalysisOutcome string

const (
	OutcomeMatched  AnalysisOutcome = "matched"
	OutcomeFallback AnalysisOutcome = "fallback"
	OutcomeGeneric  AnalysisOutcome = "generic"
)
