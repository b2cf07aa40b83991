package evaluation

import "time"

// Difficulty grades how much the matcher has to work for a case.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"   // one symptom named verbatim
	DifficultyMedium Difficulty = "medium" // several symptoms, or tags plus text
	DifficultyHard   Difficulty = "hard"   // only reachable through the prefix fallback
)

// IsValid checks if the difficulty is one of the defined constants.
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// GoldenCase is a labeled concern with the symptoms and specialty it should produce.
type GoldenCase struct {
	ID                string     `json:"id"`
	Concern           string     `json:"concern"`
	SelectedSymptoms  []string   `json:"selectedSymptoms"`
	ExpectedSymptoms  []string   `json:"expectedSymptoms"`
	ExpectedSpecialty string     `json:"expectedSpecialty"`
	Difficulty        Difficulty `json:"difficulty"`
}

// CaseResult holds the evaluation outcome for a single case.
type CaseResult struct {
	CaseID           string        `json:"caseId"`
	Difficulty       Difficulty    `json:"difficulty"`
	Detected         []string      `json:"detected"`
	Specialty        string        `json:"specialty"`
	Outcome          string        `json:"outcome"`
	Recall           float64       `json:"recall"`
	MRR              float64       `json:"mrr"`
	SpecialtyCorrect bool          `json:"specialtyCorrect"`
	Err              string        `json:"error,omitempty"`
	Latency          time.Duration `json:"latency"`
}

// Summary holds aggregate metrics across all golden cases.
type Summary struct {
	K                 int                               `json:"k"`
	TotalCases        int                               `json:"totalCases"`
	Failed            int                               `json:"failed"`
	AvgRecall         float64                           `json:"avgRecall"`
	AvgMRR            float64                           `json:"avgMrr"`
	SpecialtyAccuracy float64                           `json:"specialtyAccuracy"`
	AvgLatency        time.Duration                     `json:"avgLatency"`
	ByDifficulty      map[Difficulty]*DifficultySummary `json:"byDifficulty"`
	Results           []CaseResult                      `json:"results,omitempty"`
}

// DifficultySummary holds metrics grouped by difficulty.
type DifficultySummary struct {
	Count             int     `json:"count"`
	AvgRecall         float64 `json:"avgRecall"`
	AvgMRR            float64 `json:"avgMrr"`
	SpecialtyAccuracy float64 `json:"specialtyAccuracy"`
}
