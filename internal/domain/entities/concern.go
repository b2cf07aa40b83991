package entities

import "time"

// ConcernStatus is the lifecycle label shown next to a recent concern.
type ConcernStatus string

const (
	ConcernStatusActive ConcernStatus = "Active"
)

// HealthConcern is a submitted concern and its analysis, held in session
// state until the session expires or the user rejects the analysis.
type HealthConcern struct {
	ID           string          `json:"id"`
	SessionID    string          `json:"sessionId"`
	Concern      string          `json:"concern"`
	SelectedTags []string        `json:"selectedSymptoms"`
	Result       *AnalysisResult `json:"result"`
	Status       ConcernStatus   `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
}
