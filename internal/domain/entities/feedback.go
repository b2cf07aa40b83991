package entities

import "time"

// AnalysisFeedback records whether a user found an analysis helpful.
type AnalysisFeedback struct {
	ID        string    `json:"id" db:"id"`
	ConcernID string    `json:"concernId" db:"concern_id"`
	SessionID string    `json:"sessionId" db:"session_id"`
	Helpful   bool      `json:"helpful" db:"helpful"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Acknowledgement is the short message pair the front end shows as a toast.
type Acknowledgement struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}
