package models

import "time"

// MatchStatus tracks the lifecycle of a match after creation. The pipeline
// only ever creates pending matches; transitions happen elsewhere.
type MatchStatus string

const (
	MatchStatusPending  MatchStatus = "pending"
	MatchStatusAccepted MatchStatus = "accepted"
	MatchStatusRejected MatchStatus = "rejected"
)

// Match records a scored association between one event and one sponsor.
type Match struct {
	ID         string      `json:"id"`
	EventID    string      `json:"event_id"`
	SponsorID  string      `json:"sponsor_id"`
	MatchScore float64     `json:"match_score"`
	Status     MatchStatus `json:"status"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// MatchAssessment is the scored outcome for one candidate pair, as produced
// by the scorer. Score is clamped to [0.0, 1.0].
type MatchAssessment struct {
	Score     float64 `json:"matchScore"`
	Reasoning string  `json:"reasoning"`
}
