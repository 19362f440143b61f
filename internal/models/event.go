package models

import "time"

// Event describes a sponsorship opportunity posted by a student organization.
// Events are created by organizers and are read-only for the matching pipeline.
type Event struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	AudienceSize int       `json:"audience_size"`
	BudgetRange  string    `json:"budget_range"`
	Location     string    `json:"location"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
