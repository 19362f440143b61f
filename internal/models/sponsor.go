package models

import (
	"encoding/json"
	"time"
)

// Sponsor describes an organization offering funding or support in exchange
// for exposure. Read-only for the matching pipeline.
type Sponsor struct {
	ID                 string          `json:"id"`
	CompanyName        string          `json:"company_name"`
	Industry           string          `json:"industry"`
	TargetDemographics json.RawMessage `json:"target_demographics"`
	MarketingGoals     string          `json:"marketing_goals"`
	BudgetRange        string          `json:"budget_range"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// DemographicsString renders the loosely structured demographics document for
// embedding in a prompt. Returns a placeholder when the document is absent.
func (s Sponsor) DemographicsString() string {
	if len(s.TargetDemographics) == 0 {
		return "not specified"
	}
	return string(s.TargetDemographics)
}
