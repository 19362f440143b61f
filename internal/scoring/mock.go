package scoring

import (
	"context"
	"fmt"
	"strings"

	"github.com/campusmatch/campusmatch/internal/models"
)

// MockScorer provides a rule-based implementation of PairScorer for testing
// and local development without reasoning-service calls. Scoring is
// deterministic for a given pair.
type MockScorer struct{}

// NewMockScorer creates a mock scorer.
func NewMockScorer() *MockScorer {
	return &MockScorer{}
}

// ScorePair assesses a pair using simple attribute overlap heuristics.
func (m *MockScorer) ScorePair(ctx context.Context, event models.Event, sponsor models.Sponsor) models.MatchAssessment {
	score := 0.1
	factors := []string{}

	if industryMatchesCategory(sponsor.Industry, event.Category) {
		score += 0.45
		factors = append(factors, fmt.Sprintf("sponsor industry %q aligns with event category %q", sponsor.Industry, event.Category))
	}

	if demographicsMention(sponsor, event.Category) {
		score += 0.2
		factors = append(factors, "target demographics overlap with the event audience")
	}

	if sponsor.BudgetRange != "" && sponsor.BudgetRange == event.BudgetRange {
		score += 0.15
		factors = append(factors, "budget ranges are compatible")
	}

	if event.AudienceSize >= 1000 {
		score += 0.1
		factors = append(factors, fmt.Sprintf("large audience of %d attendees", event.AudienceSize))
	}

	reasoning := "Limited overlap between sponsor profile and event."
	if len(factors) > 0 {
		reasoning = strings.Join(factors, "; ") + "."
	}

	return models.MatchAssessment{
		Score:     clampScore(score),
		Reasoning: reasoning,
	}
}

// industryMatchesCategory checks for keyword overlap between a sponsor
// industry and an event category.
func industryMatchesCategory(industry, category string) bool {
	industry = strings.ToLower(strings.TrimSpace(industry))
	category = strings.ToLower(strings.TrimSpace(category))

	if industry == "" || category == "" {
		return false
	}
	if industry == category {
		return true
	}
	return strings.Contains(industry, category) || strings.Contains(category, industry)
}

// demographicsMention checks whether the sponsor's demographics document
// references the event category or a student audience.
func demographicsMention(sponsor models.Sponsor, category string) bool {
	demographics := strings.ToLower(sponsor.DemographicsString())
	if demographics == "not specified" {
		return false
	}

	if category != "" && strings.Contains(demographics, strings.ToLower(category)) {
		return true
	}

	for _, keyword := range []string{"student", "college", "university", "campus"} {
		if strings.Contains(demographics, keyword) {
			return true
		}
	}

	return false
}
