package scoring

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/campusmatch/campusmatch/internal/models"
)

const systemPrompt = `CRITICAL: You MUST output ONLY valid JSON. Do not include any text before or after the JSON object. Do not wrap it in markdown code blocks. Output the raw JSON object directly.

You are an expert event-sponsor matchmaking AI. Your task is to analyze an event posted by a student organization and a potential sponsor, and determine how good of a match they are.

Consider:
- Alignment between the sponsor's industry and the event's category
- Overlap between the sponsor's target demographics and the event's audience
- Whether the sponsor's marketing goals are served by the event
- Compatibility of the two budget ranges
- Audience size relative to the sponsor's exposure goals

Provide a match score from 0.0 to 1.0, where 1.0 is a perfect match, and a brief reasoning for your score.

Output Format: Your response MUST be ONLY this exact JSON structure with no additional text:
{
  "matchScore": 0.85,
  "reasoning": "The sponsor's target demographic of young tech enthusiasts aligns perfectly with the hackathon's audience. Their marketing goal of brand awareness is also a great fit."
}

The "matchScore" field is REQUIRED and must be a number between 0.0 and 1.0. The "reasoning" field is REQUIRED and must be a short string.`

const matchPromptTemplate = `Analyze the following event and sponsor and assess their compatibility.

Event Details:
- Title: %s
- Description: %s
- Category: %s
- Audience Size: %d
- Budget: %s
- Location: %s

Sponsor Details:
- Company: %s
- Industry: %s
- Marketing Goals: %s
- Target Demographics: %s
- Sponsorship Budget: %s

Return your response as a JSON object with two keys: "matchScore" (a number from 0.0 to 1.0) and "reasoning" (a string).`

// BuildMatchPrompt creates the user prompt for one candidate pair, embedding
// every attribute of the event and the sponsor.
func BuildMatchPrompt(event models.Event, sponsor models.Sponsor) string {
	return fmt.Sprintf(matchPromptTemplate,
		event.Title,
		event.Description,
		event.Category,
		event.AudienceSize,
		event.BudgetRange,
		event.Location,
		sponsor.CompanyName,
		sponsor.Industry,
		sponsor.MarketingGoals,
		sponsor.DemographicsString(),
		sponsor.BudgetRange,
	)
}

// SystemPrompt returns the matchmaking system prompt.
func SystemPrompt() string {
	return systemPrompt
}

var (
	fencedJSONPattern = regexp.MustCompile("(?s)```(?:json)?\\s*({.+})\\s*```")
	rawJSONPattern    = regexp.MustCompile("(?s)({.+})")
)

// ParseMatchAssessment converts the reasoning service's free-form text output
// into a structured assessment. The model is instructed to return bare JSON
// but will occasionally wrap it in markdown fences or surrounding prose, so
// the JSON object is extracted before parsing. The score is clamped to
// [0.0, 1.0] regardless of what the model returned.
func ParseMatchAssessment(raw string) (models.MatchAssessment, error) {
	jsonStr := strings.TrimSpace(raw)

	if matches := fencedJSONPattern.FindStringSubmatch(jsonStr); len(matches) > 1 {
		jsonStr = matches[1]
	} else if matches := rawJSONPattern.FindStringSubmatch(jsonStr); len(matches) > 1 {
		jsonStr = matches[1]
	}

	var rawData struct {
		MatchScore *float64 `json:"matchScore"`
		Reasoning  string   `json:"reasoning"`
	}

	if err := json.Unmarshal([]byte(jsonStr), &rawData); err != nil {
		return models.MatchAssessment{}, fmt.Errorf("failed to parse assessment as JSON: %w (response: %.200s)", err, raw)
	}

	if rawData.MatchScore == nil {
		return models.MatchAssessment{}, fmt.Errorf("assessment missing matchScore field (response: %.200s)", raw)
	}
	if rawData.Reasoning == "" {
		return models.MatchAssessment{}, fmt.Errorf("assessment missing reasoning field (response: %.200s)", raw)
	}

	return models.MatchAssessment{
		Score:     clampScore(*rawData.MatchScore),
		Reasoning: rawData.Reasoning,
	}, nil
}

// clampScore bounds a score into [0.0, 1.0]. The reasoning service is asked
// for a score in that range but is not trusted to honor it.
func clampScore(score float64) float64 {
	if score < 0.0 {
		return 0.0
	}
	if score > 1.0 {
		return 1.0
	}
	return score
}
