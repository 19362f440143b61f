package scoring

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/campusmatch/campusmatch/internal/config"
	"github.com/campusmatch/campusmatch/internal/models"
	openai "github.com/sashabaranov/go-openai"
)

// ErrorReasoning is the sentinel rationale attached to pairs whose scoring
// failed. The sentinel score of 0.0 sits below the acceptance threshold, so a
// failed pair can never produce a match.
const ErrorReasoning = "Error analyzing match."

// PairScorer produces a compatibility assessment for one event/sponsor pair.
// Implementations absorb their own failures: a scoring failure yields the
// sentinel assessment, never an error, so one bad pair cannot abort a batch.
type PairScorer interface {
	ScorePair(ctx context.Context, event models.Event, sponsor models.Sponsor) models.MatchAssessment
}

// SentinelAssessment returns the assessment recorded for a pair whose
// scoring failed.
func SentinelAssessment() models.MatchAssessment {
	return models.MatchAssessment{Score: 0.0, Reasoning: ErrorReasoning}
}

// OpenAIScorer scores pairs by prompting the OpenAI chat completion API.
type OpenAIScorer struct {
	client *openai.Client
	config config.OpenAIConfig
	retry  RetryPolicy
	logger *slog.Logger
}

// NewOpenAIScorer creates a scorer backed by the OpenAI API.
func NewOpenAIScorer(cfg config.OpenAIConfig, logger *slog.Logger) *OpenAIScorer {
	return NewOpenAIScorerWithClient(openai.NewClient(cfg.APIKey), cfg, DefaultRetryPolicy(), logger)
}

// NewOpenAIScorerWithClient creates a scorer with an explicit client and retry
// policy. Used by tests to point at a stub server with fast backoff.
func NewOpenAIScorerWithClient(client *openai.Client, cfg config.OpenAIConfig, retry RetryPolicy, logger *slog.Logger) *OpenAIScorer {
	return &OpenAIScorer{
		client: client,
		config: cfg,
		retry:  retry,
		logger: logger,
	}
}

// ScorePair builds the pair prompt, invokes the reasoning service, and parses
// its response. Transport failures are retried with backoff; parse failures
// are not, since the same malformed output would come back again. Every
// failure path collapses to the sentinel assessment.
func (s *OpenAIScorer) ScorePair(ctx context.Context, event models.Event, sponsor models.Sponsor) models.MatchAssessment {
	prompt := BuildMatchPrompt(event, sponsor)

	var resp openai.ChatCompletionResponse
	err := Retry(ctx, s.retry, func() error {
		timeout := s.config.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		apiCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		r, err := s.client.CreateChatCompletion(apiCtx, openai.ChatCompletionRequest{
			Model:               s.config.Model,
			Temperature:         s.config.Temperature,
			MaxCompletionTokens: s.config.MaxTokens,
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: systemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
		})
		if err != nil {
			return classifyCallError(ctx, err)
		}

		resp = r
		return nil
	})
	if err != nil {
		s.logger.Error("reasoning service call failed",
			"event_id", event.ID,
			"sponsor_id", sponsor.ID,
			"error", err)
		return SentinelAssessment()
	}

	if len(resp.Choices) == 0 {
		s.logger.Error("reasoning service returned no choices",
			"event_id", event.ID,
			"sponsor_id", sponsor.ID,
			"model", s.config.Model)
		return SentinelAssessment()
	}

	assessment, err := ParseMatchAssessment(resp.Choices[0].Message.Content)
	if err != nil {
		s.logger.Error("failed to parse assessment",
			"event_id", event.ID,
			"sponsor_id", sponsor.ID,
			"error", err)
		return SentinelAssessment()
	}

	s.logger.Debug("scored pair",
		"event_id", event.ID,
		"sponsor_id", sponsor.ID,
		"score", assessment.Score)

	return assessment
}

// classifyCallError marks transport failures as retryable. Cancellation of
// the parent context is terminal; everything else (timeouts, network errors,
// rate limits) may succeed on a later attempt.
func classifyCallError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return fmt.Errorf("call aborted: %w", ctx.Err())
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return NewRetryableError(err)
}
