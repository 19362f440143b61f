package matching

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/campusmatch/campusmatch/internal/metrics"
	"github.com/campusmatch/campusmatch/internal/models"
	"github.com/campusmatch/campusmatch/internal/scoring"
)

// Threshold is the fixed score cutoff above which a match is persisted. The
// comparison is strict: a score of exactly 0.5 does not create a match.
const Threshold = 0.5

const defaultWorkers = 4

// EventCatalog loads the full event catalog.
type EventCatalog interface {
	ListAll(ctx context.Context) ([]models.Event, error)
}

// SponsorCatalog loads the full sponsor catalog.
type SponsorCatalog interface {
	ListAll(ctx context.Context) ([]models.Sponsor, error)
}

// MatchStore reads prior matches and persists new ones.
type MatchStore interface {
	MatchedSponsorIDs(ctx context.Context, eventID string) (map[string]struct{}, error)
	BulkInsert(ctx context.Context, matches []models.Match) ([]models.Match, error)
}

// Engine orchestrates one matching pass: catalog load, per-event dedup,
// concurrent pair scoring, threshold acceptance, and a single bulk write.
type Engine struct {
	events    EventCatalog
	sponsors  SponsorCatalog
	matches   MatchStore
	scorer    scoring.PairScorer
	workers   int
	logger    *slog.Logger
	collector *metrics.MatchingCollector
}

// NewEngine constructs a matching engine. The collector may be nil.
func NewEngine(events EventCatalog, sponsors SponsorCatalog, matches MatchStore, scorer scoring.PairScorer, workers int, logger *slog.Logger, collector *metrics.MatchingCollector) *Engine {
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &Engine{
		events:    events,
		sponsors:  sponsors,
		matches:   matches,
		scorer:    scorer,
		workers:   workers,
		logger:    logger,
		collector: collector,
	}
}

// pair is one (event, sponsor) candidate.
type pair struct {
	event   models.Event
	sponsor models.Sponsor
}

// Run executes one full matching pass and returns the newly persisted
// matches. An empty result is a normal outcome, not an error. Only a catalog
// read failure or a match write failure aborts the run; per-pair scoring
// failures collapse to the sentinel zero score and per-event dedup read
// failures degrade to scoring the full candidate set for that event.
func (e *Engine) Run(ctx context.Context) ([]models.Match, error) {
	runStart := time.Now()

	events, err := e.events.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load event catalog: %w", err)
	}

	sponsors, err := e.sponsors.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load sponsor catalog: %w", err)
	}

	pairs := e.enumerateCandidates(ctx, events, sponsors)
	e.logger.Info("matching pass started",
		"events", len(events),
		"sponsors", len(sponsors),
		"candidate_pairs", len(pairs),
		"workers", e.workers)

	if len(pairs) == 0 {
		e.collector.ObserveRun(time.Since(runStart), 0)
		return []models.Match{}, nil
	}

	assessments := e.scorePairs(ctx, pairs)

	// Accumulate in enumeration order so results are deterministic for a
	// given catalog snapshot regardless of worker scheduling.
	accepted := make([]models.Match, 0, len(pairs))
	for i, p := range pairs {
		assessment := assessments[i]

		failed := assessment == scoring.SentinelAssessment()
		e.collector.ObservePair(failed)

		e.logger.Debug("pair scored",
			"event_id", p.event.ID,
			"sponsor_id", p.sponsor.ID,
			"score", assessment.Score)

		if assessment.Score > Threshold {
			accepted = append(accepted, models.Match{
				EventID:    p.event.ID,
				SponsorID:  p.sponsor.ID,
				MatchScore: assessment.Score,
				Status:     models.MatchStatusPending,
			})
		}
	}

	if len(accepted) == 0 {
		e.logger.Info("matching pass complete, no new matches",
			"pairs_scored", len(pairs),
			"duration_ms", time.Since(runStart).Milliseconds())
		e.collector.ObserveRun(time.Since(runStart), 0)
		return []models.Match{}, nil
	}

	inserted, err := e.matches.BulkInsert(ctx, accepted)
	if err != nil {
		return nil, fmt.Errorf("failed to persist matches: %w", err)
	}

	e.logger.Info("matching pass complete",
		"pairs_scored", len(pairs),
		"matches_created", len(inserted),
		"duration_ms", time.Since(runStart).Milliseconds())
	e.collector.ObserveRun(time.Since(runStart), len(inserted))

	return inserted, nil
}

// enumerateCandidates walks the events × sponsors cross product, excluding
// sponsors already matched against each event. A dedup read failure is logged
// and treated as "no prior matches": a transient read error should not block
// the whole run, at the cost of possibly re-scoring an already matched pair.
func (e *Engine) enumerateCandidates(ctx context.Context, events []models.Event, sponsors []models.Sponsor) []pair {
	var pairs []pair

	for _, event := range events {
		excluded, err := e.matches.MatchedSponsorIDs(ctx, event.ID)
		if err != nil {
			e.logger.Warn("failed to load prior matches, scoring full candidate set",
				"event_id", event.ID,
				"error", err)
			excluded = map[string]struct{}{}
		}

		for _, sponsor := range sponsors {
			if _, ok := excluded[sponsor.ID]; ok {
				continue
			}
			pairs = append(pairs, pair{event: event, sponsor: sponsor})
		}
	}

	return pairs
}

// scorePairs runs the scorer over all candidates with a bounded worker pool.
// Each pair is independent; results are collected by index so the output
// order matches the input order.
func (e *Engine) scorePairs(ctx context.Context, pairs []pair) []models.MatchAssessment {
	workerCount := e.workers
	if len(pairs) < workerCount {
		workerCount = len(pairs)
	}

	type job struct {
		index int
		pair  pair
	}
	type result struct {
		index      int
		assessment models.MatchAssessment
	}

	jobChan := make(chan job, len(pairs))
	resultChan := make(chan result, len(pairs))

	for w := 0; w < workerCount; w++ {
		go func() {
			for j := range jobChan {
				resultChan <- result{
					index:      j.index,
					assessment: e.scorer.ScorePair(ctx, j.pair.event, j.pair.sponsor),
				}
			}
		}()
	}

	for i, p := range pairs {
		jobChan <- job{index: i, pair: p}
	}
	close(jobChan)

	assessments := make([]models.MatchAssessment, len(pairs))
	for range pairs {
		res := <-resultChan
		assessments[res.index] = res.assessment
	}
	close(resultChan)

	return assessments
}
