package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/campusmatch/campusmatch/internal/models"
	"github.com/google/uuid"
)

// MatchRepository persists and queries match rows in PostgreSQL.
type MatchRepository struct {
	db *sql.DB
}

// NewMatchRepository creates a new PostgreSQL match repository.
func NewMatchRepository(db *sql.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

// MatchedSponsorIDs returns the set of sponsor identifiers already matched
// against the given event. Zero rows is a valid empty set, not an error.
func (r *MatchRepository) MatchedSponsorIDs(ctx context.Context, eventID string) (map[string]struct{}, error) {
	query := `SELECT sponsor_id FROM matches WHERE event_id = $1`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches for event %s: %w", eventID, err)
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var sponsorID string
		if err := rows.Scan(&sponsorID); err != nil {
			return nil, fmt.Errorf("failed to scan sponsor id: %w", err)
		}
		ids[sponsorID] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate matches: %w", err)
	}

	return ids, nil
}

// BulkInsert writes all accepted matches in a single transaction and returns
// the inserted rows with their assigned identifiers and timestamps. A
// uniqueness conflict on (event_id, sponsor_id) means another run already
// persisted that pair; the row is silently skipped rather than failing the
// batch. Any other error rolls back the whole batch.
func (r *MatchRepository) BulkInsert(ctx context.Context, matches []models.Match) ([]models.Match, error) {
	if len(matches) == 0 {
		return []models.Match{}, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO matches (id, event_id, sponsor_id, match_score, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (event_id, sponsor_id) DO NOTHING
		RETURNING id, created_at, updated_at
	`

	now := time.Now().UTC()
	inserted := make([]models.Match, 0, len(matches))

	for _, match := range matches {
		match.ID = uuid.NewString()
		match.CreatedAt = now
		match.UpdatedAt = now

		err := tx.QueryRowContext(ctx, query,
			match.ID,
			match.EventID,
			match.SponsorID,
			match.MatchScore,
			match.Status,
			match.CreatedAt,
			match.UpdatedAt,
		).Scan(&match.ID, &match.CreatedAt, &match.UpdatedAt)

		if err == sql.ErrNoRows {
			// Conflict: a concurrent run won the race for this pair.
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to insert match %s/%s: %w", match.EventID, match.SponsorID, err)
		}

		inserted = append(inserted, match)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit matches: %w", err)
	}

	return inserted, nil
}

// ListAll returns every match row, newest first.
func (r *MatchRepository) ListAll(ctx context.Context) ([]models.Match, error) {
	query := `
		SELECT id, event_id, sponsor_id, COALESCE(match_score, 0), COALESCE(status, 'pending'),
		       created_at, updated_at
		FROM matches
		ORDER BY created_at DESC, id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	var matches []models.Match
	for rows.Next() {
		var match models.Match
		if err := rows.Scan(
			&match.ID,
			&match.EventID,
			&match.SponsorID,
			&match.MatchScore,
			&match.Status,
			&match.CreatedAt,
			&match.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, match)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate matches: %w", err)
	}

	return matches, nil
}
