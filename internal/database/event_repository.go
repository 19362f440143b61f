package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/campusmatch/campusmatch/internal/models"
)

// EventRepository reads the event catalog from PostgreSQL. The matching
// pipeline never mutates events.
type EventRepository struct {
	db *sql.DB
}

// NewEventRepository creates a new PostgreSQL event repository.
func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

// ListAll returns every event in the catalog, ordered deterministically so a
// matching run over an unchanged catalog always sees the same sequence.
func (r *EventRepository) ListAll(ctx context.Context) ([]models.Event, error) {
	query := `
		SELECT id, title, COALESCE(description, ''), COALESCE(category, ''),
		       COALESCE(audience_size, 0), COALESCE(budget_range, ''),
		       COALESCE(location, ''), created_at, updated_at
		FROM events
		ORDER BY created_at, id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var event models.Event
		if err := rows.Scan(
			&event.ID,
			&event.Title,
			&event.Description,
			&event.Category,
			&event.AudienceSize,
			&event.BudgetRange,
			&event.Location,
			&event.CreatedAt,
			&event.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}

	return events, nil
}
