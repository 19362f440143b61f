package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/campusmatch/campusmatch/internal/models"
)

// SponsorRepository reads the sponsor catalog from PostgreSQL.
type SponsorRepository struct {
	db *sql.DB
}

// NewSponsorRepository creates a new PostgreSQL sponsor repository.
func NewSponsorRepository(db *sql.DB) *SponsorRepository {
	return &SponsorRepository{db: db}
}

// ListAll returns every sponsor in the catalog in deterministic order.
func (r *SponsorRepository) ListAll(ctx context.Context) ([]models.Sponsor, error) {
	query := `
		SELECT id, company_name, COALESCE(industry, ''), target_demographics,
		       COALESCE(marketing_goals, ''), COALESCE(budget_range, ''),
		       created_at, updated_at
		FROM sponsors
		ORDER BY created_at, id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query sponsors: %w", err)
	}
	defer rows.Close()

	var sponsors []models.Sponsor
	for rows.Next() {
		var sponsor models.Sponsor
		var demographics []byte
		if err := rows.Scan(
			&sponsor.ID,
			&sponsor.CompanyName,
			&sponsor.Industry,
			&demographics,
			&sponsor.MarketingGoals,
			&sponsor.BudgetRange,
			&sponsor.CreatedAt,
			&sponsor.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan sponsor: %w", err)
		}
		sponsor.TargetDemographics = demographics
		sponsors = append(sponsors, sponsor)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sponsors: %w", err)
	}

	return sponsors, nil
}
