package api

import (
	"context"
	"net/http"

	"github.com/campusmatch/campusmatch/internal/models"
	"log/slog"
)

// EventLister reads the event catalog.
type EventLister interface {
	ListAll(ctx context.Context) ([]models.Event, error)
}

// SponsorLister reads the sponsor catalog.
type SponsorLister interface {
	ListAll(ctx context.Context) ([]models.Sponsor, error)
}

// MatchLister reads persisted matches.
type MatchLister interface {
	ListAll(ctx context.Context) ([]models.Match, error)
}

// CatalogHandler serves read-only listings of events, sponsors, and matches.
type CatalogHandler struct {
	events   EventLister
	sponsors SponsorLister
	matches  MatchLister
	logger   *slog.Logger
}

// NewCatalogHandler creates a handler over the three catalogs.
func NewCatalogHandler(events EventLister, sponsors SponsorLister, matches MatchLister, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		events:   events,
		sponsors: sponsors,
		matches:  matches,
		logger:   logger,
	}
}

// ListEvents handles GET /api/events.
func (h *CatalogHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	events, err := h.events.ListAll(r.Context())
	if err != nil {
		h.logger.Error("failed to list events", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if events == nil {
		events = []models.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}

// ListSponsors handles GET /api/sponsors.
func (h *CatalogHandler) ListSponsors(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sponsors, err := h.sponsors.ListAll(r.Context())
	if err != nil {
		h.logger.Error("failed to list sponsors", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if sponsors == nil {
		sponsors = []models.Sponsor{}
	}
	writeJSON(w, http.StatusOK, sponsors)
}

// ListMatches handles GET /api/matches.
func (h *CatalogHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	matches, err := h.matches.ListAll(r.Context())
	if err != nil {
		h.logger.Error("failed to list matches", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if matches == nil {
		matches = []models.Match{}
	}
	writeJSON(w, http.StatusOK, matches)
}
