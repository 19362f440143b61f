package api

import (
	"net/http"

	"log/slog"
)

// SetupRoutes configures all API routes.
func SetupRoutes(mux *http.ServeMux, runner MatchRunner, events EventLister, sponsors SponsorLister, matches MatchLister, logger *slog.Logger) {
	matchmakingHandler := NewMatchmakingHandler(runner, logger)
	catalogHandler := NewCatalogHandler(events, sponsors, matches, logger)

	// Matchmaking trigger
	mux.HandleFunc("/api/matchmaking/run", matchmakingHandler.RunMatchingPass)

	// Read-only catalog routes
	mux.HandleFunc("/api/events", catalogHandler.ListEvents)
	mux.HandleFunc("/api/sponsors", catalogHandler.ListSponsors)
	mux.HandleFunc("/api/matches", catalogHandler.ListMatches)
}
