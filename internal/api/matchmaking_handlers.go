package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/campusmatch/campusmatch/internal/models"
	"log/slog"
)

// MatchRunner executes one full matching pass.
type MatchRunner interface {
	Run(ctx context.Context) ([]models.Match, error)
}

// MatchmakingHandler exposes the matching pipeline over HTTP.
type MatchmakingHandler struct {
	runner MatchRunner
	logger *slog.Logger
}

// NewMatchmakingHandler creates a handler around a match runner.
func NewMatchmakingHandler(runner MatchRunner, logger *slog.Logger) *MatchmakingHandler {
	return &MatchmakingHandler{
		runner: runner,
		logger: logger,
	}
}

// RunMatchingPass handles POST /api/matchmaking/run. It executes one full
// pass and returns either the newly created matches, an explicit no-matches
// message, or a single aggregated error. Per-pair diagnostics are logged
// only, never surfaced to the caller.
func (h *MatchmakingHandler) RunMatchingPass(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	matches, err := h.runner.Run(r.Context())
	if err != nil {
		h.logger.Error("matching pass failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": err.Error(),
		})
		return
	}

	if len(matches) == 0 {
		writeJSON(w, http.StatusOK, map[string]string{
			"message": "No new matches found.",
		})
		return
	}

	writeJSON(w, http.StatusOK, matches)
}

// writeJSON encodes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Default().Error("failed to encode response", "error", err)
	}
}
