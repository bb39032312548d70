package ui

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"modeladvisor/internal/errors"
)

// handleListRecommendations returns summary rows for recent events.
func (a *App) handleListRecommendations(w http.ResponseWriter, r *http.Request) {
	items, err := a.history.ListRecent(r.Context(), 50)
	if err != nil {
		a.logger.Error("list recommendations failed: %v", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "items": items})
}

// handleGetRecommendation returns one stored event in full.
func (a *App) handleGetRecommendation(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, errors.InvalidInput("invalid recommendation id"))
		return
	}

	event, err := a.history.GetEvent(r.Context(), id)
	if err != nil {
		if errors.GetCode(err) != errors.CodeNotFound {
			a.logger.Error("get recommendation failed: %v", err)
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "event": event})
}
