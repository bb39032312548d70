package ui

import (
	"encoding/json"
	"net/http"

	"modeladvisor/internal/errors"
	"modeladvisor/models"
)

// handleListModels returns every catalog entry.
func (a *App) handleListModels(w http.ResponseWriter, r *http.Request) {
	profiles, err := a.catalog.ListModels(r.Context())
	if err != nil {
		a.logger.Error("list models failed: %v", err)
		writeError(w, errors.DatabaseError("failed to load models"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "models": profiles})
}

// handleUpsertModel inserts or replaces one catalog entry.
func (a *App) handleUpsertModel(w http.ResponseWriter, r *http.Request) {
	var m models.ModelProfile
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		writeError(w, errors.InvalidInput("request body must be valid JSON"))
		return
	}

	saved, err := a.catalog.UpsertModel(r.Context(), &m)
	if err != nil {
		a.logger.Error("upsert model failed: %v", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "model": saved})
}

// handleModelStats summarizes the catalog's numeric coverage.
func (a *App) handleModelStats(w http.ResponseWriter, r *http.Request) {
	summary, err := a.catalog.Stats(r.Context())
	if err != nil {
		a.logger.Error("model stats failed: %v", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "stats": summary})
}
