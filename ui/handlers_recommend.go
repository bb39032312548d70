package ui

import (
	"encoding/json"
	"net/http"

	"modeladvisor/internal/errors"
	"modeladvisor/models"
)

// handleRecommend runs the full recommendation flow for one task.
func (a *App) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req models.RecommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.InvalidInput("request body must be valid JSON"))
		return
	}

	resp, err := a.recommend.Recommend(r.Context(), req)
	if err != nil {
		a.logger.Error("recommend failed: %v", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
