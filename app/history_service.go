package app

import (
	"context"
	"encoding/json"

	"modeladvisor/internal/errors"
	"modeladvisor/models"
	"modeladvisor/ports"

	"github.com/google/uuid"
)

// HistoryService reads back persisted recommendation events.
type HistoryService struct {
	events ports.EventRepository
}

// NewHistoryService creates a history service
func NewHistoryService(events ports.EventRepository) *HistoryService {
	return &HistoryService{events: events}
}

// ListRecent returns summary rows for the latest events (up to limit,
// default 50): the top-ranked model and its confidence per event.
func (s *HistoryService) ListRecent(ctx context.Context, limit int) ([]models.RecommendationSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	events, err := s.events.ListEvents(ctx, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load recommendation history")
	}

	summaries := make([]models.RecommendationSummary, 0, len(events))
	for _, e := range events {
		summary := models.RecommendationSummary{
			ID:        e.ID,
			CreatedAt: e.CreatedAt,
			Task:      e.Task,
			Hosting:   e.Hosting,
			LatencyMs: e.LatencyMs,
			Context:   e.Context,
		}

		var result models.RecommendResult
		if err := json.Unmarshal(e.Results, &result); err == nil && len(result.SingleModels) > 0 {
			top := result.SingleModels[0]
			summary.TopModelName = top.Model.Name
			summary.TopModelProvider = top.Model.Provider
			confidence := top.Confidence
			summary.Confidence = &confidence
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// GetEvent returns the full stored event, or NOT_FOUND.
func (s *HistoryService) GetEvent(ctx context.Context, id uuid.UUID) (*models.RecommendationEvent, error) {
	event, err := s.events.GetEvent(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load recommendation event")
	}
	if event == nil {
		return nil, errors.NotFound("recommendation event")
	}
	return event, nil
}
