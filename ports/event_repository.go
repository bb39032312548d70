package ports

import (
	"context"

	"github.com/google/uuid"

	"modeladvisor/models"
)

// EventRepository persists recommendation events for history and audit.
// Appends happen once per request, after scoring completes; a failed
// append never invalidates the computed response.
type EventRepository interface {
	// AppendEvent stores one recommendation event.
	AppendEvent(ctx context.Context, event *models.RecommendationEvent) error

	// ListEvents returns the most recent events, newest first.
	ListEvents(ctx context.Context, limit int) ([]models.RecommendationEvent, error)

	// GetEvent returns one event by id.
	GetEvent(ctx context.Context, id uuid.UUID) (*models.RecommendationEvent, error)
}
