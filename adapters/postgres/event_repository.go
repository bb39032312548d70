package postgres

import (
	"context"
	"database/sql"
	"errors"

	"modeladvisor/models"
	"modeladvisor/ports"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// EventRepositoryImpl implements EventRepository for PostgreSQL
type EventRepositoryImpl struct {
	db *sqlx.DB
}

// NewEventRepository creates a new PostgreSQL event repository
func NewEventRepository(db *sqlx.DB) ports.EventRepository {
	return &EventRepositoryImpl{db: db}
}

// AppendEvent stores one recommendation event
func (r *EventRepositoryImpl) AppendEvent(ctx context.Context, event *models.RecommendationEvent) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO recommendation_events (id, task, hosting, latency_ms, context, results, user_id, created_at)
		VALUES (:id, :task, :hosting, :latency_ms, :context, :results, :user_id, NOW())
	`, event)
	return err
}

// ListEvents returns the most recent events, newest first
func (r *EventRepositoryImpl) ListEvents(ctx context.Context, limit int) ([]models.RecommendationEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	var events []models.RecommendationEvent
	err := r.db.SelectContext(ctx, &events, `
		SELECT id, task, hosting, latency_ms, context, results, user_id, created_at
		FROM recommendation_events
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	return events, err
}

// GetEvent returns one event by id
func (r *EventRepositoryImpl) GetEvent(ctx context.Context, id uuid.UUID) (*models.RecommendationEvent, error) {
	var event models.RecommendationEvent
	err := r.db.GetContext(ctx, &event, `
		SELECT id, task, hosting, latency_ms, context, results, user_id, created_at
		FROM recommendation_events
		WHERE id = $1
	`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &event, nil
}
