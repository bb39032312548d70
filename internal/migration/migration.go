package migration

import (
	"context"

	"modeladvisor/internal/errors"

	"github.com/jmoiron/sqlx"
)

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{version: "1.0.0"}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createUsersTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create users table")
	}
	if err := r.createModelProfilesTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create model_profiles table")
	}
	if err := r.createRecommendationEventsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create recommendation_events table")
	}
	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}
	return nil
}

func (r *MigrationRunner) createUsersTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			username TEXT NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createModelProfilesTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS model_profiles (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			provider TEXT NOT NULL DEFAULT '',
			family TEXT NOT NULL DEFAULT '',
			modality TEXT NOT NULL DEFAULT 'text',
			api_type TEXT NOT NULL DEFAULT '',
			license TEXT NOT NULL DEFAULT '',
			context_window DOUBLE PRECISION NOT NULL DEFAULT 0,
			latency_ms DOUBLE PRECISION NOT NULL DEFAULT 0,
			cost_per_1k_tokens DOUBLE PRECISION NOT NULL DEFAULT 0,
			domain_tags TEXT[] NOT NULL DEFAULT '{}',
			pros TEXT[] NOT NULL DEFAULT '{}',
			cons TEXT[] NOT NULL DEFAULT '{}',
			rag_tips TEXT[] NOT NULL DEFAULT '{}',
			typical_use_cases TEXT[] NOT NULL DEFAULT '{}',
			strengths TEXT[] NOT NULL DEFAULT '{}',
			limitations TEXT[] NOT NULL DEFAULT '{}',
			source TEXT NOT NULL DEFAULT '',
			url TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createRecommendationEventsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS recommendation_events (
			id UUID PRIMARY KEY,
			task TEXT NOT NULL,
			hosting TEXT NOT NULL DEFAULT 'any',
			latency_ms DOUBLE PRECISION NOT NULL DEFAULT 0,
			context DOUBLE PRECISION NOT NULL DEFAULT 0,
			results JSONB NOT NULL,
			user_id UUID REFERENCES users(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	statements := []string{
		`CREATE INDEX IF NOT EXISTS idx_recommendation_events_created_at ON recommendation_events (created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_recommendation_events_user_id ON recommendation_events (user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_model_profiles_provider ON model_profiles (provider)`,
	}
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
