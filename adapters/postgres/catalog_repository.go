package postgres

import (
	"context"
	"database/sql"
	"errors"

	"modeladvisor/models"
	"modeladvisor/ports"

	"github.com/jmoiron/sqlx"
)

const modelProfileColumns = `
	id, name, provider, family, modality, api_type, license,
	context_window, latency_ms, cost_per_1k_tokens,
	domain_tags, pros, cons, rag_tips, typical_use_cases, strengths, limitations,
	source, url, created_at, updated_at
`

// CatalogRepositoryImpl implements CatalogRepository for PostgreSQL
type CatalogRepositoryImpl struct {
	db *sqlx.DB
}

// NewCatalogRepository creates a new PostgreSQL catalog repository
func NewCatalogRepository(db *sqlx.DB) ports.CatalogRepository {
	return &CatalogRepositoryImpl{db: db}
}

// ListModels returns every catalog entry, oldest first. The result is
// the per-request immutable snapshot the scorer works on.
func (r *CatalogRepositoryImpl) ListModels(ctx context.Context) ([]models.ModelProfile, error) {
	var profiles []models.ModelProfile
	err := r.db.SelectContext(ctx, &profiles, `
		SELECT `+modelProfileColumns+`
		FROM model_profiles
		ORDER BY created_at ASC, id ASC
	`)
	return profiles, err
}

// GetModel retrieves one catalog entry by stable id
func (r *CatalogRepositoryImpl) GetModel(ctx context.Context, id string) (*models.ModelProfile, error) {
	var m models.ModelProfile
	err := r.db.GetContext(ctx, &m, `
		SELECT `+modelProfileColumns+`
		FROM model_profiles
		WHERE id = $1
	`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

// UpsertModel inserts or replaces one catalog entry
func (r *CatalogRepositoryImpl) UpsertModel(ctx context.Context, m *models.ModelProfile) (*models.ModelProfile, error) {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO model_profiles (
			id, name, provider, family, modality, api_type, license,
			context_window, latency_ms, cost_per_1k_tokens,
			domain_tags, pros, cons, rag_tips, typical_use_cases, strengths, limitations,
			source, url, created_at, updated_at
		) VALUES (
			:id, :name, :provider, :family, :modality, :api_type, :license,
			:context_window, :latency_ms, :cost_per_1k_tokens,
			:domain_tags, :pros, :cons, :rag_tips, :typical_use_cases, :strengths, :limitations,
			:source, :url, NOW(), NOW()
		)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			provider = EXCLUDED.provider,
			family = EXCLUDED.family,
			modality = EXCLUDED.modality,
			api_type = EXCLUDED.api_type,
			license = EXCLUDED.license,
			context_window = EXCLUDED.context_window,
			latency_ms = EXCLUDED.latency_ms,
			cost_per_1k_tokens = EXCLUDED.cost_per_1k_tokens,
			domain_tags = EXCLUDED.domain_tags,
			pros = EXCLUDED.pros,
			cons = EXCLUDED.cons,
			rag_tips = EXCLUDED.rag_tips,
			typical_use_cases = EXCLUDED.typical_use_cases,
			strengths = EXCLUDED.strengths,
			limitations = EXCLUDED.limitations,
			source = EXCLUDED.source,
			url = EXCLUDED.url,
			updated_at = NOW()
	`, m)
	if err != nil {
		return nil, err
	}
	return r.GetModel(ctx, m.ID)
}
