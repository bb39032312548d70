package ports

import (
	"context"

	"modeladvisor/models"
)

// CatalogRepository reads and maintains the model catalog. The
// recommendation core only ever calls ListModels; writes exist for the
// catalog-maintenance API and the seeder.
type CatalogRepository interface {
	// ListModels returns every catalog entry, oldest first.
	ListModels(ctx context.Context) ([]models.ModelProfile, error)

	// GetModel returns one entry by stable id.
	GetModel(ctx context.Context, id string) (*models.ModelProfile, error)

	// UpsertModel inserts or replaces one catalog entry.
	UpsertModel(ctx context.Context, m *models.ModelProfile) (*models.ModelProfile, error)
}
