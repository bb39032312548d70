package app

import (
	"context"
	"strings"

	"modeladvisor/internal/errors"
	"modeladvisor/models"
	"modeladvisor/ports"

	"github.com/lib/pq"
	"github.com/montanaflynn/stats"
)

// CatalogService exposes catalog reads, upserts, and summary statistics.
type CatalogService struct {
	catalog ports.CatalogRepository
}

// NewCatalogService creates a catalog service
func NewCatalogService(catalog ports.CatalogRepository) *CatalogService {
	return &CatalogService{catalog: catalog}
}

// ListModels returns every catalog entry.
func (s *CatalogService) ListModels(ctx context.Context) ([]models.ModelProfile, error) {
	return s.catalog.ListModels(ctx)
}

// UpsertModel validates and stores one catalog entry.
func (s *CatalogService) UpsertModel(ctx context.Context, m *models.ModelProfile) (*models.ModelProfile, error) {
	if strings.TrimSpace(m.ID) == "" || strings.TrimSpace(m.Name) == "" {
		return nil, errors.InvalidInput("model id and name are required")
	}
	normalizeArrays(m)
	return s.catalog.UpsertModel(ctx, m)
}

// CatalogStats summarizes the catalog's numeric coverage for operators:
// how many entries carry known latency/cost and their distribution.
type CatalogStats struct {
	TotalModels int `json:"total_models"`

	KnownLatency    int     `json:"known_latency"`
	MeanLatencyMs   float64 `json:"mean_latency_ms"`
	MedianLatencyMs float64 `json:"median_latency_ms"`
	P90LatencyMs    float64 `json:"p90_latency_ms"`

	KnownCost     int     `json:"known_cost"`
	MeanCostPer1K float64 `json:"mean_cost_per_1k"`
	MedianCost1K  float64 `json:"median_cost_per_1k"`

	KnownContext  int     `json:"known_context"`
	MedianContext float64 `json:"median_context"`

	HostingByMode map[string]int `json:"hosting_by_mode"`
}

// Stats computes catalog summary statistics. Unknown-sentinel values are
// excluded from every aggregate rather than treated as zeros.
func (s *CatalogService) Stats(ctx context.Context) (*CatalogStats, error) {
	profiles, err := s.catalog.ListModels(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load model catalog")
	}

	var latencies, costs, contexts []float64
	hosting := make(map[string]int)
	for i := range profiles {
		m := &profiles[i]
		if !models.IsUnknown(m.LatencyMs) {
			latencies = append(latencies, m.LatencyMs)
		}
		if !models.IsUnknown(m.CostPer1KTokens) {
			costs = append(costs, m.CostPer1KTokens)
		}
		if !models.IsUnknown(m.ContextWindow) {
			contexts = append(contexts, m.ContextWindow)
		}
		if m.HostingMode != "" {
			hosting[m.HostingMode]++
		}
	}

	out := &CatalogStats{
		TotalModels:   len(profiles),
		KnownLatency:  len(latencies),
		KnownCost:     len(costs),
		KnownContext:  len(contexts),
		HostingByMode: hosting,
	}
	out.MeanLatencyMs, _ = stats.Mean(latencies)
	out.MedianLatencyMs, _ = stats.Median(latencies)
	out.P90LatencyMs, _ = stats.Percentile(latencies, 90)
	out.MeanCostPer1K, _ = stats.Mean(costs)
	out.MedianCost1K, _ = stats.Median(costs)
	out.MedianContext, _ = stats.Median(contexts)
	return out, nil
}

// normalizeArrays replaces nil tag lists with empty arrays so NOT NULL
// columns accept them.
func normalizeArrays(m *models.ModelProfile) {
	for _, arr := range []*pq.StringArray{
		&m.DomainTags, &m.Pros, &m.Cons, &m.RAGTips,
		&m.TypicalUseCases, &m.Strengths, &m.Limitations,
	} {
		if *arr == nil {
			*arr = pq.StringArray{}
		}
	}
}
