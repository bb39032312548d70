// Package app wires the pure recommendation core to its ports: the
// classifier, the catalog, and the event log.
package app

import (
	"context"
	"encoding/json"
	"strings"

	"modeladvisor/domain/pipeline"
	"modeladvisor/domain/profile"
	"modeladvisor/domain/scoring"
	"modeladvisor/internal"
	"modeladvisor/internal/errors"
	"modeladvisor/models"
	"modeladvisor/ports"

	"golang.org/x/sync/errgroup"
)

// DefaultTargetLatencyMs and DefaultMinContext fill absent request fields.
const (
	DefaultTargetLatencyMs = 1200
	DefaultMinContext      = 4000
	DefaultHosting         = "any"
)

// NoEligibleCandidatesMessage explains an empty result to the caller.
const NoEligibleCandidatesMessage = "No models satisfied the hard requirements. Try lowering context requirement, increasing latency target, or changing hosting."

// RecommendService orchestrates one recommendation request: classify,
// filter, score, rank, compose, persist. Requests are independent; the
// catalog is read once per request and treated as an immutable snapshot.
type RecommendService struct {
	catalog    ports.CatalogRepository
	events     ports.EventRepository
	classifier ports.TaskClassifier // nil runs heuristic-only
	logger     *internal.Logger
}

// NewRecommendService creates the recommendation service. classifier may
// be nil, in which case every request uses the keyword heuristic.
func NewRecommendService(catalog ports.CatalogRepository, events ports.EventRepository, classifier ports.TaskClassifier, logger *internal.Logger) *RecommendService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &RecommendService{
		catalog:    catalog,
		events:     events,
		classifier: classifier,
		logger:     logger,
	}
}

// ValidateRequest rejects malformed input before any scoring begins and
// fills defaults for absent fields.
func ValidateRequest(req *models.RecommendRequest) error {
	if strings.TrimSpace(req.Task) == "" {
		return errors.InvalidInput("task description is required")
	}
	if req.LatencyMs < 0 {
		return errors.InvalidInput("target latency must be positive")
	}
	if req.MinContext < 0 {
		return errors.InvalidInput("minimum context must be non-negative")
	}
	if req.LatencyMs == 0 {
		req.LatencyMs = DefaultTargetLatencyMs
	}
	if req.MinContext == 0 {
		req.MinContext = DefaultMinContext
	}
	if strings.TrimSpace(req.Hosting) == "" {
		req.Hosting = DefaultHosting
	}
	return nil
}

// Recommend runs the full flow and returns the response. A persistence
// failure never discards the computed result; the response just lacks an
// event id.
func (s *RecommendService) Recommend(ctx context.Context, req models.RecommendRequest) (*models.RecommendResponse, error) {
	if err := ValidateRequest(&req); err != nil {
		return nil, err
	}

	taskProfile := s.classify(ctx, req.Task)

	snapshot, err := s.catalog.ListModels(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load model catalog")
	}

	scorer := scoring.NewScorer(taskProfile, scoring.Constraints{
		Hosting:         req.Hosting,
		TargetLatencyMs: req.LatencyMs,
		MinContext:      req.MinContext,
	})

	// Per-candidate work is pure; fan out over the snapshot and keep
	// results positionally so ordering stays deterministic.
	scored := make([]*models.ScoredCandidate, len(snapshot))
	var g errgroup.Group
	for i := range snapshot {
		g.Go(func() error {
			if ok, _ := scorer.Eligible(&snapshot[i]); !ok {
				return nil
			}
			c := scorer.Score(snapshot[i])
			scored[i] = &c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "candidate scoring failed")
	}

	candidates := make([]models.ScoredCandidate, 0, len(scored))
	for _, c := range scored {
		if c != nil {
			candidates = append(candidates, *c)
		}
	}

	ranked := scoring.Rank(candidates)
	composed := pipeline.Compose(ranked, taskProfile)

	result := models.RecommendResult{
		SingleModels:        ranked,
		RecommendedPipeline: composed,
	}

	resp := &models.RecommendResponse{
		OK:      true,
		Profile: taskProfile,
		Results: result,
	}
	if len(ranked) == 0 {
		resp.Message = NoEligibleCandidatesMessage
	}

	if eventID := s.persistEvent(ctx, req, result); eventID != "" {
		resp.EventID = eventID
	}

	return resp, nil
}

// classify attempts the AI classifier and recovers locally on any
// failure. The external call failing is never a user-visible error.
func (s *RecommendService) classify(ctx context.Context, task string) models.TaskProfile {
	if s.classifier == nil {
		return profile.Heuristic(task)
	}

	p, err := s.classifier.Classify(ctx, task)
	if err == nil && p != nil {
		p.Confidence = scoring.Clamp01(p.Confidence)
		return *p
	}
	s.logger.Warn("classifier unavailable, using heuristic fallback: %v", errors.ClassifierUnavailable(err))

	fallback := profile.Heuristic(task)
	fallback.Rationale = []string{"Classification service unavailable; heuristic fallback classifier used."}
	return fallback
}

// persistEvent appends the recommendation to history. Returns the event
// id, or empty string when the append failed (logged, not surfaced).
func (s *RecommendService) persistEvent(ctx context.Context, req models.RecommendRequest, result models.RecommendResult) string {
	payload, err := json.Marshal(result)
	if err != nil {
		s.logger.Error("failed to encode recommendation event: %v", err)
		return ""
	}

	event := &models.RecommendationEvent{
		Task:      req.Task,
		Hosting:   req.Hosting,
		LatencyMs: req.LatencyMs,
		Context:   req.MinContext,
		Results:   payload,
	}
	if err := s.events.AppendEvent(ctx, event); err != nil {
		s.logger.Error("failed to persist recommendation event: %v", err)
		return ""
	}
	return event.ID.String()
}
