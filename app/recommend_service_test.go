package app

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "modeladvisor/internal/errors"
	"modeladvisor/models"
)

type fakeCatalog struct {
	entries []models.ModelProfile
	err     error
}

func (f *fakeCatalog) ListModels(ctx context.Context) ([]models.ModelProfile, error) {
	return f.entries, f.err
}

func (f *fakeCatalog) GetModel(ctx context.Context, id string) (*models.ModelProfile, error) {
	for i := range f.entries {
		if f.entries[i].ID == id {
			return &f.entries[i], nil
		}
	}
	return nil, nil
}

func (f *fakeCatalog) UpsertModel(ctx context.Context, m *models.ModelProfile) (*models.ModelProfile, error) {
	f.entries = append(f.entries, *m)
	return m, nil
}

type fakeEvents struct {
	appended   []*models.RecommendationEvent
	failAppend bool
}

func (f *fakeEvents) AppendEvent(ctx context.Context, event *models.RecommendationEvent) error {
	if f.failAppend {
		return errors.New("connection refused")
	}
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	f.appended = append(f.appended, event)
	return nil
}

func (f *fakeEvents) ListEvents(ctx context.Context, limit int) ([]models.RecommendationEvent, error) {
	out := make([]models.RecommendationEvent, 0, len(f.appended))
	for _, e := range f.appended {
		out = append(out, *e)
	}
	return out, nil
}

func (f *fakeEvents) GetEvent(ctx context.Context, id uuid.UUID) (*models.RecommendationEvent, error) {
	for _, e := range f.appended {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, nil
}

type fakeClassifier struct {
	profile *models.TaskProfile
	err     error
}

func (f *fakeClassifier) Classify(ctx context.Context, task string) (*models.TaskProfile, error) {
	return f.profile, f.err
}

func seedCatalog() *fakeCatalog {
	model := func(id string, lat, cost float64, tags ...string) models.ModelProfile {
		return models.ModelProfile{
			ID:              id,
			Name:            id,
			Provider:        "acme",
			Modality:        "text",
			HostingMode:     models.HostingSaaS,
			ContextWindow:   16000,
			LatencyMs:       lat,
			CostPer1KTokens: cost,
			DomainTags:      pq.StringArray(tags),
		}
	}
	return &fakeCatalog{entries: []models.ModelProfile{
		model("alpha-fast", 400, 0.0008),
		model("beta-deep", 900, 0.004, "reasoning", "analysis"),
		model("gamma-fin", 700, 0.002, "finance"),
	}}
}

func TestRecommendHappyPath(t *testing.T) {
	events := &fakeEvents{}
	svc := NewRecommendService(seedCatalog(), events, nil, nil)

	resp, err := svc.Recommend(context.Background(), models.RecommendRequest{
		Task: "Summarize quarterly results for the team",
	})

	require.NoError(t, err)
	require.True(t, resp.OK)
	assert.Empty(t, resp.Message)
	assert.Equal(t, models.SourceFallback, resp.Profile.Source)

	require.NotEmpty(t, resp.Results.SingleModels)
	for i := 1; i < len(resp.Results.SingleModels); i++ {
		assert.LessOrEqual(t, resp.Results.SingleModels[i].Score, resp.Results.SingleModels[i-1].Score)
	}

	require.NotNil(t, resp.Results.RecommendedPipeline)
	require.Len(t, resp.Results.RecommendedPipeline.Steps, 3)

	require.Len(t, events.appended, 1)
	assert.Equal(t, events.appended[0].ID.String(), resp.EventID)
	assert.Equal(t, "Summarize quarterly results for the team", events.appended[0].Task)
	assert.Equal(t, float64(DefaultTargetLatencyMs), events.appended[0].LatencyMs)
	assert.Equal(t, float64(DefaultMinContext), events.appended[0].Context)

	var stored models.RecommendResult
	require.NoError(t, json.Unmarshal(events.appended[0].Results, &stored))
	assert.Len(t, stored.SingleModels, len(resp.Results.SingleModels))
}

func TestRecommendEmptyCatalog(t *testing.T) {
	svc := NewRecommendService(&fakeCatalog{}, &fakeEvents{}, nil, nil)

	resp, err := svc.Recommend(context.Background(), models.RecommendRequest{Task: "Summarize this"})

	require.NoError(t, err)
	assert.True(t, resp.OK)
	assert.Equal(t, NoEligibleCandidatesMessage, resp.Message)
	assert.Empty(t, resp.Results.SingleModels)

	require.NotNil(t, resp.Results.RecommendedPipeline)
	assert.Equal(t, "Placeholder pipeline", resp.Results.RecommendedPipeline.Label)
	assert.Len(t, resp.Results.RecommendedPipeline.Steps, 3)
}

func TestRecommendPersistFailureTolerated(t *testing.T) {
	svc := NewRecommendService(seedCatalog(), &fakeEvents{failAppend: true}, nil, nil)

	resp, err := svc.Recommend(context.Background(), models.RecommendRequest{Task: "Summarize this"})

	require.NoError(t, err)
	assert.True(t, resp.OK)
	assert.Empty(t, resp.EventID)
	assert.NotEmpty(t, resp.Results.SingleModels)
}

func TestRecommendCatalogError(t *testing.T) {
	svc := NewRecommendService(&fakeCatalog{err: errors.New("down")}, &fakeEvents{}, nil, nil)

	_, err := svc.Recommend(context.Background(), models.RecommendRequest{Task: "Summarize this"})
	require.Error(t, err)
}

func TestRecommendClassifierFallback(t *testing.T) {
	classifier := &fakeClassifier{err: errors.New("timeout")}
	svc := NewRecommendService(seedCatalog(), &fakeEvents{}, classifier, nil)

	resp, err := svc.Recommend(context.Background(), models.RecommendRequest{Task: "Summarize this report"})

	require.NoError(t, err)
	assert.Equal(t, models.SourceFallback, resp.Profile.Source)
	assert.Equal(t, models.FallbackConfidence, resp.Profile.Confidence)
	require.NotEmpty(t, resp.Profile.Rationale)
	assert.Equal(t, "Classification service unavailable; heuristic fallback classifier used.", resp.Profile.Rationale[0])
}

func TestRecommendClassifierResult(t *testing.T) {
	classifier := &fakeClassifier{profile: &models.TaskProfile{
		Finance:        true,
		Type:           models.TaskSentiment,
		Subtype:        models.SubtypeMarketsNews,
		NormalizedTask: "analyze sentiment of market headlines",
		Confidence:     1.7, // out of range, must be clamped
		Source:         models.SourceAI,
	}}
	svc := NewRecommendService(seedCatalog(), &fakeEvents{}, classifier, nil)

	resp, err := svc.Recommend(context.Background(), models.RecommendRequest{
		Task: "Analyze sentiment of market headlines",
	})

	require.NoError(t, err)
	assert.Equal(t, models.SourceAI, resp.Profile.Source)
	assert.Equal(t, 1.0, resp.Profile.Confidence)
	assert.Equal(t, models.TaskSentiment, resp.Profile.Type)
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     models.RecommendRequest
		wantErr bool
	}{
		{"valid", models.RecommendRequest{Task: "summarize"}, false},
		{"blank task", models.RecommendRequest{Task: "   "}, true},
		{"negative latency", models.RecommendRequest{Task: "x", LatencyMs: -5}, true},
		{"negative context", models.RecommendRequest{Task: "x", MinContext: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequest(&tt.req)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, apperrors.CodeInvalidInput, apperrors.GetCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, float64(DefaultTargetLatencyMs), tt.req.LatencyMs)
			assert.Equal(t, float64(DefaultMinContext), tt.req.MinContext)
			assert.Equal(t, DefaultHosting, tt.req.Hosting)
		})
	}
}
