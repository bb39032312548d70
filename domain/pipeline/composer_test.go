package pipeline

import (
	"strings"
	"testing"

	"github.com/lib/pq"

	"modeladvisor/models"
)

func candidate(id string, f models.FactorScores, tags ...string) models.ScoredCandidate {
	return models.ScoredCandidate{
		Model: models.ModelProfile{
			ID:         id,
			Name:       id,
			DomainTags: pq.StringArray(tags),
		},
		Score:   0.5,
		Factors: f,
	}
}

func summarizationProfile() models.TaskProfile {
	return models.TaskProfile{
		Type:       models.TaskSummarization,
		Subtype:    models.SubtypeNone,
		Confidence: 0.9,
	}
}

func assertRoleOrder(t *testing.T, p *models.RecommendedPipeline) {
	t.Helper()
	if len(p.Steps) != 3 {
		t.Fatalf("pipeline has %d steps, want 3", len(p.Steps))
	}
	wantRoles := []string{models.RoleRetriever, models.RoleReasoner, models.RoleVerifier}
	for i, role := range wantRoles {
		if p.Steps[i].Role != role {
			t.Errorf("step %d role = %q, want %q", i, p.Steps[i].Role, role)
		}
	}
}

func TestComposeRoleSelection(t *testing.T) {
	ranked := []models.ScoredCandidate{
		candidate("a-cheap", models.FactorScores{Cost: 1.0, Latency: 1.0, Context: 0.5, Domain: 0.2}),
		candidate("b-deep", models.FactorScores{Cost: 0.2, Latency: 0.5, Context: 0.9, Domain: 1.0}),
		candidate("c-verify", models.FactorScores{Cost: 0.3, Latency: 0.4, Context: 0.4, Domain: 0.3}, "reasoning"),
	}

	p := Compose(ranked, summarizationProfile())
	assertRoleOrder(t, p)

	if got := p.Steps[0].Model.ID; got != "a-cheap" {
		t.Errorf("retriever = %s, want a-cheap", got)
	}
	if got := p.Steps[1].Model.ID; got != "b-deep" {
		t.Errorf("reasoner = %s, want b-deep", got)
	}
	if got := p.Steps[2].Model.ID; got != "c-verify" {
		t.Errorf("verifier = %s, want c-verify", got)
	}

	if !hasNoteContaining(p.Notes, "Role diversity achieved") {
		t.Errorf("expected full-diversity note, got %v", p.Notes)
	}
	if p.Label != "Recommended pipeline" {
		t.Errorf("label = %q", p.Label)
	}
}

func TestComposeSingleCandidate(t *testing.T) {
	ranked := []models.ScoredCandidate{
		candidate("solo", models.FactorScores{Cost: 0.5, Latency: 0.5, Context: 0.5, Domain: 0.5}),
	}

	p := Compose(ranked, summarizationProfile())
	assertRoleOrder(t, p)

	for i, step := range p.Steps {
		if step.Model.ID != "solo" {
			t.Errorf("step %d model = %s, want solo", i, step.Model.ID)
		}
	}
	if !hasNoteContaining(p.Notes, "No role diversity") {
		t.Errorf("expected no-diversity note, got %v", p.Notes)
	}
}

func TestComposePartialDiversity(t *testing.T) {
	// Two candidates: the retriever is reused as verifier once the
	// reasoner is excluded.
	ranked := []models.ScoredCandidate{
		candidate("a-fast", models.FactorScores{Cost: 1.0, Latency: 1.0, Context: 0.5, Domain: 0.2}),
		candidate("b-deep", models.FactorScores{Cost: 0.2, Latency: 0.5, Context: 0.9, Domain: 1.0}),
	}

	p := Compose(ranked, summarizationProfile())
	assertRoleOrder(t, p)

	if p.Steps[0].Model.ID != "a-fast" || p.Steps[1].Model.ID != "b-deep" || p.Steps[2].Model.ID != "a-fast" {
		t.Errorf("roles = %s/%s/%s", p.Steps[0].Model.ID, p.Steps[1].Model.ID, p.Steps[2].Model.ID)
	}
	if !hasNoteContaining(p.Notes, "Partial role diversity") {
		t.Errorf("expected partial-diversity note, got %v", p.Notes)
	}
}

func TestComposeDeterministicTieBreak(t *testing.T) {
	same := models.FactorScores{Cost: 0.5, Latency: 0.5, Context: 0.5, Domain: 0.5}
	ranked := []models.ScoredCandidate{
		candidate("m-b", same),
		candidate("m-a", same),
	}

	for i := 0; i < 5; i++ {
		p := Compose(ranked, summarizationProfile())
		if p.Steps[0].Model.ID != "m-a" {
			t.Fatalf("tie should break to ascending id, retriever = %s", p.Steps[0].Model.ID)
		}
		if p.Steps[1].Model.ID != "m-b" {
			t.Fatalf("reasoner must differ from retriever, got %s", p.Steps[1].Model.ID)
		}
	}
}

func TestComposeDefaultConfig(t *testing.T) {
	ranked := []models.ScoredCandidate{
		candidate("solo", models.FactorScores{Cost: 0.5, Latency: 0.5, Context: 0.5, Domain: 0.5}),
	}

	p := Compose(ranked, summarizationProfile())

	retriever := p.Steps[0].SuggestedConfig
	if retriever.Temperature != 0.1 || retriever.MaxOutputTokens != 350 || !retriever.StructuredOutput || retriever.CitationsRequired {
		t.Errorf("retriever config = %+v", retriever)
	}

	reasoner := p.Steps[1].SuggestedConfig
	if reasoner.Temperature != 0.2 || reasoner.MaxOutputTokens != 900 || reasoner.StructuredOutput || reasoner.CitationsRequired {
		t.Errorf("reasoner config = %+v", reasoner)
	}

	verifier := p.Steps[2].SuggestedConfig
	if verifier.Temperature != 0.0 || verifier.MaxOutputTokens != 450 || !verifier.StructuredOutput || verifier.CitationsRequired {
		t.Errorf("verifier config = %+v", verifier)
	}
}

func TestComposeHighStakesFinance(t *testing.T) {
	profile := models.TaskProfile{
		Finance:    true,
		Type:       models.TaskReasoning,
		HighStakes: true,
		Subtype:    models.SubtypeCompliance,
		Confidence: 0.9,
	}
	ranked := []models.ScoredCandidate{
		candidate("solo", models.FactorScores{Cost: 0.5, Latency: 0.5, Context: 0.5, Domain: 0.5}),
	}

	p := Compose(ranked, profile)

	if p.Label != "Finance-safe pipeline" {
		t.Errorf("label = %q, want Finance-safe pipeline", p.Label)
	}
	if p.Steps[1].SuggestedConfig.Temperature != 0.0 {
		t.Errorf("high-stakes reasoner temperature = %v, want 0", p.Steps[1].SuggestedConfig.Temperature)
	}
	if !p.Steps[1].SuggestedConfig.CitationsRequired || !p.Steps[2].SuggestedConfig.CitationsRequired {
		t.Error("finance pipelines must require citations on reasoner and verifier")
	}
	if !strings.Contains(p.Steps[1].PromptHint, "Cite sources inline") {
		t.Errorf("reasoner hint lacks citation instruction: %q", p.Steps[1].PromptHint)
	}
}

func TestComposeRAGCitations(t *testing.T) {
	profile := models.TaskProfile{Type: models.TaskQARAG, Subtype: models.SubtypeNone, Confidence: 0.9}
	ranked := []models.ScoredCandidate{
		candidate("solo", models.FactorScores{Cost: 0.5, Latency: 0.5, Context: 0.5, Domain: 0.5}),
	}

	p := Compose(ranked, profile)

	if p.Label != "Recommended pipeline" {
		t.Errorf("label = %q", p.Label)
	}
	if !p.Steps[1].SuggestedConfig.CitationsRequired {
		t.Error("retrieval tasks must require citations")
	}
}

func TestComposeExtractionStructuredOutput(t *testing.T) {
	profile := models.TaskProfile{Type: models.TaskExtraction, Subtype: models.SubtypeNone, Confidence: 0.9}
	ranked := []models.ScoredCandidate{
		candidate("solo", models.FactorScores{Cost: 0.5, Latency: 0.5, Context: 0.5, Domain: 0.5}),
	}

	if p := Compose(ranked, profile); !p.Steps[1].SuggestedConfig.StructuredOutput {
		t.Error("extraction reasoner must request structured output")
	}
}

func TestComposePlaceholderOnEmpty(t *testing.T) {
	profile := summarizationProfile()

	p := Compose(nil, profile)
	if p == nil {
		t.Fatal("Compose(nil) returned nil")
	}
	assertRoleOrder(t, p)

	if p.Label != "Placeholder pipeline" {
		t.Errorf("label = %q, want Placeholder pipeline", p.Label)
	}
	for i, step := range p.Steps {
		if step.Model.ID != "" {
			t.Errorf("placeholder step %d has a model: %s", i, step.Model.ID)
		}
	}
	if !hasNoteContaining(p.Notes, "No eligible candidates") {
		t.Errorf("notes = %v", p.Notes)
	}
}

func hasNoteContaining(notes []string, substr string) bool {
	for _, n := range notes {
		if strings.Contains(n, substr) {
			return true
		}
	}
	return false
}
