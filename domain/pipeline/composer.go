// Package pipeline composes the fixed three-stage Retriever / Reasoner /
// Verifier template from ranked candidates. The composer always returns
// exactly three steps — callers rely on that shape even when nothing
// survived filtering.
package pipeline

import (
	"modeladvisor/models"
)

// roleScore is a role-specific linear combination over the factor scores
// already computed by the scorer.
type roleScore func(c *models.ScoredCandidate) float64

func retrieverScore(c *models.ScoredCandidate) float64 {
	return 0.55*c.Factors.Cost + 0.35*c.Factors.Latency + 0.10*c.Factors.Context
}

func reasonerScore(c *models.ScoredCandidate) float64 {
	return 0.45*c.Factors.Domain +
		0.20*c.Factors.Context +
		0.15*c.Factors.Latency +
		0.20*(1-c.Factors.UnknownPenalty)
}

func verifierScore(c *models.ScoredCandidate) float64 {
	tagBoost := 0.0
	if c.Model.HasAnyTag("reasoning", "analysis", "enterprise") {
		tagBoost = 1.0
	}
	return 0.55*tagBoost + 0.20*c.Factors.Domain + 0.25*(1-c.Factors.UnknownPenalty)
}

// Compose builds the recommended pipeline for a classified task. Given an
// empty candidate list it returns the placeholder pipeline rather than
// nil or a partial result.
func Compose(ranked []models.ScoredCandidate, profile models.TaskProfile) *models.RecommendedPipeline {
	if len(ranked) == 0 {
		return placeholder(profile)
	}

	retriever := chooseBest(ranked, retrieverScore, "")

	// With a single candidate there is nothing to exclude; otherwise the
	// reasoner must differ from the retriever.
	excludeForReasoner := ""
	if len(ranked) > 1 {
		excludeForReasoner = retriever.Model.ID
	}
	reasoner := chooseBest(ranked, reasonerScore, excludeForReasoner)

	verifier := chooseBest(ranked, verifierScore, reasoner.Model.ID)
	if verifier == nil {
		verifier = reasoner
	}

	citationsRequired := profile.Type == models.TaskQARAG || profile.HighStakes || profile.Finance

	reasonerTemp := 0.2
	if profile.HighStakes {
		reasonerTemp = 0.0
	}

	reasonerRationale := []string{"Best balance of task relevance and reliability for the request"}
	reasonerHint := "Answer using the provided context. Be explicit about assumptions and uncertainty."
	if citationsRequired {
		reasonerRationale = append(reasonerRationale, "Must answer using retrieved sources only")
		reasonerHint = "Answer ONLY using the retrieved snippets. Cite sources inline. If the answer isn't in the sources, say 'Not enough evidence.'"
	} else {
		reasonerRationale = append(reasonerRationale, "Answer using provided context")
	}

	steps := []models.PipelineStep{
		{
			Role:  models.RoleRetriever,
			Model: retriever.Model,
			Rationale: []string{
				"Optimized for speed and cost",
				"Use it to rewrite the user query and generate structured retrieval filters",
			},
			SuggestedConfig: models.SuggestedConfig{
				Temperature:       0.1,
				MaxOutputTokens:   350,
				StructuredOutput:  true,
				CitationsRequired: false,
			},
			PromptHint: "Rewrite the query into 1) a clean search query, 2) required entities (tickers/ISIN/LEI), 3) date range, 4) must-have constraints. Output JSON only.",
		},
		{
			Role:      models.RoleReasoner,
			Model:     reasoner.Model,
			Rationale: reasonerRationale,
			SuggestedConfig: models.SuggestedConfig{
				Temperature:       reasonerTemp,
				MaxOutputTokens:   900,
				StructuredOutput:  profile.Type == models.TaskExtraction,
				CitationsRequired: citationsRequired,
			},
			PromptHint: reasonerHint,
		},
		{
			Role:  models.RoleVerifier,
			Model: verifier.Model,
			Rationale: []string{
				"Checks numeric consistency, contradictions, and hallucinations",
				"Enforces 'unknown if not supported by evidence' for finance",
			},
			SuggestedConfig: models.SuggestedConfig{
				Temperature:       0.0,
				MaxOutputTokens:   450,
				StructuredOutput:  true,
				CitationsRequired: citationsRequired,
			},
			PromptHint: "Verify the Reasoner output against the sources. Return JSON: {verdict: pass|fail, issues: [...], corrected_answer?: ...}. Fail if any claim lacks evidence.",
		},
	}

	notes := []string{
		"Use the retriever step to reduce context bloat and make RAG more precise.",
		"In finance, always separate 'answer generation' from 'verification' for safety.",
		"If the verifier fails, re-run reasoning with stricter constraints or retrieve more evidence.",
	}
	distinct := countDistinct(retriever.Model.ID, reasoner.Model.ID, verifier.Model.ID)
	switch distinct {
	case 3:
		notes = append(notes, "Role diversity achieved: each stage uses a distinct model.")
	case 1:
		notes = append(notes, "No role diversity: a single eligible candidate fills all three roles.")
	default:
		notes = append(notes, "Partial role diversity: one model is shared between two roles.")
	}

	label := "Recommended pipeline"
	if profile.Finance {
		label = "Finance-safe pipeline"
	}

	return &models.RecommendedPipeline{
		Label:   label,
		Profile: profile,
		Steps:   steps,
		Notes:   notes,
	}
}

// chooseBest maximizes the role score over candidates, skipping the
// excluded model id. Ties break deterministically toward the ascending
// model id so identical inputs always compose identical pipelines.
// Returns nil only when every candidate is excluded.
func chooseBest(candidates []models.ScoredCandidate, score roleScore, excludeID string) *models.ScoredCandidate {
	var best *models.ScoredCandidate
	bestScore := 0.0

	for i := range candidates {
		c := &candidates[i]
		if excludeID != "" && c.Model.ID == excludeID {
			continue
		}
		s := score(c)
		if best == nil || s > bestScore || (s == bestScore && c.Model.ID < best.Model.ID) {
			best = c
			bestScore = s
		}
	}
	return best
}

func placeholder(profile models.TaskProfile) *models.RecommendedPipeline {
	note := "No candidates survived filtering; placeholder step. Relax constraints and retry."
	hints := map[string]string{
		models.RoleRetriever: "Rewrite the user query into a clean search query with explicit constraints. Output JSON only.",
		models.RoleReasoner:  "Answer using the provided context. Be explicit about assumptions and uncertainty.",
		models.RoleVerifier:  "Verify the draft answer against the sources. Return JSON: {verdict: pass|fail, issues: [...]}.",
	}

	steps := make([]models.PipelineStep, 0, 3)
	for _, role := range []string{models.RoleRetriever, models.RoleReasoner, models.RoleVerifier} {
		steps = append(steps, models.PipelineStep{
			Role:      role,
			Model:     models.ModelProfile{},
			Rationale: []string{note},
			SuggestedConfig: models.SuggestedConfig{
				Temperature:       0.0,
				MaxOutputTokens:   450,
				StructuredOutput:  true,
				CitationsRequired: false,
			},
			PromptHint: hints[role],
		})
	}

	return &models.RecommendedPipeline{
		Label:   "Placeholder pipeline",
		Profile: profile,
		Steps:   steps,
		Notes:   []string{"No eligible candidates; pipeline populated with placeholders."},
	}
}

func countDistinct(ids ...string) int {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		seen[id] = struct{}{}
	}
	return len(seen)
}
