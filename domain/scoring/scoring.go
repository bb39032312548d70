// Package scoring is the pure recommendation core: hard filters, the
// five factor utilities, penalty accounting, and ranking. Everything in
// this package is a synchronous transform over an immutable catalog
// snapshot; no I/O, no shared state.
package scoring

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"modeladvisor/models"
)

// Constraints are the caller's hard requirements for one request.
type Constraints struct {
	Hosting         string  // "any" | "self-host" | "cloud"
	TargetLatencyMs float64 // > 0
	MinContext      float64 // >= 0, tokens
}

// Scorer evaluates catalog entries against one classified request. Built
// once per request; safe for concurrent Score calls because it is never
// mutated after construction.
type Scorer struct {
	profile      models.TaskProfile
	constraints  Constraints
	weights      Weights
	taskTokens   map[string]struct{}
	intentTags   []string
	effectiveMin float64
	costRef      float64
}

// NewScorer prepares per-request scoring state: weight vector, task
// tokens, intent tags, the effective minimum context, and the cost
// reference for the classified task type.
func NewScorer(p models.TaskProfile, c Constraints) *Scorer {
	return &Scorer{
		profile:      p,
		constraints:  c,
		weights:      WeightsFor(p),
		taskTokens:   tokenSet(Tokenize(p.NormalizedTask)),
		intentTags:   IntentTags(p),
		effectiveMin: EffectiveMinContext(p, c.MinContext),
		costRef:      CostReferenceFor(p.Type),
	}
}

// EffectiveMinContext raises the user's stated minimum for workloads
// that are known to need room: long documents and retrieval stacks.
func EffectiveMinContext(p models.TaskProfile, minCtx float64) float64 {
	if minCtx < 0 || math.IsNaN(minCtx) || math.IsInf(minCtx, 0) {
		minCtx = 0
	}
	if p.LongDoc && minCtx < longDocMinContext {
		minCtx = longDocMinContext
	}
	if p.Type == models.TaskQARAG && minCtx < ragMinContext {
		minCtx = ragMinContext
	}
	return minCtx
}

// IntentTags derives the catalog tags a task profile implies, used for
// the tag half of the domain blend.
func IntentTags(p models.TaskProfile) []string {
	var tags []string
	if p.Finance {
		tags = append(tags, "finance")
	}
	switch p.Type {
	case models.TaskQARAG:
		tags = append(tags, "rag", "retrieval")
	case models.TaskCoding:
		tags = append(tags, "coding", "code")
	case models.TaskSentiment:
		tags = append(tags, "sentiment")
	case models.TaskExtraction:
		tags = append(tags, "extraction", "structured")
	case models.TaskSummarization:
		tags = append(tags, "summarization")
	case models.TaskClassification:
		tags = append(tags, "classification")
	case models.TaskReasoning:
		tags = append(tags, "reasoning", "analysis")
	}
	if p.HighStakes {
		tags = append(tags, "analysis", "enterprise")
	}
	if p.LongDoc {
		tags = append(tags, "long-context")
	}
	return dedupe(tags)
}

// Score computes the full scoring breakdown for one eligible candidate.
func (s *Scorer) Score(m models.ModelProfile) models.ScoredCandidate {
	ctxUnknown := models.IsUnknown(m.ContextWindow)
	latUnknown := models.IsUnknown(m.LatencyMs)
	costUnknown := models.IsUnknown(m.CostPer1KTokens)

	f := models.FactorScores{
		Context:    s.contextScore(m.ContextWindow, ctxUnknown),
		Latency:    s.latencyScore(m.LatencyMs, latUnknown),
		Cost:       s.costScore(m.CostPer1KTokens, costUnknown),
		Domain:     s.domainScore(&m),
		Capability: Capability(&m),
	}

	f.UnknownPenalty = 0
	if ctxUnknown {
		f.UnknownPenalty += penaltyUnknownContext
	}
	if latUnknown {
		f.UnknownPenalty += penaltyUnknownLatency
	}
	if costUnknown {
		f.UnknownPenalty += penaltyUnknownCost
	}

	weighted := s.weights.Context*f.Context +
		s.weights.Latency*f.Latency +
		s.weights.Cost*f.Cost +
		s.weights.Domain*f.Domain +
		s.weights.Capability*f.Capability

	penalty := f.UnknownPenalty + confidencePenalty(s.profile.Confidence) + stabilityPenalty(&m)
	score := Clamp01(weighted - penalty)

	var warnings []string
	if ctxUnknown {
		warnings = append(warnings, "Context window unknown/placeholder in catalog")
	}
	if latUnknown {
		warnings = append(warnings, "Latency unknown/placeholder in catalog")
	}
	if costUnknown {
		warnings = append(warnings, "Cost unknown/placeholder in catalog")
	}
	if m.HasTag("preview") {
		warnings = append(warnings, "Preview model: stability penalty applied")
	}
	if m.HasTag("legacy") {
		warnings = append(warnings, "Legacy model: stability penalty applied")
	}
	if m.HasTag("deprecated") {
		warnings = append(warnings, "Deprecated model: stability penalty applied")
	}
	if s.profile.Confidence < midConfidenceThreshold {
		warnings = append(warnings, "Task classification confidence is low; scores discounted")
	}

	why := []string{
		fmt.Sprintf("Context fit: %d%%", toPercent(f.Context)),
		fmt.Sprintf("Latency fit: %d%%", toPercent(f.Latency)),
		fmt.Sprintf("Cost value: %d%%", toPercent(f.Cost)),
		fmt.Sprintf("Domain fit: %d%%", toPercent(f.Domain)),
		fmt.Sprintf("Capability: %d%%", toPercent(f.Capability)),
		fmt.Sprintf("Task interpreted as: %q", s.profile.NormalizedTask),
	}
	if len(s.profile.DetectedTypos) > 0 {
		why = append(why, "Spelling corrections: "+strings.Join(s.profile.DetectedTypos, ", "))
	}

	return models.ScoredCandidate{
		Model:      m,
		Score:      score,
		Factors:    f,
		Confidence: Clamp01(score * (1 - f.UnknownPenalty)),
		Why:        why,
		Warnings:   warnings,
	}
}

func (s *Scorer) contextScore(ctx float64, unknown bool) float64 {
	if unknown {
		return unknownContextScore
	}
	if s.effectiveMin == 0 {
		return contextBaseline
	}
	slack := math.Max(0, ctx-s.effectiveMin)
	k := math.Max(contextSlackFloor, s.effectiveMin*contextSlackRatio)
	return contextBaseline + contextBonusSpan*SatBonus(slack, k)
}

func (s *Scorer) latencyScore(lat float64, unknown bool) float64 {
	if unknown {
		return unknownLatencyScore
	}
	target := s.constraints.TargetLatencyMs
	if lat <= target {
		return 1
	}
	return math.Exp(-(lat - target) / target)
}

func (s *Scorer) costScore(cost float64, unknown bool) float64 {
	if unknown {
		return unknownCostScore
	}
	return 1 / (1 + cost/s.costRef)
}

func (s *Scorer) domainScore(m *models.ModelProfile) float64 {
	text := Jaccard(s.taskTokens, tokenSet(Tokenize(domainText(m))))
	tag := s.tagMatchRatio(m)
	score := math.Max(text, domainTagWeight*tag+domainTextWeight*text)

	if s.profile.Finance {
		if m.HasTag("finance") {
			score = math.Max(score, financeTagFloor)
		}
		if !m.HasTag("finance") {
			score = math.Min(score, nonFinanceTagCeil)
		}
	}
	return Clamp01(score)
}

func (s *Scorer) tagMatchRatio(m *models.ModelProfile) float64 {
	if len(s.intentTags) == 0 {
		return 0
	}
	matched := 0
	for _, tag := range s.intentTags {
		if m.HasTag(tag) {
			matched++
		}
	}
	return float64(matched) / float64(len(s.intentTags))
}

func confidencePenalty(confidence float64) float64 {
	switch {
	case confidence < lowConfidenceThreshold:
		return penaltyLowConfidence
	case confidence < midConfidenceThreshold:
		return penaltyMediumConfidence
	default:
		return 0
	}
}

func stabilityPenalty(m *models.ModelProfile) float64 {
	p := 0.0
	if m.HasTag("preview") {
		p += penaltyPreviewTag
	}
	if m.HasTag("legacy") {
		p += penaltyLegacyTag
	}
	if m.HasTag("deprecated") {
		p += penaltyDeprecatedTag
	}
	return p
}

// domainText concatenates the candidate's descriptive metadata for the
// token-overlap half of the domain score.
func domainText(m *models.ModelProfile) string {
	parts := []string{m.Name, m.Family, m.Provider, m.License, m.Source, m.HostingMode}
	parts = append(parts, m.DomainTags...)
	parts = append(parts, m.TypicalUseCases...)
	parts = append(parts, m.Strengths...)
	parts = append(parts, m.Limitations...)
	parts = append(parts, m.Pros...)
	parts = append(parts, m.Cons...)
	return strings.Join(parts, " ")
}

var tokenSplitRe = regexp.MustCompile(`[^a-z0-9]+`)

// Tokenize lowercases and splits on non-alphanumerics, dropping tokens
// shorter than three characters.
func Tokenize(s string) []string {
	var out []string
	for _, t := range tokenSplitRe.Split(strings.ToLower(s), -1) {
		if len(t) >= 3 {
			out = append(out, t)
		}
	}
	return out
}

// Jaccard computes intersection-over-union of two token sets.
func Jaccard(a, b map[string]struct{}) float64 {
	inter := 0
	for t := range a {
		if _, ok := b[t]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// SatBonus is the saturating bonus 1 - e^(-x/k): rewards slack with
// diminishing returns.
func SatBonus(x, k float64) float64 {
	return 1 - math.Exp(-x/math.Max(1e-6, k))
}

// Clamp01 clamps into [0,1].
func Clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}

func toPercent(score float64) int {
	return int(math.Round(Clamp01(score) * 100))
}

func tokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	var out []string
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
