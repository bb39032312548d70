package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// RecommendRequest is the caller's task description plus hard constraints.
type RecommendRequest struct {
	Task       string  `json:"task"`
	Hosting    string  `json:"hosting"` // "any" | "self-host" | "cloud"
	LatencyMs  float64 `json:"latency"` // target latency budget
	MinContext float64 `json:"context"` // minimum context window, tokens
}

// FactorScores holds the five independent utility scores, each in [0,1].
type FactorScores struct {
	Context    float64 `json:"ctx_score"`
	Latency    float64 `json:"latency_score"`
	Cost       float64 `json:"cost_score"`
	Domain     float64 `json:"domain_score"`
	Capability float64 `json:"capability_score"`

	// UnknownPenalty is the additive penalty accrued for unknown catalog
	// metadata; kept with the factors because the pipeline composer
	// re-uses its complement.
	UnknownPenalty float64 `json:"unknown_penalty"`
}

// ScoredCandidate pairs a catalog entry with its scoring breakdown.
// Instances are built fresh per request and never mutated afterwards.
type ScoredCandidate struct {
	Model      ModelProfile `json:"model"`
	Score      float64      `json:"score"` // final weighted score, clamped [0,1]
	Factors    FactorScores `json:"factors"`
	Confidence float64      `json:"confidence"`
	Why        []string     `json:"why"`
	Warnings   []string     `json:"warnings"`
}

// Pipeline role names. Fixed: every composed pipeline has exactly these
// three steps in this order.
const (
	RoleRetriever = "Retriever / Query Rewriter"
	RoleReasoner  = "Reasoner"
	RoleVerifier  = "Verifier"
)

// SuggestedConfig is the generation configuration recommended for a step.
type SuggestedConfig struct {
	Temperature       float64 `json:"temperature"`
	MaxOutputTokens   int     `json:"max_output_tokens"`
	StructuredOutput  bool    `json:"structured_output"`
	CitationsRequired bool    `json:"citations_required"`
}

// PipelineStep assigns a model to one of the three fixed roles.
type PipelineStep struct {
	Role            string          `json:"role"`
	Model           ModelProfile    `json:"model"`
	Rationale       []string        `json:"rationale"`
	SuggestedConfig SuggestedConfig `json:"suggested_config"`
	PromptHint      string          `json:"prompt_hint"`
}

// RecommendedPipeline is the composed three-stage processing template.
type RecommendedPipeline struct {
	Label   string         `json:"label"`
	Profile TaskProfile    `json:"profile"`
	Steps   []PipelineStep `json:"steps"`
	Notes   []string       `json:"notes"`
}

// RecommendResult is the payload stored per event and returned to callers.
type RecommendResult struct {
	SingleModels        []ScoredCandidate    `json:"singleModels"`
	RecommendedPipeline *RecommendedPipeline `json:"recommendedPipeline"`
}

// RecommendResponse is the full API response for a recommendation call.
type RecommendResponse struct {
	OK      bool            `json:"ok"`
	EventID string          `json:"eventId,omitempty"`
	Profile TaskProfile     `json:"profile"`
	Results RecommendResult `json:"results"`
	Message string          `json:"message,omitempty"`
}

// RecommendationEvent is the persisted audit record of one recommendation.
type RecommendationEvent struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	Task      string          `json:"task" db:"task"`
	Hosting   string          `json:"hosting" db:"hosting"`
	LatencyMs float64         `json:"latency_ms" db:"latency_ms"`
	Context   float64         `json:"context" db:"context"`
	Results   json.RawMessage `json:"results" db:"results"`
	UserID    *uuid.UUID      `json:"user_id,omitempty" db:"user_id"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// RecommendationSummary is the compact history row for list views.
type RecommendationSummary struct {
	ID               uuid.UUID `json:"id"`
	CreatedAt        time.Time `json:"created_at"`
	Task             string    `json:"task"`
	Hosting          string    `json:"hosting"`
	LatencyMs        float64   `json:"latency_ms"`
	Context          float64   `json:"context"`
	TopModelName     string    `json:"top_model_name,omitempty"`
	TopModelProvider string    `json:"top_model_provider,omitempty"`
	Confidence       *float64  `json:"confidence,omitempty"`
}
