package models

import (
	"math"
	"strings"
	"time"

	"github.com/lib/pq"
)

// HostingMode values as stored in the catalog
const (
	HostingSaaS       = "saas"
	HostingSelfHosted = "self-hosted"
	HostingOpenSource = "open-source"
)

// ModelProfile is a read-only catalog entry describing one language model.
// Numeric fields use an unknown sentinel: non-finite or <= 0 means the
// catalog does not know the value, not that the value is zero.
type ModelProfile struct {
	ID       string `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Provider string `json:"provider" db:"provider"`
	Family   string `json:"family" db:"family"`

	Modality    string `json:"modality" db:"modality"`         // "text", "text+image"
	HostingMode string `json:"api_type" db:"api_type"`         // saas | self-hosted | open-source
	License     string `json:"license,omitempty" db:"license"` // "proprietary", "apache-2.0", ...

	ContextWindow   float64 `json:"context_window" db:"context_window"` // tokens
	LatencyMs       float64 `json:"latency_ms" db:"latency_ms"`
	CostPer1KTokens float64 `json:"cost_per_1k_tokens" db:"cost_per_1k_tokens"`

	DomainTags      pq.StringArray `json:"domain_tags" db:"domain_tags"`
	Pros            pq.StringArray `json:"pros,omitempty" db:"pros"`
	Cons            pq.StringArray `json:"cons,omitempty" db:"cons"`
	RAGTips         pq.StringArray `json:"rag_tips,omitempty" db:"rag_tips"`
	TypicalUseCases pq.StringArray `json:"typical_use_cases,omitempty" db:"typical_use_cases"`
	Strengths       pq.StringArray `json:"strengths,omitempty" db:"strengths"`
	Limitations     pq.StringArray `json:"limitations,omitempty" db:"limitations"`

	Source string `json:"source,omitempty" db:"source"`
	URL    string `json:"url,omitempty" db:"url"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// IsUnknown reports whether a numeric catalog field carries the unknown
// sentinel rather than a measured value.
func IsUnknown(x float64) bool {
	return math.IsNaN(x) || math.IsInf(x, 0) || x <= 0
}

// HasTag reports whether the profile carries the given tag (case-insensitive).
func (m *ModelProfile) HasTag(tag string) bool {
	for _, t := range m.DomainTags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// HasAnyTag reports whether the profile carries at least one of the tags.
func (m *ModelProfile) HasAnyTag(tags ...string) bool {
	for _, tag := range tags {
		if m.HasTag(tag) {
			return true
		}
	}
	return false
}
