package scoring

import (
	"strings"

	"modeladvisor/models"
)

// capabilityEntry maps a provider plus name/family substring to a tier.
type capabilityEntry struct {
	provider string
	needle   string
	score    float64
}

// Static capability tiers, roughly [0.30, 0.92]. A proxy for general
// model quality used both as a soft factor and as the high-stakes hard
// floor. Ordered: first match wins within a provider block.
var capabilityTable = []capabilityEntry{
	{"openai", "gpt-4.1", 0.92},
	{"openai", "o4", 0.90},
	{"openai", "gpt-4o", 0.88},
	{"openai", "gpt-4", 0.82},
	{"openai", "gpt-3.5", 0.62},
	{"openai", "davinci", 0.48},
	{"openai", "babbage", 0.40},

	{"anthropic", "opus", 0.90},
	{"anthropic", "sonnet", 0.85},
	{"anthropic", "haiku", 0.70},

	{"meta", "70b", 0.72},
	{"meta", "llama", 0.55},

	{"mistral", "large", 0.78},
	{"mistral", "7b", 0.52},
}

// Capability returns the static capability score for a catalog entry.
func Capability(m *models.ModelProfile) float64 {
	// Hard demotions override everything else.
	if m.HasTag("deprecated") {
		return 0.30
	}
	if m.HasTag("legacy") {
		return 0.45
	}

	provider := strings.ToLower(m.Provider)
	name := strings.ToLower(m.Name)
	family := strings.ToLower(m.Family)

	for _, e := range capabilityTable {
		if !strings.Contains(provider, e.provider) {
			continue
		}
		if strings.Contains(name, e.needle) || strings.Contains(family, e.needle) {
			return e.score
		}
	}

	// The o-series rule also fires on an explicit reasoning tag for
	// OpenAI catalogs that predate the o-naming.
	if strings.Contains(provider, "openai") && m.HasTag("reasoning") {
		return 0.90
	}

	if m.HasAnyTag("reasoning", "analysis") {
		return 0.75
	}
	if m.HasTag("enterprise") {
		return 0.70
	}
	return 0.60
}
