package scoring

import (
	"strings"

	"modeladvisor/models"
)

// Eligible applies the hard filters to one candidate. It returns false
// with the list of violated requirements; an empty reason list means the
// candidate survives. Hard filters eliminate outright — they never
// contribute to the soft score.
func (s *Scorer) Eligible(m *models.ModelProfile) (bool, []string) {
	var fails []string

	if !hostingAllows(s.constraints.Hosting, m.HostingMode) {
		fails = append(fails, "Hosting requirement not satisfied")
	}

	if !modalityAllows(s.profile.Type, m.Modality) {
		fails = append(fails, "Modality not compatible with this task")
	}

	if s.effectiveMin > 0 {
		if models.IsUnknown(m.ContextWindow) {
			fails = append(fails, "Context window unknown (cannot verify requirement)")
		} else if m.ContextWindow < s.effectiveMin {
			fails = append(fails, "Context window below requirement")
		}
	}

	// Unknown latency is penalized in scoring, not excluded here.
	if !models.IsUnknown(m.LatencyMs) && m.LatencyMs > s.constraints.TargetLatencyMs*latencyCeilingFactor {
		fails = append(fails, "Latency far above target")
	}

	if s.profile.HighStakes && Capability(m) < capabilityFloor {
		fails = append(fails, "Capability below high-stakes floor")
	}

	return len(fails) == 0, fails
}

// hostingAllows checks the hosting preference against the catalog's
// hosting mode. "any" passes everything; a preference mentioning "self"
// requires self-hosted or open-weight deployment; one mentioning "cloud"
// requires a managed service. Anything else passes nothing.
func hostingAllows(pref, mode string) bool {
	p := strings.ToLower(strings.TrimSpace(pref))
	m := strings.ToLower(strings.TrimSpace(mode))

	switch {
	case p == "any":
		return true
	case strings.Contains(p, "self"):
		return m == models.HostingSelfHosted || m == models.HostingOpenSource
	case strings.Contains(p, "cloud"):
		return m == models.HostingSaaS
	default:
		return false
	}
}

// modalityAllows requires a text-capable model for text-oriented task
// types. All seven task types are text tasks today; the switch keeps the
// rule explicit should non-text types appear in the catalog taxonomy.
func modalityAllows(taskType models.TaskType, modality string) bool {
	switch taskType {
	case models.TaskExtraction, models.TaskSentiment, models.TaskClassification,
		models.TaskSummarization, models.TaskQARAG, models.TaskCoding, models.TaskReasoning:
		return strings.Contains(strings.ToLower(modality), "text")
	default:
		return true
	}
}
