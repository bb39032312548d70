package scoring

import "modeladvisor/models"

// Hand-tuned heuristic constants. These are configuration, not derived
// parameters: keep them in this file so retuning never touches the
// scoring logic itself.

// Weights is the profile-dependent combination vector over the five
// factor scores. Each vector sums to 1.
type Weights struct {
	Context    float64
	Latency    float64
	Cost       float64
	Domain     float64
	Capability float64
}

var (
	weightsHighStakes = Weights{Context: 0.18, Latency: 0.10, Cost: 0.08, Domain: 0.42, Capability: 0.22}
	weightsTrading    = Weights{Context: 0.12, Latency: 0.38, Cost: 0.12, Domain: 0.28, Capability: 0.10}
	weightsDefault    = Weights{Context: 0.22, Latency: 0.22, Cost: 0.18, Domain: 0.28, Capability: 0.10}
)

// WeightsFor picks the weight vector for a classified task.
func WeightsFor(p models.TaskProfile) Weights {
	if p.HighStakes {
		return weightsHighStakes
	}
	if p.Subtype == models.SubtypeTrading {
		return weightsTrading
	}
	return weightsDefault
}

// Fixed scores assigned when a catalog field carries the unknown sentinel.
const (
	unknownContextScore = 0.2
	unknownLatencyScore = 0.3
	unknownCostScore    = 0.3
)

// Unknown-metadata penalties, additive, subtracted from the weighted sum.
const (
	penaltyUnknownContext = 0.15
	penaltyUnknownLatency = 0.15
	penaltyUnknownCost    = 0.10
)

// Classification-confidence penalties.
const (
	lowConfidenceThreshold  = 0.4
	midConfidenceThreshold  = 0.6
	penaltyLowConfidence    = 0.08
	penaltyMediumConfidence = 0.04
)

// Stability penalties keyed on catalog tags, additive.
const (
	penaltyPreviewTag    = 0.05
	penaltyLegacyTag     = 0.10
	penaltyDeprecatedTag = 0.18
)

// Context scoring shape: a baseline for merely meeting the requirement
// plus a saturating bonus for slack beyond it.
const (
	contextBaseline   = 0.7
	contextBonusSpan  = 0.3
	contextSlackFloor = 512  // minimum k for the saturating bonus
	contextSlackRatio = 0.25 // k = max(floor, ratio * requested minimum)
)

// Effective-minimum-context floors raised by the task profile.
const (
	longDocMinContext = 16000
	ragMinContext     = 8000
)

// Latency candidates whose known latency exceeds this multiple of the
// target are excluded outright.
const latencyCeilingFactor = 5.0

// High-stakes tasks exclude candidates below this capability score.
const capabilityFloor = 0.6

// Domain-score clamps for finance tasks. Two separate rules on purpose:
// a floor for finance-tagged candidates and a ceiling for the rest.
const (
	financeTagFloor   = 0.65
	nonFinanceTagCeil = 0.50
)

// defaultCostReference anchors the cost utility 1/(1+cost/ref); the
// per-task references reflect typical per-1k-token spend for each
// workload, so "cheap for a RAG stack" and "cheap for extraction" differ.
const defaultCostReference = 0.002

var costReferenceByType = map[models.TaskType]float64{
	models.TaskQARAG:          0.004,
	models.TaskCoding:         0.003,
	models.TaskReasoning:      0.003,
	models.TaskClassification: 0.002,
	models.TaskSentiment:      0.002,
	models.TaskSummarization:  0.0015,
	models.TaskExtraction:     0.0015,
}

// CostReferenceFor returns the per-task-type reference cost.
func CostReferenceFor(t models.TaskType) float64 {
	if ref, ok := costReferenceByType[t]; ok {
		return ref
	}
	return defaultCostReference
}

// Domain blend: combined = max(text, tagWeight*tag + textWeight*text).
const (
	domainTagWeight  = 0.55
	domainTextWeight = 0.45
)

// TopN is the maximum number of ranked candidates returned.
const TopN = 10
