// Package profile classifies free-text task descriptions without any
// external call. It is the fallback path when the AI classifier is
// unavailable and must stay a pure function of its input.
package profile

import (
	"regexp"
	"strings"

	"modeladvisor/models"
)

var (
	financeRe = regexp.MustCompile(`finance|market|stock|trading|risk|portfolio|hedge|sec|10-k|10q|earnings|filing|compliance|aml|kyc`)

	extractionRe     = regexp.MustCompile(`extract|parse|ner|isin|lei|ticker|table|json|schema|etl`)
	sentimentRe      = regexp.MustCompile(`sentiment|bullish|bearish|tone`)
	classificationRe = regexp.MustCompile(`classif|label|categor`)
	summarizationRe  = regexp.MustCompile(`summar|tl;dr|brief`)
	qaRAGRe          = regexp.MustCompile(`rag|search|cite|sources|ground|retriev`)
	codingRe         = regexp.MustCompile(`code|bug|typescript|python|sql|java|c\+\+|javascript`)

	highStakesRe = regexp.MustCompile(`risk|compliance|aml|kyc|investment advice|recommendation|regulat`)
	longDocRe    = regexp.MustCompile(`10-k|10q|filing|prospectus|annual report|pdf|statement|balance sheet`)

	filingsRe    = regexp.MustCompile(`10-k|10q|filing|sec|earnings|prospectus`)
	marketsRe    = regexp.MustCompile(`news|headline|macro|markets?`)
	riskRe       = regexp.MustCompile(`var|stress|risk|exposure|hedge`)
	tradingRe    = regexp.MustCompile(`trading|execution|order|intraday|alpha`)
	complianceRe = regexp.MustCompile(`aml|kyc|compliance|sanctions|policy`)
)

// Heuristic classifies a task description using keyword matching alone.
// Deterministic and side-effect free: the same text always yields the
// same profile. The fixed reduced confidence marks the result as weaker
// evidence than an AI-assisted classification.
func Heuristic(task string) models.TaskProfile {
	t := strings.ToLower(strings.TrimSpace(task))

	finance := financeRe.MatchString(t)
	taskType := detectType(t)

	p := models.TaskProfile{
		Finance:    finance,
		Type:       taskType,
		HighStakes: finance && highStakesRe.MatchString(t),
		LongDoc:    longDocRe.MatchString(t),
		Subtype:    detectSubtype(t, finance),

		NormalizedTask: strings.TrimSpace(task),
		Confidence:     models.FallbackConfidence,
		DetectedTypos:  []string{},
		Rationale:      []string{"Keyword heuristic classifier used."},
		Source:         models.SourceFallback,
	}
	return p
}

func detectType(t string) models.TaskType {
	switch {
	case extractionRe.MatchString(t):
		return models.TaskExtraction
	case sentimentRe.MatchString(t):
		return models.TaskSentiment
	case classificationRe.MatchString(t):
		return models.TaskClassification
	case summarizationRe.MatchString(t):
		return models.TaskSummarization
	case qaRAGRe.MatchString(t):
		return models.TaskQARAG
	case codingRe.MatchString(t):
		return models.TaskCoding
	default:
		return models.TaskReasoning
	}
}

func detectSubtype(t string, finance bool) models.FinanceSubtype {
	if !finance {
		return models.SubtypeNone
	}
	switch {
	case filingsRe.MatchString(t):
		return models.SubtypeFilings
	case marketsRe.MatchString(t):
		return models.SubtypeMarketsNews
	case riskRe.MatchString(t):
		return models.SubtypeRisk
	case tradingRe.MatchString(t):
		return models.SubtypeTrading
	case complianceRe.MatchString(t):
		return models.SubtypeCompliance
	default:
		return models.SubtypeGeneralFinance
	}
}
