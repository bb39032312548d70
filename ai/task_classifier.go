package ai

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"

	"modeladvisor/domain/scoring"
	"modeladvisor/models"
)

// classifiedTask is the strict response shape the classifier model must
// produce. Anything that fails to conform is treated as a failed call.
type classifiedTask struct {
	NormalizedTask string   `json:"normalizedTask"`
	DetectedTypos  []string `json:"detectedTypos"`

	Finance    bool   `json:"finance"`
	Type       string `json:"type"`
	HighStakes bool   `json:"highStakes"`
	LongDoc    bool   `json:"longDoc"`
	Subtype    string `json:"subtype"`

	IsNonsense bool     `json:"isNonsense"`
	Confidence float64  `json:"confidence"`
	Rationale  []string `json:"rationale"`
}

// TaskClassifier implements ports.TaskClassifier against an
// OpenAI-compatible chat endpoint in JSON mode.
type TaskClassifier struct {
	client *StructuredClient[classifiedTask]
}

// NewTaskClassifier creates the AI-assisted classifier adapter.
func NewTaskClassifier(config ClientConfig) *TaskClassifier {
	return &TaskClassifier{client: NewStructuredClient[classifiedTask](config)}
}

var classifierSystemPrompt = strings.Join([]string{
	"You are a task classifier for an LLM recommender.",
	"You MUST output ONLY JSON with keys: normalizedTask, detectedTypos, finance, type, highStakes, longDoc, subtype, isNonsense, confidence, rationale.",
	"",
	"Goals:",
	"1) Correct obvious spelling mistakes and output normalizedTask.",
	"2) Decide if the domain is finance. IMPORTANT: single keywords like 'earnings', 'revenue', 'guidance', 'ipo', '10-k', 'sec' are finance.",
	"3) Classify task type even with typos: 'sentinent' => 'sentiment'.",
	"4) If the input is a random animal/word with no task intent (e.g., 'parrot', 'banana'), set isNonsense=true, finance=false, subtype='none', type='reasoning'.",
	"",
	"Type is one of: extraction, sentiment, classification, summarization, qa_rag, coding, reasoning.",
	"- extraction: structured fields/JSON/entities/tables",
	"- sentiment: bullish/bearish/tone/polarity (even if misspelled)",
	"- classification: label into categories",
	"- summarization: TL;DR/brief/summarize",
	"- qa_rag: retrieval/citations/sources/grounding needed",
	"- coding: write/debug code",
	"- reasoning: general analysis/decision",
	"",
	"Subtype is one of: filings, markets_news, risk, trading, compliance, general_finance, none.",
	"- filings: 10-K/10-Q/SEC/annual report/prospectus",
	"- markets_news: earnings/news/headlines/macro",
	"- trading: execution/orders/intraday/latency-sensitive",
	"- risk: VaR/stress/hedging/exposure",
	"- compliance: AML/KYC/sanctions/policy",
	"- general_finance: other finance; none: not finance",
	"",
	"highStakes: finance + (risk/compliance/aml/kyc/advice/recommendation).",
	"longDoc: filings/annual report/prospectus/pdf/statement/balance sheet.",
	"detectedTypos: entries like \"sentinent->sentiment\", at most 8.",
	"rationale: short bullets, at most 6.",
	"confidence: 0..1. Be conservative if uncertain.",
}, "\n")

// preNormalizeRe keeps letters, numbers, whitespace and a few symbols so
// small classifier models see clean input.
var preNormalizeRe = regexp.MustCompile(`[^\p{L}\p{N}\s\-\+\.]`)

func preNormalize(s string) string {
	s = strings.Join(strings.Fields(strings.TrimSpace(s)), " ")
	return preNormalizeRe.ReplaceAllString(s, "")
}

var validTypes = map[string]models.TaskType{
	"extraction":     models.TaskExtraction,
	"sentiment":      models.TaskSentiment,
	"classification": models.TaskClassification,
	"summarization":  models.TaskSummarization,
	"qa_rag":         models.TaskQARAG,
	"coding":         models.TaskCoding,
	"reasoning":      models.TaskReasoning,
}

var validSubtypes = map[string]models.FinanceSubtype{
	"filings":         models.SubtypeFilings,
	"markets_news":    models.SubtypeMarketsNews,
	"risk":            models.SubtypeRisk,
	"trading":         models.SubtypeTrading,
	"compliance":      models.SubtypeCompliance,
	"general_finance": models.SubtypeGeneralFinance,
	"none":            models.SubtypeNone,
}

// Classify calls the external model and sanitizes its output into a
// TaskProfile. Errors are returned for the caller to recover from; this
// adapter never falls back on its own.
func (tc *TaskClassifier) Classify(ctx context.Context, task string) (*models.TaskProfile, error) {
	normalized := preNormalize(task)

	user := strings.Join([]string{
		fmt.Sprintf("Raw input: %q", task),
		fmt.Sprintf("Pre-normalized: %q", normalized),
		"",
		"Return JSON ONLY.",
	}, "\n")

	out, err := tc.client.GetJSONResponse(ctx, classifierSystemPrompt, user)
	if err != nil {
		return nil, err
	}

	taskType, ok := validTypes[out.Type]
	if !ok {
		return nil, fmt.Errorf("classifier returned unknown task type %q", out.Type)
	}
	subtype, ok := validSubtypes[out.Subtype]
	if !ok {
		return nil, fmt.Errorf("classifier returned unknown subtype %q", out.Subtype)
	}

	normalizedTask := strings.TrimSpace(out.NormalizedTask)
	if normalizedTask == "" {
		normalizedTask = normalized
	}

	profile := &models.TaskProfile{
		Finance:    out.Finance,
		Type:       taskType,
		HighStakes: out.HighStakes,
		LongDoc:    out.LongDoc,
		Subtype:    subtype,
		IsNonsense: out.IsNonsense,

		NormalizedTask: normalizedTask,
		Confidence:     scoring.Clamp01(out.Confidence),
		DetectedTypos:  capStrings(out.DetectedTypos, 8),
		Rationale:      capStrings(out.Rationale, 6),
		Source:         models.SourceAI,
	}

	log.Printf("[TaskClassifier] classified type=%s finance=%t subtype=%s confidence=%.2f",
		profile.Type, profile.Finance, profile.Subtype, profile.Confidence)
	return profile, nil
}

func capStrings(in []string, max int) []string {
	if in == nil {
		return []string{}
	}
	if len(in) > max {
		in = in[:max]
	}
	return in
}
