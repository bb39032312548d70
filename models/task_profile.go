package models

// TaskType is the coarse category of work the user described.
type TaskType string

const (
	TaskExtraction     TaskType = "extraction"
	TaskSentiment      TaskType = "sentiment"
	TaskClassification TaskType = "classification"
	TaskSummarization  TaskType = "summarization"
	TaskQARAG          TaskType = "qa_rag"
	TaskCoding         TaskType = "coding"
	TaskReasoning      TaskType = "reasoning"
)

// FinanceSubtype refines finance-domain tasks.
type FinanceSubtype string

const (
	SubtypeFilings        FinanceSubtype = "filings"
	SubtypeMarketsNews    FinanceSubtype = "markets_news"
	SubtypeRisk           FinanceSubtype = "risk"
	SubtypeTrading        FinanceSubtype = "trading"
	SubtypeCompliance     FinanceSubtype = "compliance"
	SubtypeGeneralFinance FinanceSubtype = "general_finance"
	SubtypeNone           FinanceSubtype = "none"
)

// ClassificationSource records which classifier produced a profile.
type ClassificationSource string

const (
	SourceAI       ClassificationSource = "ai"
	SourceFallback ClassificationSource = "fallback"
)

// FallbackConfidence is the fixed confidence assigned to profiles produced
// by the keyword heuristic when the AI classifier is unavailable.
const FallbackConfidence = 0.35

// TaskProfile is the structured interpretation of a free-text task
// description. Confidence is always clamped into [0,1].
type TaskProfile struct {
	Finance    bool           `json:"finance"`
	Type       TaskType       `json:"type"`
	HighStakes bool           `json:"high_stakes"`
	LongDoc    bool           `json:"long_doc"`
	Subtype    FinanceSubtype `json:"subtype"`
	IsNonsense bool           `json:"is_nonsense"`

	NormalizedTask string               `json:"normalized_task"`
	Confidence     float64              `json:"confidence"`
	DetectedTypos  []string             `json:"detected_typos"`
	Rationale      []string             `json:"rationale"`
	Source         ClassificationSource `json:"source"`
}
