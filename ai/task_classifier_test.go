package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"modeladvisor/models"
)

func classifierServer(t *testing.T, out classifiedTask) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		content, err := json.Marshal(out)
		if err != nil {
			t.Fatalf("marshal classifier output: %v", err)
		}
		fmt.Fprintf(w, `{"choices":[{"message":{"content":%q}}]}`, string(content))
	}))
}

func classifierFor(serverURL string) *TaskClassifier {
	return NewTaskClassifier(ClientConfig{
		APIKey:  "test-key",
		BaseURL: serverURL,
		Model:   "test-model",
		Timeout: 2 * time.Second,
	})
}

func TestClassifySanitizesOutput(t *testing.T) {
	typos := make([]string, 12)
	for i := range typos {
		typos[i] = fmt.Sprintf("typo-%d", i)
	}

	server := classifierServer(t, classifiedTask{
		NormalizedTask: "analyze sentiment of market headlines",
		DetectedTypos:  typos,
		Finance:        true,
		Type:           "sentiment",
		Subtype:        "markets_news",
		Confidence:     1.7,
		Rationale:      []string{"a", "b", "c", "d", "e", "f", "g", "h"},
	})
	defer server.Close()

	p, err := classifierFor(server.URL).Classify(context.Background(), "analyze sentiment of market headlines")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.Type != models.TaskSentiment || p.Subtype != models.SubtypeMarketsNews || !p.Finance {
		t.Errorf("profile = %+v", p)
	}
	if p.Confidence != 1.0 {
		t.Errorf("confidence = %v, want clamped 1.0", p.Confidence)
	}
	if len(p.DetectedTypos) != 8 {
		t.Errorf("typos capped at 8, got %d", len(p.DetectedTypos))
	}
	if len(p.Rationale) != 6 {
		t.Errorf("rationale capped at 6, got %d", len(p.Rationale))
	}
	if p.Source != models.SourceAI {
		t.Errorf("source = %q, want %q", p.Source, models.SourceAI)
	}
}

func TestClassifyRejectsUnknownEnums(t *testing.T) {
	badType := classifierServer(t, classifiedTask{Type: "poetry", Subtype: "none", Confidence: 0.9})
	defer badType.Close()
	if _, err := classifierFor(badType.URL).Classify(context.Background(), "write a poem"); err == nil {
		t.Error("expected error for unknown task type")
	}

	badSubtype := classifierServer(t, classifiedTask{Type: "reasoning", Subtype: "astrology", Confidence: 0.9})
	defer badSubtype.Close()
	if _, err := classifierFor(badSubtype.URL).Classify(context.Background(), "read my stars"); err == nil {
		t.Error("expected error for unknown subtype")
	}
}

func TestClassifyFallsBackToPreNormalizedTask(t *testing.T) {
	server := classifierServer(t, classifiedTask{
		NormalizedTask: "   ",
		Type:           "summarization",
		Subtype:        "none",
		Confidence:     0.8,
	})
	defer server.Close()

	p, err := classifierFor(server.URL).Classify(context.Background(), "  summarize   this!!  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.NormalizedTask != "summarize this" {
		t.Errorf("normalized task = %q, want pre-normalized input", p.NormalizedTask)
	}
}
