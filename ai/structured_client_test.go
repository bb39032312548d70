package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type testPayload struct {
	Answer string `json:"answer"`
	Count  int    `json:"count"`
}

func chatServer(t *testing.T, content string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing bearer token: %q", r.Header.Get("Authorization"))
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if req.ResponseFormat == nil || req.ResponseFormat.Type != "json_object" {
			t.Error("request must ask for json_object response format")
		}

		w.WriteHeader(status)
		if status == http.StatusOK {
			fmt.Fprintf(w, `{"choices":[{"message":{"content":%q}}]}`, content)
		}
	}))
}

func testClient(serverURL string) *StructuredClient[testPayload] {
	return NewStructuredClient[testPayload](ClientConfig{
		APIKey:  "test-key",
		BaseURL: serverURL,
		Model:   "test-model",
		Timeout: 2 * time.Second,
	})
}

func TestGetJSONResponse(t *testing.T) {
	server := chatServer(t, `{"answer":"yes","count":3}`, http.StatusOK)
	defer server.Close()

	out, err := testClient(server.URL).GetJSONResponse(context.Background(), "system", "user")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Answer != "yes" || out.Count != 3 {
		t.Errorf("parsed payload = %+v", out)
	}
}

func TestGetJSONResponseStripsFences(t *testing.T) {
	server := chatServer(t, "```json\n{\"answer\":\"fenced\",\"count\":1}\n```", http.StatusOK)
	defer server.Close()

	out, err := testClient(server.URL).GetJSONResponse(context.Background(), "system", "user")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Answer != "fenced" {
		t.Errorf("parsed payload = %+v", out)
	}
}

func TestGetJSONResponseErrorStatus(t *testing.T) {
	server := chatServer(t, "", http.StatusInternalServerError)
	defer server.Close()

	if _, err := testClient(server.URL).GetJSONResponse(context.Background(), "system", "user"); err == nil {
		t.Error("expected error for 500 response")
	}
}

func TestGetJSONResponseMalformedContent(t *testing.T) {
	server := chatServer(t, `not json at all`, http.StatusOK)
	defer server.Close()

	if _, err := testClient(server.URL).GetJSONResponse(context.Background(), "system", "user"); err == nil {
		t.Error("expected error for non-JSON content")
	}
}

func TestCleanJSONContent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"  {\"a\":1}  ", `{"a":1}`},
	}
	for _, tt := range tests {
		if got := cleanJSONContent(tt.in); got != tt.want {
			t.Errorf("cleanJSONContent(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPreNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  analyze   sentiment  ", "analyze sentiment"},
		{"what's the 10-K risk?!", "whats the 10-K risk"},
		{"c++ code review", "c++ code review"},
	}
	for _, tt := range tests {
		if got := preNormalize(tt.in); got != tt.want {
			t.Errorf("preNormalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
