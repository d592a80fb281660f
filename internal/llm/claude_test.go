package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func claudeMessageResponse(text string, inputTokens, outputTokens int) map[string]any {
	return map[string]any{
		"id":    "msg_1",
		"type":  "message",
		"role":  "assistant",
		"model": "claude-test",
		"content": []map[string]any{
			{"type": "text", "text": text},
		},
		"stop_reason": "end_turn",
		"usage": map[string]any{
			"input_tokens":  inputTokens,
			"output_tokens": outputTokens,
		},
	}
}

func TestClaudeProvider_Complete(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			http.Error(w, "bad path", http.StatusNotFound)
			return
		}

		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "json", http.StatusBadRequest)
			return
		}
		if req["max_tokens"] == nil || req["max_tokens"] == float64(0) {
			http.Error(w, "missing max_tokens", http.StatusBadRequest)
			return
		}
		msgs, _ := req["messages"].([]any)
		if len(msgs) != 1 {
			http.Error(w, "bad messages", http.StatusBadRequest)
			return
		}

		w.Header().Set("content-type", "application/json")
		_ = json.NewEncoder(w).Encode(claudeMessageResponse("the answer", 3, 7))
	}))
	t.Cleanup(srv.Close)

	p := NewClaudeProvider("k", srv.URL+"/v1", "claude-test")
	if p.Name() != "claude" {
		t.Fatalf("Name: got %q", p.Name())
	}

	resp, err := p.Complete(context.Background(), &Request{
		Messages: []Message{{Role: "user", Content: "hi"}},
		System:   "be brief",
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if resp.Text != "the answer" {
		t.Fatalf("Text: got %q", resp.Text)
	}
	if resp.Usage.InputTokens != 3 || resp.Usage.OutputTokens != 7 {
		t.Fatalf("Usage: got %+v", resp.Usage)
	}
	if resp.StopReason != "end_turn" {
		t.Fatalf("StopReason: got %q", resp.StopReason)
	}
}

func TestClaudeProvider_NilGuards(t *testing.T) {
	t.Parallel()

	var nilP *ClaudeProvider
	if _, err := nilP.Complete(context.Background(), &Request{}); err == nil {
		t.Fatalf("Complete on nil provider: expected error")
	}

	p := NewClaudeProvider("k", "", "")
	if _, err := p.Complete(context.Background(), nil); err == nil {
		t.Fatalf("Complete(nil request): expected error")
	}
	if _, err := p.Complete(nil, &Request{}); err == nil { //nolint:staticcheck
		t.Fatalf("Complete(nil context): expected error")
	}
}

func TestSDKBaseURL(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"http://x.test/v1", "http://x.test"},
		{"http://x.test/v1/", "http://x.test"},
		{"http://x.test", "http://x.test"},
	}
	for _, tc := range cases {
		if got := sdkBaseURL(tc.in); got != tc.want {
			t.Fatalf("sdkBaseURL(%q): got %q want %q", tc.in, got, tc.want)
		}
	}
}
