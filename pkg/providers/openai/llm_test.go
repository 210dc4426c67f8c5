package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/harunnryd/parley/pkg/dialogue"
	"github.com/harunnryd/parley/pkg/errorsx"
)

func historyFixture() []dialogue.Turn {
	return []dialogue.Turn{
		dialogue.NewTurn(dialogue.RoleSystem, "be brief"),
		dialogue.NewTurn(dialogue.RoleAssistant, "hello"),
		dialogue.NewTurn(dialogue.RoleUser, "I think the doctor ..."),
	}
}

func TestCompleteSendsHistoryInOrder(t *testing.T) {
	var got struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "cmpl-1",
			"object": "chat.completion",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "a hard choice indeed"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
		}`))
	}))
	defer server.Close()

	m := New(Config{APIKey: "test-key", Model: "gpt-4o-mini", BaseURL: server.URL}, nil)
	reply, err := m.Complete(context.Background(), historyFixture())
	if err != nil {
		t.Fatalf("complete error: %v", err)
	}
	if reply != "a hard choice indeed" {
		t.Fatalf("unexpected reply: %q", reply)
	}
	if got.Model != "gpt-4o-mini" {
		t.Fatalf("unexpected model: %q", got.Model)
	}
	roles := []string{"system", "assistant", "user"}
	if len(got.Messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(got.Messages))
	}
	for i, want := range roles {
		if got.Messages[i].Role != want {
			t.Fatalf("message %d: expected role %s, got %s", i, want, got.Messages[i].Role)
		}
	}
	if got.Messages[2].Content != "I think the doctor ..." {
		t.Fatalf("committed user turn not forwarded: %q", got.Messages[2].Content)
	}
}

func TestCompleteSurfacesEndpointFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "overloaded"}}`, http.StatusServiceUnavailable)
	}))
	defer server.Close()

	m := New(Config{APIKey: "test-key", BaseURL: server.URL}, nil)
	_, err := m.Complete(context.Background(), historyFixture())
	if err == nil {
		t.Fatalf("expected endpoint failure")
	}
	if !errorsx.HasReason(err, errorsx.ReasonLLMComplete) {
		t.Fatalf("expected llm_complete reason, got %s", errorsx.Reason(err))
	}
}

func TestCompleteRejectsEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "cmpl-2", "object": "chat.completion", "choices": [], "usage": {}}`))
	}))
	defer server.Close()

	m := New(Config{APIKey: "test-key", BaseURL: server.URL}, nil)
	if _, err := m.Complete(context.Background(), historyFixture()); err == nil {
		t.Fatalf("expected error on empty choices")
	}
}
