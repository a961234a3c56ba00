package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newGroqTestServer(t *testing.T, handler http.HandlerFunc) *GroqService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewGroqService("gsk_test", srv.URL, "mixtral-8x7b-32768", srv.Client())
}

func TestGroqComplete_Success(t *testing.T) {
	var got struct {
		Model       string  `json:"model"`
		Temperature float32 `json:"temperature"`
		MaxTokens   int     `json:"max_tokens"`
		Messages    []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	svc := newGroqTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer gsk_test" {
			t.Errorf("unexpected auth header %q", auth)
		}
		json.NewDecoder(r.Body).Decode(&got)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"You're doing okay."},"finish_reason":"stop"}]}`))
	})

	text, err := svc.Complete(context.Background(), CompletionRequest{
		System:      "be kind",
		Prompt:      "hello",
		Temperature: 0.7,
		MaxTokens:   200,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "You're doing okay." {
		t.Errorf("unexpected text %q", text)
	}

	if got.Model != "mixtral-8x7b-32768" || got.MaxTokens != 200 {
		t.Errorf("unexpected request %+v", got)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" || got.Messages[1].Content != "hello" {
		t.Errorf("unexpected messages %+v", got.Messages)
	}
}

func TestGroqComplete_NoChoices(t *testing.T) {
	svc := newGroqTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"1","object":"chat.completion","choices":[]}`))
	})

	_, err := svc.Complete(context.Background(), CompletionRequest{Prompt: "hi"})
	if !errors.Is(err, ErrEmptyCompletion) {
		t.Fatalf("expected ErrEmptyCompletion, got %v", err)
	}
}

func TestGroqComplete_HTTPError(t *testing.T) {
	svc := newGroqTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"invalid api key","type":"invalid_request_error"}}`))
	})

	if _, err := svc.Complete(context.Background(), CompletionRequest{Prompt: "hi"}); err == nil {
		t.Fatal("expected an error for a 401 response")
	}
}

func TestGroqFailureFallsBackThroughReplyService(t *testing.T) {
	svc := newGroqTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	reply, err := NewReplyService(svc, 0).WithPicker(func(int) int { return 3 }).Reply(context.Background(), "hi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != fallbackReplies[3] {
		t.Errorf("expected fallback reply, got %q", reply)
	}
}
