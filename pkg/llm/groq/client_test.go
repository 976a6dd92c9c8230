package groq

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Ujjayini-101/GitRefiny/pkg/errors"
	"github.com/Ujjayini-101/GitRefiny/pkg/llm"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient("test-key")
	c.baseURL = srv.URL
	return c
}

func TestCompleteSuccess(t *testing.T) {
	var got chatRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("Authorization = %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"# Generated\n"}}]}`))
	})

	text, err := c.Complete(context.Background(), llm.Request{
		System:      "You write documentation.",
		Prompt:      "Write a README.",
		MaxTokens:   8000,
		Temperature: 0.7,
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if text != "# Generated" {
		t.Errorf("text = %q", text)
	}

	if got.Model != Model {
		t.Errorf("model = %q, want %q", got.Model, Model)
	}
	if got.MaxTokens != 8000 || got.Temperature != 0.7 {
		t.Errorf("max_tokens/temperature = %d/%v", got.MaxTokens, got.Temperature)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" || got.Messages[1].Role != "user" {
		t.Errorf("messages = %+v", got.Messages)
	}
}

func TestCompleteNoSystemMessage(t *testing.T) {
	var got chatRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	})

	if _, err := c.Complete(context.Background(), llm.Request{Prompt: "hi"}); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if len(got.Messages) != 1 || got.Messages[0].Role != "user" {
		t.Errorf("messages = %+v", got.Messages)
	}
}

func TestCompleteErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   errors.Code
	}{
		{"rate limited", http.StatusTooManyRequests, errors.ErrCodeRateLimited},
		{"invalid key", http.StatusUnauthorized, errors.ErrCodeInvalidToken},
		{"forbidden", http.StatusForbidden, errors.ErrCodeAuthRequired},
		{"server error", http.StatusInternalServerError, errors.ErrCodeGeneration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})
			_, err := c.Complete(context.Background(), llm.Request{Prompt: "hi"})
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want code %s", err, tt.want)
			}
		})
	}
}

func TestCompleteMalformedResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "<html>oops</html>"},
		{"no choices", `{"choices":[]}`},
		{"empty content", `{"choices":[{"message":{"content":"  "}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			})
			_, err := c.Complete(context.Background(), llm.Request{Prompt: "hi"})
			if !errors.Is(err, errors.ErrCodeGeneration) {
				t.Errorf("err = %v, want GENERATION_ERROR", err)
			}
		})
	}
}

func TestCompleteMissingKey(t *testing.T) {
	c := NewClient("")
	_, err := c.Complete(context.Background(), llm.Request{Prompt: "hi"})
	if !errors.Is(err, errors.ErrCodeInvalidToken) {
		t.Errorf("err = %v, want INVALID_TOKEN", err)
	}
}

func TestName(t *testing.T) {
	if got := NewClient("k").Name(); got != "llama3" {
		t.Errorf("Name() = %q", got)
	}
}
