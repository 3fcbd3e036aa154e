package ai

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) *GroqProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p := NewGroqProvider("test-key", "test-model")
	p.baseURL = srv.URL
	return p
}

func TestGroqGenerate(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %s, want /chat/completions", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("auth header = %q", auth)
		}

		var payload struct {
			Model    string    `json:"model"`
			Messages []Message `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if payload.Model != "test-model" {
			t.Errorf("model = %q, want test-model", payload.Model)
		}
		if len(payload.Messages) != 1 || payload.Messages[0].Content != "hello" {
			t.Errorf("messages = %v", payload.Messages)
		}

		w.Write([]byte(`{"choices":[{"message":{"content":"  hi there  "}}]}`))
	})

	reply, err := p.Generate([]Message{{Role: "user", Content: "hello"}})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if reply != "hi there" {
		t.Errorf("reply = %q, want %q", reply, "hi there")
	}
}

func TestGroqGenerateHTTPError(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limit"}`, http.StatusTooManyRequests)
	})

	_, err := p.Generate([]Message{{Role: "user", Content: "hello"}})
	if err == nil {
		t.Fatal("want error on HTTP 429")
	}
	if !strings.Contains(err.Error(), "groq http 429") {
		t.Errorf("error = %v, want it to name the status", err)
	}
}

func TestGroqGenerateEmptyChoices(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	})

	if _, err := p.Generate([]Message{{Role: "user", Content: "hello"}}); err == nil {
		t.Fatal("want error on empty choices")
	}
}

func TestGroqGenerateRejectsGarbage(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"message":{"content":"<html><body>502 Bad Gateway</body></html>"}}]}`))
	})

	if _, err := p.Generate([]Message{{Role: "user", Content: "hello"}}); err == nil {
		t.Fatal("want error on garbage reply")
	}
}

func TestIsGarbageResponse(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"a perfectly ordinary answer", false},
		{"<HTML><body>oops</body></HTML>", true},
		{"This request is Not Allowed by policy.", true},
		{"ok", true},
		{"   hi \n", true},
		{"five!", false},
	}
	for _, tt := range tests {
		if got := isGarbageResponse(tt.in); got != tt.want {
			t.Errorf("isGarbageResponse(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCleanReply(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain answer", "plain answer"},
		{`"quoted answer"`, "quoted answer"},
		{"  padded  ", "padded"},
		{"<think>internal musing</think>actual reply", "actual reply"},
		{`"`, `"`},
	}
	for _, tt := range tests {
		if got := cleanReply(tt.in); got != tt.want {
			t.Errorf("cleanReply(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
