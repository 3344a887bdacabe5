package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestNormalizeBaseURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"bare host", "localhost:1234", "http://localhost:1234/v1"},
		{"with scheme", "https://api.example.com", "https://api.example.com/v1"},
		{"already v1", "https://api.example.com/v1", "https://api.example.com/v1"},
		{"trailing slash", "https://api.example.com/", "https://api.example.com/v1"},
		{"surrounding whitespace", "  http://host  ", "http://host/v1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeBaseURL(tt.in); got != tt.want {
				t.Errorf("NormalizeBaseURL(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// completionHandler returns a handler asserting the expected wire shape and
// answering with the given content.
func completionHandler(t *testing.T, content string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" || req.Messages[1].Role != "user" {
			t.Errorf("expected [system, user] messages, got %+v", req.Messages)
		}
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": content}, "finish_reason": "stop"},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func TestHTTPClient_Complete(t *testing.T) {
	t.Parallel()

	t.Run("success returns content", func(t *testing.T) {
		srv := httptest.NewServer(completionHandler(t, "temperature is mean kinetic energy"))
		defer srv.Close()

		c := NewHTTPClient(Config{BaseURL: srv.URL, Model: "test-model"})
		got, err := c.Complete(context.Background(), "be a physicist", "What is temperature?")
		if err != nil {
			t.Fatalf("Complete() error = %v", err)
		}
		if got != "temperature is mean kinetic energy" {
			t.Errorf("Complete() = %q", got)
		}
	})

	t.Run("empty content is success", func(t *testing.T) {
		srv := httptest.NewServer(completionHandler(t, ""))
		defer srv.Close()

		c := NewHTTPClient(Config{BaseURL: srv.URL})
		got, err := c.Complete(context.Background(), "sys", "query")
		if err != nil {
			t.Fatalf("Complete() error = %v", err)
		}
		if got != "" {
			t.Errorf("Complete() = %q, want empty", got)
		}
	})

	t.Run("bearer header sent when api key set", func(t *testing.T) {
		var gotAuth atomic.Value
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth.Store(r.Header.Get("Authorization"))
			completionHandler(t, "ok")(w, r)
		}))
		defer srv.Close()

		c := NewHTTPClient(Config{BaseURL: srv.URL, APIKey: "sk-test"})
		if _, err := c.Complete(context.Background(), "sys", "q"); err != nil {
			t.Fatalf("Complete() error = %v", err)
		}
		if gotAuth.Load() != "Bearer sk-test" {
			t.Errorf("Authorization = %v, want Bearer sk-test", gotAuth.Load())
		}
	})

	t.Run("http error status fails", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "overloaded", http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		c := NewHTTPClient(Config{BaseURL: srv.URL})
		_, err := c.Complete(context.Background(), "sys", "q")
		if err == nil {
			t.Fatal("expected error for 503")
		}
		if !strings.Contains(err.Error(), "503") {
			t.Errorf("error should mention status, got %v", err)
		}
	})

	t.Run("missing choices fails", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"choices":[]}`))
		}))
		defer srv.Close()

		c := NewHTTPClient(Config{BaseURL: srv.URL})
		if _, err := c.Complete(context.Background(), "sys", "q"); err == nil {
			t.Fatal("expected error for empty choices")
		}
	})

	t.Run("context cancellation aborts request", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(5 * time.Second):
			}
		}))
		defer srv.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		c := NewHTTPClient(Config{BaseURL: srv.URL})
		if _, err := c.Complete(ctx, "sys", "q"); err == nil {
			t.Fatal("expected error after context deadline")
		}
	})

	t.Run("unconfigured base URL fails fast", func(t *testing.T) {
		c := NewHTTPClient(Config{})
		if _, err := c.Complete(context.Background(), "sys", "q"); err == nil {
			t.Fatal("expected error for missing base URL")
		}
	})
}
