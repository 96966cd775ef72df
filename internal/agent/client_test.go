package agent

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestQuery_Success(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/api/agent/query" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response":"ok","blocked":false,"risk_score":0.1,"audit_id":7}`))
	}))
	defer server.Close()

	c := NewClient(server.URL+"/", server.Client())
	data, err := c.Query(context.Background(), QueryRequest{UserID: 3, Query: "show salaries"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != `{"response":"ok","blocked":false,"risk_score":0.1,"audit_id":7}` {
		t.Errorf("body should be relayed verbatim, got %s", data)
	}

	if got["user_id"] != float64(3) || got["query"] != "show salaries" {
		t.Errorf("unexpected payload %v", got)
	}
	tools, ok := got["tools"].([]any)
	if !ok || len(tools) != 1 || tools[0] != DefaultTool {
		t.Errorf("expected default tool, got %v", got["tools"])
	}
	if ctx, ok := got["context"].(map[string]any); !ok || len(ctx) != 0 {
		t.Errorf("expected empty context object, got %v", got["context"])
	}
	if len(got) != 4 {
		t.Errorf("expected exactly four fields, got %v", got)
	}
}

func TestQuery_ForwardsToolsAndContext(t *testing.T) {
	var got QueryRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, server.Client())
	_, err := c.Query(context.Background(), QueryRequest{
		UserID:  1,
		Query:   "q",
		Tools:   []string{"file_search", "database_query"},
		Context: json.RawMessage(`{"session":"abc"}`),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Tools) != 2 || got.Tools[0] != "file_search" {
		t.Errorf("unexpected tools %v", got.Tools)
	}
	if string(got.Context) != `{"session":"abc"}` {
		t.Errorf("unexpected context %s", got.Context)
	}
}

func TestQuery_UpstreamError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"rate limited", http.StatusTooManyRequests, `{"error":"rate limited"}`, "rate limited"},
		{"no error field", http.StatusBadRequest, `{"detail":"bad"}`, ""},
		{"non json body", http.StatusInternalServerError, `oops`, ""},
		{"non string error", http.StatusForbidden, `{"error":{"code":1}}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			c := NewClient(server.URL, server.Client())
			_, err := c.Query(context.Background(), QueryRequest{UserID: 1, Query: "q"})

			var upErr *UpstreamError
			if !errors.As(err, &upErr) {
				t.Fatalf("expected *UpstreamError, got %T: %v", err, err)
			}
			if upErr.StatusCode != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, upErr.StatusCode)
			}
			if upErr.Message != tt.wantMsg {
				t.Errorf("expected message %q, got %q", tt.wantMsg, upErr.Message)
			}
		})
	}
}

func TestQuery_TransportError(t *testing.T) {
	t.Run("connection refused", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		url := server.URL
		server.Close()

		c := NewClient(url, &http.Client{Timeout: time.Second})
		_, err := c.Query(context.Background(), QueryRequest{UserID: 1, Query: "q"})

		var trErr *TransportError
		if !errors.As(err, &trErr) {
			t.Fatalf("expected *TransportError, got %T: %v", err, err)
		}
	})

	t.Run("timeout", func(t *testing.T) {
		release := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			<-release
		}))
		defer server.Close()
		defer close(release)

		c := NewClient(server.URL, &http.Client{Timeout: 50 * time.Millisecond})
		_, err := c.Query(context.Background(), QueryRequest{UserID: 1, Query: "q"})

		var trErr *TransportError
		if !errors.As(err, &trErr) {
			t.Fatalf("expected *TransportError, got %T: %v", err, err)
		}
	})

	t.Run("invalid json on success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}))
		defer server.Close()

		c := NewClient(server.URL, server.Client())
		_, err := c.Query(context.Background(), QueryRequest{UserID: 1, Query: "q"})

		var trErr *TransportError
		if !errors.As(err, &trErr) {
			t.Fatalf("expected *TransportError, got %T: %v", err, err)
		}
	})
}

func TestHealth(t *testing.T) {
	var status atomic.Int32
	status.Store(http.StatusOK)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.WriteHeader(int(status.Load()))
	}))
	defer server.Close()

	c := NewClient(server.URL, server.Client())
	if err := c.Health(context.Background()); err != nil {
		t.Fatalf("expected healthy, got %v", err)
	}

	status.Store(http.StatusServiceUnavailable)
	var upErr *UpstreamError
	if err := c.Health(context.Background()); !errors.As(err, &upErr) || upErr.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 upstream error, got %v", err)
	}
}

func TestNewHTTPClient(t *testing.T) {
	if c := NewHTTPClient(0); c.Timeout != DefaultTimeout {
		t.Errorf("expected default timeout, got %v", c.Timeout)
	}
	if c := NewHTTPClient(5 * time.Second); c.Timeout != 5*time.Second {
		t.Errorf("expected 5s, got %v", c.Timeout)
	}
}
