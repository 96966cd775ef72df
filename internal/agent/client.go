// Package agent provides an HTTP client for the external agent engine that
// evaluates guardrails and answers user queries.
package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	// DefaultTool is used when a query names no tools.
	DefaultTool = "database_query"
	// DefaultTimeout bounds a single engine call.
	DefaultTimeout = 30 * time.Second

	queryPath  = "/api/agent/query"
	healthPath = "/health"

	maxErrorBody = 64 << 10
)

// QueryRequest is the payload forwarded to the engine.
type QueryRequest struct {
	UserID  uint            `json:"user_id"`
	Query   string          `json:"query"`
	Tools   []string        `json:"tools"`
	Context json.RawMessage `json:"context"`
}

// UpstreamError is returned when the engine answered with a non-2xx status.
// Message is the engine's own error text, empty when the body carried none.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("agent engine returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("agent engine returned status %d: %s", e.StatusCode, e.Message)
}

// TransportError is returned when no usable response was received.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return "agent engine unreachable: " + e.Err.Error() }

func (e *TransportError) Unwrap() error { return e.Err }

// Client communicates with the agent engine.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new agent engine client.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// NewHTTPClient returns an http.Client with the given timeout whose transport
// records a client span per call.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

// Query forwards req once and returns the engine's response body unchanged.
// Nil Tools and empty Context are replaced by their defaults.
func (c *Client) Query(ctx context.Context, req QueryRequest) (json.RawMessage, error) {
	if len(req.Tools) == 0 {
		req.Tools = []string{DefaultTool}
	}
	if len(req.Context) == 0 || string(req.Context) == "null" {
		req.Context = json.RawMessage("{}")
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshaling query: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+queryPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Message: errorMessage(resp.Body)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("reading response: %w", err)}
	}
	if !json.Valid(data) {
		return nil, &TransportError{Err: errors.New("response body is not valid JSON")}
	}
	return json.RawMessage(data), nil
}

// Health checks that the engine is reachable and reports itself healthy.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+healthPath, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))

	if resp.StatusCode != http.StatusOK {
		return &UpstreamError{StatusCode: resp.StatusCode}
	}
	return nil
}

// errorMessage extracts the "error" field of an engine error body.
func errorMessage(r io.Reader) string {
	var body struct {
		Error any `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(r, maxErrorBody)).Decode(&body); err != nil {
		return ""
	}
	if s, ok := body.Error.(string); ok {
		return s
	}
	return ""
}
