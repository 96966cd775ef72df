// Package console provides a client for the guardrails REST API and the
// rule board state used by operator tooling.
package console

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"guardrails/internal/models"
	"guardrails/internal/pagination"
	"guardrails/internal/services"
)

// APIError is a failure envelope returned by the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

// RuleFilter narrows a rule listing. Zero values apply no filter.
type RuleFilter struct {
	RuleType string
	Action   string
	Enabled  *bool
}

// RuleDraft is the body of a rule creation request.
type RuleDraft struct {
	RuleName         string          `json:"rule_name"`
	Description      string          `json:"description,omitempty"`
	RuleType         string          `json:"rule_type"`
	TriggerCondition json.RawMessage `json:"trigger_condition"`
	Action           string          `json:"action"`
	TargetRoles      []string        `json:"target_roles,omitempty"`
	Config           json.RawMessage `json:"config,omitempty"`
	Priority         *int            `json:"priority,omitempty"`
	Enabled          *bool           `json:"enabled,omitempty"`
}

// AuditFilter narrows an audit log listing. Zero values apply no filter.
type AuditFilter struct {
	UserID   uint
	Tool     string
	Blocked  *bool
	DateFrom time.Time
	DateTo   time.Time
	Limit    int
	Offset   int
}

// AuditPage is one page of audit entries.
type AuditPage struct {
	Entries    []models.AuditLogView
	Pagination pagination.Meta
}

// envelope is the response wrapper shared by every /api route.
type envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Error      string          `json:"error"`
	Message    string          `json:"message"`
	Pagination pagination.Meta `json:"pagination"`
}

// Client communicates with the guardrails API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new API client. A nil httpClient uses http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// ListRules fetches rules in priority order.
func (c *Client) ListRules(ctx context.Context, f RuleFilter) ([]models.GuardrailRule, error) {
	q := url.Values{}
	if f.RuleType != "" {
		q.Set("rule_type", f.RuleType)
	}
	if f.Action != "" {
		q.Set("action", f.Action)
	}
	if f.Enabled != nil {
		q.Set("enabled", strconv.FormatBool(*f.Enabled))
	}

	var rules []models.GuardrailRule
	if _, err := c.do(ctx, http.MethodGet, "/api/guardrails", q, nil, &rules); err != nil {
		return nil, fmt.Errorf("listing rules: %w", err)
	}
	return rules, nil
}

// GetRule fetches one rule.
func (c *Client) GetRule(ctx context.Context, id uint) (*models.GuardrailRule, error) {
	var rule models.GuardrailRule
	if _, err := c.do(ctx, http.MethodGet, rulePath(id), nil, nil, &rule); err != nil {
		return nil, fmt.Errorf("fetching rule %d: %w", id, err)
	}
	return &rule, nil
}

// CreateRule creates a rule.
func (c *Client) CreateRule(ctx context.Context, draft RuleDraft) (*models.GuardrailRule, error) {
	var rule models.GuardrailRule
	if _, err := c.do(ctx, http.MethodPost, "/api/guardrails", nil, draft, &rule); err != nil {
		return nil, fmt.Errorf("creating rule: %w", err)
	}
	return &rule, nil
}

// UpdateRule sends a partial update. Only keys present in patch change.
func (c *Client) UpdateRule(ctx context.Context, id uint, patch map[string]any) (*models.GuardrailRule, error) {
	var rule models.GuardrailRule
	if _, err := c.do(ctx, http.MethodPut, rulePath(id), nil, patch, &rule); err != nil {
		return nil, fmt.Errorf("updating rule %d: %w", id, err)
	}
	return &rule, nil
}

// SetEnabled updates only the enabled flag of a rule.
func (c *Client) SetEnabled(ctx context.Context, id uint, enabled bool) (*models.GuardrailRule, error) {
	return c.UpdateRule(ctx, id, map[string]any{"enabled": enabled})
}

// DeleteRule deletes a rule and returns it as it was.
func (c *Client) DeleteRule(ctx context.Context, id uint) (*models.GuardrailRule, error) {
	var rule models.GuardrailRule
	if _, err := c.do(ctx, http.MethodDelete, rulePath(id), nil, nil, &rule); err != nil {
		return nil, fmt.Errorf("deleting rule %d: %w", id, err)
	}
	return &rule, nil
}

// Query sends a chat query through the API and returns the engine's verdict.
func (c *Client) Query(ctx context.Context, userID uint, query string, tools []string) (json.RawMessage, error) {
	body := struct {
		UserID uint     `json:"user_id"`
		Query  string   `json:"query"`
		Tools  []string `json:"tools,omitempty"`
	}{UserID: userID, Query: query, Tools: tools}

	var data json.RawMessage
	if _, err := c.do(ctx, http.MethodPost, "/api/chat/query", nil, body, &data); err != nil {
		return nil, fmt.Errorf("querying agent: %w", err)
	}
	return data, nil
}

// ListAuditLogs fetches one page of audit entries.
func (c *Client) ListAuditLogs(ctx context.Context, f AuditFilter) (*AuditPage, error) {
	q := url.Values{}
	if f.UserID != 0 {
		q.Set("user_id", strconv.FormatUint(uint64(f.UserID), 10))
	}
	if f.Tool != "" {
		q.Set("tool", f.Tool)
	}
	if f.Blocked != nil {
		q.Set("blocked", strconv.FormatBool(*f.Blocked))
	}
	if !f.DateFrom.IsZero() {
		q.Set("date_from", f.DateFrom.Format(time.RFC3339))
	}
	if !f.DateTo.IsZero() {
		q.Set("date_to", f.DateTo.Format(time.RFC3339))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Offset > 0 {
		q.Set("offset", strconv.Itoa(f.Offset))
	}

	page := &AuditPage{}
	env, err := c.do(ctx, http.MethodGet, "/api/audit-logs", q, nil, &page.Entries)
	if err != nil {
		return nil, fmt.Errorf("listing audit logs: %w", err)
	}
	page.Pagination = env.Pagination
	return page, nil
}

// ListUsers fetches the user directory.
func (c *Client) ListUsers(ctx context.Context) ([]models.UserSummary, error) {
	var users []models.UserSummary
	if _, err := c.do(ctx, http.MethodGet, "/api/users", nil, nil, &users); err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

// Dashboard fetches today's statistics.
func (c *Client) Dashboard(ctx context.Context) (*services.DashboardStats, error) {
	var stats services.DashboardStats
	if _, err := c.do(ctx, http.MethodGet, "/api/stats/dashboard", nil, nil, &stats); err != nil {
		return nil, fmt.Errorf("fetching dashboard: %w", err)
	}
	return &stats, nil
}

func rulePath(id uint) string {
	return "/api/guardrails/" + strconv.FormatUint(uint64(id), 10)
}

// do sends one request and decodes the envelope's data into out. A
// success:false envelope or a non-2xx status yields *APIError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) (*envelope, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if !env.Success || resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := env.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("decoding data: %w", err)
		}
	}
	return &env, nil
}
