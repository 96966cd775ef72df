package services

import (
	"context"
	"encoding/json"
	"time"

	"guardrails/internal/models"
	"guardrails/internal/pagination"
)

// RuleFilter holds optional filter parameters for listing guardrail rules.
// A nil field applies no filter.
type RuleFilter struct {
	RuleType *string
	Enabled  *bool
	Action   *string
}

// CreateRuleInput carries the fields accepted when creating a rule. Pointer
// fields distinguish "not supplied" from zero values.
type CreateRuleInput struct {
	RuleName         *string
	Description      *string
	RuleType         *string
	TriggerCondition json.RawMessage
	Action           *string
	TargetRoles      []string
	Config           json.RawMessage
	Priority         *int
	Enabled          *bool
}

// UpdateRuleInput carries a partial update. Only non-nil fields are written.
type UpdateRuleInput struct {
	RuleName         *string
	Description      *string
	RuleType         *string
	TriggerCondition json.RawMessage
	Action           *string
	TargetRoles      *[]string
	Config           json.RawMessage
	Priority         *int
	Enabled          *bool
}

// GuardrailServicer defines the contract for guardrail rule storage.
type GuardrailServicer interface {
	ListRules(ctx context.Context, filter RuleFilter) ([]models.GuardrailRule, error)
	GetRule(ctx context.Context, id uint) (*models.GuardrailRule, error)
	CreateRule(ctx context.Context, input CreateRuleInput) (*models.GuardrailRule, error)
	UpdateRule(ctx context.Context, id uint, input UpdateRuleInput) (*models.GuardrailRule, error)
	DeleteRule(ctx context.Context, id uint) (*models.GuardrailRule, error)
}

// AuditLogFilter holds optional filter parameters for listing audit logs.
type AuditLogFilter struct {
	UserID   *uint
	Tool     *string
	Blocked  *bool
	DateFrom *time.Time
	DateTo   *time.Time
}

// AuditServicer defines the contract for reading the audit log.
type AuditServicer interface {
	ListAuditLogs(ctx context.Context, filter AuditLogFilter, page pagination.PageRequest) (*pagination.PageResponse[models.AuditLogView], error)
	GetAuditLog(ctx context.Context, id uint) (*models.AuditLogView, error)
}

// UserServicer defines the contract for the read-only user directory.
type UserServicer interface {
	ListUsers(ctx context.Context) ([]models.UserSummary, error)
}

// HookCount is how often one hook fired.
type HookCount struct {
	Hook  string `json:"hook"`
	Count int64  `json:"count"`
}

// DashboardStats summarizes today's agent activity.
type DashboardStats struct {
	TotalQueries   int64       `json:"total_queries"`
	BlockedQueries int64       `json:"blocked_queries"`
	TopHooks       []HookCount `json:"top_hooks"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// StatsServicer defines the contract for dashboard statistics.
type StatsServicer interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)
}

// ChatRequest is a user query to forward to the agent engine.
type ChatRequest struct {
	UserID  *uint
	Query   *string
	Tools   []string
	Context json.RawMessage
}

// ChatServicer defines the contract for the agent proxy.
type ChatServicer interface {
	Query(ctx context.Context, req ChatRequest) (json.RawMessage, error)
}
