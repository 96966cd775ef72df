package handlers

import (
	"guardrails/internal/models"
	"guardrails/internal/pagination"
	"guardrails/internal/services"
)

// Response shapes below exist for the API docs. Handlers write gin.H.

// ErrorResponse is the failure envelope.
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error" example:"Guardrail not found"`
}

// MessageResponse carries a record and a confirmation message.
type MessageResponse struct {
	Success bool                 `json:"success" example:"true"`
	Data    models.GuardrailRule `json:"data"`
	Message string               `json:"message" example:"Guardrail created successfully"`
}

// GuardrailResponse wraps one rule.
type GuardrailResponse struct {
	Success bool                 `json:"success" example:"true"`
	Data    models.GuardrailRule `json:"data"`
}

// GuardrailListResponse wraps a rule listing.
type GuardrailListResponse struct {
	Success bool                   `json:"success" example:"true"`
	Data    []models.GuardrailRule `json:"data"`
	Count   int                    `json:"count" example:"3"`
}

// AuditLogResponse wraps one audit entry.
type AuditLogResponse struct {
	Success bool                `json:"success" example:"true"`
	Data    models.AuditLogView `json:"data"`
}

// AuditLogListResponse wraps a page of audit entries.
type AuditLogListResponse struct {
	Success    bool                  `json:"success" example:"true"`
	Data       []models.AuditLogView `json:"data"`
	Pagination pagination.Meta       `json:"pagination"`
}

// UserListResponse wraps the user directory.
type UserListResponse struct {
	Success bool                 `json:"success" example:"true"`
	Data    []models.UserSummary `json:"data"`
}

// DashboardResponse wraps dashboard statistics.
type DashboardResponse struct {
	Success bool                    `json:"success" example:"true"`
	Data    services.DashboardStats `json:"data"`
}

// ChatResponse wraps the agent engine's verdict, relayed unchanged.
type ChatResponse struct {
	Success bool           `json:"success" example:"true"`
	Data    map[string]any `json:"data"`
}

// HealthResponse reports liveness.
type HealthResponse struct {
	Status  string `json:"status" example:"healthy"`
	Service string `json:"service" example:"api-server"`
	Error   string `json:"error,omitempty"`
}
