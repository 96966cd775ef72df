package models

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog is one query event recorded by the agent engine. This service
// only reads it.
type AuditLog struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	UserID          *uint          `gorm:"index" json:"user_id"`
	Username        string         `json:"username"`
	Query           string         `gorm:"not null" json:"query"`
	ToolInvoked     string         `json:"tool_invoked"`
	HooksTriggered  StringArray    `json:"hooks_triggered"`
	ActionTaken     string         `json:"action_taken"`
	DataMasked      bool           `json:"data_masked"`
	Blocked         bool           `gorm:"index" json:"blocked"`
	RiskScore       float64        `json:"risk_score"`
	ResponseSummary string         `json:"response_summary"`
	Metadata        datatypes.JSON `json:"metadata,omitempty"`
	Timestamp       time.Time      `gorm:"index" json:"timestamp"`
}

// TableName keeps the engine's singular table name.
func (AuditLog) TableName() string {
	return "audit_log"
}

// AuditLogView is an audit entry joined with the user who issued the query.
// Username is taken from the users table and falls back to the copy stored
// on the entry when the user no longer exists.
type AuditLogView struct {
	AuditLog
	UserRole   *string `json:"user_role"`
	Department *string `json:"department,omitempty"`
}
