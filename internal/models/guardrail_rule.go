package models

import (
	"time"

	"gorm.io/datatypes"
)

// DefaultRulePriority is applied when a rule is created without a priority.
const DefaultRulePriority = 100

// GuardrailRule is a stored policy the external agent engine evaluates.
// Lower Priority values are evaluated first.
type GuardrailRule struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	RuleName         string         `gorm:"uniqueIndex;not null" json:"rule_name"`
	Description      *string        `json:"description"`
	RuleType         RuleType       `gorm:"not null" json:"rule_type"`
	TriggerCondition datatypes.JSON `gorm:"not null" json:"trigger_condition"`
	Action           RuleAction     `gorm:"not null" json:"action"`
	TargetRoles      StringArray    `json:"target_roles"`
	Config           datatypes.JSON `json:"config"`
	Priority         int            `gorm:"not null;index" json:"priority"`
	Enabled          bool           `gorm:"not null" json:"enabled"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}
