package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"guardrails/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestEmployee creates an employee in the given department.
func CreateTestEmployee(t *testing.T, db *gorm.DB, name, department string) *models.Employee {
	t.Helper()

	emp := &models.Employee{
		Name:       name,
		Email:      fmt.Sprintf("employee%d@test.com", nextID()),
		Department: department,
		Role:       "employee",
		Salary:     85000,
	}
	if err := db.Create(emp).Error; err != nil {
		t.Fatalf("failed to create test employee: %v", err)
	}
	return emp
}

// CreateTestUser creates a user with a unique username and the given role.
func CreateTestUser(t *testing.T, db *gorm.DB, role string) *models.User {
	t.Helper()
	return CreateTestUserWithName(t, db, fmt.Sprintf("user%d", nextID()), role, nil)
}

// CreateTestUserWithName creates a user with the given username, role and
// optional employee link.
func CreateTestUserWithName(t *testing.T, db *gorm.DB, username, role string, employeeID *uint) *models.User {
	t.Helper()

	dept := "Engineering"
	user := &models.User{
		Username:   username,
		Role:       role,
		Department: &dept,
		EmployeeID: employeeID,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// RuleOption customizes a rule fixture before insert.
type RuleOption func(*models.GuardrailRule)

// WithPriority sets the rule priority.
func WithPriority(p int) RuleOption {
	return func(r *models.GuardrailRule) { r.Priority = p }
}

// WithType sets the rule type.
func WithType(rt models.RuleType) RuleOption {
	return func(r *models.GuardrailRule) { r.RuleType = rt }
}

// WithAction sets the rule action.
func WithAction(a models.RuleAction) RuleOption {
	return func(r *models.GuardrailRule) { r.Action = a }
}

// WithEnabled sets whether the rule is enabled.
func WithEnabled(enabled bool) RuleOption {
	return func(r *models.GuardrailRule) { r.Enabled = enabled }
}

// WithName sets the rule name.
func WithName(name string) RuleOption {
	return func(r *models.GuardrailRule) { r.RuleName = name }
}

// CreateTestRule creates an enabled pre_hook block rule with a unique name.
func CreateTestRule(t *testing.T, db *gorm.DB, opts ...RuleOption) *models.GuardrailRule {
	t.Helper()

	desc := "test rule"
	rule := &models.GuardrailRule{
		RuleName:         fmt.Sprintf("test_rule_%d", nextID()),
		Description:      &desc,
		RuleType:         models.RuleTypePreHook,
		TriggerCondition: datatypes.JSON(`{"keywords":["salary"]}`),
		Action:           models.RuleActionBlock,
		TargetRoles:      models.StringArray{"employee", "intern"},
		Config:           datatypes.JSON(`{"message":"blocked"}`),
		Priority:         models.DefaultRulePriority,
		Enabled:          true,
	}
	for _, opt := range opts {
		opt(rule)
	}
	if err := db.Create(rule).Error; err != nil {
		t.Fatalf("failed to create test rule: %v", err)
	}
	return rule
}

// AuditOption customizes an audit log fixture before insert.
type AuditOption func(*models.AuditLog)

// WithBlocked marks the entry as blocked.
func WithBlocked() AuditOption {
	return func(a *models.AuditLog) { a.Blocked = true }
}

// WithTool sets the invoked tool.
func WithTool(tool string) AuditOption {
	return func(a *models.AuditLog) { a.ToolInvoked = tool }
}

// WithHooks sets the triggered hooks.
func WithHooks(hooks ...string) AuditOption {
	return func(a *models.AuditLog) { a.HooksTriggered = hooks }
}

// WithTimestamp sets the entry timestamp.
func WithTimestamp(ts time.Time) AuditOption {
	return func(a *models.AuditLog) { a.Timestamp = ts }
}

// CreateTestAuditLog creates an audit entry for user at the current UTC time.
func CreateTestAuditLog(t *testing.T, db *gorm.DB, user *models.User, opts ...AuditOption) *models.AuditLog {
	t.Helper()

	entry := &models.AuditLog{
		Query:          fmt.Sprintf("test query %d", nextID()),
		ToolInvoked:    "database_query",
		HooksTriggered: models.StringArray{},
		ActionTaken:    "allowed",
		RiskScore:      0.1,
		Timestamp:      time.Now().UTC(),
	}
	if user != nil {
		entry.UserID = &user.ID
		entry.Username = user.Username
	}
	for _, opt := range opts {
		opt(entry)
	}
	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("failed to create test audit log: %v", err)
	}
	return entry
}
