package models

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// RuleType is the hook stage a guardrail rule runs in.
type RuleType string

const (
	RuleTypePreHook  RuleType = "pre_hook"
	RuleTypePostHook RuleType = "post_hook"
)

// RuleAction is what the agent engine does when a rule triggers.
type RuleAction string

const (
	RuleActionBlock           RuleAction = "block"
	RuleActionMask            RuleAction = "mask"
	RuleActionFilter          RuleAction = "filter"
	RuleActionRequireApproval RuleAction = "require_approval"
)

// StringArray is a TEXT[] column on Postgres. Other dialects store the same
// array literal in a plain text column, which keeps tests on SQLite honest.
type StringArray []string

// Scan implements sql.Scanner.
func (a *StringArray) Scan(src any) error {
	var arr pq.StringArray
	if err := arr.Scan(src); err != nil {
		return err
	}
	*a = StringArray(arr)
	return nil
}

// Value implements driver.Valuer. A nil array is written as an empty one.
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return pq.StringArray{}.Value()
	}
	return pq.StringArray(a).Value()
}

// MarshalJSON renders a nil array as [].
func (a StringArray) MarshalJSON() ([]byte, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(a))
}

// GormDBDataType picks the column type per dialect.
func (StringArray) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}
