// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"guardrails/internal/models"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("rule_type", validateRuleType)
		_ = v.RegisterValidation("rule_action", validateRuleAction)
	}
}

func validateRuleType(fl validator.FieldLevel) bool {
	switch models.RuleType(fl.Field().String()) {
	case models.RuleTypePreHook, models.RuleTypePostHook:
		return true
	}
	return false
}

func validateRuleAction(fl validator.FieldLevel) bool {
	switch models.RuleAction(fl.Field().String()) {
	case models.RuleActionBlock, models.RuleActionMask, models.RuleActionFilter, models.RuleActionRequireApproval:
		return true
	}
	return false
}
