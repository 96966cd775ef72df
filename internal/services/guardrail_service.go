package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	apperrors "guardrails/internal/errors"
	"guardrails/internal/models"
	"guardrails/internal/querybuilder"
)

const uniqueViolation = "23505"

// guardrailService handles guardrail rule storage.
type guardrailService struct {
	db *gorm.DB
}

// NewGuardrailService creates a new GuardrailServicer.
func NewGuardrailService(db *gorm.DB) GuardrailServicer {
	return &guardrailService{db: db}
}

// ListRules returns rules matching filter, lowest priority value first.
func (s *guardrailService) ListRules(ctx context.Context, filter RuleFilter) ([]models.GuardrailRule, error) {
	q := querybuilder.New("SELECT * FROM guardrail_rules").
		Where(
			querybuilder.Eq("rule_type", filter.RuleType),
			querybuilder.Eq("enabled", filter.Enabled),
			querybuilder.Eq("action", filter.Action),
		).
		OrderBy("priority ASC").
		Build()

	rules := []models.GuardrailRule{}
	if err := s.db.WithContext(ctx).Raw(q.SQL, q.Args...).Scan(&rules).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrFetchGuardrails, err)
	}
	return rules, nil
}

// GetRule returns a single rule by ID.
func (s *guardrailService) GetRule(ctx context.Context, id uint) (*models.GuardrailRule, error) {
	var rule models.GuardrailRule
	if err := s.db.WithContext(ctx).First(&rule, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGuardrailNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrFetchGuardrail, err)
	}
	return &rule, nil
}

// CreateRule inserts a new rule, applying defaults for optional fields.
func (s *guardrailService) CreateRule(ctx context.Context, input CreateRuleInput) (*models.GuardrailRule, error) {
	if isBlank(input.RuleName) || isBlank(input.RuleType) || isBlank(input.Action) || !hasJSON(input.TriggerCondition) {
		return nil, apperrors.ErrMissingFields
	}
	if err := validateEnums(input.RuleType, input.Action); err != nil {
		return nil, err
	}

	rule := &models.GuardrailRule{
		RuleName:         *input.RuleName,
		Description:      input.Description,
		RuleType:         models.RuleType(*input.RuleType),
		TriggerCondition: datatypes.JSON(input.TriggerCondition),
		Action:           models.RuleAction(*input.Action),
		TargetRoles:      models.StringArray(input.TargetRoles),
		Config:           datatypes.JSON("{}"),
		Priority:         models.DefaultRulePriority,
		Enabled:          true,
	}
	if rule.TargetRoles == nil {
		rule.TargetRoles = models.StringArray{}
	}
	if hasJSON(input.Config) {
		rule.Config = datatypes.JSON(input.Config)
	}
	if input.Priority != nil {
		rule.Priority = *input.Priority
	}
	if input.Enabled != nil {
		rule.Enabled = *input.Enabled
	}

	if err := s.db.WithContext(ctx).Create(rule).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Wrap(apperrors.ErrDuplicateGuardrail, err)
		}
		return nil, apperrors.Wrap(apperrors.ErrCreateGuardrail, err)
	}
	return rule, nil
}

// UpdateRule writes only the supplied fields and returns the stored result.
func (s *guardrailService) UpdateRule(ctx context.Context, id uint, input UpdateRuleInput) (*models.GuardrailRule, error) {
	if err := validateEnums(input.RuleType, input.Action); err != nil {
		return nil, err
	}

	rule, err := s.GetRule(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrGuardrailNotFound) {
			return nil, err
		}
		return nil, apperrors.Wrap(apperrors.ErrUpdateGuardrail, err)
	}

	updates := map[string]any{"updated_at": time.Now()}
	if input.RuleName != nil {
		updates["rule_name"] = *input.RuleName
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.RuleType != nil {
		updates["rule_type"] = *input.RuleType
	}
	if hasJSON(input.TriggerCondition) {
		updates["trigger_condition"] = datatypes.JSON(input.TriggerCondition)
	}
	if input.Action != nil {
		updates["action"] = *input.Action
	}
	if input.TargetRoles != nil {
		roles := models.StringArray(*input.TargetRoles)
		if roles == nil {
			roles = models.StringArray{}
		}
		updates["target_roles"] = roles
	}
	if hasJSON(input.Config) {
		updates["config"] = datatypes.JSON(input.Config)
	}
	if input.Priority != nil {
		updates["priority"] = *input.Priority
	}
	if input.Enabled != nil {
		updates["enabled"] = *input.Enabled
	}

	if err := s.db.WithContext(ctx).Model(rule).Updates(updates).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Wrap(apperrors.ErrDuplicateGuardrail, err)
		}
		return nil, apperrors.Wrap(apperrors.ErrUpdateGuardrail, err)
	}

	return s.GetRule(ctx, id)
}

// DeleteRule removes a rule and returns its state before deletion.
func (s *guardrailService) DeleteRule(ctx context.Context, id uint) (*models.GuardrailRule, error) {
	rule, err := s.GetRule(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrGuardrailNotFound) {
			return nil, err
		}
		return nil, apperrors.Wrap(apperrors.ErrDeleteGuardrail, err)
	}

	result := s.db.WithContext(ctx).Delete(&models.GuardrailRule{}, id)
	if result.Error != nil {
		return nil, apperrors.Wrap(apperrors.ErrDeleteGuardrail, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.ErrGuardrailNotFound
	}
	return rule, nil
}

func isBlank(s *string) bool {
	return s == nil || *s == ""
}

// hasJSON reports whether raw holds a document other than JSON null.
func hasJSON(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}

func validateEnums(ruleType, action *string) error {
	if ruleType != nil {
		switch models.RuleType(*ruleType) {
		case models.RuleTypePreHook, models.RuleTypePostHook:
		default:
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid rule_type: must be pre_hook or post_hook")
		}
	}
	if action != nil {
		switch models.RuleAction(*action) {
		case models.RuleActionBlock, models.RuleActionMask, models.RuleActionFilter, models.RuleActionRequireApproval:
		default:
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid action: must be block, mask, filter or require_approval")
		}
	}
	return nil
}

// isUniqueViolation recognizes duplicate-key failures from any dialect.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
