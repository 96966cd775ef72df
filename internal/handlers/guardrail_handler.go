package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "guardrails/internal/errors"
	"guardrails/internal/services"
)

// GuardrailHandler handles guardrail rule requests.
type GuardrailHandler struct {
	guardrailService services.GuardrailServicer
}

// NewGuardrailHandler creates a new GuardrailHandler.
func NewGuardrailHandler(guardrailService services.GuardrailServicer) *GuardrailHandler {
	return &GuardrailHandler{guardrailService: guardrailService}
}

// CreateGuardrailRequest represents the request payload for creating a rule.
// Required fields are checked by the service so that a missing field and an
// empty body both report "Missing required fields".
type CreateGuardrailRequest struct {
	RuleName         *string         `json:"rule_name"`
	Description      *string         `json:"description"`
	RuleType         *string         `json:"rule_type" binding:"omitempty,rule_type"`
	TriggerCondition json.RawMessage `json:"trigger_condition" swaggertype:"object"`
	Action           *string         `json:"action" binding:"omitempty,rule_action"`
	TargetRoles      []string        `json:"target_roles"`
	Config           json.RawMessage `json:"config" swaggertype:"object"`
	Priority         *int            `json:"priority"`
	Enabled          *bool           `json:"enabled"`
}

// UpdateGuardrailRequest represents a partial update. Absent fields are left
// unchanged.
type UpdateGuardrailRequest struct {
	RuleName         *string         `json:"rule_name" binding:"omitempty,min=1"`
	Description      *string         `json:"description"`
	RuleType         *string         `json:"rule_type" binding:"omitempty,rule_type"`
	TriggerCondition json.RawMessage `json:"trigger_condition" swaggertype:"object"`
	Action           *string         `json:"action" binding:"omitempty,rule_action"`
	TargetRoles      *[]string       `json:"target_roles"`
	Config           json.RawMessage `json:"config" swaggertype:"object"`
	Priority         *int            `json:"priority"`
	Enabled          *bool           `json:"enabled"`
}

// bindJSON binds the request body, treating an empty body as an empty object.
func bindJSON(c *gin.Context, obj any) error {
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}
	return nil
}

// ListGuardrails handles listing guardrail rules.
// @Summary     List guardrails
// @Description List guardrail rules ordered by ascending priority
// @Tags        guardrails
// @Produce     json
// @Param       rule_type query string false "Filter by type (pre_hook/post_hook)"
// @Param       enabled   query bool   false "Filter by enabled flag"
// @Param       action    query string false "Filter by action"
// @Success     200 {object} GuardrailListResponse "Rules"
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /guardrails [get]
func (h *GuardrailHandler) ListGuardrails(c *gin.Context) {
	enabled, err := queryBool(c, "enabled")
	if err != nil {
		respondWithError(c, err)
		return
	}

	filter := services.RuleFilter{
		RuleType: queryString(c, "rule_type"),
		Enabled:  enabled,
		Action:   queryString(c, "action"),
	}

	rules, err := h.guardrailService.ListRules(c.Request.Context(), filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": rules, "count": len(rules)})
}

// GetGuardrail handles fetching a single rule.
// @Summary     Get a guardrail
// @Tags        guardrails
// @Produce     json
// @Param       id path int true "Rule ID"
// @Success     200 {object} GuardrailResponse "Rule"
// @Failure     400 {object} ErrorResponse "Invalid id"
// @Failure     404 {object} ErrorResponse "Guardrail not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /guardrails/{id} [get]
func (h *GuardrailHandler) GetGuardrail(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	rule, err := h.guardrailService.GetRule(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": rule})
}

// CreateGuardrail handles rule creation.
// @Summary     Create a guardrail
// @Description Create a rule. rule_name, rule_type, trigger_condition and action are required.
// @Tags        guardrails
// @Accept      json
// @Produce     json
// @Param       request body CreateGuardrailRequest true "Rule details"
// @Success     201 {object} MessageResponse "Rule created"
// @Failure     400 {object} ErrorResponse "Missing fields, invalid value or duplicate name"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /guardrails [post]
func (h *GuardrailHandler) CreateGuardrail(c *gin.Context) {
	var req CreateGuardrailRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	rule, err := h.guardrailService.CreateRule(c.Request.Context(), services.CreateRuleInput{
		RuleName:         req.RuleName,
		Description:      req.Description,
		RuleType:         req.RuleType,
		TriggerCondition: req.TriggerCondition,
		Action:           req.Action,
		TargetRoles:      req.TargetRoles,
		Config:           req.Config,
		Priority:         req.Priority,
		Enabled:          req.Enabled,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    rule,
		"message": "Guardrail created successfully",
	})
}

// UpdateGuardrail handles partial rule updates.
// @Summary     Update a guardrail
// @Description Update only the supplied fields of a rule
// @Tags        guardrails
// @Accept      json
// @Produce     json
// @Param       id      path int                    true "Rule ID"
// @Param       request body UpdateGuardrailRequest true "Fields to change"
// @Success     200 {object} MessageResponse "Rule updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Guardrail not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /guardrails/{id} [put]
func (h *GuardrailHandler) UpdateGuardrail(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateGuardrailRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	rule, err := h.guardrailService.UpdateRule(c.Request.Context(), id, services.UpdateRuleInput{
		RuleName:         req.RuleName,
		Description:      req.Description,
		RuleType:         req.RuleType,
		TriggerCondition: req.TriggerCondition,
		Action:           req.Action,
		TargetRoles:      req.TargetRoles,
		Config:           req.Config,
		Priority:         req.Priority,
		Enabled:          req.Enabled,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    rule,
		"message": "Guardrail updated successfully",
	})
}

// DeleteGuardrail handles rule deletion. The deleted rule is returned.
// @Summary     Delete a guardrail
// @Tags        guardrails
// @Produce     json
// @Param       id path int true "Rule ID"
// @Success     200 {object} MessageResponse "Rule deleted"
// @Failure     400 {object} ErrorResponse "Invalid id"
// @Failure     404 {object} ErrorResponse "Guardrail not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /guardrails/{id} [delete]
func (h *GuardrailHandler) DeleteGuardrail(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	rule, err := h.guardrailService.DeleteRule(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Guardrail deleted successfully",
		"data":    rule,
	})
}
