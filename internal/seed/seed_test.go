package seed

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guardrails/internal/logger"
	"guardrails/internal/models"
	"guardrails/internal/services"
	"guardrails/internal/testutil"
)

func init() {
	logger.Init("test")
}

func TestLoadFile_DefaultRules(t *testing.T) {
	f, err := LoadFile("../../rules/default.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, f.Rules)

	names := map[string]bool{}
	for _, r := range f.Rules {
		assert.NotEmpty(t, r.Name)
		assert.Contains(t, []string{"pre_hook", "post_hook"}, r.Type, r.Name)
		assert.NotEmpty(t, r.Trigger, r.Name)
		assert.False(t, names[r.Name], "duplicate rule %s", r.Name)
		names[r.Name] = true
	}
}

func TestLoad_RejectsUnknownKeys(t *testing.T) {
	_, err := Load(strings.NewReader("rules:\n  - name: x\n    colour: red\n"))
	assert.Error(t, err)
}

func TestLoad_Empty(t *testing.T) {
	f, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, f.Rules)
}

func TestApply(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := services.NewGuardrailService(db)

	f, err := LoadFile("../../rules/default.yaml")
	require.NoError(t, err)

	res, err := Apply(context.Background(), svc, f.Rules)
	require.NoError(t, err)
	assert.Equal(t, Result{Created: len(f.Rules)}, res)

	// Applying again creates nothing.
	res, err = Apply(context.Background(), svc, f.Rules)
	require.NoError(t, err)
	assert.Equal(t, Result{Skipped: len(f.Rules)}, res)
	assert.Equal(t, int64(len(f.Rules)), testutil.CountRows(t, db, &models.GuardrailRule{}))

	rule, err := svc.ListRules(context.Background(), services.RuleFilter{})
	require.NoError(t, err)
	assert.Equal(t, "block_salary_queries", rule[0].RuleName)
	assert.JSONEq(t, `{"allow_own_salary":true,"error_message":"You do not have permission to access salary information"}`, string(rule[0].Config))
}

func TestApply_StopsOnInvalidRule(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := services.NewGuardrailService(db)

	rules := []Rule{
		{Name: "ok", Type: "pre_hook", Trigger: map[string]any{"keywords": []any{"a"}}, Action: "block"},
		{Name: "bad", Type: "sideways", Trigger: map[string]any{"keywords": []any{"b"}}, Action: "block"},
		{Name: "never", Type: "pre_hook", Trigger: map[string]any{"keywords": []any{"c"}}, Action: "block"},
	}

	res, err := Apply(context.Background(), svc, rules)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `rule "bad"`)
	assert.Equal(t, Result{Created: 1}, res)
	assert.Equal(t, int64(1), testutil.CountRows(t, db, &models.GuardrailRule{}))
}
