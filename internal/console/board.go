package console

import (
	"context"
	"errors"
	"sync"

	"guardrails/internal/models"
)

// ErrUnknownRule is returned by Toggle for an id the board does not hold.
var ErrUnknownRule = errors.New("rule not on board")

// RuleSource is the part of the API a RuleBoard needs.
type RuleSource interface {
	ListRules(ctx context.Context, f RuleFilter) ([]models.GuardrailRule, error)
	SetEnabled(ctx context.Context, id uint, enabled bool) (*models.GuardrailRule, error)
}

// RuleBoard holds a local copy of the rule list. Toggles are applied locally
// before the server confirms them and are reverted if the update fails.
type RuleBoard struct {
	api RuleSource

	mu    sync.Mutex
	rules []models.GuardrailRule
}

// NewRuleBoard creates an empty board backed by api.
func NewRuleBoard(api RuleSource) *RuleBoard {
	return &RuleBoard{api: api}
}

// Refresh replaces the local list with the server's.
func (b *RuleBoard) Refresh(ctx context.Context) error {
	rules, err := b.api.ListRules(ctx, RuleFilter{})
	if err != nil {
		return err
	}

	b.mu.Lock()
	b.rules = rules
	b.mu.Unlock()
	return nil
}

// Rules returns a copy of the local list.
func (b *RuleBoard) Rules() []models.GuardrailRule {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]models.GuardrailRule, len(b.rules))
	copy(out, b.rules)
	return out
}

// Toggle flips the enabled flag of rule id locally, then asks the server to
// store it. If the server rejects the change the captured value is restored
// and the error returned. It reports the enabled value now shown locally.
func (b *RuleBoard) Toggle(ctx context.Context, id uint) (bool, error) {
	b.mu.Lock()
	i := b.index(id)
	if i < 0 {
		b.mu.Unlock()
		return false, ErrUnknownRule
	}
	prior := b.rules[i].Enabled
	b.rules[i].Enabled = !prior
	b.mu.Unlock()

	updated, err := b.api.SetEnabled(ctx, id, !prior)

	b.mu.Lock()
	defer b.mu.Unlock()

	// The list may have been refreshed while the request was in flight.
	i = b.index(id)
	if err != nil {
		if i >= 0 {
			b.rules[i].Enabled = prior
		}
		return prior, err
	}
	if i >= 0 && updated != nil {
		b.rules[i] = *updated
		return updated.Enabled, nil
	}
	return !prior, nil
}

// index must be called with mu held.
func (b *RuleBoard) index(id uint) int {
	for i := range b.rules {
		if b.rules[i].ID == id {
			return i
		}
	}
	return -1
}
