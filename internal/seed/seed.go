// Package seed loads guardrail rule definitions from YAML and creates them
// through the guardrail service.
package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	apperrors "guardrails/internal/errors"
	"guardrails/internal/logger"
	"guardrails/internal/services"
)

// Rule is one rule definition in a seed file.
type Rule struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Type        string         `yaml:"type"`
	Trigger     map[string]any `yaml:"trigger"`
	Action      string         `yaml:"action"`
	TargetRoles []string       `yaml:"target_roles"`
	Config      map[string]any `yaml:"config"`
	Priority    *int           `yaml:"priority"`
	Enabled     *bool          `yaml:"enabled"`
}

// File is the top level of a seed file.
type File struct {
	Rules []Rule `yaml:"rules"`
}

// Result counts what Apply did.
type Result struct {
	Created int
	Skipped int
}

// Load decodes a seed file. Unknown keys are rejected.
func Load(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding seed file: %w", err)
	}
	return &f, nil
}

// LoadFile opens and decodes the seed file at path.
func LoadFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening seed file: %w", err)
	}
	defer func() { _ = fh.Close() }()
	return Load(fh)
}

// Apply creates every rule in order. Rules whose name already exists are
// skipped and counted; any other failure stops the run.
func Apply(ctx context.Context, svc services.GuardrailServicer, rules []Rule) (Result, error) {
	var res Result
	log := logger.Get()

	for _, r := range rules {
		input, err := r.input()
		if err != nil {
			return res, fmt.Errorf("rule %q: %w", r.Name, err)
		}

		if _, err := svc.CreateRule(ctx, input); err != nil {
			var appErr *apperrors.AppError
			if errors.As(err, &appErr) && appErr.Code == apperrors.ErrDuplicateGuardrail.Code {
				log.Infow("seed rule exists, skipping", "rule", r.Name)
				res.Skipped++
				continue
			}
			return res, fmt.Errorf("rule %q: %w", r.Name, err)
		}
		log.Infow("seed rule created", "rule", r.Name)
		res.Created++
	}
	return res, nil
}

func (r Rule) input() (services.CreateRuleInput, error) {
	in := services.CreateRuleInput{
		RuleName:    &r.Name,
		RuleType:    &r.Type,
		Action:      &r.Action,
		TargetRoles: r.TargetRoles,
		Priority:    r.Priority,
		Enabled:     r.Enabled,
	}
	if r.Description != "" {
		in.Description = &r.Description
	}
	if r.Trigger != nil {
		b, err := json.Marshal(r.Trigger)
		if err != nil {
			return in, fmt.Errorf("encoding trigger: %w", err)
		}
		in.TriggerCondition = b
	}
	if r.Config != nil {
		b, err := json.Marshal(r.Config)
		if err != nil {
			return in, fmt.Errorf("encoding config: %w", err)
		}
		in.Config = b
	}
	return in, nil
}
