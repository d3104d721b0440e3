package rules_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdstyle/pkg/config"
	"github.com/yaklabco/mdstyle/pkg/lint"
	"github.com/yaklabco/mdstyle/pkg/lint/rules"
	"github.com/yaklabco/mdstyle/pkg/parser/goldmark"
)

// ruleCase is one document checked against one rule.
type ruleCase struct {
	name    string
	input   string
	setting any
	want    []string // "line:col message"
}

func lintAll(t *testing.T, content string, cfg *config.Config) []lint.Diagnostic {
	t.Helper()

	registry := lint.NewRegistry()
	rules.RegisterAll(registry)

	plan, err := lint.Compile(registry, cfg)
	require.NoError(t, err)

	engine := lint.NewEngine(goldmark.New(goldmark.FlavorGFM))
	result, err := engine.Lint(context.Background(), "test.md", []byte(content), plan)
	require.NoError(t, err)
	return result.Diagnostics
}

// lintRule runs the whole catalog and keeps the diagnostics of one rule.
func lintRule(t *testing.T, id, content string, setting any) []string {
	t.Helper()

	cfg := config.NewConfig()
	cfg.Disabled = nil
	if setting != nil {
		cfg.Rules[id] = setting
	}

	var got []string
	for _, diag := range lintAll(t, content, cfg) {
		if diag.RuleID == id {
			got = append(got, fmt.Sprintf("%d:%d %s", diag.Line, diag.Column, diag.Message))
		}
	}
	return got
}

func runRuleCases(t *testing.T, id string, tests []ruleCase) {
	t.Helper()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lintRule(t, id, tt.input, tt.setting)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
