package cli_test

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdstyle/internal/cli"
	"github.com/yaklabco/mdstyle/internal/configloader"
	"github.com/yaklabco/mdstyle/pkg/external"
	"github.com/yaklabco/mdstyle/pkg/lint"
	"github.com/yaklabco/mdstyle/pkg/runner"
)

var testInfo = cli.BuildInfo{Version: "1.2.3", Commit: "abc123", Date: "2026-01-02"}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)

	assert.Equal(t, "mdstyle", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	for _, name := range []string{"lint", "rules", "scopes", "init", "migrate", "version"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}

	for _, name := range []string{"debug", "config", "color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
}

func TestLintCommandFlags(t *testing.T) {
	t.Parallel()

	lintCmd, _, err := cli.NewRootCommand(testInfo).Find([]string{"lint"})
	require.NoError(t, err)

	defaults := map[string]string{
		"format":         "text",
		"flavor":         "",
		"rule-format":    "id",
		"jobs":           "0",
		"ignore":         "[]",
		"enable":         "[]",
		"disable":        "[]",
		"context":        "false",
		"summary":        "false",
		"compact":        "false",
		"stdin-filename": "",
		"metrics-file":   "",
		"external":       "false",
	}
	for name, def := range defaults {
		flag := lintCmd.Flags().Lookup(name)
		require.NotNil(t, flag, name)
		assert.Equal(t, def, flag.DefValue, name)
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "mdstyle")
	assert.Contains(t, out.String(), "1.2.3")
	assert.Contains(t, out.String(), "abc123")
}

func TestHelpOutput(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"lint", "--help", "--color", "never"})

	require.NoError(t, cmd.Execute())

	help := out.String()
	assert.Contains(t, help, "Lint Markdown files for style issues.")
	assert.Contains(t, help, "Usage:")
	assert.Contains(t, help, "Examples:")
	assert.Contains(t, help, "--rule-format")
	assert.Contains(t, help, "Global Flags:")
	assert.Contains(t, help, "--config")
}

func TestExitCodeFromResult(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		stats runner.Stats
		want  int
	}{
		{"clean", runner.Stats{FilesProcessed: 2}, cli.ExitSuccess},
		{"issues", runner.Stats{DiagnosticsTotal: 3}, cli.ExitLintErrors},
		{"file errors", runner.Stats{FilesErrored: 1}, cli.ExitFileErrors},
		{"issues win", runner.Stats{DiagnosticsTotal: 1, FilesErrored: 1}, cli.ExitLintErrors},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cli.ExitCodeFromResult(&runner.Result{Stats: tt.stats}))
		})
	}

	assert.Equal(t, cli.ExitSuccess, cli.ExitCodeFromResult(nil))
}

func TestExitCodeFromError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, cli.ExitSuccess},
		{"issues", cli.ErrLintIssuesFound, cli.ExitLintErrors},
		{"file errors", fmt.Errorf("run: %w", cli.ErrFilesFailed), cli.ExitFileErrors},
		{"config", &cli.ConfigLoadError{Err: errors.New("bad")}, cli.ExitConfigError},
		{"validation", &configloader.ValidationError{Field: "tab_size"}, cli.ExitConfigError},
		{"unknown rule", &lint.ConfigError{Key: "MD999", Err: lint.ErrUnknownRule}, cli.ExitConfigError},
		{"external missing", fmt.Errorf("run: %w", external.ErrNotInstalled), cli.ExitUnavailable},
		{"rule failure", &lint.RuleError{RuleID: "MD001", Err: lint.ErrRulePanic}, cli.ExitInternalError},
		{"file not found", lint.ErrFileNotFound, cli.ExitIOError},
		{"other", errors.New("boom"), cli.ExitInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cli.ExitCodeFromError(tt.err))
		})
	}
}
