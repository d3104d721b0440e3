package lint_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdstyle/pkg/lint"
)

func tabPipeline(t *testing.T) *lint.Pipeline {
	t.Helper()

	reg := lint.NewRegistry()
	reg.MustRegister(literalRule("MD010", "no-hard-tabs", `\t`, "hard tab found"))
	return lint.NewPipeline(lint.NewEngine(nil), compile(t, reg))
}

func TestPipeline_ProcessFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("a\tb\n"), 0o600))

	result, err := tabPipeline(t).ProcessFile(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, path, result.Path)
	assert.False(t, result.Stale)
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, 1, result.Diagnostics[0].Offset)
	assert.Equal(t, "issues found", result.Summary())
}

func TestPipeline_ProcessFileMissing(t *testing.T) {
	_, err := tabPipeline(t).ProcessFile(context.Background(), filepath.Join(t.TempDir(), "missing.md"))
	require.ErrorIs(t, err, lint.ErrFileNotFound)
	assert.True(t, lint.IsPipelineError(err))
}

func TestPipeline_ProcessReader(t *testing.T) {
	result, err := tabPipeline(t).ProcessReader(context.Background(), "", strings.NewReader("clean\n"))
	require.NoError(t, err)
	assert.False(t, result.HasIssues())
	assert.Equal(t, "ok", result.Summary())
}

func TestPipeline_LintFailure(t *testing.T) {
	pipeline := lint.NewPipeline(lint.NewEngine(nil), nil)
	_, err := pipeline.ProcessContent(context.Background(), "doc.md", []byte("x"))
	require.ErrorIs(t, err, lint.ErrLintFailure)
	require.ErrorIs(t, err, lint.ErrNilPlan)
}
