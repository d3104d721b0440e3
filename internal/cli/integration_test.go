package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdstyle/internal/cli"
	"github.com/yaklabco/mdstyle/internal/configloader"
	"github.com/yaklabco/mdstyle/pkg/reporter"
)

// trailingSpaces triggers MD009 on line 1 and nothing else.
const trailingSpaces = "# Hello World   \n\nSome text.\n"

const clean = "# Title\n\nSome text.\n"

type fixture struct {
	dir    string
	config string
}

// newFixture writes files into a temp dir together with an empty config
// that is passed explicitly, so no project config is picked up.
func newFixture(t *testing.T, files map[string]string) fixture {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	cfg := filepath.Join(t.TempDir(), ".mdstyle.yml")
	require.NoError(t, os.WriteFile(cfg, []byte("tab_size: 4\n"), 0o644))

	return fixture{dir: dir, config: cfg}
}

func (f fixture) path(name string) string {
	return filepath.Join(f.dir, name)
}

// run executes the root command and returns stdout, stderr and the error.
func (f fixture) run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))

	full := append([]string{args[0], "--config", f.config, "--color", "never"}, args[1:]...)
	cmd.SetArgs(full)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestIntegration_LintFile(t *testing.T) {
	t.Parallel()

	f := newFixture(t, map[string]string{"doc.md": trailingSpaces})
	out, _, err := f.run(t, "", "lint", f.path("doc.md"))

	require.ErrorIs(t, err, cli.ErrLintIssuesFound)
	assert.Contains(t, out, "(1 issue)")
	assert.Contains(t, out, "  line 1: MD009 - Trailing spaces, 3 spaces\n")
	assert.Contains(t, out, "1 issue in 1 file (1 file checked)")
}

func TestIntegration_LintDirectoryClean(t *testing.T) {
	t.Parallel()

	f := newFixture(t, map[string]string{
		"a.md":           clean,
		"docs/b.md":      clean,
		"docs/notes.txt": trailingSpaces,
	})
	out, _, err := f.run(t, "", "lint", f.dir)

	require.NoError(t, err)
	assert.Contains(t, out, "No issues found (2 files checked)")
}

func TestIntegration_RuleFormatFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format string
		want   string
	}{
		{"id", "line 1: MD009 - Trailing spaces"},
		{"name", "line 1: no-trailing-spaces - Trailing spaces"},
		{"combined", "line 1: MD009/no-trailing-spaces - Trailing spaces"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t, map[string]string{"doc.md": trailingSpaces})
			out, _, err := f.run(t, "", "lint", "--rule-format", tt.format, f.path("doc.md"))

			require.ErrorIs(t, err, cli.ErrLintIssuesFound)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestIntegration_DisableAndEnable(t *testing.T) {
	t.Parallel()

	long := "# Title\n\n" + strings.Repeat("word ", 30) + "\n"
	f := newFixture(t, map[string]string{"doc.md": long})

	_, _, err := f.run(t, "", "lint", "--disable", "no-trailing-spaces", f.path("doc.md"))
	require.NoError(t, err, "MD013 is disabled by default")

	out, _, err := f.run(t, "", "lint", "--enable", "line-length", "--disable", "MD009", f.path("doc.md"))
	require.ErrorIs(t, err, cli.ErrLintIssuesFound)
	assert.Contains(t, out, "line 3: MD013 - Line length")
}

func TestIntegration_Stdin(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)

	out, _, err := f.run(t, trailingSpaces, "lint", "-")
	require.ErrorIs(t, err, cli.ErrLintIssuesFound)
	assert.Equal(t, "line 1: MD009 - Trailing spaces, 3 spaces\n1 error(s) found\n", out)

	out, _, err = f.run(t, clean, "lint", "-")
	require.NoError(t, err)
	assert.Equal(t, reporter.StatusClean+"\n", out)
}

func TestIntegration_StdinSkipsFrontMatterAndCode(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	doc := "---\ntitle: x   \n---\n# Title\n\n```go\nfunc main() {}   \n```\n"

	out, _, err := f.run(t, doc, "lint", "-")
	require.NoError(t, err)
	assert.Equal(t, reporter.StatusClean+"\n", out)
}

func TestIntegration_JSONOutput(t *testing.T) {
	t.Parallel()

	f := newFixture(t, map[string]string{"doc.md": trailingSpaces})
	out, _, err := f.run(t, "", "lint", "--format", "json", f.path("doc.md"))
	require.ErrorIs(t, err, cli.ErrLintIssuesFound)

	var parsed reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))

	require.Len(t, parsed.Files, 1)
	require.Len(t, parsed.Files[0].Diagnostics, 1)
	diag := parsed.Files[0].Diagnostics[0]
	assert.Equal(t, "MD009", diag.RuleID)
	assert.Equal(t, "3 spaces", diag.Message)
	assert.Equal(t, 1, diag.Line)
	assert.Equal(t, 14, diag.Column)
	assert.Equal(t, 1, parsed.Summary.TotalIssues)
}

func TestIntegration_MetricsFile(t *testing.T) {
	t.Parallel()

	f := newFixture(t, map[string]string{"doc.md": trailingSpaces})
	metricsPath := filepath.Join(t.TempDir(), "mdstyle.prom")

	_, _, err := f.run(t, "", "lint", "--metrics-file", metricsPath, f.path("doc.md"))
	require.ErrorIs(t, err, cli.ErrLintIssuesFound)

	content, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), `mdstyle_rule_findings_total{rule="MD009"} 1`)
}

func TestIntegration_InvalidConfig(t *testing.T) {
	t.Parallel()

	f := newFixture(t, map[string]string{"doc.md": clean})
	require.NoError(t, os.WriteFile(f.config, []byte("rules:\n  MD999: 1\n"), 0o644))

	_, _, err := f.run(t, "", "lint", f.path("doc.md"))

	var loadErr *cli.ConfigLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCodeFromError(err))
}

func TestIntegration_LintExternalKeepsRawOutput(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on windows")
	}

	f := newFixture(t, nil)
	exe := filepath.Join(t.TempDir(), "mdl")
	script := "#!/bin/sh\ncat >/dev/null\n" +
		"echo '(stdin):1: MD009 Trailing spaces'\n" +
		"echo\n" +
		"echo 'A detailed description of the rules is available at'\n" +
		"echo 'https://example.invalid/RULES.md'\n" +
		"exit 1\n"
	require.NoError(t, os.WriteFile(exe, []byte(script), 0o700))
	require.NoError(t, os.WriteFile(f.config, []byte("external:\n  executable: "+exe+"\n"), 0o644))

	out, _, err := f.run(t, trailingSpaces, "lint", "--external", "-")

	require.ErrorIs(t, err, cli.ErrLintIssuesFound)
	assert.Equal(t, "line 1: MD009 - Trailing spaces\n"+
		"A detailed description of the rules is available at\n"+
		"https://example.invalid/RULES.md\n"+
		reporter.StatusMessage(1)+"\n", out)
}

func TestIntegration_RulesCommand(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)

	out, _, err := f.run(t, "", "rules")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Regexp(t, `^RULE\s+NAME\s+DEFAULT`, lines[0])
	assert.Regexp(t, `^MD001\s+heading-increment\s+on`, lines[1])
	assert.Regexp(t, `MD026\s+no-trailing-punctuation\s+on`, out)
	assert.Regexp(t, `MD013\s+line-length\s+off\s+0\s+Line length`, out)

	out, _, err = f.run(t, "", "rules", "--rule-format", "combined")
	require.NoError(t, err)
	lines = strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Regexp(t, `^RULE\s+DEFAULT`, lines[0])
	assert.Regexp(t, `^MD001/heading-increment\s+on`, lines[1])

	out, _, err = f.run(t, "", "rules", "--format", "json", "--tag", "hard_tab")
	require.NoError(t, err)

	var rules []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &rules))
	require.Len(t, rules, 1)
	assert.Equal(t, "MD010", rules[0]["id"])
	assert.Equal(t, true, rules[0]["enabled"])
}

func TestIntegration_ScopesCommand(t *testing.T) {
	t.Parallel()

	f := newFixture(t, map[string]string{
		"doc.md": "---\ntitle: x\n---\n# Title\n\n```python\nprint(1)\n```\n\n    #!/bin/sh\n    echo hi\n",
	})

	out, _, err := f.run(t, "", "scopes", "--format", "json", f.path("doc.md"))
	require.NoError(t, err)

	var scopes []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &scopes))
	require.Len(t, scopes, 3)

	assert.Equal(t, "front matter", scopes[0]["kind"])
	assert.Equal(t, "1 field(s)", scopes[0]["detail"])
	assert.Equal(t, "fenced code", scopes[1]["kind"])
	assert.Equal(t, "python", scopes[1]["language"])
	assert.Equal(t, "info", scopes[1]["source"])
	assert.Equal(t, float64(6), scopes[1]["start_line"])
	assert.Equal(t, float64(8), scopes[1]["end_line"])
	assert.Equal(t, "indented code", scopes[2]["kind"])
	assert.Equal(t, "bash", scopes[2]["language"])

	out, _, err = f.run(t, "plain text\n", "scopes", "-")
	require.NoError(t, err)
	assert.Equal(t, "no front matter or code blocks\n", out)
}

func TestIntegration_InitCommand(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	target := filepath.Join(t.TempDir(), "generated.yml")

	_, _, err := f.run(t, "", "init", "--full", "--output", target)
	require.NoError(t, err)

	loaded, err := configloader.LoadFile(target)
	require.NoError(t, err)
	assert.Equal(t, []string{"MD013"}, loaded.Disabled)

	_, _, err = f.run(t, "", "init", "--output", target)
	require.ErrorIs(t, err, configloader.ErrConfigExists)

	_, _, err = f.run(t, "", "init", "--force", "--format", "toml", "--output", target)
	require.NoError(t, err)
}

func TestIntegration_MigrateCommand(t *testing.T) {
	t.Parallel()

	f := newFixture(t, map[string]string{
		".markdownlint.jsonc": `{
  // keep headings loose
  "default": true,
  "MD003": { "style": "atx" },
  "whitespace": false
}`,
	})
	target := filepath.Join(t.TempDir(), ".mdstyle.yml")

	_, _, err := f.run(t, "", "migrate", f.path(".markdownlint.jsonc"), "--output", target)
	require.NoError(t, err)

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "# mdstyle configuration\n# Migrated from: .markdownlint.jsonc\n"))

	loaded, err := configloader.LoadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "atx", loaded.Rules["MD003"])
	assert.Contains(t, loaded.Disabled, "MD009")
	assert.Contains(t, loaded.Disabled, "MD010")
}
