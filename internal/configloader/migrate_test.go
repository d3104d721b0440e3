package configloader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdstyle/pkg/lint"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestConvertMarkdownlintConfig_Formats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name:    "json",
			file:    ".markdownlint.json",
			content: `{"MD001": false, "MD003": {"style": "setext"}, "MD013": {"line_length": 100}}`,
		},
		{
			name: "jsonc",
			file: ".markdownlint.jsonc",
			content: `{
  // headings
  "MD001": false, /* increment */
  "MD003": { "style": "setext" },
  "MD013": { "line_length": 100 } // "quoted // text"
}`,
		},
		{
			name:    "yaml",
			file:    ".markdownlint.yaml",
			content: "MD001: false\nMD003:\n  style: setext\nMD013:\n  line_length: 100\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeFile(t, tt.file, tt.content)
			result, err := ConvertMarkdownlintConfig(path, nil)
			require.NoError(t, err)

			assert.Equal(t, path, result.SourcePath)
			assert.Empty(t, result.Warnings)
			assert.Equal(t, []string{"MD001"}, result.Config.Disabled)
			assert.Equal(t, "setext", result.Config.Rules["MD003"])
			assert.Equal(t, 100, result.Config.Rules["MD013"])

			_, err = lint.Compile(lint.DefaultRegistry, result.Config)
			assert.NoError(t, err)
		})
	}
}

func TestConvertMarkdownlint_Options(t *testing.T) {
	t.Parallel()

	raw := map[string]any{
		"ul-style":                map[string]any{"style": "sublist"},
		"MD007":                   map[string]any{"indent": 4, "start_indented": true},
		"no-trailing-punctuation": map[string]any{"punctuation": ".,;:"},
		"MD029":                   map[string]any{"style": "zero"},
		"MD030":                   map[string]any{"ul_single": 3, "ol_multi": 2},
		"MD009":                   map[string]any{"br_spaces": 2},
	}

	result, err := ConvertMarkdownlint(raw, nil)
	require.NoError(t, err)

	cfg := result.Config
	assert.Equal(t, "cyclic", cfg.Rules["MD004"])
	assert.Equal(t, 4, cfg.Rules["MD007"])
	assert.Equal(t, ".,;:", cfg.Rules["MD026"])
	assert.Equal(t, map[string]any{"ul_single": 3, "ol_multi": 2}, cfg.Rules["MD030"])
	assert.NotContains(t, cfg.Rules, "MD029")
	assert.NotContains(t, cfg.Rules, "MD009")

	assert.ElementsMatch(t, []string{
		`MD007: option "start_indented" is not supported; skipping`,
		`MD029: style "zero" has no equivalent; using the default`,
		"MD009: options are not supported (br_spaces); using defaults",
	}, result.Warnings)

	_, err = lint.Compile(lint.DefaultRegistry, cfg)
	assert.NoError(t, err)
}

func TestConvertMarkdownlint_DefaultAndTags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		raw      map[string]any
		disabled []string
		enabled  []string
	}{
		{
			name:     "unmentioned rules keep mdstyle defaults",
			raw:      map[string]any{},
			disabled: []string{"MD013"},
		},
		{
			name:    "default false disables everything not enabled",
			raw:     map[string]any{"default": false, "MD001": true, "MD010": map[string]any{}},
			enabled: []string{"MD001", "MD010"},
		},
		{
			name:     "tag disables its rules",
			raw:      map[string]any{"blank_lines": false},
			disabled: []string{"MD012", "MD013", "MD022"},
		},
		{
			name:     "rule key overrides tag",
			raw:      map[string]any{"hard_tab": false, "MD010": true, "line_length": true},
			disabled: nil,
		},
		{
			name:     "null disables",
			raw:      map[string]any{"MD028": nil},
			disabled: []string{"MD013", "MD028"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := ConvertMarkdownlint(tt.raw, nil)
			require.NoError(t, err)

			if tt.enabled != nil {
				for _, id := range tt.enabled {
					assert.NotContains(t, result.Config.Disabled, id)
				}
				assert.Len(t, result.Config.Disabled, lint.DefaultRegistry.Len()-len(tt.enabled))
				return
			}
			assert.ElementsMatch(t, tt.disabled, result.Config.Disabled)
		})
	}
}

func TestConvertMarkdownlint_SpecialKeys(t *testing.T) {
	t.Parallel()

	raw := map[string]any{
		"$schema": "https://example.invalid/schema.json",
		"extends": "base.json",
		"MD999":   true,
	}

	result, err := ConvertMarkdownlint(raw, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{
		`'extends: "base.json"' is not supported; merge that file by hand`,
		`unknown key "MD999"; skipping`,
	}, result.Warnings)
}

func TestConvertMarkdownlintConfig_Rejects(t *testing.T) {
	t.Parallel()

	_, err := ConvertMarkdownlintConfig(writeFile(t, ".markdownlint.cjs", "module.exports = {}"), nil)
	assert.ErrorContains(t, err, "JavaScript")

	_, err = ConvertMarkdownlintConfig(writeFile(t, ".markdownlint.json", "{not json"), nil)
	assert.ErrorContains(t, err, "parse JSON")

	_, err = ConvertMarkdownlintConfig(filepath.Join(t.TempDir(), "missing.json"), nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestStripJSONComments(t *testing.T) {
	t.Parallel()

	in := `{"a": "x // y", /* gone */ "b": "\"/*\""} // tail` + "\n"
	assert.Equal(t, `{"a": "x // y",  "b": "\"/*\""} `+"\n", string(stripJSONComments([]byte(in))))
}

func TestConfigKinds(t *testing.T) {
	t.Parallel()

	assert.True(t, IsJSONConfig("a/.markdownlint.JSONC"))
	assert.False(t, IsJSONConfig(".markdownlint.yaml"))
	assert.True(t, IsJavaScriptConfig(".markdownlint-cli2.mjs"))
	assert.False(t, IsJavaScriptConfig(".markdownlint.json"))
	assert.Equal(t, "# mdstyle configuration\n# Migrated from: .markdownlint.json\n",
		GenerateMigrationHeader("/repo/.markdownlint.json"))
}
