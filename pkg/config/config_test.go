package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdstyle/pkg/config"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := config.NewConfig()

	assert.Equal(t, []string{"MD013"}, cfg.Disabled)
	assert.Equal(t, config.DefaultTabSize, cfg.TabSize)
	assert.Equal(t, config.DefaultWrapWidth, cfg.WrapWidth)
	assert.Equal(t, config.FormatText, cfg.Format)
	assert.Equal(t, config.RuleFormatID, cfg.RuleFormat)
	assert.NotNil(t, cfg.Rules)
	assert.Equal(t, config.DefaultExternalTimeout, cfg.ExternalTimeout())
}

func TestConfig_ExternalTimeout(t *testing.T) {
	cfg := config.NewConfig()
	cfg.External.Timeout = 5 * time.Second
	assert.Equal(t, 5*time.Second, cfg.ExternalTimeout())
}

func TestFromYAML(t *testing.T) {
	data := []byte(`
disabled: [MD013, no-hard-tabs]
tab_size: 2
wrap_width: 100
rules:
  md003: atx
  MD030:
    ul_single: 3
external:
  executable: /usr/local/bin/mdl
  arguments: ["--style", "relaxed"]
  timeout: 10s
`)

	cfg, err := config.FromYAML(data)
	require.NoError(t, err)

	assert.Equal(t, []string{"MD013", "no-hard-tabs"}, cfg.Disabled)
	assert.Equal(t, 2, cfg.TabSize)
	assert.Equal(t, 100, cfg.WrapWidth)
	assert.Equal(t, "atx", cfg.Rules["md003"])
	assert.Equal(t, map[string]any{"ul_single": 3}, cfg.Rules["MD030"])
	assert.Equal(t, "/usr/local/bin/mdl", cfg.External.Executable)
	assert.Equal(t, []string{"--style", "relaxed"}, cfg.External.Arguments)
	assert.Equal(t, 10*time.Second, cfg.External.Timeout)
}

func TestFromYAML_Invalid(t *testing.T) {
	_, err := config.FromYAML([]byte("tab_size: [1, 2"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse yaml")
}

func TestFromTOML(t *testing.T) {
	data := []byte(`
disabled = ["MD013"]
tab_size = 8

[rules]
MD004 = "dash"
MD007 = 2

[rules.MD030]
ol_multi = 2
`)

	cfg, err := config.FromTOML(data)
	require.NoError(t, err)

	assert.Equal(t, []string{"MD013"}, cfg.Disabled)
	assert.Equal(t, 8, cfg.TabSize)
	assert.Equal(t, "dash", cfg.Rules["MD004"])
	assert.Equal(t, int64(2), cfg.Rules["MD007"])
	assert.Equal(t, map[string]any{"ol_multi": int64(2)}, cfg.Rules["MD030"])
}

func TestFromTOML_UnknownKey(t *testing.T) {
	_, err := config.FromTOML([]byte("tabsize = 4\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tabsize")
}

func TestConfig_YAMLRoundTrip(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Rules["MD003"] = "setext"
	cfg.Ignore = []string{"vendor/**"}

	data, err := cfg.ToYAML()
	require.NoError(t, err)

	parsed, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, cfg.Disabled, parsed.Disabled)
	assert.Equal(t, cfg.TabSize, parsed.TabSize)
	assert.Equal(t, "setext", parsed.Rules["MD003"])
	assert.Equal(t, cfg.Ignore, parsed.Ignore)
}

func TestConfig_ToTOML(t *testing.T) {
	cfg := config.NewConfig()

	data, err := cfg.ToTOML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "tab_size = 4")
	assert.Contains(t, string(data), `disabled = ["MD013"]`)
}

func TestConfig_Clone(t *testing.T) {
	orig := config.NewConfig()
	orig.Rules["MD030"] = map[string]any{"ul_single": 1}
	orig.External.Arguments = []string{"-s"}

	clone := orig.Clone()
	require.NotNil(t, clone)

	clone.Disabled[0] = "MD001"
	clone.Rules["MD030"].(map[string]any)["ul_single"] = 2
	clone.External.Arguments[0] = "-x"

	assert.Equal(t, "MD013", orig.Disabled[0])
	assert.Equal(t, 1, orig.Rules["MD030"].(map[string]any)["ul_single"])
	assert.Equal(t, "-s", orig.External.Arguments[0])

	var nilCfg *config.Config
	assert.Nil(t, nilCfg.Clone())
}
