package lint_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdstyle/pkg/config"
	"github.com/yaklabco/mdstyle/pkg/lint"
)

// settingRule is a literal rule whose message is its integer setting.
func settingRule() lint.Definition {
	def := literalRule("MD007", "ul-indent", `x`, "")
	def.Default = 0
	def.Decode = func(raw any) (any, error) {
		return config.DecodeInt(raw)
	}
	return def
}

func testRegistry(t *testing.T) *lint.Registry {
	t.Helper()

	reg := lint.NewRegistry()
	reg.MustRegister(literalRule("MD001", "heading-increment", `#`, "hash"))
	reg.MustRegister(settingRule())
	reg.MustRegister(literalRule("MD013", "line-length", `.`, "char"))
	return reg
}

func TestCompile_Defaults(t *testing.T) {
	plan, err := lint.Compile(testRegistry(t), config.NewConfig())
	require.NoError(t, err)

	assert.Equal(t, []string{"MD001", "MD007"}, plan.IDs())
	assert.Equal(t, lint.Env{TabSize: 4, WrapWidth: 80}, plan.Env)

	setting, ok := plan.Setting("MD007")
	require.True(t, ok)
	assert.Equal(t, 0, setting)

	_, ok = plan.Setting("MD013")
	assert.False(t, ok)
}

func TestCompile_NilConfig(t *testing.T) {
	plan, err := lint.Compile(testRegistry(t), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"MD001", "MD007"}, plan.IDs())
}

func TestCompile_Settings(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Rules["ul-indent"] = int64(2)

	plan, err := lint.Compile(testRegistry(t), cfg)
	require.NoError(t, err)

	setting, ok := plan.Setting("MD007")
	require.True(t, ok)
	assert.Equal(t, 2, setting)
}

func TestCompile_EnableDisable(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Disabled = []string{"md013", "heading-increment"}
	cfg.DisableRules = []string{"MD007"}
	cfg.EnableRules = []string{"line-length"}

	plan, err := lint.Compile(testRegistry(t), cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"MD013"}, plan.IDs())
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(cfg *config.Config)
		wantKey   string
		wantError string
		unknown   bool
	}{
		{
			name:      "unknown disabled rule",
			mutate:    func(cfg *config.Config) { cfg.Disabled = []string{"MD099"} },
			wantKey:   "MD099",
			wantError: "config disabled.MD099",
			unknown:   true,
		},
		{
			name:      "unknown enabled rule",
			mutate:    func(cfg *config.Config) { cfg.EnableRules = []string{"nope"} },
			wantKey:   "nope",
			wantError: "config enable.nope",
			unknown:   true,
		},
		{
			name:      "unknown rules key",
			mutate:    func(cfg *config.Config) { cfg.Rules["md100"] = 1 },
			wantKey:   "md100",
			wantError: "config rules.md100",
			unknown:   true,
		},
		{
			name:      "wrong shape",
			mutate:    func(cfg *config.Config) { cfg.Rules["MD007"] = "wide" },
			wantKey:   "MD007",
			wantError: "invalid setting for MD007",
		},
		{
			name:      "wrong shape on disabled rule",
			mutate:    func(cfg *config.Config) { cfg.Disabled = []string{"MD007"}; cfg.Rules["MD007"] = true },
			wantKey:   "MD007",
			wantError: "invalid setting for MD007",
		},
		{
			name:      "rule without settings",
			mutate:    func(cfg *config.Config) { cfg.Rules["MD001"] = 1 },
			wantKey:   "MD001",
			wantError: "takes no settings",
		},
		{
			name: "configured twice",
			mutate: func(cfg *config.Config) {
				cfg.Rules["MD007"] = 2
				cfg.Rules["ul-indent"] = 4
			},
			wantKey:   "ul-indent",
			wantError: "configures MD007 again",
		},
		{
			name:      "zero tab size",
			mutate:    func(cfg *config.Config) { cfg.TabSize = 0 },
			wantError: "config tab_size: must be positive",
		},
		{
			name:      "negative wrap width",
			mutate:    func(cfg *config.Config) { cfg.WrapWidth = -1 },
			wantError: "config wrap_width: must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.NewConfig()
			tt.mutate(cfg)

			plan, err := lint.Compile(testRegistry(t), cfg)
			require.Error(t, err)
			assert.Nil(t, plan)

			var cfgErr *lint.ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.wantKey, cfgErr.Key)
			assert.Contains(t, err.Error(), tt.wantError)
			assert.Equal(t, tt.unknown, errors.Is(err, lint.ErrUnknownRule))
		})
	}
}
