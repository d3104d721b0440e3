// Package config defines core configuration types for mdstyle.
// These types are pure data structures; discovery and layering live in
// internal/configloader.
package config

import "time"

// Default values for the editor-derived settings.
const (
	DefaultTabSize   = 4
	DefaultWrapWidth = 80

	// DefaultExternalTimeout bounds a single external linter run.
	DefaultExternalTimeout = 30 * time.Second
)

// OutputFormat specifies the output format for diagnostics.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// RuleFormat controls how rule identifiers appear in output.
type RuleFormat string

const (
	RuleFormatName     RuleFormat = "name"     // "no-trailing-spaces"
	RuleFormatID       RuleFormat = "id"       // "MD009"
	RuleFormatCombined RuleFormat = "combined" // "MD009/no-trailing-spaces"
)

// ExternalToolConfig configures the adapter that shells out to an external
// Markdown linter.
type ExternalToolConfig struct {
	// Executable is the linter binary. Empty means the platform default.
	Executable string `yaml:"executable,omitempty" toml:"executable,omitempty"`

	// Arguments are appended to the command line.
	Arguments []string `yaml:"arguments,omitempty" toml:"arguments,omitempty"`

	// Timeout bounds a single run. Zero means DefaultExternalTimeout.
	Timeout time.Duration `yaml:"timeout,omitempty" toml:"timeout,omitempty"`
}

// Config is the root configuration structure for mdstyle.
type Config struct {
	// Disabled lists rules (by ID, name or alias) that are never run.
	Disabled []string `yaml:"disabled" toml:"disabled"`

	// Rules holds raw per-rule settings keyed by rule ID, name or alias.
	// Each value is decoded by the owning rule when the config is compiled.
	Rules map[string]any `yaml:"rules,omitempty" toml:"rules,omitempty"`

	// TabSize is the unit used by indentation rules configured with 0.
	TabSize int `yaml:"tab_size" toml:"tab_size"`

	// WrapWidth is the line length used by MD013 when configured with 0.
	WrapWidth int `yaml:"wrap_width" toml:"wrap_width"`

	// Flavor selects the Markdown dialect used to find code blocks:
	// "gfm" (default) or "commonmark".
	Flavor string `yaml:"flavor,omitempty" toml:"flavor,omitempty"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore,omitempty" toml:"ignore,omitempty"`

	// External configures the external linter adapter.
	External ExternalToolConfig `yaml:"external,omitempty" toml:"external,omitempty"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `yaml:"-" toml:"-"`

	// RuleFormat controls how rule identifiers appear in output.
	RuleFormat RuleFormat `yaml:"-" toml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-" toml:"-"`

	// DisableRules contains rule keys disabled from the command line.
	DisableRules []string `yaml:"-" toml:"-"`

	// EnableRules contains rule keys re-enabled from the command line.
	// They override both Disabled and DisableRules.
	EnableRules []string `yaml:"-" toml:"-"`
}

// NewConfig returns a Config with the editor defaults.
func NewConfig() *Config {
	return &Config{
		Disabled:   []string{"MD013"},
		Rules:      make(map[string]any),
		TabSize:    DefaultTabSize,
		WrapWidth:  DefaultWrapWidth,
		Format:     FormatText,
		RuleFormat: RuleFormatID,
	}
}

// ExternalTimeout returns the configured external timeout or the default.
func (c *Config) ExternalTimeout() time.Duration {
	if c == nil || c.External.Timeout <= 0 {
		return DefaultExternalTimeout
	}
	return c.External.Timeout
}
