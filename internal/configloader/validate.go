package configloader

import (
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/yaklabco/mdstyle/pkg/config"
	"github.com/yaklabco/mdstyle/pkg/lint"
)

// ValidationError represents an invalid non-rule configuration field. Rule
// entries are checked by lint.Compile and reported as *lint.ConfigError.
type ValidationError struct {
	// Field is the config key or environment variable, e.g. "tab_size".
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the problem.
	Message string

	// FilePath is the config file containing the error, if known.
	FilePath string
}

func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// Validate checks the fields of cfg that lint.Compile does not. Rule keys
// are resolved against registry only to produce warnings.
func Validate(cfg *config.Config, registry *lint.Registry) ValidationResult {
	var result ValidationResult
	if cfg == nil {
		return result
	}

	if cfg.TabSize <= 0 {
		result.fail("tab_size", cfg.TabSize, "must be positive")
	}
	if cfg.WrapWidth <= 0 {
		result.fail("wrap_width", cfg.WrapWidth, "must be positive")
	}
	if cfg.Jobs < 0 {
		result.fail("jobs", cfg.Jobs, "must not be negative")
	}
	if cfg.External.Timeout < 0 {
		result.fail("external.timeout", cfg.External.Timeout, "must not be negative")
	}

	switch cfg.Flavor {
	case "", "gfm", "commonmark":
	default:
		result.fail("flavor", cfg.Flavor, "unknown flavor %q (want gfm or commonmark)", cfg.Flavor)
	}

	for i, pattern := range cfg.Ignore {
		if _, err := path.Match(pattern, ""); err != nil {
			result.fail(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob %q: %v", pattern, err)
		}
	}

	if registry != nil {
		disabled := resolveIDs(registry, cfg.Disabled, cfg.DisableRules)
		enabled := resolveIDs(registry, cfg.EnableRules)
		for _, key := range sortedKeys(cfg.Rules) {
			def, ok := registry.Resolve(key)
			if ok && disabled[def.ID] && !enabled[def.ID] {
				result.warn("rules."+key, cfg.Rules[key], "%s is configured but disabled", def.ID)
			}
		}
	}

	return result
}

func resolveIDs(registry *lint.Registry, lists ...[]string) map[string]bool {
	ids := make(map[string]bool)
	for _, list := range lists {
		for _, key := range list {
			if def, ok := registry.Resolve(key); ok {
				ids[def.ID] = true
			}
		}
	}
	return ids
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}
