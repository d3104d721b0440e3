package configloader

import (
	"slices"

	"github.com/yaklabco/mdstyle/pkg/config"
	"github.com/yaklabco/mdstyle/pkg/lint"
)

// merge layers override on top of base:
//   - scalars replace base when non-zero
//   - slices replace base when non-nil, so "disabled: []" re-enables MD013
//   - rule settings merge per rule
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.Disabled != nil {
		result.Disabled = slices.Clone(override.Disabled)
	}
	if override.TabSize != 0 {
		result.TabSize = override.TabSize
	}
	if override.WrapWidth != 0 {
		result.WrapWidth = override.WrapWidth
	}
	if override.Flavor != "" {
		result.Flavor = override.Flavor
	}
	if override.Ignore != nil {
		result.Ignore = slices.Clone(override.Ignore)
	}

	if override.External.Executable != "" {
		result.External.Executable = override.External.Executable
	}
	if override.External.Arguments != nil {
		result.External.Arguments = slices.Clone(override.External.Arguments)
	}
	if override.External.Timeout != 0 {
		result.External.Timeout = override.External.Timeout
	}

	if override.Format != "" {
		result.Format = override.Format
	}
	if override.RuleFormat != "" {
		result.RuleFormat = override.RuleFormat
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	result.DisableRules = append(result.DisableRules, override.DisableRules...)
	result.EnableRules = append(result.EnableRules, override.EnableRules...)

	if len(override.Rules) > 0 && result.Rules == nil {
		result.Rules = make(map[string]any, len(override.Rules))
	}
	for key, setting := range override.Rules {
		result.Rules[key] = setting
	}

	return result
}

// normalizeRuleKeys rewrites rule setting keys that name a registered rule
// to its ID, so layers that spell a rule differently merge onto one entry.
// Unknown keys are kept for lint.Compile to report. Within one layer, two
// keys for the same rule are both kept so the conflict is reported too.
func normalizeRuleKeys(cfg *config.Config, registry *lint.Registry) {
	if cfg == nil || len(cfg.Rules) == 0 {
		return
	}

	counts := make(map[string]int, len(cfg.Rules))
	for key := range cfg.Rules {
		if def, ok := registry.Resolve(key); ok {
			counts[def.ID]++
		}
	}

	normalized := make(map[string]any, len(cfg.Rules))
	for key, setting := range cfg.Rules {
		def, ok := registry.Resolve(key)
		if !ok || counts[def.ID] > 1 {
			normalized[key] = setting
			continue
		}
		normalized[def.ID] = setting
	}
	cfg.Rules = normalized
}
