package lint

import (
	"fmt"
	"sort"

	"github.com/yaklabco/mdstyle/pkg/config"
)

// ActiveRule pairs a rule with its validated setting.
type ActiveRule struct {
	Definition *Definition
	Setting    any
}

// Plan is the validated, typed form of a configuration: the active rules in
// registry order and the environment passed to their constructors. A Plan
// is immutable and may be shared by concurrent passes.
type Plan struct {
	Rules []ActiveRule
	Env   Env
}

// IDs returns the IDs of the active rules in execution order.
func (p *Plan) IDs() []string {
	out := make([]string, 0, len(p.Rules))
	for _, rule := range p.Rules {
		out = append(out, rule.Definition.ID)
	}
	return out
}

// Setting returns the typed setting of an active rule.
func (p *Plan) Setting(ruleID string) (any, bool) {
	for _, rule := range p.Rules {
		if rule.Definition.ID == ruleID {
			return rule.Setting, true
		}
	}
	return nil, false
}

// Compile validates cfg against the registry and builds a Plan.
//
// Rule keys may be IDs in any case, names, or aliases. Every disabled,
// enabled and configured key must name a registered rule, and every
// setting must decode, including settings of disabled rules. The first
// problem is returned as a *ConfigError.
func Compile(registry *Registry, cfg *config.Config) (*Plan, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	if cfg.TabSize <= 0 {
		return nil, &ConfigError{Section: "tab_size", Message: fmt.Sprintf("must be positive, got %d", cfg.TabSize)}
	}
	if cfg.WrapWidth <= 0 {
		return nil, &ConfigError{Section: "wrap_width", Message: fmt.Sprintf("must be positive, got %d", cfg.WrapWidth)}
	}

	disabled := make(map[string]bool)
	for _, list := range []struct {
		section string
		keys    []string
	}{
		{"disabled", cfg.Disabled},
		{"disable", cfg.DisableRules},
	} {
		for _, key := range list.keys {
			def, ok := registry.Resolve(key)
			if !ok {
				return nil, &ConfigError{Section: list.section, Key: key, Message: "does not name a rule", Err: ErrUnknownRule}
			}
			disabled[def.ID] = true
		}
	}
	for _, key := range cfg.EnableRules {
		def, ok := registry.Resolve(key)
		if !ok {
			return nil, &ConfigError{Section: "enable", Key: key, Message: "does not name a rule", Err: ErrUnknownRule}
		}
		delete(disabled, def.ID)
	}

	settings, err := decodeSettings(registry, cfg.Rules)
	if err != nil {
		return nil, err
	}

	plan := &Plan{
		Env: Env{TabSize: cfg.TabSize, WrapWidth: cfg.WrapWidth},
	}
	for _, def := range registry.Definitions() {
		if disabled[def.ID] {
			continue
		}
		setting, ok := settings[def.ID]
		if !ok {
			setting = def.Default
		}
		plan.Rules = append(plan.Rules, ActiveRule{Definition: def, Setting: setting})
	}

	return plan, nil
}

// decodeSettings decodes every entry of the rules section, keyed by ID.
func decodeSettings(registry *Registry, raw map[string]any) (map[string]any, error) {
	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make(map[string]any, len(raw))
	seenBy := make(map[string]string, len(raw))
	for _, key := range keys {
		def, ok := registry.Resolve(key)
		if !ok {
			return nil, &ConfigError{Section: "rules", Key: key, Message: "does not name a rule", Err: ErrUnknownRule}
		}
		if prev, dup := seenBy[def.ID]; dup {
			return nil, &ConfigError{Section: "rules", Key: key, Message: fmt.Sprintf("configures %s again (already set by %q)", def.ID, prev)}
		}
		seenBy[def.ID] = key

		if !def.HasSettings() {
			return nil, &ConfigError{Section: "rules", Key: key, Message: def.ID + " takes no settings"}
		}
		setting, err := def.Decode(raw[key])
		if err != nil {
			return nil, &ConfigError{Section: "rules", Key: key, Message: "invalid setting for " + def.ID, Err: err}
		}
		out[def.ID] = setting
	}
	return out, nil
}
