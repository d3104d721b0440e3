package configloader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/mdstyle/pkg/config"
	"github.com/yaklabco/mdstyle/pkg/lint"
)

// MigrationResult contains the result of converting a markdownlint config.
type MigrationResult struct {
	// Config is the converted mdstyle configuration.
	Config *config.Config

	// Warnings contains settings that could not be carried over.
	Warnings []string

	// SourcePath is the path to the original markdownlint config.
	SourcePath string
}

// optionMapper converts the options object of one markdownlint rule into an
// mdstyle setting. ok is false when nothing could be mapped.
type optionMapper func(opts map[string]any, warn func(string)) (setting any, ok bool)

// ConvertMarkdownlintConfig converts a markdownlint config file to mdstyle
// format. Rule keys are resolved through registry; nil means
// lint.DefaultRegistry.
func ConvertMarkdownlintConfig(path string, registry *lint.Registry) (*MigrationResult, error) {
	if IsJavaScriptConfig(path) {
		return nil, fmt.Errorf("cannot convert JavaScript config file %q; create an mdstyle config with 'mdstyle init'", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var raw map[string]any
	if IsJSONConfig(path) {
		if err := parseJSONC(content, &raw); err != nil {
			return nil, fmt.Errorf("parse JSON: %w", err)
		}
	} else if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	result, err := ConvertMarkdownlint(raw, registry)
	if err != nil {
		return nil, err
	}
	result.SourcePath = path
	return result, nil
}

// ConvertMarkdownlint converts an already decoded markdownlint config.
func ConvertMarkdownlint(raw map[string]any, registry *lint.Registry) (*MigrationResult, error) {
	if registry == nil {
		registry = lint.DefaultRegistry
	}

	result := &MigrationResult{}
	warn := func(msg string) { result.Warnings = append(result.Warnings, msg) }

	cfg := config.NewConfig()
	defaults := cfg.Disabled
	cfg.Disabled = nil

	enabledByDefault := true
	if val, ok := raw["default"].(bool); ok {
		enabledByDefault = val
	}
	if extends, ok := raw["extends"].(string); ok {
		warn(fmt.Sprintf("'extends: %q' is not supported; merge that file by hand", extends))
	}

	// Tags go first so that explicit rule keys override them.
	keys := sortedKeys(raw)
	slices.SortStableFunc(keys, func(a, b string) int {
		return boolRank(isTag(registry, b)) - boolRank(isTag(registry, a))
	})

	state := make(map[string]bool)
	for _, key := range keys {
		switch key {
		case "default", "extends", "$schema":
			continue
		}
		value := raw[key]

		if def, ok := registry.Resolve(key); ok {
			state[def.ID] = valueToBool(value)
			if opts, isMap := value.(map[string]any); isMap {
				convertOptions(cfg, def, opts, warn)
			}
			continue
		}

		if isTag(registry, key) {
			for _, def := range registry.Definitions() {
				if slices.Contains(def.Tags, strings.ToLower(key)) {
					state[def.ID] = valueToBool(value)
				}
			}
			continue
		}

		warn(fmt.Sprintf("unknown key %q; skipping", key))
	}

	for _, def := range registry.Definitions() {
		enabled, set := state[def.ID]
		if !set {
			enabled = enabledByDefault && !slices.Contains(defaults, def.ID)
		}
		if !enabled {
			cfg.Disabled = append(cfg.Disabled, def.ID)
		}
	}

	result.Config = cfg
	return result, nil
}

func convertOptions(cfg *config.Config, def *lint.Definition, opts map[string]any, warn func(string)) {
	mapper, ok := optionMappers[def.ID]
	if !ok {
		if len(opts) > 0 {
			warn(fmt.Sprintf("%s: options are not supported (%s); using defaults", def.ID, strings.Join(sortedKeys(opts), ", ")))
		}
		return
	}

	ruleWarn := func(msg string) { warn(def.ID + ": " + msg) }
	if setting, ok := mapper(opts, ruleWarn); ok {
		cfg.Rules[def.ID] = setting
	}
}

var optionMappers = map[string]optionMapper{
	"MD003": styleMapper(map[string]string{
		"consistent": string(config.HeadingStyleAny),
		"atx":        string(config.HeadingStyleATX),
		"atx_closed": string(config.HeadingStyleATXClosed),
		"setext":     string(config.HeadingStyleSetext),
	}),
	"MD004": styleMapper(map[string]string{
		"consistent": string(config.ListStyleSingle),
		"asterisk":   string(config.ListStyleAsterisk),
		"plus":       string(config.ListStylePlus),
		"dash":       string(config.ListStyleDash),
		"sublist":    string(config.ListStyleCyclic),
	}),
	"MD007": intMapper("indent"),
	"MD013": intMapper("line_length"),
	"MD026": func(opts map[string]any, warn func(string)) (any, bool) {
		punct, ok := opts["punctuation"].(string)
		reportIgnored(opts, warn, "punctuation")
		return punct, ok
	},
	"MD029": styleMapper(map[string]string{
		"one_or_ordered": string(config.OrderedStyleAny),
		"one":            string(config.OrderedStyleOne),
		"ordered":        string(config.OrderedStyleOrdered),
	}),
	"MD030": func(opts map[string]any, warn func(string)) (any, bool) {
		spacing := make(map[string]any)
		for _, key := range []string{"ul_single", "ol_single", "ul_multi", "ol_multi"} {
			if val, ok := opts[key]; ok {
				spacing[key] = val
			}
		}
		reportIgnored(opts, warn, "ul_single", "ol_single", "ul_multi", "ol_multi")
		return spacing, len(spacing) > 0
	},
}

// styleMapper maps the "style" option through table.
func styleMapper(table map[string]string) optionMapper {
	return func(opts map[string]any, warn func(string)) (any, bool) {
		reportIgnored(opts, warn, "style")
		raw, ok := opts["style"].(string)
		if !ok {
			return nil, false
		}
		style, ok := table[strings.ToLower(raw)]
		if !ok {
			warn(fmt.Sprintf("style %q has no equivalent; using the default", raw))
			return nil, false
		}
		return style, true
	}
}

// intMapper maps a single integer option.
func intMapper(name string) optionMapper {
	return func(opts map[string]any, warn func(string)) (any, bool) {
		reportIgnored(opts, warn, name)
		raw, ok := opts[name]
		if !ok {
			return nil, false
		}
		n, err := config.DecodeInt(raw)
		if err != nil {
			warn(fmt.Sprintf("%s: %v", name, err))
			return nil, false
		}
		return n, true
	}
}

func reportIgnored(opts map[string]any, warn func(string), known ...string) {
	for _, key := range sortedKeys(opts) {
		if !slices.Contains(known, key) {
			warn(fmt.Sprintf("option %q is not supported; skipping", key))
		}
	}
}

func isTag(registry *lint.Registry, key string) bool {
	key = strings.ToLower(key)
	for _, def := range registry.Definitions() {
		if slices.Contains(def.Tags, key) {
			return true
		}
	}
	return false
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

// valueToBool reports whether a markdownlint rule value enables the rule.
// Objects and other non-boolean values enable it; null disables it.
func valueToBool(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case nil:
		return false
	default:
		return true
	}
}

// parseJSONC parses JSON with comments (JSONC format).
// It strips comments before parsing.
func parseJSONC(content []byte, target any) error {
	// Simple approach: try parsing as JSON first
	// JSON with comments will fail, but many .jsonc files are valid JSON
	if err := json.Unmarshal(content, target); err == nil {
		return nil
	}

	// Strip comments and try again
	stripped := stripJSONComments(content)
	if err := json.Unmarshal(stripped, target); err != nil {
		return fmt.Errorf("unmarshal stripped JSON: %w", err)
	}
	return nil
}

// stripJSONComments removes JavaScript-style comments from JSON content.
func stripJSONComments(content []byte) []byte {
	var result []byte
	inString := false
	inSingleComment := false
	inMultiComment := false

	for idx := 0; idx < len(content); idx++ {
		char := content[idx]

		if inSingleComment {
			if char == '\n' {
				inSingleComment = false
				result = append(result, char)
			}
			continue
		}

		if inMultiComment {
			if char == '*' && idx+1 < len(content) && content[idx+1] == '/' {
				inMultiComment = false
				idx++ // skip the closing /
			}
			continue
		}

		if inString {
			result = append(result, char)
			if char == '\\' && idx+1 < len(content) {
				idx++
				result = append(result, content[idx])
			} else if char == '"' {
				inString = false
			}
			continue
		}

		if char == '"' {
			inString = true
			result = append(result, char)
			continue
		}

		if char == '/' && idx+1 < len(content) {
			next := content[idx+1]
			if next == '/' {
				inSingleComment = true
				idx++
				continue
			}
			if next == '*' {
				inMultiComment = true
				idx++
				continue
			}
		}

		result = append(result, char)
	}

	return result
}

// GenerateMigrationHeader returns a header comment for migrated configs.
func GenerateMigrationHeader(sourcePath string) string {
	return fmt.Sprintf("# mdstyle configuration\n# Migrated from: %s\n", filepath.Base(sourcePath))
}

// IsJSONConfig reports whether path names a JSON or JSONC file.
func IsJSONConfig(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return true
	}
	return false
}

// IsJavaScriptConfig reports whether path names a JavaScript config, which
// cannot be converted.
func IsJavaScriptConfig(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".js", ".cjs", ".mjs":
		return true
	}
	return false
}
