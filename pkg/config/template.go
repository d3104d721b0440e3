package config

import (
	"bytes"
	"fmt"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// Template file formats.
const (
	TemplateYAML = "yaml"
	TemplateTOML = "toml"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full documents every rule. If false, generates a minimal template.
	Full bool

	// Format is the output format: "yaml" or "toml".
	Format string

	// Rules describes the registered rules, in registry order.
	Rules []RuleInfo
}

// RuleInfo contains rule metadata for template generation. It is filled in
// by the caller from the lint registry to keep this package free of
// engine imports.
type RuleInfo struct {
	ID          string
	Name        string
	Description string
	Tags        []string

	// Setting is the default setting rendered as a config value, or ""
	// for rules without settings.
	Setting string

	// Disabled reports whether the rule is in the default disabled list.
	Disabled bool
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	switch opts.Format {
	case "", TemplateYAML:
		return generateYAMLTemplate(opts), nil
	case TemplateTOML:
		return generateTOMLTemplate(opts), nil
	default:
		return nil, fmt.Errorf("unsupported template format %q (want yaml or toml)", opts.Format)
	}
}

func generateYAMLTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Rules that never run (IDs, names or aliases).
disabled:
  - MD013

# Indentation unit used by MD007 when configured with 0.
tab_size: 4

# Line length used by MD013 when configured with 0.
wrap_width: 80

# File patterns to ignore (glob patterns)
# ignore:
#   - "vendor/**"

# External linter used by "mdstyle lint --external".
# external:
#   executable: mdl
#   arguments: ["--style", "relaxed"]
#   timeout: 30s
`)

	if !opts.Full {
		buf.WriteString(`
# Rule-specific settings
# rules:
#   MD003: any
#   MD030:
#     ul_single: 1
#     ol_single: 1
#     ul_multi: 1
#     ol_multi: 1
`)
		return buf.Bytes()
	}

	buf.WriteString("\n# Rule-specific settings\nrules:\n")
	for _, rule := range opts.Rules {
		fmt.Fprintf(&buf, "\n  # %s: %s\n", rule.ID, rule.Name)
		fmt.Fprintf(&buf, "  # %s\n", wrapComment(rule.Description, commentWrapWidth, "  # "))
		if len(rule.Tags) > 0 {
			fmt.Fprintf(&buf, "  # Tags: %s\n", strings.Join(rule.Tags, ", "))
		}
		if rule.Disabled {
			buf.WriteString("  # Disabled by default.\n")
		}
		if rule.Setting == "" {
			continue
		}
		fmt.Fprintf(&buf, "  %s: %s\n", rule.ID, rule.Setting)
	}

	return buf.Bytes()
}

func generateTOMLTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Rules that never run (IDs, names or aliases).
disabled = ["MD013"]

# Indentation unit used by MD007 when configured with 0.
tab_size = 4

# Line length used by MD013 when configured with 0.
wrap_width = 80

# File patterns to ignore (glob patterns)
# ignore = ["vendor/**"]
`)

	if !opts.Full {
		buf.WriteString(`
# Rule-specific settings
# [rules]
# MD003 = "any"
`)
		return buf.Bytes()
	}

	buf.WriteString("\n[rules]\n")
	for _, rule := range opts.Rules {
		fmt.Fprintf(&buf, "\n# %s: %s\n", rule.ID, rule.Name)
		fmt.Fprintf(&buf, "# %s\n", wrapComment(rule.Description, commentWrapWidth, "# "))
		if rule.Setting == "" {
			continue
		}
		fmt.Fprintf(&buf, "%s = %s\n", rule.ID, yamlToTOMLValue(rule.Setting))
	}

	return buf.Bytes()
}

// yamlToTOMLValue rewrites the small set of setting shapes rendered by the
// rules: bare words, quoted strings, integers and flow mappings.
func yamlToTOMLValue(setting string) string {
	switch {
	case strings.HasPrefix(setting, "{"):
		return strings.ReplaceAll(strings.ReplaceAll(setting, ": ", " = "), "{", "{ ")
	case strings.HasPrefix(setting, `"`), isDigits(setting):
		return setting
	default:
		return fmt.Sprintf("%q", setting)
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int, prefix string) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	currentLine := ""

	for _, word := range strings.Fields(text) {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n"+prefix)
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# mdstyle configuration
# See: https://github.com/yaklabco/mdstyle`
}
