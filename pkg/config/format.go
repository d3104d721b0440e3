package config

import (
	"fmt"
	"strings"
)

// FormatRuleID formats a rule identifier based on the given format.
// Falls back to the ID when the name is empty or the format is unknown.
func FormatRuleID(format RuleFormat, ruleID, ruleName string) string {
	if ruleName == "" {
		return ruleID
	}

	switch format {
	case RuleFormatName:
		return ruleName
	case RuleFormatCombined:
		return ruleID + "/" + ruleName
	case RuleFormatID:
		return ruleID
	default:
		return ruleID
	}
}

// ParseRuleFormat parses a --rule-format flag value.
func ParseRuleFormat(s string) (RuleFormat, error) {
	switch format := RuleFormat(strings.ToLower(s)); format {
	case RuleFormatName, RuleFormatID, RuleFormatCombined:
		return format, nil
	case "":
		return RuleFormatID, nil
	default:
		return "", fmt.Errorf("unknown rule format %q (want id, name or combined)", s)
	}
}

// ParseOutputFormat parses a --format flag value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch format := OutputFormat(strings.ToLower(s)); format {
	case FormatText, FormatJSON:
		return format, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text or json)", s)
	}
}
