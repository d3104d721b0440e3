package lint

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownRule indicates a configuration key that names no rule.
	ErrUnknownRule = errors.New("unknown rule")

	// ErrRulePanic indicates a checker panicked during a pass.
	ErrRulePanic = errors.New("rule panicked")

	// ErrNilPlan indicates Lint was called without a compiled plan.
	ErrNilPlan = errors.New("nil plan")
)

// ConfigError reports a configuration entry that cannot be compiled into a
// Plan. Key is the offending key as written by the user.
type ConfigError struct {
	Section string // "disabled", "rules", "enable", "tab_size", ...
	Key     string
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	var where string
	switch {
	case e.Key == "":
		where = e.Section
	case e.Section == "":
		where = e.Key
	default:
		where = e.Section + "." + e.Key
	}
	if e.Err != nil {
		return fmt.Sprintf("config %s: %s: %v", where, e.Message, e.Err)
	}
	return fmt.Sprintf("config %s: %s", where, e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// RuleError wraps a checker failure with the rule that raised it.
type RuleError struct {
	RuleID string
	Offset int
	Err    error
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("rule %s at offset %d: %v", e.RuleID, e.Offset, e.Err)
}

func (e *RuleError) Unwrap() error {
	return e.Err
}
