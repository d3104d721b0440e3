// Package lint provides the rule engine, diagnostics, and registry for mdstyle.
package lint

import (
	"regexp"

	"github.com/yaklabco/mdstyle/pkg/document"
)

// Diagnostic represents a single style violation found in a document.
type Diagnostic struct {
	// Offset is the zero-based byte offset the violation is reported at.
	Offset int

	// RuleID is the identifier of the rule that produced this diagnostic.
	RuleID string

	// RuleName is the human-readable name of the rule (e.g., "no-trailing-spaces").
	RuleName string

	// Description is the rule's one-line description.
	Description string

	// Message is the rule-specific payload ("3 spaces", "expected atx").
	Message string

	// FilePath is the path to the linted document. Empty for stdin.
	FilePath string

	// Line and Column are the 1-based position of Offset. They are filled
	// in by the engine after all rules have run.
	Line   int
	Column int
}

// Finding is what a checker reports for one match: an offset and a message.
type Finding struct {
	Offset  int
	Message string
}

// Checker is the per-pass state machine of a rule.
//
// The engine calls Test once for every locator match that survives scope
// filtering, in increasing offset order. start and end delimit the selected
// capture group. Checkers may read the whole document, including text past
// end, and may keep state between calls. Errors abort the pass.
type Checker interface {
	Test(doc *document.Document, start, end int) ([]Finding, error)
}

// CheckerFunc adapts a function to the Checker interface for stateless rules.
type CheckerFunc func(doc *document.Document, start, end int) ([]Finding, error)

// Test calls f.
func (f CheckerFunc) Test(doc *document.Document, start, end int) ([]Finding, error) {
	return f(doc, start, end)
}

// Env carries document-independent values that some rules fall back to.
type Env struct {
	// TabSize is the indentation unit for rules configured with 0.
	TabSize int

	// WrapWidth is the line length for rules configured with 0.
	WrapWidth int

	// Scope is the structure of the document being linted. The engine
	// sets it for every pass; it is nil in a Plan.
	Scope Scope
}

// Descriptor is the static identity of a rule and how the engine feeds it.
type Descriptor struct {
	// ID is the unique identifier (e.g., "MD001").
	ID string

	// Name is the human-readable name (e.g., "heading-increment").
	Name string

	// Description is a one-line description of the check.
	Description string

	// Tags categorize the rule (e.g., "headings", "whitespace").
	Tags []string

	// Aliases are additional keys accepted in configuration.
	Aliases []string

	// Pattern is the locator. Scan flags are embedded in the pattern
	// (for example "(?m)").
	Pattern *regexp.Regexp

	// Group selects the capture group whose span is passed to Test.
	// Zero selects the whole match.
	Group int

	// EarlyStop stops feeding matches after the first processed one.
	EarlyStop bool

	// BlockAware lets the rule see matches inside code blocks.
	BlockAware bool
}

// Definition is a registry entry: a descriptor plus everything needed to
// build a fresh checker for a pass.
type Definition struct {
	Descriptor

	// Default is the typed setting used when the config has no entry.
	// Nil for rules without settings.
	Default any

	// Decode converts a raw config value to the typed setting. Nil for
	// rules that accept no settings.
	Decode func(raw any) (any, error)

	// Render formats a typed setting as a config value for templates.
	Render func(setting any) string

	// New builds the per-pass checker. It must not share mutable state
	// between calls.
	New func(setting any, env Env) Checker
}

// HasSettings reports whether the rule accepts configuration.
func (d *Definition) HasSettings() bool {
	return d.Decode != nil
}

// RenderDefault renders the default setting, or "" when the rule has none.
func (d *Definition) RenderDefault() string {
	if d.Render == nil || d.Default == nil {
		return ""
	}
	return d.Render(d.Default)
}
