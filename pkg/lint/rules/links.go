package rules

import (
	"regexp"

	"github.com/yaklabco/mdstyle/pkg/document"
	"github.com/yaklabco/mdstyle/pkg/lint"
)

// NewReversedLinkRule creates MD011.
func NewReversedLinkRule() lint.Definition {
	return lint.Definition{
		Descriptor: lint.Descriptor{
			ID:          "MD011",
			Name:        "no-reversed-links",
			Description: "Reversed link syntax",
			Tags:        []string{"links"},
			Pattern:     regexp.MustCompile(`\(.*?\)\[.*?\]`),
		},
		New: func(any, lint.Env) lint.Checker {
			return lint.CheckerFunc(func(_ *document.Document, start, _ int) ([]lint.Finding, error) {
				return single(start, "reversed link syntax found"), nil
			})
		},
	}
}
