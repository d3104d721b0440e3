package rules

import (
	"regexp"
	"strings"

	"github.com/yaklabco/mdstyle/pkg/document"
	"github.com/yaklabco/mdstyle/pkg/lint"
)

// NewTrailingSpacesRule creates MD009.
func NewTrailingSpacesRule() lint.Definition {
	return lint.Definition{
		Descriptor: lint.Descriptor{
			ID:          "MD009",
			Name:        "no-trailing-spaces",
			Description: "Trailing spaces",
			Tags:        []string{"whitespace"},
			Pattern:     regexp.MustCompile(`(?m)( +)\r?$`),
			Group:       1,
		},
		New: func(any, lint.Env) lint.Checker {
			return lint.CheckerFunc(func(_ *document.Document, start, end int) ([]lint.Finding, error) {
				return single(start, "%d spaces", end-start), nil
			})
		},
	}
}

// NewHardTabsRule creates MD010.
func NewHardTabsRule() lint.Definition {
	return lint.Definition{
		Descriptor: lint.Descriptor{
			ID:          "MD010",
			Name:        "no-hard-tabs",
			Description: "Hard tabs",
			Tags:        []string{"whitespace", "hard_tab"},
			Pattern:     regexp.MustCompile(`\t`),
		},
		New: func(any, lint.Env) lint.Checker {
			return lint.CheckerFunc(func(_ *document.Document, start, _ int) ([]lint.Finding, error) {
				return single(start, "hard tab found"), nil
			})
		},
	}
}

// NewMultipleBlankLinesRule creates MD012.
func NewMultipleBlankLinesRule() lint.Definition {
	return lint.Definition{
		Descriptor: lint.Descriptor{
			ID:          "MD012",
			Name:        "no-multiple-blanks",
			Description: "Multiple consecutive blank lines",
			Tags:        []string{"whitespace", "blank_lines"},
			Pattern:     regexp.MustCompile(`(?:\r?\n){3,}`),
		},
		New: func(any, lint.Env) lint.Checker {
			return lint.CheckerFunc(testMultipleBlankLines)
		},
	}
}

// testMultipleBlankLines reports at the first blank line of a run of line
// breaks.
func testMultipleBlankLines(doc *document.Document, start, end int) ([]lint.Finding, error) {
	run := doc.Content[start:end]
	first := strings.IndexByte(run, '\n') + 1
	return single(start+first, "%d blank lines", strings.Count(run, "\n")-1), nil
}
