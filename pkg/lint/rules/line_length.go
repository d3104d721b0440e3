package rules

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/mdstyle/pkg/document"
	"github.com/yaklabco/mdstyle/pkg/lint"
)

// quoteOrListLine matches lines that are exempt from the length check.
var quoteOrListLine = regexp.MustCompile(`^[ ]*[>+\-*].+$`)

// NewLineLengthRule creates MD013.
func NewLineLengthRule() lint.Definition {
	return lint.Definition{
		Descriptor: lint.Descriptor{
			ID:          "MD013",
			Name:        "line-length",
			Description: "Line length",
			Tags:        []string{"line_length"},
			Pattern:     regexp.MustCompile(`(?m)^.+$`),
		},
		Default: 0,
		Decode:  decodeNonNegative,
		Render:  renderInt,
		New: func(setting any, env lint.Env) lint.Checker {
			width := setting.(int)
			if width == 0 {
				width = env.WrapWidth
			}
			return lint.CheckerFunc(func(doc *document.Document, start, end int) ([]lint.Finding, error) {
				line := strings.TrimSuffix(doc.Content[start:end], "\r")
				if quoteOrListLine.MatchString(line) {
					return nil, nil
				}
				if n := utf8.RuneCountInString(line); n > width {
					return single(start, "%d characters", n), nil
				}
				return nil, nil
			})
		},
	}
}
