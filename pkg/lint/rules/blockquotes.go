package rules

import (
	"regexp"
	"strings"

	"github.com/yaklabco/mdstyle/pkg/document"
	"github.com/yaklabco/mdstyle/pkg/lint"
)

// quotedListItem matches a blockquote line holding a list item; group 1 is
// the spaces after '>' and group 2 the marker.
var quotedListItem = regexp.MustCompile(`^ {0,4}>( {2,})([-+*]|[0-9]+\.)\s`)

// NewMultipleSpaceBlockquoteRule creates MD027.
func NewMultipleSpaceBlockquoteRule() lint.Definition {
	return lint.Definition{
		Descriptor: lint.Descriptor{
			ID:          "MD027",
			Name:        "no-multiple-space-blockquote",
			Description: "Multiple spaces after blockquote symbol",
			Tags:        []string{"blockquote", "whitespace", "indentation"},
			Pattern:     regexp.MustCompile(`(?m)^ {0,4}> {2,}`),
		},
		New: func(any, lint.Env) lint.Checker {
			return lint.CheckerFunc(testBlockquoteSpacing)
		},
	}
}

// testBlockquoteSpacing accepts indented list items inside a blockquote and
// lines indented exactly as the content of the nearest such item above in
// the same blockquote. Everything else with two or more spaces is flagged.
func testBlockquoteSpacing(doc *document.Document, start, end int) ([]lint.Finding, error) {
	idx := doc.LineIndex(start)
	if quotedListItem.MatchString(doc.Line(idx)) {
		return nil, nil
	}

	text := doc.Content[start:end]
	spaces := len(text) - strings.IndexByte(text, '>') - 1

	expected := 0
	for above := idx - 1; doc.HasLine(above) && isQuoteLine(doc.Line(above)); above-- {
		if m := quotedListItem.FindStringSubmatch(doc.Line(above)); m != nil {
			expected = len(m[1]) + len(m[2]) + 1
			break
		}
	}

	if spaces != expected {
		return single(start, "too many spaces"), nil
	}
	return nil, nil
}

// NewNoBlanksBlockquoteRule creates MD028.
func NewNoBlanksBlockquoteRule() lint.Definition {
	return lint.Definition{
		Descriptor: lint.Descriptor{
			ID:          "MD028",
			Name:        "no-blanks-blockquote",
			Description: "Blank line inside blockquote",
			Tags:        []string{"blockquote", "whitespace"},
			Pattern:     regexp.MustCompile(`(?m)^ {0,4}>.*$`),
		},
		New: func(any, lint.Env) lint.Checker {
			return &blanksBlockquoteChecker{last: -1}
		},
	}
}

// blanksBlockquoteChecker remembers the previous quote line and reports
// when only blank lines separate it from the current one.
type blanksBlockquoteChecker struct {
	last int
}

func (c *blanksBlockquoteChecker) Test(doc *document.Document, start, _ int) ([]lint.Finding, error) {
	idx := doc.LineIndex(start)
	prev := c.last
	c.last = idx

	if prev < 0 || idx-prev < 2 {
		return nil, nil
	}
	for between := prev + 1; between < idx; between++ {
		if !doc.IsBlankLine(between) {
			return nil, nil
		}
	}
	return single(doc.Lines[prev].NewlineStart, "found one"), nil
}
