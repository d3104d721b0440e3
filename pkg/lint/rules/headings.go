package rules

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/mdstyle/pkg/config"
	"github.com/yaklabco/mdstyle/pkg/document"
	"github.com/yaklabco/mdstyle/pkg/lint"
)

// headingLinePattern matches a whole ATX heading line or a setext underline.
var headingLinePattern = regexp.MustCompile(`(?m)^(-+|=+|#{1,6}(?:[^#\n].*)?)$`)

// closedATXPattern matches a closed ATX heading; group 1 is the text between
// the hashes.
var closedATXPattern = regexp.MustCompile(`(?m)^#{1,6}([^#\n].*?)#+$`)

// NewHeadingIncrementRule creates MD001.
func NewHeadingIncrementRule() lint.Definition {
	return lint.Definition{
		Descriptor: lint.Descriptor{
			ID:          "MD001",
			Name:        "heading-increment",
			Description: "Header levels should only increment by one level at a time",
			Tags:        []string{"headings"},
			Pattern:     regexp.MustCompile(`(?m)^(#{1,6})(?:[^#\n]|$)`),
			Group:       1,
		},
		New: func(any, lint.Env) lint.Checker {
			return &headingIncrementChecker{}
		},
	}
}

type headingIncrementChecker struct {
	prev int
}

func (c *headingIncrementChecker) Test(_ *document.Document, start, end int) ([]lint.Finding, error) {
	level := end - start
	prev := c.prev
	c.prev = level

	if prev > 0 && level > prev+1 {
		return single(start, "expected %d, %d found", prev+1, level), nil
	}
	return nil, nil
}

// NewFirstHeadingRule creates MD002.
func NewFirstHeadingRule() lint.Definition {
	return lint.Definition{
		Descriptor: lint.Descriptor{
			ID:          "MD002",
			Name:        "first-heading-h1",
			Description: "First header should be a h1 header",
			Tags:        []string{"headings"},
			Aliases:     []string{"first-header-h1"},
			Pattern:     regexp.MustCompile(`(?m)^(?:#{1,6}(?:[^#\n]|$)|-+$|=+$)`),
			EarlyStop:   true,
		},
		New: func(any, lint.Env) lint.Checker {
			return lint.CheckerFunc(testFirstHeading)
		},
	}
}

func testFirstHeading(doc *document.Document, start, end int) ([]lint.Finding, error) {
	text := doc.Content[start:end]
	switch text[0] {
	case '#':
		if level := len(text) - len(strings.TrimLeft(text, "#")); level != 1 {
			return single(start, "level %d found", level), nil
		}
	case '-':
		return single(start, "level 2 found"), nil
	}
	return nil, nil
}

// NewHeadingStyleRule creates MD003.
func NewHeadingStyleRule() lint.Definition {
	return lint.Definition{
		Descriptor: lint.Descriptor{
			ID:          "MD003",
			Name:        "heading-style",
			Description: "Header style",
			Tags:        []string{"headings"},
			Aliases:     []string{"header-style"},
			Pattern:     headingLinePattern,
			Group:       1,
		},
		Default: config.HeadingStyleAny,
		Decode: func(raw any) (any, error) {
			return config.ParseHeadingStyle(raw)
		},
		Render: renderString,
		New: func(setting any, _ lint.Env) lint.Checker {
			return &headingStyleChecker{style: setting.(config.HeadingStyle)}
		},
	}
}

type headingStyleChecker struct {
	style  config.HeadingStyle
	locked lock[config.HeadingStyle]
}

func (c *headingStyleChecker) Test(doc *document.Document, start, end int) ([]lint.Finding, error) {
	text := doc.Content[start:end]
	observed := classifyHeading(text)

	style := c.style
	if style == config.HeadingStyleAny {
		c.locked.set(observed)
		style, _ = c.locked.get()
	}

	if observed != style {
		return single(start, "expected %s", style), nil
	}
	return nil, nil
}

// classifyHeading returns the style of a line matched by headingLinePattern.
func classifyHeading(text string) config.HeadingStyle {
	if isSetextUnderline(text) {
		return config.HeadingStyleSetext
	}
	if strings.TrimLeft(text, "#") != "" && strings.HasSuffix(text, "#") {
		return config.HeadingStyleATXClosed
	}
	return config.HeadingStyleATX
}

// NewNoMissingSpaceATXRule creates MD018.
func NewNoMissingSpaceATXRule() lint.Definition {
	return lint.Definition{
		Descriptor: lint.Descriptor{
			ID:          "MD018",
			Name:        "no-missing-space-atx",
			Description: "No space after hash on atx style header",
			Tags:        []string{"headings", "atx", "spaces"},
			Pattern:     regexp.MustCompile(`(?m)^#{1,6}[^#\s].*$`),
		},
		New: func(any, lint.Env) lint.Checker {
			return openATXChecker("no space")
		},
	}
}

// NewNoMultipleSpaceATXRule creates MD019.
func NewNoMultipleSpaceATXRule() lint.Definition {
	return lint.Definition{
		Descriptor: lint.Descriptor{
			ID:          "MD019",
			Name:        "no-multiple-space-atx",
			Description: "Multiple spaces after hash on atx style header",
			Tags:        []string{"headings", "atx", "spaces"},
			Pattern:     regexp.MustCompile(`(?m)^#{1,6}[ \t]{2,}.*$`),
		},
		New: func(any, lint.Env) lint.Checker {
			return openATXChecker("too many spaces")
		},
	}
}

// openATXChecker reports every matched line that is not a closed heading.
func openATXChecker(message string) lint.Checker {
	return lint.CheckerFunc(func(doc *document.Document, start, end int) ([]lint.Finding, error) {
		line := strings.TrimSuffix(doc.Content[start:end], "\r")
		if strings.HasSuffix(line, "#") {
			return nil, nil
		}
		return single(start, "%s", message), nil
	})
}

// NewNoMissingSpaceClosedATXRule creates MD020.
func NewNoMissingSpaceClosedATXRule() lint.Definition {
	return lint.Definition{
		Descriptor: lint.Descriptor{
			ID:          "MD020",
			Name:        "no-missing-space-closed-atx",
			Description: "No space inside hashes on closed atx style header",
			Tags:        []string{"headings", "atx_closed", "spaces"},
			Pattern:     closedATXPattern,
			Group:       1,
		},
		New: func(any, lint.Env) lint.Checker {
			return lint.CheckerFunc(func(doc *document.Document, start, end int) ([]lint.Finding, error) {
				inner := doc.Content[start:end]
				switch {
				case inner[0] != ' ':
					return single(start, "no space on the left"), nil
				case inner[len(inner)-1] != ' ':
					return single(start, "no space on the right"), nil
				}
				return nil, nil
			})
		},
	}
}

// NewNoMultipleSpaceClosedATXRule creates MD021.
func NewNoMultipleSpaceClosedATXRule() lint.Definition {
	return lint.Definition{
		Descriptor: lint.Descriptor{
			ID:          "MD021",
			Name:        "no-multiple-space-closed-atx",
			Description: "Multiple spaces inside hashes on closed atx style header",
			Tags:        []string{"headings", "atx_closed", "spaces"},
			Pattern:     closedATXPattern,
			Group:       1,
		},
		New: func(any, lint.Env) lint.Checker {
			return lint.CheckerFunc(func(doc *document.Document, start, end int) ([]lint.Finding, error) {
				inner := doc.Content[start:end]
				if len(inner) > 1 && (strings.HasPrefix(inner, "  ") || strings.HasSuffix(inner, "  ")) {
					return single(start, "too many spaces"), nil
				}
				return nil, nil
			})
		},
	}
}

// NewBlanksAroundHeadingsRule creates MD022.
func NewBlanksAroundHeadingsRule() lint.Definition {
	return lint.Definition{
		Descriptor: lint.Descriptor{
			ID:          "MD022",
			Name:        "blanks-around-headings",
			Description: "Headers should be surrounded by blank lines",
			Tags:        []string{"headings", "blank_lines"},
			Aliases:     []string{"blanks-around-headers"},
			Pattern:     headingLinePattern,
		},
		New: func(_ any, env lint.Env) lint.Checker {
			scope := scopeOf(env)
			return lint.CheckerFunc(func(doc *document.Document, start, end int) ([]lint.Finding, error) {
				return testBlanksAroundHeading(doc, scope, start, end), nil
			})
		},
	}
}

func testBlanksAroundHeading(doc *document.Document, scope lint.Scope, start, _ int) []lint.Finding {
	idx := doc.LineIndex(start)
	first := idx
	if isSetextUnderline(doc.Content[start:]) && idx > 0 && !doc.IsBlankLine(idx-1) {
		first = idx - 1
	}

	offset := doc.Lines[first].StartOffset
	if prev := first - 1; prev >= 0 && !doc.IsBlankLine(prev) && !scope.InFrontMatter(doc.Lines[prev].StartOffset) {
		return single(offset, "blank line required before this line")
	}

	if next := idx + 1; doc.HasLine(next) && !doc.IsTrailingEmptyLine(next) && !doc.IsBlankLine(next) {
		return single(offset, "blank line required after this line")
	}

	return nil
}

// NewHeadingStartLeftRule creates MD023.
func NewHeadingStartLeftRule() lint.Definition {
	return lint.Definition{
		Descriptor: lint.Descriptor{
			ID:          "MD023",
			Name:        "heading-start-left",
			Description: "Headers must start at the beginning of the line",
			Tags:        []string{"headings", "spaces"},
			Aliases:     []string{"header-start-left"},
			Pattern:     regexp.MustCompile(`(?m)^( +)(?:-+|=+|#{1,6}(?:[^#\n].*)?)$`),
			Group:       1,
		},
		New: func(any, lint.Env) lint.Checker {
			return lint.CheckerFunc(func(_ *document.Document, start, end int) ([]lint.Finding, error) {
				return single(start, "%d spaces found", end-start), nil
			})
		},
	}
}

// NewNoDuplicateHeadingRule creates MD024.
func NewNoDuplicateHeadingRule() lint.Definition {
	return lint.Definition{
		Descriptor: lint.Descriptor{
			ID:          "MD024",
			Name:        "no-duplicate-heading",
			Description: "Multiple headers with the same content",
			Tags:        []string{"headings"},
			Aliases:     []string{"no-duplicate-header"},
			Pattern:     headingLinePattern,
			Group:       1,
		},
		New: func(any, lint.Env) lint.Checker {
			return &duplicateHeadingChecker{seen: make(map[string]struct{})}
		},
	}
}

type duplicateHeadingChecker struct {
	seen map[string]struct{}
}

func (c *duplicateHeadingChecker) Test(doc *document.Document, start, end int) ([]lint.Finding, error) {
	title := headingTitle(doc, start, end)
	if title == "" {
		return nil, nil
	}
	if _, dup := c.seen[title]; dup {
		return single(start, "%s duplicated", quote(title)), nil
	}
	c.seen[title] = struct{}{}
	return nil, nil
}

// NewSingleH1Rule creates MD025.
func NewSingleH1Rule() lint.Definition {
	return lint.Definition{
		Descriptor: lint.Descriptor{
			ID:          "MD025",
			Name:        "single-h1",
			Description: "Multiple top level headers in the same document",
			Tags:        []string{"headings"},
			Aliases:     []string{"single-title"},
			Pattern:     regexp.MustCompile(`(?m)^(?:={3,}|#(?:[^#\n].*)?)$`),
		},
		New: func(any, lint.Env) lint.Checker {
			return &singleH1Checker{}
		},
	}
}

type singleH1Checker struct {
	count int
}

func (c *singleH1Checker) Test(_ *document.Document, start, _ int) ([]lint.Finding, error) {
	c.count++
	if c.count > 1 {
		return single(start, "%d found", c.count), nil
	}
	return nil, nil
}

// DefaultHeadingPunctuation is the default MD026 punctuation set.
const DefaultHeadingPunctuation = ".,;:!?"

// NewNoTrailingPunctuationRule creates MD026.
func NewNoTrailingPunctuationRule() lint.Definition {
	return lint.Definition{
		Descriptor: lint.Descriptor{
			ID:          "MD026",
			Name:        "no-trailing-punctuation",
			Description: "Trailing punctuation in header",
			Tags:        []string{"headings"},
			Pattern:     headingLinePattern,
			Group:       1,
		},
		Default: DefaultHeadingPunctuation,
		Decode: func(raw any) (any, error) {
			return config.DecodeString(raw)
		},
		Render: renderQuoted,
		New: func(setting any, _ lint.Env) lint.Checker {
			punctuation := setting.(string)
			return lint.CheckerFunc(func(doc *document.Document, start, end int) ([]lint.Finding, error) {
				title := headingTitle(doc, start, end)
				last, size := utf8.DecodeLastRuneInString(title)
				if size == 0 || !strings.ContainsRune(punctuation, last) {
					return nil, nil
				}
				return single(start, "%s found", quote(string(last))), nil
			})
		},
	}
}
