package rules

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/yaklabco/mdstyle/pkg/config"
	"github.com/yaklabco/mdstyle/pkg/document"
	"github.com/yaklabco/mdstyle/pkg/lint"
)

// bulletLocator finds list items indented at most three spaces; group 1 is
// the indentation.
var bulletLocator = regexp.MustCompile(`(?m)^( {0,3})[*+-]\s`)

func bulletDescriptor(id, name, description string, aliases ...string) lint.Descriptor {
	return lint.Descriptor{
		ID:          id,
		Name:        name,
		Description: description,
		Tags:        []string{"bullet", "ul", "indentation"},
		Aliases:     aliases,
		Pattern:     bulletLocator,
		Group:       1,
	}
}

// bulletWalker feeds the items of a bullet list block to a visitor exactly
// once. The item that opened the block is visited first at level 0.
type bulletWalker struct {
	scope  lint.Scope
	cursor cursor
}

func newBulletWalker(env lint.Env) bulletWalker {
	return bulletWalker{scope: scopeOf(env), cursor: newCursor()}
}

// walk visits the block opened by the match start..end. top is true only
// for the opening item, whose indentation starts at start.
func (w *bulletWalker) walk(doc *document.Document, start, end int, visit func(item listItem, level int, top bool)) {
	if w.cursor.consumed(start) {
		return
	}
	w.cursor.advance(end)

	visit(listItem{
		indent: end - start,
		marker: end,
		end:    end + 1,
		text:   doc.Content[end : end+1],
	}, 0, true)

	stack := newLevelStack(end - start)
	for _, item := range bulletBlock(doc, w.scope, start) {
		w.cursor.advance(item.end)
		visit(item, stack.level(item.indent), false)
	}
}

// NewUnorderedListStyleRule creates MD004.
func NewUnorderedListStyleRule() lint.Definition {
	desc := bulletDescriptor("MD004", "ul-style", "Unordered list style")
	desc.Tags = []string{"bullet", "ul"}
	return lint.Definition{
		Descriptor: desc,
		Default:    config.ListStyleCyclic,
		Decode: func(raw any) (any, error) {
			return config.ParseListStyle(raw)
		},
		Render: renderString,
		New: func(setting any, env lint.Env) lint.Checker {
			return &listStyleChecker{
				walker: newBulletWalker(env),
				style:  setting.(config.ListStyle),
				levels: make(map[int]byte),
			}
		},
	}
}

type listStyleChecker struct {
	walker bulletWalker
	style  config.ListStyle
	single lock[byte]
	levels map[int]byte
}

func (c *listStyleChecker) Test(doc *document.Document, start, end int) ([]lint.Finding, error) {
	var findings []lint.Finding
	c.walker.walk(doc, start, end, func(item listItem, level int, _ bool) {
		if msg := c.check(item.text[0], level); msg != "" {
			findings = append(findings, lint.Finding{Offset: item.marker, Message: msg})
		}
	})
	return findings, nil
}

// check returns the message for a marker seen at level, or "".
func (c *listStyleChecker) check(marker byte, level int) string {
	var want byte

	switch c.style {
	case config.ListStyleSingle:
		c.single.set(marker)
		want, _ = c.single.get()
	case config.ListStyleCyclic, config.ListStyleAny:
		assigned, ok := c.levels[level]
		if ok {
			want = assigned
			break
		}
		if c.style == config.ListStyleCyclic && c.usedElsewhere(marker) {
			return fmt.Sprintf("%c already used at another level", marker)
		}
		c.levels[level] = marker
		return ""
	default:
		want = c.style.Marker()
	}

	if marker != want {
		return fmt.Sprintf("%c expected, %c found", want, marker)
	}
	return ""
}

func (c *listStyleChecker) usedElsewhere(marker byte) bool {
	for _, assigned := range c.levels {
		if assigned == marker {
			return true
		}
	}
	return false
}

// NewListIndentRule creates MD005.
func NewListIndentRule() lint.Definition {
	return lint.Definition{
		Descriptor: bulletDescriptor("MD005", "list-indent",
			"Inconsistent indentation for list items at the same level"),
		New: func(_ any, env lint.Env) lint.Checker {
			return &listIndentChecker{walker: newBulletWalker(env), expected: make(map[int]int)}
		},
	}
}

type listIndentChecker struct {
	walker   bulletWalker
	expected map[int]int
}

func (c *listIndentChecker) Test(doc *document.Document, start, end int) ([]lint.Finding, error) {
	var findings []lint.Finding
	c.walker.walk(doc, start, end, func(item listItem, level int, top bool) {
		want, ok := c.expected[level]
		if !ok {
			c.expected[level] = item.indent
			return
		}
		if item.indent != want {
			findings = append(findings, lint.Finding{
				Offset:  reportOffset(item, top, start),
				Message: fmt.Sprintf("%d expected, %d found", want, item.indent),
			})
		}
	})
	return findings, nil
}

// NewULStartLeftRule creates MD006.
func NewULStartLeftRule() lint.Definition {
	return lint.Definition{
		Descriptor: bulletDescriptor("MD006", "ul-start-left",
			"Consider starting bulleted lists at the beginning of the line"),
		New: func(_ any, env lint.Env) lint.Checker {
			return &ulStartLeftChecker{walker: newBulletWalker(env)}
		},
	}
}

type ulStartLeftChecker struct {
	walker bulletWalker
}

func (c *ulStartLeftChecker) Test(doc *document.Document, start, end int) ([]lint.Finding, error) {
	var findings []lint.Finding
	c.walker.walk(doc, start, end, func(item listItem, _ int, top bool) {
		if top && item.indent > 0 {
			findings = append(findings, lint.Finding{Offset: start, Message: fmt.Sprintf("%d found", item.indent)})
		}
	})
	return findings, nil
}

// NewULIndentRule creates MD007.
func NewULIndentRule() lint.Definition {
	return lint.Definition{
		Descriptor: bulletDescriptor("MD007", "ul-indent", "Unordered list indentation"),
		Default:    0,
		Decode:     decodeNonNegative,
		Render:     renderInt,
		New: func(setting any, env lint.Env) lint.Checker {
			unit := setting.(int)
			if unit == 0 {
				unit = env.TabSize
			}
			return &ulIndentChecker{walker: newBulletWalker(env), unit: unit}
		},
	}
}

type ulIndentChecker struct {
	walker bulletWalker
	unit   int
}

func (c *ulIndentChecker) Test(doc *document.Document, start, end int) ([]lint.Finding, error) {
	var findings []lint.Finding
	c.walker.walk(doc, start, end, func(item listItem, _ int, top bool) {
		if c.unit > 0 && item.indent%c.unit != 0 {
			findings = append(findings, lint.Finding{
				Offset:  reportOffset(item, top, start),
				Message: fmt.Sprintf("%d*n expected, %d found", c.unit, item.indent),
			})
		}
	})
	return findings, nil
}

// reportOffset is the line start for the opening item and the marker for
// nested items.
func reportOffset(item listItem, top bool, start int) int {
	if top {
		return start
	}
	return item.marker
}

// NewOrderedListPrefixRule creates MD029.
func NewOrderedListPrefixRule() lint.Definition {
	return lint.Definition{
		Descriptor: lint.Descriptor{
			ID:          "MD029",
			Name:        "ol-prefix",
			Description: "Ordered list item prefix",
			Tags:        []string{"ol"},
			Pattern:     regexp.MustCompile(`(?m)^ {0,3}([0-9]{1,9})\.\s`),
			Group:       1,
		},
		Default: config.OrderedStyleAny,
		Decode: func(raw any) (any, error) {
			return config.ParseOrderedStyle(raw)
		},
		Render: renderString,
		New: func(setting any, env lint.Env) lint.Checker {
			return &orderedPrefixChecker{
				style:  setting.(config.OrderedStyle),
				scope:  scopeOf(env),
				cursor: newCursor(),
			}
		},
	}
}

// orderedPrefixChecker checks the numbering of each ordered list block. The
// first item of a block is never flagged; in ordered mode it sets the
// starting number. In "any" mode the first block that reveals a style locks
// it for the rest of the document.
type orderedPrefixChecker struct {
	style  config.OrderedStyle
	locked lock[config.OrderedStyle]
	scope  lint.Scope
	cursor cursor
}

func (c *orderedPrefixChecker) Test(doc *document.Document, start, end int) ([]lint.Finding, error) {
	if c.cursor.consumed(start) {
		return nil, nil
	}
	c.cursor.advance(end)

	first := doc.Content[start:end]
	style := c.resolve(first != "1")

	prev, err := strconv.Atoi(first)
	if err != nil {
		return nil, fmt.Errorf("ordered list number %q: %w", first, err)
	}

	var findings []lint.Finding
	for _, item := range orderedBlock(doc, c.scope, start) {
		c.cursor.advance(item.end)
		if style == config.OrderedStyleAny {
			style = c.decide(item.text)
		}

		switch style {
		case config.OrderedStyleOne:
			if item.text != "1" {
				findings = append(findings, lint.Finding{
					Offset:  item.marker,
					Message: fmt.Sprintf("%s found, '1' expected", quote(item.text)),
				})
			}
		case config.OrderedStyleOrdered:
			num, err := strconv.Atoi(item.text)
			if err != nil {
				return nil, fmt.Errorf("ordered list number %q: %w", item.text, err)
			}
			if num != prev+1 {
				findings = append(findings, lint.Finding{
					Offset:  item.marker,
					Message: fmt.Sprintf("%s found, '%d' expected", quote(item.text), prev+1),
				})
			}
			prev = num
		}
	}

	return findings, nil
}

// resolve returns the style in force. In "any" mode an item that is not
// "1" (ordered true) locks ordered numbering; otherwise the style stays
// undetermined until a later item decides between one and ordered.
func (c *orderedPrefixChecker) resolve(ordered bool) config.OrderedStyle {
	if c.style != config.OrderedStyleAny {
		return c.style
	}
	if style, ok := c.locked.get(); ok {
		return style
	}
	if ordered {
		c.locked.set(config.OrderedStyleOrdered)
		return config.OrderedStyleOrdered
	}
	return config.OrderedStyleAny
}

// decide locks the "any" style from the second item of a block.
func (c *orderedPrefixChecker) decide(second string) config.OrderedStyle {
	if second == "1" {
		c.locked.set(config.OrderedStyleOne)
	} else {
		c.locked.set(config.OrderedStyleOrdered)
	}
	style, _ := c.locked.get()
	return style
}

// NewListMarkerSpaceRule creates MD030.
func NewListMarkerSpaceRule() lint.Definition {
	return lint.Definition{
		Descriptor: lint.Descriptor{
			ID:          "MD030",
			Name:        "list-marker-space",
			Description: "Spaces after list markers",
			Tags:        []string{"ol", "ul", "whitespace"},
			Pattern:     regexp.MustCompile(`(?m)^ {0,3}([0-9]+\.|[*+-])\s`),
			Group:       1,
		},
		Default: config.DefaultMarkerSpacing(),
		Decode: func(raw any) (any, error) {
			return config.DecodeMarkerSpacing(raw)
		},
		Render: func(setting any) string {
			s := setting.(config.MarkerSpacing)
			return fmt.Sprintf("{ul_single: %d, ol_single: %d, ul_multi: %d, ol_multi: %d}",
				s.ULSingle, s.OLSingle, s.ULMulti, s.OLMulti)
		},
		New: func(setting any, _ lint.Env) lint.Checker {
			spacing := setting.(config.MarkerSpacing)
			return lint.CheckerFunc(func(doc *document.Document, start, end int) ([]lint.Finding, error) {
				return testMarkerSpace(doc, spacing, start, end), nil
			})
		},
	}
}

// testMarkerSpace counts the spaces after the marker. An item followed by
// a blank line is a multi-paragraph item.
func testMarkerSpace(doc *document.Document, spacing config.MarkerSpacing, start, end int) []lint.Finding {
	ordered := doc.Content[end-1] == '.'

	spaces := 0
	for end+spaces < len(doc.Content) && doc.Content[end+spaces] == ' ' {
		spaces++
	}

	next := doc.LineIndex(start) + 1
	multi := doc.HasLine(next) && !doc.IsTrailingEmptyLine(next) && doc.IsBlankLine(next)

	var want int
	switch {
	case ordered && multi:
		want = spacing.OLMulti
	case ordered:
		want = spacing.OLSingle
	case multi:
		want = spacing.ULMulti
	default:
		want = spacing.ULSingle
	}

	if spaces != want {
		return single(end, "%d spaces found, %d expected", spaces, want)
	}
	return nil
}
