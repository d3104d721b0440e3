package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yaklabco/mdstyle/pkg/config"
	"github.com/yaklabco/mdstyle/pkg/document"
	"github.com/yaklabco/mdstyle/pkg/lint"
)

// lock is a value that is undetermined until it is set once. Later calls
// to set are ignored.
type lock[T any] struct {
	value  T
	locked bool
}

func (l *lock[T]) get() (T, bool) {
	return l.value, l.locked
}

func (l *lock[T]) set(value T) {
	if l.locked {
		return
	}
	l.value = value
	l.locked = true
}

// cursor remembers how far a checker has consumed the document on its own,
// so that matches it already handled are not tested twice.
type cursor struct {
	pos int
}

func newCursor() cursor {
	return cursor{pos: -1}
}

func (c *cursor) consumed(offset int) bool {
	return c.pos > offset
}

func (c *cursor) advance(offset int) {
	if offset > c.pos {
		c.pos = offset
	}
}

// levelStack maps the indentation of list items in one block to nesting
// levels. Level 0 is the item that opened the block; items indented no
// deeper than it are also level 0.
type levelStack struct {
	base   int
	widths []int
}

func newLevelStack(base int) *levelStack {
	return &levelStack{base: base}
}

// level pops every entry at least as deep as indent, then pushes indent.
// Equal indentation therefore reuses the current level.
func (s *levelStack) level(indent int) int {
	if indent <= s.base {
		s.widths = s.widths[:0]
		return 0
	}
	for len(s.widths) > 0 && s.widths[len(s.widths)-1] >= indent {
		s.widths = s.widths[:len(s.widths)-1]
	}
	s.widths = append(s.widths, indent)
	return len(s.widths)
}

// listItem is an item found by scanning the lines of a list block.
type listItem struct {
	indent int    // leading spaces
	marker int    // offset of the marker
	end    int    // offset just past the marker
	text   string // the marker, or the number of an ordered item
}

var (
	bulletItemPattern  = regexp.MustCompile(`^( *)([*+-])(?:[ \t]|$)`)
	orderedItemPattern = regexp.MustCompile(`^( {0,3})([0-9]{1,9})\.(?:[ \t]|$)`)
)

// bulletBlock returns the bullet items on the lines following the line of
// offset. The block ends before the first line that starts with a
// non-whitespace character; blank lines do not end it.
func bulletBlock(doc *document.Document, scope lint.Scope, offset int) []listItem {
	return scanBlock(doc, scope, offset, bulletItemPattern, func(line string) bool {
		return line != "" && !isSpace(line[0])
	})
}

// orderedBlock returns the ordered items, indented at most three spaces, on
// the lines following the line of offset, up to the first blank line.
func orderedBlock(doc *document.Document, scope lint.Scope, offset int) []listItem {
	return scanBlock(doc, scope, offset, orderedItemPattern, func(line string) bool {
		return strings.TrimLeft(line, " \t\f\v") == ""
	})
}

func scanBlock(
	doc *document.Document,
	scope lint.Scope,
	offset int,
	pattern *regexp.Regexp,
	stop func(line string) bool,
) []listItem {
	var items []listItem

	for idx := doc.LineIndex(offset) + 1; doc.HasLine(idx); idx++ {
		line := doc.Line(idx)
		if stop(line) {
			break
		}

		match := pattern.FindStringSubmatchIndex(line)
		if match == nil {
			continue
		}

		lineStart := doc.Lines[idx].StartOffset
		if scope.InFrontMatter(lineStart) || scope.InCodeBlock(lineStart) {
			continue
		}

		items = append(items, listItem{
			indent: match[3] - match[2],
			marker: lineStart + match[4],
			end:    lineStart + match[5],
			text:   line[match[4]:match[5]],
		})
	}

	return items
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\f', '\v':
		return true
	}
	return false
}

// scopeOf returns the scope of a pass, or an empty scope when a checker is
// built outside the engine.
func scopeOf(env lint.Env) lint.Scope {
	if env.Scope == nil {
		return lint.NoScope{}
	}
	return env.Scope
}

// isQuoteLine reports whether line is part of a blockquote.
func isQuoteLine(line string) bool {
	trimmed := strings.TrimLeft(line, " ")
	return len(line)-len(trimmed) <= 4 && strings.HasPrefix(trimmed, ">")
}

// atxTitle returns the text of an ATX heading line without its opening
// and closing hashes and surrounding spaces.
func atxTitle(line string) string {
	rest := strings.TrimLeft(line, "#")
	if strings.HasSuffix(rest, "#") {
		rest = strings.TrimRight(rest, "#")
	}
	return strings.Trim(rest, " ")
}

// headingTitle returns the title of the heading whose locator match starts
// at offset. A setext underline takes its title from the line above it.
func headingTitle(doc *document.Document, start, end int) string {
	text := doc.Content[start:end]
	if isSetextUnderline(text) {
		idx := doc.LineIndex(start)
		if doc.IsBlankLine(idx - 1) {
			return ""
		}
		return doc.Line(idx - 1)
	}
	return atxTitle(text)
}

func isSetextUnderline(text string) bool {
	return text != "" && (text[0] == '-' || text[0] == '=')
}

// quote wraps s in single quotes, or double quotes when s contains a
// single quote.
func quote(s string) string {
	if strings.Contains(s, "'") && !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
}

// single wraps a finding in a slice.
func single(offset int, format string, args ...any) []lint.Finding {
	return []lint.Finding{{Offset: offset, Message: fmt.Sprintf(format, args...)}}
}

// decodeNonNegative decodes an integer setting that must not be negative.
func decodeNonNegative(raw any) (any, error) {
	n, err := config.DecodeInt(raw)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: must not be negative, got %d", config.ErrInvalidSetting, n)
	}
	return n, nil
}

func renderInt(setting any) string {
	return fmt.Sprintf("%d", setting)
}

func renderString(setting any) string {
	return fmt.Sprintf("%v", setting)
}

func renderQuoted(setting any) string {
	return fmt.Sprintf("%q", setting)
}
