// Package document provides the immutable, line-indexed text snapshot that
// every lint pass operates on.
package document

import (
	"sort"
	"strings"
)

// LineInfo describes the byte layout of a single line.
type LineInfo struct {
	// StartOffset is the offset of the first byte of the line.
	StartOffset int

	// NewlineStart is the offset of the line terminator ("\n" or "\r\n"),
	// or the end of content for the last line.
	NewlineStart int

	// EndOffset is the offset just past the line terminator.
	EndOffset int
}

// Len returns the length of the line excluding its terminator.
func (l LineInfo) Len() int {
	return l.NewlineStart - l.StartOffset
}

// Document is a snapshot of Markdown text taken at the start of a lint pass.
// Rules address it by zero-based byte offsets; line numbers only appear at
// presentation time.
type Document struct {
	// Path is the logical path used for reporting. May be empty for stdin.
	Path string

	// Content is the full text.
	Content string

	// Lines is the line index for Content.
	Lines []LineInfo
}

// New copies content into a new Document and builds its line index.
func New(path string, content []byte) *Document {
	text := string(content)
	return &Document{
		Path:    path,
		Content: text,
		Lines:   BuildLines(text),
	}
}

// FromString creates a Document from a string.
func FromString(path, text string) *Document {
	return &Document{
		Path:    path,
		Content: text,
		Lines:   BuildLines(text),
	}
}

// BuildLines constructs line metadata from content.
// It handles both LF (\n) and CRLF (\r\n) line endings. Content that ends
// with a newline yields a final empty line.
func BuildLines(content string) []LineInfo {
	if content == "" {
		return []LineInfo{}
	}

	lines := make([]LineInfo, 0, strings.Count(content, "\n")+1)
	lineStart := 0

	for idx := range len(content) {
		if content[idx] != '\n' {
			continue
		}
		newlineStart := idx
		if idx > 0 && content[idx-1] == '\r' {
			newlineStart = idx - 1
		}
		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: newlineStart,
			EndOffset:    idx + 1,
		})
		lineStart = idx + 1
	}

	lines = append(lines, LineInfo{
		StartOffset:  lineStart,
		NewlineStart: len(content),
		EndOffset:    len(content),
	})

	return lines
}

// Len returns the length of the content in bytes.
func (d *Document) Len() int {
	return len(d.Content)
}

// LineCount returns the number of lines.
func (d *Document) LineCount() int {
	return len(d.Lines)
}

// LineIndex returns the zero-based index of the line containing offset.
// Offsets past the end map to the last line. Returns -1 for an empty
// document or a negative offset.
func (d *Document) LineIndex(offset int) int {
	if offset < 0 || len(d.Lines) == 0 {
		return -1
	}
	idx := sort.Search(len(d.Lines), func(i int) bool {
		return d.Lines[i].EndOffset > offset
	})
	if idx >= len(d.Lines) {
		idx = len(d.Lines) - 1
	}
	return idx
}

// LineAt converts an offset to 1-based line and column numbers.
// Column counts bytes. Returns (0, 0) if the offset is out of range.
func (d *Document) LineAt(offset int) (int, int) {
	idx := d.LineIndex(offset)
	if idx < 0 {
		return 0, 0
	}
	return idx + 1, offset - d.Lines[idx].StartOffset + 1
}

// Line returns the text of the zero-based line index, without terminator.
// Returns "" when the index is out of range.
func (d *Document) Line(idx int) string {
	if idx < 0 || idx >= len(d.Lines) {
		return ""
	}
	info := d.Lines[idx]
	return d.Content[info.StartOffset:info.NewlineStart]
}

// IsBlankLine reports whether the zero-based line exists and holds only
// spaces and tabs.
func (d *Document) IsBlankLine(idx int) bool {
	if idx < 0 || idx >= len(d.Lines) {
		return false
	}
	return strings.Trim(d.Line(idx), " \t") == ""
}

// HasLine reports whether idx addresses a line of the document.
func (d *Document) HasLine(idx int) bool {
	return idx >= 0 && idx < len(d.Lines)
}

// IsTrailingEmptyLine reports whether idx is the empty pseudo-line that
// follows a final newline.
func (d *Document) IsTrailingEmptyLine(idx int) bool {
	return idx == len(d.Lines)-1 && idx > 0 && d.Lines[idx].Len() == 0
}
