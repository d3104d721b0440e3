package goldmark

import (
	"strings"

	"github.com/yuin/goldmark/ast"

	"github.com/yaklabco/mdstyle/pkg/document"
	"github.com/yaklabco/mdstyle/pkg/lint"
)

// CodeBlock describes one code block found by the classifier.
type CodeBlock struct {
	// Span covers whole lines, fences included.
	Span lint.Span

	// Fenced is false for indented code blocks.
	Fenced bool

	// Language is the first word of the info string, or "".
	Language string

	// Content is the code without fences or indentation.
	Content string
}

// fencedBlock locates a fenced block from its content lines: the opening
// fence is the line before the first content line and the closing fence,
// if present, the line after the last one. Empty blocks are located by
// their info string; an empty block without one has no position in the
// goldmark tree and is skipped.
func fencedBlock(doc *document.Document, source []byte, block *ast.FencedCodeBlock) (CodeBlock, bool) {
	lines := block.Lines()
	info := CodeBlock{Fenced: true, Language: string(block.Language(source))}

	var open, last int
	switch {
	case lines.Len() > 0:
		open = doc.LineIndex(lines.At(0).Start) - 1
		last = segmentLine(doc, lines.At(lines.Len()-1).Start, lines.At(lines.Len()-1).Stop)
		info.Content = string(lines.Value(source))
	case block.Info != nil:
		open = doc.LineIndex(block.Info.Segment.Start)
		last = open
	default:
		return CodeBlock{}, false
	}
	if open < 0 {
		return CodeBlock{}, false
	}

	if closing := last + 1; doc.HasLine(closing) && isFence(doc.Line(closing)) {
		last = closing
	}

	info.Span = lint.Span{Start: doc.Lines[open].StartOffset, End: doc.Lines[last].EndOffset}
	return info, true
}

func indentedBlock(doc *document.Document, block *ast.CodeBlock) (CodeBlock, bool) {
	lines := block.Lines()
	if lines.Len() == 0 {
		return CodeBlock{}, false
	}

	first := doc.LineIndex(lines.At(0).Start)
	last := segmentLine(doc, lines.At(lines.Len()-1).Start, lines.At(lines.Len()-1).Stop)
	if first < 0 || last < 0 {
		return CodeBlock{}, false
	}

	return CodeBlock{
		Span:    lint.Span{Start: doc.Lines[first].StartOffset, End: doc.Lines[last].EndOffset},
		Content: string(lines.Value([]byte(doc.Content))),
	}, true
}

// segmentLine returns the line a segment belongs to. Segments usually end
// just past their line break.
func segmentLine(doc *document.Document, start, stop int) int {
	if stop > start {
		return doc.LineIndex(stop - 1)
	}
	return doc.LineIndex(start)
}

// isFence reports whether line, stripped of blockquote markers and
// indentation, starts with a code fence.
func isFence(line string) bool {
	trimmed := strings.TrimLeft(line, " >\t")
	return strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~")
}
