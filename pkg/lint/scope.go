package lint

import (
	"context"

	"github.com/yaklabco/mdstyle/pkg/document"
)

// Scope answers structural questions about offsets of one document.
type Scope interface {
	// InFrontMatter reports whether offset lies inside leading front matter.
	InFrontMatter(offset int) bool

	// InCodeBlock reports whether offset lies inside a fenced or indented
	// code block.
	InCodeBlock(offset int) bool
}

// ScopeClassifier builds the Scope of a document.
//
// The lint package defines this interface in the consumer package.
// Implementations (e.g., parser/goldmark) provide the concrete structural
// analysis.
//
// Implementations must be:
//   - deterministic for a given document,
//   - safe for concurrent use by multiple goroutines,
//   - side-effect free (no I/O, no global state mutation).
type ScopeClassifier interface {
	// Classify analyzes doc and returns its scope. The returned Scope must
	// stay valid for as long as doc is used.
	Classify(ctx context.Context, doc *document.Document) (Scope, error)
}

// NoScope treats every offset as ordinary text.
type NoScope struct{}

// InFrontMatter always returns false.
func (NoScope) InFrontMatter(int) bool { return false }

// InCodeBlock always returns false.
func (NoScope) InCodeBlock(int) bool { return false }

// Span is a half-open byte range [Start, End).
type Span struct {
	Start int
	End   int
}

// Contains reports whether offset lies in the span.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// SpanScope is a Scope backed by explicit byte ranges. Classifiers return
// it; tests build it directly.
type SpanScope struct {
	FrontMatter Span
	CodeBlocks  []Span // sorted by Start, non-overlapping
}

// InFrontMatter reports whether offset lies inside FrontMatter.
func (s *SpanScope) InFrontMatter(offset int) bool {
	return s.FrontMatter.Contains(offset)
}

// InCodeBlock reports whether offset lies inside any code block.
func (s *SpanScope) InCodeBlock(offset int) bool {
	lo, hi := 0, len(s.CodeBlocks)
	for lo < hi {
		mid := (lo + hi) / 2
		span := s.CodeBlocks[mid]
		switch {
		case offset < span.Start:
			hi = mid
		case offset >= span.End:
			lo = mid + 1
		default:
			return true
		}
	}
	return false
}
