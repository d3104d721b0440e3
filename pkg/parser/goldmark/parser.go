// Package goldmark classifies the structure of Markdown documents using the
// goldmark library: where the front matter ends and which byte ranges are
// code blocks.
package goldmark

import (
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/mdstyle/pkg/document"
	"github.com/yaklabco/mdstyle/pkg/lint"
)

// Flavor identifies the Markdown flavor supported by the parser.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Structure is the classified layout of one document. It implements
// lint.Scope.
type Structure struct {
	lint.SpanScope

	// Meta is the leading front matter, or nil.
	Meta *FrontMatter

	// Blocks are the code blocks in document order.
	Blocks []CodeBlock
}

// Classifier implements lint.ScopeClassifier using goldmark.
type Classifier struct {
	flavor string
	md     goldmark.Markdown
}

// New creates a new goldmark-based classifier for the given flavor.
// Supported flavors are "commonmark" and "gfm". An empty flavor selects
// "gfm"; invalid flavors fall back to "commonmark".
func New(flavor string) *Classifier {
	f := flavorOrDefault(flavor)
	return &Classifier{
		flavor: f,
		md:     newGoldmarkInstance(f),
	}
}

// Flavor returns the configured Markdown flavor.
func (c *Classifier) Flavor() string {
	return c.flavor
}

// Classify implements lint.ScopeClassifier.
//
//nolint:ireturn // lint.Scope is the consumer's interface
func (c *Classifier) Classify(ctx context.Context, doc *document.Document) (lint.Scope, error) {
	return c.Analyze(ctx, doc)
}

// Analyze builds the Structure of doc.
//
// Front matter is detected first and blanked out, keeping offsets, so that
// goldmark never sees it. The remaining text is parsed and every fenced or
// indented code block contributes a span.
func (c *Classifier) Analyze(ctx context.Context, doc *document.Document) (*Structure, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("classify cancelled: %w", err)
	}

	structure := &Structure{}
	source := []byte(doc.Content)

	if meta := DetectFrontMatter(doc); meta != nil {
		structure.Meta = meta
		structure.FrontMatter = meta.Span
		blank(source, meta.Span.End)
	}

	root := c.md.Parser().Parse(text.NewReader(source), parser.WithContext(parser.NewContext()))

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("classify cancelled: %w", err)
	}

	err := ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch block := node.(type) {
		case *ast.FencedCodeBlock:
			if cb, ok := fencedBlock(doc, source, block); ok {
				structure.Blocks = append(structure.Blocks, cb)
			}
			return ast.WalkSkipChildren, nil
		case *ast.CodeBlock:
			if cb, ok := indentedBlock(doc, block); ok {
				structure.Blocks = append(structure.Blocks, cb)
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", doc.Path, err)
	}

	for _, block := range structure.Blocks {
		structure.CodeBlocks = append(structure.CodeBlocks, block.Span)
	}

	return structure, nil
}

// blank replaces everything but line breaks in source[:end] with spaces.
func blank(source []byte, end int) {
	for i := 0; i < end && i < len(source); i++ {
		if source[i] != '\n' {
			source[i] = ' '
		}
	}
}

// flavorOrDefault returns the flavor if valid. An empty flavor selects GFM
// and anything else CommonMark.
func flavorOrDefault(flavor string) string {
	switch flavor {
	case FlavorCommonMark, FlavorGFM:
		return flavor
	case "":
		return FlavorGFM
	default:
		return FlavorCommonMark
	}
}

// newGoldmarkInstance creates a configured goldmark.Markdown instance.
//
//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(flavor string) goldmark.Markdown {
	var opts []goldmark.Option

	switch flavor {
	case FlavorGFM:
		opts = append(opts, goldmark.WithExtensions(extension.GFM))
	case FlavorCommonMark:
		// No extensions for pure CommonMark.
	}

	return goldmark.New(opts...)
}
