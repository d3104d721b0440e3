package goldmark

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdstyle/pkg/document"
	"github.com/yaklabco/mdstyle/pkg/lint"
)

func analyze(t *testing.T, content string) *Structure {
	t.Helper()

	structure, err := New(FlavorGFM).Analyze(context.Background(), document.FromString("test.md", content))
	require.NoError(t, err)
	return structure
}

func TestClassifier_New(t *testing.T) {
	tests := []struct {
		name       string
		flavor     string
		wantFlavor string
	}{
		{"commonmark", FlavorCommonMark, FlavorCommonMark},
		{"gfm", FlavorGFM, FlavorGFM},
		{"invalid defaults to commonmark", "invalid", FlavorCommonMark},
		{"empty defaults to gfm", "", FlavorGFM},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantFlavor, New(tt.flavor).Flavor())
		})
	}
}

func TestClassifier_FencedBlock(t *testing.T) {
	content := "# Title\n\n```go\nfunc main() {}\n```\n\nafter\n"
	structure := analyze(t, content)

	require.Len(t, structure.Blocks, 1)
	block := structure.Blocks[0]
	assert.True(t, block.Fenced)
	assert.Equal(t, "go", block.Language)
	assert.Equal(t, "func main() {}\n", block.Content)

	open := strings.Index(content, "```go")
	closing := strings.LastIndex(content, "```")
	assert.Equal(t, lint.Span{Start: open, End: closing + 4}, block.Span)

	assert.True(t, structure.InCodeBlock(open))
	assert.True(t, structure.InCodeBlock(strings.Index(content, "func")))
	assert.True(t, structure.InCodeBlock(closing))
	assert.False(t, structure.InCodeBlock(0))
	assert.False(t, structure.InCodeBlock(strings.Index(content, "after")))
}

func TestClassifier_UnclosedFence(t *testing.T) {
	content := "text\n\n~~~\n# not a heading\n"
	structure := analyze(t, content)

	require.Len(t, structure.Blocks, 1)
	assert.True(t, structure.InCodeBlock(strings.Index(content, "# not")))
	assert.False(t, structure.InCodeBlock(0))
}

func TestClassifier_EmptyFenceWithInfo(t *testing.T) {
	content := "```text\n```\n"
	structure := analyze(t, content)

	require.Len(t, structure.Blocks, 1)
	assert.Equal(t, lint.Span{Start: 0, End: len(content)}, structure.Blocks[0].Span)
}

func TestClassifier_IndentedBlock(t *testing.T) {
	content := "para\n\n    code line\n    more\n\nend\n"
	structure := analyze(t, content)

	require.Len(t, structure.Blocks, 1)
	block := structure.Blocks[0]
	assert.False(t, block.Fenced)
	assert.Equal(t, "code line\nmore\n", block.Content)
	assert.True(t, structure.InCodeBlock(strings.Index(content, "    code")))
	assert.False(t, structure.InCodeBlock(strings.Index(content, "end")))
}

func TestClassifier_FrontMatter(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		wantFormat string
		wantField  string
		wantErr    bool
	}{
		{
			name:       "yaml",
			content:    "---\ntitle: Hello\n---\n# Body\n",
			wantFormat: FormatYAML,
			wantField:  "Hello",
		},
		{
			name:       "yaml closed by dots",
			content:    "---\ntitle: Hello\n...\n# Body\n",
			wantFormat: FormatYAML,
			wantField:  "Hello",
		},
		{
			name:       "toml",
			content:    "+++\ntitle = \"Hello\"\n+++\n# Body\n",
			wantFormat: FormatTOML,
			wantField:  "Hello",
		},
		{
			name:       "malformed yaml is still front matter",
			content:    "---\n- a\n- b\n---\n# Body\n",
			wantFormat: FormatYAML,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			structure := analyze(t, tt.content)
			require.NotNil(t, structure.Meta)

			meta := structure.Meta
			assert.Equal(t, tt.wantFormat, meta.Format)
			body := strings.Index(tt.content, "# Body")
			assert.Equal(t, lint.Span{Start: 0, End: body}, meta.Span)
			assert.True(t, structure.InFrontMatter(0))
			assert.True(t, structure.InFrontMatter(body-1))
			assert.False(t, structure.InFrontMatter(body))

			if tt.wantErr {
				assert.Error(t, meta.Err)
				return
			}
			require.NoError(t, meta.Err)
			assert.Equal(t, tt.wantField, meta.Fields["title"])
		})
	}
}

func TestClassifier_NoFrontMatter(t *testing.T) {
	tests := map[string]string{
		"unclosed":        "---\ntitle: x\n",
		"not first line":  "\n---\na: b\n---\n",
		"thematic break":  "text\n\n---\n",
		"single line doc": "---",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			structure := analyze(t, content)
			assert.Nil(t, structure.Meta)
			assert.False(t, structure.InFrontMatter(0))
		})
	}
}

func TestClassifier_FrontMatterHidesFences(t *testing.T) {
	content := "---\nnote: |\n    indented\n---\nbody\n"
	structure := analyze(t, content)

	assert.Empty(t, structure.Blocks)
}

func TestClassifier_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(FlavorGFM).Classify(ctx, document.FromString("x.md", "# x\n"))
	require.ErrorIs(t, err, context.Canceled)
}
