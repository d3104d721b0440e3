package document_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdstyle/pkg/document"
)

func TestBuildLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []document.LineInfo
	}{
		{
			name:  "empty",
			input: "",
			want:  []document.LineInfo{},
		},
		{
			name:  "single line without newline",
			input: "abc",
			want:  []document.LineInfo{{StartOffset: 0, NewlineStart: 3, EndOffset: 3}},
		},
		{
			name:  "trailing newline yields empty last line",
			input: "ab\n",
			want: []document.LineInfo{
				{StartOffset: 0, NewlineStart: 2, EndOffset: 3},
				{StartOffset: 3, NewlineStart: 3, EndOffset: 3},
			},
		},
		{
			name:  "crlf",
			input: "a\r\nb",
			want: []document.LineInfo{
				{StartOffset: 0, NewlineStart: 1, EndOffset: 3},
				{StartOffset: 3, NewlineStart: 4, EndOffset: 4},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, document.BuildLines(tt.input))
		})
	}
}

func TestDocument_LineAt(t *testing.T) {
	doc := document.FromString("", "# A\n\ntext\n")

	tests := []struct {
		offset   int
		wantLine int
		wantCol  int
	}{
		{0, 1, 1},
		{3, 1, 4},
		{4, 2, 1},
		{5, 3, 1},
		{8, 3, 4},
		{10, 4, 1},
		{-1, 0, 0},
	}

	for _, tt := range tests {
		line, col := doc.LineAt(tt.offset)
		assert.Equal(t, tt.wantLine, line, "line for offset %d", tt.offset)
		assert.Equal(t, tt.wantCol, col, "column for offset %d", tt.offset)
	}
}

func TestDocument_LineHelpers(t *testing.T) {
	doc := document.New("x.md", []byte("one\n  \t\nthree\n"))

	require.Equal(t, 4, doc.LineCount())
	assert.Equal(t, "one", doc.Line(0))
	assert.Equal(t, "three", doc.Line(2))
	assert.Empty(t, doc.Line(9))

	assert.False(t, doc.IsBlankLine(0))
	assert.True(t, doc.IsBlankLine(1))
	assert.True(t, doc.IsBlankLine(3))
	assert.False(t, doc.IsBlankLine(4))

	assert.True(t, doc.IsTrailingEmptyLine(3))
	assert.False(t, doc.IsTrailingEmptyLine(1))
	assert.Equal(t, 2, doc.LineIndex(8))
}

func TestNew_CopiesContent(t *testing.T) {
	buf := []byte("abc")
	doc := document.New("", buf)
	buf[0] = 'z'

	assert.Equal(t, "abc", doc.Content)
}
