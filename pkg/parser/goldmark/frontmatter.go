package goldmark

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/mdstyle/pkg/document"
	"github.com/yaklabco/mdstyle/pkg/lint"
)

// Front matter formats.
const (
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// FrontMatter is a metadata block at the top of a document.
type FrontMatter struct {
	// Format is FormatYAML or FormatTOML.
	Format string

	// Span runs from the start of the document to the end of the closing
	// delimiter line.
	Span lint.Span

	// Fields holds the decoded metadata when it is well formed.
	Fields map[string]any

	// Err is the decoding error of malformed metadata. Malformed front
	// matter is still front matter for scoping purposes.
	Err error
}

// DetectFrontMatter recognizes a block opened by "---" (YAML) or "+++"
// (TOML) on the first line and closed by the same delimiter. YAML blocks
// may also be closed by "...". Returns nil when there is no closed block.
func DetectFrontMatter(doc *document.Document) *FrontMatter {
	if doc.LineCount() < 2 {
		return nil
	}

	var format string
	switch delimiter(doc.Line(0)) {
	case "---":
		format = FormatYAML
	case "+++":
		format = FormatTOML
	default:
		return nil
	}

	for idx := 1; doc.HasLine(idx); idx++ {
		if !closes(format, delimiter(doc.Line(idx))) {
			continue
		}

		body := doc.Content[doc.Lines[1].StartOffset:doc.Lines[idx].StartOffset]
		meta := &FrontMatter{
			Format: format,
			Span:   lint.Span{Start: 0, End: doc.Lines[idx].EndOffset},
		}
		meta.Fields, meta.Err = decodeFrontMatter(format, body)
		return meta
	}

	return nil
}

func delimiter(line string) string {
	return strings.TrimRight(line, " \t\r")
}

func closes(format, line string) bool {
	if format == FormatTOML {
		return line == "+++"
	}
	return line == "---" || line == "..."
}

func decodeFrontMatter(format, body string) (map[string]any, error) {
	fields := make(map[string]any)

	switch format {
	case FormatTOML:
		if _, err := toml.Decode(body, &fields); err != nil {
			return nil, fmt.Errorf("toml front matter: %w", err)
		}
	default:
		if err := yaml.Unmarshal([]byte(body), &fields); err != nil {
			return nil, fmt.Errorf("yaml front matter: %w", err)
		}
	}

	return fields, nil
}
