package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdstyle/internal/ui/pretty"
	"github.com/yaklabco/mdstyle/pkg/config"
	"github.com/yaklabco/mdstyle/pkg/document"
	"github.com/yaklabco/mdstyle/pkg/langdetect"
	goldmarkparser "github.com/yaklabco/mdstyle/pkg/parser/goldmark"
)

type scopesFlags struct {
	flavor string
	format string
}

// scopeInfo is one row of the scopes listing.
type scopeInfo struct {
	Kind      string `json:"kind"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
	Language  string `json:"language,omitempty"`
	Source    string `json:"source,omitempty"`
	Detail    string `json:"detail,omitempty"`
}

func newScopesCommand() *cobra.Command {
	flags := &scopesFlags{}

	cmd := &cobra.Command{
		Use:   "scopes <file | ->",
		Short: "Show the regions that rules skip",
		Long: `Show the front matter and code blocks of a document. Rules never report
inside these regions. Code blocks are labelled with their language, taken
from the info string or guessed from the content.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScopes(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.flavor, "flavor", "", "Markdown flavor: gfm, commonmark")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")

	return cmd
}

func runScopes(cmd *cobra.Command, path string, flags *scopesFlags) error {
	ctx := commandContext(cmd)

	loaded, _, err := loadConfig(ctx, cmd, &config.Config{Flavor: flags.flavor})
	if err != nil {
		return err
	}

	var content []byte
	if path == stdinArg {
		content, err = io.ReadAll(cmd.InOrStdin())
		path = ""
	} else {
		content, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}

	doc := document.New(path, content)
	structure, err := goldmarkparser.New(loaded.Config.Flavor).Analyze(ctx, doc)
	if err != nil {
		return err
	}

	infos := describeScopes(doc, structure)

	if flags.format == formatJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(infos); err != nil {
			return fmt.Errorf("encoding scopes: %w", err)
		}
		return nil
	}

	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), cmd.OutOrStdout()))
	if len(infos) == 0 {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), styles.Dim.Render("no front matter or code blocks"))
		return err
	}

	rows := make([]pretty.TableRow, 0, len(infos))
	for _, info := range infos {
		lines := strconv.Itoa(info.StartLine)
		if info.EndLine != info.StartLine {
			lines += "-" + strconv.Itoa(info.EndLine)
		}
		label := info.Language
		if info.Source != "" {
			label += " (" + info.Source + ")"
		}
		rows = append(rows, pretty.TableRow{lines, info.Kind, label, info.Detail})
	}
	_, err = io.WriteString(cmd.OutOrStdout(),
		styles.FormatTable(pretty.TableRow{"LINES", "KIND", "LANGUAGE", "DETAIL"}, rows))
	return err
}

func describeScopes(doc *document.Document, structure *goldmarkparser.Structure) []scopeInfo {
	var infos []scopeInfo

	if meta := structure.Meta; meta != nil {
		info := scopeInfo{Kind: "front matter", Language: meta.Format}
		info.StartLine, info.EndLine = spanLines(doc, meta.Span.Start, meta.Span.End)
		switch {
		case meta.Err != nil:
			info.Detail = "malformed: " + meta.Err.Error()
		default:
			info.Detail = fmt.Sprintf("%d field(s)", len(meta.Fields))
		}
		infos = append(infos, info)
	}

	for _, block := range structure.Blocks {
		info := scopeInfo{Kind: "indented code"}
		if block.Fenced {
			info.Kind = "fenced code"
		}
		guess := langdetect.ForBlock(block.Language, []byte(block.Content))
		info.Language, info.Source = guess.Language, string(guess.Source)
		info.StartLine, info.EndLine = spanLines(doc, block.Span.Start, block.Span.End)
		infos = append(infos, info)
	}

	return infos
}

// spanLines returns the 1-based first and last line of a half-open span.
func spanLines(doc *document.Document, start, end int) (int, int) {
	first, _ := doc.LineAt(start)
	last := first
	if end > start {
		last, _ = doc.LineAt(end - 1)
	}
	return first, last
}
