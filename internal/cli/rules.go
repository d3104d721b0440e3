package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdstyle/internal/ui/pretty"
	"github.com/yaklabco/mdstyle/pkg/config"
	"github.com/yaklabco/mdstyle/pkg/lint"
)

type rulesFlags struct {
	ruleFormat string
	format     string
	tag        string
}

const formatJSON = "json"

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Aliases     []string `json:"aliases,omitempty"`
	Default     string   `json:"default,omitempty"`
	Enabled     bool     `json:"enabled"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available lint rules",
		Long: `List all rules in execution order with their names, descriptions and
default settings. Rules disabled by default are marked.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			defs := filterByTag(lint.DefaultRegistry.Definitions(), flags.tag)
			disabled := defaultDisabled()

			if flags.format == formatJSON {
				return writeRulesJSON(cmd.OutOrStdout(), defs, disabled)
			}

			format, err := config.ParseRuleFormat(flags.ruleFormat)
			if err != nil {
				return err
			}
			styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), cmd.OutOrStdout()))
			_, err = io.WriteString(cmd.OutOrStdout(), rulesTable(styles, defs, disabled, format))
			return err
		},
	}

	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "id",
		"rule identifier format: id, name, or combined")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")
	cmd.Flags().StringVar(&flags.tag, "tag", "", "only list rules with this tag")

	return cmd
}

func filterByTag(defs []*lint.Definition, tag string) []*lint.Definition {
	if tag == "" {
		return defs
	}
	tag = strings.ToLower(tag)
	return slices.DeleteFunc(defs, func(def *lint.Definition) bool {
		return !slices.Contains(def.Tags, tag)
	})
}

func defaultDisabled() map[string]bool {
	out := make(map[string]bool)
	for _, id := range config.NewConfig().Disabled {
		out[id] = true
	}
	return out
}

// rulesTable renders the catalog. A NAME column is added when the RULE
// column shows only IDs.
func rulesTable(styles *pretty.Styles, defs []*lint.Definition, disabled map[string]bool, format config.RuleFormat) string {
	withName := format == config.RuleFormatID
	header := pretty.TableRow{"RULE", "DEFAULT", "SETTING", "DESCRIPTION"}
	if withName {
		header = slices.Insert(header, 1, "NAME")
	}

	rows := make([]pretty.TableRow, 0, len(defs))
	for _, def := range defs {
		setting := def.RenderDefault()
		if setting == "" {
			setting = "-"
		}
		state := "on"
		if disabled[def.ID] {
			state = "off"
		}
		row := pretty.TableRow{
			config.FormatRuleID(format, def.ID, def.Name),
			state,
			setting,
			def.Description,
		}
		if withName {
			row = slices.Insert(row, 1, def.Name)
		}
		rows = append(rows, row)
	}
	return styles.FormatTable(header, rows)
}

func writeRulesJSON(w io.Writer, defs []*lint.Definition, disabled map[string]bool) error {
	infos := make([]ruleInfo, 0, len(defs))
	for _, def := range defs {
		infos = append(infos, ruleInfo{
			ID:          def.ID,
			Name:        def.Name,
			Description: def.Description,
			Tags:        def.Tags,
			Aliases:     def.Aliases,
			Default:     def.RenderDefault(),
			Enabled:     !disabled[def.ID],
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}
