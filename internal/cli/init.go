package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/mdstyle/internal/configloader"
	"github.com/yaklabco/mdstyle/internal/logging"
	"github.com/yaklabco/mdstyle/pkg/config"
	"github.com/yaklabco/mdstyle/pkg/lint"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create an mdstyle configuration file",
		Long: `Create a .mdstyle.yml configuration file in the current directory with
the default settings of every rule.

Examples:
  mdstyle init                       Create a minimal .mdstyle.yml
  mdstyle init --full                Document every rule and its default
  mdstyle init --format toml         Create .mdstyle.toml instead
  mdstyle init --output custom.yml   Write to a custom file path`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "document every rule")
	cmd.Flags().StringVar(&flags.format, "format", config.TemplateYAML, "file format: yaml or toml")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file path (default .mdstyle.yml or .mdstyle.toml)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive()

	outputPath := flags.output
	if outputPath == "" {
		outputPath = ".mdstyle.yml"
		if flags.format == config.TemplateTOML {
			outputPath = ".mdstyle.toml"
		}
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:   flags.full,
		Format: flags.format,
		Rules:  templateRules(lint.DefaultRegistry),
	})
	if err != nil {
		return err
	}

	overwrite := flags.force
	if !overwrite && fileExists(outputPath) && isTerminal(cmd.InOrStdin()) {
		overwrite, err = confirm(cmd.InOrStdin(), cmd.ErrOrStderr(),
			fmt.Sprintf("%s already exists. Overwrite?", outputPath))
		if err != nil {
			return err
		}
	}

	if err := configloader.WriteFile(outputPath, content, overwrite); err != nil {
		if errors.Is(err, configloader.ErrConfigExists) {
			return fmt.Errorf("%w; use --force to overwrite", err)
		}
		return err
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("run 'mdstyle rules' to see all available rules")

	return nil
}

// templateRules describes the registry for config.GenerateTemplate.
func templateRules(registry *lint.Registry) []config.RuleInfo {
	disabled := defaultDisabled()
	defs := registry.Definitions()

	infos := make([]config.RuleInfo, 0, len(defs))
	for _, def := range defs {
		infos = append(infos, config.RuleInfo{
			ID:          def.ID,
			Name:        def.Name,
			Description: def.Description,
			Tags:        def.Tags,
			Setting:     def.RenderDefault(),
			Disabled:    disabled[def.ID],
		})
	}
	return infos
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// confirm asks a yes/no question; anything but y or yes is no.
func confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N] ", question)

	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read answer: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
