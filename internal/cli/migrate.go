package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdstyle/internal/configloader"
	"github.com/yaklabco/mdstyle/internal/logging"
	"github.com/yaklabco/mdstyle/pkg/lint"
)

// migrateFlags holds the flags for the migrate command.
type migrateFlags struct {
	force  bool
	output string
	input  string
}

func newMigrateCommand() *cobra.Command {
	flags := &migrateFlags{}

	cmd := &cobra.Command{
		Use:   "migrate [input]",
		Short: "Convert a markdownlint configuration to mdstyle format",
		Long: `Convert a markdownlint configuration file (.markdownlint.json, .jsonc,
.yaml or .yml) to .mdstyle.yml.

Rule keys may be IDs, names or tags. Options are carried over for the rules
that have an mdstyle setting; everything else is reported and skipped.
JavaScript configuration files cannot be converted.

Examples:
  mdstyle migrate                       Convert the config in this directory
  mdstyle migrate .markdownlint.json    Convert a specific file
  mdstyle migrate --output custom.yml   Write to a custom output path`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				flags.input = args[0]
			}
			return runMigrate(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing output file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", configloader.ProjectConfigFiles[0], "output file path")

	return cmd
}

func runMigrate(cmd *cobra.Command, flags *migrateFlags) error {
	logger := logging.NewInteractive()

	inputPath := flags.input
	if inputPath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("get working directory: %w", err)
		}

		paths, err := configloader.DiscoverPaths(commandContext(cmd), cwd)
		if err != nil {
			return err
		}
		if paths.Markdownlint == "" {
			return errors.New("no markdownlint configuration file found in current directory")
		}

		inputPath = paths.Markdownlint
		logger.Info("found markdownlint config", logging.FieldPath, inputPath)
	}

	result, err := configloader.ConvertMarkdownlintConfig(inputPath, lint.DefaultRegistry)
	if err != nil {
		return fmt.Errorf("convert configuration: %w", err)
	}

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}

	body, err := result.Config.ToYAML()
	if err != nil {
		return fmt.Errorf("serialize configuration: %w", err)
	}
	content := append([]byte(configloader.GenerateMigrationHeader(inputPath)), body...)

	if err := configloader.WriteFile(flags.output, content, flags.force); err != nil {
		if errors.Is(err, configloader.ErrConfigExists) {
			return fmt.Errorf("%w; use --force to overwrite", err)
		}
		return err
	}

	logger.Info("migration complete", logging.FieldInput, inputPath, logging.FieldOutput, flags.output)
	if len(result.Warnings) > 0 {
		logger.Warn("review the warnings above and check the migrated configuration")
	}

	return nil
}
