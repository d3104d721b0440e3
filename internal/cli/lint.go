package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdstyle/internal/logging"
	"github.com/yaklabco/mdstyle/pkg/config"
	"github.com/yaklabco/mdstyle/pkg/external"
	"github.com/yaklabco/mdstyle/pkg/lint"
	_ "github.com/yaklabco/mdstyle/pkg/lint/rules" // register the catalog
	"github.com/yaklabco/mdstyle/pkg/metrics"
	goldmarkparser "github.com/yaklabco/mdstyle/pkg/parser/goldmark"
	"github.com/yaklabco/mdstyle/pkg/reporter"
	"github.com/yaklabco/mdstyle/pkg/runner"
)

// stdinArg selects standard input as the only document.
const stdinArg = "-"

type lintFlags struct {
	format      string
	flavor      string
	ruleFormat  string
	jobs        int
	ignore      []string
	enable      []string
	disable     []string
	context     bool
	summary     bool
	compact     bool
	stdinName   string
	metricsFile string
	external    bool
}

func newLintCommand() *cobra.Command {
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:   "lint [paths... | -]",
		Short: "Lint Markdown files",
		Long:  lintLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, flags)
		},
	}

	addLintFlags(cmd, flags)

	return cmd
}

const lintLongDescription = `Lint Markdown files for style issues.

By default, lints all .md, .markdown, .mdown and .mkd files in the current
directory and its subdirectories. Specify paths to lint specific files or
directories, or "-" to lint standard input.

Examples:
  mdstyle lint                        # Lint current directory
  mdstyle lint docs/ README.md        # Lint a directory and a file
  mdstyle lint - < notes.md           # Lint standard input
  mdstyle lint --disable MD013,MD033  # Skip rules for this run
  mdstyle lint --format json          # Output as JSON for CI
  mdstyle lint --external README.md   # Run the external mdl linter instead`

func addLintFlags(cmd *cobra.Command, flags *lintFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")
	cmd.Flags().StringVar(&flags.flavor, "flavor", "", "Markdown flavor used to find code blocks: gfm, commonmark")
	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "id",
		"rule identifier format in output: id, name, or combined")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "rules to enable (ID, name or alias)")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "rules to disable (ID, name or alias)")
	cmd.Flags().BoolVar(&flags.context, "context", false, "show the offending source line under each issue")
	cmd.Flags().BoolVar(&flags.summary, "summary", false, "print a per-rule summary")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "compact JSON output")
	cmd.Flags().StringVar(&flags.stdinName, "stdin-filename", "", "path reported for standard input")
	cmd.Flags().StringVar(&flags.metricsFile, "metrics-file", "",
		"write Prometheus metrics for the run to a textfile-collector file")
	cmd.Flags().BoolVar(&flags.external, "external", false,
		"run the external mdl linter configured under 'external' instead of the built-in rules")
}

// cliConfig collects the flags that were set explicitly.
func (f *lintFlags) cliConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := &config.Config{
		DisableRules: f.disable,
		EnableRules:  f.enable,
	}

	changed := cmd.Flags().Changed
	if changed("format") {
		format, err := config.ParseOutputFormat(f.format)
		if err != nil {
			return nil, err
		}
		cfg.Format = format
	}
	if changed("rule-format") {
		format, err := config.ParseRuleFormat(f.ruleFormat)
		if err != nil {
			return nil, err
		}
		cfg.RuleFormat = format
	}
	if changed("flavor") {
		cfg.Flavor = f.flavor
	}
	if changed("jobs") {
		cfg.Jobs = f.jobs
	}
	if changed("ignore") {
		cfg.Ignore = f.ignore
	}
	return cfg, nil
}

func runLint(cmd *cobra.Command, args []string, flags *lintFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	cli, err := flags.cliConfig(cmd)
	if err != nil {
		return err
	}

	loaded, workDir, err := loadConfig(ctx, cmd, cli)
	if err != nil {
		return err
	}
	cfg := loaded.Config

	logger.Debug("configuration loaded",
		"flavor", cfg.Flavor,
		logging.FieldJobs, cfg.Jobs,
		logging.FieldDisabled, cfg.Disabled,
	)

	fromStdin := len(args) == 1 && args[0] == stdinArg

	if flags.external {
		return runExternal(ctx, cmd, cfg, args, fromStdin)
	}

	engine := lint.NewEngine(goldmarkparser.New(cfg.Flavor))

	var recorder *metrics.Recorder
	if flags.metricsFile != "" {
		recorder = metrics.NewRecorder(prometheus.NewRegistry())
		engine.Observer = recorder
	}

	lintRunner := runner.New(lint.NewPipeline(engine, loaded.Plan))

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      cfg.Format,
		Color:       colorMode(cmd),
		ShowContext: flags.context,
		ShowSummary: flags.summary,
		Compact:     flags.compact,
		RuleFormat:  cfg.RuleFormat,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	var result *runner.Result
	if fromStdin {
		result, err = lintRunner.RunReader(ctx, flags.stdinName, cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("lint stdin: %w", err)
		}
	} else {
		result, err = lintRunner.Run(ctx, runner.Options{
			Paths:        args,
			WorkingDir:   workDir,
			Extensions:   runner.DefaultExtensions(),
			ExcludeGlobs: cfg.Ignore,
			Jobs:         cfg.Jobs,
		})
		if err != nil {
			return errors.Join(errors.New("lint run failed"), err)
		}
	}

	logger.Debug("lint run complete",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesWithIssues, result.Stats.FilesWithIssues,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
	)

	if err := report(ctx, rep, result, fromStdin); err != nil {
		return err
	}

	if recorder != nil {
		if err := recorder.WriteTextfile(flags.metricsFile); err != nil {
			logger.Warn("write metrics", logging.FieldPath, flags.metricsFile, logging.FieldError, err)
		}
	}

	switch ExitCodeFromResult(result) {
	case ExitLintErrors:
		return ErrLintIssuesFound
	case ExitFileErrors:
		return ErrFilesFailed
	}
	return nil
}

// report writes result. A single document from stdin is shown as a plain
// list of lines followed by the status, unless JSON was requested.
func report(ctx context.Context, rep reporter.Reporter, result *runner.Result, fromStdin bool) error {
	if text, ok := rep.(*reporter.TextReporter); ok && fromStdin {
		if err := text.ReportDocument(result.Files[0].Result.Result); err != nil {
			return fmt.Errorf("report results: %w", err)
		}
		return nil
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}
	return nil
}

// runExternal hands each document to the external linter and prints its
// findings with the same status messages as the built-in rules.
func runExternal(ctx context.Context, cmd *cobra.Command, cfg *config.Config, args []string, fromStdin bool) error {
	logger := logging.FromContext(ctx)
	tool := external.FromConfig(cfg)
	out := cmd.OutOrStdout()

	logger.Debug("running external linter",
		logging.FieldExecutable, tool.Executable,
		logging.FieldArgs, tool.Args,
	)

	type source struct {
		name string
		read func() ([]byte, error)
	}

	var sources []source
	if fromStdin {
		sources = append(sources, source{read: func() ([]byte, error) { return io.ReadAll(cmd.InOrStdin()) }})
	} else {
		workDir, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("get working directory: %w", err)
		}
		files, err := runner.Discover(ctx, runner.Options{
			Paths:        args,
			WorkingDir:   workDir,
			ExcludeGlobs: cfg.Ignore,
		})
		if err != nil {
			return err
		}
		for _, path := range files {
			sources = append(sources, source{name: path, read: func() ([]byte, error) { return os.ReadFile(path) }})
		}
	}

	issues := 0
	for _, src := range sources {
		content, err := src.read()
		if err != nil {
			return fmt.Errorf("read %s: %w", src.name, err)
		}

		result, err := tool.Run(ctx, string(content))
		if err != nil {
			return err
		}

		if src.name != "" {
			fmt.Fprintln(out, src.name)
		}
		// Raw tool output goes between the diagnostics and the status line.
		lines := result.Lines()
		if err := reporter.PresentLines(&reporter.WriterSink{Out: out}, lines); err != nil {
			return err
		}
		for _, line := range result.Raw {
			fmt.Fprintln(out, line)
		}
		fmt.Fprintln(out, reporter.StatusMessage(len(lines)))
		issues += len(result.Diagnostics)
	}

	if issues > 0 {
		return ErrLintIssuesFound
	}
	return nil
}
