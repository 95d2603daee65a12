package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/rbfix/internal/configloader"
	"github.com/yaklabco/rbfix/internal/logging"
	"github.com/yaklabco/rbfix/pkg/config"
	"github.com/yaklabco/rbfix/pkg/lint"
	_ "github.com/yaklabco/rbfix/pkg/lint/rules" // Register built-in rules
	"github.com/yaklabco/rbfix/pkg/parser/treesitter"
	"github.com/yaklabco/rbfix/pkg/reporter"
	"github.com/yaklabco/rbfix/pkg/runner"
)

type lintFlags struct {
	format          string
	ruleFormat      string
	ignore          []string
	enable          []string
	disable         []string
	fixRules        []string
	maxLineLength   int
	strict          bool
	noContext       bool
	compact         bool
	includeVendored bool
}

func newLintCommand(info BuildInfo) *cobra.Command {
	var cfg config.Config
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Lint Ruby files",
		Long:  lintLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, &cfg, flags, info)
		},
	}

	addLintFlags(cmd, &cfg, flags)

	return cmd
}

const lintLongDescription = `Lint Ruby files.

By default, lints every .rb, .rake, .gemspec, and .ru file under the current
directory, plus extensionless Ruby files such as Gemfile, Rakefile, and
scripts with a ruby shebang. Dependency directories such as vendor/ are
skipped.

Examples:
  rbfix lint                                # Lint current directory
  rbfix lint lib/                           # Lint a directory
  rbfix lint --fix                          # Correct offenses in place
  rbfix lint --fix --dry-run --format diff  # Show corrections without writing
  rbfix lint --fix --disable-uncorrectable  # Silence what cannot be corrected
  rbfix lint --format json                  # Output as JSON for CI
  rbfix lint --strict                       # Treat warnings as errors`

func runLint(cmd *cobra.Command, args []string, cfg *config.Config, flags *lintFlags, info BuildInfo) error {
	logger := logging.Default()

	if err := applyLintFlags(cmd, cfg, flags); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithLogger(ctx, logger)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cfg,
	})
	if err != nil {
		return errors.Join(ErrConfig, err)
	}

	finalCfg := loadResult.Config
	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldFiles, loadResult.LoadedFrom)
	}
	logger.Debug("configuration resolved",
		logging.FieldFix, finalCfg.Fix,
		logging.FieldDryRun, finalCfg.DryRun,
		logging.FieldJobs, finalCfg.Jobs,
	)

	format, err := reporter.ParseFormat(string(finalCfg.Format))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	engine := lint.NewEngine(treesitter.New(), lint.DefaultRegistry)
	lintRunner := runner.New(lint.NewPipeline(engine))

	runOpts := runner.Options{
		Paths:           args,
		WorkingDir:      workDir,
		ExcludeGlobs:    finalCfg.Ignore,
		IncludeVendored: flags.includeVendored,
		Jobs:            finalCfg.Jobs,
		Config:          finalCfg,
	}

	logger.Debug("starting lint run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
	)

	result, err := lintRunner.Run(ctx, runOpts)
	if err != nil {
		return fmt.Errorf("lint run failed: %w", err)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Color:       colorMode,
		ShowContext: !flags.noContext,
		ShowSummary: true,
		Compact:     flags.compact,
		RuleFormat:  finalCfg.RuleFormat,
		WorkingDir:  workDir,
		ToolVersion: info.Version,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if code := ExitCodeFromResult(result, flags.strict); code != ExitSuccess {
		return &issuesError{code: code}
	}

	return nil
}

// applyLintFlags copies explicitly set flags into cfg, which then takes
// precedence over every configuration file.
func applyLintFlags(cmd *cobra.Command, cfg *config.Config, flags *lintFlags) error {
	changed := cmd.Flags().Changed

	if changed("format") {
		cfg.Format = config.OutputFormat(flags.format)
	}
	if changed("rule-format") {
		cfg.RuleFormat = config.RuleFormat(flags.ruleFormat)
	}
	if changed("max-line-length") {
		if flags.maxLineLength <= 0 {
			return fmt.Errorf("%w: --max-line-length must be positive", ErrUsage)
		}
		cfg.Rules = map[string]config.RuleConfig{
			config.LineLengthRuleID: {Options: map[string]any{"max": flags.maxLineLength}},
		}
	}

	cfg.Ignore = flags.ignore
	cfg.EnableRules = flags.enable
	cfg.DisableRules = flags.disable
	cfg.FixRules = flags.fixRules

	return nil
}

func addLintFlags(cmd *cobra.Command, cfg *config.Config, flags *lintFlags) {
	cmd.Flags().BoolVar(&cfg.Fix, "fix", false, "correct offenses in place")
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "compute corrections without writing them")
	cmd.Flags().BoolVar(&cfg.DisableUncorrectable, "disable-uncorrectable", false,
		"with --fix, silence offenses that cannot be corrected with rubocop:todo directives")
	cmd.Flags().BoolVar(&cfg.SafeFix, "safe", false, "with --fix, only apply corrections marked safe")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, diff, sarif, offenses")
	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "id",
		"rule identifier format in output: id, name, or combined")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "rules or departments to enable")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "rules or departments to disable")
	cmd.Flags().StringSliceVar(&flags.fixRules, "fix-rules", nil, "limit correction to these rules")
	cmd.Flags().IntVar(&flags.maxLineLength, "max-line-length", 0,
		"override the Layout/LineLength max option")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "do not create backups when fixing")
	cmd.Flags().BoolVar(&flags.includeVendored, "include-vendored", false,
		"also lint vendor/ and other dependency directories")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat warnings as errors for the exit code")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "minify JSON output")
}
