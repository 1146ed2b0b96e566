package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"docmedic/internal/config"
	"docmedic/internal/engine"
	"docmedic/internal/flags"
	"docmedic/internal/logging"
	"docmedic/internal/output"
	"docmedic/internal/project"
	"docmedic/internal/rules"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan a project's documentation tree",
	Long: `Scan a project's documentation tree and report objective divergences.

DocMedic is scan-only: it reads files under the project root and never
mutates state. Hidden directories and common build output directories
(target, build, dist, node_modules, vendor) are never descended into.

Configuration:
	Settings resolve in order of increasing precedence: built-in defaults,
	the config file (--config, or $XDG_CONFIG_HOME/docmedic/config.yaml when
	present), DOCMEDIC_* environment variables, explicitly set flags.

	Rule overrides are merged from --rules-file (or
	$XDG_CONFIG_HOME/docmedic/rules.yaml when present); an override with the
	same id replaces the built-in rule.

Output:
	Console output is controlled by --console-format (default: text).
	Structured outputs can be written via:
	- --out / --out-format: write an aggregate JSON array or NDJSON stream to a file
	- --report: write a Markdown report
	- --no-console: suppress the console sink (use with --out/--report for machine output)

	NDJSON mode emits one JSON object per line. Objects are lifecycle Events with a
	"type" field (run.started, rule.result, run.finished).

Exit codes:
	0 = clean run, no failures
	1 = failures detected
	3 = fatal error (scan did not run)

Examples:
	# Scan the current directory with all default rules
	docmedic scan --root .

	# Structure rules only, failures only on the console
	docmedic scan --root . --rules structure --filter-status FAIL

	# AI agent: stream machine-readable events to a file
	docmedic scan --root . --no-console --out results.ndjson
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(cfgFile, cmd.Flags())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(engine.ExitFatal)
		}
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(engine.ExitFatal)
		}

		logging.Setup(cfg.Verbose, cfg.LogFile)

		code, err := runScan(context.Background(), afero.NewOsFs(), cfg, os.Stdout)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(engine.ExitFatal)
		}
		os.Exit(code)
	},
}

// runScan wires the snapshot, rule set, and sinks together and runs the
// engine. Separated from the cobra Run so tests can drive it against a
// memory filesystem.
func runScan(ctx context.Context, fsys afero.Fs, cfg *config.Config, console io.Writer) (int, error) {
	snap, err := project.Load(fsys, cfg.Root, project.LoadOptions{
		Kind:         project.Kind(cfg.Kind),
		ModuleFilter: cfg.Module,
		Preload:      cfg.Preload,
	})
	if err != nil {
		return engine.ExitFatal, fmt.Errorf("failed to load project: %w", err)
	}

	ruleSet := rules.Defaults()
	if cfg.RulesFile != "" {
		overrides, err := rules.LoadOverrides(fsys, cfg.RulesFile)
		if err != nil {
			return engine.ExitFatal, fmt.Errorf("failed to load rule overrides: %w", err)
		}
		ruleSet = rules.Merge(ruleSet, overrides)
	}

	selected, err := engine.Select(ruleSet, cfg.Rules)
	if err != nil {
		return engine.ExitFatal, err
	}

	outMgr := output.NewManager()
	if !cfg.NoConsole {
		if err := outMgr.AddSink(output.NewConsoleSink(console, cfg.ConsoleFormat, cfg.FilterStatus)); err != nil {
			return engine.ExitFatal, err
		}
	}
	if cfg.Out != "" {
		sink, err := output.NewFileSink(fsys, cfg.Out, cfg.OutFormat)
		if err != nil {
			return engine.ExitFatal, err
		}
		if err := outMgr.AddSink(sink); err != nil {
			return engine.ExitFatal, err
		}
	}
	if cfg.Report != "" {
		sink, err := output.NewReportSink(fsys, cfg.Report)
		if err != nil {
			return engine.ExitFatal, err
		}
		if err := outMgr.AddSink(sink); err != nil {
			return engine.ExitFatal, err
		}
	}

	summary, err := engine.Run(ctx, snap, selected, cfg.Concurrency, outMgr)
	if err != nil {
		_ = outMgr.Close()
		return engine.ExitFatal, err
	}
	if err := outMgr.Close(); err != nil {
		return engine.ExitFatal, fmt.Errorf("failed to flush output: %w", err)
	}

	return engine.ExitCodeFor(summary), nil
}

func init() {
	rootCmd.AddCommand(scanCmd)

	// Project targeting
	scanCmd.Flags().String(flags.FlagRoot, ".", "Project root directory to scan")
	scanCmd.Flags().String(flags.FlagKind, "", "Project kind override: open-source|internal (default: classified by LICENSE presence)")
	scanCmd.Flags().String(flags.FlagModule, "", "Restrict module-repeated rules to this module name")
	scanCmd.Flags().Bool(flags.FlagPreload, false, "Read every file into memory up front instead of on demand")

	// Rules
	scanCmd.Flags().String(flags.FlagRules, "", "Rule selector: comma-separated rule ids and category names (empty = all rules)")
	scanCmd.Flags().String(flags.FlagRulesFile, "", "YAML rule overrides file (default: $XDG_CONFIG_HOME/docmedic/rules.yaml if present)")

	// Output
	scanCmd.Flags().String(flags.FlagConsoleFormat, config.DefaultConsoleFormat, "Console output format: text|json|ndjson")
	scanCmd.Flags().StringSlice(flags.FlagFilterStatus, nil, "Filter console output by status (PASS, FAIL, SKIPPED). Comma-separated.")
	scanCmd.Flags().Bool(flags.FlagNoConsole, false, "Suppress console output (use with --out/--report)")
	scanCmd.Flags().String(flags.FlagOut, "", "Write structured output to this path")
	scanCmd.Flags().String(flags.FlagOutFormat, "", "Structured output format for --out: json|ndjson (default: inferred from file extension)")
	scanCmd.Flags().String(flags.FlagReport, "", "Write a Markdown report to this path")

	// Runtime
	scanCmd.Flags().Int(flags.FlagConcurrency, config.DefaultConcurrency, "Concurrent checks")
}
