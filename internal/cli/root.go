package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"docmedic/internal/flags"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

// cfgFile is the --config value; resolved before the layered config load.
var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "docmedic",
	Short: "Scan a project's documentation tree and report objective compliance divergences",
	Long: `DocMedic scans a project's documentation tree on the local filesystem and
reports objective compliance divergences.

DocMedic is scan-only: it finds divergences, does not fix them, and does not
moralize.

Examples:
	# Show available commands and global flags
	docmedic --help

	# Scan the current directory
	docmedic scan --root .

	# List rules
	docmedic rules list

	# Print build info
	docmedic version

Output:
	By default, commands write human-readable output to stdout.
	The scan command supports structured output (see "docmedic scan --help").`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, flags.FlagConfig, "", "Config file path (default: $XDG_CONFIG_HOME/docmedic/config.yaml if present)")
	rootCmd.PersistentFlags().Bool(flags.FlagVerbose, false, "Enable verbose logging (prints every filesystem decision and full error details)")
	rootCmd.PersistentFlags().String(flags.FlagLogFile, "", "Also write logs to this file (rotated)")
}

func SetBuildInfo(version, commit, date string) {
	if version != "" {
		buildVersion = version
	}
	if commit != "" {
		buildCommit = commit
	}
	if date != "" {
		buildDate = date
	}

	rootCmd.Version = fmt.Sprintf("%s (%s) %s", buildVersion, buildCommit, buildDate)
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func BuildInfo() (version, commit, date string) {
	return buildVersion, buildCommit, buildDate
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
