// Package flags defines canonical CLI flag names shared across the CLI
// and config loading. These are flag *names* without leading dashes.
package flags

const (
	// Project targeting
	FlagRoot    = "root"
	FlagKind    = "kind"
	FlagModule  = "module"
	FlagPreload = "preload"

	// Rules
	FlagRules     = "rules"
	FlagRulesFile = "rules-file"

	// Output
	FlagConsoleFormat = "console-format"
	FlagFilterStatus  = "filter-status"
	FlagNoConsole     = "no-console"
	FlagOut           = "out"
	FlagOutFormat     = "out-format"
	FlagReport        = "report"

	// Runtime
	FlagConfig      = "config"
	FlagConcurrency = "concurrency"
	FlagVerbose     = "verbose"
	FlagLogFile     = "log-file"
)
