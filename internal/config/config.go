// Package config resolves scan configuration from defaults, an optional
// YAML config file, environment variables, and CLI flags, in that order
// of increasing precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const (
	DefaultConsoleFormat = "text"
	DefaultConcurrency   = 4

	envPrefix = "DOCMEDIC_"
)

// Config is the resolved scan configuration.
type Config struct {
	// Project targeting.
	Root    string `koanf:"root"`
	Kind    string `koanf:"kind"`
	Module  string `koanf:"module"`
	Preload bool   `koanf:"preload"`

	// Rule selection.
	Rules     string `koanf:"rules"`
	RulesFile string `koanf:"rules_file"`

	// Output.
	ConsoleFormat string   `koanf:"console_format"`
	FilterStatus  []string `koanf:"filter_status"`
	NoConsole     bool     `koanf:"no_console"`
	Out           string   `koanf:"out"`
	OutFormat     string   `koanf:"out_format"`
	Report        string   `koanf:"report"`

	// Runtime.
	Concurrency int    `koanf:"concurrency"`
	Verbose     bool   `koanf:"verbose"`
	LogFile     string `koanf:"log_file"`
}

// DefaultConfigFile is the XDG location consulted when no --config flag
// is given.
func DefaultConfigFile() string {
	return filepath.Join(xdg.ConfigHome, "docmedic", "config.yaml")
}

// DefaultRulesFile is the XDG location of user rule overrides, applied
// when it exists and no --rules-file flag is given.
func DefaultRulesFile() string {
	return filepath.Join(xdg.ConfigHome, "docmedic", "rules.yaml")
}

// Load resolves the configuration. Precedence, lowest to highest:
// built-in defaults, config file, DOCMEDIC_* environment variables,
// explicitly set CLI flags.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]any{
		"root":           ".",
		"console_format": DefaultConsoleFormat,
		"concurrency":    DefaultConcurrency,
	}
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if cfgFile == "" {
		if _, err := os.Stat(DefaultConfigFile()); err == nil {
			cfgFile = DefaultConfigFile()
		}
	}
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
	}

	// DOCMEDIC_RULES_FILE -> rules_file
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			// Flag names are kebab-case, config keys snake_case.
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if cfg.RulesFile == "" {
		if _, err := os.Stat(DefaultRulesFile()); err == nil {
			cfg.RulesFile = DefaultRulesFile()
		}
	}

	return &cfg, nil
}

// Validate rejects value combinations the engine cannot run with.
func (c *Config) Validate() error {
	if c.Root == "" {
		return fmt.Errorf("project root is required")
	}
	switch c.ConsoleFormat {
	case "text", "json", "ndjson":
	default:
		return fmt.Errorf("invalid console format %q (must be text|json|ndjson)", c.ConsoleFormat)
	}
	switch c.Kind {
	case "", "open-source", "internal":
	default:
		return fmt.Errorf("invalid project kind %q (must be open-source|internal)", c.Kind)
	}
	if c.OutFormat != "" && c.OutFormat != "json" && c.OutFormat != "ndjson" {
		return fmt.Errorf("invalid output format %q (must be json|ndjson)", c.OutFormat)
	}
	for _, st := range c.FilterStatus {
		switch strings.ToUpper(st) {
		case "PASS", "FAIL", "SKIPPED":
		default:
			return fmt.Errorf("invalid status filter %q (must be PASS|FAIL|SKIPPED)", st)
		}
	}
	if c.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be >= 1, got %d", c.Concurrency)
	}
	return nil
}
