package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"docmedic/internal/flags"
	"docmedic/internal/rules"
)

var (
	rulesListQuiet bool
	rulesFile      string
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Manage and list rules",
	Long: `Manage DocMedic rules.

This command group helps you discover which rules exist and what each rule
checks. Rules are evaluated during scans (see "docmedic scan --help").

Examples:
  # List all available rules
  docmedic rules list

  # List the catalogue with your overrides merged in
  docmedic rules list --rules-file rules.yaml
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available rules",
	Long: `List all rules in the catalogue, sorted by rule ID.

When --rules-file is given, overrides are merged in first, so the listing
matches what a scan with the same flag would evaluate.

Examples:
  docmedic rules list

Output:
  A vertical list of rules:
    ----------------------------------------
    RULE: {ID}
    ----------------------------------------
    {DESCRIPTION}
    {DETAILS}
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ruleSet, err := catalogue()
		if err != nil {
			return err
		}
		for _, r := range ruleSet {
			if rulesListQuiet {
				fmt.Fprintln(cmd.OutOrStdout(), r.ID)
			} else {
				printRule(cmd.OutOrStdout(), r)
			}
		}
		return nil
	},
}

var rulesShowCmd = &cobra.Command{
	Use:   "show [rule-id]",
	Short: "Show details of a specific rule",
	Long: `Show details of a specific rule by its numeric ID.

Examples:
  docmedic rules show 44
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid rule id %q", args[0])
		}
		ruleSet, err := catalogue()
		if err != nil {
			return err
		}
		for _, r := range ruleSet {
			if r.ID == id {
				printRule(cmd.OutOrStdout(), r)
				return nil
			}
		}
		return fmt.Errorf("rule not found: %d", id)
	},
}

func catalogue() ([]rules.Rule, error) {
	ruleSet := rules.Defaults()
	if rulesFile == "" {
		return ruleSet, nil
	}
	overrides, err := rules.LoadOverrides(afero.NewOsFs(), rulesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load rule overrides: %w", err)
	}
	return rules.Merge(ruleSet, overrides), nil
}

func printRule(w io.Writer, r rules.Rule) {
	bold := color.New(color.Bold)
	fmt.Fprintln(w, "----------------------------------------")
	bold.Fprintf(w, "RULE: %d\n", r.ID)
	fmt.Fprintln(w, "----------------------------------------")
	fmt.Fprintln(w, r.Description)
	fmt.Fprintf(w, "Category: %s  Severity: %s\n", r.Category, r.Severity)

	if r.Shape.Kind == rules.ShapeBuiltin {
		fmt.Fprintf(w, "Check:    builtin (%s)\n", r.Shape.Handler)
	} else {
		fmt.Fprintf(w, "Check:    %s\n", r.Shape.Kind)
	}
	if r.Shape.Path != "" {
		fmt.Fprintf(w, "Path:     %s\n", r.Shape.Path)
	}
	if r.Shape.Glob != "" {
		fmt.Fprintf(w, "Glob:     %s\n", r.Shape.Glob)
	}
	if r.Shape.Pattern != "" {
		fmt.Fprintf(w, "Pattern:  %s\n", r.Shape.Pattern)
	}
	if r.Shape.Key != "" {
		fmt.Fprintf(w, "Key:      %s\n", r.Shape.Key)
	}
	if r.ProjectKind != "" {
		fmt.Fprintf(w, "Applies:  %s projects only\n", r.ProjectKind)
	}
	if r.SizeClass != "" {
		fmt.Fprintf(w, "Applies:  %s projects only\n", r.SizeClass)
	}
	if len(r.DependsOn) > 0 {
		deps := make([]string, len(r.DependsOn))
		for i, d := range r.DependsOn {
			deps[i] = strconv.Itoa(d)
		}
		fmt.Fprintf(w, "Depends:  %s\n", strings.Join(deps, ", "))
	}
	if r.FixHint != "" {
		fmt.Fprintf(w, "Fix:      %s\n", r.FixHint)
	}
	fmt.Fprintln(w)
}

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.AddCommand(rulesListCmd)
	rulesCmd.AddCommand(rulesShowCmd)
	rulesCmd.PersistentFlags().StringVar(&rulesFile, flags.FlagRulesFile, "", "Merge rule overrides from this YAML file before listing")
	rulesListCmd.Flags().BoolVarP(&rulesListQuiet, "quiet", "q", false, "Only print rule IDs")
}
