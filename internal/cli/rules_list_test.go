package cli

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docmedic/internal/rules"
)

func TestPrintRule(t *testing.T) {
	color.NoColor = true

	tests := []struct {
		name           string
		rule           rules.Rule
		expectedOutput []string
		notExpected    []string
	}{
		{
			name: "declarative rule",
			rule: rules.Rule{
				ID:          1,
				Category:    "structure",
				Description: "README.md must exist at the project root",
				Severity:    rules.SeverityError,
				Shape:       rules.Shape{Kind: rules.ShapeFileExists, Path: "README.md"},
				FixHint:     "create README.md",
			},
			expectedOutput: []string{
				"RULE: 1",
				"README.md must exist at the project root",
				"Category: structure  Severity: error",
				"Check:    file_exists",
				"Path:     README.md",
				"Fix:      create README.md",
			},
			notExpected: []string{
				"Glob:",
				"Depends:",
			},
		},
		{
			name: "builtin rule with dependencies",
			rule: rules.Rule{
				ID:          45,
				Category:    "traceability",
				Description: "every design doc must trace to a requirement",
				Severity:    rules.SeverityWarning,
				Shape:       rules.Shape{Kind: rules.ShapeBuiltin, Handler: rules.HandlerDesignTraceability},
				DependsOn:   []int{44},
			},
			expectedOutput: []string{
				"RULE: 45",
				"Check:    builtin (design-traceability)",
				"Depends:  44",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := new(bytes.Buffer)
			printRule(buf, tt.rule)
			output := buf.String()

			for _, exp := range tt.expectedOutput {
				assert.Contains(t, output, exp)
			}
			for _, notExp := range tt.notExpected {
				assert.NotContains(t, output, notExp)
			}
		})
	}
}

func TestRulesListCmd(t *testing.T) {
	color.NoColor = true

	t.Run("default output", func(t *testing.T) {
		buf := new(bytes.Buffer)
		rulesListCmd.SetOut(buf)

		require.NoError(t, rulesListCmd.RunE(rulesListCmd, nil))

		output := buf.String()
		assert.Contains(t, output, "----------------------------------------")
		for _, r := range rules.Defaults() {
			assert.Contains(t, output, r.Description)
		}
	})

	t.Run("quiet output", func(t *testing.T) {
		rulesListQuiet = true
		defer func() { rulesListQuiet = false }()

		buf := new(bytes.Buffer)
		rulesListCmd.SetOut(buf)

		require.NoError(t, rulesListCmd.RunE(rulesListCmd, nil))

		output := buf.String()
		assert.Contains(t, output, "1\n")
		assert.NotContains(t, output, "----------------------------------------")
	})
}

func TestRulesShowCmd(t *testing.T) {
	color.NoColor = true

	t.Run("existing rule", func(t *testing.T) {
		buf := new(bytes.Buffer)
		rulesShowCmd.SetOut(buf)

		require.NoError(t, rulesShowCmd.RunE(rulesShowCmd, []string{"44"}))
		assert.Contains(t, buf.String(), "RULE: 44")
	})

	t.Run("unknown rule", func(t *testing.T) {
		err := rulesShowCmd.RunE(rulesShowCmd, []string{"9999"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rule not found")
	})

	t.Run("non-numeric id", func(t *testing.T) {
		err := rulesShowCmd.RunE(rulesShowCmd, []string{"readme"})
		assert.Error(t, err)
	})
}
