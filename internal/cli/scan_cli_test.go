package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docmedic/internal/config"
	"docmedic/internal/engine"
	_ "docmedic/internal/rules/checks"
)

func scanConfig(root string) *config.Config {
	return &config.Config{
		Root:          root,
		ConsoleFormat: "text",
		Concurrency:   4,
	}
}

func writeFixture(t *testing.T, fsys afero.Fs, files map[string]string) {
	t.Helper()
	for p, content := range files {
		require.NoError(t, afero.WriteFile(fsys, p, []byte(content), 0o644))
	}
}

// compliantFixture satisfies every default rule.
func compliantFixture(t *testing.T, fsys afero.Fs) {
	writeFixture(t, fsys, map[string]string{
		"/proj/README.md":           "# Demo\nA demo project.",
		"/proj/LICENSE":             "MIT",
		"/proj/CONTRIBUTING.md":     "please do",
		"/proj/Cargo.toml":          "[package]\nname = \"demo\"\nversion = \"1.0.0\"\ndescription = \"demo\"\n",
		"/proj/docs/srs.md":         "# SRS\n### REQ-CORE-001 Core\n| **Priority** | high |\n| **State** | approved |\n| **Verification** | test |\n| **Trace** | upstream |\n| **Acceptance** | ok |\n",
		"/proj/docs/glossary.md":    "- **API**: Application Programming Interface\n- **SDK**: Software Development Kit\n",
		"/proj/docs/design/core.md": "Implements REQ-CORE-001.",
	})
}

func TestRunScanCleanProject(t *testing.T) {
	fsys := afero.NewMemMapFs()
	compliantFixture(t, fsys)

	var console bytes.Buffer
	code, err := runScan(context.Background(), fsys, scanConfig("/proj"), &console)
	require.NoError(t, err)

	assert.Equal(t, engine.ExitClean, code)
	assert.Contains(t, console.String(), "PASS")
}

func TestRunScanFailingProject(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFixture(t, fsys, map[string]string{
		"/proj/notes.txt": "no docs here",
	})

	var console bytes.Buffer
	code, err := runScan(context.Background(), fsys, scanConfig("/proj"), &console)
	require.NoError(t, err)

	assert.Equal(t, engine.ExitFailures, code)
	assert.Contains(t, console.String(), "FAIL")
}

func TestRunScanMissingRootIsFatal(t *testing.T) {
	fsys := afero.NewMemMapFs()

	var console bytes.Buffer
	code, err := runScan(context.Background(), fsys, scanConfig("/nope"), &console)
	require.Error(t, err)
	assert.Equal(t, engine.ExitFatal, code)
}

func TestRunScanBadSelectorIsFatal(t *testing.T) {
	fsys := afero.NewMemMapFs()
	compliantFixture(t, fsys)

	cfg := scanConfig("/proj")
	cfg.Rules = "no-such-category"

	var console bytes.Buffer
	code, err := runScan(context.Background(), fsys, cfg, &console)
	require.Error(t, err)
	assert.Equal(t, engine.ExitFatal, code)
}

func TestRunScanWritesStructuredOut(t *testing.T) {
	fsys := afero.NewMemMapFs()
	compliantFixture(t, fsys)

	cfg := scanConfig("/proj")
	cfg.NoConsole = true
	cfg.Out = "/results.ndjson"

	var console bytes.Buffer
	code, err := runScan(context.Background(), fsys, cfg, &console)
	require.NoError(t, err)
	assert.Equal(t, engine.ExitClean, code)
	assert.Empty(t, console.String())

	raw, err := afero.ReadFile(fsys, "/results.ndjson")
	require.NoError(t, err)
	s := string(raw)
	assert.Contains(t, s, `"type":"run.started"`)
	assert.Contains(t, s, `"type":"rule.result"`)
	assert.Contains(t, s, `"type":"run.finished"`)
}

func TestRunScanWritesReport(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFixture(t, fsys, map[string]string{
		"/proj/notes.txt": "no docs here",
	})

	cfg := scanConfig("/proj")
	cfg.NoConsole = true
	cfg.Report = "/report.md"

	var console bytes.Buffer
	code, err := runScan(context.Background(), fsys, cfg, &console)
	require.NoError(t, err)
	assert.Equal(t, engine.ExitFailures, code)

	raw, err := afero.ReadFile(fsys, "/report.md")
	require.NoError(t, err)
	s := string(raw)
	assert.Contains(t, s, "# docmedic scan report")
	assert.Contains(t, s, "## Failures")
	assert.Contains(t, s, "Exit code: 1")
}

func TestRunScanRuleOverrides(t *testing.T) {
	fsys := afero.NewMemMapFs()
	compliantFixture(t, fsys)
	// Override rule 1 to demand a file the fixture does not have.
	writeFixture(t, fsys, map[string]string{
		"/rules.yaml": strings.Join([]string{
			"rules:",
			"  - id: 1",
			"    category: structure",
			"    description: changelog must exist",
			"    severity: error",
			"    check: file_exists",
			"    path: CHANGELOG.md",
			"",
		}, "\n"),
	})

	cfg := scanConfig("/proj")
	cfg.RulesFile = "/rules.yaml"
	cfg.Rules = "1"

	var console bytes.Buffer
	code, err := runScan(context.Background(), fsys, cfg, &console)
	require.NoError(t, err)
	assert.Equal(t, engine.ExitFailures, code)
	assert.Contains(t, console.String(), "changelog must exist")
}

func TestScanHelpDocumentsOutputAndExitCodes(t *testing.T) {
	// Command help must remain agent-friendly and document machine-readable
	// output and exit status semantics.
	required := []string{
		"Output:",
		"Exit codes:",
		"NDJSON mode emits",
		"run.started",
		"rule.result",
		"run.finished",
	}
	for _, r := range required {
		assert.Contains(t, scanCmd.Long, r)
	}
}
