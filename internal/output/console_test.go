package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docmedic/internal/rules"
)

func init() {
	color.NoColor = true
}

func passResult(id int) rules.Result {
	return rules.Result{
		RuleID:      id,
		Category:    "structure",
		Description: "README.md must exist at the project root",
		Severity:    rules.SeverityError,
		Status:      rules.StatusPass,
	}
}

func failResult(id int) rules.Result {
	return rules.Result{
		RuleID:      id,
		Category:    "content",
		Description: "docs must not contain TBD",
		Severity:    rules.SeverityWarning,
		Status:      rules.StatusFail,
		Violations: []rules.Violation{
			{RuleID: id, Path: "docs/api.md", Message: "found forbidden pattern", Severity: rules.SeverityWarning},
		},
	}
}

func TestConsoleSinkText(t *testing.T) {
	var buf bytes.Buffer
	sink := NewConsoleSink(&buf, "text", nil)

	require.NoError(t, sink.Write(Event{Type: "run.started", Rules: 2}))
	require.NoError(t, sink.Write(passResult(1)))
	require.NoError(t, sink.Write(failResult(11)))
	require.NoError(t, sink.Write(rules.Result{RuleID: 5, Category: "structure", Status: rules.StatusSkipped, Reason: "rule applies to open-source projects only"}))
	require.NoError(t, sink.Close())

	out := buf.String()
	assert.Contains(t, out, "[PASS]   1 structure: README.md must exist at the project root")
	assert.Contains(t, out, "[FAIL]  11 content: docs must not contain TBD")
	assert.Contains(t, out, "docs/api.md: found forbidden pattern")
	assert.Contains(t, out, "skipped: rule applies to open-source projects only")
	// Lifecycle events are not rendered in text mode.
	assert.NotContains(t, out, "run.started")
}

func TestConsoleSinkStatusFilter(t *testing.T) {
	var buf bytes.Buffer
	sink := NewConsoleSink(&buf, "text", []string{"fail"})

	require.NoError(t, sink.Write(passResult(1)))
	require.NoError(t, sink.Write(failResult(11)))
	require.NoError(t, sink.Close())

	out := buf.String()
	assert.NotContains(t, out, "[PASS]")
	assert.Contains(t, out, "[FAIL]")
}

func TestConsoleSinkJSONAggregate(t *testing.T) {
	var buf bytes.Buffer
	sink := NewConsoleSink(&buf, "json", nil)

	require.NoError(t, sink.Write(Event{Type: "run.started", Rules: 1}))
	require.NoError(t, sink.Write(passResult(1)))
	require.NoError(t, sink.Close())

	var results []rules.Result
	require.NoError(t, json.Unmarshal(buf.Bytes(), &results))
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].RuleID)
	assert.Equal(t, rules.StatusPass, results[0].Status)
}

func TestConsoleSinkNDJSON(t *testing.T) {
	var buf bytes.Buffer
	sink := NewConsoleSink(&buf, "ndjson", nil)

	summary := rules.Summary{Total: 1, Passed: 1}
	require.NoError(t, sink.Write(Event{Type: "run.started", Project: "/proj", Rules: 1}))
	require.NoError(t, sink.Write(passResult(1)))
	require.NoError(t, sink.Write(Event{Type: "run.finished", Summary: &summary}))
	require.NoError(t, sink.Close())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)

	var started map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &started))
	assert.Equal(t, "run.started", started["type"])
	assert.Equal(t, "/proj", started["project"])

	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &result))
	assert.Equal(t, "rule.result", result["type"])
	assert.Equal(t, float64(1), result["rule_id"])

	var finished map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[2]), &finished))
	assert.Equal(t, "run.finished", finished["type"])
}

func TestConsoleSinkUnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	sink := NewConsoleSink(&buf, "xml", nil)
	assert.Error(t, sink.Write(passResult(1)))
}
