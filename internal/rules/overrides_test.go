package rules

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const overridesYAML = `rules:
  - id: 1
    category: structure
    description: "README.rst must exist instead"
    severity: error
    check: file_exists
    path: README.rst
  - id: 200
    category: content
    description: "changelog must mention unreleased"
    severity: info
    check: file_content_matches
    path: CHANGELOG.md
    pattern: "(?i)unreleased"
    depends_on: [1]
`

func writeRulesFile(t *testing.T, content string) (afero.Fs, string) {
	t.Helper()
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/rules.yaml", []byte(content), 0o644))
	return fsys, "/rules.yaml"
}

func TestLoadOverrides(t *testing.T) {
	fsys, path := writeRulesFile(t, overridesYAML)

	rules, err := LoadOverrides(fsys, path)
	require.NoError(t, err)
	require.Len(t, rules, 2)

	assert.Equal(t, 1, rules[0].ID)
	assert.Equal(t, ShapeFileExists, rules[0].Shape.Kind)
	assert.Equal(t, "README.rst", rules[0].Shape.Path)

	assert.Equal(t, 200, rules[1].ID)
	assert.Equal(t, []int{1}, rules[1].DependsOn)
}

func TestLoadOverridesRejectsBadRecords(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown shape", "rules:\n  - id: 1\n    category: x\n    severity: error\n    check: nonsense\n"},
		{"bad severity", "rules:\n  - id: 1\n    category: x\n    severity: fatal\n    check: file_exists\n    path: a\n"},
		{"zero id", "rules:\n  - id: 0\n    category: x\n    severity: error\n    check: file_exists\n    path: a\n"},
		{"duplicate id", "rules:\n  - id: 1\n    category: x\n    severity: error\n    check: file_exists\n    path: a\n  - id: 1\n    category: x\n    severity: error\n    check: file_exists\n    path: b\n"},
		{"not yaml", "{{{{"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys, path := writeRulesFile(t, tt.yaml)
			_, err := LoadOverrides(fsys, path)
			assert.Error(t, err)
		})
	}
}

func TestLoadOverridesMissingFile(t *testing.T) {
	_, err := LoadOverrides(afero.NewMemMapFs(), "/nope.yaml")
	assert.Error(t, err)
}

func TestMerge(t *testing.T) {
	defaults := Defaults()
	override := Rule{
		ID: 1, Category: CategoryStructure, Severity: SeverityError,
		Description: "replaced",
		Shape:       Shape{Kind: ShapeFileExists, Path: "README.rst"},
	}
	extra := Rule{
		ID: 200, Category: CategoryContent, Severity: SeverityInfo,
		Description: "added",
		Shape:       Shape{Kind: ShapeFileExists, Path: "CHANGELOG.md"},
	}

	merged := Merge(defaults, []Rule{override, extra})
	assert.Len(t, merged, len(defaults)+1)

	byID := make(map[int]Rule, len(merged))
	for _, r := range merged {
		byID[r.ID] = r
	}
	assert.Equal(t, "replaced", byID[1].Description)
	assert.Equal(t, "added", byID[200].Description)

	// Merged set is sorted by id.
	for i := 1; i < len(merged); i++ {
		assert.Less(t, merged[i-1].ID, merged[i].ID)
	}
}

func TestDefaultsAreValid(t *testing.T) {
	seen := make(map[int]struct{})
	for _, r := range Defaults() {
		require.NoError(t, r.Validate(), "rule %d", r.ID)
		_, dup := seen[r.ID]
		require.False(t, dup, "duplicate default rule id %d", r.ID)
		seen[r.ID] = struct{}{}
	}
}

func TestCheckForUnknownBuiltinSkips(t *testing.T) {
	r := Rule{ID: 7, Category: "x", Severity: SeverityError, Shape: builtin("no-such-handler")}
	res := CheckFor(r).Evaluate(newSnap(t, map[string]string{"README.md": "x"}))
	assert.Equal(t, StatusSkipped, res.Status)
	assert.Contains(t, res.Reason, "no-such-handler")
}
