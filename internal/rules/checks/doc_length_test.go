package checks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docmedic/internal/rules"
)

func TestLongDocSummary(t *testing.T) {
	t.Run("long doc without summary fails citing line count", func(t *testing.T) {
		snap := newSnap(t, map[string]string{"docs/handbook.md": docOfLines(210)})

		res := LongDocSummaryCheck{}.Evaluate(snap)
		require.Equal(t, rules.StatusFail, res.Status)
		require.Len(t, res.Violations, 1)
		assert.Contains(t, res.Violations[0].Message, "210")
	})

	t.Run("long doc with summary heading passes", func(t *testing.T) {
		snap := newSnap(t, map[string]string{"docs/handbook.md": docOfLines(210, "## Summary", "covers everything")})
		assert.Equal(t, rules.StatusPass, LongDocSummaryCheck{}.Evaluate(snap).Status)
	})

	t.Run("bold summary marker is accepted", func(t *testing.T) {
		snap := newSnap(t, map[string]string{"docs/handbook.md": docOfLines(210, "**Summary**: covers everything")})
		assert.Equal(t, rules.StatusPass, LongDocSummaryCheck{}.Evaluate(snap).Status)
	})

	t.Run("vacuous pass without candidate documents", func(t *testing.T) {
		snap := newSnap(t, map[string]string{"README.md": "# hi"})
		assert.Equal(t, rules.StatusPass, LongDocSummaryCheck{}.Evaluate(snap).Status)
	})
}

func TestShortDocNoSummary(t *testing.T) {
	t.Run("short doc with summary fails", func(t *testing.T) {
		snap := newSnap(t, map[string]string{"docs/note.md": docOfLines(10, "## Summary")})

		res := ShortDocNoSummaryCheck{}.Evaluate(snap)
		require.Equal(t, rules.StatusFail, res.Status)
		assert.Equal(t, "docs/note.md", res.Violations[0].Path)
	})

	t.Run("short doc without summary passes", func(t *testing.T) {
		snap := newSnap(t, map[string]string{"docs/note.md": docOfLines(10)})
		assert.Equal(t, rules.StatusPass, ShortDocNoSummaryCheck{}.Evaluate(snap).Status)
	})

	t.Run("long doc with summary is not this rule's business", func(t *testing.T) {
		snap := newSnap(t, map[string]string{"docs/big.md": docOfLines(300, "## Summary")})
		assert.Equal(t, rules.StatusPass, ShortDocNoSummaryCheck{}.Evaluate(snap).Status)
	})
}
