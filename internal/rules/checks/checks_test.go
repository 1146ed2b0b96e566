package checks

import (
	"sort"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"docmedic/internal/project"
)

func newSnap(t *testing.T, files map[string]string) *project.Snapshot {
	t.Helper()
	fsys := afero.NewMemMapFs()
	paths := make([]string, 0, len(files))
	for p, content := range files {
		require.NoError(t, afero.WriteFile(fsys, "/proj/"+p, []byte(content), 0o644))
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return project.NewSnapshot(fsys, "/proj", paths, nil)
}

// docOfLines builds a markdown document with exactly n lines; optional
// header lines are placed first and count toward n.
func docOfLines(n int, header ...string) string {
	lines := make([]string, 0, n)
	lines = append(lines, header...)
	for len(lines) < n {
		lines = append(lines, "filler text")
	}
	return strings.Join(lines, "\n")
}

const completeReq = `### REQ-CORE-001 Parsing
| **Priority** | high |
| **State** | approved |
| **Verification** | test |
| **Trace** | docs/design/parser.md |
| **Acceptance** | parses all inputs |
`
