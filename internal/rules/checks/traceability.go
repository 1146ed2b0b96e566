package checks

import (
	"fmt"
	"strings"

	"docmedic/internal/project"
	"docmedic/internal/rules"
)

// DesignTraceabilityCheck requires every design document to reference an
// upstream requirement id or the SRS itself. Skipped when the design
// phase directory does not exist or holds no documents.
type DesignTraceabilityCheck struct{}

func (DesignTraceabilityCheck) Evaluate(snap *project.Snapshot) rules.CheckResult {
	if !snap.HasDir(designDir) {
		return rules.Skipf("%s/ does not exist", designDir)
	}

	files := designDocs(snap, designDir)
	if len(files) == 0 {
		return rules.Skipf("no design documents found under %s/", designDir)
	}

	return rules.Fail(untracedDesignDocs(snap, files))
}

// designDocs lists the markdown files under dir, at any depth.
func designDocs(snap *project.Snapshot, dir string) []string {
	var files []string
	for _, f := range snap.Files {
		if strings.HasPrefix(f, dir+"/") && strings.HasSuffix(f, ".md") {
			files = append(files, f)
		}
	}
	return files
}

// untracedDesignDocs returns one violation per design document whose
// content references neither a requirement id nor the SRS filename.
// Unreadable files are excluded.
func untracedDesignDocs(snap *project.Snapshot, files []string) []rules.Violation {
	var violations []rules.Violation
	for _, f := range files {
		content, err := snap.ReadFile(f)
		if err != nil {
			continue
		}
		if reqIDRe.MatchString(content) || strings.Contains(content, "srs.md") {
			continue
		}
		violations = append(violations, violation(f,
			fmt.Sprintf("%s does not reference a requirement id or the SRS", f)))
	}
	return violations
}

func init() {
	rules.RegisterBuiltin(rules.HandlerDesignTraceability, DesignTraceabilityCheck{})
}
