package checks

import (
	"fmt"
	"strings"

	"docmedic/internal/mdscan"
	"docmedic/internal/project"
	"docmedic/internal/rules"
)

// SrsAttributesCheck verifies that every requirement block in docs/srs.md
// carries the required bold-labeled attribute rows. A block missing any is
// one failure listing all missing names. The SRS itself is a mandatory
// artifact: its absence is a failure, while an SRS with zero requirement
// blocks is merely skipped.
type SrsAttributesCheck struct{}

func (SrsAttributesCheck) Evaluate(snap *project.Snapshot) rules.CheckResult {
	if !snap.HasFile(srsPath) {
		return rules.Fail([]rules.Violation{violation(srsPath,
			fmt.Sprintf("mandatory requirements document %s is missing", srsPath))})
	}

	content, err := snap.ReadFile(srsPath)
	if err != nil {
		return rules.Skipf("%s is unreadable", srsPath)
	}

	sections := mdscan.Scan(mdscan.SplitLines(content), reqHeadingRe, reqBoundaryRe)
	if len(sections) == 0 {
		return rules.Skipf("no requirement blocks found in %s", srsPath)
	}

	var violations []rules.Violation
	for _, sec := range sections {
		if missing := missingAttributes(sec.Body); len(missing) > 0 {
			violations = append(violations, violation(srsPath,
				fmt.Sprintf("%s is missing required attributes: %s", sec.ID, strings.Join(missing, ", "))))
		}
	}
	return rules.Fail(violations)
}

func init() {
	rules.RegisterBuiltin(rules.HandlerSrsAttributes, SrsAttributesCheck{})
}
