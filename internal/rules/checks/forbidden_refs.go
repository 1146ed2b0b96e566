package checks

import (
	"fmt"

	"docmedic/internal/mdscan"
	"docmedic/internal/project"
	"docmedic/internal/rules"
)

// reqBlocks loads the requirement blocks of docs/srs.md for the
// forbidden-reference checks. done is true when the caller should return
// res as-is (missing, unreadable, or empty SRS — all inapplicable here;
// the mandatory-artifact failure belongs to SrsAttributesCheck alone).
func reqBlocks(snap *project.Snapshot) (sections []mdscan.Section, res rules.CheckResult, done bool) {
	if !snap.HasFile(srsPath) {
		return nil, rules.Skipf("%s does not exist", srsPath), true
	}
	content, err := snap.ReadFile(srsPath)
	if err != nil {
		return nil, rules.Skipf("%s is unreadable", srsPath), true
	}
	sections = mdscan.Scan(mdscan.SplitLines(content), reqHeadingRe, reqBoundaryRe)
	if len(sections) == 0 {
		return nil, rules.Skipf("no requirement blocks found in %s", srsPath), true
	}
	return sections, rules.CheckResult{}, false
}

// NoSourceRefsCheck forbids source-file paths in requirement attribute
// rows: requirements describe behavior, not implementation locations. At
// most one violation per block, citing the offending attribute label.
type NoSourceRefsCheck struct{}

func (NoSourceRefsCheck) Evaluate(snap *project.Snapshot) rules.CheckResult {
	sections, res, done := reqBlocks(snap)
	if done {
		return res
	}

	var violations []rules.Violation
	for _, sec := range sections {
		for _, line := range mdscan.SplitLines(sec.Body) {
			m := attrRowRe.FindStringSubmatch(line)
			if len(m) < 3 || !sourceRefRe.MatchString(m[2]) {
				continue
			}
			violations = append(violations, violation(srsPath,
				fmt.Sprintf("%s: attribute %q references a source file", sec.ID, m[1])))
			break
		}
	}
	return rules.Fail(violations)
}

// NoDesignRefsCheck forbids references to design-phase artifacts in
// attribute rows other than the Trace attribute, which is exactly where
// downstream references belong.
type NoDesignRefsCheck struct{}

func (NoDesignRefsCheck) Evaluate(snap *project.Snapshot) rules.CheckResult {
	sections, res, done := reqBlocks(snap)
	if done {
		return res
	}

	var violations []rules.Violation
	for _, sec := range sections {
		for _, line := range mdscan.SplitLines(sec.Body) {
			m := attrRowRe.FindStringSubmatch(line)
			if len(m) < 3 {
				continue
			}
			if m[1] == "Trace" || m[1] == "Traces" {
				continue
			}
			if !designRefRe.MatchString(m[2]) {
				continue
			}
			violations = append(violations, violation(srsPath,
				fmt.Sprintf("%s: attribute %q references a design document; move the reference to the Trace attribute", sec.ID, m[1])))
			break
		}
	}
	return rules.Fail(violations)
}

func init() {
	rules.RegisterBuiltin(rules.HandlerNoSourceRefs, NoSourceRefsCheck{})
	rules.RegisterBuiltin(rules.HandlerNoDesignRefs, NoDesignRefsCheck{})
}
