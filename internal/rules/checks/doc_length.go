package checks

import (
	"fmt"

	"docmedic/internal/globpat"
	"docmedic/internal/mdscan"
	"docmedic/internal/project"
	"docmedic/internal/rules"
)

// LongDocSummaryCheck requires documentation files of longDocMinLines or
// more to open with a summary section. Vacuous Pass when the project has
// no candidate documents.
type LongDocSummaryCheck struct{}

func (LongDocSummaryCheck) Evaluate(snap *project.Snapshot) rules.CheckResult {
	var violations []rules.Violation
	forEachDoc(snap, func(path string, lines []string) {
		if len(lines) >= longDocMinLines && !hasSummaryMarker(lines) {
			violations = append(violations, violation(path,
				fmt.Sprintf("%s has %d lines (>= %d) but no summary section", path, len(lines), longDocMinLines)))
		}
	})
	return rules.Fail(violations)
}

// ShortDocNoSummaryCheck is the paired inverse: documents under
// shortDocMaxLines lines should not carry a summary section.
type ShortDocNoSummaryCheck struct{}

func (ShortDocNoSummaryCheck) Evaluate(snap *project.Snapshot) rules.CheckResult {
	var violations []rules.Violation
	forEachDoc(snap, func(path string, lines []string) {
		if len(lines) < shortDocMaxLines && hasSummaryMarker(lines) {
			violations = append(violations, violation(path,
				fmt.Sprintf("%s has only %d lines but carries a summary section", path, len(lines))))
		}
	})
	return rules.Fail(violations)
}

// forEachDoc visits every readable candidate document. Unreadable files
// are excluded, never fatal.
func forEachDoc(snap *project.Snapshot, visit func(path string, lines []string)) {
	files, ok := globpat.Match(docGlob, snap.Files)
	if !ok {
		return
	}
	for _, f := range files {
		content, err := snap.ReadFile(f)
		if err != nil {
			continue
		}
		visit(f, mdscan.SplitLines(content))
	}
}

func hasSummaryMarker(lines []string) bool {
	for _, line := range lines {
		if summaryMarkerRe.MatchString(line) {
			return true
		}
	}
	return false
}

func init() {
	rules.RegisterBuiltin(rules.HandlerLongDocSummary, LongDocSummaryCheck{})
	rules.RegisterBuiltin(rules.HandlerShortDocNoSummary, ShortDocNoSummaryCheck{})
}
