// Package checks is the builtin check library: hand-written heuristics
// that the declarative rule grammar cannot express. Each check registers
// itself under its handler name; cmd/docmedic blank-imports this package.
package checks

import (
	"regexp"

	"docmedic/internal/mdscan"
	"docmedic/internal/rules"
)

// Documentation tree conventions shared by the builtin checks.
const (
	srsPath      = "docs/srs.md"
	glossaryPath = "docs/glossary.md"
	designDir    = "docs/design"
	docGlob      = "docs/**/*.md"
)

// Length thresholds for the paired summary heuristics.
const (
	longDocMinLines  = 200
	shortDocMaxLines = 30
)

var (
	// summaryMarkerRe recognizes a summary section: a "Summary" heading
	// of any rank, or a bold "**Summary**" lead-in.
	summaryMarkerRe = regexp.MustCompile(`(?i)^(?:#{1,6}\s+summary\b|\*\*summary\*\*)`)

	// reqHeadingRe captures the requirement identifier that heads a
	// requirement block; reqBoundaryRe closes the block at any same- or
	// higher-ranked heading.
	reqHeadingRe  = regexp.MustCompile(`^###\s+(REQ-[A-Z0-9]+-\d+)\b`)
	reqBoundaryRe = regexp.MustCompile(`^#{1,3}\s`)

	// reqIDRe matches a requirement identifier anywhere in text.
	reqIDRe = regexp.MustCompile(`\bREQ-[A-Z0-9]+-\d+\b`)

	// attrRowRe matches one attribute-table row: | **Label** | value |
	attrRowRe = regexp.MustCompile(`^\|\s*\*\*([A-Za-z]+)\*\*\s*\|(.*)\|\s*$`)

	// glossaryTermRe captures the term and definition of one glossary
	// entry: - **Term**: definition
	glossaryTermRe = regexp.MustCompile(`^\s*[-*]\s+\*\*([^*]+)\*\*:\s*(.*)$`)

	// acronymRe matches an all-caps term of length >= 2.
	acronymRe = regexp.MustCompile(`^[A-Z][A-Z0-9]+$`)

	lowercaseRe = regexp.MustCompile(`[a-z]`)

	// sourceRefRe matches a source-file path, which has no business in a
	// requirement attribute row.
	sourceRefRe = regexp.MustCompile(`\b(?:src|lib)/[A-Za-z0-9_./-]+\.(?:rs|go|py|c|cc|cpp|h|ts|js)\b`)

	// designRefRe matches a reference to a design-phase artifact.
	designRefRe = regexp.MustCompile(`docs/design/[A-Za-z0-9_.-]+`)
)

// requiredAttr is one mandatory attribute row of a requirement block. A
// row satisfies the attribute when its label matches any accepted
// spelling.
type requiredAttr struct {
	name      string
	spellings []string
}

var requiredAttributes = []requiredAttr{
	{name: "Priority", spellings: []string{"Priority"}},
	{name: "State", spellings: []string{"State"}},
	{name: "Verification", spellings: []string{"Verification"}},
	{name: "Trace", spellings: []string{"Trace", "Traces"}},
	{name: "Acceptance", spellings: []string{"Acceptance"}},
}

// missingAttributes returns the names of required attributes absent from a
// requirement block, in catalogue order.
func missingAttributes(body string) []string {
	present := make(map[string]struct{})
	for _, line := range mdscan.SplitLines(body) {
		if m := attrRowRe.FindStringSubmatch(line); len(m) > 1 {
			present[m[1]] = struct{}{}
		}
	}

	var missing []string
	for _, attr := range requiredAttributes {
		found := false
		for _, s := range attr.spellings {
			if _, ok := present[s]; ok {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, attr.name)
		}
	}
	return missing
}

func violation(path, message string) rules.Violation {
	return rules.Violation{Path: path, Message: message}
}
