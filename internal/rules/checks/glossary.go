package checks

import (
	"fmt"
	"strings"

	"docmedic/internal/mdscan"
	"docmedic/internal/project"
	"docmedic/internal/rules"
)

type glossaryEntry struct {
	term       string
	definition string
	line       int
}

// parseGlossary extracts the term entries of docs/glossary.md. ok is
// false when the glossary is absent or unreadable.
func parseGlossary(snap *project.Snapshot) (entries []glossaryEntry, ok bool) {
	if !snap.HasFile(glossaryPath) {
		return nil, false
	}
	content, err := snap.ReadFile(glossaryPath)
	if err != nil {
		return nil, false
	}
	for i, line := range mdscan.SplitLines(content) {
		if m := glossaryTermRe.FindStringSubmatch(line); len(m) > 2 {
			entries = append(entries, glossaryEntry{
				term:       strings.TrimSpace(m[1]),
				definition: strings.TrimSpace(m[2]),
				line:       i + 1,
			})
		}
	}
	return entries, true
}

// GlossaryAlphabetizedCheck fails for every adjacent pair of glossary
// terms out of case-insensitive lexical order. Zero or one terms pass
// trivially.
type GlossaryAlphabetizedCheck struct{}

func (GlossaryAlphabetizedCheck) Evaluate(snap *project.Snapshot) rules.CheckResult {
	entries, ok := parseGlossary(snap)
	if !ok {
		return rules.Skipf("%s does not exist", glossaryPath)
	}

	var violations []rules.Violation
	for i := 1; i < len(entries); i++ {
		prev := strings.ToLower(entries[i-1].term)
		cur := strings.ToLower(entries[i].term)
		if cur < prev {
			violations = append(violations, violation(glossaryPath,
				fmt.Sprintf("glossary term %q should precede %q (line %d)", cur, prev, entries[i].line)))
		}
	}
	return rules.Fail(violations)
}

// AcronymExpansionCheck requires every all-caps glossary term to be
// defined by text that actually spells something out: at least one word of
// the definition must contain a lowercase letter.
type AcronymExpansionCheck struct{}

func (AcronymExpansionCheck) Evaluate(snap *project.Snapshot) rules.CheckResult {
	entries, ok := parseGlossary(snap)
	if !ok {
		return rules.Skipf("%s does not exist", glossaryPath)
	}

	var violations []rules.Violation
	for _, e := range entries {
		if !acronymRe.MatchString(e.term) {
			continue
		}
		if !hasLowercaseWord(e.definition) {
			violations = append(violations, violation(glossaryPath,
				fmt.Sprintf("acronym %q (line %d) is not expanded: its definition contains no lowercase word", e.term, e.line)))
		}
	}
	return rules.Fail(violations)
}

func hasLowercaseWord(definition string) bool {
	for _, word := range strings.Fields(definition) {
		if lowercaseRe.MatchString(word) {
			return true
		}
	}
	return false
}

func init() {
	rules.RegisterBuiltin(rules.HandlerGlossaryAlphabet, GlossaryAlphabetizedCheck{})
	rules.RegisterBuiltin(rules.HandlerAcronymExpansion, AcronymExpansionCheck{})
}
