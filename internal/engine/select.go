package engine

import (
	"fmt"
	"strconv"
	"strings"

	"docmedic/internal/rules"
)

// Select resolves a selector expression against the merged rule set. An
// empty selector selects everything in id order. Otherwise the selector
// is a comma-separated list of rule ids and category names; the result
// preserves the rule set's id order and is the order results are
// reported in.
func Select(all []rules.Rule, selector string) ([]rules.Rule, error) {
	if strings.TrimSpace(selector) == "" {
		return all, nil
	}

	wantIDs := make(map[int]struct{})
	wantCategories := make(map[string]struct{})
	for _, tok := range strings.Split(selector, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if id, err := strconv.Atoi(tok); err == nil {
			wantIDs[id] = struct{}{}
			continue
		}
		wantCategories[tok] = struct{}{}
	}

	known := make(map[string]struct{})
	for _, r := range all {
		known[r.Category] = struct{}{}
	}
	for cat := range wantCategories {
		if _, ok := known[cat]; !ok {
			return nil, fmt.Errorf("unknown rule category %q", cat)
		}
	}

	var selected []rules.Rule
	matchedIDs := make(map[int]struct{})
	for _, r := range all {
		_, byID := wantIDs[r.ID]
		_, byCat := wantCategories[r.Category]
		if byID || byCat {
			selected = append(selected, r)
			if byID {
				matchedIDs[r.ID] = struct{}{}
			}
		}
	}

	for id := range wantIDs {
		if _, ok := matchedIDs[id]; !ok {
			return nil, fmt.Errorf("rule not found: %d", id)
		}
	}

	return selected, nil
}
