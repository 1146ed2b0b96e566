// Package mdscan provides the shared line scanner that slices a document
// into labeled blocks bounded by heading rank. Every "does this labeled
// section contain attribute X" check is built on it.
package mdscan

import (
	"regexp"
	"strings"
)

// Section is one labeled block: the identifier captured by the heading
// pattern and the block text from the heading line up to (excluding) the
// next boundary line.
type Section struct {
	ID   string
	Body string
}

// Scan walks lines exactly once and returns the sections delimited by
// heading and boundary. heading must capture the section identifier in its
// first group; boundary marks where a block ends (typically a same- or
// higher-ranked heading). A heading line both closes the current block and
// may open the next one, so boundary should be a superset of heading.
// O(n) in document length, no backtracking.
func Scan(lines []string, heading, boundary *regexp.Regexp) []Section {
	var sections []Section
	var body []string
	var id string
	open := false

	flush := func() {
		if open {
			sections = append(sections, Section{ID: id, Body: strings.Join(body, "\n")})
			open = false
			body = nil
		}
	}

	for _, line := range lines {
		if open && boundary.MatchString(line) {
			flush()
		}
		if !open {
			if m := heading.FindStringSubmatch(line); len(m) > 1 {
				open = true
				id = m[1]
			} else {
				continue
			}
		}
		body = append(body, line)
	}
	flush()

	return sections
}

// SplitLines breaks a document into lines, tolerating CRLF endings.
func SplitLines(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	return strings.Split(content, "\n")
}
