// Package globpat compiles a restricted glob grammar into anchored
// regular expressions for matching slash-separated, root-relative paths.
//
// Grammar:
//   - `?`    matches exactly one character other than `/`
//   - `*`    matches a run of zero or more characters other than `/`
//   - `**/`  at a segment boundary matches zero or more whole path
//     segments, so `**/name` also matches a top-level `name`
//   - `**`   anywhere else matches anything, including `/`
//   - every other character matches itself
package globpat

import (
	"regexp"
	"strings"
)

// maxGlobLen bounds pattern size so a pathological rule definition cannot
// produce an unbounded regexp.
const maxGlobLen = 512

// Compile translates glob into an anchored path matcher. The returned
// matcher must match the whole candidate path, never a substring. ok is
// false when the glob cannot be compiled; callers treat that as "this rule
// cannot be evaluated" rather than an error.
func Compile(glob string) (*regexp.Regexp, bool) {
	if glob == "" || len(glob) > maxGlobLen {
		return nil, false
	}

	var b strings.Builder
	b.WriteString(`\A`)

	runes := []rune(glob)
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '*':
			if i+1 < len(runes) && runes[i+1] == '*' {
				// `**/` consumes whole segments; a bare `**` crosses
				// separators unrestricted.
				if i+2 < len(runes) && runes[i+2] == '/' {
					b.WriteString(`(?:[^/]+/)*`)
					i += 2
				} else {
					b.WriteString(`.*`)
					i++
				}
				continue
			}
			b.WriteString(`[^/]*`)
		case '?':
			b.WriteString(`[^/]`)
		default:
			b.WriteString(regexp.QuoteMeta(string(runes[i])))
		}
	}
	b.WriteString(`\z`)

	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, false
	}
	return re, true
}

// Match reports which of the given root-relative paths match glob.
// A glob that fails to compile matches nothing and ok is false.
func Match(glob string, paths []string) (matched []string, ok bool) {
	re, ok := Compile(glob)
	if !ok {
		return nil, false
	}
	for _, p := range paths {
		if re.MatchString(p) {
			matched = append(matched, p)
		}
	}
	return matched, true
}
