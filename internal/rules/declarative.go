package rules

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	"docmedic/internal/globpat"
	"docmedic/internal/mdscan"
	"docmedic/internal/project"
)

// DeclarativeCheck interprets every data-driven rule shape against a
// snapshot. A malformed pattern or glob in any shape degrades to SKIPPED
// with a reason naming the bad pattern; a single bad rule definition never
// aborts the run.
type DeclarativeCheck struct {
	Rule Rule
}

func (c DeclarativeCheck) Evaluate(snap *project.Snapshot) CheckResult {
	s := c.Rule.Shape
	switch s.Kind {
	case ShapeFileExists:
		return c.fileExists(snap)
	case ShapeDirExists:
		return c.dirExists(snap)
	case ShapeDirNotExists:
		return c.dirNotExists(snap)
	case ShapeFileContentMatches:
		return c.fileContent(snap, true)
	case ShapeFileContentNotMatch:
		return c.fileContent(snap, false)
	case ShapeGlobContentMatches:
		return c.globContentMatches(snap)
	case ShapeGlobContentNotMatch:
		return c.globContentNotMatches(snap)
	case ShapeGlobNamingMatches:
		return c.globNamingMatches(snap)
	case ShapeGlobNamingNotMatch:
		return c.globNamingNotMatches(snap)
	case ShapeManifestKeyExists:
		return c.manifestKey(snap, false)
	case ShapeManifestKeyMatches:
		return c.manifestKey(snap, true)
	case ShapeBuiltin:
		// Builtins are dispatched by CheckFor, never interpreted here.
		return Skipf("builtin shape %q reached the declarative interpreter", s.Handler)
	default:
		return Skipf("unknown check shape %q", s.Kind)
	}
}

func (c DeclarativeCheck) violation(relPath, message string) Violation {
	return Violation{
		RuleID:   c.Rule.ID,
		Path:     relPath,
		Message:  message,
		Severity: c.Rule.Severity,
		FixHint:  c.Rule.FixHint,
	}
}

func (c DeclarativeCheck) fileExists(snap *project.Snapshot) CheckResult {
	p := c.Rule.Shape.Path
	if snap.HasFile(p) && snap.IsRegularFile(p) {
		return Pass()
	}
	if snap.HasDir(p) {
		return Fail([]Violation{c.violation(p, fmt.Sprintf("%s exists but is a directory, expected a regular file", p))})
	}
	return Fail([]Violation{c.violation(p, fmt.Sprintf("required file %s is missing", p))})
}

func (c DeclarativeCheck) dirExists(snap *project.Snapshot) CheckResult {
	p := c.Rule.Shape.Path
	if snap.HasDir(p) {
		return Pass()
	}
	if snap.IsRegularFile(p) {
		return Fail([]Violation{c.violation(p, fmt.Sprintf("%s exists but is a file, expected a directory", p))})
	}
	return Fail([]Violation{c.violation(p, fmt.Sprintf("required directory %s is missing", p))})
}

func (c DeclarativeCheck) dirNotExists(snap *project.Snapshot) CheckResult {
	p := c.Rule.Shape.Path
	if !snap.HasDir(p) {
		return Pass()
	}
	msg := c.Rule.Shape.Message
	if msg == "" {
		msg = fmt.Sprintf("directory %s must not exist", p)
	}
	return Fail([]Violation{c.violation(p, msg)})
}

// fileContent covers FileContentMatches (want=true) and
// FileContentNotMatches (want=false). A missing or unreadable target file
// is SKIPPED for Matches; for NotMatches a missing file is a Pass, since
// there is nothing to violate.
func (c DeclarativeCheck) fileContent(snap *project.Snapshot, want bool) CheckResult {
	p := c.Rule.Shape.Path

	if !snap.HasFile(p) {
		if !want {
			return Pass()
		}
		return Skipf("file %s does not exist", p)
	}

	re, err := regexp.Compile(c.Rule.Shape.Pattern)
	if err != nil {
		return Skipf("invalid pattern %q: %v", c.Rule.Shape.Pattern, err)
	}

	content, err := snap.ReadFile(p)
	if err != nil {
		return Skipf("file %s is unreadable", p)
	}

	matched := re.MatchString(content)
	if matched == want {
		return Pass()
	}
	if want {
		return Fail([]Violation{c.violation(p, fmt.Sprintf("%s does not match required pattern %q", p, c.Rule.Shape.Pattern))})
	}
	return Fail([]Violation{c.violation(p, fmt.Sprintf("%s contains forbidden pattern %q", p, c.Rule.Shape.Pattern))})
}

// globContentMatches requires every file matched by the glob to contain
// the pattern. Zero matched files is a vacuous Pass: declarative content
// rules are opt-in to their subject, not mandatory when the subject class
// is absent. Unreadable files are excluded; remaining files still count.
func (c DeclarativeCheck) globContentMatches(snap *project.Snapshot) CheckResult {
	files, re, res, done := c.globTargets(snap)
	if done {
		return res
	}

	var violations []Violation
	for _, f := range files {
		content, err := snap.ReadFile(f)
		if err != nil {
			continue
		}
		if !re.MatchString(content) {
			violations = append(violations, c.violation(f, fmt.Sprintf("%s does not match required pattern %q", f, c.Rule.Shape.Pattern)))
		}
	}
	return Fail(violations)
}

// globContentNotMatches scans matched files line by line for the forbidden
// pattern. A line that also matches the exclude pattern is exempt. At most
// one violation is recorded per offending file.
func (c DeclarativeCheck) globContentNotMatches(snap *project.Snapshot) CheckResult {
	files, re, res, done := c.globTargets(snap)
	if done {
		return res
	}

	var exclude *regexp.Regexp
	if c.Rule.Shape.ExcludePattern != "" {
		var err error
		exclude, err = regexp.Compile(c.Rule.Shape.ExcludePattern)
		if err != nil {
			return Skipf("invalid exclude pattern %q: %v", c.Rule.Shape.ExcludePattern, err)
		}
	}

	var violations []Violation
	for _, f := range files {
		content, err := snap.ReadFile(f)
		if err != nil {
			continue
		}
		for i, line := range mdscan.SplitLines(content) {
			if !re.MatchString(line) {
				continue
			}
			if exclude != nil && exclude.MatchString(line) {
				continue
			}
			violations = append(violations, c.violation(f, fmt.Sprintf("line %d matches forbidden pattern %q", i+1, c.Rule.Shape.Pattern)))
			break
		}
	}
	return Fail(violations)
}

// globNamingMatches tests the base name of every matched file against the
// pattern; the full path is only used for glob resolution.
func (c DeclarativeCheck) globNamingMatches(snap *project.Snapshot) CheckResult {
	files, re, res, done := c.globTargets(snap)
	if done {
		return res
	}

	var violations []Violation
	for _, f := range files {
		if !re.MatchString(path.Base(f)) {
			violations = append(violations, c.violation(f, fmt.Sprintf("file name %q does not match required pattern %q", path.Base(f), c.Rule.Shape.Pattern)))
		}
	}
	return Fail(violations)
}

func (c DeclarativeCheck) globNamingNotMatches(snap *project.Snapshot) CheckResult {
	files, re, res, done := c.globTargets(snap)
	if done {
		return res
	}

	var violations []Violation
	for _, f := range files {
		if c.pathExcluded(f) {
			continue
		}
		if re.MatchString(path.Base(f)) {
			msg := c.Rule.Shape.Message
			if msg == "" {
				msg = fmt.Sprintf("file name %q matches forbidden pattern %q", path.Base(f), c.Rule.Shape.Pattern)
			}
			violations = append(violations, c.violation(f, msg))
		}
	}
	return Fail(violations)
}

func (c DeclarativeCheck) pathExcluded(rel string) bool {
	for _, prefix := range c.Rule.Shape.ExcludePaths {
		if strings.HasPrefix(rel, prefix) {
			return true
		}
	}
	return false
}

func (c DeclarativeCheck) manifestKey(snap *project.Snapshot, matchPattern bool) CheckResult {
	if snap.Manifest == nil {
		return Skip("no project manifest was parsed")
	}

	key := c.Rule.Shape.Key
	value, ok := snap.Manifest.Lookup(key)
	if !ok {
		return Fail([]Violation{c.violation(snap.Manifest.Path, fmt.Sprintf("manifest key %q is missing", key))})
	}
	if !matchPattern {
		return Pass()
	}

	re, err := regexp.Compile(c.Rule.Shape.Pattern)
	if err != nil {
		return Skipf("invalid pattern %q: %v", c.Rule.Shape.Pattern, err)
	}
	if re.MatchString(value) {
		return Pass()
	}
	v := c.violation(snap.Manifest.Path, fmt.Sprintf("manifest key %q does not match required pattern", key))
	v.Expected = c.Rule.Shape.Pattern
	v.Actual = value
	return Fail([]Violation{v})
}

// globTargets resolves the glob and content pattern shared by the glob
// shapes. done is true when the caller should return res immediately:
// either the rule definition is unusable (SKIPPED) or zero files matched
// (vacuous Pass).
func (c DeclarativeCheck) globTargets(snap *project.Snapshot) (files []string, re *regexp.Regexp, res CheckResult, done bool) {
	matcher, ok := globpat.Compile(c.Rule.Shape.Glob)
	if !ok {
		return nil, nil, Skipf("invalid glob %q", c.Rule.Shape.Glob), true
	}

	re, err := regexp.Compile(c.Rule.Shape.Pattern)
	if err != nil {
		return nil, nil, Skipf("invalid pattern %q: %v", c.Rule.Shape.Pattern, err), true
	}

	for _, f := range snap.Files {
		if matcher.MatchString(f) {
			files = append(files, f)
		}
	}
	if len(files) == 0 {
		return nil, nil, Pass(), true
	}
	return files, re, CheckResult{}, false
}
