// Package rules defines the rule data model, the declarative rule
// interpreter, the builtin-check registry, and the default rule catalogue.
package rules

import (
	"fmt"

	"docmedic/internal/project"
)

// Severity grades how serious a violation is.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// ValidSeverity reports whether s is a known severity label.
func ValidSeverity(s Severity) bool {
	switch s {
	case SeverityInfo, SeverityWarning, SeverityError:
		return true
	}
	return false
}

// ShapeKind tags the variants of the Shape union. The declarative
// interpreter matches on it exhaustively; adding a capability means adding
// one tag and one case.
type ShapeKind string

const (
	ShapeFileExists          ShapeKind = "file_exists"
	ShapeDirExists           ShapeKind = "dir_exists"
	ShapeDirNotExists        ShapeKind = "dir_not_exists"
	ShapeFileContentMatches  ShapeKind = "file_content_matches"
	ShapeFileContentNotMatch ShapeKind = "file_content_not_matches"
	ShapeGlobContentMatches  ShapeKind = "glob_content_matches"
	ShapeGlobContentNotMatch ShapeKind = "glob_content_not_matches"
	ShapeGlobNamingMatches   ShapeKind = "glob_naming_matches"
	ShapeGlobNamingNotMatch  ShapeKind = "glob_naming_not_matches"
	ShapeManifestKeyExists   ShapeKind = "manifest_key_exists"
	ShapeManifestKeyMatches  ShapeKind = "manifest_key_matches"
	ShapeBuiltin             ShapeKind = "builtin"
)

// ValidShapeKind reports whether k is a known shape tag.
func ValidShapeKind(k ShapeKind) bool {
	switch k {
	case ShapeFileExists, ShapeDirExists, ShapeDirNotExists,
		ShapeFileContentMatches, ShapeFileContentNotMatch,
		ShapeGlobContentMatches, ShapeGlobContentNotMatch,
		ShapeGlobNamingMatches, ShapeGlobNamingNotMatch,
		ShapeManifestKeyExists, ShapeManifestKeyMatches, ShapeBuiltin:
		return true
	}
	return false
}

// Shape is the tagged union of check shapes. Which fields are meaningful
// depends on Kind; unused fields stay zero.
type Shape struct {
	Kind ShapeKind

	// Path targets single-file and directory shapes.
	Path string

	// Glob targets multi-file shapes.
	Glob string

	// Pattern is the content or naming regexp.
	Pattern string

	// Key is the dotted manifest key path for ManifestKey* shapes.
	Key string

	// Message overrides the default violation message where a shape
	// supports it (DirNotExists, GlobNamingNotMatches).
	Message string

	// ExcludePattern exempts lines from GlobContentNotMatches.
	ExcludePattern string

	// ExcludePaths exempts path prefixes from GlobNamingNotMatches.
	ExcludePaths []string

	// Handler names the builtin check for ShapeBuiltin.
	Handler string
}

// Rule is one compliance assertion. Rules are built once per scan from the
// defaults merged with optional external overrides and are immutable for
// the run's duration.
type Rule struct {
	// ID is a small positive integer, stable and unique across runs.
	ID int

	Category    string
	Description string
	Severity    Severity
	Shape       Shape

	// ProjectKind restricts the rule to one project classification.
	// Empty means the rule applies to every project.
	ProjectKind project.Kind

	// SizeClass restricts the rule to one project size class.
	SizeClass project.SizeClass

	FixHint string

	// DependsOn is carried through from rule definitions but is not
	// interpreted: rules evaluate independently.
	DependsOn []int
}

// Validate checks the structural invariants of a rule definition.
func (r Rule) Validate() error {
	if r.ID <= 0 {
		return fmt.Errorf("rule id must be a positive integer, got %d", r.ID)
	}
	if r.Category == "" {
		return fmt.Errorf("rule %d: category is required", r.ID)
	}
	if !ValidSeverity(r.Severity) {
		return fmt.Errorf("rule %d: unknown severity %q", r.ID, r.Severity)
	}
	if !ValidShapeKind(r.Shape.Kind) {
		return fmt.Errorf("rule %d: unknown check shape %q", r.ID, r.Shape.Kind)
	}
	if r.Shape.Kind == ShapeBuiltin && r.Shape.Handler == "" {
		return fmt.Errorf("rule %d: builtin shape requires a handler name", r.ID)
	}
	return nil
}

// Check is the executable form of a rule: given a project snapshot it
// yields exactly one result. Checks are pure functions of the snapshot and
// their own rule; they must not mutate the snapshot or hold cross-check
// state, so the engine may run them in parallel.
type Check interface {
	Evaluate(snap *project.Snapshot) CheckResult
}
