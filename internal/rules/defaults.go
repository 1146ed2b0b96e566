package rules

import "docmedic/internal/project"

// Rule categories.
const (
	CategoryStructure    = "structure"
	CategoryContent      = "content"
	CategoryNaming       = "naming"
	CategoryManifest     = "manifest"
	CategoryGlossary     = "glossary"
	CategoryRequirements = "requirements"
	CategoryTraceability = "traceability"
	CategoryModules      = "modules"
)

// Builtin handler names, shared between the defaults table and the checks
// package registrations.
const (
	HandlerLongDocSummary     = "long-doc-summary"
	HandlerShortDocNoSummary  = "short-doc-no-summary"
	HandlerGlossaryAlphabet   = "glossary-alphabetized"
	HandlerAcronymExpansion   = "acronym-expansion"
	HandlerSrsAttributes      = "srs-attribute-completeness"
	HandlerDesignTraceability = "design-traceability"
	HandlerNoSourceRefs       = "no-source-refs-in-attributes"
	HandlerNoDesignRefs       = "no-design-refs-outside-trace"
	HandlerModuleSrsAttrs     = "module-srs-attributes"
	HandlerModuleTraceability = "module-design-traceability"
)

func builtin(handler string) Shape {
	return Shape{Kind: ShapeBuiltin, Handler: handler}
}

// Defaults returns the built-in rule catalogue. IDs are stable; an
// external rule definition with the same id replaces the default.
func Defaults() []Rule {
	return []Rule{
		{
			ID: 1, Category: CategoryStructure, Severity: SeverityError,
			Description: "A README.md must exist at the project root.",
			Shape:       Shape{Kind: ShapeFileExists, Path: "README.md"},
			FixHint:     "Create README.md describing the project.",
		},
		{
			ID: 2, Category: CategoryStructure, Severity: SeverityError,
			Description: "The software requirements document docs/srs.md must exist.",
			Shape:       Shape{Kind: ShapeFileExists, Path: "docs/srs.md"},
		},
		{
			ID: 3, Category: CategoryStructure, Severity: SeverityError,
			Description: "A docs/ directory must exist at the project root.",
			Shape:       Shape{Kind: ShapeDirExists, Path: "docs"},
		},
		{
			ID: 4, Category: CategoryStructure, Severity: SeverityWarning,
			Description: "The deprecated doc/ layout must not be used.",
			Shape:       Shape{Kind: ShapeDirNotExists, Path: "doc", Message: "deprecated doc/ directory found; move its contents to docs/"},
		},
		{
			ID: 5, Category: CategoryStructure, Severity: SeverityError,
			Description: "Open-source projects must carry a LICENSE file.",
			Shape:       Shape{Kind: ShapeFileExists, Path: "LICENSE"},
			ProjectKind: project.KindOpenSource,
		},
		{
			ID: 6, Category: CategoryStructure, Severity: SeverityWarning,
			Description: "Open-source projects should carry a CONTRIBUTING.md.",
			Shape:       Shape{Kind: ShapeFileExists, Path: "CONTRIBUTING.md"},
			ProjectKind: project.KindOpenSource,
		},

		{
			ID: 10, Category: CategoryContent, Severity: SeverityError,
			Description: "README.md must start with a level-one title.",
			Shape:       Shape{Kind: ShapeFileContentMatches, Path: "README.md", Pattern: `(?m)^# `},
		},
		{
			ID: 11, Category: CategoryContent, Severity: SeverityWarning,
			Description: "README.md must not contain TBD placeholders.",
			Shape:       Shape{Kind: ShapeFileContentNotMatch, Path: "README.md", Pattern: `(?i)\bTBD\b`},
		},
		{
			ID: 12, Category: CategoryContent, Severity: SeverityInfo,
			Description: "Top-level documentation files must not be empty.",
			Shape:       Shape{Kind: ShapeGlobContentMatches, Glob: "docs/*.md", Pattern: `\S`},
		},
		{
			ID: 13, Category: CategoryContent, Severity: SeverityWarning,
			Description: "Documentation must not contain FIXME markers outside code spans.",
			Shape: Shape{
				Kind: ShapeGlobContentNotMatch, Glob: "docs/**/*.md",
				Pattern:        `(?i)\bFIXME\b`,
				ExcludePattern: "`[^`]*(?i:fixme)[^`]*`",
			},
		},

		{
			ID: 20, Category: CategoryNaming, Severity: SeverityWarning,
			Description: "Documentation file names must be lower-case kebab/underscore style.",
			Shape:       Shape{Kind: ShapeGlobNamingMatches, Glob: "docs/**/*.md", Pattern: `^[a-z0-9][a-z0-9._-]*\.md$`},
		},
		{
			ID: 21, Category: CategoryNaming, Severity: SeverityError,
			Description: "Markdown file names must not contain whitespace.",
			Shape: Shape{
				Kind: ShapeGlobNamingNotMatch, Glob: "**/*.md",
				Pattern:      `\s`,
				ExcludePaths: []string{"node_modules/", "vendor/"},
				Message:      "file names must not contain spaces",
			},
		},

		{
			ID: 30, Category: CategoryManifest, Severity: SeverityError,
			Description: "The project manifest must declare a package name.",
			Shape:       Shape{Kind: ShapeManifestKeyExists, Key: "package.name"},
		},
		{
			ID: 31, Category: CategoryManifest, Severity: SeverityWarning,
			Description: "The manifest version must be a semantic version.",
			Shape:       Shape{Kind: ShapeManifestKeyMatches, Key: "package.version", Pattern: `^\d+\.\d+\.\d+`},
		},
		{
			ID: 32, Category: CategoryManifest, Severity: SeverityInfo,
			Description: "The project manifest should declare a description.",
			Shape:       Shape{Kind: ShapeManifestKeyExists, Key: "package.description"},
		},

		{
			ID: 40, Category: CategoryContent, Severity: SeverityWarning,
			Description: "Long documentation files must open with a summary section.",
			Shape:       builtin(HandlerLongDocSummary),
		},
		{
			ID: 41, Category: CategoryContent, Severity: SeverityInfo,
			Description: "Short documentation files should not carry a summary section.",
			Shape:       builtin(HandlerShortDocNoSummary),
		},
		{
			ID: 42, Category: CategoryGlossary, Severity: SeverityWarning,
			Description: "Glossary terms must be listed in alphabetical order.",
			Shape:       builtin(HandlerGlossaryAlphabet),
		},
		{
			ID: 43, Category: CategoryGlossary, Severity: SeverityWarning,
			Description: "Acronym glossary entries must spell out their expansion.",
			Shape:       builtin(HandlerAcronymExpansion),
		},
		{
			ID: 44, Category: CategoryRequirements, Severity: SeverityError,
			Description: "Every requirement block in docs/srs.md must carry the required attribute rows.",
			Shape:       builtin(HandlerSrsAttributes),
		},
		{
			ID: 45, Category: CategoryTraceability, Severity: SeverityError,
			Description: "Design documents must trace back to a requirement or the SRS.",
			Shape:       builtin(HandlerDesignTraceability),
		},
		{
			ID: 46, Category: CategoryRequirements, Severity: SeverityWarning,
			Description: "Requirement attribute rows must not reference source files.",
			Shape:       builtin(HandlerNoSourceRefs),
		},
		{
			ID: 47, Category: CategoryRequirements, Severity: SeverityWarning,
			Description: "Requirement attribute rows must not reference design documents outside the Trace attribute.",
			Shape:       builtin(HandlerNoDesignRefs),
		},

		{
			ID: 50, Category: CategoryModules, Severity: SeverityError,
			Description: "Per-module SRS documents must carry the required attribute rows.",
			Shape:       builtin(HandlerModuleSrsAttrs),
		},
		{
			ID: 51, Category: CategoryModules, Severity: SeverityWarning,
			Description: "Per-module design documents must trace back to a requirement.",
			Shape:       builtin(HandlerModuleTraceability),
		},
	}
}
