package checks

import (
	"fmt"
	"strings"

	"docmedic/internal/mdscan"
	"docmedic/internal/project"
	"docmedic/internal/rules"
)

// selectedModules applies the snapshot's module-name filter to the
// discovered module list.
func selectedModules(snap *project.Snapshot) []project.ModuleInfo {
	mods := project.DiscoverModules(snap)
	if snap.ModuleFilter == "" {
		return mods
	}
	var out []project.ModuleInfo
	for _, m := range mods {
		if m.Name == snap.ModuleFilter {
			out = append(out, m)
		}
	}
	return out
}

// ModuleSrsAttributesCheck re-applies the attribute-completeness check per
// discovered module against <module>/docs/srs.md. A module without that
// document is skipped from iteration, not a violation; a module whose
// document exists but is incomplete produces violations naming the module.
// Zero modules is a vacuous Pass.
type ModuleSrsAttributesCheck struct{}

func (ModuleSrsAttributesCheck) Evaluate(snap *project.Snapshot) rules.CheckResult {
	var violations []rules.Violation
	for _, mod := range selectedModules(snap) {
		docPath := mod.RelPath + "/docs/srs.md"
		if !snap.HasFile(docPath) {
			continue
		}
		content, err := snap.ReadFile(docPath)
		if err != nil {
			continue
		}
		for _, sec := range mdscan.Scan(mdscan.SplitLines(content), reqHeadingRe, reqBoundaryRe) {
			if missing := missingAttributes(sec.Body); len(missing) > 0 {
				violations = append(violations, violation(docPath,
					fmt.Sprintf("module %s: %s is missing required attributes: %s", mod.Name, sec.ID, strings.Join(missing, ", "))))
			}
		}
	}
	return rules.Fail(violations)
}

// ModuleTraceabilityCheck re-applies design traceability per module
// against <module>/docs/design/. Modules without a design directory are
// skipped from iteration.
type ModuleTraceabilityCheck struct{}

func (ModuleTraceabilityCheck) Evaluate(snap *project.Snapshot) rules.CheckResult {
	var violations []rules.Violation
	for _, mod := range selectedModules(snap) {
		dir := mod.RelPath + "/docs/design"
		files := designDocs(snap, dir)
		if len(files) == 0 {
			continue
		}
		for _, v := range untracedDesignDocs(snap, files) {
			v.Message = fmt.Sprintf("module %s: %s", mod.Name, v.Message)
			violations = append(violations, v)
		}
	}
	return rules.Fail(violations)
}

func init() {
	rules.RegisterBuiltin(rules.HandlerModuleSrsAttrs, ModuleSrsAttributesCheck{})
	rules.RegisterBuiltin(rules.HandlerModuleTraceability, ModuleTraceabilityCheck{})
}
