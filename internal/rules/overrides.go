package rules

import (
	"fmt"
	"sort"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"docmedic/internal/project"
)

// ruleRecord is the external YAML schema for one rule definition.
// depends_on is accepted and carried but not interpreted.
type ruleRecord struct {
	ID          int      `yaml:"id"`
	Category    string   `yaml:"category"`
	Description string   `yaml:"description"`
	Severity    string   `yaml:"severity"`
	Check       string   `yaml:"check"`
	Path        string   `yaml:"path"`
	Glob        string   `yaml:"glob"`
	Pattern     string   `yaml:"pattern"`
	Key         string   `yaml:"key"`
	Message     string   `yaml:"message"`
	Exclude     string   `yaml:"exclude_pattern"`
	ExcludePath []string `yaml:"exclude_paths"`
	Handler     string   `yaml:"handler"`
	FixHint     string   `yaml:"fix_hint"`
	ProjectKind string   `yaml:"project_kind"`
	SizeClass   string   `yaml:"size_class"`
	DependsOn   []int    `yaml:"depends_on"`
}

type rulesFile struct {
	Rules []ruleRecord `yaml:"rules"`
}

// LoadOverrides reads external rule definitions from a YAML file. Every
// record must validate; a structurally broken rules file is a hard error
// (unlike a malformed pattern inside a valid rule, which only skips that
// rule at evaluation time).
func LoadOverrides(fsys afero.Fs, path string) ([]Rule, error) {
	b, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}

	var f rulesFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse rules file %s: %w", path, err)
	}

	out := make([]Rule, 0, len(f.Rules))
	seen := make(map[int]struct{}, len(f.Rules))
	for i, rec := range f.Rules {
		r := rec.toRule()
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("rules file %s, entry %d: %w", path, i+1, err)
		}
		if _, dup := seen[r.ID]; dup {
			return nil, fmt.Errorf("rules file %s: duplicate rule id %d", path, r.ID)
		}
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}
	return out, nil
}

func (rec ruleRecord) toRule() Rule {
	return Rule{
		ID:          rec.ID,
		Category:    rec.Category,
		Description: rec.Description,
		Severity:    Severity(rec.Severity),
		Shape: Shape{
			Kind:           ShapeKind(rec.Check),
			Path:           rec.Path,
			Glob:           rec.Glob,
			Pattern:        rec.Pattern,
			Key:            rec.Key,
			Message:        rec.Message,
			ExcludePattern: rec.Exclude,
			ExcludePaths:   rec.ExcludePath,
			Handler:        rec.Handler,
		},
		ProjectKind: project.Kind(rec.ProjectKind),
		SizeClass:   project.SizeClass(rec.SizeClass),
		FixHint:     rec.FixHint,
		DependsOn:   rec.DependsOn,
	}
}

// Merge overlays external definitions onto the defaults. An override with
// an existing id replaces that default; new ids are appended. The merged
// set is sorted by id, which is also the default selection order.
func Merge(defaults, overrides []Rule) []Rule {
	byID := make(map[int]Rule, len(defaults)+len(overrides))
	for _, r := range defaults {
		byID[r.ID] = r
	}
	for _, r := range overrides {
		byID[r.ID] = r
	}

	merged := make([]Rule, 0, len(byID))
	for _, r := range byID {
		merged = append(merged, r)
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].ID < merged[j].ID })
	return merged
}
