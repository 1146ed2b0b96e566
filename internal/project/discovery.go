package project

import (
	"sort"
	"strings"
)

// containerDirs are grouping directories whose immediate children are
// candidate modules in multi-package layouts.
var containerDirs = map[string]struct{}{
	"crates":   {},
	"packages": {},
	"modules":  {},
	"services": {},
}

// rootChildDenylist excludes direct root children from flat-layout module
// discovery. Container directories are excluded separately.
var rootChildDenylist = map[string]struct{}{
	"docs":         {},
	"doc":          {},
	"target":       {},
	"build":        {},
	"dist":         {},
	"node_modules": {},
	"vendor":       {},
}

// ModuleInfo is a discovered nested package root. Recomputed on every
// scan, never cached across runs.
type ModuleInfo struct {
	// RelPath is the module directory relative to the project root.
	RelPath string

	// Name is the module directory's base name.
	Name string
}

// DiscoverModules finds nested package roots for per-module rule
// application. A directory is a module iff a recognized manifest file sits
// directly inside it; discovery looks one level below the container
// directories and one level below the project root (minus the denylist),
// never deeper. The result is deterministic, sorted by RelPath. Zero
// modules is a valid state, not an error.
func DiscoverModules(s *Snapshot) []ModuleInfo {
	manifests := make(map[string]struct{}, len(manifestFilenames))
	for _, m := range manifestFilenames {
		manifests[m] = struct{}{}
	}

	seen := make(map[string]struct{})
	var mods []ModuleInfo

	add := func(relPath, name string) {
		if _, dup := seen[relPath]; dup {
			return
		}
		seen[relPath] = struct{}{}
		mods = append(mods, ModuleInfo{RelPath: relPath, Name: name})
	}

	for _, f := range s.Files {
		parts := strings.Split(f, "/")

		switch len(parts) {
		case 3:
			// container/<module>/<manifest>
			if _, ok := containerDirs[parts[0]]; !ok {
				continue
			}
			if _, ok := manifests[parts[2]]; !ok {
				continue
			}
			add(parts[0]+"/"+parts[1], parts[1])
		case 2:
			// <module>/<manifest> in a flat layout
			dir := parts[0]
			if strings.HasPrefix(dir, ".") {
				continue
			}
			if _, deny := rootChildDenylist[dir]; deny {
				continue
			}
			if _, container := containerDirs[dir]; container {
				continue
			}
			if _, ok := manifests[parts[1]]; !ok {
				continue
			}
			add(dir, dir)
		}
	}

	sort.Slice(mods, func(i, j int) bool { return mods[i].RelPath < mods[j].RelPath })
	return mods
}
