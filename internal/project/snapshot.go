// Package project holds the read-only view of the scanned project shared by
// all checks in one run, plus the loader that builds it and module discovery.
package project

import (
	"fmt"
	"path"
	"sort"

	"github.com/spf13/afero"
)

// Kind classifies the scanned project. Some rules only apply to one kind.
type Kind string

const (
	KindOpenSource Kind = "open-source"
	KindInternal   Kind = "internal"
)

// SizeClass groups projects by file count so rules can target a scale.
type SizeClass string

const (
	SizeSmall  SizeClass = "small"
	SizeMedium SizeClass = "medium"
	SizeLarge  SizeClass = "large"
)

// Snapshot is the immutable view of a scanned project. It is shared by
// reference across every rule evaluation in a run; checks must not mutate
// it. All file paths are root-relative with forward slashes regardless of
// host OS.
type Snapshot struct {
	// Root is the absolute path of the scanned project.
	Root string

	// Files is the ordered (sorted) list of root-relative file paths.
	Files []string

	// Kind and Size classify the project for rule applicability filters.
	Kind Kind
	Size SizeClass

	// ModuleFilter restricts module-repeated checks to a single module
	// name. Empty means all modules.
	ModuleFilter string

	// Manifest is the parsed root manifest, or nil when none was found.
	Manifest *Manifest

	fsys     afero.Fs
	fileSet  map[string]struct{}
	contents map[string]string
}

// NewSnapshot builds a snapshot over fsys. files is copied and sorted;
// contents is an optional pre-populated content cache keyed by relative
// path (read-only for the whole run, never invalidated).
func NewSnapshot(fsys afero.Fs, root string, files []string, contents map[string]string) *Snapshot {
	sorted := make([]string, len(files))
	copy(sorted, files)
	sort.Strings(sorted)

	set := make(map[string]struct{}, len(sorted))
	for _, f := range sorted {
		set[f] = struct{}{}
	}

	return &Snapshot{
		Root:     root,
		Files:    sorted,
		fsys:     fsys,
		fileSet:  set,
		contents: contents,
	}
}

// HasFile reports whether rel is in the snapshot's file list.
func (s *Snapshot) HasFile(rel string) bool {
	_, ok := s.fileSet[rel]
	return ok
}

// HasDir reports whether rel exists under the root and is a directory.
// Empty directories are visible here even though Files lists only files.
func (s *Snapshot) HasDir(rel string) bool {
	info, err := s.fsys.Stat(path.Join(s.Root, rel))
	return err == nil && info.IsDir()
}

// IsRegularFile reports whether rel exists and is a regular file (not a
// directory) on the underlying filesystem.
func (s *Snapshot) IsRegularFile(rel string) bool {
	info, err := s.fsys.Stat(path.Join(s.Root, rel))
	return err == nil && !info.IsDir()
}

// ReadFile returns the content of a root-relative file. The pre-populated
// cache is consulted first; on a miss the file is read from disk without
// updating the cache, so concurrent checks never write shared state.
func (s *Snapshot) ReadFile(rel string) (string, error) {
	if s.contents != nil {
		if c, ok := s.contents[rel]; ok {
			return c, nil
		}
	}
	b, err := afero.ReadFile(s.fsys, path.Join(s.Root, rel))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", rel, err)
	}
	return string(b), nil
}
