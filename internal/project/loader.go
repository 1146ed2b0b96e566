package project

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// Directory names never descended into while enumerating files. These are
// configuration constants, not part of the external interface.
var skipDirs = map[string]struct{}{
	"target":       {},
	"build":        {},
	"dist":         {},
	"node_modules": {},
	"vendor":       {},
}

// Size class thresholds by file count.
const (
	smallProjectMaxFiles  = 50
	mediumProjectMaxFiles = 500
)

// LoadOptions tune how a snapshot is built.
type LoadOptions struct {
	// Kind overrides project classification; empty means classify by the
	// presence of a LICENSE file.
	Kind Kind

	// ModuleFilter restricts module-repeated checks to one module name.
	ModuleFilter string

	// Preload reads every enumerated file into the snapshot's content
	// cache so checks share one read per file.
	Preload bool
}

// Load walks root on fsys and builds the immutable snapshot the engine
// evaluates rules against. Hidden directories and the skip list are
// excluded; paths are normalized to forward slashes and sorted.
func Load(fsys afero.Fs, root string, opts LoadOptions) (*Snapshot, error) {
	info, err := fsys.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat project root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project root %s is not a directory", root)
	}

	var files []string
	err = afero.Walk(fsys, root, func(p string, fi os.FileInfo, err error) error {
		if err != nil {
			// Unreadable subtrees are excluded, not fatal; the scan
			// must always complete.
			log.Debug().Err(err).Str("path", p).Msg("skipping unreadable path")
			return nil
		}
		name := fi.Name()
		if fi.IsDir() {
			if p == root {
				return nil
			}
			if strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			if _, skip := skipDirs[name]; skip {
				return filepath.SkipDir
			}
			return nil
		}
		rel := strings.TrimPrefix(p, root)
		rel = strings.TrimPrefix(rel, "/")
		rel = strings.ReplaceAll(rel, string(os.PathSeparator), "/")
		if rel != "" {
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk project root: %w", err)
	}

	var contents map[string]string
	if opts.Preload {
		contents = make(map[string]string, len(files))
		for _, f := range files {
			b, err := afero.ReadFile(fsys, path.Join(root, f))
			if err != nil {
				continue
			}
			contents[f] = string(b)
		}
	}

	snap := NewSnapshot(fsys, root, files, contents)
	snap.ModuleFilter = opts.ModuleFilter
	snap.Kind = opts.Kind
	if snap.Kind == "" {
		snap.Kind = classifyKind(snap)
	}
	snap.Size = classifySize(len(snap.Files))
	snap.Manifest = ParseManifest(fsys, root, snap)

	log.Debug().
		Int("files", len(snap.Files)).
		Str("kind", string(snap.Kind)).
		Str("size", string(snap.Size)).
		Msg("project snapshot loaded")

	return snap, nil
}

func classifyKind(s *Snapshot) Kind {
	for _, name := range []string{"LICENSE", "LICENSE.md", "LICENSE.txt", "COPYING"} {
		if s.HasFile(name) {
			return KindOpenSource
		}
	}
	return KindInternal
}

func classifySize(fileCount int) SizeClass {
	switch {
	case fileCount <= smallProjectMaxFiles:
		return SizeSmall
	case fileCount <= mediumProjectMaxFiles:
		return SizeMedium
	default:
		return SizeLarge
	}
}
