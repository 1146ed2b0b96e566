package project

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshotWithFiles(files ...string) *Snapshot {
	return NewSnapshot(afero.NewMemMapFs(), "/proj", files, nil)
}

func TestDiscoverModulesContainerLayout(t *testing.T) {
	snap := snapshotWithFiles(
		"crates/core/Cargo.toml",
		"crates/core/src/lib.rs",
		"crates/auth/Cargo.toml",
		"README.md",
	)

	mods := DiscoverModules(snap)
	require.Len(t, mods, 2)
	assert.Equal(t, ModuleInfo{RelPath: "crates/auth", Name: "auth"}, mods[0])
	assert.Equal(t, ModuleInfo{RelPath: "crates/core", Name: "core"}, mods[1])
}

func TestDiscoverModulesFlatLayout(t *testing.T) {
	snap := snapshotWithFiles(
		"gateway/go.mod",
		"worker/pyproject.toml",
		"worker/main.py",
	)

	mods := DiscoverModules(snap)
	require.Len(t, mods, 2)
	assert.Equal(t, "gateway", mods[0].Name)
	assert.Equal(t, "worker", mods[1].Name)
}

func TestDiscoverModulesExclusions(t *testing.T) {
	snap := snapshotWithFiles(
		"docs/Cargo.toml",         // documentation dir, never a module
		".hidden/Cargo.toml",      // hidden
		"vendor/Cargo.toml",       // denylisted
		"crates/Cargo.toml",       // container itself, not a child
		"crates/a/b/Cargo.toml",   // too deep
		"crates/real/Cargo.toml",  // valid
		"flat/notes.txt",          // no manifest
	)

	mods := DiscoverModules(snap)
	require.Len(t, mods, 1)
	assert.Equal(t, "crates/real", mods[0].RelPath)
}

func TestDiscoverModulesZeroIsValid(t *testing.T) {
	snap := snapshotWithFiles("README.md", "docs/srs.md")
	assert.Empty(t, DiscoverModules(snap))
}

func TestDiscoverModulesDeduplicates(t *testing.T) {
	snap := snapshotWithFiles(
		"crates/core/Cargo.toml",
		"crates/core/pyproject.toml",
	)
	assert.Len(t, DiscoverModules(snap), 1)
}
