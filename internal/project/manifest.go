package project

import (
	"fmt"
	"path"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// manifestFilenames is the recognized set of package manifests, in lookup
// order. Module discovery accepts any of them; the manifest *reader* only
// parses the TOML ones.
var manifestFilenames = []string{"Cargo.toml", "pyproject.toml", "package.json", "go.mod"}

// tomlManifests are the manifests the ManifestKey* rule shapes can query.
var tomlManifests = []string{"Cargo.toml", "pyproject.toml"}

// Manifest is a parsed project manifest exposed to ManifestKey* rule
// shapes through dotted-key lookup.
type Manifest struct {
	// Path is the root-relative manifest filename that was parsed.
	Path string

	data map[string]any
}

// ParseManifest parses the first recognized TOML manifest at the project
// root. A missing or malformed manifest yields nil; the ManifestKey*
// shapes then report Skip rather than failing the run.
func ParseManifest(fsys afero.Fs, root string, snap *Snapshot) *Manifest {
	for _, name := range tomlManifests {
		if !snap.HasFile(name) {
			continue
		}
		b, err := afero.ReadFile(fsys, path.Join(root, name))
		if err != nil {
			log.Debug().Err(err).Str("manifest", name).Msg("manifest unreadable")
			continue
		}
		var data map[string]any
		if err := toml.Unmarshal(b, &data); err != nil {
			log.Debug().Err(err).Str("manifest", name).Msg("manifest unparseable")
			continue
		}
		return &Manifest{Path: name, data: data}
	}
	return nil
}

// Lookup resolves a dotted key path (e.g. "package.version") and returns
// the value stringified. ok is false when any path element is absent.
func (m *Manifest) Lookup(key string) (value string, ok bool) {
	if m == nil || key == "" {
		return "", false
	}

	var cur any = m.data
	for _, part := range strings.Split(key, ".") {
		table, isTable := cur.(map[string]any)
		if !isTable {
			return "", false
		}
		cur, ok = table[part]
		if !ok {
			return "", false
		}
	}

	switch v := cur.(type) {
	case string:
		return v, true
	default:
		return fmt.Sprintf("%v", v), true
	}
}
