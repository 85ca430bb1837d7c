// Package snapshot loads declarative control snapshots: a nested mapping of
// namespace → container → property → value, stored as TOML or YAML.
//
// A snapshot is applied as independent per-path dispatches. There is no
// atomicity and no rollback; a rejected path never prevents application of
// the others.
//
//	[stateMachines.MainSM]
//	isVisible = true
//	speed = 2.5
//	advance = true        # any value fires a trigger
//
//	[viewModels.card]
//	title = "Hello"
//	background = 0xFF336699
//
//	[imageAssets.hero]
//	slot = "https://example.com/cat.png"
package snapshot

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/marionette/pkg/errors"
	"github.com/arthur-debert/marionette/pkg/values"
)

// Snapshot is a set of control paths with the values to apply
type Snapshot struct {
	entries map[string]values.Value
}

// Load reads a snapshot file, picking the format from the extension
// (.toml, .yaml or .yml).
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrSnapshotLoad, "reading snapshot file %s", path)
	}
	return Parse(data, strings.ToLower(filepath.Ext(path)))
}

// Parse builds a snapshot from raw file contents. ext selects the decoder
// and must be ".toml", ".yaml" or ".yml".
func Parse(data []byte, ext string) (*Snapshot, error) {
	k := koanf.New(".")

	var parser koanf.Parser
	switch ext {
	case ".toml":
		parser = toml.Parser()
	case ".yaml", ".yml":
		parser = yaml.Parser()
	default:
		return nil, errors.Newf(errors.ErrSnapshotLoad, "unsupported snapshot format %q", ext)
	}

	if err := k.Load(rawBytes(data), parser); err != nil {
		return nil, errors.Wrap(err, errors.ErrSnapshotLoad, "parsing snapshot")
	}

	snap := &Snapshot{entries: make(map[string]values.Value)}
	for key, raw := range k.All() {
		v, err := values.Infer(raw)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrSnapshotLoad, "snapshot entry %s", key)
		}
		snap.entries[key] = v
	}
	return snap, nil
}

// Paths returns the snapshot's control paths in sorted order. The dispatch
// order within a snapshot is unspecified by contract; sorting keeps runs
// reproducible.
func (s *Snapshot) Paths() []string {
	out := make([]string, 0, len(s.entries))
	for path := range s.entries {
		out = append(out, path)
	}
	sort.Strings(out)
	return out
}

// Value returns the value recorded for a path
func (s *Snapshot) Value(path string) (values.Value, bool) {
	v, ok := s.entries[path]
	return v, ok
}

// Len returns the number of entries
func (s *Snapshot) Len() int { return len(s.entries) }

// rawBytes adapts an in-memory byte slice to koanf's provider interface
type rawBytes []byte

func (r rawBytes) ReadBytes() ([]byte, error) { return r, nil }
func (r rawBytes) Read() (map[string]interface{}, error) {
	return nil, errors.New(errors.ErrInternal, "not implemented")
}
