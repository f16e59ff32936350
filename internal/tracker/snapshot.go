package tracker

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
)

// Snapshot schema versioning for forward-compatibility.
const snapshotVersion = 1

type snapshotType struct {
	ID   TypeID `json:"id"`
	Name string `json:"name"`
}

type snapshot struct {
	Version int            `json:"version"`
	Records []Record       `json:"records"`
	Types   []snapshotType `json:"types"`
	Names   []string       `json:"names"`
	Created int64          `json:"created_unix"`
}

// Records returns a copy of every tracked record, ordered by address.
func (t *Tracker) Records() []Record {
	t.mu.RLock()
	out := make([]Record, 0, len(t.live))
	for _, rec := range t.live {
		out = append(out, rec)
	}
	t.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Address < out[j].Address })
	return out
}

// TrackedTypes returns the registered types in ascending order. The root
// type is not included.
func (t *Tracker) TrackedTypes() []TypeID {
	t.mu.RLock()
	out := make([]TypeID, 0, len(t.types))
	for typ := range t.types {
		out = append(out, typ)
	}
	t.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// TrackedNames returns the registered name patterns in sorted order. The
// reserved name is not included.
func (t *Tracker) TrackedNames() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.names.sorted()
}

// WriteSnapshot dumps records and rule sets to path as JSON. The file is
// replaced atomically. Records are diagnostics only; they are never loaded
// back because handles do not outlive the host process.
func (t *Tracker) WriteSnapshot(path string) error {
	tmp := path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}

	s := snapshot{
		Version: snapshotVersion,
		Records: t.Records(),
		Names:   t.TrackedNames(),
		Created: now().Unix(),
	}
	for _, typ := range t.TrackedTypes() {
		s.Types = append(s.Types, snapshotType{ID: typ, Name: t.typeName(typ)})
	}

	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
