package rigging

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// DefExt is the definition file extension the index looks for.
const DefExt = ".entdef"

// Index maps reference names to definition file paths. It is derived purely
// from a directory scan and is never authoritative: callers that miss are
// expected to Rescan once and retry (the Cache does this) to pick up files
// created after the last scan.
type Index struct {
	roots  []string
	byName map[string]string
}

// NewIndex creates an index over the given root directories and performs the
// initial scan. Missing directories are skipped, not errors.
func NewIndex(roots ...string) *Index {
	ix := &Index{roots: roots}
	ix.Rescan()
	return ix
}

// Rescan walks every root directory recursively and rebuilds the name table.
// Each definition file is recorded under both its bare name ("Head") and its
// filename with extension ("Head.entdef").
func (ix *Index) Rescan() {
	ix.byName = make(map[string]string)
	for _, root := range ix.roots {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// Missing or unreadable directory: skip silently.
				return nil
			}
			if d.IsDir() || !strings.HasSuffix(d.Name(), DefExt) {
				return nil
			}
			abs, aerr := filepath.Abs(path)
			if aerr != nil {
				abs = filepath.Clean(path)
			}
			ix.byName[strings.TrimSuffix(d.Name(), DefExt)] = abs
			ix.byName[d.Name()] = abs
			return nil
		})
	}
}

// Resolve returns the absolute path recorded for name.
func (ix *Index) Resolve(name string) (string, bool) {
	path, ok := ix.byName[name]
	return path, ok
}

// Names returns the sorted bare names (no extension) of every indexed
// definition. This is the raw candidate list for reference pickers, before
// cycle filtering.
func (ix *Index) Names() []string {
	names := make([]string, 0, len(ix.byName)/2)
	for name := range ix.byName {
		if !strings.HasSuffix(name, DefExt) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
