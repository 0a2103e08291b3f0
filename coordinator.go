package rigging

import (
	"path/filepath"
	"strings"
)

// Coordinator keeps the cache and the open document's cached reference
// geometry consistent as definition files are saved. The editor's save
// routine must call DefinitionSaved after every successful write; external
// writes can be fed in through a Watcher.
//
// Callbacks fire synchronously on the calling thread. OnModified fires at
// most once per batch of reconciliations so dirty-flag and redraw paths run
// once, not once per body part.
type Coordinator struct {
	cache *Cache
	doc   *Definition

	// OnModified is called when a save caused at least one reference part in
	// the open document to change geometry.
	OnModified func()

	// OnInvalidated is called with the reference name of every cache entry
	// evicted by a save, before the document is reconciled.
	OnInvalidated func(name string)
}

// NewCoordinator creates a coordinator over the given cache with no open
// document.
func NewCoordinator(cache *Cache) *Coordinator {
	return &Coordinator{cache: cache}
}

// SetDocument makes def the open document and runs a full reconciliation
// pass, repairing staleness left by files edited outside the editor. It
// reports whether any part changed; OnModified fires as usual so the caller
// can surface the repair.
func (co *Coordinator) SetDocument(def *Definition) bool {
	co.doc = def
	if def == nil {
		return false
	}
	return co.reconcileMatching(func(*BodyPart) bool { return true })
}

// Document returns the open document, or nil.
func (co *Coordinator) Document() *Definition {
	return co.doc
}

// DefinitionSaved reacts to a successful write of the definition at path. If
// the path was cached the entry is evicted and every reference part in the
// open document pointing at that name is reconciled. Saves of uncached paths
// are ignored: nothing stale can exist for them.
func (co *Coordinator) DefinitionSaved(path string) {
	if !co.cache.Invalidate(path) {
		return
	}
	name := strings.TrimSuffix(filepath.Base(path), DefExt)
	if co.OnInvalidated != nil {
		co.OnInvalidated(name)
	}
	co.InvalidateReference(name)
}

// InvalidateReference reconciles every reference part in the open document
// whose EntityRef equals name. It reports whether any part changed.
func (co *Coordinator) InvalidateReference(name string) bool {
	return co.reconcileMatching(func(p *BodyPart) bool {
		return p.EntityRef == name
	})
}

func (co *Coordinator) reconcileMatching(match func(*BodyPart) bool) bool {
	if co.doc == nil {
		return false
	}
	changed := false
	for _, p := range co.doc.Parts {
		if p.Kind != PartReference || p.EntityRef == "" || !match(p) {
			continue
		}
		if Reconcile(p, co.cache) {
			changed = true
		}
	}
	if changed && co.OnModified != nil {
		co.OnModified()
	}
	return changed
}
