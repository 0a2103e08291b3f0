// Package rigging is the entity composition core of the Phanxgames sprite
// entity editor: the data model for entity definitions (textured body parts,
// hitboxes, and nested references to other definitions), the .entdef
// serializer, and the machinery that keeps composed entities consistent as
// their referenced definitions change on disk.
//
// # Definitions and references
//
// A [Definition] is one entity: a pivot, z-ordered [BodyPart] values, and
// entity-level hitboxes. A body part is either a sprite (its own texture and
// UV sub-rect) or a reference that embeds another definition by name. Names
// resolve through an [Index] built from a directory scan, and definitions
// load through a [Cache]:
//
//	ix := rigging.NewIndex(project.ScanDirs()...)
//	cache := rigging.NewCache(ix, nil)
//	def, ok := cache.Get("Head")
//
// A broken or missing reference is never fatal: lookups report ok == false
// and consumers render a placeholder.
//
// # Geometry reconciliation
//
// A reference part caches its target's bounds as its own Size, plus a
// PivotOffset aligning the target's pivot. When the target's shape changes,
// [Reconcile] recomputes both while preserving the world-space location of
// the embedded pivot. The [Coordinator] listens for save events, evicts stale
// cache entries, and reconciles every affected part in the open document:
//
//	co := rigging.NewCoordinator(cache)
//	co.SetDocument(current)
//	co.OnModified = markDirty
//	co.DefinitionSaved(savedPath) // from the editor's save routine
//
// Cycles are prevented at assignment time: [Cache.AssignableTargets] filters
// out every candidate that already depends on the current definition.
//
// # Composition
//
// [Compose] flattens a definition, following references through the cache up
// to a fixed depth, and draws it into an ebiten image using a [Textures]
// registry. [Camera] provides the editor viewport's pan/zoom view transform.
//
// The package is single-threaded by design: every operation runs to
// completion on the caller's thread, and the only goroutine (the optional
// [Watcher]) hands its events back via [Watcher.Drain].
package rigging
