package rigging

import "testing"

func TestCoordinator_DefinitionSaved_EvictsAndReconciles(t *testing.T) {
	cache, dir := newTestCache(t)
	path := writeDefWithSprite(t, dir, "Target", 0, 0, 40, 40)
	cache.Index().Rescan()

	doc := NewDefinition("Doc")
	part := NewReferencePart("ref", "Target")
	doc.AddPart(part)

	co := NewCoordinator(cache)
	co.SetDocument(doc) // initial reconcile against 40x40 bounds
	if part.Size != (Vec2{40, 40}) {
		t.Fatalf("initial Size = %+v, want 40x40", part.Size)
	}

	var invalidated []string
	modified := 0
	co.OnInvalidated = func(name string) { invalidated = append(invalidated, name) }
	co.OnModified = func() { modified++ }

	// Warm the cache, then re-save the target with new bounds.
	cache.Get("Target")
	writeDefWithSprite(t, dir, "Target", 0, 0, 80, 80)
	co.DefinitionSaved(path)

	if len(invalidated) != 1 || invalidated[0] != "Target" {
		t.Errorf("invalidated = %v, want [Target]", invalidated)
	}
	if modified != 1 {
		t.Errorf("OnModified fired %d times, want 1", modified)
	}
	if part.Size != (Vec2{80, 80}) {
		t.Errorf("Size after save = %+v, want 80x80", part.Size)
	}
}

func TestCoordinator_SavedUncachedPath_Ignored(t *testing.T) {
	cache, dir := newTestCache(t)
	path := writeDefWithSprite(t, dir, "Target", 0, 0, 40, 40)
	cache.Index().Rescan()

	co := NewCoordinator(cache)
	fired := false
	co.OnInvalidated = func(string) { fired = true }

	// Nothing cached yet: nothing can be stale.
	co.DefinitionSaved(path)
	if fired {
		t.Error("OnInvalidated fired for an uncached path")
	}
}

func TestCoordinator_BatchOfParts_SingleModifiedNotification(t *testing.T) {
	cache, dir := newTestCache(t)
	path := writeDefWithSprite(t, dir, "Target", 0, 0, 40, 40)
	cache.Index().Rescan()

	doc := NewDefinition("Doc")
	doc.AddPart(NewReferencePart("ref1", "Target"))
	doc.AddPart(NewReferencePart("ref2", "Target"))
	doc.AddPart(NewSpritePart("sprite"))

	co := NewCoordinator(cache)
	co.SetDocument(doc)

	modified := 0
	co.OnModified = func() { modified++ }

	cache.Get("Target")
	writeDefWithSprite(t, dir, "Target", 0, 0, 80, 80)
	co.DefinitionSaved(path)

	if modified != 1 {
		t.Errorf("OnModified fired %d times for a two-part batch, want 1", modified)
	}
}

func TestCoordinator_SetDocument_RepairsStaleGeometry(t *testing.T) {
	cache, dir := newTestCache(t)
	writeDefWithSprite(t, dir, "Target", 0, 0, 80, 80)
	cache.Index().Rescan()

	// A document saved when Target was 40x40: the cached size is stale.
	doc := NewDefinition("Doc")
	part := NewReferencePart("ref", "Target")
	part.Position = Vec2{10, 10}
	part.Size = Vec2{40, 40}
	part.PivotOffset = Vec2{-20, -20}
	doc.AddPart(part)

	co := NewCoordinator(cache)
	if !co.SetDocument(doc) {
		t.Fatal("SetDocument did not report the repair")
	}
	if part.Size != (Vec2{80, 80}) {
		t.Errorf("Size = %+v, want repaired 80x80", part.Size)
	}
}

func TestCoordinator_OtherNamesUntouched(t *testing.T) {
	cache, dir := newTestCache(t)
	writeDefWithSprite(t, dir, "Target", 0, 0, 40, 40)
	otherPath := writeDefWithSprite(t, dir, "Other", 0, 0, 40, 40)
	cache.Index().Rescan()

	doc := NewDefinition("Doc")
	part := NewReferencePart("ref", "Target")
	doc.AddPart(part)

	co := NewCoordinator(cache)
	co.SetDocument(doc)

	cache.Get("Other")
	pos := part.Position
	writeDefWithSprite(t, dir, "Other", 0, 0, 200, 200)
	co.DefinitionSaved(otherPath)

	if part.Position != pos {
		t.Error("saving an unrelated definition moved the part")
	}
}

func TestCoordinator_NilDocument_NoPanic(t *testing.T) {
	cache, _ := newTestCache(t)
	co := NewCoordinator(cache)
	if co.SetDocument(nil) {
		t.Error("SetDocument(nil) reported a change")
	}
	co.InvalidateReference("Anything")
}
