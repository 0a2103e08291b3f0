package rigging

import (
	"path/filepath"
	"testing"
)

// writeDefWithSprite writes a definition containing one visible sprite at the
// given rectangle, so its bounds are exactly that rectangle (subject to the
// minimum-size floor).
func writeDefWithSprite(t *testing.T, dir, name string, x, y, w, h float64) string {
	t.Helper()
	def := NewDefinition(name)
	p := NewSpritePart("body")
	p.Position = Vec2{x, y}
	p.Size = Vec2{w, h}
	def.AddPart(p)
	path := filepath.Join(dir, name+DefExt)
	if err := SaveDefinition(def, path); err != nil {
		t.Fatalf("SaveDefinition(%s): %v", name, err)
	}
	return path
}

func TestReconcile_AdoptsTargetBounds(t *testing.T) {
	cache, dir := newTestCache(t)
	writeDefWithSprite(t, dir, "Target", 0, 0, 40, 40)
	cache.Index().Rescan()

	part := NewReferencePart("ref", "Target")
	part.Position = Vec2{10, 10}
	part.Size = Vec2{40, 40}

	if !Reconcile(part, cache) {
		t.Fatal("Reconcile reported no change for default-initialized offsets")
	}
	if part.Size != (Vec2{40, 40}) {
		t.Errorf("Size = %+v, want 40x40", part.Size)
	}
	// Bounds (0,0,40,40) center the target pivot alignment at -(20, 20).
	if part.PivotOffset != (Vec2{-20, -20}) {
		t.Errorf("PivotOffset = %+v, want (-20, -20)", part.PivotOffset)
	}
}

func TestReconcile_PreservesWorldPivot(t *testing.T) {
	cache, dir := newTestCache(t)
	path := writeDefWithSprite(t, dir, "Target", 0, 0, 40, 40)
	cache.Index().Rescan()

	part := NewReferencePart("ref", "Target")
	part.Position = Vec2{10, 10}
	part.Size = Vec2{40, 40}
	part.PivotOffset = Vec2{0, 0}
	oldPivot := Vec2{
		part.Position.X + part.Size.X/2 + part.PivotOffset.X,
		part.Position.Y + part.Size.Y/2 + part.PivotOffset.Y,
	}

	// Target grows to (0,0,80,80).
	writeDefWithSprite(t, dir, "Target", 0, 0, 80, 80)
	cache.Invalidate(path)

	if !Reconcile(part, cache) {
		t.Fatal("Reconcile reported no change after target grew")
	}
	newPivot := Vec2{
		part.Position.X + part.Size.X/2 + part.PivotOffset.X,
		part.Position.Y + part.Size.Y/2 + part.PivotOffset.Y,
	}
	if newPivot != oldPivot {
		t.Errorf("world pivot moved: %+v -> %+v", oldPivot, newPivot)
	}
	if part.Size != (Vec2{80, 80}) {
		t.Errorf("Size = %+v, want 80x80", part.Size)
	}
}

func TestReconcile_Idempotent(t *testing.T) {
	cache, dir := newTestCache(t)
	writeDefWithSprite(t, dir, "Target", -8, 4, 48, 32)
	cache.Index().Rescan()

	part := NewReferencePart("ref", "Target")
	if !Reconcile(part, cache) {
		t.Fatal("first Reconcile reported no change")
	}
	pos, size, off := part.Position, part.Size, part.PivotOffset

	if Reconcile(part, cache) {
		t.Error("second Reconcile reported a change")
	}
	if part.Position != pos || part.Size != size || part.PivotOffset != off {
		t.Error("second Reconcile mutated the part")
	}
}

func TestReconcile_EmptyRef_NoChange(t *testing.T) {
	cache, _ := newTestCache(t)
	part := NewReferencePart("ref", "")
	if Reconcile(part, cache) {
		t.Error("Reconcile changed a part with no reference")
	}
}

func TestReconcile_UnresolvableRef_NoChange(t *testing.T) {
	cache, _ := newTestCache(t)
	part := NewReferencePart("ref", "Ghost")
	pos, size, off := part.Position, part.Size, part.PivotOffset
	if Reconcile(part, cache) {
		t.Error("Reconcile changed a part with a broken reference")
	}
	if part.Position != pos || part.Size != size || part.PivotOffset != off {
		t.Error("Reconcile mutated a part with a broken reference")
	}
}

func TestReconcile_SpritePart_Panics(t *testing.T) {
	cache, _ := newTestCache(t)
	defer func() {
		if recover() == nil {
			t.Error("Reconcile on a sprite part did not panic")
		}
	}()
	Reconcile(NewSpritePart("oops"), cache)
}
