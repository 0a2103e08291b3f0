package rigging

import (
	"path/filepath"
	"testing"
)

func TestPlacements_ZOrderAcrossParts(t *testing.T) {
	cache, _ := newTestCache(t)

	def := NewDefinition("Doc")
	back := NewSpritePart("back")
	back.ZOrder = -1
	front := NewSpritePart("front")
	front.ZOrder = 5
	mid := NewSpritePart("mid")
	def.AddPart(front)
	def.AddPart(back)
	def.AddPart(mid)

	pls := Placements(def, cache)
	if len(pls) != 3 {
		t.Fatalf("got %d placements, want 3", len(pls))
	}
	order := []string{pls[0].Part.Name, pls[1].Part.Name, pls[2].Part.Name}
	want := []string{"back", "mid", "front"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("draw order = %v, want %v", order, want)
		}
	}
}

func TestPlacements_InvisibleSkipped(t *testing.T) {
	cache, _ := newTestCache(t)

	def := NewDefinition("Doc")
	hidden := NewSpritePart("hidden")
	hidden.Visible = false
	def.AddPart(hidden)
	def.AddPart(NewSpritePart("shown"))

	pls := Placements(def, cache)
	if len(pls) != 1 || pls[0].Part.Name != "shown" {
		t.Errorf("placements = %v, want only the visible part", pls)
	}
}

func TestPlacements_ReferenceEmbedsTarget(t *testing.T) {
	cache, dir := newTestCache(t)

	target := NewDefinition("Target")
	target.Pivot = Vec2{20, 20}
	s := NewSpritePart("body")
	s.Position = Vec2{0, 0}
	s.Size = Vec2{40, 40}
	target.AddPart(s)
	if err := SaveDefinition(target, filepath.Join(dir, "Target"+DefExt)); err != nil {
		t.Fatal(err)
	}
	cache.Index().Rescan()

	doc := NewDefinition("Doc")
	ref := NewReferencePart("ref", "Target")
	ref.Position = Vec2{100, 100}
	ref.Size = Vec2{40, 40}
	ref.PivotOffset = Vec2{-20, -20}
	doc.AddPart(ref)

	pls := Placements(doc, cache)
	if len(pls) != 1 {
		t.Fatalf("got %d placements, want 1", len(pls))
	}
	pl := pls[0]
	if pl.Part.Name != "body" || pl.Depth != 1 || pl.Missing {
		t.Fatalf("placement = %+v, want embedded sprite at depth 1", pl)
	}
	// World pivot is (100, 100); the target's pivot (20, 20) lands there, so
	// the embedded content is offset by (80, 80).
	if pl.Offset != (Vec2{80, 80}) {
		t.Errorf("Offset = %+v, want (80, 80)", pl.Offset)
	}
}

func TestPlacements_MissingTarget_MarkedNotDropped(t *testing.T) {
	cache, _ := newTestCache(t)

	doc := NewDefinition("Doc")
	doc.AddPart(NewReferencePart("ref", "Ghost"))

	pls := Placements(doc, cache)
	if len(pls) != 1 {
		t.Fatalf("got %d placements, want 1", len(pls))
	}
	if !pls[0].Missing || pls[0].Part.Name != "ref" {
		t.Errorf("placement = %+v, want the reference part marked Missing", pls[0])
	}
}

func TestPlacements_CyclicDataOnDisk_Terminates(t *testing.T) {
	cache, dir := newTestCache(t)
	writeDefWithRefs(t, dir, "A", "B")
	writeDefWithRefs(t, dir, "B", "A")
	cache.Index().Rescan()

	root, ok := cache.Get("A")
	if !ok {
		t.Fatal("Get(A) failed")
	}
	// Both definitions resolve, so the walk alternates between them until the
	// depth guard cuts it off. Returning at all is the property under test.
	pls := Placements(root, cache)
	for _, pl := range pls {
		if pl.Depth > MaxComposeDepth {
			t.Errorf("placement at depth %d exceeds the guard", pl.Depth)
		}
	}
}
