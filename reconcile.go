package rigging

// Reconcile recomputes a reference part's cached Size and PivotOffset from
// its target's current bounds, repositioning the part so the target's pivot
// stays at the same spot in the parent's space. It reports whether anything
// changed; an unchanged part is left untouched so callers can skip redundant
// dirty notifications.
//
// The world pivot preserved across the change is the one implied by the
// part's state before any field is overwritten:
//
//	worldPivot = Position + Size/2 + PivotOffset
//
// Calling Reconcile on a sprite part is a contract violation and panics.
//
// A part with an empty or unresolvable reference is left as-is and reports
// false; staleness resolves on a later pass once the target loads.
func Reconcile(part *BodyPart, cache *Cache) bool {
	if part.Kind != PartReference {
		panic("rigging: Reconcile called on a sprite body part")
	}
	if part.EntityRef == "" {
		return false
	}

	target, ok := cache.Get(part.EntityRef)
	if !ok {
		return false
	}

	b := Bounds(target)

	// Alignment that places the target's own pivot at the center of the
	// part's local rectangle.
	offset := Vec2{-(b.X + b.Width/2), -(b.Y + b.Height/2)}

	worldPivot := Vec2{
		part.Position.X + part.Size.X/2 + part.PivotOffset.X,
		part.Position.Y + part.Size.Y/2 + part.PivotOffset.Y,
	}
	pos := Vec2{
		worldPivot.X - b.Width/2 - offset.X,
		worldPivot.Y - b.Height/2 - offset.Y,
	}
	size := Vec2{b.Width, b.Height}

	if part.Size == size && part.PivotOffset == offset && part.Position == pos {
		return false
	}
	part.Size = size
	part.PivotOffset = offset
	part.Position = pos
	return true
}
