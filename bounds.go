package rigging

import "math"

// Bounds computes the axis-aligned bounding box of a definition's visible
// content: every visible body part's [Position, Position+Size] rectangle plus
// every enabled entity-level hitbox offset from the pivot.
//
// Reference parts contribute their cached Size as-is; Bounds does not recurse
// into the target's own content, so a reference's contribution is only as
// fresh as the last Reconcile at that level.
//
// A definition with no contributing content reports a default 64x64 box at
// the origin. Otherwise width and height are floored at 16 without moving the
// reported origin.
func Bounds(d *Definition) Rect {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	found := false

	for _, p := range d.Parts {
		if !p.Visible {
			continue
		}
		found = true
		minX = math.Min(minX, p.Position.X)
		minY = math.Min(minY, p.Position.Y)
		maxX = math.Max(maxX, p.Position.X+p.Size.X)
		maxY = math.Max(maxY, p.Position.Y+p.Size.Y)
	}

	for _, hb := range d.Hitboxes {
		if !hb.Enabled {
			continue
		}
		found = true
		x := d.Pivot.X + float64(hb.X)
		y := d.Pivot.Y + float64(hb.Y)
		minX = math.Min(minX, x)
		minY = math.Min(minY, y)
		maxX = math.Max(maxX, x+float64(hb.Width))
		maxY = math.Max(maxY, y+float64(hb.Height))
	}

	if !found {
		return Rect{0, 0, DefaultBoundsSize, DefaultBoundsSize}
	}

	return Rect{
		X:      minX,
		Y:      minY,
		Width:  math.Max(maxX-minX, MinBoundsSize),
		Height: math.Max(maxY-minY, MinBoundsSize),
	}
}
