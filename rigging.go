package rigging

// Vec2 is a 2D vector used for positions, offsets, sizes, and pivots
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Add returns the component-wise sum of v and o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns the component-wise difference of v and o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Center returns the rectangle's center point.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}

// UVRect is a normalized sub-rectangle within a texture. All components are
// in [0, 1]; (0, 0, 1, 1) selects the whole texture.
type UVRect struct {
	X, Y, Width, Height float64
}

// FullUV selects an entire texture.
var FullUV = UVRect{0, 0, 1, 1}

// PixelRect converts the normalized UV rectangle to pixel coordinates for a
// texture of the given size.
func (uv UVRect) PixelRect(texW, texH int) (x, y, w, h int) {
	return int(uv.X * float64(texW)), int(uv.Y * float64(texH)),
		int(uv.Width * float64(texW)), int(uv.Height * float64(texH))
}

// PartKind distinguishes the two body part variants.
type PartKind uint8

const (
	PartSprite    PartKind = iota // renders its own texture through a UV sub-rect
	PartReference                 // embeds another definition, resolved by name
)

// HitboxShape selects the geometric form of a hitbox.
type HitboxShape uint8

const (
	HitboxRect   HitboxShape = iota // position + size rectangle
	HitboxCircle                    // center + radius
)

// Hitbox kind tags. Free-form strings are accepted on load; these are the
// kinds the editor offers.
const (
	HitboxCollision = "collision"
	HitboxDamage    = "damage"
	HitboxTrigger   = "trigger"
)

const (
	// DefaultBoundsSize is the reported box size for a definition with no
	// visible content.
	DefaultBoundsSize = 64

	// MinBoundsSize floors the width and height of any non-empty bounds so
	// tiny content stays selectable.
	MinBoundsSize = 16

	// MaxComposeDepth caps reference-chain traversal during composition.
	// Cycle prevention happens at assignment time; this guard only protects
	// against cyclic data that reached disk outside the editor.
	MaxComposeDepth = 10
)
