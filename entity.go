package rigging

import "sort"

// Hitbox is a collision/damage/trigger area attached to a body part or to the
// definition itself. All geometry is integer pixels; no sub-pixel values.
type Hitbox struct {
	Name    string
	X, Y    int // position relative to the owner (part origin or entity pivot)
	Width   int
	Height  int
	Kind    string // HitboxCollision, HitboxDamage, HitboxTrigger, ...
	Shape   HitboxShape
	Radius  int // used when Shape == HitboxCircle
	Enabled bool
}

// NewHitbox creates an enabled rectangular collision hitbox with the default
// 32x32 size.
func NewHitbox(name string) *Hitbox {
	return &Hitbox{
		Name:    name,
		Width:   32,
		Height:  32,
		Kind:    HitboxCollision,
		Shape:   HitboxRect,
		Radius:  16,
		Enabled: true,
	}
}

// BodyPart is a single visual component of a definition. A flat struct is
// used for both variants, discriminated by Kind; consumers switch exhaustively
// on Kind rather than type-asserting.
//
// Sprite parts own their texture and UV mapping. Reference parts embed another
// definition by name; their Size and PivotOffset are derived caches kept in
// step with the target's bounds by Reconcile. The pair satisfies:
//
//	target pivot in parent space == Position + Size/2 + PivotOffset
type BodyPart struct {
	Name string
	Kind PartKind

	Position Vec2
	Size     Vec2    // sprite: authored size; reference: cached target bounds size
	Rotation float64 // degrees
	ZOrder   int     // higher draws on top; ties keep declaration order
	Visible  bool

	FlipX, FlipY bool
	PixelScale   int // integer pixel multiplier, >= 1

	Hitboxes []*Hitbox

	// Sprite fields (PartSprite)
	TextureID string
	UV        UVRect
	Pivot     Vec2 // rotation center, stored independently from Size

	// Reference fields (PartReference)
	EntityRef   string // name resolvable through the Index
	PivotOffset Vec2   // alignment of the target's pivot, see invariant above
}

// NewSpritePart creates a visible 64x64 sprite part with a full-texture UV
// rect and a centered pivot.
func NewSpritePart(name string) *BodyPart {
	return &BodyPart{
		Name:       name,
		Kind:       PartSprite,
		Size:       Vec2{64, 64},
		UV:         FullUV,
		Pivot:      Vec2{32, 32},
		PixelScale: 1,
		Visible:    true,
	}
}

// NewReferencePart creates a visible reference part pointing at ref. Size and
// PivotOffset start at their defaults and are corrected by the first
// Reconcile after assignment.
func NewReferencePart(name, ref string) *BodyPart {
	return &BodyPart{
		Name:       name,
		Kind:       PartReference,
		Size:       Vec2{64, 64},
		EntityRef:  ref,
		PixelScale: 1,
		Visible:    true,
	}
}

// Definition is a complete entity: pivot, body parts, entity-level hitboxes,
// and metadata. Identity for reference lookup is the file's base name, not
// Name; two files may declare the same Name without conflict.
type Definition struct {
	Name     string
	Pivot    Vec2
	Parts    []*BodyPart
	Hitboxes []*Hitbox // entity-level, positioned relative to Pivot

	Version  string
	Tags     []string
	Metadata map[string]any
}

// NewDefinition creates an empty definition with the given name.
func NewDefinition(name string) *Definition {
	return &Definition{
		Name:    name,
		Version: "1.0",
	}
}

// Part returns the first body part with the given name, or nil.
func (d *Definition) Part(name string) *BodyPart {
	for _, p := range d.Parts {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// AddPart appends a body part.
func (d *Definition) AddPart(p *BodyPart) {
	d.Parts = append(d.Parts, p)
}

// RemovePart removes the given part by identity. Returns false if the part is
// not present.
func (d *Definition) RemovePart(p *BodyPart) bool {
	for i, q := range d.Parts {
		if q == p {
			copy(d.Parts[i:], d.Parts[i+1:])
			d.Parts[len(d.Parts)-1] = nil
			d.Parts = d.Parts[:len(d.Parts)-1]
			return true
		}
	}
	return false
}

// SortedParts returns the body parts in render order: ascending ZOrder, ties
// broken by declaration order. The receiver's slice is not modified.
func (d *Definition) SortedParts() []*BodyPart {
	out := make([]*BodyPart, len(d.Parts))
	copy(out, d.Parts)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ZOrder < out[j].ZOrder
	})
	return out
}

// ReferenceParts returns the parts with Kind == PartReference, in declaration
// order.
func (d *Definition) ReferenceParts() []*BodyPart {
	var out []*BodyPart
	for _, p := range d.Parts {
		if p.Kind == PartReference {
			out = append(out, p)
		}
	}
	return out
}
