package rigging

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Placement is one sprite draw produced by flattening a definition. Offset is
// the accumulated parent-space translation; Depth is the reference-nesting
// level (0 for the root definition's own parts).
//
// Missing marks a reference part whose target could not be resolved; it
// carries the reference part itself so renderers can draw a placeholder box.
type Placement struct {
	Part    *BodyPart
	Offset  Vec2
	Depth   int
	Missing bool
}

// Placements flattens def into draw order: parts z-sorted per level, with a
// reference part's embedded content emitted in place of the part itself. The
// embedded definition is positioned so its own pivot lands at the part's
// world pivot (Position + Size/2 + PivotOffset).
//
// Traversal stops below MaxComposeDepth levels. Assignment-time cycle
// filtering should make that unreachable; the guard protects against cyclic
// data that reached disk through hand edits or partial writes.
func Placements(def *Definition, cache *Cache) []Placement {
	var out []Placement
	flatten(def, cache, Vec2{}, 0, &out)
	return out
}

func flatten(def *Definition, cache *Cache, offset Vec2, depth int, out *[]Placement) {
	if depth > MaxComposeDepth {
		debugWarnDepthExceeded(def)
		return
	}
	for _, p := range def.SortedParts() {
		if !p.Visible {
			continue
		}
		switch p.Kind {
		case PartSprite:
			*out = append(*out, Placement{Part: p, Offset: offset, Depth: depth})
		case PartReference:
			target, ok := cache.Get(p.EntityRef)
			if !ok {
				*out = append(*out, Placement{Part: p, Offset: offset, Depth: depth, Missing: true})
				continue
			}
			worldPivot := Vec2{
				offset.X + p.Position.X + p.Size.X/2 + p.PivotOffset.X,
				offset.Y + p.Position.Y + p.Size.Y/2 + p.PivotOffset.Y,
			}
			flatten(target, cache, worldPivot.Sub(target.Pivot), depth+1, out)
		}
	}
}

// Compose draws def into dst: sprite parts through their UV sub-rects with
// flips, pixel scale, and rotation; reference parts by recursing into their
// targets. Unresolved references and broken textures degrade to translucent
// placeholder boxes.
func Compose(dst *ebiten.Image, def *Definition, cache *Cache, textures *Textures) {
	for _, pl := range Placements(def, cache) {
		if pl.Missing {
			drawPlaceholder(dst, pl.Part, pl.Offset)
			continue
		}
		drawSprite(dst, pl.Part, pl.Offset, textures)
	}
}

func drawSprite(dst *ebiten.Image, p *BodyPart, offset Vec2, textures *Textures) {
	img, ok := textures.Get(p.TextureID)
	if !ok {
		drawPlaceholder(dst, p, offset)
		return
	}

	b := img.Bounds()
	ux, uy, uw, uh := p.UV.PixelRect(b.Dx(), b.Dy())
	if uw <= 0 || uh <= 0 {
		drawPlaceholder(dst, p, offset)
		return
	}
	sub := img.SubImage(image.Rect(b.Min.X+ux, b.Min.Y+uy, b.Min.X+ux+uw, b.Min.Y+uy+uh)).(*ebiten.Image)

	renderW := p.Size.X * float64(p.PixelScale)
	renderH := p.Size.Y * float64(p.PixelScale)

	var op ebiten.DrawImageOptions
	sx := renderW / float64(uw)
	sy := renderH / float64(uh)
	if p.FlipX {
		sx = -sx
	}
	if p.FlipY {
		sy = -sy
	}
	op.GeoM.Scale(sx, sy)
	if p.FlipX {
		op.GeoM.Translate(renderW, 0)
	}
	if p.FlipY {
		op.GeoM.Translate(0, renderH)
	}
	if p.Rotation != 0 {
		// Rotate about the center of the rendered rectangle.
		op.GeoM.Translate(-renderW/2, -renderH/2)
		op.GeoM.Rotate(p.Rotation * math.Pi / 180)
		op.GeoM.Translate(renderW/2, renderH/2)
	}
	op.GeoM.Translate(offset.X+p.Position.X, offset.Y+p.Position.Y)

	dst.DrawImage(sub, &op)
}

// drawPlaceholder fills the part's rectangle with a translucent magenta box,
// marking missing textures and unresolved references without aborting the
// composition.
func drawPlaceholder(dst *ebiten.Image, p *BodyPart, offset Vec2) {
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(p.Size.X, p.Size.Y)
	op.GeoM.Translate(offset.X+p.Position.X, offset.Y+p.Position.Y)
	op.ColorScale.ScaleAlpha(0.4)
	dst.DrawImage(ensureMagentaImage(), &op)
}
