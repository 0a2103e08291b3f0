package rigging

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds active scroll-to tweens for camera X, Y, and zoom.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	tweenZ *gween.Tween
	doneX  bool
	doneY  bool
	doneZ  bool
}

// Camera is the editor viewport's view into entity space: the world point it
// centers on, a zoom factor, and the screen rectangle it renders into. The
// editor drives it from wheel/drag input; FrameBounds and ScrollTo animate it.
type Camera struct {
	// X and Y are the world-space position the camera centers on.
	X, Y float64
	// Zoom is the scale factor (1.0 = no zoom, >1 = zoom in, <1 = zoom out).
	Zoom float64
	// Viewport is the screen-space rectangle this camera renders into.
	Viewport Rect

	viewMatrix    [6]float64
	invViewMatrix [6]float64
	dirty         bool

	scrollTween *scrollAnim
}

// NewCamera creates a camera with no zoom, centered on the origin.
func NewCamera(viewport Rect) *Camera {
	return &Camera{
		Zoom:     1.0,
		Viewport: viewport,
		dirty:    true,
	}
}

// Pan moves the camera center by a screen-space delta (drag panning).
func (c *Camera) Pan(dx, dy float64) {
	if c.Zoom != 0 {
		c.X -= dx / c.Zoom
		c.Y -= dy / c.Zoom
	}
	c.scrollTween = nil
	c.dirty = true
}

// ZoomAt multiplies the zoom by factor while keeping the world point under
// the given screen position fixed (wheel zoom).
func (c *Camera) ZoomAt(factor, screenX, screenY float64) {
	if factor == 0 {
		return
	}
	wx, wy := c.ScreenToWorld(screenX, screenY)
	c.Zoom *= factor
	c.dirty = true
	c.updateMatrices()
	nx, ny := c.ScreenToWorld(screenX, screenY)
	c.X += wx - nx
	c.Y += wy - ny
	c.dirty = true
}

// ScrollTo animates the camera center to the given world position over
// duration seconds.
func (c *Camera) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	c.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(c.X), float32(x), duration, easeFn),
		tweenY: gween.New(float32(c.Y), float32(y), duration, easeFn),
	}
}

// FrameBounds animates the camera to center on bounds and zoom so the whole
// rectangle fits the viewport with a 10% margin.
func (c *Camera) FrameBounds(b Rect, duration float32, easeFn ease.TweenFunc) {
	center := b.Center()
	zoom := c.Zoom
	if b.Width > 0 && b.Height > 0 && c.Viewport.Width > 0 && c.Viewport.Height > 0 {
		zoom = 0.9 * math.Min(c.Viewport.Width/b.Width, c.Viewport.Height/b.Height)
	}
	c.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(c.X), float32(center.X), duration, easeFn),
		tweenY: gween.New(float32(c.Y), float32(center.Y), duration, easeFn),
		tweenZ: gween.New(float32(c.Zoom), float32(zoom), duration, easeFn),
	}
}

// Update advances any active scroll animation by dt seconds.
func (c *Camera) Update(dt float32) {
	if t := c.scrollTween; t != nil {
		if !t.doneX {
			v, done := t.tweenX.Update(dt)
			c.X = float64(v)
			t.doneX = done
		}
		if !t.doneY {
			v, done := t.tweenY.Update(dt)
			c.Y = float64(v)
			t.doneY = done
		}
		if t.tweenZ != nil && !t.doneZ {
			v, done := t.tweenZ.Update(dt)
			c.Zoom = float64(v)
			t.doneZ = done
		}
		if t.doneX && t.doneY && (t.tweenZ == nil || t.doneZ) {
			c.scrollTween = nil
		}
		c.dirty = true
	}
	if c.dirty {
		c.updateMatrices()
	}
}

// updateMatrices recomputes the view and inverse-view matrices:
// translate(-center) -> scale(zoom) -> translate(viewport center).
func (c *Camera) updateMatrices() {
	vcx := c.Viewport.X + c.Viewport.Width/2
	vcy := c.Viewport.Y + c.Viewport.Height/2
	m := [6]float64{1, 0, 0, 1, -c.X, -c.Y}
	m = multiplyAffine([6]float64{c.Zoom, 0, 0, c.Zoom, 0, 0}, m)
	m = multiplyAffine([6]float64{1, 0, 0, 1, vcx, vcy}, m)
	c.viewMatrix = m
	c.invViewMatrix = invertAffine(m)
	c.dirty = false
}

// ViewMatrix returns the world-to-screen affine matrix.
func (c *Camera) ViewMatrix() [6]float64 {
	if c.dirty {
		c.updateMatrices()
	}
	return c.viewMatrix
}

// ScreenToWorld converts a screen-space point to world space.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	if c.dirty {
		c.updateMatrices()
	}
	return transformPoint(c.invViewMatrix, sx, sy)
}

// WorldToScreen converts a world-space point to screen space.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	if c.dirty {
		c.updateMatrices()
	}
	return transformPoint(c.viewMatrix, wx, wy)
}
