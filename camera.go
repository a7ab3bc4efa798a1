package uix

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Camera maps world space into a screen viewport. UI canvases reference a
// camera to resolve their raycasts and culling.
type Camera struct {
	// Name identifies the camera for Scene.Camera lookups.
	Name string
	// X and Y are the world-space point shown at the viewport center.
	X, Y float64
	// Zoom is the scale factor (1 = no zoom).
	Zoom float64
	// Rotation is the camera rotation in radians (clockwise).
	Rotation float64
	// Viewport is the screen-space rectangle this camera renders into.
	Viewport Rect
	// CullEnabled skips nodes whose world bounds miss VisibleBounds.
	CullEnabled bool

	viewMatrix    [6]float64
	invViewMatrix [6]float64
	dirty         bool

	scrollX, scrollY *gween.Tween
}

func newCamera(viewport Rect) *Camera {
	return &Camera{
		Zoom:        1,
		Viewport:    viewport,
		CullEnabled: true,
		dirty:       true,
	}
}

// ScrollTo animates the camera center to (x, y) over duration seconds.
func (c *Camera) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	c.scrollX = gween.New(float32(c.X), float32(x), duration, easeFn)
	c.scrollY = gween.New(float32(c.Y), float32(y), duration, easeFn)
}

// Scrolling reports whether a ScrollTo animation is in progress.
func (c *Camera) Scrolling() bool {
	return c.scrollX != nil
}

// update advances the scroll animation. Called from Scene.Update.
func (c *Camera) update(dt float32) {
	if c.scrollX == nil {
		return
	}
	x, doneX := c.scrollX.Update(dt)
	y, doneY := c.scrollY.Update(dt)
	c.X, c.Y = float64(x), float64(y)
	c.dirty = true
	if doneX && doneY {
		c.scrollX, c.scrollY = nil, nil
	}
}

// computeViewMatrix returns the cached view matrix, rebuilding it if dirty:
//
//	Translate(viewport center) * Scale(zoom) * Rotate(-rotation) * Translate(-X, -Y)
func (c *Camera) computeViewMatrix() [6]float64 {
	if !c.dirty {
		return c.viewMatrix
	}
	c.dirty = false

	cx := c.Viewport.X + c.Viewport.Width/2
	cy := c.Viewport.Y + c.Viewport.Height/2
	sin, cos := math.Sincos(-c.Rotation)
	z := c.Zoom

	a := z * cos
	b := z * sin
	cc := -z * sin
	d := z * cos
	c.viewMatrix = [6]float64{
		a, b, cc, d,
		cx - (a*c.X + cc*c.Y),
		cy - (b*c.X + d*c.Y),
	}
	c.invViewMatrix = invertAffine(c.viewMatrix)
	return c.viewMatrix
}

// MarkDirty forces the view matrix to be rebuilt. Call after writing
// X, Y, Zoom, Rotation or Viewport directly.
func (c *Camera) MarkDirty() {
	c.dirty = true
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	return transformPoint(c.computeViewMatrix(), wx, wy)
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	c.computeViewMatrix()
	return transformPoint(c.invViewMatrix, sx, sy)
}

// VisibleBounds returns the world-space bounding box of the viewport.
func (c *Camera) VisibleBounds() Rect {
	c.computeViewMatrix()
	return transformRect(c.invViewMatrix, c.Viewport)
}

// shouldCull reports whether n lies entirely outside bounds (world space).
// Containers and nodes with no measurable size are never culled.
func shouldCull(n *Node, bounds Rect) bool {
	if n.Type == NodeTypeContainer {
		return false
	}
	local := n.localBounds()
	if local.Width == 0 && local.Height == 0 {
		return false
	}
	return !transformRect(n.worldTransform, local).Intersects(bounds)
}
