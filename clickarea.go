package uix

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// ClickAreaMode selects which raycast areas the overlay shows.
type ClickAreaMode uint8

const (
	ClickAreaHidden    ClickAreaMode = iota // no overlay
	ClickAreaSelection                      // selected subtrees only
	ClickAreaAll                            // every graphic in the scene
)

// String returns the mode name as used in configuration files.
func (m ClickAreaMode) String() string {
	switch m {
	case ClickAreaSelection:
		return "selection"
	case ClickAreaAll:
		return "all"
	default:
		return "hidden"
	}
}

// ClickAreaOverlay highlights the screen areas that intercept pointer
// raycasts, and outlines the raycast targets of the selection.
type ClickAreaOverlay struct {
	Mode ClickAreaMode

	// Texture is stretched over each area. When nil, areas are filled
	// with Color.
	Texture *ebiten.Image
	Color   Color

	// GizmoColor outlines selected raycast targets.
	GizmoColor Color
	GizmoWidth float32

	selection []*Node
	graphics  []*Node
	rects     []Rect
	gizmos    [][4]Vec2
}

func newClickAreaOverlay(mode ClickAreaMode) *ClickAreaOverlay {
	return &ClickAreaOverlay{
		Mode:       mode,
		Color:      Color{1, 0, 0, 0.35},
		GizmoColor: ColorYellow,
		GizmoWidth: 1,
	}
}

// SetClickAreaMode switches the click-area overlay. The overlay keeps its
// colors, texture and selection while hidden.
func (s *Scene) SetClickAreaMode(mode ClickAreaMode) {
	s.clickArea.Mode = mode
}

// ClickArea returns the scene's overlay. It is never nil; check Mode to see
// whether it is shown.
func (s *Scene) ClickArea() *ClickAreaOverlay {
	return s.clickArea
}

// Select replaces the selection used by ClickAreaSelection and gizmos.
func (o *ClickAreaOverlay) Select(nodes ...*Node) {
	o.selection = append(o.selection[:0], nodes...)
}

// ClearSelection empties the selection.
func (o *ClickAreaOverlay) ClearSelection() {
	clear(o.selection)
	o.selection = o.selection[:0]
}

// Rects returns the screen rects found by the last Collect.
func (o *ClickAreaOverlay) Rects() []Rect {
	return o.rects
}

// Gizmos returns the screen-space outlines found by the last Collect.
func (o *ClickAreaOverlay) Gizmos() [][4]Vec2 {
	return o.gizmos
}

// Collect gathers the raycast-blocking areas of s in screen space.
func (o *ClickAreaOverlay) Collect(s *Scene) {
	o.rects = o.rects[:0]
	o.gizmos = o.gizmos[:0]
	o.graphics = o.graphics[:0]

	switch o.Mode {
	case ClickAreaAll:
		o.graphics = appendGraphics(o.graphics, s.root)
	case ClickAreaSelection:
		for _, n := range o.selection {
			if n != nil && !n.disposed && n.Visible {
				o.graphics = appendGraphics(o.graphics, n)
			}
		}
	default:
		return
	}

	for _, g := range o.graphics {
		if !IsBlockRaycast(g) {
			continue
		}
		canvas, _ := CanvasOf(g)
		corners := g.WorldCorners()
		x0, y0 := canvasToScreen(canvas, corners[0])
		x1, y1 := canvasToScreen(canvas, corners[2])
		w, h := math.Abs(x1-x0), math.Abs(y1-y0)
		cx, cy := (x0+x1)/2, (y0+y1)/2
		o.rects = append(o.rects, Rect{X: cx - w/2, Y: cy - h/2, Width: w, Height: h})
	}

	o.graphics = o.graphics[:0]
	for _, n := range o.selection {
		if n != nil && !n.disposed {
			o.graphics = appendGraphics(o.graphics, n)
		}
	}
	for _, g := range o.graphics {
		canvas, _ := CanvasOf(g)
		if !g.Interactable || canvas == nil || canvas.Camera == nil {
			continue
		}
		corners := g.WorldCorners()
		var outline [4]Vec2
		for i, c := range corners {
			outline[i].X, outline[i].Y = canvas.Camera.WorldToScreen(c.X, c.Y)
		}
		o.gizmos = append(o.gizmos, outline)
	}
}

// appendGraphics appends n and every graphic below it.
func appendGraphics(buf []*Node, n *Node) []*Node {
	if isGraphic(n) {
		buf = append(buf, n)
	}
	for _, c := range n.children {
		buf = appendGraphics(buf, c)
	}
	return buf
}

func canvasToScreen(c *Canvas, p Vec2) (float64, float64) {
	if c.Camera == nil {
		return p.X, p.Y
	}
	return c.Camera.WorldToScreen(p.X, p.Y)
}

// Draw fills every collected rect on screen. A hidden overlay draws nothing.
func (o *ClickAreaOverlay) Draw(screen *ebiten.Image) {
	if o.Mode == ClickAreaHidden || len(o.rects) == 0 {
		return
	}
	src := o.Texture
	tint := ColorWhite
	if src == nil {
		src = ensureWhitePixel()
		tint = o.Color
	}
	b := src.Bounds()
	sw, sh := float64(b.Dx()), float64(b.Dy())

	var op ebiten.DrawImageOptions
	r, g, bl, a := tint.premultiplied()
	for _, rect := range o.rects {
		if rect.Empty() {
			continue
		}
		op.GeoM.Reset()
		op.GeoM.Scale(rect.Width/sw, rect.Height/sh)
		op.GeoM.Translate(rect.X, rect.Y)
		op.ColorScale.Reset()
		op.ColorScale.Scale(r, g, bl, a)
		screen.DrawImage(src, &op)
	}
}

// DrawGizmos strokes the collected outlines.
func (o *ClickAreaOverlay) DrawGizmos(screen *ebiten.Image) {
	if o.Mode == ClickAreaHidden {
		return
	}
	clr := o.GizmoColor.RGBA()
	for _, q := range o.gizmos {
		for i := range q {
			p0, p1 := q[i], q[(i+1)%4]
			vector.StrokeLine(screen, float32(p0.X), float32(p0.Y), float32(p1.X), float32(p1.Y),
				o.GizmoWidth, clr, true)
		}
	}
}
