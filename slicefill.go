package uix

// FillMethod selects the axis a partial fill progresses along.
type FillMethod uint8

const (
	FillHorizontal FillMethod = iota // reveal along X
	FillVertical                     // reveal along Y
)

// FillOrigin selects the edge a fill starts from. Horizontal fills use
// FillOriginLeft or FillOriginRight, vertical fills FillOriginBottom or
// FillOriginTop. The near edges share the value 0 and the far edges the
// value 1, so an origin keeps its meaning when the method changes. Values
// above 1 are unknown origins: GenerateSlicedFill emits every cell
// unclipped for them, while GenerateFilled falls back to the near edge.
type FillOrigin uint8

const (
	FillOriginLeft  FillOrigin = 0
	FillOriginRight FillOrigin = 1
)

const (
	FillOriginBottom FillOrigin = 0
	FillOriginTop    FillOrigin = 1
)

// far reports whether the fill starts at the high-coordinate edge.
func (o FillOrigin) far() bool {
	return o == FillOriginRight
}

func (o FillOrigin) known() bool {
	return o <= FillOriginRight
}

// minFillAmount is the smallest fill amount that produces geometry.
const minFillAmount = 0.001

// Border holds nine-slice border widths in generator units (Y up, so Bottom
// is the low-Y edge).
type Border struct {
	Left, Bottom, Right, Top float64
}

// IsZero reports whether all four sides are zero.
func (b Border) IsZero() bool {
	return b.Left == 0 && b.Bottom == 0 && b.Right == 0 && b.Top == 0
}

// Scale returns the border with every side multiplied by f.
func (b Border) Scale(f float64) Border {
	return Border{b.Left * f, b.Bottom * f, b.Right * f, b.Top * f}
}

// UVRect is a normalized texture rectangle in atlas page space, V up.
type UVRect struct {
	UMin, VMin, UMax, VMax float64
}

// SliceGrid partitions a rect into 3x3 cells. X and Y hold the four ordered
// cut lines per axis; U and V the matching texture coordinates.
type SliceGrid struct {
	X, Y [4]float64
	U, V [4]float64
}

// SlicedFillParams is the full input of GenerateSlicedFill.
type SlicedFillParams struct {
	Rect    Rect   // target rect in generator units
	Border  Border // sprite border, already divided by pixels-per-unit
	Padding Border // transparent trim around the sprite, same units as Rect
	OuterUV UVRect // sprite bounds on the atlas page
	InnerUV UVRect // border-inset bounds on the atlas page

	FillMethod FillMethod
	FillOrigin FillOrigin
	FillAmount float64 // [0, 1]; below 0.001 nothing is emitted
	FillCenter bool    // emit the middle cell

	Color Color // flat color for every vertex
}

// AdjustBorders scales opposite border pairs down proportionally when they
// would not fit in a width x height rect, so the center never turns
// negative. Pairs that fit are returned unchanged.
func AdjustBorders(border Border, width, height float64) Border {
	width = max(width, 0)
	height = max(height, 0)
	if sum := border.Left + border.Right; sum != 0 && width < sum {
		ratio := width / sum
		border.Left *= ratio
		border.Right *= ratio
	}
	if sum := border.Bottom + border.Top; sum != 0 && height < sum {
		ratio := height / sum
		border.Bottom *= ratio
		border.Top *= ratio
	}
	return border
}

// BuildSliceGrid places the four cut lines per axis: padding-inset outer
// edges and border-inset inner edges.
func BuildSliceGrid(rect Rect, border, padding Border, outer, inner UVRect) SliceGrid {
	right := rect.X + rect.Width
	top := rect.Y + rect.Height
	return SliceGrid{
		X: [4]float64{rect.X + padding.Left, rect.X + border.Left, right - border.Right, right - padding.Right},
		Y: [4]float64{rect.Y + padding.Bottom, rect.Y + border.Bottom, top - border.Top, top - padding.Top},
		U: [4]float64{outer.UMin, inner.UMin, inner.UMax, outer.UMax},
		V: [4]float64{outer.VMin, inner.VMin, inner.VMax, outer.VMax},
	}
}

// fillAxis returns the cut lines along the fill direction.
func (g *SliceGrid) fillAxis(method FillMethod) *[4]float64 {
	if method == FillVertical {
		return &g.Y
	}
	return &g.X
}

// cellQuad is one axis-aligned cell: position and UV extents.
type cellQuad struct {
	x0, y0, x1, y1 float64
	u0, v0, u1, v1 float64
}

func (g *SliceGrid) cell(x, y int) cellQuad {
	return cellQuad{
		x0: g.X[x], y0: g.Y[y], x1: g.X[x+1], y1: g.Y[y+1],
		u0: g.U[x], v0: g.V[y], u1: g.U[x+1], v1: g.V[y+1],
	}
}

// clip shrinks the quad along the fill axis to amount of its extent,
// moving position and UV together. Near origins pull the trailing edge back
// toward the start; far origins pull the leading edge toward the end.
func (q *cellQuad) clip(method FillMethod, origin FillOrigin, amount float64) {
	if amount >= 1 {
		return
	}
	switch method {
	case FillHorizontal:
		if origin.far() {
			q.x0 = q.x1 - (q.x1-q.x0)*amount
			q.u0 = q.u1 - (q.u1-q.u0)*amount
		} else {
			q.x1 = q.x0 + (q.x1-q.x0)*amount
			q.u1 = q.u0 + (q.u1-q.u0)*amount
		}
	case FillVertical:
		if origin.far() {
			q.y0 = q.y1 - (q.y1-q.y0)*amount
			q.v0 = q.v1 - (q.v1-q.v0)*amount
		} else {
			q.y1 = q.y0 + (q.y1-q.y0)*amount
			q.v1 = q.v0 + (q.v1-q.v0)*amount
		}
	}
}

// emit appends the quad as four vertices and two fan triangles based at the
// buffer's current vertex count.
func (q *cellQuad) emit(dst *MeshBuffer, c Color) {
	base := dst.VertCount()
	dst.AddVert(Vec2{q.x0, q.y0}, c, Vec2{q.u0, q.v0})
	dst.AddVert(Vec2{q.x0, q.y1}, c, Vec2{q.u0, q.v1})
	dst.AddVert(Vec2{q.x1, q.y1}, c, Vec2{q.u1, q.v1})
	dst.AddVert(Vec2{q.x1, q.y0}, c, Vec2{q.u1, q.v0})
	dst.AddTriangle(base, base+1, base+2)
	dst.AddTriangle(base+2, base+3, base)
}

// GenerateSlicedFill replaces dst's contents with a nine-slice mesh clipped
// to p.FillAmount along p.FillMethod, starting at p.FillOrigin. Border cells
// keep their proportions while the fill advances through them.
//
// Generator space is Y up: Bottom borders and the FillOriginBottom edge sit
// at p.Rect.Y. Cells whose normalized start is at or past the fill amount
// are skipped, so a fill that lands exactly on a cut line does not emit the
// next cell. Degenerate input never panics; at worst the mesh is empty.
func GenerateSlicedFill(p SlicedFillParams, dst *MeshBuffer) {
	dst.Clear()
	if !(p.FillAmount >= minFillAmount) {
		return
	}

	border := AdjustBorders(p.Border, p.Rect.Width, p.Rect.Height)
	grid := BuildSliceGrid(p.Rect, border, p.Padding, p.OuterUV, p.InnerUV)

	axis := grid.fillAxis(p.FillMethod)
	start := axis[0]
	invTotal := 1.0
	if total := axis[3] - axis[0]; total > 0 {
		invTotal = 1 / total
	}
	far := p.FillOrigin.far()
	known := p.FillOrigin.known()

	for x := 0; x < 3; x++ {
		for y := 0; y < 3; y++ {
			if !p.FillCenter && x == 1 && y == 1 {
				continue
			}

			i := x
			if p.FillMethod == FillVertical {
				i = y
			}
			var sliceStart, sliceEnd float64
			if known {
				sliceStart = (axis[i] - start) * invTotal
				sliceEnd = (axis[i+1] - start) * invTotal
				if far {
					sliceStart, sliceEnd = 1-sliceEnd, 1-sliceStart
				}
			}
			if sliceStart >= p.FillAmount {
				continue
			}

			local := 1.0
			if span := sliceEnd - sliceStart; span > 0 {
				local = (p.FillAmount - sliceStart) / span
			}

			q := grid.cell(x, y)
			q.clip(p.FillMethod, p.FillOrigin, local)
			q.emit(dst, p.Color)
		}
	}
}

// GenerateSliced replaces dst's contents with the complete nine-slice mesh,
// ignoring the fill settings.
func GenerateSliced(p SlicedFillParams, dst *MeshBuffer) {
	p.FillAmount = 1
	GenerateSlicedFill(p, dst)
}

// GenerateFilled replaces dst's contents with a single quad covering the
// padding-inset rect with the outer UVs, clipped to p.FillAmount. Borders
// and FillCenter are ignored.
func GenerateFilled(p SlicedFillParams, dst *MeshBuffer) {
	dst.Clear()
	if !(p.FillAmount >= minFillAmount) {
		return
	}
	r := p.Rect
	q := cellQuad{
		x0: r.X + p.Padding.Left, y0: r.Y + p.Padding.Bottom,
		x1: r.X + r.Width - p.Padding.Right, y1: r.Y + r.Height - p.Padding.Top,
		u0: p.OuterUV.UMin, v0: p.OuterUV.VMin,
		u1: p.OuterUV.UMax, v1: p.OuterUV.VMax,
	}
	q.clip(p.FillMethod, p.FillOrigin, p.FillAmount)
	q.emit(dst, p.Color)
}

// GenerateSimple replaces dst's contents with one unclipped quad covering
// the padding-inset rect.
func GenerateSimple(p SlicedFillParams, dst *MeshBuffer) {
	p.FillAmount = 1
	GenerateFilled(p, dst)
}
