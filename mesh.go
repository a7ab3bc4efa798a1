package uix

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// MeshVertex is a generator-space vertex: position, flat color and UV.
type MeshVertex struct {
	Position Vec2
	Color    Color
	UV       Vec2
}

// MeshBuffer is a caller-owned vertex/index arena. Generators append to it;
// Clear keeps the backing arrays so a buffer reused every rebuild stops
// allocating once it reaches its high-water mark. A MeshBuffer must not be
// shared by two goroutines.
type MeshBuffer struct {
	Vertices []MeshVertex
	Indices  []uint16
}

// Clear empties the buffer without releasing its storage.
func (m *MeshBuffer) Clear() {
	m.Vertices = m.Vertices[:0]
	m.Indices = m.Indices[:0]
}

// VertCount returns the number of vertices currently in the buffer.
func (m *MeshBuffer) VertCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of index triples currently in the buffer.
func (m *MeshBuffer) TriangleCount() int {
	return len(m.Indices) / 3
}

// AddVert appends a single vertex.
func (m *MeshBuffer) AddVert(pos Vec2, c Color, uv Vec2) {
	m.Vertices = append(m.Vertices, MeshVertex{Position: pos, Color: c, UV: uv})
}

// AddTriangle appends one triangle referencing existing vertex indices.
func (m *MeshBuffer) AddTriangle(i0, i1, i2 int) {
	m.Indices = append(m.Indices, uint16(i0), uint16(i1), uint16(i2))
}

// Area returns the summed absolute area of all triangles.
func (m *MeshBuffer) Area() float64 {
	var area float64
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a := m.Vertices[m.Indices[i]].Position
		b := m.Vertices[m.Indices[i+1]].Position
		c := m.Vertices[m.Indices[i+2]].Position
		area += math.Abs((b.X-a.X)*(c.Y-a.Y)-(c.X-a.X)*(b.Y-a.Y)) / 2
	}
	return area
}

// Bounds returns the axis-aligned bounding box of all vertex positions.
func (m *MeshBuffer) Bounds() Rect {
	if len(m.Vertices) == 0 {
		return Rect{}
	}
	p := m.Vertices[0].Position
	minX, minY, maxX, maxY := p.X, p.Y, p.X, p.Y
	for _, v := range m.Vertices[1:] {
		minX = math.Min(minX, v.Position.X)
		minY = math.Min(minY, v.Position.Y)
		maxX = math.Max(maxX, v.Position.X)
		maxY = math.Max(maxY, v.Position.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// meshPage describes how generator UVs map onto an ebiten source image.
type meshPage struct {
	width, height float64
	solid         bool // untextured: every vertex samples the pixel center
}

// appendEbitenVertices converts generator output into ebiten vertices in the
// scene's y-down local space. height is the rect height used to flip Y; page
// maps normalized UVs (v up) onto source pixels (y down). Vertex colors are
// premultiplied by their own alpha.
func appendEbitenVertices(dst []ebiten.Vertex, src *MeshBuffer, height float64, page meshPage) []ebiten.Vertex {
	for i := range src.Vertices {
		v := &src.Vertices[i]
		r, g, b, a := v.Color.premultiplied()
		ev := ebiten.Vertex{
			DstX:   float32(v.Position.X),
			DstY:   float32(height - v.Position.Y),
			ColorR: r,
			ColorG: g,
			ColorB: b,
			ColorA: a,
		}
		if page.solid {
			ev.SrcX, ev.SrcY = 0.5, 0.5
		} else {
			ev.SrcX = float32(v.UV.X * page.width)
			ev.SrcY = float32((1 - v.UV.Y) * page.height)
		}
		dst = append(dst, ev)
	}
	return dst
}

// transformVertices applies an affine transform and color tint to src vertices,
// writing the result into dst. dst must be at least len(src) in length.
//
// Matrix layout: [0]=a, [1]=b, [2]=c, [3]=d, [4]=tx, [5]=ty
// newX = a*x + c*y + tx, newY = b*x + d*y + ty
//
// Source colors are premultiplied already; the tint is applied premultiplied
// by its own alpha, which carries the node's world alpha.
func transformVertices(src, dst []ebiten.Vertex, transform [6]float64, tint Color) {
	a, b, c, d, tx, ty := transform[0], transform[1], transform[2], transform[3], transform[4], transform[5]
	cr, cg, cb, ca := tint.premultiplied()

	for i := range src {
		s := &src[i]
		ox := float64(s.DstX)
		oy := float64(s.DstY)
		dst[i] = ebiten.Vertex{
			DstX:   float32(a*ox + c*oy + tx),
			DstY:   float32(b*ox + d*oy + ty),
			SrcX:   s.SrcX,
			SrcY:   s.SrcY,
			ColorR: s.ColorR * cr,
			ColorG: s.ColorG * cg,
			ColorB: s.ColorB * cb,
			ColorA: s.ColorA * ca,
		}
	}
}

// computeMeshAABB scans DstX/DstY of the given vertices and returns
// the axis-aligned bounding box in local space.
func computeMeshAABB(verts []ebiten.Vertex) Rect {
	if len(verts) == 0 {
		return Rect{}
	}
	minX, minY := float64(verts[0].DstX), float64(verts[0].DstY)
	maxX, maxY := minX, minY
	for i := 1; i < len(verts); i++ {
		x, y := float64(verts[i].DstX), float64(verts[i].DstY)
		minX = math.Min(minX, x)
		minY = math.Min(minY, y)
		maxX = math.Max(maxX, x)
		maxY = math.Max(maxY, y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// ensureTransformedVerts grows the node's transformedVerts buffer to fit
// len(n.Vertices). The buffer never shrinks.
func ensureTransformedVerts(n *Node) []ebiten.Vertex {
	need := len(n.Vertices)
	if cap(n.transformedVerts) < need {
		n.transformedVerts = make([]ebiten.Vertex, need)
	}
	n.transformedVerts = n.transformedVerts[:need]
	return n.transformedVerts
}

// InvalidateMeshAABB marks the mesh's cached AABB as needing recomputation.
// Call this after modifying Vertices.
func (n *Node) InvalidateMeshAABB() {
	n.meshAABBDirty = true
}

func (n *Node) recomputeMeshAABB() {
	if !n.meshAABBDirty {
		return
	}
	n.meshAABB = computeMeshAABB(n.Vertices)
	n.meshAABBDirty = false
}

// --- White pixel singleton (single-threaded, no sync.Once) ---

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image used by
// untextured meshes and flat overlays.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.White)
	}
	return whitePixelImage
}
