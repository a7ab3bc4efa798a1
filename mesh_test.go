package uix

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- MeshBuffer ---

func TestMeshBufferBasics(t *testing.T) {
	var m MeshBuffer
	m.AddVert(Vec2{0, 0}, ColorWhite, Vec2{})
	m.AddVert(Vec2{10, 0}, ColorWhite, Vec2{1, 0})
	m.AddVert(Vec2{10, 5}, ColorWhite, Vec2{1, 1})
	m.AddTriangle(0, 1, 2)

	if m.VertCount() != 3 || m.TriangleCount() != 1 {
		t.Fatalf("counts = %d/%d", m.VertCount(), m.TriangleCount())
	}
	assertNear(t, "Area", m.Area(), 25)
	if b := m.Bounds(); b != (Rect{Width: 10, Height: 5}) {
		t.Errorf("Bounds = %+v", b)
	}

	vcap := cap(m.Vertices)
	m.Clear()
	if m.VertCount() != 0 || m.TriangleCount() != 0 || cap(m.Vertices) != vcap {
		t.Error("Clear should empty the buffer and keep its storage")
	}
	if m.Bounds() != (Rect{}) || m.Area() != 0 {
		t.Error("empty buffer has no bounds or area")
	}
}

// --- appendEbitenVertices ---

func TestAppendEbitenVerticesFlipsAndMaps(t *testing.T) {
	var m MeshBuffer
	m.AddVert(Vec2{0, 0}, Color{1, 0, 0, 0.5}, Vec2{0.25, 0})
	m.AddVert(Vec2{20, 30}, ColorWhite, Vec2{0.5, 1})

	out := appendEbitenVertices(nil, &m, 30, meshPage{width: 64, height: 32})
	if len(out) != 2 {
		t.Fatalf("len = %d", len(out))
	}
	// Generator y=0 is the bottom edge: scene y = height.
	if out[0].DstX != 0 || out[0].DstY != 30 || out[1].DstY != 0 {
		t.Errorf("positions = (%v, %v) (%v, %v)", out[0].DstX, out[0].DstY, out[1].DstX, out[1].DstY)
	}
	// v=0 is the bottom of the page: source y = page height.
	if out[0].SrcX != 16 || out[0].SrcY != 32 || out[1].SrcY != 0 {
		t.Errorf("src = (%v, %v) (%v, %v)", out[0].SrcX, out[0].SrcY, out[1].SrcX, out[1].SrcY)
	}
	if out[0].ColorR != 0.5 || out[0].ColorA != 0.5 || out[0].ColorG != 0 {
		t.Errorf("color not premultiplied: %+v", out[0])
	}
}

func TestAppendEbitenVerticesSolid(t *testing.T) {
	var m MeshBuffer
	m.AddVert(Vec2{5, 5}, ColorWhite, Vec2{0.9, 0.9})
	out := appendEbitenVertices(make([]ebiten.Vertex, 1), &m, 10, meshPage{solid: true})
	if len(out) != 2 {
		t.Fatalf("should append after existing vertices, len = %d", len(out))
	}
	if out[1].SrcX != 0.5 || out[1].SrcY != 0.5 {
		t.Errorf("solid src = (%v, %v), want the pixel center", out[1].SrcX, out[1].SrcY)
	}
}

// --- transformVertices ---

func TestTransformVertices(t *testing.T) {
	src := []ebiten.Vertex{
		{DstX: 1, DstY: 0, SrcX: 3, SrcY: 4, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
		{DstX: 0, DstY: 2, ColorR: 0.5, ColorG: 0.5, ColorB: 0.5, ColorA: 0.5},
	}
	dst := make([]ebiten.Vertex, 2)
	// Rotate 90 degrees and translate by (100, 200).
	transformVertices(src, dst, [6]float64{0, 1, -1, 0, 100, 200}, Color{1, 0.5, 1, 0.5})

	if !approxEqual(float64(dst[0].DstX), 100, 1e-4) || !approxEqual(float64(dst[0].DstY), 201, 1e-4) {
		t.Errorf("dst[0] = (%v, %v), want (100, 201)", dst[0].DstX, dst[0].DstY)
	}
	if !approxEqual(float64(dst[1].DstX), 98, 1e-4) || !approxEqual(float64(dst[1].DstY), 200, 1e-4) {
		t.Errorf("dst[1] = (%v, %v), want (98, 200)", dst[1].DstX, dst[1].DstY)
	}
	if dst[0].SrcX != 3 || dst[0].SrcY != 4 {
		t.Error("UVs must be preserved")
	}
	// Tint premultiplied: (0.5, 0.25, 0.5, 0.5).
	if dst[0].ColorR != 0.5 || dst[0].ColorG != 0.25 || dst[0].ColorA != 0.5 {
		t.Errorf("tinted = %+v", dst[0])
	}
	if dst[1].ColorA != 0.25 {
		t.Errorf("alpha should multiply once: %v", dst[1].ColorA)
	}
}

// --- AABB and buffers ---

func TestComputeMeshAABB(t *testing.T) {
	if computeMeshAABB(nil) != (Rect{}) {
		t.Error("empty AABB")
	}
	got := computeMeshAABB([]ebiten.Vertex{{DstX: -10, DstY: 5}, {DstX: 20, DstY: -5}, {DstX: 0, DstY: 0}})
	if got != (Rect{X: -10, Y: -5, Width: 30, Height: 10}) {
		t.Errorf("AABB = %+v", got)
	}
}

func TestEnsureTransformedVertsHighWater(t *testing.T) {
	n := NewMesh("m", nil, make([]ebiten.Vertex, 10), nil)
	if len(ensureTransformedVerts(n)) != 10 {
		t.Fatal("len should match the vertex count")
	}
	c := cap(n.transformedVerts)
	n.Vertices = n.Vertices[:5]
	if len(ensureTransformedVerts(n)) != 5 || cap(n.transformedVerts) != c {
		t.Error("buffer should shrink in length only")
	}
}

func TestMeshAABBCache(t *testing.T) {
	n := NewMesh("m", nil, []ebiten.Vertex{{DstX: 490, DstY: 490}, {DstX: 510, DstY: 510}}, []uint16{0, 1, 0})
	if !n.meshAABBDirty {
		t.Fatal("new mesh should have a dirty AABB")
	}
	n.worldTransform = identityTransform
	if !shouldCull(n, Rect{Width: 100, Height: 100}) {
		t.Error("offset mesh should be culled by distant bounds")
	}
	if shouldCull(n, Rect{X: 480, Y: 480, Width: 40, Height: 40}) {
		t.Error("overlapping bounds should keep the mesh")
	}

	n.Vertices[1].DstX = 900
	if n.localBounds().Width != 20 {
		t.Error("AABB should stay cached until invalidated")
	}
	n.InvalidateMeshAABB()
	if n.localBounds().Width != 410 {
		t.Errorf("invalidated width = %v, want 410", n.localBounds().Width)
	}
}

func TestEnsureWhitePixelSingleton(t *testing.T) {
	a := ensureWhitePixel()
	if a != ensureWhitePixel() || a.Bounds().Dx() != 1 {
		t.Error("white pixel should be a 1x1 singleton")
	}
}

func BenchmarkTransformVertices1000(b *testing.B) {
	src := make([]ebiten.Vertex, 1000)
	for i := range src {
		src[i] = ebiten.Vertex{DstX: float32(i), DstY: float32(i), ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1}
	}
	dst := make([]ebiten.Vertex, 1000)
	m := [6]float64{1.5, 0.2, -0.2, 1.5, 100, 50}
	b.ReportAllocs()
	for b.Loop() {
		transformVertices(src, dst, m, ColorWhite)
	}
}
