package uix

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// borderedSprite returns a 30x30 sprite with a 10px border on a 64x64 page.
func borderedSprite() *Sprite {
	s := NewSpriteFromRegion("frame", TextureRegion{
		Width: 30, Height: 30, OriginalW: 30, OriginalH: 30,
	}, ebiten.NewImage(64, 64))
	s.Border = Border{10, 10, 10, 10}
	return s
}

func TestNewImageDefaults(t *testing.T) {
	n := NewImage("img", borderedSprite())
	img := n.Image
	if img == nil || img.node != n {
		t.Fatal("image not attached")
	}
	if img.Width != 30 || img.Height != 30 {
		t.Errorf("size = %vx%v, want natural 30x30", img.Width, img.Height)
	}
	if img.FillAmount != 1 || !img.FillCenter || img.Type != ImageSimple {
		t.Errorf("defaults: fill %v center %v type %d", img.FillAmount, img.FillCenter, img.Type)
	}
	if !n.Interactable {
		t.Error("images are raycast targets by default")
	}
}

func TestNewImagePixelsPerUnit(t *testing.T) {
	s := borderedSprite()
	s.PixelsPerUnit = 2
	n := NewImage("img", s)
	if n.Image.Width != 15 || n.Image.Height != 15 {
		t.Errorf("size = %vx%v, want 15x15", n.Image.Width, n.Image.Height)
	}
}

func TestImageSimpleQuad(t *testing.T) {
	n := NewImage("img", borderedSprite())
	n.Image.SetSize(100, 50)
	n.Image.Rebuild()

	if len(n.Vertices) != 4 || len(n.Indices) != 6 {
		t.Fatalf("simple: %d verts, %d inds", len(n.Vertices), len(n.Indices))
	}
	// The top-left corner in scene space samples the region's top-left.
	for _, v := range n.Vertices {
		if v.DstX == 0 && v.DstY == 0 {
			if v.SrcX != 0 || v.SrcY != 0 {
				t.Errorf("top-left src = (%v, %v), want (0, 0)", v.SrcX, v.SrcY)
			}
		}
		if v.DstX == 100 && v.DstY == 50 {
			if v.SrcX != 30 || v.SrcY != 30 {
				t.Errorf("bottom-right src = (%v, %v), want (30, 30)", v.SrcX, v.SrcY)
			}
		}
	}
	if n.MeshImage != n.Image.Sprite.Page {
		t.Error("MeshImage should be the sprite page")
	}
}

func TestImageSlicedKeepsBorders(t *testing.T) {
	n := NewImage("img", borderedSprite())
	img := n.Image
	img.SetType(ImageSliced)
	img.SetSize(100, 40)

	m := img.Mesh()
	if m.VertCount() != 36 {
		t.Fatalf("sliced: %d verts, want 36", m.VertCount())
	}
	xs := map[float64]bool{}
	for _, v := range m.Vertices {
		xs[v.Position.X] = true
	}
	for _, x := range []float64{0, 10, 90, 100} {
		if !xs[x] {
			t.Errorf("missing cut line x=%v", x)
		}
	}
}

func TestImageFilledSlicedPath(t *testing.T) {
	n := NewImage("img", borderedSprite())
	img := n.Image
	img.SetType(ImageFilled)
	img.SetSize(100, 100)
	img.SetFillAmount(0.5)

	m := img.Mesh()
	if m.VertCount() != 24 {
		t.Errorf("sliced fill at 0.5: %d verts, want 24", m.VertCount())
	}
	if !approxEqual(m.Area(), 5000, 1e-6) {
		t.Errorf("area = %v, want 5000", m.Area())
	}
}

func TestImageFilledWithoutBorder(t *testing.T) {
	s := borderedSprite()
	s.Border = Border{}
	n := NewImage("img", s)
	img := n.Image
	img.SetType(ImageFilled)
	img.SetSize(100, 100)
	img.SetFillAmount(0.5)

	if m := img.Mesh(); m.VertCount() != 4 {
		t.Errorf("unsliced fill: %d verts, want 4", m.VertCount())
	}
}

func TestImageVerticalFillFlipsToSceneSpace(t *testing.T) {
	n := NewImage("img", borderedSprite())
	img := n.Image
	img.SetType(ImageFilled)
	img.SetFill(FillVertical, FillOriginBottom)
	img.SetSize(100, 100)
	img.SetFillAmount(0.5)
	img.Rebuild()

	// Bottom fill in scene space (y down) covers y in [50, 100].
	for _, v := range n.Vertices {
		if v.DstY < 50-1e-4 {
			t.Fatalf("vertex at y=%v above the fill line", v.DstY)
		}
	}
}

func TestImageRebuildsOnlyOnChange(t *testing.T) {
	n := NewImage("img", borderedSprite())
	img := n.Image
	img.Rebuild()
	img.rebuilds = 0

	img.Rebuild()
	img.SetFillAmount(1)
	img.SetSize(30, 30)
	img.SetFillCenter(true)
	img.SetType(ImageSimple)
	img.Rebuild()
	if img.rebuilds != 0 {
		t.Errorf("unchanged setters caused %d rebuilds", img.rebuilds)
	}

	img.SetFillAmount(0.25)
	img.SetSize(60, 30)
	img.Rebuild()
	img.Rebuild()
	if img.rebuilds != 1 {
		t.Errorf("rebuilds = %d, want 1 (lazy, coalesced)", img.rebuilds)
	}

	img.SetSprite(borderedSprite())
	img.Rebuild()
	if img.rebuilds != 2 {
		t.Errorf("SetSprite should trigger a rebuild, got %d", img.rebuilds)
	}
}

func TestImageFillAmountClamped(t *testing.T) {
	img := NewImage("img", nil).Image
	img.SetFillAmount(3)
	if img.FillAmount != 1 {
		t.Errorf("FillAmount = %v, want 1", img.FillAmount)
	}
	img.SetFillAmount(-1)
	if img.FillAmount != 0 {
		t.Errorf("FillAmount = %v, want 0", img.FillAmount)
	}
}

func TestImageZeroFillEmitsNothing(t *testing.T) {
	s := NewScene()
	n := NewImage("img", borderedSprite())
	n.Image.SetType(ImageFilled)
	n.Image.SetFillAmount(0)
	s.Root().AddChild(n)

	updateWorldTransform(s.root, identityTransform, 1, false)
	s.commands = s.commands[:0]
	order := 0
	s.traverse(s.root, identityTransform, &order)
	if len(s.commands) != 0 {
		t.Errorf("zero fill emitted %d commands", len(s.commands))
	}
}

func TestImageColorDoesNotRebuild(t *testing.T) {
	s := NewScene()
	n := NewImage("img", borderedSprite())
	s.Root().AddChild(n)
	updateWorldTransform(s.root, identityTransform, 1, false)
	order := 0
	s.traverse(s.root, identityTransform, &order)
	n.Image.rebuilds = 0

	n.Color = Color{1, 0, 0, 0.5}
	s.commands = s.commands[:0]
	s.traverse(s.root, identityTransform, &order)
	if n.Image.rebuilds != 0 {
		t.Error("color change should not rebuild geometry")
	}
	v := s.commands[0].meshVerts[0]
	if v.ColorR != 0.5 || v.ColorG != 0 || v.ColorA != 0.5 {
		t.Errorf("tinted vertex = %+v, want premultiplied red at half alpha", v)
	}
}

func TestEmptyImage(t *testing.T) {
	s := NewScene()
	n := NewEmptyImage("hit", 40, 40)
	s.Root().AddChild(n)
	updateWorldTransform(s.root, identityTransform, 1, false)

	order := 0
	s.traverse(s.root, identityTransform, &order)
	if len(s.commands) != 0 {
		t.Fatalf("hidden empty image emitted %d commands", len(s.commands))
	}
	if got := s.hitTest(20, 20); got != n {
		t.Errorf("hitTest = %v, want the empty image", got)
	}

	n.Renderable = true
	s.traverse(s.root, identityTransform, &order)
	if len(s.commands) != 1 {
		t.Fatalf("visible empty image: %d commands, want 1", len(s.commands))
	}
	if s.commands[0].meshImage != ensureWhitePixel() {
		t.Error("empty image should draw with the white pixel")
	}
}

func TestImageTrimPaddingUnsliced(t *testing.T) {
	// 20x20 packed into a 40x40 original, offset (10, 5).
	s := NewSpriteFromRegion("trim", TextureRegion{
		OffsetX: 10, OffsetY: 5, Width: 20, Height: 20, OriginalW: 40, OriginalH: 40,
	}, nil)
	n := NewImage("img", s)
	n.Image.SetSize(80, 80)

	b := n.Image.Mesh().Bounds()
	// Padding scales by 2: left 20, right 20, top 10, bottom 30 (Y up).
	want := Rect{X: 20, Y: 30, Width: 40, Height: 40}
	if b != want {
		t.Errorf("bounds = %+v, want %+v", b, want)
	}
}
