package uix

import (
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

const uiAtlasJSON = `{
  "frames": {
    "panel.png": {
      "frame": {"x": 0, "y": 0, "w": 48, "h": 48},
      "rotated": false,
      "trimmed": false,
      "spriteSourceSize": {"x": 0, "y": 0, "w": 48, "h": 48},
      "sourceSize": {"w": 48, "h": 48},
      "scale9Borders": {"x": 12, "y": 8, "w": 20, "h": 24}
    },
    "bar.png": {
      "frame": {"x": 48, "y": 0, "w": 60, "h": 12},
      "rotated": false,
      "trimmed": true,
      "spriteSourceSize": {"x": 2, "y": 2, "w": 60, "h": 12},
      "sourceSize": {"w": 64, "h": 16}
    },
    "icon.png": {
      "frame": {"x": 0, "y": 48, "w": 16, "h": 24},
      "rotated": true,
      "trimmed": false,
      "spriteSourceSize": {"x": 0, "y": 0, "w": 24, "h": 16},
      "sourceSize": {"w": 24, "h": 16}
    }
  },
  "meta": {"image": "ui.png", "size": {"w": 128, "h": 128}}
}`

const uiAtlasPagesJSON = `{
  "textures": [
    {
      "image": "ui-0.png",
      "frames": {
        "frame.png": {
          "frame": {"x": 0, "y": 0, "w": 32, "h": 32},
          "spriteSourceSize": {"x": 0, "y": 0, "w": 32, "h": 32},
          "sourceSize": {"w": 32, "h": 32},
          "scale9Borders": {"x": 10, "y": 10, "w": 12, "h": 12}
        }
      }
    },
    {
      "image": "ui-1.png",
      "frames": {
        "knob.png": {
          "frame": {"x": 8, "y": 16, "w": 20, "h": 20},
          "spriteSourceSize": {"x": 0, "y": 0, "w": 20, "h": 20},
          "sourceSize": {"w": 20, "h": 20}
        }
      }
    }
  ]
}`

func loadUIAtlas(t *testing.T) *Atlas {
	t.Helper()
	a, err := LoadAtlas([]byte(uiAtlasJSON), []*ebiten.Image{ebiten.NewImage(128, 128)})
	if err != nil {
		t.Fatalf("LoadAtlas: %v", err)
	}
	return a
}

func TestLoadAtlasHash(t *testing.T) {
	a := loadUIAtlas(t)
	for _, name := range []string{"panel.png", "bar.png", "icon.png"} {
		if !a.Has(name) {
			t.Errorf("missing region %q", name)
		}
	}

	bar := a.Region("bar.png")
	if bar.X != 48 || bar.Width != 60 || bar.OriginalW != 64 || bar.OffsetX != 2 {
		t.Errorf("bar region = %+v", bar)
	}
	if !a.Region("icon.png").Rotated {
		t.Error("icon should be rotated")
	}
}

func TestLoadAtlasScale9Borders(t *testing.T) {
	a := loadUIAtlas(t)
	sp := a.Sprite("panel.png")
	want := Border{Left: 12, Top: 8, Right: 16, Bottom: 16}
	if sp.Border != want {
		t.Errorf("panel border = %+v, want %+v", sp.Border, want)
	}
	if a.Sprite("bar.png").HasBorder() {
		t.Error("bar has no scale9 data")
	}

	a.SetBorder("bar.png", Border{Left: 4, Right: 4})
	if b := a.Sprite("bar.png").Border; b.Left != 4 || b.Right != 4 {
		t.Errorf("SetBorder not applied: %+v", b)
	}
}

func TestScale9ToBorderClampsOverflow(t *testing.T) {
	b := scale9ToBorder(jsonRect{X: 5, Y: 5, W: 40, H: 40}, jsonSize{W: 30, H: 30})
	if b.Right != 0 || b.Bottom != 0 {
		t.Errorf("overflowing center: %+v, want zero right and bottom", b)
	}
}

func TestAtlasSpritePage(t *testing.T) {
	a := loadUIAtlas(t)
	sp := a.Sprite("panel.png")
	if sp.Page != a.Pages[0] || sp.Name != "panel.png" {
		t.Error("sprite should reference its page")
	}
	uv := sp.OuterUV()
	assertNear(t, "UMax", uv.UMax, 48.0/128)
	assertNear(t, "VMin", uv.VMin, 1-48.0/128)
}

func TestAtlasMissingSprite(t *testing.T) {
	a := loadUIAtlas(t)
	if r := a.Region("nope.png"); r.Page != magentaPlaceholderPage || r.Width != 1 {
		t.Errorf("missing region = %+v, want magenta placeholder", r)
	}
	sp := a.Sprite("nope.png")
	if sp.Page != ensureMagentaImage() || sp.HasBorder() {
		t.Error("missing sprite should be the unsliced magenta placeholder")
	}
}

func TestLoadAtlasArray(t *testing.T) {
	a, err := LoadAtlas([]byte(uiAtlasPagesJSON), []*ebiten.Image{ebiten.NewImage(64, 64), ebiten.NewImage(64, 64)})
	if err != nil {
		t.Fatal(err)
	}
	if a.Region("frame.png").Page != 0 || a.Region("knob.png").Page != 1 {
		t.Error("regions should keep their texture index as page")
	}
	if sp := a.Sprite("knob.png"); sp.Page != a.Pages[1] {
		t.Error("knob should sample the second page")
	}
	if b := a.Sprite("frame.png").Border; b != (Border{10, 10, 10, 10}) {
		t.Errorf("frame border = %+v", b)
	}
}

func TestLoadAtlasErrors(t *testing.T) {
	if _, err := LoadAtlas([]byte(`{oops`), nil); err == nil {
		t.Error("invalid JSON should fail")
	}
	_, err := LoadAtlas([]byte(`{"meta":{}}`), nil)
	if err == nil || !strings.Contains(err.Error(), "neither") {
		t.Errorf("err = %v, want a missing-key error", err)
	}
}

func TestSceneLoadAtlasOffsetsPages(t *testing.T) {
	s := NewScene()
	p0 := ebiten.NewImage(128, 128)
	first, err := s.LoadAtlas([]byte(uiAtlasJSON), []*ebiten.Image{p0})
	if err != nil {
		t.Fatal(err)
	}
	p1 := ebiten.NewImage(128, 128)
	second, err := s.LoadAtlas([]byte(uiAtlasJSON), []*ebiten.Image{p1})
	if err != nil {
		t.Fatal(err)
	}

	if first.Region("panel.png").Page != 0 || second.Region("panel.png").Page != 1 {
		t.Error("second atlas should register after the first")
	}
	if s.pages[0] != p0 || s.pages[1] != p1 {
		t.Error("pages not registered in order")
	}
	if second.Sprite("panel.png").Page != p1 {
		t.Error("sprite page lookup should subtract the page base")
	}
}

func BenchmarkLoadAtlas(b *testing.B) {
	data := []byte(uiAtlasJSON)
	pages := []*ebiten.Image{ebiten.NewImage(128, 128)}
	b.ReportAllocs()
	for b.Loop() {
		_, _ = LoadAtlas(data, pages)
	}
}
