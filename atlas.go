package uix

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/segmentio/encoding/json"
)

// TextureRegion describes a sub-rectangle within an atlas page.
type TextureRegion struct {
	Page      uint16 // atlas page index (references Scene.pages)
	X, Y      uint16 // top-left corner of the packed rect on the page
	Width     uint16 // packed width (may be smaller than OriginalW if trimmed)
	Height    uint16 // packed height (may be smaller than OriginalH if trimmed)
	OriginalW uint16 // untrimmed width as authored
	OriginalH uint16 // untrimmed height as authored
	OffsetX   int16  // trim offset from the left edge
	OffsetY   int16  // trim offset from the top edge
	Rotated   bool   // stored 90 degrees clockwise on the page
}

// Atlas holds atlas page images, named regions and their nine-slice borders.
type Atlas struct {
	Pages    []*ebiten.Image
	regions  map[string]TextureRegion
	borders  map[string]Border
	pageBase uint16 // scene page index of Pages[0]
}

// Region returns the named region. A miss logs in debug mode and returns a
// 1x1 magenta placeholder.
func (a *Atlas) Region(name string) TextureRegion {
	if r, ok := a.regions[name]; ok {
		return r
	}
	if globalDebug {
		log.Printf("uix: atlas region %q not found, using magenta placeholder", name)
	}
	return magentaRegion()
}

// Sprite returns the named region as a Sprite, carrying its nine-slice
// border and page. A miss returns a magenta placeholder sprite.
func (a *Atlas) Sprite(name string) *Sprite {
	r, ok := a.regions[name]
	if !ok {
		if globalDebug {
			log.Printf("uix: atlas sprite %q not found, using magenta placeholder", name)
		}
		return NewSpriteFromImage(name, ensureMagentaImage())
	}
	var page *ebiten.Image
	if i := int(r.Page) - int(a.pageBase); i >= 0 && i < len(a.Pages) {
		page = a.Pages[i]
	}
	sp := NewSpriteFromRegion(name, r, page)
	sp.Border = a.borders[name]
	return sp
}

// SetBorder overrides the nine-slice border of the named region, in pixels.
func (a *Atlas) SetBorder(name string, b Border) {
	a.borders[name] = b
}

// Has reports whether the atlas contains the named region.
func (a *Atlas) Has(name string) bool {
	_, ok := a.regions[name]
	return ok
}

var magentaImage *ebiten.Image

func ensureMagentaImage() *ebiten.Image {
	if magentaImage == nil {
		magentaImage = ebiten.NewImage(1, 1)
		magentaImage.Fill(color.RGBA{R: 255, G: 0, B: 255, A: 255})
	}
	return magentaImage
}

// magentaPlaceholderPage never collides with a real page index.
const magentaPlaceholderPage = 0xFFFF

func magentaRegion() TextureRegion {
	return TextureRegion{
		Page:      magentaPlaceholderPage,
		Width:     1,
		Height:    1,
		OriginalW: 1,
		OriginalH: 1,
	}
}

// LoadAtlas parses TexturePacker JSON and associates the page images.
// Both the hash format ("frames" object) and the multi-page array format
// ("textures" list) are accepted. Frames exported with scale9 enabled carry
// a "scale9Borders" rect that becomes the sprite border.
func LoadAtlas(jsonData []byte, pages []*ebiten.Image) (*Atlas, error) {
	var probe struct {
		Frames   json.RawMessage `json:"frames"`
		Textures json.RawMessage `json:"textures"`
	}
	if err := json.Unmarshal(jsonData, &probe); err != nil {
		return nil, fmt.Errorf("uix: failed to parse atlas JSON: %w", err)
	}

	atlas := &Atlas{
		Pages:   pages,
		regions: make(map[string]TextureRegion),
		borders: make(map[string]Border),
	}

	switch {
	case probe.Textures != nil:
		var textures []jsonTexturePage
		if err := json.Unmarshal(probe.Textures, &textures); err != nil {
			return nil, fmt.Errorf("uix: failed to parse atlas textures array: %w", err)
		}
		for i, tex := range textures {
			atlas.addFrames(tex.Frames, uint16(i))
		}
	case probe.Frames != nil:
		var frames map[string]jsonFrame
		if err := json.Unmarshal(probe.Frames, &frames); err != nil {
			return nil, fmt.Errorf("uix: failed to parse atlas frames: %w", err)
		}
		atlas.addFrames(frames, 0)
	default:
		return nil, fmt.Errorf("uix: atlas JSON has neither \"frames\" nor \"textures\" key")
	}
	return atlas, nil
}

type jsonRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type jsonSize struct {
	W int `json:"w"`
	H int `json:"h"`
}

type jsonFrame struct {
	Frame            jsonRect  `json:"frame"`
	Rotated          bool      `json:"rotated"`
	Trimmed          bool      `json:"trimmed"`
	SpriteSourceSize jsonRect  `json:"spriteSourceSize"`
	SourceSize       jsonSize  `json:"sourceSize"`
	Scale9Borders    *jsonRect `json:"scale9Borders,omitempty"`
}

type jsonTexturePage struct {
	Image  string               `json:"image"`
	Frames map[string]jsonFrame `json:"frames"`
}

func (a *Atlas) addFrames(frames map[string]jsonFrame, page uint16) {
	for name, f := range frames {
		a.regions[name] = frameToRegion(f, page)
		if f.Scale9Borders != nil {
			a.borders[name] = scale9ToBorder(*f.Scale9Borders, f.SourceSize)
		}
	}
}

func frameToRegion(f jsonFrame, page uint16) TextureRegion {
	return TextureRegion{
		Page:      page,
		X:         uint16(f.Frame.X),
		Y:         uint16(f.Frame.Y),
		Width:     uint16(f.Frame.W),
		Height:    uint16(f.Frame.H),
		OriginalW: uint16(f.SourceSize.W),
		OriginalH: uint16(f.SourceSize.H),
		OffsetX:   int16(f.SpriteSourceSize.X),
		OffsetY:   int16(f.SpriteSourceSize.Y),
		Rotated:   f.Rotated,
	}
}

// scale9ToBorder converts a scale9 center rect (top-left origin, in source
// pixels) into edge widths.
func scale9ToBorder(r jsonRect, src jsonSize) Border {
	return Border{
		Left:   float64(r.X),
		Top:    float64(r.Y),
		Right:  float64(max(src.W-r.X-r.W, 0)),
		Bottom: float64(max(src.H-r.Y-r.H, 0)),
	}
}
