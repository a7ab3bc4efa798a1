package uix

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Sprite is a texture region together with the data an Image needs to
// slice it: its page, nine-slice border and pixel density.
type Sprite struct {
	Name   string
	Region TextureRegion
	Page   *ebiten.Image

	// Border is the nine-slice border in source pixels. Zero means the
	// sprite cannot be sliced.
	Border Border

	// PixelsPerUnit converts source pixels to layout units. Defaults to 1.
	PixelsPerUnit float64

	pageW, pageH float64
}

// NewSpriteFromRegion wraps an atlas region. page may be nil for sprites
// built before their page image is available; UVs then fall back to the
// region's own size.
func NewSpriteFromRegion(name string, region TextureRegion, page *ebiten.Image) *Sprite {
	s := &Sprite{Name: name, Region: region, Page: page, PixelsPerUnit: 1}
	s.SetPageSize(0, 0)
	if page != nil {
		b := page.Bounds()
		s.SetPageSize(float64(b.Dx()), float64(b.Dy()))
	}
	return s
}

// NewSpriteFromImage wraps a whole image as an untrimmed sprite.
func NewSpriteFromImage(name string, img *ebiten.Image) *Sprite {
	b := img.Bounds()
	w, h := uint16(b.Dx()), uint16(b.Dy())
	return NewSpriteFromRegion(name, TextureRegion{
		Width: w, Height: h, OriginalW: w, OriginalH: h,
	}, img)
}

// SetPageSize overrides the page dimensions used for UVs. Non-positive
// values fall back to the region's packed size.
func (s *Sprite) SetPageSize(w, h float64) {
	if w <= 0 {
		w = float64(s.Region.X) + float64(s.Region.Width)
	}
	if h <= 0 {
		h = float64(s.Region.Y) + float64(s.Region.Height)
	}
	s.pageW, s.pageH = math.Max(w, 1), math.Max(h, 1)
}

// Size returns the untrimmed sprite size in source pixels.
func (s *Sprite) Size() (w, h float64) {
	return float64(s.Region.OriginalW), float64(s.Region.OriginalH)
}

// HasBorder reports whether any border side is set.
func (s *Sprite) HasBorder() bool {
	return s != nil && !s.Border.IsZero()
}

// Padding returns the transparent trim around the packed pixels, in source
// pixels. Bottom and Top follow the generator's Y-up convention.
func (s *Sprite) Padding() Border {
	r := &s.Region
	left := float64(r.OffsetX)
	top := float64(r.OffsetY)
	return Border{
		Left:   left,
		Top:    top,
		Right:  math.Max(float64(r.OriginalW)-float64(r.Width)-left, 0),
		Bottom: math.Max(float64(r.OriginalH)-float64(r.Height)-top, 0),
	}
}

// OuterUV returns the packed rect as normalized page coordinates, V up.
func (s *Sprite) OuterUV() UVRect {
	r := &s.Region
	x, y := float64(r.X), float64(r.Y)
	w, h := float64(r.Width), float64(r.Height)
	return UVRect{
		UMin: x / s.pageW,
		VMin: 1 - (y+h)/s.pageH,
		UMax: (x + w) / s.pageW,
		VMax: 1 - y/s.pageH,
	}
}

// InnerUV returns OuterUV inset by the border. Border pixels that fall in
// the trimmed padding do not move the inner edge.
func (s *Sprite) InnerUV() UVRect {
	uv := s.OuterUV()
	pad := s.Padding()
	uv.UMin += math.Max(s.Border.Left-pad.Left, 0) / s.pageW
	uv.UMax -= math.Max(s.Border.Right-pad.Right, 0) / s.pageW
	uv.VMin += math.Max(s.Border.Bottom-pad.Bottom, 0) / s.pageH
	uv.VMax -= math.Max(s.Border.Top-pad.Top, 0) / s.pageH
	return uv
}

// pageInfo returns the mapping used to turn generator UVs into pixels.
func (s *Sprite) pageInfo() meshPage {
	return meshPage{width: s.pageW, height: s.pageH}
}
