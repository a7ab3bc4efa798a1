package uix

import (
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/draw"
)

// NinePatch is a decoded .9.png: the content pixels without the 1px marker
// frame, the stretch border and the content inset.
//
// Markers on the top and left edges delimit the stretchable middle; the
// pixels before and after become the border. Markers on the bottom and right
// edges delimit the content area. Any non-transparent pixel is a marker.
type NinePatch struct {
	Image   *image.NRGBA
	Border  Border
	Content Border
}

// ErrNinePatchTooSmall is returned for images without room for content
// inside the marker frame.
var ErrNinePatchTooSmall = errors.New("uix: nine-patch smaller than 3x3")

// DecodeNinePatch extracts the border and content inset from src.
func DecodeNinePatch(src image.Image) (NinePatch, error) {
	b := src.Bounds()
	if b.Dx() < 3 || b.Dy() < 3 {
		return NinePatch{}, ErrNinePatchTooSmall
	}
	// Marker runs are measured inside the frame, so content width is
	// Dx-2 and run positions are offset by one.
	w, h := b.Dx()-2, b.Dy()-2

	var np NinePatch
	if run, ok := markerRun(src, b.Min.Y, true); ok {
		np.Border.Left = float64(run.start)
		np.Border.Right = float64(w - run.end)
	}
	if run, ok := markerRun(src, b.Min.X, false); ok {
		np.Border.Top = float64(run.start)
		np.Border.Bottom = float64(h - run.end)
	}
	if run, ok := markerRun(src, b.Max.Y-1, true); ok {
		np.Content.Left = float64(run.start)
		np.Content.Right = float64(w - run.end)
	}
	if run, ok := markerRun(src, b.Max.X-1, false); ok {
		np.Content.Top = float64(run.start)
		np.Content.Bottom = float64(h - run.end)
	}

	np.Image = image.NewNRGBA(image.Rect(0, 0, w, h))
	inner := image.Rect(b.Min.X+1, b.Min.Y+1, b.Max.X-1, b.Max.Y-1)
	draw.Copy(np.Image, image.Point{}, src, inner, draw.Src, nil)
	return np, nil
}

// LoadNinePatch decodes a .9.png stream into a sliceable sprite.
func LoadNinePatch(name string, r io.Reader) (*Sprite, error) {
	img, err := DecodeImage(r)
	if err != nil {
		return nil, err
	}
	np, err := DecodeNinePatch(img)
	if err != nil {
		return nil, fmt.Errorf("uix: nine-patch %q: %w", name, err)
	}
	return np.Sprite(name), nil
}

// Sprite uploads the content pixels and returns a sprite carrying Border.
func (np NinePatch) Sprite(name string) *Sprite {
	s := NewSpriteFromImage(name, ebiten.NewImageFromImage(np.Image))
	s.Border = np.Border
	return s
}

// markerSpan is a half-open run of marker pixels in content coordinates.
type markerSpan struct {
	start, end int
}

// markerRun scans one edge of the frame, skipping the corner pixels. A
// horizontal scan walks row offset; a vertical scan walks column offset.
// Only the first run counts.
func markerRun(src image.Image, offset int, horizontal bool) (markerSpan, bool) {
	b := src.Bounds()
	lo, hi := b.Min.Y+1, b.Max.Y-1
	if horizontal {
		lo, hi = b.Min.X+1, b.Max.X-1
	}
	span := markerSpan{start: -1, end: -1}
	for i := lo; i < hi; i++ {
		x, y := offset, i
		if horizontal {
			x, y = i, offset
		}
		_, _, _, a := src.At(x, y).RGBA()
		marked := a > 0
		if marked && span.start < 0 {
			span.start = i - lo
		}
		if !marked && span.start >= 0 {
			span.end = i - lo
			break
		}
	}
	if span.start < 0 {
		return span, false
	}
	if span.end < 0 {
		span.end = hi - lo
	}
	return span, true
}
