package uix

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "github.com/ftrvxmtrx/tga"
	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// DecodeImage decodes a PNG, JPEG, TGA or WebP stream into straight-alpha
// NRGBA.
func DecodeImage(r io.Reader) (*image.NRGBA, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("uix: decode texture: %w", err)
	}
	if globalDebug {
		b := img.Bounds()
		_, _ = fmt.Fprintf(os.Stderr, "[uix] texture: decoded %s %dx%d\n", format, b.Dx(), b.Dy())
	}
	return toNRGBA(img), nil
}

// LoadTexture decodes r and uploads it as an ebiten image, ready to be
// registered as an atlas page or wrapped with NewSpriteFromImage.
func LoadTexture(r io.Reader) (*ebiten.Image, error) {
	img, err := DecodeImage(r)
	if err != nil {
		return nil, err
	}
	return ebiten.NewImageFromImage(img), nil
}

// toNRGBA returns src as NRGBA rebased to the origin, copying if needed.
func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Copy(dst, image.Point{}, src, b, draw.Src, nil)
	return dst
}
