package uix

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"github.com/hajimehoshi/ebiten/v2"
)

// Screenshot queues a labeled capture of the frame being drawn. The file is
// written to ScreenshotDir at the end of Draw, as lossless WebP when
// ScreenshotWebP is set and PNG otherwise.
func (s *Scene) Screenshot(label string) {
	s.screenshotQueue = append(s.screenshotQueue, label)
}

func (s *Scene) flushScreenshots(screen *ebiten.Image) {
	if len(s.screenshotQueue) == 0 {
		return
	}
	defer func() { s.screenshotQueue = s.screenshotQueue[:0] }()

	if err := os.MkdirAll(s.ScreenshotDir, 0o755); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[uix] screenshot: mkdir %s: %v\n", s.ScreenshotDir, err)
		return
	}

	img := unpremultiply(screen)
	stamp := time.Now().Format("20060102_150405")
	ext := ".png"
	if s.ScreenshotWebP {
		ext = ".webp"
	}
	for _, label := range s.screenshotQueue {
		path := filepath.Join(s.ScreenshotDir, stamp+"_"+sanitizeLabel(label)+ext)
		if err := writeImageFile(path, img, s.ScreenshotWebP); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "[uix] screenshot: %v\n", err)
		}
	}
}

// unpremultiply reads screen back into a straight-alpha image.
func unpremultiply(screen *ebiten.Image) *image.NRGBA {
	b := screen.Bounds()
	w, h := b.Dx(), b.Dy()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	screen.ReadPixels(img.Pix)
	p := img.Pix
	for i := 0; i < len(p); i += 4 {
		a := int(p[i+3])
		if a > 0 && a < 255 {
			p[i] = uint8(min(int(p[i])*255/a, 255))
			p[i+1] = uint8(min(int(p[i+1])*255/a, 255))
			p[i+2] = uint8(min(int(p[i+2])*255/a, 255))
		}
	}
	return img
}

func writeImageFile(path string, img image.Image, webp bool) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := encodeImage(f, img, webp); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

func encodeImage(w io.Writer, img image.Image, webp bool) error {
	if webp {
		return nativewebp.Encode(w, img, nil)
	}
	return png.Encode(w, img)
}

// sanitizeLabel keeps letters, digits, '-' and '.' and replaces everything
// else with '_'. Empty labels become "unlabeled".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
