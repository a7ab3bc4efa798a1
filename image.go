package uix

import (
	"fmt"
	"math"
	"os"
)

// ImageType selects how an Image lays its sprite out in its rect.
type ImageType uint8

const (
	ImageSimple ImageType = iota // one stretched quad
	ImageSliced                  // nine-slice, borders keep their size
	ImageFilled                  // partially revealed along one axis
)

// Image is the UI image attached to a NodeTypeImage node. Geometry is
// rebuilt lazily before the next draw whenever a setter changes an input;
// after writing fields directly call Invalidate.
//
// A Filled image whose sprite has a border is nine-sliced and then clipped,
// so the border caps stay undistorted while the fill advances. Without a
// border it falls back to clipping a single stretched quad.
type Image struct {
	Sprite *Sprite
	Type   ImageType

	FillMethod FillMethod
	FillOrigin FillOrigin
	FillAmount float64
	FillCenter bool

	// Width and Height are the rect size in layout units. The rect spans
	// (0, 0) to (Width, Height) in the node's local space.
	Width, Height float64

	// PixelsPerUnit multiplies the sprite's own density. Larger values
	// shrink borders on screen. Defaults to 1.
	PixelsPerUnit float64

	node     *Node
	mesh     MeshBuffer
	dirty    bool
	rebuilds int
}

// NewImage creates an image node showing sprite at its natural size.
// A nil sprite draws a flat quad in the node color.
func NewImage(name string, sprite *Sprite) *Node {
	n := &Node{Name: name, Type: NodeTypeImage, Interactable: true}
	nodeDefaults(n)
	img := &Image{
		Sprite:        sprite,
		Type:          ImageSimple,
		FillAmount:    1,
		FillCenter:    true,
		PixelsPerUnit: 1,
		node:          n,
		dirty:         true,
	}
	if sprite != nil {
		w, h := sprite.Size()
		ppu := img.pixelsPerUnit()
		img.Width, img.Height = w/ppu, h/ppu
	}
	n.Image = img
	return n
}

// NewEmptyImage creates an invisible raycast target of the given size. It
// blocks pointer input like any image but draws nothing until Renderable
// is set, when it draws a flat quad in the node color.
func NewEmptyImage(name string, width, height float64) *Node {
	n := NewImage(name, nil)
	n.Image.Width = width
	n.Image.Height = height
	n.Renderable = false
	return n
}

// SetFillAmount sets the revealed fraction, clamped to [0, 1].
func (img *Image) SetFillAmount(f float64) {
	f = clamp01(f)
	if f == img.FillAmount {
		return
	}
	img.FillAmount = f
	img.Invalidate()
}

// SetFill sets the fill axis and starting edge.
func (img *Image) SetFill(method FillMethod, origin FillOrigin) {
	if img.FillMethod == method && img.FillOrigin == origin {
		return
	}
	img.FillMethod = method
	img.FillOrigin = origin
	img.Invalidate()
}

// SetFillCenter toggles the middle nine-slice cell.
func (img *Image) SetFillCenter(on bool) {
	if img.FillCenter == on {
		return
	}
	img.FillCenter = on
	img.Invalidate()
}

// SetType switches between simple, sliced and filled layout.
func (img *Image) SetType(t ImageType) {
	if img.Type == t {
		return
	}
	img.Type = t
	img.Invalidate()
}

// SetSize sets the rect size in layout units.
func (img *Image) SetSize(w, h float64) {
	if img.Width == w && img.Height == h {
		return
	}
	img.Width = w
	img.Height = h
	img.Invalidate()
}

// SetSprite swaps the sprite. The rect size is kept.
func (img *Image) SetSprite(s *Sprite) {
	if img.Sprite == s {
		return
	}
	img.Sprite = s
	img.Invalidate()
}

// Invalidate schedules a geometry rebuild before the next draw.
func (img *Image) Invalidate() {
	img.dirty = true
	if img.node != nil {
		img.node.meshAABBDirty = true
	}
}

// Rebuild regenerates the geometry now if anything changed.
func (img *Image) Rebuild() {
	if img.dirty {
		img.rebuild()
	}
}

// Mesh returns the last generated geometry in generator space (Y up).
func (img *Image) Mesh() *MeshBuffer {
	img.Rebuild()
	return &img.mesh
}

func (img *Image) pixelsPerUnit() float64 {
	ppu := img.PixelsPerUnit
	if img.Sprite != nil && img.Sprite.PixelsPerUnit > 0 {
		ppu *= img.Sprite.PixelsPerUnit
	}
	if !(ppu > 0) {
		return 1
	}
	return ppu
}

// params builds the generator input for the current state.
func (img *Image) params() SlicedFillParams {
	p := SlicedFillParams{
		Rect:       Rect{Width: math.Max(img.Width, 0), Height: math.Max(img.Height, 0)},
		FillMethod: img.FillMethod,
		FillOrigin: img.FillOrigin,
		FillAmount: img.FillAmount,
		FillCenter: img.FillCenter,
		Color:      ColorWhite,
		OuterUV:    UVRect{UMax: 1, VMax: 1},
		InnerUV:    UVRect{UMax: 1, VMax: 1},
	}
	s := img.Sprite
	if s == nil {
		return p
	}
	p.OuterUV = s.OuterUV()
	p.InnerUV = s.InnerUV()
	if img.sliced() {
		inv := 1 / img.pixelsPerUnit()
		p.Border = s.Border.Scale(inv)
		p.Padding = s.Padding().Scale(inv)
		return p
	}
	// Unsliced layouts stretch the sprite, so the trim stretches with it.
	pad := s.Padding()
	if w, h := s.Size(); w > 0 && h > 0 {
		sx, sy := p.Rect.Width/w, p.Rect.Height/h
		p.Padding = Border{pad.Left * sx, pad.Bottom * sy, pad.Right * sx, pad.Top * sy}
	}
	return p
}

// sliced reports whether the nine-slice path applies.
func (img *Image) sliced() bool {
	return img.Sprite.HasBorder() && (img.Type == ImageSliced || img.Type == ImageFilled)
}

func (img *Image) rebuild() {
	p := img.params()
	switch {
	case img.Type == ImageFilled && img.sliced():
		GenerateSlicedFill(p, &img.mesh)
	case img.Type == ImageFilled:
		GenerateFilled(p, &img.mesh)
	case img.sliced():
		GenerateSliced(p, &img.mesh)
	default:
		GenerateSimple(p, &img.mesh)
	}
	img.dirty = false
	img.rebuilds++

	n := img.node
	if n == nil {
		return
	}
	page := meshPage{solid: true}
	n.MeshImage = ensureWhitePixel()
	if s := img.Sprite; s != nil && s.Page != nil {
		if s.Region.Rotated && globalDebug {
			_, _ = fmt.Fprintf(os.Stderr, "[uix] warning: image %q uses rotated region %q; rotation is ignored\n",
				n.Name, s.Name)
		}
		page = s.pageInfo()
		n.MeshImage = s.Page
	}
	n.Vertices = appendEbitenVertices(n.Vertices[:0], &img.mesh, p.Rect.Height, page)
	n.Indices = append(n.Indices[:0], img.mesh.Indices...)
	n.meshAABBDirty = true
}
