package uix

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// maxBatchVerts keeps coalesced indices addressable as uint16.
const maxBatchVerts = math.MaxUint16 + 1

// batchKey groups mesh commands that can share one DrawTriangles call.
type batchKey struct {
	image *ebiten.Image
	blend BlendMode
}

func commandBatchKey(cmd *RenderCommand) batchKey {
	return batchKey{image: cmd.meshImage, blend: cmd.BlendMode}
}

// submitBatches draws the sorted commands. Consecutive mesh commands with
// the same source image and blend mode are coalesced into one draw call,
// which is the common case for UI drawn from a single atlas page.
func (s *Scene) submitBatches(target *ebiten.Image) {
	s.batchVerts = s.batchVerts[:0]
	s.batchInds = s.batchInds[:0]

	var op ebiten.DrawImageOptions
	var key batchKey
	for i := range s.commands {
		cmd := &s.commands[i]
		switch cmd.Type {
		case CommandSprite:
			s.flushMeshBatch(target, key)
			s.submitSprite(target, cmd, &op)
		case CommandMesh:
			if cmd.meshImage == nil || len(cmd.meshVerts) == 0 || len(cmd.meshInds) == 0 {
				continue
			}
			k := commandBatchKey(cmd)
			if k != key || len(s.batchVerts)+len(cmd.meshVerts) > maxBatchVerts {
				s.flushMeshBatch(target, key)
				key = k
			}
			s.appendMesh(cmd)
		}
	}
	s.flushMeshBatch(target, key)
}

// appendMesh copies a mesh command into the pending batch, rebasing its
// indices past the vertices already queued.
func (s *Scene) appendMesh(cmd *RenderCommand) {
	base := uint16(len(s.batchVerts))
	s.batchVerts = append(s.batchVerts, cmd.meshVerts...)
	for _, idx := range cmd.meshInds {
		s.batchInds = append(s.batchInds, base+idx)
	}
}

// flushMeshBatch submits the pending batch, if any.
func (s *Scene) flushMeshBatch(target *ebiten.Image, key batchKey) {
	if len(s.batchInds) == 0 || key.image == nil {
		s.batchVerts = s.batchVerts[:0]
		s.batchInds = s.batchInds[:0]
		return
	}
	var triOp ebiten.DrawTrianglesOptions
	triOp.Blend = key.blend.EbitenBlend()
	triOp.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	target.DrawTriangles(s.batchVerts, s.batchInds, key.image, &triOp)
	s.batchVerts = s.batchVerts[:0]
	s.batchInds = s.batchInds[:0]
}

// submitSprite draws a single atlas region with DrawImage.
func (s *Scene) submitSprite(target *ebiten.Image, cmd *RenderCommand, op *ebiten.DrawImageOptions) {
	r := &cmd.TextureRegion

	var page *ebiten.Image
	if r.Page == magentaPlaceholderPage {
		page = ensureMagentaImage()
	} else if int(r.Page) < len(s.pages) {
		page = s.pages[r.Page]
	}
	if page == nil {
		return
	}

	w, h := int(r.Width), int(r.Height)
	if r.Rotated {
		w, h = h, w
	}
	sub := page.SubImage(image.Rect(int(r.X), int(r.Y), int(r.X)+w, int(r.Y)+h)).(*ebiten.Image)

	op.GeoM.Reset()
	if r.Rotated {
		// Stored 90 degrees clockwise: rotate back and shift into place.
		op.GeoM.Rotate(-math.Pi / 2)
		op.GeoM.Translate(0, float64(r.Width))
	}
	if r.OffsetX != 0 || r.OffsetY != 0 {
		op.GeoM.Translate(float64(r.OffsetX), float64(r.OffsetY))
	}
	op.GeoM.Concat(commandGeoM(cmd))

	op.ColorScale.Reset()
	a := cmd.Color.A
	op.ColorScale.Scale(cmd.Color.R*a, cmd.Color.G*a, cmd.Color.B*a, a)
	op.Blend = cmd.BlendMode.EbitenBlend()

	target.DrawImage(sub, op)
}

// commandGeoM converts a command transform into an ebiten.GeoM.
func commandGeoM(cmd *RenderCommand) ebiten.GeoM {
	var m ebiten.GeoM
	t := &cmd.Transform
	m.SetElement(0, 0, float64(t[0]))
	m.SetElement(1, 0, float64(t[1]))
	m.SetElement(0, 1, float64(t[2]))
	m.SetElement(1, 1, float64(t[3]))
	m.SetElement(0, 2, float64(t[4]))
	m.SetElement(1, 2, float64(t[5]))
	return m
}

// countBatches reports how many draw calls submitBatches issues for the
// current command list.
func countBatches(commands []RenderCommand) int {
	count := 0
	var key batchKey
	verts := 0
	inRun := false
	for i := range commands {
		cmd := &commands[i]
		if cmd.Type != CommandMesh {
			count++
			inRun = false
			continue
		}
		if cmd.meshImage == nil || len(cmd.meshVerts) == 0 || len(cmd.meshInds) == 0 {
			continue
		}
		k := commandBatchKey(cmd)
		if !inRun || k != key || verts+len(cmd.meshVerts) > maxBatchVerts {
			count++
			key = k
			verts = 0
			inRun = true
		}
		verts += len(cmd.meshVerts)
	}
	return count
}
