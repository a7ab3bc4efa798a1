package uix

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// CommandType identifies the kind of render command.
type CommandType uint8

const (
	CommandSprite CommandType = iota // DrawImage of an atlas region
	CommandMesh                      // DrawTriangles (meshes and images)
)

// color32 is a compact straight-alpha color for render commands.
type color32 struct {
	R, G, B, A float32
}

// RenderCommand is a single draw instruction emitted during traversal.
type RenderCommand struct {
	Type          CommandType
	Transform     [6]float32
	TextureRegion TextureRegion
	Color         color32
	BlendMode     BlendMode
	RenderLayer   uint8
	GlobalOrder   int
	treeOrder     int // assigned during traversal for a stable sort

	// Mesh-only fields (slice headers, not copies of vertex data).
	meshVerts []ebiten.Vertex
	meshInds  []uint16
	meshImage *ebiten.Image
}

func affine32(m [6]float64) [6]float32 {
	return [6]float32{float32(m[0]), float32(m[1]), float32(m[2]), float32(m[3]), float32(m[4]), float32(m[5])}
}

// traverse walks the tree depth-first in ZIndex order and emits commands
// for visible, renderable nodes. World transforms must be current; view is
// the camera matrix prepended to each node's world transform.
func (s *Scene) traverse(n *Node, view [6]float64, treeOrder *int) {
	if !n.Visible {
		return
	}

	// Culling suppresses this node's command only; children may extend past
	// the parent's bounds and are always visited.
	culled := s.cullActive && n.Renderable && shouldCull(n, s.cullBounds)

	if n.Renderable && !culled {
		switch n.Type {
		case NodeTypeSprite:
			*treeOrder++
			s.commands = append(s.commands, RenderCommand{
				Type:          CommandSprite,
				Transform:     affine32(multiplyAffine(view, n.worldTransform)),
				TextureRegion: n.TextureRegion,
				Color:         color32{float32(n.Color.R), float32(n.Color.G), float32(n.Color.B), float32(n.Color.A * n.worldAlpha)},
				BlendMode:     n.BlendMode,
				RenderLayer:   n.RenderLayer,
				GlobalOrder:   n.GlobalOrder,
				treeOrder:     *treeOrder,
			})
		case NodeTypeImage:
			if n.Image != nil {
				n.Image.Rebuild()
			}
			s.emitMesh(n, view, treeOrder)
		case NodeTypeMesh:
			s.emitMesh(n, view, treeOrder)
		}
	}

	if len(n.children) == 0 {
		return
	}
	children := n.children
	if !n.childrenSorted {
		s.rebuildSortedChildren(n)
	}
	if n.sortedChildren != nil {
		children = n.sortedChildren
	}
	for _, child := range children {
		s.traverse(child, view, treeOrder)
	}
}

// emitMesh transforms a mesh node's vertices into screen space and appends
// a CommandMesh referencing them.
func (s *Scene) emitMesh(n *Node, view [6]float64, treeOrder *int) {
	if len(n.Vertices) == 0 || len(n.Indices) == 0 {
		return
	}
	tint := Color{n.Color.R, n.Color.G, n.Color.B, n.Color.A * n.worldAlpha}
	m := multiplyAffine(view, n.worldTransform)
	dst := ensureTransformedVerts(n)
	transformVertices(n.Vertices, dst, m, tint)
	*treeOrder++
	s.commands = append(s.commands, RenderCommand{
		Type:        CommandMesh,
		Transform:   affine32(m),
		BlendMode:   n.BlendMode,
		RenderLayer: n.RenderLayer,
		GlobalOrder: n.GlobalOrder,
		treeOrder:   *treeOrder,
		meshVerts:   dst,
		meshInds:    n.Indices,
		meshImage:   n.MeshImage,
	})
}

// rebuildSortedChildren rebuilds the ZIndex traversal order of n with a
// stable insertion sort; sibling lists are short and usually sorted.
func (s *Scene) rebuildSortedChildren(n *Node) {
	nc := len(n.children)
	if cap(n.sortedChildren) < nc {
		n.sortedChildren = make([]*Node, nc)
	}
	n.sortedChildren = n.sortedChildren[:nc]
	copy(n.sortedChildren, n.children)
	for i := 1; i < nc; i++ {
		key := n.sortedChildren[i]
		j := i - 1
		for j >= 0 && n.sortedChildren[j].ZIndex > key.ZIndex {
			n.sortedChildren[j+1] = n.sortedChildren[j]
			j--
		}
		n.sortedChildren[j+1] = key
	}
	n.childrenSorted = true
}

// commandLessOrEqual orders by RenderLayer, then GlobalOrder, then tree
// order. Ties on treeOrder keep the sort stable.
func commandLessOrEqual(a, b *RenderCommand) bool {
	if a.RenderLayer != b.RenderLayer {
		return a.RenderLayer < b.RenderLayer
	}
	if a.GlobalOrder != b.GlobalOrder {
		return a.GlobalOrder < b.GlobalOrder
	}
	return a.treeOrder <= b.treeOrder
}

// mergeSort sorts s.commands in place with s.sortBuf as scratch. Bottom-up,
// so it stops allocating once the buffer reaches its high-water mark.
func (s *Scene) mergeSort() {
	n := len(s.commands)
	if n <= 1 {
		return
	}
	if cap(s.sortBuf) < n {
		s.sortBuf = make([]RenderCommand, n)
	}
	s.sortBuf = s.sortBuf[:n]

	a, b := s.commands, s.sortBuf
	swapped := false
	for width := 1; width < n; width *= 2 {
		for lo := 0; lo < n; lo += 2 * width {
			mid := min(lo+width, n)
			hi := min(lo+2*width, n)
			mergeRun(a, b, lo, mid, hi)
		}
		a, b = b, a
		swapped = !swapped
	}
	if swapped {
		copy(s.commands, s.sortBuf)
	}
}

// mergeRun merges sorted runs [lo, mid) and [mid, hi) of src into dst.
func mergeRun(src, dst []RenderCommand, lo, mid, hi int) {
	i, j, k := lo, mid, lo
	for i < mid && j < hi {
		if commandLessOrEqual(&src[i], &src[j]) {
			dst[k] = src[i]
			i++
		} else {
			dst[k] = src[j]
			j++
		}
		k++
	}
	k += copy(dst[k:], src[i:mid])
	copy(dst[k:], src[j:hi])
}
