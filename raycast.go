package uix

// Canvas marks the root of a UI subtree. Every graphic below it, down to
// the next nested canvas, is raycast and culled through Camera.
type Canvas struct {
	// Camera renders the canvas. Nil means screen space: world and screen
	// coordinates coincide.
	Camera *Camera
	// Raycaster enables pointer raycasts against the canvas' graphics.
	Raycaster bool
}

// NewCanvas returns a canvas rendered by cam with raycasting enabled.
func NewCanvas(cam *Camera) *Canvas {
	return &Canvas{Camera: cam, Raycaster: true}
}

// CanvasGroup controls raycasting for a whole subtree. Groups stack: a
// graphic is blocked if any group between it and its canvas disables
// BlocksRaycasts, unless a closer group sets IgnoreParentGroups.
type CanvasGroup struct {
	BlocksRaycasts     bool
	IgnoreParentGroups bool
}

// NewCanvasGroup returns a group that lets raycasts through.
func NewCanvasGroup() *CanvasGroup {
	return &CanvasGroup{BlocksRaycasts: true}
}

// HierarchyDepth returns the number of ancestors of n. The root is 0.
func HierarchyDepth(n *Node) int {
	depth := 0
	for p := n.Parent; p != nil; p = p.Parent {
		depth++
	}
	return depth
}

// CanvasOf returns the canvas governing n and the node carrying it, or
// nils if n is not under a canvas.
func CanvasOf(n *Node) (*Canvas, *Node) {
	for p := n; p != nil; p = p.Parent {
		if p.Canvas != nil {
			return p.Canvas, p
		}
	}
	return nil, nil
}

// isGraphic reports whether n draws something and can be a raycast target.
func isGraphic(n *Node) bool {
	switch n.Type {
	case NodeTypeSprite, NodeTypeMesh, NodeTypeImage:
		return true
	}
	return false
}

// groupsAllowRaycast walks the canvas groups from n upward. Groups above
// the canvas node are ignored; canvasNode may be nil to consider all.
func groupsAllowRaycast(n, canvasNode *Node) bool {
	canvasDepth := -1
	if canvasNode != nil {
		canvasDepth = HierarchyDepth(canvasNode)
	}
	depth := HierarchyDepth(n)
	for p := n; p != nil; p, depth = p.Parent, depth-1 {
		if p.Group == nil {
			continue
		}
		if depth < canvasDepth {
			break
		}
		if !p.Group.BlocksRaycasts {
			return false
		}
		if p.Group.IgnoreParentGroups {
			break
		}
	}
	return true
}

// IsBlockRaycast reports whether n currently intercepts pointer raycasts:
// it is a visible graphic marked Interactable, it sits under a canvas with
// raycasting enabled, it is not culled by the canvas camera, and no canvas
// group in between disables raycasts.
func IsBlockRaycast(n *Node) bool {
	if n == nil || n.disposed || !isGraphic(n) {
		return false
	}
	canvas, canvasNode := CanvasOf(n)
	if canvas == nil {
		return false
	}
	if !n.VisibleInHierarchy() || !n.Interactable {
		return false
	}
	if cam := canvas.Camera; cam != nil && cam.CullEnabled {
		refreshWorldTransform(n)
		if shouldCull(n, cam.VisibleBounds()) {
			return false
		}
	}
	if !canvas.Raycaster {
		return false
	}
	return groupsAllowRaycast(n, canvasNode)
}

// raycastable is the hit-test filter. Nodes outside any canvas are always
// eligible so plain scenes work without UI setup.
func raycastable(n *Node) bool {
	canvas, canvasNode := CanvasOf(n)
	if canvas != nil && !canvas.Raycaster {
		return false
	}
	return groupsAllowRaycast(n, canvasNode)
}
