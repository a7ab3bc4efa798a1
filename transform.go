package uix

import "math"

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// computeLocalTransform builds the local affine matrix [a, b, c, d, tx, ty]
// of n. Pivot is subtracted first, then scale and rotation are applied, and
// the result is translated to (X, Y).
func computeLocalTransform(n *Node) [6]float64 {
	sin, cos := math.Sincos(n.Rotation)
	a := cos * n.ScaleX
	b := sin * n.ScaleX
	c := -sin * n.ScaleY
	d := cos * n.ScaleY
	return [6]float64{
		a, b, c, d,
		n.X - (a*n.PivotX + c*n.PivotY),
		n.Y - (b*n.PivotX + d*n.PivotY),
	}
}

// multiplyAffine returns parent * child.
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine returns the inverse of m, or identity when m is singular.
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if math.Abs(det) < 1e-12 {
		return identityTransform
	}
	inv := 1.0 / det
	a := m[3] * inv
	b := -m[1] * inv
	c := -m[2] * inv
	d := m[0] * inv
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// transformRect maps the four corners of r through m and returns their
// axis-aligned bounding box.
func transformRect(m [6]float64, r Rect) Rect {
	corners := rectCorners(m, r)
	minX, minY := corners[0].X, corners[0].Y
	maxX, maxY := minX, minY
	for _, p := range corners[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// rectCorners maps r's corners through m in the order top-left, top-right,
// bottom-right, bottom-left.
func rectCorners(m [6]float64, r Rect) [4]Vec2 {
	var out [4]Vec2
	xs := [4]float64{r.X, r.X + r.Width, r.X + r.Width, r.X}
	ys := [4]float64{r.Y, r.Y, r.Y + r.Height, r.Y + r.Height}
	for i := range out {
		out[i].X, out[i].Y = transformPoint(m, xs[i], ys[i])
	}
	return out
}

// updateWorldTransform recomputes world transforms and alphas below n.
// parentRecomputed forces a recompute even when n itself is clean.
func updateWorldTransform(n *Node, parentTransform [6]float64, parentAlpha float64, parentRecomputed bool) {
	recompute := n.transformDirty || parentRecomputed
	if recompute {
		n.worldTransform = multiplyAffine(parentTransform, computeLocalTransform(n))
		n.worldAlpha = parentAlpha * n.Alpha
		n.transformDirty = false
	}
	for _, child := range n.children {
		updateWorldTransform(child, n.worldTransform, n.worldAlpha, recompute)
	}
}

// refreshWorldTransform brings n's world transform up to date outside the
// frame loop by walking its ancestor chain.
func refreshWorldTransform(n *Node) {
	m := identityTransform
	alpha := 1.0
	var chain []*Node
	for p := n; p != nil; p = p.Parent {
		chain = append(chain, p)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		p := chain[i]
		m = multiplyAffine(m, computeLocalTransform(p))
		alpha *= p.Alpha
		p.worldTransform = m
		p.worldAlpha = alpha
	}
}

// SetPosition sets the node's local X and Y.
func (n *Node) SetPosition(x, y float64) {
	n.X = x
	n.Y = y
	n.transformDirty = true
}

// SetScale sets the node's ScaleX and ScaleY.
func (n *Node) SetScale(sx, sy float64) {
	n.ScaleX = sx
	n.ScaleY = sy
	n.transformDirty = true
}

// SetRotation sets the node's rotation in radians.
func (n *Node) SetRotation(r float64) {
	n.Rotation = r
	n.transformDirty = true
}

// SetPivot sets the local point that position, scale and rotation are
// applied around.
func (n *Node) SetPivot(px, py float64) {
	n.PivotX = px
	n.PivotY = py
	n.transformDirty = true
}

// SetAlpha sets the node's alpha. Children multiply it into their own.
func (n *Node) SetAlpha(a float64) {
	n.Alpha = a
	n.transformDirty = true
}

// MarkDirty forces the transform to be recomputed on the next frame.
// Call after writing transform fields directly.
func (n *Node) MarkDirty() {
	n.transformDirty = true
}

// WorldToLocal converts a world-space point to this node's local space.
func (n *Node) WorldToLocal(wx, wy float64) (lx, ly float64) {
	return transformPoint(invertAffine(n.worldTransform), wx, wy)
}

// LocalToWorld converts a local-space point to world space.
func (n *Node) LocalToWorld(lx, ly float64) (wx, wy float64) {
	return transformPoint(n.worldTransform, lx, ly)
}

// WorldCorners returns the world-space corners of the node's local bounds
// (top-left, top-right, bottom-right, bottom-left). Transforms are
// refreshed first, so the result is valid between frames.
func (n *Node) WorldCorners() [4]Vec2 {
	refreshWorldTransform(n)
	return rectCorners(n.worldTransform, n.localBounds())
}
