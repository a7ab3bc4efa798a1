package uix

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields on a Node at once. Build one
// with TweenPosition, TweenScale, TweenColor, TweenAlpha or TweenFill and
// call Update(dt) each frame. A disposed target stops the group.
//
// There is no global animation manager; callers own their groups.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *Node
	// apply runs after the fields are written, for targets that need more
	// than MarkDirty (image fill rebuilds).
	apply func()
	Done  bool
}

// Update advances all tweens by dt seconds and writes the values back.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	if g.apply != nil {
		g.apply()
	}
	if g.target != nil {
		g.target.MarkDirty()
	}
}

func newTweenGroup(node *Node, fn ease.TweenFunc, duration float32, pairs ...[2]*float64) *TweenGroup {
	g := &TweenGroup{count: len(pairs), target: node}
	for i, p := range pairs {
		g.tweens[i] = gween.New(float32(*p[0]), float32(*p[1]), duration, fn)
		g.fields[i] = p[0]
	}
	return g
}

// TweenPosition animates node.X and node.Y.
func TweenPosition(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, fn, duration, [2]*float64{&node.X, &toX}, [2]*float64{&node.Y, &toY})
}

// TweenScale animates node.ScaleX and node.ScaleY.
func TweenScale(node *Node, toSX, toSY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, fn, duration, [2]*float64{&node.ScaleX, &toSX}, [2]*float64{&node.ScaleY, &toSY})
}

// TweenColor animates all four components of node.Color.
func TweenColor(node *Node, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, fn, duration,
		[2]*float64{&node.Color.R, &to.R},
		[2]*float64{&node.Color.G, &to.G},
		[2]*float64{&node.Color.B, &to.B},
		[2]*float64{&node.Color.A, &to.A},
	)
}

// TweenAlpha animates node.Alpha.
func TweenAlpha(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, fn, duration, [2]*float64{&node.Alpha, &to})
}

// TweenFill animates the fill amount of an image node. The mesh is rebuilt
// lazily on the next draw. Panics if node is not an image.
func TweenFill(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	img := node.Image
	if img == nil {
		panic("uix: TweenFill on a node without an Image")
	}
	value := img.FillAmount
	g := newTweenGroup(node, fn, duration, [2]*float64{&value, &to})
	g.apply = func() { img.SetFillAmount(value) }
	return g
}
