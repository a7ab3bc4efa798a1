package uix

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestTweenPosition(t *testing.T) {
	n := NewContainer("pos")
	n.X, n.Y = 10, 20
	g := TweenPosition(n, 100, 200, 1, ease.Linear)

	g.Update(0.5)
	if g.Done {
		t.Fatal("done halfway")
	}
	if math.Abs(n.X-55) > 0.5 || !n.transformDirty {
		t.Errorf("halfway X = %v, dirty %v", n.X, n.transformDirty)
	}
	g.Update(0.5)
	if !g.Done || math.Abs(n.X-100) > 0.5 || math.Abs(n.Y-200) > 0.5 {
		t.Errorf("end: done %v, (%v, %v)", g.Done, n.X, n.Y)
	}
}

func TestTweenColorAndAlpha(t *testing.T) {
	n := NewContainer("c")
	g := TweenColor(n, Color{0, 0, 1, 0.5}, 1, ease.Linear)
	g.Update(1)
	if math.Abs(n.Color.R) > 0.01 || math.Abs(n.Color.B-1) > 0.01 || math.Abs(n.Color.A-0.5) > 0.01 {
		t.Errorf("Color = %v", n.Color)
	}

	a := TweenAlpha(n, 0, 0.5, ease.Linear)
	a.Update(0.5)
	if !a.Done || n.Alpha > 0.01 {
		t.Errorf("Alpha = %v, done %v", n.Alpha, a.Done)
	}
}

func TestTweenScaleStopsOnDispose(t *testing.T) {
	n := NewContainer("s")
	g := TweenScale(n, 3, 3, 1, ease.Linear)
	g.Update(0.25)
	n.Dispose()
	before := n.ScaleX
	g.Update(0.25)
	if !g.Done || n.ScaleX != before {
		t.Error("a disposed target should stop the tween without writing")
	}
}

func TestTweenFill(t *testing.T) {
	n := NewImage("bar", borderedSprite())
	img := n.Image
	img.SetType(ImageFilled)
	img.Rebuild()
	img.rebuilds = 0

	g := TweenFill(n, 0, 1, ease.Linear)
	g.Update(0.5)
	if math.Abs(img.FillAmount-0.5) > 0.01 {
		t.Errorf("FillAmount = %v, want ~0.5", img.FillAmount)
	}
	if img.rebuilds != 0 {
		t.Error("fill tween should rebuild lazily")
	}
	img.Rebuild()
	if img.rebuilds != 1 {
		t.Errorf("rebuilds = %d, want 1", img.rebuilds)
	}

	g.Update(0.5)
	if !g.Done || img.FillAmount != 0 {
		t.Errorf("end: done %v, fill %v", g.Done, img.FillAmount)
	}
	g.Update(1)
	if img.FillAmount != 0 {
		t.Error("finished group must not keep writing")
	}
}

func TestTweenFillPanicsWithoutImage(t *testing.T) {
	expectPanic(t, "container", func() { TweenFill(NewContainer("c"), 1, 1, ease.Linear) })
}
