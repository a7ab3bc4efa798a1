package uix

import (
	"errors"
	"strings"
	"testing"
)

func TestLoadScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"invalid json", `{"steps": [`, "parse script"},
		{"no steps", `{"steps": []}`, "no steps"},
		{"unknown action", `{"steps": [{"action": "drag"}]}`, `unknown action "drag"`},
		{"bad mode", `{"steps": [{"action": "clickArea", "mode": "some"}]}`, "step 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScript([]byte(tt.data))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestScriptRunsStepsInOrder(t *testing.T) {
	s := NewScene()
	bar := NewImage("bar", borderedSprite())
	bar.Image.SetType(ImageFilled)
	MarkLocation(bar, "HpBar")
	s.Root().AddChild(bar)

	r, err := LoadScript([]byte(`{"steps": [
		{"action": "click", "x": 10, "y": 10},
		{"action": "wait", "frames": 2},
		{"action": "screenshot", "label": "half"},
		{"action": "fill", "location": "HpBar", "amount": 0.5},
		{"action": "clickArea", "mode": "selection"},
		{"action": "select", "location": "HpBar"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetScript(r)

	r.step(s)
	if s.PendingInjections() != 2 {
		t.Fatalf("click queued %d events, want 2", s.PendingInjections())
	}
	r.step(s)
	if r.cursor != 1 {
		t.Fatal("script should hold while injected input is pending")
	}
	s.injectQueue = s.injectQueue[:0]

	r.step(s) // wait starts
	r.step(s) // second wait frame
	if len(s.screenshotQueue) != 0 {
		t.Fatal("screenshot taken before the wait elapsed")
	}
	r.step(s)
	if len(s.screenshotQueue) != 1 || s.screenshotQueue[0] != "half" {
		t.Fatalf("screenshot queue = %v", s.screenshotQueue)
	}

	r.step(s)
	if bar.Image.FillAmount != 0.5 {
		t.Errorf("FillAmount = %v, want 0.5", bar.Image.FillAmount)
	}
	r.step(s)
	if o := s.ClickArea(); o.Mode != ClickAreaSelection {
		t.Fatal("clickArea step should install the selection overlay")
	}
	r.step(s)
	if !r.Done() {
		t.Error("script should be done after its last step")
	}
	if got := s.ClickArea().selection; len(got) != 1 || got[0] != bar {
		t.Errorf("selection = %v, want the bar", got)
	}
	if r.Err() != nil {
		t.Errorf("Err = %v", r.Err())
	}
}

func TestScriptSelectWhileHidden(t *testing.T) {
	s := NewScene()
	bar := NewImage("bar", borderedSprite())
	MarkLocation(bar, "")
	s.Root().AddChild(bar)

	r, err := LoadScript([]byte(`{"steps": [
		{"action": "select", "location": "bar"},
		{"action": "clickArea", "mode": "selection"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	r.step(s)
	r.step(s)
	o := s.ClickArea()
	if o.Mode != ClickAreaSelection || len(o.selection) != 1 || o.selection[0] != bar {
		t.Errorf("mode %v, selection %v; want the bar selected before showing", o.Mode, o.selection)
	}
}

func TestScriptMissingLocation(t *testing.T) {
	s := NewScene()
	r, err := LoadScript([]byte(`{"steps": [
		{"action": "fill", "location": "Nowhere", "amount": 0.5},
		{"action": "screenshot", "label": "after"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	r.step(s)
	r.step(s)
	if !errors.Is(r.Err(), ErrNotFound) {
		t.Errorf("Err = %v, want ErrNotFound", r.Err())
	}
	if !r.Done() || len(s.screenshotQueue) != 1 {
		t.Error("a failed step should not stop the script")
	}
}

func TestScriptFillNeedsImage(t *testing.T) {
	s := NewScene()
	c := NewContainer("panel")
	MarkLocation(c, "")
	s.Root().AddChild(c)

	r, err := LoadScript([]byte(`{"steps": [{"action": "fill", "location": "panel", "amount": 1}]}`))
	if err != nil {
		t.Fatal(err)
	}
	r.step(s)
	if r.Err() == nil || !strings.Contains(r.Err().Error(), "not an image") {
		t.Errorf("Err = %v", r.Err())
	}
}
