package uix

import (
	"fmt"

	"github.com/segmentio/encoding/json"
)

// scriptStep is one action of a UI script.
type scriptStep struct {
	Action   string  `json:"action"`
	Label    string  `json:"label,omitempty"`
	Location string  `json:"location,omitempty"`
	Mode     string  `json:"mode,omitempty"`
	X        float64 `json:"x,omitempty"`
	Y        float64 `json:"y,omitempty"`
	Amount   float64 `json:"amount,omitempty"`
	Frames   int     `json:"frames,omitempty"`
}

type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

// Script replays pointer input, fill changes, click-area modes and
// screenshots frame by frame, for automated visual checks of a UI.
//
// Actions: click, press, move, release (x, y in screen space), wait
// (frames), screenshot (label), clickArea (mode), select (location) and
// fill (location, amount). Locations are resolved with Scene.Location when
// the step runs.
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
	err       error
}

// LoadScript parses a JSON script of the form {"steps": [...]}. Unknown
// actions are rejected up front.
func LoadScript(data []byte) (*Script, error) {
	var f scriptFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("uix: parse script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("uix: parse script: no steps")
	}
	for i, st := range f.Steps {
		switch st.Action {
		case "click", "press", "move", "release", "wait", "screenshot", "select", "fill":
		case "clickArea":
			if _, err := ParseClickAreaMode(st.Mode); err != nil {
				return nil, fmt.Errorf("uix: parse script: step %d: %w", i, err)
			}
		default:
			return nil, fmt.Errorf("uix: parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: f.Steps}, nil
}

// SetScript attaches script to the scene; it advances once per Update,
// before input is processed. Nil detaches.
func (s *Scene) SetScript(script *Script) {
	s.script = script
}

// Done reports whether every step has run.
func (r *Script) Done() bool {
	return r.done
}

// Err returns the first step that failed to resolve, if any. A failed step
// is skipped; the script keeps going.
func (r *Script) Err() error {
	return r.err
}

func (r *Script) step(s *Scene) {
	if r.done {
		return
	}
	if len(s.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "click":
		s.InjectClick(st.X, st.Y)
	case "press":
		s.InjectPress(st.X, st.Y)
	case "move":
		s.InjectMove(st.X, st.Y)
	case "release":
		s.InjectRelease(st.X, st.Y)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1
		}
	case "screenshot":
		s.Screenshot(st.Label)
	case "clickArea":
		mode, _ := ParseClickAreaMode(st.Mode)
		s.SetClickAreaMode(mode)
	case "select":
		n, err := s.Location(st.Location)
		if err != nil {
			r.fail(err)
			break
		}
		s.ClickArea().Select(n)
	case "fill":
		n, err := s.Location(st.Location)
		if err != nil {
			r.fail(err)
			break
		}
		if n.Image == nil {
			r.fail(fmt.Errorf("uix: script fill: location %q is not an image", st.Location))
			break
		}
		n.Image.SetFillAmount(st.Amount)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}

func (r *Script) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}
