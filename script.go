package mochi

import (
	"encoding/json"
	"fmt"

	"github.com/tanema/gween/ease"
)

// scriptStep is a single action in a script.
type scriptStep struct {
	Action   string  `json:"action"`
	Label    string  `json:"label,omitempty"`
	X        float64 `json:"x,omitempty"`
	Y        float64 `json:"y,omitempty"`
	DY       float64 `json:"dy,omitempty"`
	Duration float32 `json:"duration,omitempty"`
	Width    float64 `json:"width,omitempty"`
	Height   float64 `json:"height,omitempty"`
	Frames   int     `json:"frames,omitempty"`
}

// script is the top-level JSON structure of a script file.
type script struct {
	Steps []scriptStep `json:"steps"`
}

var scriptActions = map[string]bool{
	"ready":      true,
	"scroll":     true,
	"scrollTo":   true,
	"click":      true,
	"move":       true,
	"resize":     true,
	"wait":       true,
	"screenshot": true,
}

// injectedPointer is a queued synthetic pointer event in screen coordinates.
type injectedPointer struct {
	x, y    float64
	pressed bool
}

// ScriptRunner sequences scripted input, scroll and screenshots across frames
// for automated runs of a Session. The host calls Step once per frame before
// Session.Update.
type ScriptRunner struct {
	steps      []scriptStep
	cursor     int
	waitCount  int
	done       bool
	queue      []injectedPointer
	screenshot func(label string)
}

// Resizer is implemented by viewport sources that a script can resize, such
// as ManualViewport.
type Resizer interface {
	Resize(width, height float64)
}

// LoadScript parses a JSON script. An unknown action is a *ConfigError.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var sc script
	if err := json.Unmarshal(jsonData, &sc); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, configErrorf("steps", "script has no steps")
	}
	for i, st := range sc.Steps {
		if !scriptActions[st.Action] {
			return nil, configErrorf(fmt.Sprintf("steps[%d].action", i), "unknown action %q", st.Action)
		}
		if st.Action == "resize" && (st.Width < 0 || st.Height < 0) {
			return nil, configErrorf(fmt.Sprintf("steps[%d]", i), "negative size %gx%g", st.Width, st.Height)
		}
	}
	return &ScriptRunner{steps: sc.Steps}, nil
}

// OnScreenshot sets the callback screenshot steps invoke. Capturing pixels is
// the host's job; without a callback screenshot steps are skipped.
func (r *ScriptRunner) OnScreenshot(fn func(label string)) {
	r.screenshot = fn
}

// Done reports whether every step has been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Len returns the number of steps in the script.
func (r *ScriptRunner) Len() int {
	return len(r.steps)
}

// Step advances the runner by one frame. res receives resize steps and may be
// nil when the host cannot resize.
func (r *ScriptRunner) Step(s *Session, res Resizer) {
	if r.done {
		return
	}
	// Injected pointer events are consumed one per frame.
	if len(r.queue) > 0 {
		ev := r.queue[0]
		r.queue = r.queue[1:]
		if ev.pressed {
			s.PointerDown(ev.x, ev.y)
		} else {
			s.PointerUp(ev.x, ev.y)
		}
		r.checkDone(s)
		return
	}
	if s.Scroller().Animating() {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		r.checkDone(s)
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++
	debugf("script step %d: %s", r.cursor, st.Action)

	switch st.Action {
	case "ready":
		s.AssetReady()
	case "scroll":
		s.ScrollBy(st.DY)
	case "scrollTo":
		s.Scroller().ScrollTo(st.Y, st.Duration, ease.InOutSine)
	case "click":
		r.queue = append(r.queue,
			injectedPointer{x: st.X, y: st.Y, pressed: true},
			injectedPointer{x: st.X, y: st.Y, pressed: false},
		)
	case "move":
		s.PointerMove(st.X, st.Y)
	case "resize":
		if res != nil {
			res.Resize(st.Width, st.Height)
		}
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "screenshot":
		if r.screenshot != nil {
			r.screenshot(st.Label)
		}
	}
	r.checkDone(s)
}

func (r *ScriptRunner) checkDone(s *Session) {
	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(r.queue) == 0 && !s.Scroller().Animating() {
		r.done = true
	}
}
