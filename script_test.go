package mochi

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func runScript(t *testing.T, r *ScriptRunner, s *Session, res Resizer) int {
	t.Helper()
	frames := 0
	for !r.Done() {
		r.Step(s, res)
		s.Update(frame)
		frames++
		if frames > 10000 {
			t.Fatal("script did not finish")
		}
	}
	return frames
}

func TestLoadScript(t *testing.T) {
	r, err := LoadScript([]byte(`{
		"steps": [
			{"action": "ready"},
			{"action": "wait", "frames": 3},
			{"action": "scroll", "dy": 120},
			{"action": "screenshot", "label": "after-scroll"}
		]
	}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Len() != 4 {
		t.Fatalf("expected 4 steps, got %d", r.Len())
	}
	if r.steps[1].Frames != 3 || r.steps[2].DY != 120 || r.steps[3].Label != "after-scroll" {
		t.Errorf("steps = %+v", r.steps)
	}
}

func TestLoadScriptErrors(t *testing.T) {
	if _, err := LoadScript([]byte(`not json`)); err == nil {
		t.Error("expected error for invalid JSON")
	}
	if _, err := LoadScript([]byte(`{"steps": []}`)); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("empty steps: err = %v, want ErrInvalidConfig", err)
	}
	_, err := LoadScript([]byte(`{"steps": [{"action": "ready"}, {"action": "dance"}]}`))
	var ce *ConfigError
	if !errors.As(err, &ce) || ce.Field != "steps[1].action" {
		t.Errorf("unknown action: err = %v, want ConfigError on steps[1].action", err)
	}
	if _, err := LoadScript([]byte(`{"steps": [{"action": "resize", "width": -1}]}`)); err == nil {
		t.Error("negative resize accepted")
	}
}

func TestScriptReadyScrollScreenshot(t *testing.T) {
	s, _ := newTestSession(t)
	r, err := LoadScript([]byte(`{"steps": [
		{"action": "ready"},
		{"action": "wait", "frames": 100},
		{"action": "screenshot", "label": "ready"},
		{"action": "scroll", "dy": 100000},
		{"action": "screenshot", "label": "bottom"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	var shots []string
	var progress []float64
	r.OnScreenshot(func(label string) {
		shots = append(shots, label)
		progress = append(progress, s.Frame().Progress)
	})
	runScript(t, r, s, nil)

	if len(shots) != 2 || shots[0] != "ready" || shots[1] != "bottom" {
		t.Fatalf("screenshots = %v", shots)
	}
	if progress[0] != 0 || progress[1] != 1 {
		t.Errorf("progress at screenshots = %v, want [0 1]", progress)
	}
	if !s.Lifecycle().State().Ready() {
		t.Error("session not ready after the script")
	}
}

func TestScriptClickCelebrates(t *testing.T) {
	s, _ := newTestSession(t)
	makeReady(t, s)
	s.ScrollBy(s.Scroller().MaxScroll())
	advance(s, time.Second)
	b := s.Frame().Button.Rect

	r, err := LoadScript([]byte(fmt.Sprintf(`{"steps": [
		{"action": "move", "x": %g, "y": %g},
		{"action": "click", "x": %g, "y": %g}
	]}`, b.X+4, b.Y+4, b.X+4, b.Y+4)))
	if err != nil {
		t.Fatal(err)
	}
	runScript(t, r, s, nil)
	if !s.Lifecycle().State().CelebrationActive {
		t.Error("scripted click did not celebrate")
	}
}

func TestScriptScrollToWaitsForAnimation(t *testing.T) {
	s, _ := newTestSession(t)
	r, err := LoadScript([]byte(`{"steps": [
		{"action": "scrollTo", "y": 500, "duration": 0.5},
		{"action": "screenshot", "label": "settled"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	var y float64
	r.OnScreenshot(func(string) { y = s.Scroller().ScrollY() })
	frames := runScript(t, r, s, nil)
	if y != 500 {
		t.Errorf("ScrollY at screenshot = %g, want 500", y)
	}
	if frames < 30 {
		t.Errorf("script finished in %d frames, before the animation", frames)
	}
}

func TestScriptResize(t *testing.T) {
	s, vp := newTestSession(t)
	r, err := LoadScript([]byte(`{"steps": [{"action": "resize", "width": 1280, "height": 720}]}`))
	if err != nil {
		t.Fatal(err)
	}
	runScript(t, r, s, vp)
	if s.Viewport().Current() != (Size{1280, 720}) {
		t.Errorf("viewport = %v, want 1280x720", s.Viewport().Current())
	}
}
