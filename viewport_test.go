package mochi

import "testing"

func TestViewportTrackerMeasuresAtConstruction(t *testing.T) {
	src := NewManualViewport(1024, 768)
	vt := NewViewportTracker(src)
	if got := vt.Current(); got != (Size{1024, 768}) {
		t.Errorf("Current() = %v, want 1024x768", got)
	}
}

func TestViewportTrackerNotifiesOnChange(t *testing.T) {
	src := NewManualViewport(800, 600)
	vt := NewViewportTracker(src)
	var got []Size
	vt.OnChange(func(s Size) { got = append(got, s) })

	src.Resize(400, 900)
	src.Resize(400, 900) // unchanged, no notification
	src.Resize(400, 901)

	if len(got) != 2 {
		t.Fatalf("notifications = %d, want 2", len(got))
	}
	if got[0] != (Size{400, 900}) || got[1] != (Size{400, 901}) {
		t.Errorf("notifications = %v", got)
	}
	if vt.Current() != (Size{400, 901}) {
		t.Errorf("Current() = %v, want 400x901", vt.Current())
	}
}

func TestViewportTrackerClampsNegativeSizes(t *testing.T) {
	src := NewManualViewport(-10, 50)
	vt := NewViewportTracker(src)
	if got := vt.Current(); got != (Size{0, 50}) {
		t.Errorf("Current() = %v, want 0x50", got)
	}
	src.Resize(20, -1)
	if got := vt.Current(); got != (Size{20, 0}) {
		t.Errorf("Current() = %v, want 20x0", got)
	}
}

func TestViewportTrackerCloseStopsUpdates(t *testing.T) {
	src := NewManualViewport(800, 600)
	vt := NewViewportTracker(src)
	calls := 0
	vt.OnChange(func(Size) { calls++ })
	vt.Close()

	src.Resize(1, 1)
	if calls != 0 {
		t.Errorf("calls after Close = %d, want 0", calls)
	}
	if vt.Current() != (Size{800, 600}) {
		t.Errorf("Current() changed after Close: %v", vt.Current())
	}
	if src.resized.len() != 0 {
		t.Errorf("source still has %d subscribers", src.resized.len())
	}
}

func TestViewportTrackerHandleRemove(t *testing.T) {
	src := NewManualViewport(800, 600)
	vt := NewViewportTracker(src)
	calls := 0
	h := vt.OnChange(func(Size) { calls++ })
	src.Resize(10, 10)
	h.Remove()
	h.Remove()
	src.Resize(20, 20)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
