package mochi

import (
	"testing"

	"github.com/tanema/gween/ease"
)

func TestScrollerClampsToExtent(t *testing.T) {
	s := NewScroller()
	s.SetExtent(2000, 500)
	if s.MaxScroll() != 1500 {
		t.Fatalf("MaxScroll() = %g, want 1500", s.MaxScroll())
	}
	s.ScrollBy(-100)
	if s.ScrollY() != 0 {
		t.Errorf("ScrollY() = %g, want 0", s.ScrollY())
	}
	s.ScrollBy(5000)
	if s.ScrollY() != 1500 {
		t.Errorf("ScrollY() = %g, want 1500", s.ScrollY())
	}
}

func TestScrollerSetExtentReclamps(t *testing.T) {
	s := NewScroller()
	s.SetExtent(2000, 500)
	s.Jump(1500)
	var got []float64
	s.OnScroll(func(y float64) { got = append(got, y) })
	s.SetExtent(1000, 500)
	if s.ScrollY() != 500 {
		t.Errorf("ScrollY() = %g, want 500", s.ScrollY())
	}
	if len(got) != 1 || got[0] != 500 {
		t.Errorf("notifications = %v, want [500]", got)
	}
}

func TestScrollerShortContentCannotScroll(t *testing.T) {
	s := NewScroller()
	s.SetExtent(300, 500)
	s.ScrollBy(100)
	if s.ScrollY() != 0 || s.MaxScroll() != 0 {
		t.Errorf("ScrollY/MaxScroll = %g/%g, want 0/0", s.ScrollY(), s.MaxScroll())
	}
}

func TestScrollerScrollToAnimates(t *testing.T) {
	s := NewScroller()
	s.SetExtent(3000, 1000)
	s.ScrollTo(1000, 1.0, nil)
	if !s.Animating() {
		t.Fatal("Animating() = false after ScrollTo")
	}
	s.Update(0.5)
	if y := s.ScrollY(); y < 400 || y > 600 {
		t.Errorf("ScrollY() halfway = %g, want ~500", y)
	}
	s.Update(0.6)
	if s.ScrollY() != 1000 {
		t.Errorf("ScrollY() after tween = %g, want 1000", s.ScrollY())
	}
	if s.Animating() {
		t.Error("Animating() = true after the tween finished")
	}
}

func TestScrollerScrollToClampsTarget(t *testing.T) {
	s := NewScroller()
	s.SetExtent(3000, 1000)
	s.ScrollTo(9999, 0.2, ease.OutCubic)
	s.Update(1)
	if s.ScrollY() != 2000 {
		t.Errorf("ScrollY() = %g, want 2000", s.ScrollY())
	}
}

func TestScrollerScrollToZeroDurationJumps(t *testing.T) {
	s := NewScroller()
	s.SetExtent(3000, 1000)
	s.ScrollTo(700, 0, nil)
	if s.ScrollY() != 700 || s.Animating() {
		t.Errorf("ScrollY/Animating = %g/%v, want 700/false", s.ScrollY(), s.Animating())
	}
}

func TestScrollerScrollByCancelsAnimation(t *testing.T) {
	s := NewScroller()
	s.SetExtent(3000, 1000)
	s.ScrollTo(2000, 1, nil)
	s.Update(0.1)
	s.ScrollBy(10)
	if s.Animating() {
		t.Error("ScrollBy did not cancel the animation")
	}
	y := s.ScrollY()
	s.Update(1)
	if s.ScrollY() != y {
		t.Errorf("ScrollY() moved after cancel: %g -> %g", y, s.ScrollY())
	}
}

func TestScrollerPageHomeEnd(t *testing.T) {
	s := NewScroller()
	s.SetExtent(5000, 1000)
	s.Page(1)
	s.Page(1) // stacks on the running target
	s.Update(1)
	assertNear(t, "ScrollY after two pages", s.ScrollY(), 1800)

	s.End()
	s.Update(1)
	if s.ScrollY() != 4000 {
		t.Errorf("ScrollY() after End = %g, want 4000", s.ScrollY())
	}
	s.Home()
	s.Update(1)
	if s.ScrollY() != 0 {
		t.Errorf("ScrollY() after Home = %g, want 0", s.ScrollY())
	}
}
