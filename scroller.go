package mochi

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Scroller owns the vertical scroll offset of the card's content. It is the
// ScrollSource both hosts feed wheel, key and touch input into.
type Scroller struct {
	y       float64
	content float64
	view    float64

	tween    *gween.Tween
	tweenTo  float64
	scrolled listeners[float64]
}

// NewScroller creates a scroller at offset 0 with an empty extent.
func NewScroller() *Scroller {
	return &Scroller{}
}

// ScrollY implements ScrollSource.
func (s *Scroller) ScrollY() float64 {
	return s.y
}

// OnScroll implements ScrollSource. fn runs with the new offset whenever it
// changes.
func (s *Scroller) OnScroll(fn func(y float64)) CallbackHandle {
	return s.scrolled.add(fn)
}

// MaxScroll returns the largest reachable offset.
func (s *Scroller) MaxScroll() float64 {
	return max(s.content-s.view, 0)
}

// SetExtent updates the content and viewport heights and re-clamps the
// offset, which may emit a scroll notification.
func (s *Scroller) SetExtent(contentHeight, viewportHeight float64) {
	s.content = max(contentHeight, 0)
	s.view = max(viewportHeight, 0)
	s.setY(s.y)
}

// ScrollBy moves the offset by dy pixels immediately and cancels any running
// ScrollTo animation.
func (s *Scroller) ScrollBy(dy float64) {
	s.tween = nil
	s.setY(s.y + dy)
}

// Jump sets the offset immediately.
func (s *Scroller) Jump(y float64) {
	s.tween = nil
	s.setY(y)
}

// ScrollTo animates the offset to y over duration seconds.
func (s *Scroller) ScrollTo(y float64, duration float32, easeFn ease.TweenFunc) {
	if easeFn == nil {
		easeFn = ease.Linear
	}
	y = s.clamp(y)
	if duration <= 0 {
		s.Jump(y)
		return
	}
	s.tween = gween.New(float32(s.y), float32(y), duration, easeFn)
	s.tweenTo = y
}

// Page scrolls by n viewport heights with a short ease-out animation.
func (s *Scroller) Page(n float64) {
	s.ScrollTo(s.target()+n*s.view*0.9, 0.35, ease.OutCubic)
}

// Home animates back to the top.
func (s *Scroller) Home() { s.ScrollTo(0, 0.5, ease.InOutSine) }

// End animates to the bottom.
func (s *Scroller) End() { s.ScrollTo(s.MaxScroll(), 0.5, ease.InOutSine) }

// Animating reports whether a ScrollTo animation is running.
func (s *Scroller) Animating() bool {
	return s.tween != nil
}

// Update advances a running ScrollTo animation by dt seconds.
func (s *Scroller) Update(dt float32) {
	if s.tween == nil {
		return
	}
	val, done := s.tween.Update(dt)
	if done {
		s.tween = nil
		s.setY(s.tweenTo)
		return
	}
	s.setY(float64(val))
}

// target is the offset a running animation is heading to, or the current one.
func (s *Scroller) target() float64 {
	if s.tween == nil {
		return s.y
	}
	return s.tweenTo
}

func (s *Scroller) clamp(y float64) float64 {
	return min(max(y, 0), s.MaxScroll())
}

func (s *Scroller) setY(y float64) {
	y = s.clamp(y)
	if y == s.y {
		return
	}
	s.y = y
	s.scrolled.emit(y)
}
