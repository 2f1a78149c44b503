package mochi

import (
	"math/rand/v2"
	"time"
)

// Session is one run of a card. It wires the viewport tracker, layout,
// scroller and scroll progress tracker to the curve channels, lifecycle and
// composer, and produces a Frame per update. A Session is single-threaded:
// every method must be called from the host's update loop.
type Session struct {
	card     *Card
	measurer Measurer

	viewport  *ViewportTracker
	layout    Layout
	scroller  *Scroller
	progress  *ScrollProgressTracker
	lifecycle *Lifecycle
	confetti  *Confetti

	clock       float64 // seconds of update time
	curves      CurveValues
	hero        Reveal
	heroTween   *TweenGroup
	panels      []Reveal
	panelTweens []*TweenGroup
	panelSeen   []bool

	buttonScale float64
	buttonTween *TweenGroup
	hover       bool
	pressed     bool

	frame  Frame
	frames listeners[Frame]
	subs   []CallbackHandle
	closed bool
}

// SessionOption configures a Session.
type SessionOption func(*sessionOptions)

type sessionOptions struct {
	rng *rand.Rand
}

// WithRand seeds the confetti simulation, for reproducible runs.
func WithRand(rng *rand.Rand) SessionOption {
	return func(o *sessionOptions) { o.rng = rng }
}

// NewSession builds a session for card, measuring the viewport from vp and
// text with m. It fails with a *ConfigError if the tracked scroll region is
// degenerate for the initial viewport.
func NewSession(card *Card, vp ViewportSource, m Measurer, opts ...SessionOption) (*Session, error) {
	var o sessionOptions
	for _, opt := range opts {
		opt(&o)
	}

	s := &Session{
		card:        card,
		measurer:    m,
		lifecycle:   NewLifecycle(card.SettleDelay),
		confetti:    NewConfetti(card.Confetti, o.rng),
		buttonScale: 1,
	}
	n := len(card.PanelOffsets)
	s.panels = make([]Reveal, n)
	s.panelTweens = make([]*TweenGroup, n)
	s.panelSeen = make([]bool, n)
	s.curves.PanelOffsets = make([]float64, n)

	// Order matters: the layout and scroll extent must follow a resize before
	// the progress tracker recomputes.
	s.viewport = NewViewportTracker(vp)
	s.scroller = NewScroller()
	s.relayout(s.viewport.Current())
	s.subs = append(s.subs, s.viewport.OnChange(s.relayout))

	tracker, err := NewScrollProgressTracker(s.scroller, s.viewport, &s.layout, card.Offset)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.progress = tracker
	s.subs = append(s.subs,
		tracker.Subscribe(s.evaluateCurves),
		s.lifecycle.OnChange(s.lifecycleChanged),
	)

	s.evaluateCurves(tracker.Progress())
	s.compose()
	return s, nil
}

// Card returns the compiled card the session runs.
func (s *Session) Card() *Card { return s.card }

// Lifecycle returns the session's state machine.
func (s *Session) Lifecycle() *Lifecycle { return s.lifecycle }

// Viewport returns the session's viewport tracker.
func (s *Session) Viewport() *ViewportTracker { return s.viewport }

// Scroller returns the scroll offset owner hosts feed input into.
func (s *Session) Scroller() *Scroller { return s.scroller }

// Progress returns the scroll progress tracker.
func (s *Session) Progress() *ScrollProgressTracker { return s.progress }

// Layout returns the current content layout.
func (s *Session) Layout() *Layout { return &s.layout }

// Confetti returns the celebration simulation.
func (s *Session) Confetti() *Confetti { return s.confetti }

// Frame returns the most recently composed frame.
func (s *Session) Frame() Frame { return s.frame }

// OnFrame registers fn to receive every composed frame.
func (s *Session) OnFrame(fn func(Frame)) CallbackHandle {
	return s.frames.add(fn)
}

// AssetReady forwards the background asset's ready signal.
func (s *Session) AssetReady() {
	if s.closed {
		return
	}
	s.lifecycle.AssetReady()
}

// Celebrate activates the celebration directly, bypassing the button.
func (s *Session) Celebrate() {
	if s.closed {
		return
	}
	s.lifecycle.Celebrate()
	s.compose()
}

// ScrollBy scrolls the content by dy pixels.
func (s *Session) ScrollBy(dy float64) {
	if s.closed {
		return
	}
	s.scroller.ScrollBy(dy)
	s.compose()
}

// HitTest reports the region under screen point (x, y) in the current frame.
func (s *Session) HitTest(x, y float64) Region {
	return s.frame.HitTest(x, y)
}

// PointerMove updates the button's hover state.
func (s *Session) PointerMove(x, y float64) {
	if s.closed {
		return
	}
	hover := s.HitTest(x, y) == RegionButton
	if hover == s.hover {
		return
	}
	s.hover = hover
	if !hover {
		s.pressed = false
	}
	s.retargetButton()
}

// PointerDown presses the button if the point is over it. It returns the
// region that received the press.
func (s *Session) PointerDown(x, y float64) Region {
	if s.closed {
		return RegionNone
	}
	r := s.HitTest(x, y)
	if r == RegionButton {
		s.hover = true
		s.pressed = true
		s.retargetButton()
	}
	return r
}

// PointerUp releases a press. Releasing over the button that was pressed
// activates the celebration.
func (s *Session) PointerUp(x, y float64) {
	if s.closed {
		return
	}
	wasPressed := s.pressed
	s.pressed = false
	over := s.HitTest(x, y) == RegionButton
	s.hover = over
	s.retargetButton()
	if wasPressed && over {
		s.Celebrate()
	}
}

// Click is PointerDown followed by PointerUp at the same point.
func (s *Session) Click(x, y float64) Region {
	r := s.PointerDown(x, y)
	s.PointerUp(x, y)
	return r
}

// Update advances the session by dt of host update time and composes a new
// frame.
func (s *Session) Update(dt time.Duration) {
	if s.closed || dt < 0 {
		return
	}
	var stats debugStats
	var t0 time.Time
	if debugEnabled {
		t0 = time.Now()
	}

	sec := dt.Seconds()
	s.clock += sec
	s.lifecycle.Update(dt)
	s.scroller.Update(float32(sec))
	s.heroTween.Update(float32(sec))
	s.revealPanels()
	for _, tw := range s.panelTweens {
		tw.Update(float32(sec))
	}
	s.buttonTween.Update(float32(sec))
	s.confetti.Update(sec)

	if debugEnabled {
		stats.updateTime = time.Since(t0)
		t0 = time.Now()
	}
	s.compose()
	if debugEnabled {
		stats.composeTime = time.Since(t0)
		stats.confettiAlive = s.confetti.AliveCount()
		stats.log()
	}
}

// Close releases every subscription and cancels the settle timer. The
// session ignores all calls afterwards.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	for _, h := range s.subs {
		h.Remove()
	}
	s.subs = nil
	if s.progress != nil {
		s.progress.Close()
	}
	s.lifecycle.Close()
	s.viewport.Close()
	s.frames.clear()
}

func (s *Session) relayout(vp Size) {
	s.layout = ComputeLayout(s.card.Content, vp, s.card.Config.Scroll.MinHeightVH, s.measurer)
	s.scroller.SetExtent(s.layout.ContentHeight, vp.Height)
	s.confetti.Resize(vp)
}

func (s *Session) evaluateCurves(p float64) {
	s.curves.ModelOpacity = s.card.ModelOpacity.Map(p)
	s.curves.HintOpacity = s.card.HintOpacity.Map(p)
	for i, c := range s.card.PanelOffsets {
		s.curves.PanelOffsets[i] = c.Map(p)
	}
}

func (s *Session) lifecycleChanged(st LifecycleState) {
	if st.Ready() && s.heroTween == nil {
		r := s.card.Config.Motion.HeroEntrance
		s.heroTween = TweenReveal(&s.hero, r.Offset,
			float32(r.Duration.Seconds()), float32(r.Delay.Seconds()), s.card.HeroEase)
	}
	if st.CelebrationActive && !s.confetti.Active() {
		s.confetti.Start(s.viewport.Current())
	}
}

// revealPanels starts each panel's entrance the first time it comes within
// the viewport shrunk by the reveal margin. Nothing is revealed behind the
// loading overlay.
func (s *Session) revealPanels() {
	if !s.lifecycle.State().Ready() {
		return
	}
	vp := s.viewport.Current()
	margin := s.card.Config.Motion.RevealMargin
	view := Rect{0, margin, vp.Width, vp.Height - 2*margin}
	rc := s.card.Config.Motion.PanelReveal
	for i, p := range s.layout.Panels {
		if i >= len(s.panelSeen) || s.panelSeen[i] {
			continue
		}
		screen := p.Rect.Translate(0, -s.scroller.ScrollY()+s.curves.PanelOffsets[i])
		if view.Height <= 0 || !screen.Intersects(view) {
			continue
		}
		s.panelSeen[i] = true
		s.panelTweens[i] = TweenReveal(&s.panels[i], rc.Offset,
			float32(rc.Duration.Seconds()), float32(rc.Delay.Seconds()), s.card.RevealEase)
	}
}

func (s *Session) retargetButton() {
	target := 1.0
	switch {
	case s.pressed:
		target = s.card.Config.Motion.ButtonPress
	case s.hover:
		target = s.card.Config.Motion.ButtonHover
	}
	s.buttonTween = TweenValue(&s.buttonScale, target, 0.15, s.card.RevealEase)
}

func (s *Session) compose() {
	motion := MotionValues{
		Hero:        s.hero,
		Panels:      s.panels,
		HintBob:     s.card.HintBob.MapLoop(s.clock),
		HeartScale:  s.card.HeartPulse.MapLoop(s.clock),
		ButtonScale: s.buttonScale,
		ButtonHover: s.hover,
	}
	var pieces []ConfettiPiece
	if s.confetti.Active() {
		pieces = s.confetti.Pieces()
	}
	s.frame = Compose(ComposeInput{
		Viewport: s.viewport.Current(),
		Progress: s.progress.Progress(),
		ScrollY:  s.scroller.ScrollY(),
		State:    s.lifecycle.State(),
		Layout:   &s.layout,
		Content:  s.card.Content,
		Palette:  s.card.Palette,
		Curves:   s.curves,
		Motion:   motion,
		Confetti: pieces,
	})
	s.frames.emit(s.frame)
}
