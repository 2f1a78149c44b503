package mochi

import (
	"errors"
	"math/rand/v2"
	"testing"
	"time"
)

const frame = time.Second / 60

func newTestSession(t *testing.T) (*Session, *ManualViewport) {
	t.Helper()
	card, err := DefaultConfig().Compile()
	if err != nil {
		t.Fatal(err)
	}
	vp := NewManualViewport(400, 800)
	s, err := NewSession(card, vp, mono, WithRand(rand.New(rand.NewPCG(1, 2))))
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	t.Cleanup(s.Close)
	return s, vp
}

func advance(s *Session, d time.Duration) {
	for ; d > 0; d -= frame {
		s.Update(min(frame, d))
	}
}

func makeReady(t *testing.T, s *Session) {
	t.Helper()
	s.AssetReady()
	advance(s, s.Lifecycle().SettleDelay())
	if !s.Lifecycle().State().Ready() {
		t.Fatal("session not ready after the settle delay")
	}
}

func TestSessionStartsLoading(t *testing.T) {
	s, _ := newTestSession(t)
	f := s.Frame()
	if !f.Loading.Visible || f.ForegroundInteractive {
		t.Errorf("initial frame: overlay=%v interactive=%v", f.Loading.Visible, f.ForegroundInteractive)
	}
	if f.Progress != 0 || f.ScrollY != 0 {
		t.Errorf("initial progress/scroll = %g/%g", f.Progress, f.ScrollY)
	}
	advance(s, 10*time.Second)
	if !s.Frame().Loading.Visible {
		t.Error("left loading without the asset signal")
	}
}

func TestSessionReadyStartsHeroEntrance(t *testing.T) {
	s, _ := newTestSession(t)
	makeReady(t, s)
	f := s.Frame()
	if f.Loading.Visible || !f.ForegroundInteractive {
		t.Fatal("overlay still up once ready")
	}
	if f.Hero.Alpha > 0.01 {
		t.Errorf("hero alpha right after ready = %g, want ~0", f.Hero.Alpha)
	}
	advance(s, 2*time.Second)
	hero := s.Frame().Hero
	if hero.Alpha != 1 {
		t.Errorf("hero alpha after entrance = %g, want 1", hero.Alpha)
	}
	if hero.Blocks[0].Rect.Y != s.Layout().HeroBlocks[0].Rect.Y {
		t.Errorf("hero not at rest: %g vs %g", hero.Blocks[0].Rect.Y, s.Layout().HeroBlocks[0].Rect.Y)
	}
}

func TestSessionScrollDrivesCurves(t *testing.T) {
	s, _ := newTestSession(t)
	maxY := s.Scroller().MaxScroll()
	if maxY <= 0 {
		t.Fatalf("MaxScroll() = %g, want > 0", maxY)
	}
	s.ScrollBy(maxY / 2)
	f := s.Frame()
	assertNear(t, "progress", f.Progress, 0.5)
	assertNear(t, "finale offset", f.Panels[2].OffsetY, 0)
	assertNear(t, "first panel offset", f.Panels[0].OffsetY, 80)
	assertNear(t, "second panel offset", f.Panels[1].OffsetY, 50)

	s.ScrollBy(maxY)
	f = s.Frame()
	if f.Progress != 1 {
		t.Errorf("progress at bottom = %g, want 1", f.Progress)
	}
	assertNear(t, "finale offset at bottom", f.Panels[2].OffsetY, 80)
	if f.Model.Alpha != 1 {
		t.Errorf("model alpha = %g, want 1", f.Model.Alpha)
	}
}

func TestSessionHintFadesWithScroll(t *testing.T) {
	s, _ := newTestSession(t)
	makeReady(t, s)
	if a := s.Frame().Hint.Alpha; a != 1 {
		t.Errorf("hint alpha at top = %g, want 1", a)
	}
	s.ScrollBy(s.Scroller().MaxScroll() * 0.2)
	if a := s.Frame().Hint.Alpha; a != 0 {
		t.Errorf("hint alpha at 20%% = %g, want 0", a)
	}
}

func TestSessionRevealsPanelsOnce(t *testing.T) {
	s, _ := newTestSession(t)
	makeReady(t, s)
	if a := s.Frame().Panels[0].Alpha; a != 0 {
		t.Fatalf("first panel alpha before entering view = %g, want 0", a)
	}
	s.ScrollBy(400)
	advance(s, 2*time.Second)
	if a := s.Frame().Panels[0].Alpha; a != 1 {
		t.Errorf("first panel alpha after reveal = %g, want 1", a)
	}
	s.ScrollBy(-400)
	s.ScrollBy(400)
	s.Update(frame)
	if a := s.Frame().Panels[0].Alpha; a != 1 {
		t.Errorf("panel revealed again: alpha = %g", a)
	}
}

func TestSessionClickButtonCelebrates(t *testing.T) {
	s, _ := newTestSession(t)
	var frames int
	s.OnFrame(func(Frame) { frames++ })

	s.ScrollBy(s.Scroller().MaxScroll())
	b := s.Frame().Button.Rect
	if r := s.Click(b.X+2, b.Y+2); r != RegionOverlay {
		t.Errorf("click while loading hit %v, want overlay", r)
	}
	if s.Lifecycle().State().CelebrationActive {
		t.Fatal("click through the loading overlay celebrated")
	}

	makeReady(t, s)
	b = s.Frame().Button.Rect
	if r := s.Click(b.X+2, b.Y+2); r != RegionButton {
		t.Fatalf("click hit %v, want button", r)
	}
	if !s.Lifecycle().State().CelebrationActive {
		t.Fatal("button click did not celebrate")
	}
	advance(s, time.Second)
	f := s.Frame()
	if !f.Celebration.Active || len(f.Celebration.Pieces) == 0 {
		t.Errorf("celebration = active %v, %d pieces", f.Celebration.Active, len(f.Celebration.Pieces))
	}
	if f.Celebration.Size != (Size{400, 800}) {
		t.Errorf("celebration size = %v", f.Celebration.Size)
	}
	if frames == 0 {
		t.Error("OnFrame never fired")
	}
}

func TestSessionButtonHoverAndPress(t *testing.T) {
	s, _ := newTestSession(t)
	makeReady(t, s)
	s.ScrollBy(s.Scroller().MaxScroll())
	b := s.Frame().Button.Rect

	s.PointerMove(b.X+2, b.Y+2)
	advance(s, time.Second)
	assertNear(t, "hover scale", s.Frame().Button.Scale, 1.05)
	if !s.Frame().Button.Hover {
		t.Error("button not hovered")
	}

	s.PointerDown(b.X+2, b.Y+2)
	advance(s, time.Second)
	assertNear(t, "press scale", s.Frame().Button.Scale, 0.95)

	// Releasing away from the button does not celebrate.
	s.PointerUp(1, 1)
	if s.Lifecycle().State().CelebrationActive {
		t.Error("release outside the button celebrated")
	}
	advance(s, time.Second)
	assertNear(t, "rest scale", s.Frame().Button.Scale, 1)
}

func TestSessionResizeRelayouts(t *testing.T) {
	s, vp := newTestSession(t)
	s.ScrollBy(s.Scroller().MaxScroll())
	vp.Resize(1000, 600)
	if s.Viewport().Current() != (Size{1000, 600}) {
		t.Fatalf("viewport = %v", s.Viewport().Current())
	}
	if s.Layout().Viewport != (Size{1000, 600}) {
		t.Errorf("layout viewport = %v, want the new size", s.Layout().Viewport)
	}
	if got, want := s.Scroller().MaxScroll(), s.Layout().ContentHeight-600; got != want {
		t.Errorf("MaxScroll() = %g, want %g", got, want)
	}
	y := s.Scroller().ScrollY()
	if y > s.Scroller().MaxScroll() {
		t.Errorf("ScrollY() = %g beyond MaxScroll() %g", y, s.Scroller().MaxScroll())
	}
	assertNear(t, "progress after resize", s.Progress().Progress(), y/s.Scroller().MaxScroll())
	s.Update(frame)
	if s.Frame().Viewport != (Size{1000, 600}) {
		t.Errorf("frame viewport = %v", s.Frame().Viewport)
	}
}

func TestSessionRejectsDegenerateRegion(t *testing.T) {
	card, err := DefaultConfig().Compile()
	if err != nil {
		t.Fatal(err)
	}
	card.Offset = ScrollOffset{Start: Intersection{0, 0}, End: Intersection{0, 1}}
	_, err = NewSession(card, NewManualViewport(400, 800), mono)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestSessionCloseStopsEverything(t *testing.T) {
	s, vp := newTestSession(t)
	s.AssetReady()
	frames := 0
	s.OnFrame(func(Frame) { frames++ })
	s.Close()

	advance(s, 5*time.Second)
	vp.Resize(100, 100)
	s.Celebrate()
	s.ScrollBy(100)
	if frames != 0 {
		t.Errorf("frames after Close = %d, want 0", frames)
	}
	st := s.Lifecycle().State()
	if st.Ready() || st.CelebrationActive {
		t.Errorf("state changed after Close: %+v", st)
	}
	if s.Viewport().Current() != (Size{400, 800}) {
		t.Errorf("viewport followed a resize after Close")
	}
	s.Close()
}

func TestSessionResizeKeepsLifecycle(t *testing.T) {
	s, vp := newTestSession(t)
	vp.Resize(300, 500)
	if st := s.Lifecycle().State(); !st.Loading() || st.CelebrationActive {
		t.Fatalf("resize while loading changed state to %+v", st)
	}

	makeReady(t, s)
	s.Celebrate()
	before := s.Lifecycle().State()
	for _, size := range []Size{{1200, 900}, {320, 320}, {0, 0}, {640, 480}} {
		vp.Resize(size.Width, size.Height)
		s.Update(frame)
		if st := s.Lifecycle().State(); st != before {
			t.Errorf("resize to %v changed state to %+v, want %+v", size, st, before)
		}
	}
	if s.Confetti().Area() != (Size{640, 480}) {
		t.Errorf("confetti area = %v, want the last viewport", s.Confetti().Area())
	}
}
