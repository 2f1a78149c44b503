// Package termui runs a mochi card in a terminal with tcell. One cell stands
// for an 8x16 pixel block, so the card lays out the same way it would in a
// narrow window.
package termui

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/mochi"
	"github.com/phanxgames/mochi/asset"
	"github.com/phanxgames/mochi/chime"
)

// Cell size in card pixels.
const (
	CellWidth  = 8
	CellHeight = 16
)

// Measurer measures text in whole cells.
var Measurer = mochi.MonoMeasurer{CellWidth: CellWidth, CellHeight: CellHeight}

const tick = 16 * time.Millisecond // ~60 FPS

// SessionFactory builds the session once the terminal size is known.
type SessionFactory func(vp mochi.ViewportSource, m mochi.Measurer) (*mochi.Session, error)

// Options configures Run.
type Options struct {
	// Load delivers the background model; nil means ready immediately.
	Load *asset.Load
	// Chime plays on celebration when non-nil.
	Chime *chime.Player
	// Script replays automated steps. Screenshot steps are skipped.
	Script *mochi.ScriptRunner
}

// Run initializes screen, runs the card until the user quits or ctx is
// done, and restores the terminal.
func Run(ctx context.Context, screen tcell.Screen, newSession SessionFactory, opts Options) error {
	if err := screen.Init(); err != nil {
		return fmt.Errorf("termui: init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	h, err := newHost(screen, newSession, opts)
	if err != nil {
		return err
	}
	defer h.close()
	return h.run(ctx)
}

// host owns the terminal side of a session.
type host struct {
	screen   tcell.Screen
	session  *mochi.Session
	viewport *mochi.ManualViewport
	opts     Options
	chime    mochi.CallbackHandle

	pressed bool
}

func newHost(screen tcell.Screen, newSession SessionFactory, opts Options) (*host, error) {
	if opts.Load == nil {
		opts.Load = asset.Ready()
	}
	w, h := screen.Size()
	vp := mochi.NewManualViewport(float64(w*CellWidth), float64(h*CellHeight))
	s, err := newSession(vp, Measurer)
	if err != nil {
		return nil, fmt.Errorf("termui: new session: %w", err)
	}
	hs := &host{screen: screen, session: s, viewport: vp, opts: opts}
	if opts.Chime != nil {
		hs.chime = opts.Chime.Watch(s.Lifecycle())
	}
	return hs, nil
}

func (h *host) close() {
	h.chime.Remove()
	h.session.Close()
}

func (h *host) run(ctx context.Context) error {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				// Screen finalized.
				return
			}
			events <- ev
		}
	}()

	h.draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !h.handleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			h.update(tick)
			h.draw()
		}
	}
}

// update advances the session by one tick of host time.
func (h *host) update(dt time.Duration) {
	h.opts.Load.Deliver(h.session)
	if h.opts.Script != nil {
		h.opts.Script.Step(h.session, h.viewport)
	}
	h.session.Update(dt)
}

func (h *host) draw() {
	f := h.session.Frame()
	drawFrame(h.screen, &f)
	h.screen.Show()
}

// handleEvent applies one terminal event. It returns false when the user
// asked to quit.
func (h *host) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return h.handleKey(ev)
	case *tcell.EventMouse:
		h.handleMouse(ev)
	case *tcell.EventResize:
		w, hh := ev.Size()
		h.viewport.Resize(float64(w*CellWidth), float64(hh*CellHeight))
		h.screen.Sync()
	}
	return true
}

func (h *host) handleKey(ev *tcell.EventKey) bool {
	s := h.session
	step := s.Card().Config.Scroll.WheelStep
	sc := s.Scroller()
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyDown:
		s.ScrollBy(step)
	case tcell.KeyUp:
		s.ScrollBy(-step)
	case tcell.KeyPgDn:
		sc.Page(1)
	case tcell.KeyPgUp:
		sc.Page(-1)
	case tcell.KeyHome:
		sc.Home()
	case tcell.KeyEnd:
		sc.End()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return false
		case 'c':
			if ev.Modifiers()&tcell.ModCtrl != 0 {
				return false
			}
		case ' ':
			sc.Page(1)
		case 'j':
			s.ScrollBy(step)
		case 'k':
			s.ScrollBy(-step)
		}
	}
	return true
}

// cellCenter converts a cell to the card pixel at its center.
func cellCenter(x, y int) (float64, float64) {
	return float64(x*CellWidth) + CellWidth/2, float64(y*CellHeight) + CellHeight/2
}

func (h *host) handleMouse(ev *tcell.EventMouse) {
	s := h.session
	px, py := cellCenter(ev.Position())
	buttons := ev.Buttons()
	step := s.Card().Config.Scroll.WheelStep

	if buttons&tcell.WheelUp != 0 {
		s.ScrollBy(-step)
	}
	if buttons&tcell.WheelDown != 0 {
		s.ScrollBy(step)
	}
	s.PointerMove(px, py)

	down := buttons&tcell.Button1 != 0
	switch {
	case down && !h.pressed:
		h.pressed = true
		s.PointerDown(px, py)
	case !down && h.pressed:
		h.pressed = false
		s.PointerUp(px, py)
	}
}
