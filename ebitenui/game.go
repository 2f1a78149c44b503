// Package ebitenui runs a mochi card in a desktop window with ebiten. It
// draws every mochi.Frame with vector shapes and Go fonts, feeds wheel, key,
// mouse and touch input into the session and hands the background asset's
// ready signal to it on the update goroutine.
package ebitenui

import (
	"errors"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/mochi"
	"github.com/phanxgames/mochi/asset"
	"github.com/phanxgames/mochi/chime"
)

// SessionFactory builds the session once the window's viewport and fonts
// exist.
type SessionFactory func(vp mochi.ViewportSource, m mochi.Measurer) (*mochi.Session, error)

// Options configures Run. Zero values use the defaults noted on each field.
type Options struct {
	Title         string // window title, default "mochi"
	Width, Height int    // initial window size, default 1280x720
	FontScale     float64

	// Load delivers the background model; nil means ready immediately.
	Load *asset.Load
	// Chime plays on celebration when non-nil.
	Chime *chime.Player

	// Script replays automated steps. With ExitOnScriptDone the window closes
	// once every step has run.
	Script           *mochi.ScriptRunner
	ExitOnScriptDone bool
	ScreenshotDir    string // default "screenshots"

	ShowFPS bool
}

func (o *Options) defaults() {
	if o.Title == "" {
		o.Title = "mochi"
	}
	if o.Width <= 0 {
		o.Width = 1280
	}
	if o.Height <= 0 {
		o.Height = 720
	}
	if o.ScreenshotDir == "" {
		o.ScreenshotDir = "screenshots"
	}
	if o.Load == nil {
		o.Load = asset.Ready()
	}
}

// Run opens the window and blocks until it is closed.
func Run(newSession SessionFactory, opts Options) error {
	opts.defaults()
	faces, err := NewFaces(opts.FontScale)
	if err != nil {
		return err
	}
	vp := mochi.NewManualViewport(float64(opts.Width), float64(opts.Height))
	s, err := newSession(vp, faces)
	if err != nil {
		return fmt.Errorf("ebitenui: new session: %w", err)
	}
	defer s.Close()

	g := newGame(s, vp, faces, opts)
	if opts.Chime != nil {
		defer opts.Chime.Watch(s.Lifecycle()).Remove()
	}

	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// game implements ebiten.Game around a mochi.Session.
type game struct {
	session  *mochi.Session
	viewport *mochi.ManualViewport
	model    *Model
	input    *input
	render   *renderer
	shots    *screenshots
	fps      *fpsWidget
	opts     Options
}

func newGame(s *mochi.Session, vp *mochi.ManualViewport, faces *Faces, opts Options) *game {
	model := NewModel()
	g := &game{
		session:  s,
		viewport: vp,
		model:    model,
		input:    &input{session: s, model: model, step: s.Card().Config.Scroll.WheelStep},
		render:   &renderer{faces: faces, model: model},
		shots:    &screenshots{dir: opts.ScreenshotDir},
		opts:     opts,
	}
	if opts.Script != nil {
		opts.Script.OnScreenshot(g.shots.request)
	}
	if opts.ShowFPS {
		g.fps = newFPSWidget()
	}
	return g
}

// Update implements ebiten.Game.
func (g *game) Update() error {
	dt := time.Second / time.Duration(ebiten.TPS())

	g.opts.Load.Deliver(g.session)
	if sc := g.opts.Script; sc != nil {
		sc.Step(g.session, windowResizer{g.viewport})
		// Wait one more tick so the last screenshot is flushed by Draw.
		if sc.Done() && g.opts.ExitOnScriptDone && len(g.shots.queue) == 0 {
			return ebiten.Termination
		}
	}
	g.input.update()
	g.model.Update(dt.Seconds())
	g.session.Update(dt)
	if g.fps != nil {
		g.fps.update(dt.Seconds(), g.session.Lifecycle().State().Phase.String())
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *game) Draw(screen *ebiten.Image) {
	f := g.session.Frame()
	g.render.draw(screen, &f)
	g.shots.flush(screen)
	if g.fps != nil {
		g.fps.draw(screen)
	}
}

// Layout implements ebiten.Game. The outside size is the card's viewport.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.viewport.Resize(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}

// windowResizer applies scripted resizes to the window as well, so the next
// Layout call agrees with them.
type windowResizer struct {
	vp *mochi.ManualViewport
}

func (r windowResizer) Resize(width, height float64) {
	ebiten.SetWindowSize(int(width), int(height))
	r.vp.Resize(width, height)
}
