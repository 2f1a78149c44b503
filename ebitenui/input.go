package ebitenui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/mochi"
)

// scrollKey is what a keyboard key does to the scroll offset.
type scrollKey struct {
	lines float64 // multiples of the wheel step
	pages float64 // multiples of the viewport height
	home  bool
	end   bool
}

var scrollKeys = map[ebiten.Key]scrollKey{
	ebiten.KeyArrowDown: {lines: 1},
	ebiten.KeyArrowUp:   {lines: -1},
	ebiten.KeyPageDown:  {pages: 1},
	ebiten.KeyPageUp:    {pages: -1},
	ebiten.KeySpace:     {pages: 1},
	ebiten.KeyHome:      {home: true},
	ebiten.KeyEnd:       {end: true},
}

// apply performs k on s, with step the wheel step in pixels. Space with shift
// held pages up.
func (k scrollKey) apply(s *mochi.Session, step float64, shift bool) {
	sc := s.Scroller()
	switch {
	case k.home:
		sc.Home()
	case k.end:
		sc.End()
	case k.pages != 0:
		pages := k.pages
		if shift {
			pages = -pages
		}
		sc.Page(pages)
	default:
		s.ScrollBy(k.lines * step)
	}
}

// pointer tracks the single pointer (mouse or first touch) that drives the
// session. A press on the model drags it; a touch press anywhere else drags
// the content.
type pointer struct {
	touch    ebiten.TouchID
	touching bool
	mouse    bool
	x, y     float64
	scrolls  bool
}

// input polls ebiten's input state once per tick and forwards it.
type input struct {
	session *mochi.Session
	model   *Model
	step    float64
	ptr     pointer
	touches []ebiten.TouchID
}

func (in *input) update() {
	s := in.session

	if _, wy := ebiten.Wheel(); wy != 0 {
		s.ScrollBy(-wy * in.step)
	}
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	for key, k := range scrollKeys {
		if inpututil.IsKeyJustPressed(key) {
			k.apply(s, in.step, shift && key == ebiten.KeySpace)
		}
	}

	in.updateMouse()
	in.updateTouch()
}

func (in *input) updateMouse() {
	if in.ptr.touching {
		return
	}
	cx, cy := ebiten.CursorPosition()
	x, y := float64(cx), float64(cy)
	if x != in.ptr.x || y != in.ptr.y {
		in.session.PointerMove(x, y)
		if in.model.Dragging() {
			in.model.DragTo(x, y)
		}
	}
	in.ptr.x, in.ptr.y = x, y

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		in.ptr.mouse = true
		in.press(x, y)
	}
	if in.ptr.mouse && inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		in.ptr.mouse = false
		in.release(x, y)
	}
}

func (in *input) updateTouch() {
	if in.ptr.mouse {
		return
	}
	if !in.ptr.touching {
		in.touches = inpututil.AppendJustPressedTouchIDs(in.touches[:0])
		if len(in.touches) == 0 {
			return
		}
		id := in.touches[0]
		tx, ty := ebiten.TouchPosition(id)
		in.ptr.touch, in.ptr.touching = id, true
		in.ptr.x, in.ptr.y = float64(tx), float64(ty)
		in.ptr.scrolls = in.press(in.ptr.x, in.ptr.y) != mochi.RegionModel
		return
	}

	id := in.ptr.touch
	if inpututil.IsTouchJustReleased(id) {
		in.ptr.touching = false
		in.release(in.ptr.x, in.ptr.y)
		return
	}
	tx, ty := ebiten.TouchPosition(id)
	x, y := float64(tx), float64(ty)
	if in.ptr.scrolls {
		if dy := in.ptr.y - y; dy != 0 {
			in.session.ScrollBy(dy)
		}
	} else {
		in.model.DragTo(x, y)
	}
	in.ptr.x, in.ptr.y = x, y
}

func (in *input) press(x, y float64) mochi.Region {
	r := in.session.PointerDown(x, y)
	if r == mochi.RegionModel {
		in.model.BeginDrag(x, y)
	}
	return r
}

func (in *input) release(x, y float64) {
	in.model.EndDrag()
	in.session.PointerUp(x, y)
}
