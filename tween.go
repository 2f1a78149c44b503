package mochi

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields simultaneously after an optional
// start delay. Create one via the convenience constructors (TweenReveal,
// TweenValue) and call Update(dt) each frame; the group writes values into the
// target fields. Cancel stops it where it is.
//
// There is no global animation manager; the session calls Update itself.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	delay  float32
	Done   bool
}

// Update advances all tweens by dt seconds and writes values to the target
// fields. While the delay has not elapsed nothing is written.
func (g *TweenGroup) Update(dt float32) {
	if g == nil || g.Done {
		return
	}
	if g.delay > 0 {
		g.delay -= dt
		if g.delay > 0 {
			return
		}
		// Carry the overshoot into the tweens.
		dt = -g.delay
		g.delay = 0
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// Cancel marks the group done without writing further values.
func (g *TweenGroup) Cancel() {
	if g != nil {
		g.Done = true
	}
}

// Reveal is the pair of presentation values an entrance animation drives.
type Reveal struct {
	Alpha   float64
	OffsetY float64
}

// Shown is the resting state of a finished reveal.
var Shown = Reveal{Alpha: 1, OffsetY: 0}

// TweenReveal resets r to fully transparent, shifted down by fromOffset, and
// returns a group that fades it in and slides it to rest over duration seconds
// after delay seconds.
func TweenReveal(r *Reveal, fromOffset float64, duration, delay float32, fn ease.TweenFunc) *TweenGroup {
	r.Alpha = 0
	r.OffsetY = fromOffset
	g := &TweenGroup{count: 2, delay: delay}
	g.tweens[0] = gween.New(0, 1, duration, fn)
	g.tweens[1] = gween.New(float32(fromOffset), 0, duration, fn)
	g.fields[0] = &r.Alpha
	g.fields[1] = &r.OffsetY
	return g
}

// TweenValue animates a single field from its current value to to.
func TweenValue(v *float64, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1}
	g.tweens[0] = gween.New(float32(*v), float32(to), duration, fn)
	g.fields[0] = v
	return g
}
