package mochi

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestTweenRevealReachesRest(t *testing.T) {
	var r Reveal
	g := TweenReveal(&r, 50, 0.8, 0, ease.OutQuad)

	if r.Alpha != 0 || r.OffsetY != 50 {
		t.Fatalf("start = %+v, want alpha 0 offset 50", r)
	}

	// Exact halves to avoid float32 accumulation drift.
	g.Update(0.4)
	g.Update(0.4)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	if math.Abs(r.Alpha-1) > 0.01 {
		t.Errorf("Alpha = %f, want ~1", r.Alpha)
	}
	if math.Abs(r.OffsetY) > 0.5 {
		t.Errorf("OffsetY = %f, want ~0", r.OffsetY)
	}
}

func TestTweenRevealWaitsForDelay(t *testing.T) {
	var r Reveal
	g := TweenReveal(&r, 20, 1.0, 0.5, ease.Linear)

	g.Update(0.25)
	if r.Alpha != 0 || r.OffsetY != 20 {
		t.Errorf("during delay = %+v, want untouched", r)
	}

	// 0.25 more finishes the delay exactly; the next 0.5 is half the tween.
	g.Update(0.25)
	g.Update(0.5)
	if math.Abs(r.Alpha-0.5) > 0.05 {
		t.Errorf("Alpha = %f, want ~0.5 halfway", r.Alpha)
	}
	if math.Abs(r.OffsetY-10) > 0.5 {
		t.Errorf("OffsetY = %f, want ~10 halfway", r.OffsetY)
	}
}

func TestTweenDelayOvershootCarriesOver(t *testing.T) {
	var r Reveal
	g := TweenReveal(&r, 0, 1.0, 0.5, ease.Linear)

	g.Update(1.0) // 0.5 of delay, 0.5 of tween
	if math.Abs(r.Alpha-0.5) > 0.05 {
		t.Errorf("Alpha = %f, want ~0.5", r.Alpha)
	}
}

func TestTweenValueInterpolates(t *testing.T) {
	v := 1.0
	g := TweenValue(&v, 1.05, 0.2, ease.Linear)

	g.Update(0.1)
	if g.Done {
		t.Fatal("should not be done at halfway")
	}
	if math.Abs(v-1.025) > 0.005 {
		t.Errorf("v = %f, want ~1.025 at halfway", v)
	}

	g.Update(0.1)
	if !g.Done {
		t.Fatal("should be done after full duration")
	}
	if math.Abs(v-1.05) > 0.001 {
		t.Errorf("v = %f, want ~1.05", v)
	}
}

func TestTweenGroupDoneFlagTransition(t *testing.T) {
	v := 0.0
	g := TweenValue(&v, 50, 0.5, ease.Linear)

	if g.Done {
		t.Fatal("should not be Done at start")
	}
	g.Update(0.25)
	if g.Done {
		t.Fatal("should not be Done partway through")
	}
	g.Update(0.25)
	if !g.Done {
		t.Fatal("should be Done after full duration")
	}

	// Update after done is a no-op, not a panic.
	g.Update(0.1)
	if !g.Done {
		t.Fatal("should remain Done")
	}
}

func TestTweenGroupCancelFreezesValue(t *testing.T) {
	v := 0.0
	g := TweenValue(&v, 100, 1.0, ease.Linear)
	g.Update(0.5)
	saved := v

	g.Cancel()
	g.Update(0.5)
	if v != saved {
		t.Errorf("v = %f after Cancel, want %f", v, saved)
	}
}

func TestTweenNilGroupIsNoOp(t *testing.T) {
	var g *TweenGroup
	g.Update(0.1)
	g.Cancel()
}

func TestTweenEasingFunctionsProduceDifferentCurves(t *testing.T) {
	l, c := 0.0, 0.0
	gL := TweenValue(&l, 100, 1.0, ease.Linear)
	gC := TweenValue(&c, 100, 1.0, ease.OutCubic)

	gL.Update(0.5)
	gC.Update(0.5)

	if math.Abs(l-c) < 1.0 {
		t.Errorf("easing curves should differ at midpoint: linear=%f cubic=%f", l, c)
	}
}

func TestTweenGroupUpdateZeroAlloc(t *testing.T) {
	v := 0.0
	g := TweenValue(&v, 100, 1.0, ease.Linear)
	g.Update(0.01)

	result := testing.AllocsPerRun(100, func() {
		g.Update(0.001)
	})
	if result > 0 {
		t.Errorf("TweenGroup.Update allocated %f times per run, want 0", result)
	}
}
