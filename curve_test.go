package mochi

import (
	"errors"
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

const epsilon = 1e-6

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %f, want %f", name, got, want)
	}
}

func TestCurveMapsBreakpointsExactly(t *testing.T) {
	c := MustCurve([]float64{0.2, 0.5, 0.8}, []float64{0, 100, 40}, nil)
	for i, d := range []float64{0.2, 0.5, 0.8} {
		want := []float64{0, 100, 40}[i]
		if got := c.Map(d); got != want {
			t.Errorf("Map(%g) = %g, want %g", d, got, want)
		}
	}
}

func TestCurveClampsOutsideDomain(t *testing.T) {
	c := MustCurve([]float64{0.2, 0.8}, []float64{0, 100}, nil)
	for _, in := range []float64{-5, 0, 0.1, 0.2} {
		if got := c.Map(in); got != 0 {
			t.Errorf("Map(%g) = %g, want 0", in, got)
		}
	}
	for _, in := range []float64{0.8, 0.9, 1, 42} {
		if got := c.Map(in); got != 100 {
			t.Errorf("Map(%g) = %g, want 100", in, got)
		}
	}
	if got := c.Map(math.Inf(1)); got != 100 {
		t.Errorf("Map(+Inf) = %g, want 100", got)
	}
	if got := c.Map(math.Inf(-1)); got != 0 {
		t.Errorf("Map(-Inf) = %g, want 0", got)
	}
	if got := c.Map(math.NaN()); got != 0 {
		t.Errorf("Map(NaN) = %g, want 0", got)
	}
}

func TestCurveLinearInterpolation(t *testing.T) {
	c := MustCurve([]float64{0.2, 0.8}, []float64{0, 100}, nil)
	assertNear(t, "Map(0.5)", c.Map(0.5), 50)
	assertNear(t, "Map(0.35)", c.Map(0.35), 25)
	assertNear(t, "Map free function", Map(c, 0.65), 75)
}

func TestCurveParallaxOffset(t *testing.T) {
	c := MustCurve([]float64{0, 0.5}, []float64{0, 80}, nil)
	for _, tt := range []struct{ in, want float64 }{{0, 0}, {0.25, 40}, {0.5, 80}, {1, 80}} {
		assertNear(t, "Map", c.Map(tt.in), tt.want)
	}
}

func TestCurveContinuousAtBreakpoints(t *testing.T) {
	c := MustCurve([]float64{0.1, 0.4, 0.7, 0.9}, []float64{3, -2, 8, 8}, nil)
	domain, values := c.Breakpoints()
	for i, d := range domain {
		for _, h := range []float64{1e-3, 1e-6, 1e-9} {
			left, right := c.Map(d-h), c.Map(d+h)
			if math.Abs(left-values[i]) > 100*h || math.Abs(right-values[i]) > 100*h {
				t.Errorf("Map near %g (h=%g): left %g right %g, want -> %g", d, h, left, right, values[i])
			}
		}
	}
}

func TestCurveHintOpacityFadesOut(t *testing.T) {
	c := MustCurve([]float64{0, 0.1}, []float64{1, 0}, nil)
	assertNear(t, "Map(0)", c.Map(0), 1)
	assertNear(t, "Map(0.05)", c.Map(0.05), 0.5)
	assertNear(t, "Map(0.1)", c.Map(0.1), 0)
	assertNear(t, "Map(0.6)", c.Map(0.6), 0)
}

func TestCurveConstantRange(t *testing.T) {
	c := MustCurve([]float64{0, 1}, []float64{1, 1}, nil)
	for _, p := range []float64{-1, 0, 0.3, 0.999, 1, 2} {
		if got := c.Map(p); got != 1 {
			t.Errorf("Map(%g) = %g, want 1", p, got)
		}
	}
}

func TestCurveLinearStaysWithinRangeBounds(t *testing.T) {
	c := MustCurve([]float64{0, 0.3, 0.6, 1}, []float64{10, -20, 35, 5}, nil)
	lo, hi := c.Bounds()
	if lo != -20 || hi != 35 {
		t.Fatalf("Bounds() = (%g, %g), want (-20, 35)", lo, hi)
	}
	for i := 0; i <= 1000; i++ {
		p := float64(i)/1000*1.4 - 0.2
		v := c.Map(p)
		if v < lo || v > hi {
			t.Fatalf("Map(%g) = %g outside [%g, %g]", p, v, lo, hi)
		}
	}
}

func TestCurveMonotoneSegmentsStayMonotone(t *testing.T) {
	c := MustCurve([]float64{0, 0.5, 1}, []float64{0, 80, 100}, nil)
	prev := c.Map(0)
	for i := 1; i <= 200; i++ {
		v := c.Map(float64(i) / 200)
		if v < prev {
			t.Fatalf("Map not monotone at step %d: %g < %g", i, v, prev)
		}
		prev = v
	}
}

func TestCurveEasedSegment(t *testing.T) {
	c := MustCurve([]float64{0, 1}, []float64{0, 100}, ease.InQuad)
	assertNear(t, "Map(0.5)", c.Map(0.5), 25)
	if got := c.Map(1); got != 100 {
		t.Errorf("Map(1) = %g, want 100", got)
	}
	if got := c.Map(0); got != 0 {
		t.Errorf("Map(0) = %g, want 0", got)
	}
}

func TestNewCurveRejectsBadDefinitions(t *testing.T) {
	tests := []struct {
		name   string
		domain []float64
		values []float64
	}{
		{"length mismatch", []float64{0, 1}, []float64{0}},
		{"too short", []float64{0}, []float64{0}},
		{"empty", nil, nil},
		{"not increasing", []float64{0, 0.5, 0.5}, []float64{0, 1, 2}},
		{"decreasing", []float64{1, 0}, []float64{0, 1}},
		{"nan domain", []float64{0, math.NaN()}, []float64{0, 1}},
		{"inf range", []float64{0, 1}, []float64{0, math.Inf(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCurve(tt.domain, tt.values, nil)
			if err == nil {
				t.Fatalf("NewCurve = %v, want error", c)
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error %v does not match ErrInvalidConfig", err)
			}
			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Errorf("error %T is not *ConfigError", err)
			}
		})
	}
}

func TestNewProgressCurveRejectsDomainOutsideUnit(t *testing.T) {
	if _, err := NewProgressCurve([]float64{0, 1.5}, []float64{0, 1}, nil); err == nil {
		t.Error("expected error for domain past 1")
	}
	if _, err := NewProgressCurve([]float64{-0.1, 1}, []float64{0, 1}, nil); err == nil {
		t.Error("expected error for negative domain")
	}
	if _, err := NewProgressCurve([]float64{0, 1}, []float64{0, 1}, nil); err != nil {
		t.Errorf("unit domain: %v", err)
	}
}

func TestNewCurveCopiesInput(t *testing.T) {
	domain := []float64{0, 1}
	values := []float64{0, 10}
	c := MustCurve(domain, values, nil)
	domain[1] = 2
	values[1] = 99
	assertNear(t, "Map(1)", c.Map(1), 10)
	d, v := c.Breakpoints()
	d[0] = -1
	v[0] = -1
	assertNear(t, "Map(0)", c.Map(0), 0)
}

func TestMustCurvePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustCurve did not panic")
		}
	}()
	MustCurve([]float64{1, 0}, []float64{0, 1}, nil)
}

func TestCurveMapLoopWraps(t *testing.T) {
	c := MustCurve([]float64{0, 1, 2}, []float64{0, 10, 0}, nil)
	assertNear(t, "MapLoop(0.5)", c.MapLoop(0.5), 5)
	assertNear(t, "MapLoop(2.5)", c.MapLoop(2.5), 5)
	assertNear(t, "MapLoop(5)", c.MapLoop(5), 10)
	assertNear(t, "MapLoop(-0.5)", c.MapLoop(-0.5), 5)
	start, end := c.Span()
	if start != 0 || end != 2 {
		t.Errorf("Span() = (%g, %g), want (0, 2)", start, end)
	}
}

func TestCurveDefinitionBuild(t *testing.T) {
	def := CurveDefinition{Domain: []float64{0, 1}, Range: []float64{0, 1}, Ease: "outCubic"}
	c, err := def.Build(true)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := c.Map(0.5); got <= 0.5 {
		t.Errorf("outCubic Map(0.5) = %g, want > 0.5", got)
	}

	def.Ease = "wobble"
	if _, err := def.Build(true); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("unknown ease: err = %v, want ErrInvalidConfig", err)
	}

	timed := CurveDefinition{Domain: []float64{0, 0.75, 1.5}, Range: []float64{1, 1.2, 1}}
	if _, err := timed.Build(true); err == nil {
		t.Error("progress build accepted domain past 1")
	}
	if _, err := timed.Build(false); err != nil {
		t.Errorf("time build: %v", err)
	}
}

func TestLookupEase(t *testing.T) {
	for _, name := range []string{"", "linear"} {
		fn, err := LookupEase(name)
		if err != nil || fn != nil {
			t.Errorf("LookupEase(%q): fn set %v, err %v; want nil, nil", name, fn != nil, err)
		}
	}
	for name := range easeByName {
		if fn, err := LookupEase(name); err != nil || fn == nil {
			t.Errorf("LookupEase(%q) failed: %v", name, err)
		}
	}
}
