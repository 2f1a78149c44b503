package mochi

import (
	"math"
	"sort"

	"github.com/tanema/gween/ease"
)

// CurveDefinition is the declarative form of a Curve, as it appears in a card
// document. Domain and Range are paired breakpoints; Ease names the easing
// applied inside every segment ("" or "linear" for straight interpolation).
type CurveDefinition struct {
	Domain []float64 `yaml:"domain"`
	Range  []float64 `yaml:"range"`
	Ease   string    `yaml:"ease,omitempty"`
}

// Curve is an immutable piecewise mapping from an input domain to an output
// range. Inputs outside the domain clamp flat to the first or last range value.
type Curve struct {
	domain []float64
	values []float64
	ease   ease.TweenFunc // nil means linear, evaluated in float64
}

// NewCurve validates the breakpoints and returns a Curve. Domain must be
// strictly increasing and both slices must hold the same number of values,
// at least two. fn eases every segment; pass nil for linear.
func NewCurve(domain, values []float64, fn ease.TweenFunc) (*Curve, error) {
	if len(domain) != len(values) {
		return nil, configErrorf("curve", "domain has %d breakpoints, range has %d", len(domain), len(values))
	}
	if len(domain) < 2 {
		return nil, configErrorf("curve", "need at least 2 breakpoints, have %d", len(domain))
	}
	for i, d := range domain {
		if math.IsNaN(d) || math.IsInf(d, 0) {
			return nil, configErrorf("curve", "domain[%d] is not finite", i)
		}
		if math.IsNaN(values[i]) || math.IsInf(values[i], 0) {
			return nil, configErrorf("curve", "range[%d] is not finite", i)
		}
		if i > 0 && d <= domain[i-1] {
			return nil, configErrorf("curve", "domain not strictly increasing at index %d (%g after %g)", i, d, domain[i-1])
		}
	}
	return &Curve{
		domain: append([]float64(nil), domain...),
		values: append([]float64(nil), values...),
		ease:   fn,
	}, nil
}

// NewProgressCurve is NewCurve for curves driven by scroll progress: every
// domain breakpoint must also lie in [0, 1].
func NewProgressCurve(domain, values []float64, fn ease.TweenFunc) (*Curve, error) {
	for i, d := range domain {
		if d < 0 || d > 1 {
			return nil, configErrorf("curve", "progress domain[%d] = %g outside [0, 1]", i, d)
		}
	}
	return NewCurve(domain, values, fn)
}

// Build turns the definition into a Curve. progress restricts the domain to
// [0, 1].
func (d CurveDefinition) Build(progress bool) (*Curve, error) {
	fn, err := LookupEase(d.Ease)
	if err != nil {
		return nil, err
	}
	if progress {
		return NewProgressCurve(d.Domain, d.Range, fn)
	}
	return NewCurve(d.Domain, d.Range, fn)
}

// MustCurve is NewCurve that panics on a bad definition. Only for package
// level literals known to be valid.
func MustCurve(domain, values []float64, fn ease.TweenFunc) *Curve {
	c, err := NewCurve(domain, values, fn)
	if err != nil {
		panic(err)
	}
	return c
}

// Map evaluates curve at input. It is Curve.Map as a free function.
func Map(curve *Curve, input float64) float64 {
	return curve.Map(input)
}

// Map interpolates between the two breakpoints bracketing input. Below the
// first breakpoint it returns the first range value, above the last the last
// one; there is no extrapolation. NaN maps to the first range value.
func (c *Curve) Map(input float64) float64 {
	n := len(c.domain)
	if !(input > c.domain[0]) {
		return c.values[0]
	}
	if input >= c.domain[n-1] {
		return c.values[n-1]
	}
	i := sort.SearchFloat64s(c.domain, input)
	if c.domain[i] == input {
		return c.values[i]
	}
	d0, d1 := c.domain[i-1], c.domain[i]
	v0, v1 := c.values[i-1], c.values[i]
	if c.ease == nil {
		return lerp(v0, v1, (input-d0)/(d1-d0))
	}
	return float64(c.ease(float32(input-d0), float32(v0), float32(v1-v0), float32(d1-d0)))
}

// MapLoop evaluates a time-based curve that repeats forever: t is wrapped
// into [first, last) of the domain before mapping.
func (c *Curve) MapLoop(t float64) float64 {
	start := c.domain[0]
	span := c.domain[len(c.domain)-1] - start
	w := math.Mod(t-start, span)
	if w < 0 {
		w += span
	}
	return c.Map(start + w)
}

// Span returns the first and last domain breakpoints.
func (c *Curve) Span() (start, end float64) {
	return c.domain[0], c.domain[len(c.domain)-1]
}

// Bounds returns the smallest and largest range values. For linear curves
// every mapped value lies within them.
func (c *Curve) Bounds() (lo, hi float64) {
	lo, hi = c.values[0], c.values[0]
	for _, v := range c.values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}

// Breakpoints returns copies of the domain and range slices.
func (c *Curve) Breakpoints() (domain, values []float64) {
	return append([]float64(nil), c.domain...), append([]float64(nil), c.values...)
}

var easeByName = map[string]ease.TweenFunc{
	"inQuad":     ease.InQuad,
	"outQuad":    ease.OutQuad,
	"inOutQuad":  ease.InOutQuad,
	"inCubic":    ease.InCubic,
	"outCubic":   ease.OutCubic,
	"inOutCubic": ease.InOutCubic,
	"inSine":     ease.InSine,
	"outSine":    ease.OutSine,
	"inOutSine":  ease.InOutSine,
	"outBack":    ease.OutBack,
	"outBounce":  ease.OutBounce,
	"outElastic": ease.OutElastic,
}

// LookupEase resolves an ease name used in card documents. "" and "linear"
// return nil, which curves treat as exact linear interpolation.
func LookupEase(name string) (ease.TweenFunc, error) {
	if name == "" || name == "linear" {
		return nil, nil
	}
	fn, ok := easeByName[name]
	if !ok {
		return nil, configErrorf("ease", "unknown ease %q", name)
	}
	return fn, nil
}
