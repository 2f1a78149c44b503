package mochi

import (
	"math"
	"strconv"
	"strings"
)

// Span is a vertical extent in the content coordinates of a scroll container.
type Span struct {
	Top, Height float64
}

// ElementGeometry reports where a tracked element sits inside its scroll
// ancestor. It is queried on every recompute, so it may change over time.
type ElementGeometry interface {
	Bounds() Span
}

// ScrollSource is the host side of scroll measurement: the current vertical
// scroll offset and a notification when it changes.
type ScrollSource interface {
	ScrollY() float64
	OnScroll(fn func(y float64)) CallbackHandle
}

// Intersection names the moment a point of the tracked element meets a point
// of the viewport. Both are fractions: 0 is the start (top) edge, 1 the end.
// Intersection{Target: 0, Container: 0} is "start start".
type Intersection struct {
	Target, Container float64
}

// ScrollOffset is the pair of intersections bounding progress 0 and 1.
type ScrollOffset struct {
	Start, End Intersection
}

// DefaultScrollOffset tracks from the element's top meeting the viewport top
// to its bottom meeting the viewport bottom.
var DefaultScrollOffset = ScrollOffset{
	Start: Intersection{Target: 0, Container: 0},
	End:   Intersection{Target: 1, Container: 1},
}

// ParseScrollOffset parses a pair such as ["start start", "end end"].
func ParseScrollOffset(pair []string) (ScrollOffset, error) {
	if len(pair) != 2 {
		return ScrollOffset{}, configErrorf("scroll.offset", "want 2 intersections, have %d", len(pair))
	}
	start, err := ParseIntersection(pair[0])
	if err != nil {
		return ScrollOffset{}, err
	}
	end, err := ParseIntersection(pair[1])
	if err != nil {
		return ScrollOffset{}, err
	}
	return ScrollOffset{Start: start, End: end}, nil
}

// ParseIntersection parses "<target> <container>" where each side is start,
// center, end, a percentage ("25%") or a fraction ("0.25").
func ParseIntersection(s string) (Intersection, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return Intersection{}, configErrorf("scroll.offset", "intersection %q: want \"<target> <container>\"", s)
	}
	target, err := parseEdge(fields[0])
	if err != nil {
		return Intersection{}, err
	}
	container, err := parseEdge(fields[1])
	if err != nil {
		return Intersection{}, err
	}
	return Intersection{Target: target, Container: container}, nil
}

func parseEdge(s string) (float64, error) {
	switch s {
	case "start":
		return 0, nil
	case "center":
		return 0.5, nil
	case "end":
		return 1, nil
	}
	scale := 1.0
	num := s
	if strings.HasSuffix(s, "%") {
		scale = 0.01
		num = strings.TrimSuffix(s, "%")
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, configErrorf("scroll.offset", "edge %q: want start, center, end, N%% or a fraction", s)
	}
	return v * scale, nil
}

// ScrollProgressTracker maps the scroll offset of a container to progress in
// [0, 1] between two edges of a tracked element. It recomputes on every scroll
// notification and on every viewport change, since edge positions move with
// the viewport height.
type ScrollProgressTracker struct {
	src      ScrollSource
	viewport *ViewportTracker
	target   ElementGeometry
	offset   ScrollOffset

	progress float64
	changed  listeners[float64]
	subs     []CallbackHandle
}

// NewScrollProgressTracker validates the tracked region and subscribes to the
// scroll source and the viewport. Coinciding start and end intersections, or a
// current geometry whose region has zero or negative length, is a
// *ConfigError.
//
// Subscribers registered on viewport before this call run before the tracker
// recomputes, so geometry that depends on the viewport must be refreshed by an
// earlier subscriber.
func NewScrollProgressTracker(src ScrollSource, viewport *ViewportTracker, target ElementGeometry, offset ScrollOffset) (*ScrollProgressTracker, error) {
	if offset.Start == offset.End {
		return nil, configErrorf("scroll.offset", "start and end edges coincide (%v)", offset.Start)
	}
	t := &ScrollProgressTracker{src: src, viewport: viewport, target: target, offset: offset}
	start, end := t.Edges()
	if !(end > start) {
		return nil, configErrorf("scroll.offset", "tracked region has length %g (start %g, end %g)", end-start, start, end)
	}
	t.progress = t.compute()
	t.subs = append(t.subs,
		src.OnScroll(func(float64) { t.Refresh() }),
		viewport.OnChange(func(Size) { t.Refresh() }),
	)
	return t, nil
}

// Edges returns the scroll offsets at which progress reaches 0 and 1 for the
// current geometry and viewport.
func (t *ScrollProgressTracker) Edges() (start, end float64) {
	b := t.target.Bounds()
	vh := t.viewport.Current().Height
	start = b.Top + b.Height*t.offset.Start.Target - vh*t.offset.Start.Container
	end = b.Top + b.Height*t.offset.End.Target - vh*t.offset.End.Container
	return start, end
}

// Progress returns the most recently computed progress.
func (t *ScrollProgressTracker) Progress() float64 {
	return t.progress
}

// Subscribe registers fn to be called with the new progress whenever it
// changes.
func (t *ScrollProgressTracker) Subscribe(fn func(progress float64)) CallbackHandle {
	return t.changed.add(fn)
}

// Refresh recomputes progress from the current measurements and notifies
// subscribers if it changed.
func (t *ScrollProgressTracker) Refresh() {
	p := t.compute()
	if p == t.progress {
		return
	}
	t.progress = p
	t.changed.emit(p)
}

// Close releases the scroll and viewport subscriptions and every subscriber.
func (t *ScrollProgressTracker) Close() {
	for _, h := range t.subs {
		h.Remove()
	}
	t.subs = nil
	t.changed.clear()
}

// compute clamps to exactly 0 before the start edge and exactly 1 after the
// end edge. A region that collapsed after construction degrades to a step at
// its start edge.
func (t *ScrollProgressTracker) compute() float64 {
	start, end := t.Edges()
	y := t.src.ScrollY()
	if y <= start {
		return 0
	}
	if y >= end {
		return 1
	}
	return clamp01((y - start) / (end - start))
}
