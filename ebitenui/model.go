package ebitenui

import "math"

// Model is the placeholder for the background 3D scene: a pair of rabbits
// the viewer can spin by dragging sideways and resize by dragging up and
// down.
type Model struct {
	Angle float64 // radians
	Scale float64

	dragging     bool
	lastX, lastY float64
}

const (
	modelMinScale  = 0.4
	modelMaxScale  = 2.5
	modelSpinPerPx = 0.01
	modelZoomPerPx = 0.004
	modelIdleSpin  = 0.15 // radians per second
)

// NewModel returns a model at rest.
func NewModel() *Model {
	return &Model{Scale: 1}
}

// BeginDrag starts a drag at (x, y).
func (m *Model) BeginDrag(x, y float64) {
	m.dragging = true
	m.lastX, m.lastY = x, y
}

// DragTo continues a drag. Dragging right spins clockwise; dragging down
// makes the rabbits smaller.
func (m *Model) DragTo(x, y float64) {
	if !m.dragging {
		return
	}
	dx, dy := x-m.lastX, y-m.lastY
	m.lastX, m.lastY = x, y
	m.Angle = math.Mod(m.Angle+dx*modelSpinPerPx, 2*math.Pi)
	m.Scale = min(max(m.Scale*(1-dy*modelZoomPerPx), modelMinScale), modelMaxScale)
}

// EndDrag finishes a drag.
func (m *Model) EndDrag() {
	m.dragging = false
}

// Dragging reports whether a drag is in progress.
func (m *Model) Dragging() bool {
	return m.dragging
}

// Update idles the rabbits when nobody is holding them.
func (m *Model) Update(dt float64) {
	if m.dragging {
		return
	}
	m.Angle = math.Mod(m.Angle+modelIdleSpin*dt, 2*math.Pi)
}
