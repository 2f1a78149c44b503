package mochi

// Size is a viewport measurement in pixels. Both dimensions are >= 0.
type Size struct {
	Width, Height float64
}

// ViewportSource is the host side of viewport measurement: the current size
// and a notification whenever the host window is resized.
type ViewportSource interface {
	Size() Size
	OnResize(fn func(Size)) CallbackHandle
}

// ViewportTracker republishes the host viewport size. It measures once at
// construction so Current is valid before any resize arrives.
type ViewportTracker struct {
	size      Size
	changed   listeners[Size]
	sourceSub CallbackHandle
}

// NewViewportTracker measures src and subscribes to its resize notifications.
func NewViewportTracker(src ViewportSource) *ViewportTracker {
	t := &ViewportTracker{size: sanitizeSize(src.Size())}
	t.sourceSub = src.OnResize(t.set)
	return t
}

// Current returns the most recent viewport size.
func (t *ViewportTracker) Current() Size {
	return t.size
}

// OnChange registers fn to be called with the new size whenever it changes.
func (t *ViewportTracker) OnChange(fn func(Size)) CallbackHandle {
	return t.changed.add(fn)
}

// Close releases the host subscription and every OnChange callback.
func (t *ViewportTracker) Close() {
	t.sourceSub.Remove()
	t.changed.clear()
}

func (t *ViewportTracker) set(s Size) {
	s = sanitizeSize(s)
	if s == t.size {
		return
	}
	t.size = s
	debugf("viewport %gx%g", s.Width, s.Height)
	t.changed.emit(s)
}

func sanitizeSize(s Size) Size {
	return Size{Width: max(s.Width, 0), Height: max(s.Height, 0)}
}

// ManualViewport is a ViewportSource whose size is set by the caller. Hosts
// that learn the window size from a layout callback (ebiten, tcell) use it
// and call Resize when the size changes.
type ManualViewport struct {
	size    Size
	resized listeners[Size]
}

// NewManualViewport returns a source reporting the given initial size.
func NewManualViewport(width, height float64) *ManualViewport {
	return &ManualViewport{size: Size{width, height}}
}

// Size implements ViewportSource.
func (v *ManualViewport) Size() Size { return v.size }

// OnResize implements ViewportSource.
func (v *ManualViewport) OnResize(fn func(Size)) CallbackHandle {
	return v.resized.add(fn)
}

// Resize records the new size and notifies subscribers if it changed.
func (v *ManualViewport) Resize(width, height float64) {
	s := Size{width, height}
	if s == v.size {
		return
	}
	v.size = s
	v.resized.emit(s)
}
