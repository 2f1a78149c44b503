package mochi

// listeners is an ordered registry of callbacks for one event kind.
// Callbacks fire in registration order; mochi is single-threaded so no
// locking is done.
type listeners[T any] struct {
	entries []listener[T]
	nextID  uint32
}

type listener[T any] struct {
	id uint32
	fn func(T)
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	remove func()
}

// Remove unregisters this callback so it no longer fires. Calling Remove more
// than once, or on the zero handle, is a no-op.
func (h CallbackHandle) Remove() {
	if h.remove == nil {
		return
	}
	h.remove()
}

func (l *listeners[T]) add(fn func(T)) CallbackHandle {
	l.nextID++
	id := l.nextID
	l.entries = append(l.entries, listener[T]{id: id, fn: fn})
	return CallbackHandle{remove: func() { l.removeID(id) }}
}

// removeID drops the entry from the slice to avoid nil iteration waste.
func (l *listeners[T]) removeID(id uint32) {
	for i, e := range l.entries {
		if e.id == id {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return
		}
	}
}

// emit calls every registered callback with v. A callback removed while
// emitting does not fire for the remainder of this emit.
func (l *listeners[T]) emit(v T) {
	snapshot := append([]listener[T](nil), l.entries...)
	for _, e := range snapshot {
		if l.has(e.id) {
			e.fn(v)
		}
	}
}

func (l *listeners[T]) has(id uint32) bool {
	for _, e := range l.entries {
		if e.id == id {
			return true
		}
	}
	return false
}

func (l *listeners[T]) len() int { return len(l.entries) }

// clear drops every callback.
func (l *listeners[T]) clear() {
	l.entries = nil
}
