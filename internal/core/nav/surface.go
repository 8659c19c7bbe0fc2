package nav

import "sync"

// KeyEvent is a single key press delivered to keydown listeners.
type KeyEvent struct {
	Key   string
	Alt   bool
	Ctrl  bool
	Meta  bool
	Shift bool

	defaultPrevented bool
}

// PreventDefault marks the event as consumed so the surface does not apply
// its default handling.
func (e *KeyEvent) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether a listener consumed the event.
func (e *KeyEvent) DefaultPrevented() bool {
	return e.defaultPrevented
}

// HasModifier reports whether any of alt, ctrl, meta or shift is held.
func (e *KeyEvent) HasModifier() bool {
	return e.Alt || e.Ctrl || e.Meta || e.Shift
}

// KeydownListener handles key presses.
type KeydownListener func(*KeyEvent)

// ListenerID identifies a registered listener.
type ListenerID uint64

// Surface is where keydown listeners are registered.
type Surface interface {
	AddKeydownListener(KeydownListener) ListenerID
	RemoveKeydownListener(ListenerID)
}

// KeySurface is an in-process Surface. Fire delivers an event to every
// listener inline, in registration order. It is safe to use from the Bubble
// Tea Update loop.
type KeySurface struct {
	mu        sync.Mutex
	nextID    ListenerID
	listeners []registeredListener
}

type registeredListener struct {
	id ListenerID
	fn KeydownListener
}

// NewKeySurface creates an empty surface.
func NewKeySurface() *KeySurface {
	return &KeySurface{}
}

// AddKeydownListener registers fn and returns its id.
func (s *KeySurface) AddKeydownListener(fn KeydownListener) ListenerID {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.listeners = append(s.listeners, registeredListener{id: s.nextID, fn: fn})
	return s.nextID
}

// RemoveKeydownListener unregisters a listener. Unknown ids are ignored.
func (s *KeySurface) RemoveKeydownListener(id ListenerID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, l := range s.listeners {
		if l.id == id {
			s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
			return
		}
	}
}

// ListenerCount returns the number of registered listeners.
func (s *KeySurface) ListenerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners)
}

// Fire delivers evt to all listeners and reports whether any of them
// prevented the default action.
func (s *KeySurface) Fire(evt *KeyEvent) bool {
	s.mu.Lock()
	listeners := make([]registeredListener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, l := range listeners {
		l.fn(evt)
	}
	return evt.DefaultPrevented()
}
