package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeySurface_FireOrder(t *testing.T) {
	s := NewKeySurface()

	var calls []string
	s.AddKeydownListener(func(*KeyEvent) { calls = append(calls, "first") })
	s.AddKeydownListener(func(evt *KeyEvent) {
		calls = append(calls, "second")
		evt.PreventDefault()
	})

	prevented := s.Fire(&KeyEvent{Key: "x"})

	assert.True(t, prevented)
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestKeySurface_Remove(t *testing.T) {
	s := NewKeySurface()

	count := 0
	id := s.AddKeydownListener(func(*KeyEvent) { count++ })
	s.AddKeydownListener(func(*KeyEvent) { count += 10 })

	s.RemoveKeydownListener(id)
	s.RemoveKeydownListener(id)
	s.RemoveKeydownListener(ListenerID(999))

	assert.Equal(t, 1, s.ListenerCount())
	assert.False(t, s.Fire(&KeyEvent{Key: "x"}))
	assert.Equal(t, 10, count)
}

func TestKeySurface_ListenerRemovesItselfDuringFire(t *testing.T) {
	s := NewKeySurface()

	var id ListenerID
	calls := 0
	id = s.AddKeydownListener(func(*KeyEvent) {
		calls++
		s.RemoveKeydownListener(id)
	})

	s.Fire(&KeyEvent{Key: "x"})
	s.Fire(&KeyEvent{Key: "x"})

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, s.ListenerCount())
}

func TestKeyEvent_HasModifier(t *testing.T) {
	assert.False(t, (&KeyEvent{Key: "j"}).HasModifier())
	assert.True(t, (&KeyEvent{Key: "j", Alt: true}).HasModifier())
	assert.True(t, (&KeyEvent{Key: "j", Ctrl: true}).HasModifier())
	assert.True(t, (&KeyEvent{Key: "j", Meta: true}).HasModifier())
	assert.True(t, (&KeyEvent{Key: "j", Shift: true}).HasModifier())
}
