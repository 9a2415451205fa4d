package main

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func TestKeyCode(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want string
	}{
		{"lower rune", tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone), "KeyW"},
		{"upper rune", tcell.NewEventKey(tcell.KeyRune, 'D', tcell.ModShift), "KeyD"},
		{"digit", tcell.NewEventKey(tcell.KeyRune, '7', tcell.ModNone), ""},
		{"arrow", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), "ArrowLeft"},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, keyCode(tt.ev))
		})
	}
}

func TestIsQuit(t *testing.T) {
	assert.True(t, isQuit(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	assert.True(t, isQuit(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.False(t, isQuit(tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone)))
}

type keyLog struct {
	down  []string
	up    []string
	state map[string]bool
}

func newKeyLog() *keyLog {
	return &keyLog{state: map[string]bool{}}
}

func (l *keyLog) frame(r *releaser) []string {
	var seen []string
	r.frame(
		func(code string) { l.down = append(l.down, code); l.state[code] = true },
		func(code string) { l.up = append(l.up, code); l.state[code] = false },
		func() {
			for code, down := range l.state {
				if down {
					seen = append(seen, code)
				}
			}
		},
	)
	return seen
}

func TestReleaserHoldsForOneFrame(t *testing.T) {
	r := &releaser{}
	log := newKeyLog()

	r.press("KeyW")
	r.press("KeyD")
	assert.ElementsMatch(t, []string{"KeyW", "KeyD"}, log.frame(r))
	assert.ElementsMatch(t, []string{"KeyW", "KeyD"}, log.up)

	assert.Empty(t, log.frame(r))
}

func TestReleaserRepeatWaitsAFrame(t *testing.T) {
	r := &releaser{}
	log := newKeyLog()

	r.press("KeyW")
	assert.Equal(t, []string{"KeyW"}, log.frame(r))

	// Autorepeat: KeyW arrives again, twice, before the next frame.
	r.press("KeyW")
	r.press("KeyW")
	assert.Empty(t, log.frame(r), "key is up for one frame")
	assert.Equal(t, []string{"KeyW"}, log.frame(r), "then pressed again")
	assert.Empty(t, log.frame(r))
	assert.Equal(t, []string{"KeyW", "KeyW"}, log.down)
}
