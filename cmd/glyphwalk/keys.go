package main

import (
	"slices"
	"sync"
	"unicode"

	"github.com/gdamore/tcell/v2"
)

var arrowCodes = map[tcell.Key]string{
	tcell.KeyUp:    "ArrowUp",
	tcell.KeyDown:  "ArrowDown",
	tcell.KeyLeft:  "ArrowLeft",
	tcell.KeyRight: "ArrowRight",
}

// keyCode translates a terminal key event into a browser-style key code
// ("KeyW", "ArrowUp"). It returns "" for keys without one.
func keyCode(ev *tcell.EventKey) string {
	if ev.Key() == tcell.KeyRune {
		r := unicode.ToUpper(ev.Rune())
		if r >= 'A' && r <= 'Z' {
			return "Key" + string(r)
		}
		return ""
	}
	return arrowCodes[ev.Key()]
}

func isQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}

// releaser turns terminal key presses, which have no matching release
// event, into a press that lasts exactly one frame. A code that was down
// in the previous frame waits one more frame, so the frame in between sees
// it up and autorepeat keeps producing fresh presses.
type releaser struct {
	mu      sync.Mutex
	pending []string

	// held is only touched by the goroutine calling frame.
	held []string
}

func (r *releaser) press(code string) {
	r.mu.Lock()
	r.pending = append(r.pending, code)
	r.mu.Unlock()
}

// frame presses the queued codes with down, runs update and releases them
// with up. Codes that cannot go down this frame stay queued.
func (r *releaser) frame(down, up func(code string), update func()) {
	r.mu.Lock()
	var pressed, later []string
	for _, code := range r.pending {
		switch {
		case slices.Contains(r.held, code), slices.Contains(pressed, code):
			if !slices.Contains(later, code) {
				later = append(later, code)
			}
		default:
			pressed = append(pressed, code)
		}
	}
	r.pending = later
	r.mu.Unlock()

	for _, code := range pressed {
		down(code)
	}
	update()
	for _, code := range pressed {
		up(code)
	}
	r.held = pressed
}
