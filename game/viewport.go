package game

import "sync"

// Viewport receives the rendered text once per frame. Each call replaces
// everything shown before.
type Viewport interface {
	Present(text string)
}

// ViewportFunc adapts a function to Viewport.
type ViewportFunc func(text string)

func (f ViewportFunc) Present(text string) { f(text) }

// TextViewport keeps the latest frame for hosts that draw on their own
// schedule, such as a window's draw callback.
type TextViewport struct {
	mu     sync.Mutex
	text   string
	frames int
}

func (v *TextViewport) Present(text string) {
	v.mu.Lock()
	v.text = text
	v.frames++
	v.mu.Unlock()
}

// Text returns the latest frame.
func (v *TextViewport) Text() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.text
}

// Frames returns how many frames have been presented.
func (v *TextViewport) Frames() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.frames
}
