package main

import (
	"github.com/gdamore/tcell/v2"
)

const helpLine = "wasd to move, q to quit"

// screenViewport draws each frame at the top-left of a tcell screen.
type screenViewport struct {
	screen tcell.Screen
	style  tcell.Style
}

func newScreenViewport(screen tcell.Screen) *screenViewport {
	return &screenViewport{
		screen: screen,
		style:  tcell.StyleDefault.Foreground(tcell.ColorGreen),
	}
}

func (v *screenViewport) Present(text string) {
	v.screen.Clear()

	x, y := 0, 0
	for _, r := range text {
		if r == '\n' {
			x = 0
			y++
			continue
		}
		v.screen.SetContent(x, y, r, nil, v.style)
		x++
	}

	help := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for i, r := range []rune(helpLine) {
		v.screen.SetContent(i, y+1, r, nil, help)
	}

	v.screen.Show()
}
