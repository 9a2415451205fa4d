//go:build js && wasm

// Command glyphwalk-wasm exposes the game to a web page as the global
// glyphwalk.new(elementId), which returns an object with update(time),
// key_down(code) and key_up(code). Frames are written to the element's text.
// When the element does not exist new returns an Error object instead, which
// the page is expected to throw.
package main

import (
	"syscall/js"

	"github.com/google/uuid"
	"github.com/plus3/glyphwalk/config"
	"github.com/plus3/glyphwalk/game"
	"github.com/plus3/glyphwalk/logging"
	"go.uber.org/zap"
)

const defaultElement = "game"

// elementViewport replaces the text of a DOM element each frame.
type elementViewport struct {
	element js.Value
}

func (v elementViewport) Present(text string) {
	v.element.Set("textContent", text)
}

func newGame(logger *zap.Logger) js.Func {
	return js.FuncOf(func(_ js.Value, args []js.Value) any {
		id := defaultElement
		if len(args) > 0 && args[0].Type() == js.TypeString {
			id = args[0].String()
		}

		var viewport game.Viewport
		if element := js.Global().Get("document").Call("getElementById", id); element.Truthy() {
			viewport = elementViewport{element: element}
		}

		g, err := game.New(config.Default(), viewport, logger.With(zap.String("element", id)))
		if err != nil {
			logger.Error("failed to create game", zap.Error(err))
			return js.Global().Get("Error").New(err.Error())
		}

		return js.ValueOf(map[string]any{
			"update": js.FuncOf(func(_ js.Value, args []js.Value) any {
				if len(args) > 0 {
					g.Update(args[0].Float())
				}
				return nil
			}),
			"key_down": js.FuncOf(func(_ js.Value, args []js.Value) any {
				if len(args) > 0 {
					g.KeyDown(args[0].String())
				}
				return nil
			}),
			"key_up": js.FuncOf(func(_ js.Value, args []js.Value) any {
				if len(args) > 0 {
					g.KeyUp(args[0].String())
				}
				return nil
			}),
		})
	})
}

func main() {
	logger, err := logging.New("info", "")
	if err != nil {
		panic(err)
	}
	logger = logger.With(zap.String("session", uuid.NewString()))

	js.Global().Set("glyphwalk", js.ValueOf(map[string]any{
		"new": newGame(logger),
	}))
	logger.Info("glyphwalk loaded")

	select {}
}
