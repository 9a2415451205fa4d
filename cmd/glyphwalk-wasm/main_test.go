//go:build js && wasm

package main

import (
	"syscall/js"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeDocument installs a document whose getElementById only knows the
// given elements.
func fakeDocument(t *testing.T, elements map[string]js.Value) {
	t.Helper()
	lookup := js.FuncOf(func(_ js.Value, args []js.Value) any {
		if element, ok := elements[args[0].String()]; ok {
			return element
		}
		return js.Null()
	})
	t.Cleanup(lookup.Release)

	previous := js.Global().Get("document")
	js.Global().Set("document", js.ValueOf(map[string]any{"getElementById": lookup}))
	t.Cleanup(func() { js.Global().Set("document", previous) })
}

func TestNewWithoutElementReturnsError(t *testing.T) {
	fakeDocument(t, nil)

	result := newGame(zap.NewNop()).Invoke("missing")

	require.True(t, result.InstanceOf(js.Global().Get("Error")))
	assert.Contains(t, result.Get("message").String(), "no viewport")
}

func TestNewRendersIntoElement(t *testing.T) {
	element := js.ValueOf(map[string]any{"textContent": ""})
	fakeDocument(t, map[string]js.Value{"game": element})

	handle := newGame(zap.NewNop()).Invoke()
	require.False(t, handle.InstanceOf(js.Global().Get("Error")))

	handle.Call("key_down", "KeyD")
	handle.Call("update", 0)

	text := element.Get("textContent").String()
	assert.Len(t, text, 20*21)
	assert.Equal(t, '@', rune(text[10*21+11]), "player moved one cell right")
}
