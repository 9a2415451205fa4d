// Package ebiten provides Dear ImGui backend integration for the Ebiten game engine.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/glyphwalk/ecs"
	"github.com/plus3/glyphwalk/ecs/debugui"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
// Use this to integrate Dear ImGui rendering into Ebiten game loops.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// Overlay draws the inspector windows on top of an ebiten game. The host
// calls Update, Draw and Layout from its own ebiten callbacks.
type Overlay struct {
	backend   *ecs.Singleton[ImguiBackend]
	input     *ecs.Singleton[debugui.ImguiInputState]
	scheduler *ecs.Scheduler
}

// NewOverlay opens an ebiten window of the given size with an ImGui context
// and the inspector's windows spawned into a debug world.
func NewOverlay(title string, width, height int, inspector *debugui.Inspector) *Overlay {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")

	storage, scheduler := debugui.NewWorld(inspector)
	return &Overlay{
		backend:   ecs.NewSingleton(storage, ImguiBackend{EbitenBackend: backend}),
		input:     ecs.NewSingleton[debugui.ImguiInputState](storage),
		scheduler: scheduler,
	}
}

// Update builds one ImGui frame.
func (o *Overlay) Update(dt float64) {
	backend := o.backend.Get()
	backend.BeginFrame()
	o.scheduler.Once(dt)
	backend.EndFrame()
}

func (o *Overlay) Draw(screen *ebiten.Image) {
	o.backend.Get().Draw(screen)
}

func (o *Overlay) Layout(outsideWidth, outsideHeight int) {
	o.backend.Get().Layout(outsideWidth, outsideHeight)
}

// WantsKeyboard reports whether ImGui took the keyboard in the last frame,
// for example while a text field has focus.
func (o *Overlay) WantsKeyboard() bool {
	return o.input.Get().WantCaptureKeyboard
}
