// Package debugui renders Dear ImGui inspection windows for an ECS world.
//
// The windows live in their own small ECS world: each one is an ImguiItem
// entity whose Render function the ImguiSystem runs once per frame. The
// world being inspected is a separate Storage passed to NewInspector.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/glyphwalk/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks Dear ImGui's input capture state as a singleton component.
// Use this to determine if ImGui is consuming mouse or keyboard input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem queries all ImguiItem components and defers their render functions.
// It also updates the ImguiInputState singleton with current input capture state.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

// Execute updates input state and queues all ImGui render functions for execution.
func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	if state := i.InputState.Get(); state != nil {
		io := imgui.CurrentIO()
		state.WantCaptureMouse = io.WantCaptureMouse()
		state.WantCaptureKeyboard = io.WantCaptureKeyboard()
	}

	for item := range i.Items.Values() {
		frame.Commands.Defer(item.Render)
	}
}

// NewRegistry registers the components of the debug UI world.
func NewRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[ImguiItem](registry)
	return registry
}

// NewWorld builds the debug UI world with the inspector's windows spawned
// into it and an ImguiSystem scheduled to draw them.
func NewWorld(inspector *Inspector) (*ecs.Storage, *ecs.Scheduler) {
	storage := ecs.NewStorage(NewRegistry())
	ecs.NewSingleton[ImguiInputState](storage)
	inspector.Spawn(storage)

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&ImguiSystem{})
	return storage, scheduler
}
