// Package debugui provides Dear ImGui inspector windows for an ecs.World.
// Windows and render callbacks are ordinary components; the systems in this
// package queue their rendering on the frame's commands so it runs on the
// scheduler's goroutine after every system has finished.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/archstore/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks Dear ImGui's input capture state as a singleton.
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
	state := i.InputState.Get()
	io := imgui.CurrentIO()
	state.WantCaptureMouse = io.WantCaptureMouse()
	state.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for item := range i.Items.Values() {
		if item.ImguiItem.Render != nil {
			frame.Commands.Defer(item.ImguiItem.Render)
		}
	}
}

// InspectorSystem renders the windows spawned by SpawnDebugUI. A click in the
// archetype viewer filters the entity browser and the browser's selection
// drives the component inspector.
type InspectorSystem struct {
	Archetypes ecs.Query[struct {
		Viewer *ArchetypeViewerComponent `ecs:"mut"`
	}]
	Browsers ecs.Query[struct {
		Browser *EntityBrowserComponent `ecs:"mut"`
	}]
	Inspectors ecs.Query[struct {
		Inspector *ComponentInspectorComponent `ecs:"mut"`
	}]
	Stats ecs.Query[struct {
		Stats *PerformanceStatsComponent `ecs:"mut"`
	}]
	Debuggers ecs.Query[struct {
		Debugger *QueryDebuggerComponent `ecs:"mut"`
	}]
}

func (s *InspectorSystem) Execute(frame *ecs.UpdateFrame) {
	w := frame.World
	dt := float32(frame.DeltaTime)
	frame.Commands.Defer(func() {
		s.render(w, dt)
	})
}

func (s *InspectorSystem) render(w *ecs.World, dt float32) {
	var clicked *ecs.ArchetypeId
	for row := range s.Archetypes.Values() {
		if id := row.Viewer.Render(w); id != nil {
			clicked = id
		}
	}

	var selected ecs.Entity
	for row := range s.Browsers.Values() {
		if clicked != nil {
			row.Browser.FilterArchetype(*clicked)
		}
		row.Browser.Render(w)
		if e := row.Browser.SelectedEntity(); e != 0 {
			selected = e
		}
	}

	for row := range s.Inspectors.Values() {
		row.Inspector.Render(w, selected)
	}
	for row := range s.Stats.Values() {
		row.Stats.Render(w, dt)
	}
	for row := range s.Debuggers.Values() {
		row.Debugger.Render(w)
	}
}
