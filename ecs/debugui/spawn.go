package debugui

import "github.com/plus3/archstore/ecs"

// SpawnDebugUI spawns one entity per inspector window. InspectorSystem renders them.
func SpawnDebugUI(w *ecs.World) []ecs.Entity {
	RegisterDebugUIComponents(w.Components())
	return []ecs.Entity{
		w.Spawn(NewEntityBrowserComponent(100)),
		w.Spawn(NewComponentInspectorComponent()),
		w.Spawn(NewArchetypeViewerComponent()),
		w.Spawn(NewPerformanceStatsComponent(120)),
		w.Spawn(NewQueryDebuggerComponent()),
	}
}

func RegisterDebugUIComponents(c *ecs.Components) {
	ecs.RegisterComponent[ImguiItem](c)
	ecs.RegisterComponent[EntityBrowserComponent](c)
	ecs.RegisterComponent[ComponentInspectorComponent](c)
	ecs.RegisterComponent[ArchetypeViewerComponent](c)
	ecs.RegisterComponent[PerformanceStatsComponent](c)
	ecs.RegisterComponent[QueryDebuggerComponent](c)
}
