package debugui

import (
	"github.com/plus3/archstore/ecs"
)

// EntityBrowserComponent is a paged, filterable table of every live entity.
type EntityBrowserComponent struct {
	cache              *EntityBrowserCache
	selectedEntity     ecs.Entity
	filterText         string
	filterArchetypeId  *ecs.ArchetypeId
	maxEntitiesPerPage int
	currentPage        int
}

// ComponentInspectorComponent shows and edits the components of the selected entity.
type ComponentInspectorComponent struct {
	selectedEntity ecs.Entity
}

// ArchetypeViewerComponent is a sortable table of the archetype graph.
type ArchetypeViewerComponent struct {
	cache          *ArchetypeViewerCache
	selectedArchId *ecs.ArchetypeId
}

type PerformanceStatsComponent struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}

// QueryDebuggerComponent matches an ad-hoc set of components against the world.
type QueryDebuggerComponent struct {
	selected map[ecs.ComponentId]bool
}
