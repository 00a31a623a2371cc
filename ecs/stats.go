package ecs

// WorldStats is a point-in-time summary of a world's storage.
type WorldStats struct {
	ArchetypeCount       int
	TotalEntityCount     int
	ComponentCount       int
	SparseComponentCount int
	ArchetypeBreakdown   []ArchetypeStats
	SparseBreakdown      []SparseStats
}

// ArchetypeStats describes a single archetype
type ArchetypeStats struct {
	ID             ArchetypeId
	ComponentTypes []string
	EntityCount    int
}

// SparseStats describes the population of a sparse component
type SparseStats struct {
	ComponentType string
	EntityCount   int
}

// CollectStats walks the archetype graph and sparse storages.
func (w *World) CollectStats() WorldStats {
	stats := WorldStats{
		ArchetypeCount:     w.ArchetypeCount(),
		TotalEntityCount:   w.Len(),
		ComponentCount:     w.components.Len(),
		ArchetypeBreakdown: make([]ArchetypeStats, 0, w.ArchetypeCount()),
	}

	for _, archetype := range w.archetypes.list {
		names := make([]string, len(archetype.ids))
		for i, id := range archetype.ids {
			names[i] = w.components.Info(id).Name()
		}
		stats.ArchetypeBreakdown = append(stats.ArchetypeBreakdown, ArchetypeStats{
			ID:             archetype.id,
			ComponentTypes: names,
			EntityCount:    archetype.Len(),
		})
	}

	for _, info := range w.components.All() {
		if !info.IsSparse() {
			continue
		}
		stats.SparseComponentCount++
		count := 0
		if storage := w.sparseStorage(info.Id()); storage != nil {
			count = storage.Len()
		}
		stats.SparseBreakdown = append(stats.SparseBreakdown, SparseStats{
			ComponentType: info.Name(),
			EntityCount:   count,
		})
	}
	return stats
}
