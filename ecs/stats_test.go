package ecs_test

import (
	"testing"

	"github.com/plus3/archstore/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorldStats(t *testing.T) {
	w := ecs.NewWorld()
	ecs.RegisterComponent[int](w.Components())
	ecs.RegisterComponent[string](w.Components())
	ecs.RegisterComponent[float64](w.Components())
	_, err := ecs.RegisterSparseComponent[C](w.Components())
	require.NoError(t, err)

	stats := w.CollectStats()
	assert.Equal(t, 1, stats.ArchetypeCount, "only the empty archetype")
	assert.Equal(t, 0, stats.TotalEntityCount)
	assert.Equal(t, 4, stats.ComponentCount)
	assert.Equal(t, 1, stats.SparseComponentCount)

	w.Spawn(42, "hello")
	w.Spawn(100, "world", C(1))
	w.Spawn(200.0, "test")

	stats = w.CollectStats()
	assert.Equal(t, 3, stats.ArchetypeCount)
	assert.Equal(t, 3, stats.TotalEntityCount)
	require.Len(t, stats.ArchetypeBreakdown, 3)

	assert.Equal(t, ecs.EmptyArchetype, stats.ArchetypeBreakdown[0].ID)
	assert.Equal(t, 0, stats.ArchetypeBreakdown[0].EntityCount)
	assert.Equal(t, []string{"int", "string"}, stats.ArchetypeBreakdown[1].ComponentTypes)
	assert.Equal(t, 2, stats.ArchetypeBreakdown[1].EntityCount)
	assert.Equal(t, []string{"string", "float64"}, stats.ArchetypeBreakdown[2].ComponentTypes)
	assert.Equal(t, 1, stats.ArchetypeBreakdown[2].EntityCount)

	require.Len(t, stats.SparseBreakdown, 1)
	assert.Equal(t, ecs.SparseStats{ComponentType: "ecs_test.C", EntityCount: 1}, stats.SparseBreakdown[0])
}
