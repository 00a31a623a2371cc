package ecs_test

import (
	"reflect"
	"testing"

	"github.com/plus3/archstore/ecs"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpawn(t *testing.T) {
	w := newTestWorld()

	t.Run("places a bundle in one archetype", func(t *testing.T) {
		e := w.Spawn(Position{X: 1, Y: 2}, Velocity{DX: 3, DY: 4})
		require.True(t, w.IsAlive(e))

		archetypeId, row, ok := w.Location(e)
		require.True(t, ok)
		assert.Equal(t, 0, row)

		archetype := w.Archetype(archetypeId)
		assert.Equal(t, 2, archetype.Signature().Len())
		assert.Equal(t, []ecs.Entity{e}, archetype.Entities())

		assert.Equal(t, Position{X: 1, Y: 2}, *ecs.Get[Position](w, e))
		assert.Equal(t, Velocity{DX: 3, DY: 4}, *ecs.Get[Velocity](w, e))
	})

	t.Run("accepts pointers to components", func(t *testing.T) {
		e := w.Spawn(&Name{Value: "ptr"})
		assert.Equal(t, "ptr", ecs.Get[Name](w, e).Value)
	})

	t.Run("empty bundle lands in the empty archetype", func(t *testing.T) {
		e := w.Spawn()
		archetypeId, _, ok := w.Location(e)
		require.True(t, ok)
		assert.Equal(t, ecs.EmptyArchetype, archetypeId)
	})

	t.Run("last duplicate wins", func(t *testing.T) {
		e := w.Spawn(Score(1), Score(2))
		assert.Equal(t, Score(2), *ecs.Get[Score](w, e))
	})

	t.Run("unregistered type panics", func(t *testing.T) {
		type unregistered struct{}
		assert.Panics(t, func() {
			w.Spawn(unregistered{})
		})
	})

	t.Run("sparse components stay out of the signature", func(t *testing.T) {
		plain := w.Spawn(Position{})
		withSparse := w.Spawn(Position{}, C(5))

		plainArchetype, _, _ := w.Location(plain)
		sparseArchetype, _, _ := w.Location(withSparse)
		assert.Equal(t, plainArchetype, sparseArchetype)
		assert.Equal(t, C(5), *ecs.Get[C](w, withSparse))
		assert.Nil(t, ecs.Get[C](w, plain))
	})
}

func TestDespawn(t *testing.T) {
	w := newTestWorld()

	e1 := w.Spawn(Position{X: 1}, C(1))
	e2 := w.Spawn(Position{X: 2})
	e3 := w.Spawn(Position{X: 3})

	require.True(t, w.Despawn(e1))
	assert.False(t, w.IsAlive(e1))
	assert.Equal(t, 2, w.Len())

	t.Run("swapped entity is relocated", func(t *testing.T) {
		_, row, ok := w.Location(e3)
		require.True(t, ok)
		assert.Equal(t, 0, row)
		assert.Equal(t, float32(3), ecs.Get[Position](w, e3).X)
		assert.Equal(t, float32(2), ecs.Get[Position](w, e2).X)
	})

	t.Run("second despawn is a no-op", func(t *testing.T) {
		assert.False(t, w.Despawn(e1))
		assert.Equal(t, 2, w.Len())
	})

	t.Run("sparse values are dropped", func(t *testing.T) {
		q := ecs.MustQuery[struct{ *C }](w)
		assert.Equal(t, 0, q.Count())
	})

	t.Run("zero entity is never alive", func(t *testing.T) {
		assert.False(t, w.IsAlive(0))
		assert.False(t, w.Despawn(0))
	})
}

func TestGenerationSafety(t *testing.T) {
	w := newTestWorld()

	stale := w.Spawn(Position{X: 1}, Health{Current: 10})
	require.True(t, w.Despawn(stale))

	fresh := w.Spawn(Position{X: 2})
	require.Equal(t, stale.Index(), fresh.Index(), "freed index is reused")
	require.NotEqual(t, stale.Generation(), fresh.Generation())

	assert.False(t, w.IsAlive(stale))
	assert.Nil(t, ecs.Get[Position](w, stale))
	assert.False(t, ecs.Has[Position](w, stale))
	assert.False(t, w.Insert(stale, Velocity{}))
	assert.False(t, ecs.Insert(w, stale, Velocity{}))
	assert.Equal(t, 0, w.Remove(stale, reflect.TypeFor[Position]()))
	assert.False(t, w.Despawn(stale))
	assert.Nil(t, w.ComponentsOf(stale))

	_, ok := w.EntityMut(stale)
	assert.False(t, ok)

	q := ecs.MustQuery[struct{ *Position }](w)
	_, ok = q.Get(stale)
	assert.False(t, ok)

	// the new occupant is untouched by operations on the stale handle
	assert.Equal(t, float32(2), ecs.Get[Position](w, fresh).X)
	assert.False(t, ecs.Has[Velocity](w, fresh))
}

func TestInsert(t *testing.T) {
	w := newTestWorld()

	t.Run("overwrite is idempotent", func(t *testing.T) {
		e := w.Spawn(Position{X: 1}, Velocity{DX: 1})
		before, row, _ := w.Location(e)
		count := w.Archetype(before).Len()
		archetypes := w.ArchetypeCount()

		require.True(t, w.Insert(e, Position{X: 5}))
		require.True(t, ecs.Insert(w, e, Position{X: 6}))

		after, newRow, _ := w.Location(e)
		assert.Equal(t, before, after)
		assert.Equal(t, row, newRow)
		assert.Equal(t, count, w.Archetype(after).Len())
		assert.Equal(t, archetypes, w.ArchetypeCount())
		assert.Equal(t, float32(6), ecs.Get[Position](w, e).X)
	})

	t.Run("batch insert moves once", func(t *testing.T) {
		e := w.Spawn(Position{X: 1})
		archetypes := w.ArchetypeCount()

		require.True(t, w.Insert(e, Velocity{DX: 2}, Health{Current: 3}, Name{Value: "n"}))

		// only the final archetype is created, no intermediate ones
		assert.Equal(t, archetypes+1, w.ArchetypeCount())
		assert.Equal(t, float32(1), ecs.Get[Position](w, e).X)
		assert.Equal(t, float32(2), ecs.Get[Velocity](w, e).DX)
		assert.Equal(t, 3, ecs.Get[Health](w, e).Current)
		assert.Equal(t, "n", ecs.Get[Name](w, e).Value)
	})

	t.Run("values survive neighbours moving", func(t *testing.T) {
		entities := make([]ecs.Entity, 10)
		for i := range entities {
			entities[i] = w.Spawn(Score(i), Tag("t"))
		}
		for i := 0; i < len(entities); i += 2 {
			ecs.Insert(w, entities[i], Temperature(float64(i)))
		}
		for i, e := range entities {
			assert.Equal(t, Score(i), *ecs.Get[Score](w, e))
			assert.Equal(t, i%2 == 0, ecs.Has[Temperature](w, e))
		}
	})

	t.Run("generic insert registers new types", func(t *testing.T) {
		type fresh struct{ V int }
		e := w.Spawn()
		require.True(t, ecs.Insert(w, e, fresh{V: 9}))
		assert.Equal(t, 9, ecs.Get[fresh](w, e).V)
	})
}

func TestRemove(t *testing.T) {
	w := newTestWorld()

	t.Run("round trip restores the signature", func(t *testing.T) {
		e := w.Spawn(Position{X: 1}, Velocity{DX: 1})
		w.Spawn(Position{X: 2}, Velocity{DX: 2})
		original, _, _ := w.Location(e)

		require.True(t, ecs.Insert(w, e, Health{Current: 1}))
		moved, _, _ := w.Location(e)
		assert.NotEqual(t, original, moved)

		require.True(t, ecs.Remove[Health](w, e))
		back, _, _ := w.Location(e)
		assert.Equal(t, original, back)
		assert.True(t, w.Archetype(back).Signature().Equal(w.Archetype(original).Signature()))
		assert.Equal(t, float32(1), ecs.Get[Position](w, e).X)
	})

	t.Run("batch remove counts what was present", func(t *testing.T) {
		e := w.Spawn(Position{}, Velocity{}, Health{}, C(1))
		removed := w.Remove(e,
			reflect.TypeFor[Velocity](),
			reflect.TypeFor[Health](),
			reflect.TypeFor[Name](),
			reflect.TypeFor[C](),
			reflect.TypeFor[D](),
		)
		assert.Equal(t, 3, removed)
		assert.True(t, ecs.Has[Position](w, e))
		assert.False(t, ecs.Has[Velocity](w, e))
		assert.False(t, ecs.Has[C](w, e))
	})

	t.Run("removing an absent component is a no-op", func(t *testing.T) {
		e := w.Spawn(Position{})
		before, _, _ := w.Location(e)
		assert.False(t, ecs.Remove[Velocity](w, e))
		after, _, _ := w.Location(e)
		assert.Equal(t, before, after)
	})

	t.Run("removing the last component keeps the entity", func(t *testing.T) {
		e := w.Spawn(Position{})
		require.True(t, ecs.Remove[Position](w, e))
		assert.True(t, w.IsAlive(e))
		archetypeId, _, _ := w.Location(e)
		assert.Equal(t, ecs.EmptyArchetype, archetypeId)
	})
}

func TestDenseThenSparseSignature(t *testing.T) {
	w := newTestWorld()

	e := w.Spawn(Position{X: 1})
	preD, _, _ := w.Location(e)
	preSignature := w.Archetype(preD).Signature()

	require.True(t, ecs.Insert(w, e, Health{Current: 1}))
	require.True(t, ecs.Remove[Health](w, e))
	require.True(t, ecs.Insert(w, e, C(7)))

	current, _, _ := w.Location(e)
	assert.Equal(t, preD, current)
	assert.True(t, w.Archetype(current).Signature().Equal(preSignature))

	q := ecs.MustQuery[struct{ *C }](w)
	item, ok := q.Get(e)
	require.True(t, ok)
	assert.Equal(t, C(7), *item.C)
	assert.Equal(t, 1, q.Count())
}

func TestEntityMut(t *testing.T) {
	w := newTestWorld()
	e := w.Spawn(Position{})

	m, ok := w.EntityMut(e)
	require.True(t, ok)
	assert.Equal(t, e, m.Id())

	m.Insert(Velocity{DX: 1}).Insert(C(2)).Remove(reflect.TypeFor[Position]())
	assert.True(t, m.Has(reflect.TypeFor[Velocity]()))
	assert.True(t, m.Has(reflect.TypeFor[C]()))
	assert.False(t, m.Has(reflect.TypeFor[Position]()))
	assert.Equal(t, &Velocity{DX: 1}, m.Get(reflect.TypeFor[Velocity]()))

	assert.True(t, m.Despawn())
	_, ok = w.EntityMut(e)
	assert.False(t, ok)
}

func TestComponentsOf(t *testing.T) {
	w := newTestWorld()
	e := w.Spawn(Velocity{DX: 1}, Position{X: 2}, C(3))

	components := w.ComponentsOf(e)
	require.Len(t, components, 3)
	assert.Contains(t, components, &Position{X: 2})
	assert.Contains(t, components, &Velocity{DX: 1})
	assert.Equal(t, any(ptr(C(3))), components[2])
}

func TestRegisterStorageConflict(t *testing.T) {
	w := ecs.NewWorld()
	c := w.Components()

	dense := ecs.RegisterComponent[Position](c)
	again := ecs.RegisterComponent[Position](c)
	assert.Equal(t, dense, again)

	_, err := ecs.RegisterSparseComponent[Position](c)
	require.Error(t, err)
	assert.True(t, eris.Is(err, ecs.ErrStorageKindConflict))

	sparse, err := ecs.RegisterSparseComponent[C](c)
	require.NoError(t, err)
	assert.Equal(t, sparse, ecs.RegisterComponent[C](c))
	assert.Equal(t, ecs.StorageSparse, c.Info(sparse).Kind())

	id, ok := ecs.ComponentIdFor[C](c)
	require.True(t, ok)
	assert.Equal(t, sparse, id)
	assert.Equal(t, 2, c.Len())
}

func TestRegisterRejectsReferenceKinds(t *testing.T) {
	c := ecs.NewWorld().Components()
	assert.Panics(t, func() { ecs.RegisterComponent[*Position](c) })
	assert.Panics(t, func() { ecs.RegisterComponent[map[string]int](c) })
	assert.Panics(t, func() { ecs.RegisterComponent[func()](c) })
}

func ptr[T any](v T) *T {
	return &v
}
