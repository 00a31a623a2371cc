package ecs_test

import (
	"reflect"
	"testing"

	"github.com/plus3/archstore/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommands(t *testing.T) {
	t.Run("spawn is deferred", func(t *testing.T) {
		w := newTestWorld()
		cmds := ecs.NewCommands()

		cmds.Spawn(Position{X: 1}, Velocity{DX: 2})
		cmds.Spawn(Position{X: 3})
		assert.Equal(t, 0, w.Len())
		assert.Equal(t, 2, cmds.Len())

		cmds.Flush(w)
		assert.Equal(t, 2, w.Len())
		assert.Equal(t, 0, cmds.Len())
	})

	t.Run("despawn", func(t *testing.T) {
		w := newTestWorld()
		e := w.Spawn(Position{})
		cmds := ecs.NewCommands()

		cmds.Despawn(e)
		assert.True(t, w.IsAlive(e))
		cmds.Flush(w)
		assert.False(t, w.IsAlive(e))
	})

	t.Run("insert and remove", func(t *testing.T) {
		w := newTestWorld()
		e := w.Spawn(Position{}, Health{Current: 1})
		cmds := ecs.NewCommands()

		cmds.Insert(e, Velocity{DX: 4}, C(2))
		cmds.Remove(e, reflect.TypeFor[Health]())
		cmds.Flush(w)

		assert.Equal(t, float32(4), ecs.Get[Velocity](w, e).DX)
		assert.Equal(t, C(2), *ecs.Get[C](w, e))
		assert.False(t, ecs.Has[Health](w, e))
	})

	t.Run("removes run before inserts", func(t *testing.T) {
		w := newTestWorld()
		e := w.Spawn(Position{}, Health{Current: 1})
		cmds := ecs.NewCommands()

		cmds.Insert(e, Health{Current: 9})
		cmds.Remove(e, reflect.TypeFor[Health]())
		cmds.Flush(w)

		require.True(t, ecs.Has[Health](w, e))
		assert.Equal(t, 9, ecs.Get[Health](w, e).Current)
	})

	t.Run("changes to despawned entities are skipped", func(t *testing.T) {
		w := newTestWorld()
		e := w.Spawn(Position{})
		cmds := ecs.NewCommands()

		cmds.Insert(e, Velocity{})
		cmds.Despawn(e)
		cmds.Flush(w)

		assert.False(t, w.IsAlive(e))
		assert.Equal(t, 0, w.Len())
	})

	t.Run("defers run last", func(t *testing.T) {
		w := newTestWorld()
		cmds := ecs.NewCommands()

		var seen int
		cmds.Defer(func() {
			seen = w.Len()
		})
		cmds.Spawn(Position{})
		cmds.Flush(w)
		assert.Equal(t, 1, seen)
	})

	t.Run("commands queued by a defer are applied in the same flush", func(t *testing.T) {
		w := newTestWorld()
		cmds := ecs.NewCommands()

		var nested ecs.Entity
		cmds.Defer(func() {
			cmds.Spawn(Score(1))
			cmds.Defer(func() {
				nested = w.Spawn(Score(2))
				cmds.Despawn(nested)
			})
		})
		cmds.Flush(w)

		assert.Equal(t, 1, w.Len())
		assert.False(t, w.IsAlive(nested))
		assert.Equal(t, 0, cmds.Len())
	})

	t.Run("buffer is reusable", func(t *testing.T) {
		w := newTestWorld()
		cmds := ecs.NewCommands()
		for i := 0; i < 3; i++ {
			cmds.Spawn(Score(i))
			cmds.Flush(w)
		}
		assert.Equal(t, 3, w.Len())
	})
}
