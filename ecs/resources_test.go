package ecs_test

import (
	"sync"
	"testing"

	"github.com/plus3/archstore/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type GameConfig struct {
	Difficulty int
	Title      string
}

type FrameCounter struct {
	Frames int
}

func TestResources(t *testing.T) {
	r := ecs.NewResources()

	t.Run("insert and get", func(t *testing.T) {
		cfg, id := ecs.InsertResource(r, GameConfig{Difficulty: 2})
		require.NotNil(t, cfg)
		assert.Same(t, cfg, ecs.GetResource[GameConfig](r))

		again, sameId := ecs.InsertResource(r, GameConfig{Difficulty: 5})
		assert.Same(t, cfg, again, "overwrite keeps the pointer")
		assert.Equal(t, id, sameId)
		assert.Equal(t, 5, cfg.Difficulty)

		lookup, ok := ecs.ResourceIdOf[GameConfig](r)
		require.True(t, ok)
		assert.Equal(t, id, lookup)
		assert.Same(t, cfg, r.Get(id))
	})

	t.Run("init only runs once", func(t *testing.T) {
		calls := 0
		init := func() *FrameCounter {
			calls++
			return &FrameCounter{Frames: 10}
		}
		first, _ := ecs.InitResource(r, init)
		second, _ := ecs.InitResource(r, init)
		assert.Same(t, first, second)
		assert.Equal(t, 1, calls)
		assert.Equal(t, 10, first.Frames)
	})

	t.Run("nil init yields zero value", func(t *testing.T) {
		score, _ := ecs.InitResource[Score](r, nil)
		require.NotNil(t, score)
		assert.Equal(t, Score(0), *score)
	})

	t.Run("remove frees the id", func(t *testing.T) {
		id, _ := ecs.ResourceIdOf[Score](r)
		require.True(t, ecs.RemoveResource[Score](r))
		assert.False(t, ecs.RemoveResource[Score](r))
		assert.Nil(t, ecs.GetResource[Score](r))

		_, reused := ecs.InsertResource(r, Tag("x"))
		assert.Equal(t, id, reused)
		assert.Equal(t, 3, r.Len())
		assert.Len(t, r.Types(), 3)
	})

	t.Run("missing resource", func(t *testing.T) {
		assert.Nil(t, ecs.GetResource[Temperature](r))
		_, ok := ecs.ResourceIdOf[Temperature](r)
		assert.False(t, ok)
		assert.Nil(t, r.Get(1000))
	})
}

func TestResourcesConcurrentInit(t *testing.T) {
	r := ecs.NewResources()

	var wg sync.WaitGroup
	results := make([]*FrameCounter, 32)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = ecs.InitResource(r, func() *FrameCounter {
				return &FrameCounter{}
			})
		}()
	}
	wg.Wait()

	for _, got := range results {
		assert.Same(t, results[0], got)
	}
	assert.Equal(t, 1, r.Len())
}

func TestWorldFrom(t *testing.T) {
	r := ecs.NewResources()
	w := ecs.WorldFrom(r)
	require.NotNil(t, w)
	assert.Same(t, w, ecs.WorldFrom(r))
	assert.Same(t, w, ecs.GetResource[ecs.World](r))
}

func TestQueryFromCachesState(t *testing.T) {
	r := ecs.NewResources()
	w := ecs.WorldFrom(r)
	registerTestComponents(w.Components())
	spawnReference(w)

	type both struct {
		*A
		*B
	}
	q1, err := ecs.QueryFrom[both](r)
	require.NoError(t, err)
	q2, err := ecs.QueryFrom[both](r)
	require.NoError(t, err)

	assert.Same(t, q1.State(), q2.State())
	assert.Equal(t, 500, q1.Count())

	w.Spawn(A(1), B(1), Position{})
	assert.Equal(t, 501, q2.Count())

	_, err = ecs.QueryFrom[struct {
		R *A
		W *A `ecs:"mut"`
	}](r)
	assert.Error(t, err)
}

func TestSingleton(t *testing.T) {
	r := ecs.NewResources()

	s := ecs.NewSingleton(r, GameConfig{Title: "demo"})
	require.True(t, s.Exists())
	assert.Equal(t, "demo", s.Get().Title)

	s.Get().Difficulty = 3
	other := ecs.NewSingleton[GameConfig](r, GameConfig{Title: "ignored"})
	assert.Equal(t, 3, other.Get().Difficulty)
	assert.Equal(t, "demo", other.Get().Title)

	zero := ecs.NewSingleton[FrameCounter](r)
	assert.Equal(t, 0, zero.Get().Frames)

	t.Run("removal invalidates cached pointer", func(t *testing.T) {
		require.True(t, ecs.RemoveResource[GameConfig](r))
		assert.False(t, s.Exists())
		assert.Nil(t, s.Get())

		ecs.InsertResource(r, GameConfig{Title: "again"})
		assert.Equal(t, "again", s.Get().Title)
	})

	t.Run("zero value singleton binds on init", func(t *testing.T) {
		var bound ecs.Singleton[FrameCounter]
		assert.Nil(t, bound.Get())
		bound.Init(r)
		assert.Same(t, zero.Get(), bound.Get())
	})
}
