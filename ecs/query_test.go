package ecs_test

import (
	"sync"
	"testing"

	"github.com/plus3/archstore/ecs"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryReferenceScenario(t *testing.T) {
	w := newTestWorld()
	entities := spawnReference(w)

	t.Run("A", func(t *testing.T) {
		q := ecs.MustQuery[struct{ *A }](w)
		count, sum := 0, 0
		for _, item := range q.Iter() {
			count++
			sum += int(*item.A)
		}
		assert.Equal(t, 750, count)
		assert.Equal(t, 374500, sum)
		assert.Equal(t, 750, q.Count())

		item, ok := q.Get(entities[1])
		require.True(t, ok)
		assert.Equal(t, A(1), *item.A)

		_, ok = q.Get(entities[2])
		assert.False(t, ok)
	})

	t.Run("B", func(t *testing.T) {
		q := ecs.MustQuery[struct{ *B }](w)
		count, sum := 0, 0
		for item := range q.Values() {
			count++
			sum += int(*item.B)
		}
		assert.Equal(t, 750, count)
		assert.Equal(t, 374750, sum)
	})

	t.Run("A and B", func(t *testing.T) {
		q := ecs.MustQuery[struct {
			*A
			*B
		}](w)
		count, sumA, sumB := 0, 0, 0
		for _, item := range q.Iter() {
			count++
			sumA += int(*item.A)
			sumB += int(*item.B)
		}
		assert.Equal(t, 500, count)
		assert.Equal(t, 249750, sumA)
		assert.Equal(t, 249750, sumB)
	})

	t.Run("A without B", func(t *testing.T) {
		q := ecs.MustQuery[struct {
			*A
			_ ecs.Without[B]
		}](w)
		assert.Equal(t, 250, q.Count())
	})

	t.Run("optional B", func(t *testing.T) {
		q := ecs.MustQuery[struct {
			*A
			B *B `ecs:"optional"`
		}](w)
		withB, withoutB := 0, 0
		for item := range q.Values() {
			if item.B == nil {
				withoutB++
			} else {
				withB++
			}
		}
		assert.Equal(t, 500, withB)
		assert.Equal(t, 250, withoutB)
	})
}

func TestQueryConflictingAccess(t *testing.T) {
	w := newTestWorld()
	w.Spawn(Position{})

	_, err := ecs.NewQuery[struct {
		Read  *Position
		Write *Position `ecs:"mut"`
	}](w)
	require.Error(t, err)
	assert.True(t, eris.Is(err, ecs.ErrConflictingAccess))

	_, err = ecs.NewQuery[struct {
		First  *Position `ecs:"mut"`
		Second *Position `ecs:"mut"`
	}](w)
	assert.True(t, eris.Is(err, ecs.ErrConflictingAccess))

	assert.Panics(t, func() {
		ecs.MustQuery[struct {
			Write *Velocity `ecs:"mut"`
			Read  *Velocity
		}](w)
	})

	q, err := ecs.NewQuery[struct {
		First  *Position
		Second *Position
	}](w)
	require.NoError(t, err, "shared access twice is fine")
	assert.Equal(t, 1, q.Count())
}

func TestQueryAccessIsACopy(t *testing.T) {
	w := newTestWorld()
	q := ecs.MustQuery[struct {
		Pos *Position
		Vel *Velocity `ecs:"mut"`
	}](w)

	positionId, _ := ecs.ComponentIdFor[Position](w.Components())
	velocityId, _ := ecs.ComponentIdFor[Velocity](w.Components())
	healthId, _ := ecs.ComponentIdFor[Health](w.Components())

	access := q.Access()
	access.Shared.Insert(healthId)
	access.Exclusive.Insert(healthId)

	fresh := q.Access()
	assert.Equal(t, []ecs.ComponentId{positionId}, fresh.Shared.Ids())
	assert.Equal(t, []ecs.ComponentId{velocityId}, fresh.Exclusive.Ids())
}

func TestQueryInvalidPattern(t *testing.T) {
	w := newTestWorld()

	_, err := ecs.NewQuery[int](w)
	assert.True(t, eris.Is(err, ecs.ErrInvalidQuery))

	_, err = ecs.NewQuery[struct{ Pos Position }](w)
	assert.True(t, eris.Is(err, ecs.ErrInvalidQuery))

	_, err = ecs.NewQuery[struct {
		Pos *Position `ecs:"sometimes"`
	}](w)
	assert.True(t, eris.Is(err, ecs.ErrInvalidQuery))
}

func TestQuerySeesNewArchetypes(t *testing.T) {
	w := newTestWorld()
	w.Spawn(Position{X: 1})

	q := ecs.MustQuery[struct{ *Position }](w)
	state := q.State()
	assert.Equal(t, 1, q.Count())
	watermark := state.Watermark()

	w.Spawn(Position{X: 2}, Velocity{})
	w.Spawn(Position{X: 3}, Health{})
	w.Spawn(Velocity{})

	assert.Equal(t, 3, q.Count())
	assert.Same(t, state, q.State())
	assert.Greater(t, state.Watermark(), watermark)
	assert.Equal(t, w.ArchetypeCount(), state.Watermark())
	assert.Len(t, state.MatchingArchetypes(), 3)

	sum := float32(0)
	for item := range q.Values() {
		sum += item.X
	}
	assert.Equal(t, float32(6), sum)
}

func TestQueryMutation(t *testing.T) {
	w := newTestWorld()
	for i := 0; i < 10; i++ {
		w.Spawn(Position{X: float32(i)}, Velocity{DX: 1, DY: 2})
	}

	q := ecs.MustQuery[struct {
		Pos *Position `ecs:"mut"`
		Vel *Velocity
	}](w)
	for item := range q.Values() {
		item.Pos.X += item.Vel.DX
		item.Pos.Y += item.Vel.DY
	}

	check := ecs.MustQuery[struct{ *Position }](w)
	sumX, sumY := float32(0), float32(0)
	for item := range check.Values() {
		sumX += item.X
		sumY += item.Y
	}
	assert.Equal(t, float32(55), sumX)
	assert.Equal(t, float32(20), sumY)

	access := q.Access()
	assert.Equal(t, 1, access.Exclusive.Len())
	assert.Equal(t, 1, access.Shared.Len())
}

func TestQuerySparse(t *testing.T) {
	w := newTestWorld()
	entities := make([]ecs.Entity, 20)
	for i := range entities {
		entities[i] = w.Spawn(Position{X: float32(i)})
		if i%2 == 0 {
			ecs.Insert(w, entities[i], C(i))
		}
		if i%5 == 0 {
			ecs.Insert(w, entities[i], D(i))
		}
	}

	t.Run("sparse only walks the sparse index", func(t *testing.T) {
		q := ecs.MustQuery[struct{ *C }](w)
		require.True(t, q.State().SparseOnly())
		assert.Equal(t, 10, q.Count())
	})

	t.Run("smallest sparse index drives", func(t *testing.T) {
		q := ecs.MustQuery[struct {
			*C
			*D
		}](w)
		sum := 0
		for item := range q.Values() {
			sum += int(*item.C) + int(*item.D)
		}
		// 0 and 10
		assert.Equal(t, 2, q.Count())
		assert.Equal(t, 20, sum)
	})

	t.Run("mixed dense and sparse", func(t *testing.T) {
		q := ecs.MustQuery[struct {
			*Position
			*C
		}](w)
		require.False(t, q.State().SparseOnly())
		for e, item := range q.Iter() {
			assert.Equal(t, float32(*item.C), item.Position.X)
			assert.True(t, ecs.Has[C](w, e))
		}
		assert.Equal(t, 10, q.Count())
	})

	t.Run("sparse filters", func(t *testing.T) {
		q := ecs.MustQuery[struct {
			*Position
			_ ecs.With[C]
			_ ecs.Without[D]
		}](w)
		// even, not a multiple of 5: 2 4 6 8 12 14 16 18
		assert.Equal(t, 8, q.Count())
	})

	t.Run("optional sparse", func(t *testing.T) {
		q := ecs.MustQuery[struct {
			*Position
			D *D `ecs:"optional"`
		}](w)
		present := 0
		for item := range q.Values() {
			if item.D != nil {
				present++
			}
		}
		assert.Equal(t, 20, q.Count())
		assert.Equal(t, 4, present)
	})

	t.Run("never inserted sparse type matches nothing", func(t *testing.T) {
		q := ecs.MustQuery[struct{ *E }](w)
		assert.Equal(t, 0, q.Count())
		_, ok := q.Get(entities[0])
		assert.False(t, ok)
	})

	t.Run("sparse pointers are stable", func(t *testing.T) {
		before := ecs.Get[C](w, entities[4])
		for i := 0; i < 100; i++ {
			e := w.Spawn(Position{})
			ecs.Insert(w, e, C(-1))
		}
		assert.Same(t, before, ecs.Get[C](w, entities[4]))
	})
}

func TestQueryWithFilter(t *testing.T) {
	w := newTestWorld()
	w.Spawn(Position{X: 1}, PlayerController{})
	w.Spawn(Position{X: 2})
	w.Spawn(Position{X: 3}, PlayerController{}, Frozen{})

	q := ecs.MustQuery[struct {
		*Position
		_ ecs.With[PlayerController]
		_ ecs.Without[Frozen]
	}](w)

	var xs []float32
	for item := range q.Values() {
		xs = append(xs, item.X)
	}
	assert.Equal(t, []float32{1}, xs)
	assert.Equal(t, 1, q.Access().Shared.Len(), "filters declare no access")
}

func TestQueryEarlyBreak(t *testing.T) {
	w := newTestWorld()
	for i := 0; i < 10; i++ {
		w.Spawn(Score(i))
	}
	q := ecs.MustQuery[struct{ *Score }](w)

	seen := 0
	for range q.Iter() {
		seen++
		if seen == 3 {
			break
		}
	}
	assert.Equal(t, 3, seen)
}

func TestQueryConcurrentRefresh(t *testing.T) {
	w := newTestWorld()
	spawnReference(w)

	q := ecs.MustQuery[struct{ *A }](w)

	// create archetypes the state has not scanned yet
	for i := 0; i < 8; i++ {
		e := w.Spawn(A(0))
		switch i % 4 {
		case 0:
			ecs.Insert(w, e, Position{})
		case 1:
			ecs.Insert(w, e, Velocity{})
		case 2:
			ecs.Insert(w, e, Health{})
		case 3:
			ecs.Insert(w, e, Name{})
		}
	}

	var wg sync.WaitGroup
	counts := make([]int, 16)
	for i := range counts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q.State().Refresh(w)
			n := 0
			for range q.Iter() {
				n++
			}
			counts[i] = n
		}()
	}
	wg.Wait()

	for _, n := range counts {
		assert.Equal(t, 758, n)
	}
	assert.Len(t, q.State().MatchingArchetypes(), 6)
}

func TestQueryEmptyPattern(t *testing.T) {
	w := newTestWorld()
	w.Spawn()
	w.Spawn(Position{})
	w.Spawn(C(1))

	q := ecs.MustQuery[struct{}](w)
	assert.Equal(t, 3, q.Count())
}
