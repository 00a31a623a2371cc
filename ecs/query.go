package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

// Query iterates the entities matching the access pattern T, a struct of
// component pointers and With/Without filters:
//
//	type movers struct {
//		Pos *Position `ecs:"mut"`
//		Vel *Velocity
//		Tag *Name     `ecs:"optional"`
//		_   Without[Frozen]
//	}
//
// The pointers yielded point into live storage and stay valid until the next
// structural mutation of the world. The world must not be structurally
// mutated while an iteration is in progress; use Commands to defer changes.
type Query[T any] struct {
	world *World
	state *QueryState
}

// NewQuery compiles a query for T over w.
func NewQuery[T any](w *World) (*Query[T], error) {
	q := &Query[T]{}
	if err := q.Init(w); err != nil {
		return nil, err
	}
	return q, nil
}

// MustQuery is NewQuery for access patterns known to be valid. It panics on error.
func MustQuery[T any](w *World) *Query[T] {
	q, err := NewQuery[T](w)
	if err != nil {
		panic(err)
	}
	return q
}

// Init (re)compiles the query against w.
// Called by the Scheduler during system registration.
func (q *Query[T]) Init(w *World) error {
	state, err := NewQueryState(w, reflect.TypeFor[T]())
	if err != nil {
		return err
	}
	q.world = w
	q.state = state
	return nil
}

func (q *Query[T]) initFrom(w *World, state *QueryState) {
	q.world = w
	q.state = state
}

// State returns the cached state backing the query
func (q *Query[T]) State() *QueryState {
	return q.state
}

// Access returns the components the query reads and writes
func (q *Query[T]) Access() Access {
	return q.state.Access()
}

// Iter returns an iterator over matching entities and their populated pattern struct.
// Optional fields are nil when the component is absent.
func (q *Query[T]) Iter() iter.Seq2[Entity, T] {
	return func(yield func(Entity, T) bool) {
		s := q.state
		s.Refresh(q.world)
		sparse := s.sparseStorages()

		var result T
		resultPtr := unsafe.Pointer(&result)

		if storage, ok := s.driver(); ok {
			if storage == nil {
				return
			}
			m := &archetypeMatch{columns: make([]column, len(s.pattern.terms))}
			for i := 0; i < storage.Len(); i++ {
				e := storage.entityAt(i)
				if !s.admits(e) || !s.pattern.fill(resultPtr, m, sparse, 0, e) {
					continue
				}
				if !yield(e, result) {
					return
				}
			}
			return
		}

		filtered := s.pattern.hasSparseFilters()
		set := s.snapshot()
		for i := range set.matches {
			m := &set.matches[i]
			for row, e := range m.archetype.entities {
				if filtered && !s.admits(e) {
					continue
				}
				if !s.pattern.fill(resultPtr, m, sparse, row, e) {
					continue
				}
				if !yield(e, result) {
					return
				}
			}
		}
	}
}

// Values returns an iterator over just the pattern structs (without entities)
func (q *Query[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range q.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}

// Entities returns an iterator over the matching entities only
func (q *Query[T]) Entities() iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		for e := range q.Iter() {
			if !yield(e) {
				return
			}
		}
	}
}

// Get populates the pattern for a single entity. Returns false if e is dead
// or does not match.
func (q *Query[T]) Get(e Entity) (T, bool) {
	var result T
	s := q.state
	s.Refresh(q.world)

	loc, ok := q.world.entities.resolve(e)
	if !ok {
		return result, false
	}
	m := s.snapshot().find(loc.archetype)
	if m == nil || !s.admits(e) {
		return result, false
	}
	if !s.pattern.fill(unsafe.Pointer(&result), m, s.sparseStorages(), loc.row, e) {
		var zero T
		return zero, false
	}
	return result, true
}

// Contains reports whether e currently matches the query
func (q *Query[T]) Contains(e Entity) bool {
	_, ok := q.Get(e)
	return ok
}

// Count returns the number of matching entities.
func (q *Query[T]) Count() int {
	s := q.state
	s.Refresh(q.world)

	if _, ok := s.driver(); ok || s.pattern.hasSparseFilters() {
		n := 0
		for range q.Iter() {
			n++
		}
		return n
	}

	n := 0
	for _, m := range s.snapshot().matches {
		n += m.archetype.Len()
	}
	return n
}
