package ecs

import (
	"reflect"
	"sort"
	"sync"
	"sync/atomic"
)

// archetypeMatch is one archetype matched by a query, with the column of
// every fetch term resolved up front (nil for sparse or absent optional terms).
type archetypeMatch struct {
	archetype *Archetype
	columns   []column
}

// archetypeSet is an immutable snapshot of the archetypes matched by a query,
// in ascending id order. A new snapshot replaces the old one atomically.
type archetypeSet struct {
	matches []archetypeMatch
}

func (s *archetypeSet) find(id ArchetypeId) *archetypeMatch {
	i := sort.Search(len(s.matches), func(i int) bool {
		return s.matches[i].archetype.id >= id
	})
	if i < len(s.matches) && s.matches[i].archetype.id == id {
		return &s.matches[i]
	}
	return nil
}

func (s *archetypeSet) withCapacity(extra int) *archetypeSet {
	next := &archetypeSet{matches: make([]archetypeMatch, len(s.matches), len(s.matches)+extra)}
	copy(next.matches, s.matches)
	return next
}

// QueryState is the compiled, cached form of a query over one World.
//
// The set of matching archetypes is refreshed incrementally: the archetype
// list is append-only, so only archetypes created since the last refresh
// (those at or above the watermark) need to be examined. Several goroutines
// may refresh and iterate one QueryState concurrently, provided the World is
// not structurally mutated meanwhile.
type QueryState struct {
	world   *World
	pattern *queryPattern

	watermark atomic.Uint64
	updating  sync.Mutex
	matching  atomic.Pointer[archetypeSet]
}

// NewQueryState compiles the access pattern t against w. It fails with
// ErrInvalidQuery for malformed pattern types and ErrConflictingAccess when a
// component is both read and written.
func NewQueryState(w *World, t reflect.Type) (*QueryState, error) {
	pattern, err := compilePattern(w.components, t)
	if err != nil {
		w.logger.Warn().Err(err).Str("query", t.String()).Msg("query compilation failed")
		return nil, err
	}

	s := &QueryState{
		world:   w,
		pattern: pattern,
	}
	s.matching.Store(&archetypeSet{})
	s.Refresh(w)
	return s, nil
}

// Refresh brings the matching archetype set up to date with w.
func (s *QueryState) Refresh(w *World) {
	if w != s.world {
		panic("ecs: query state used with a world it was not compiled for")
	}

	count := uint64(w.archetypes.len())
	if s.watermark.Load() >= count {
		return
	}

	s.updating.Lock()
	defer s.updating.Unlock()

	start := s.watermark.Load()
	if start >= count {
		// another goroutine refreshed while we waited
		return
	}

	current := s.matching.Load()
	var next *archetypeSet
	for id := start; id < count; id++ {
		archetype := w.archetypes.get(ArchetypeId(id))
		if !s.pattern.matches(archetype) {
			continue
		}
		if next == nil {
			next = current.withCapacity(int(count - id))
		}
		next.matches = append(next.matches, s.bind(archetype))
	}

	if next != nil {
		s.matching.Store(next)
	}
	s.watermark.Store(count)
}

func (s *QueryState) bind(archetype *Archetype) archetypeMatch {
	m := archetypeMatch{
		archetype: archetype,
		columns:   make([]column, len(s.pattern.terms)),
	}
	for i, term := range s.pattern.terms {
		if !term.sparse {
			m.columns[i] = archetype.column(term.component)
		}
	}
	return m
}

// snapshot returns the current matching set without refreshing.
func (s *QueryState) snapshot() *archetypeSet {
	return s.matching.Load()
}

// MatchingArchetypes returns the ids of the archetypes currently matched.
func (s *QueryState) MatchingArchetypes() []ArchetypeId {
	s.Refresh(s.world)
	set := s.snapshot()
	ids := make([]ArchetypeId, len(set.matches))
	for i, m := range set.matches {
		ids[i] = m.archetype.id
	}
	return ids
}

// Watermark returns the number of archetypes examined so far.
func (s *QueryState) Watermark() int {
	return int(s.watermark.Load())
}

// Type returns the access pattern type the state was compiled from.
func (s *QueryState) Type() reflect.Type {
	return s.pattern.typ
}

// SparseOnly reports whether every component the query touches uses sparse storage.
func (s *QueryState) SparseOnly() bool {
	return s.pattern.sparseOnly
}

// Access returns a copy of the components the query reads and writes.
func (s *QueryState) Access() Access {
	return Access{
		Shared:    s.pattern.shared.clone(),
		Exclusive: s.pattern.exclusive.clone(),
	}
}

// sparseStorages resolves the sparse storage of every fetch term.
func (s *QueryState) sparseStorages() []sparseStorage {
	var stores []sparseStorage
	for i, term := range s.pattern.terms {
		if !term.sparse {
			continue
		}
		if stores == nil {
			stores = make([]sparseStorage, len(s.pattern.terms))
		}
		stores[i] = s.world.sparseStorage(term.component)
	}
	return stores
}

// admits applies the per-entity sparse filters.
func (s *QueryState) admits(e Entity) bool {
	for _, id := range s.pattern.sparseRequired {
		storage := s.world.sparseStorage(id)
		if storage == nil || !storage.has(e) {
			return false
		}
	}
	for _, id := range s.pattern.sparseExcluded {
		if storage := s.world.sparseStorage(id); storage != nil && storage.has(e) {
			return false
		}
	}
	return true
}

// driver picks the smallest required sparse storage to walk when the query
// touches only sparse components. Returns false when there is nothing to drive
// from; ok with a nil storage means no entity can match.
func (s *QueryState) driver() (sparseStorage, bool) {
	if !s.pattern.sparseOnly || len(s.pattern.sparseRequired) == 0 {
		return nil, false
	}
	var best sparseStorage
	for _, id := range s.pattern.sparseRequired {
		storage := s.world.sparseStorage(id)
		if storage == nil {
			return nil, true
		}
		if best == nil || storage.Len() < best.Len() {
			best = storage
		}
	}
	return best, true
}
