package ecs

import (
	"fmt"
	"reflect"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// World owns every entity, component value and archetype of one ECS instance.
//
// Structural mutation (Spawn, Despawn, Insert, Remove) requires exclusive
// access to the World. Queries may iterate concurrently from several
// goroutines as long as no structural mutation runs at the same time.
type World struct {
	components *Components
	entities   *entities
	archetypes *archetypes

	// sparse storages indexed by ComponentId, created on first insert
	sparse []sparseStorage

	logger   zerolog.Logger
	capacity int
}

// NewWorld creates an empty world holding only the empty archetype.
func NewWorld(opts ...WorldOption) *World {
	w := &World{
		logger:   zerolog.Nop(),
		capacity: 64,
	}
	for _, opt := range opts {
		opt(w)
	}

	w.components = newComponents(&w.logger)
	w.entities = newEntities(w.capacity)
	w.archetypes = newArchetypes(w.components, &w.logger)
	return w
}

// Components returns the world's component registry
func (w *World) Components() *Components {
	return w.components
}

// Logger returns the world's logger
func (w *World) Logger() *zerolog.Logger {
	return &w.logger
}

// Len returns the number of live entities
func (w *World) Len() int {
	return w.entities.len()
}

// ArchetypeCount returns the number of archetypes created so far. It never decreases.
func (w *World) ArchetypeCount() int {
	return w.archetypes.len()
}

// Archetype returns the archetype with the given id
func (w *World) Archetype(id ArchetypeId) *Archetype {
	return w.archetypes.get(id)
}

// Archetypes returns all archetypes in creation order. The slice must not be modified.
func (w *World) Archetypes() []*Archetype {
	return w.archetypes.list
}

// IsAlive reports whether e refers to a live entity
func (w *World) IsAlive(e Entity) bool {
	_, ok := w.entities.resolve(e)
	return ok
}

// Location returns the archetype and row currently holding e
func (w *World) Location(e Entity) (ArchetypeId, int, bool) {
	loc, ok := w.entities.resolve(e)
	if !ok {
		return 0, 0, false
	}
	return loc.archetype, loc.row, true
}

type bundleEntry struct {
	id    ComponentId
	value any
}

// split resolves component values to ids, keeping the last value of each
// type, and partitions them by storage kind.
func (w *World) split(components []any) (dense, sparse []bundleEntry) {
	for _, component := range components {
		id := w.components.mustIdOf(componentType(component))
		entry := bundleEntry{id: id, value: component}

		target := &dense
		if w.components.Info(id).IsSparse() {
			target = &sparse
		}
		replaced := false
		for i := range *target {
			if (*target)[i].id == id {
				(*target)[i] = entry
				replaced = true
				break
			}
		}
		if !replaced {
			*target = append(*target, entry)
		}
	}
	return dense, sparse
}

func lookupEntry(entries []bundleEntry, id ComponentId) (any, bool) {
	for _, entry := range entries {
		if entry.id == id {
			return entry.value, true
		}
	}
	return nil, false
}

// Spawn creates a new entity holding components. Every component type must
// have been registered. The entity is placed in its archetype with a single
// row push, whatever the size of the bundle.
func (w *World) Spawn(components ...any) Entity {
	dense, sparse := w.split(components)

	signature := NewComponentSet()
	for _, entry := range dense {
		signature.Insert(entry.id)
	}
	archetype := w.archetypes.getOrCreate(signature)

	e := w.entities.alloc(location{archetype: archetype.id, row: archetype.Len()})
	archetype.pushEntity(e)
	for _, entry := range dense {
		archetype.column(entry.id).pushValue(entry.value)
	}

	for _, entry := range sparse {
		w.sparseFor(entry.id).insertValue(e, entry.value)
	}
	return e
}

// Despawn removes e and all of its components. Stale or dead handles return false.
func (w *World) Despawn(e Entity) bool {
	loc, ok := w.entities.resolve(e)
	if !ok {
		return false
	}

	archetype := w.archetypes.get(loc.archetype)
	w.checkRow(archetype, loc.row, e)
	if moved, ok := archetype.swapRemove(loc.row); ok {
		w.entities.setRow(moved, loc.row)
	}

	for _, storage := range w.sparse {
		if storage != nil {
			storage.remove(e)
		}
	}

	w.entities.release(e.Index())
	return true
}

// Insert adds or overwrites components on e. Components already present are
// overwritten in place; the new ones are added with at most one archetype move.
// Sparse components never move the entity. Returns false for dead handles.
func (w *World) Insert(e Entity, components ...any) bool {
	loc, ok := w.entities.resolve(e)
	if !ok {
		return false
	}
	dense, sparse := w.split(components)

	for _, entry := range sparse {
		w.sparseFor(entry.id).insertValue(e, entry.value)
	}

	src := w.archetypes.get(loc.archetype)
	var added []bundleEntry
	for _, entry := range dense {
		if col := src.column(entry.id); col != nil {
			col.set(loc.row, entry.value)
			continue
		}
		added = append(added, entry)
	}
	if len(added) == 0 {
		return true
	}

	var dst *Archetype
	if len(added) == 1 {
		dst = w.archetypes.addTarget(src, added[0].id)
	} else {
		signature := src.signature.clone()
		for _, entry := range added {
			signature.Insert(entry.id)
		}
		dst = w.archetypes.getOrCreate(signature)
	}

	w.move(e, loc, src, dst, func(id ComponentId, col column) {
		value, _ := lookupEntry(added, id)
		col.pushValue(value)
	})
	return true
}

// Remove removes the given component types from e and returns how many were
// actually present. Dense removals cost at most one archetype move.
func (w *World) Remove(e Entity, types ...reflect.Type) int {
	loc, ok := w.entities.resolve(e)
	if !ok {
		return 0
	}

	src := w.archetypes.get(loc.archetype)
	removed := 0
	var dropped []ComponentId
	for _, t := range types {
		id, ok := w.components.IdOf(t)
		if !ok {
			continue
		}
		if w.components.Info(id).IsSparse() {
			if storage := w.sparseStorage(id); storage != nil && storage.remove(e) {
				removed++
			}
			continue
		}
		if src.signature.Contains(id) && !containsId(dropped, id) {
			dropped = append(dropped, id)
		}
	}
	if len(dropped) == 0 {
		return removed
	}

	var dst *Archetype
	if len(dropped) == 1 {
		dst = w.archetypes.removeTarget(src, dropped[0])
	} else {
		signature := src.signature.clone()
		for _, id := range dropped {
			signature.bits.Clear(uint(id))
		}
		dst = w.archetypes.getOrCreate(signature)
	}

	w.move(e, loc, src, dst, nil)
	return removed + len(dropped)
}

// GetComponent returns a pointer to the component of type t on e, or nil.
func (w *World) GetComponent(e Entity, t reflect.Type) any {
	loc, ok := w.entities.resolve(e)
	if !ok {
		return nil
	}
	id, ok := w.components.IdOf(t)
	if !ok {
		return nil
	}
	if w.components.Info(id).IsSparse() {
		if storage := w.sparseStorage(id); storage != nil {
			return storage.value(e)
		}
		return nil
	}
	col := w.archetypes.get(loc.archetype).column(id)
	if col == nil {
		return nil
	}
	return col.value(loc.row)
}

// HasComponent reports whether e currently holds a component of type t.
func (w *World) HasComponent(e Entity, t reflect.Type) bool {
	return w.GetComponent(e, t) != nil
}

// ComponentsOf returns pointers to every component held by e, dense ones first
// in component id order, followed by sparse ones.
func (w *World) ComponentsOf(e Entity) []any {
	loc, ok := w.entities.resolve(e)
	if !ok {
		return nil
	}
	archetype := w.archetypes.get(loc.archetype)
	result := make([]any, 0, len(archetype.columns))
	for _, col := range archetype.columns {
		result = append(result, col.value(loc.row))
	}
	for _, storage := range w.sparse {
		if storage == nil {
			continue
		}
		if value := storage.value(e); value != nil {
			result = append(result, value)
		}
	}
	return result
}

// move relocates the row of e from src to dst. Columns shared by both
// archetypes are copied; columns only present in dst are filled by fill;
// values of columns only present in src are dropped.
func (w *World) move(e Entity, loc location, src, dst *Archetype, fill func(ComponentId, column)) {
	w.checkRow(src, loc.row, e)

	dstRow := dst.pushEntity(e)
	for i, id := range dst.ids {
		col := dst.columns[i]
		if srcCol := src.column(id); srcCol != nil {
			col.pushFrom(srcCol, loc.row)
		} else {
			fill(id, col)
		}
	}

	if moved, ok := src.swapRemove(loc.row); ok {
		w.entities.setRow(moved, loc.row)
	}
	w.entities.setLocation(e, location{archetype: dst.id, row: dstRow})
}

func (w *World) checkRow(archetype *Archetype, row int, e Entity) {
	if row >= len(archetype.entities) || archetype.entities[row] != e {
		panic(fmt.Sprintf("ecs: directory places %s at row %d of archetype %d, which holds another entity", e, row, archetype.id))
	}
}

// sparseFor returns the sparse storage of id, creating it on first use.
func (w *World) sparseFor(id ComponentId) sparseStorage {
	if int(id) >= len(w.sparse) {
		grown := make([]sparseStorage, w.components.Len())
		copy(grown, w.sparse)
		w.sparse = grown
	}
	if w.sparse[id] == nil {
		w.sparse[id] = w.components.Info(id).newSparse()
	}
	return w.sparse[id]
}

// sparseStorage returns the sparse storage of id, or nil if nothing was ever stored.
func (w *World) sparseStorage(id ComponentId) sparseStorage {
	if int(id) >= len(w.sparse) {
		return nil
	}
	return w.sparse[id]
}

// checkConsistency verifies that the entity directory and every archetype
// agree on where each live entity is stored.
func (w *World) checkConsistency() error {
	rows := 0
	for _, archetype := range w.archetypes.list {
		for _, col := range archetype.columns {
			if col.Len() != len(archetype.entities) {
				return eris.Errorf("archetype %d: column has %d rows, entity list has %d", archetype.id, col.Len(), len(archetype.entities))
			}
		}
		for row, e := range archetype.entities {
			loc, ok := w.entities.resolve(e)
			if !ok {
				return eris.Errorf("archetype %d row %d holds dead entity %s", archetype.id, row, e)
			}
			if loc.archetype != archetype.id || loc.row != row {
				return eris.Errorf("entity %s stored at %d/%d but directory says %d/%d", e, archetype.id, row, loc.archetype, loc.row)
			}
		}
		rows += len(archetype.entities)
	}
	if rows != w.entities.len() {
		return eris.Errorf("archetypes hold %d rows, directory has %d live entities", rows, w.entities.len())
	}
	for id, storage := range w.sparse {
		if storage == nil {
			continue
		}
		for i := 0; i < storage.Len(); i++ {
			if e := storage.entityAt(i); !w.IsAlive(e) {
				return eris.Errorf("sparse storage of component %d holds dead entity %s", id, e)
			}
		}
	}
	return nil
}

func containsId(ids []ComponentId, id ComponentId) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
