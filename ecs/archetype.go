package ecs

import (
	"fmt"
	"iter"
	"slices"

	"github.com/kamstrup/intmap"
)

// ArchetypeId indexes the append-only archetype list of a World. Archetypes
// are never removed, so an id stays valid for the lifetime of the World.
type ArchetypeId uint32

// EmptyArchetype holds entities without dense components.
const EmptyArchetype ArchetypeId = 0

// Archetype represents a unique combination of dense component types. It owns
// one column per component and the row → entity back-mapping.
type Archetype struct {
	id        ArchetypeId
	signature ComponentSet
	ids       []ComponentId
	columns   []column
	positions *intmap.Map[ComponentId, int]
	entities  []Entity

	// memoized structural transitions, keyed by the component added or removed
	addEdges    *intmap.Map[ComponentId, ArchetypeId]
	removeEdges *intmap.Map[ComponentId, ArchetypeId]
}

// newArchetype creates an archetype with fresh, empty columns for every id in signature.
func newArchetype(id ArchetypeId, signature ComponentSet, registry *Components) *Archetype {
	ids := signature.Ids()
	a := &Archetype{
		id:          id,
		signature:   signature,
		ids:         ids,
		columns:     make([]column, len(ids)),
		positions:   intmap.New[ComponentId, int](len(ids) + 1),
		addEdges:    intmap.New[ComponentId, ArchetypeId](8),
		removeEdges: intmap.New[ComponentId, ArchetypeId](8),
	}

	for idx, compId := range ids {
		info := registry.Info(compId)
		if info.IsSparse() {
			panic("ecs: sparse component " + info.Name() + " in archetype signature")
		}
		a.columns[idx] = info.newColumn()
		a.positions.Put(compId, idx)
	}

	return a
}

// Id returns the archetype's index in the archetype list
func (a *Archetype) Id() ArchetypeId {
	return a.id
}

// Signature returns the set of dense component ids stored in this archetype
func (a *Archetype) Signature() ComponentSet {
	return a.signature
}

// Components returns the archetype's component ids in ascending order
func (a *Archetype) Components() []ComponentId {
	return a.ids
}

// HasComponent checks if this archetype stores the given component
func (a *Archetype) HasComponent(id ComponentId) bool {
	return a.signature.Contains(id)
}

// Len returns the number of rows (live entities) in the archetype
func (a *Archetype) Len() int {
	return len(a.entities)
}

// Entities returns the row → entity mapping. The slice must not be modified.
func (a *Archetype) Entities() []Entity {
	return a.entities
}

// Iter returns an iterator over the entities stored in this archetype
func (a *Archetype) Iter() iter.Seq[Entity] {
	return slices.Values(a.entities)
}

func (a *Archetype) column(id ComponentId) column {
	pos, ok := a.positions.Get(id)
	if !ok {
		return nil
	}
	return a.columns[pos]
}

func (a *Archetype) columnPosition(id ComponentId) int {
	pos, ok := a.positions.Get(id)
	if !ok {
		return -1
	}
	return pos
}

// pushEntity appends e to the row mapping. Every column must receive exactly
// one value for the new row before the archetype is observed again.
func (a *Archetype) pushEntity(e Entity) int {
	a.entities = append(a.entities, e)
	return len(a.entities) - 1
}

// swapRemove drops every component value of row and moves the last row into
// its place. It returns the entity that now occupies row, if any.
func (a *Archetype) swapRemove(row int) (Entity, bool) {
	last := len(a.entities) - 1
	if row < 0 || row > last {
		panic(fmt.Sprintf("ecs: row %d out of bounds in archetype %d (len %d)", row, a.id, len(a.entities)))
	}

	for _, col := range a.columns {
		col.swapRemove(row)
	}

	moved := a.entities[last]
	a.entities[row] = moved
	a.entities[last] = 0
	a.entities = a.entities[:last]

	if row == last {
		return 0, false
	}
	return moved, true
}

// checkRows panics if any column disagrees with the row mapping.
func (a *Archetype) checkRows() {
	for idx, col := range a.columns {
		if col.Len() != len(a.entities) {
			panic(fmt.Sprintf("ecs: archetype %d column %d has %d rows, expected %d", a.id, a.ids[idx], col.Len(), len(a.entities)))
		}
	}
}
