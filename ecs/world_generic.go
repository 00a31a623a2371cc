package ecs

import "reflect"

// Insert adds or overwrites the component value of type T on e. The target
// archetype comes from the cached add edge, so repeated inserts of the same
// type into the same archetype cost a single row move.
func Insert[T any](w *World, e Entity, value T) bool {
	loc, ok := w.entities.resolve(e)
	if !ok {
		return false
	}
	id := RegisterComponent[T](w.components)

	if w.components.Info(id).IsSparse() {
		w.sparseFor(id).(*sparseSet[T]).insert(e, value)
		return true
	}

	src := w.archetypes.get(loc.archetype)
	if col := src.column(id); col != nil {
		if typed, ok := col.(*denseColumn[T]); ok {
			typed.data[loc.row] = value
		} else {
			col.set(loc.row, value)
		}
		return true
	}

	dst := w.archetypes.addTarget(src, id)
	w.move(e, loc, src, dst, func(_ ComponentId, col column) {
		if typed, ok := col.(*denseColumn[T]); ok {
			typed.push(value)
		} else {
			col.pushValue(value)
		}
	})
	return true
}

// Remove removes the component of type T from e. Returns false if e is dead
// or did not hold one.
func Remove[T any](w *World, e Entity) bool {
	return w.Remove(e, reflect.TypeFor[T]()) == 1
}

// Get returns a pointer to the component of type T on e, or nil. The pointer
// is valid until the next structural mutation of the world.
func Get[T any](w *World, e Entity) *T {
	loc, ok := w.entities.resolve(e)
	if !ok {
		return nil
	}
	id, ok := ComponentIdFor[T](w.components)
	if !ok {
		return nil
	}

	if w.components.Info(id).IsSparse() {
		storage := w.sparseStorage(id)
		if storage == nil {
			return nil
		}
		return storage.(*sparseSet[T]).get(e)
	}

	col := w.archetypes.get(loc.archetype).column(id)
	if col == nil {
		return nil
	}
	return (*T)(col.pointer(loc.row))
}

// Has reports whether e holds a component of type T
func Has[T any](w *World, e Entity) bool {
	return Get[T](w, e) != nil
}
