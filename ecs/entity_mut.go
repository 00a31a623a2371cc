package ecs

import "reflect"

// EntityMut is a short-lived handle for chaining structural edits on one
// entity. It must not be kept across operations that may despawn the entity
// through another path.
type EntityMut struct {
	world  *World
	entity Entity
}

// EntityMut returns an edit handle for e, or false if e is not alive.
func (w *World) EntityMut(e Entity) (*EntityMut, bool) {
	if !w.IsAlive(e) {
		return nil, false
	}
	return &EntityMut{world: w, entity: e}, true
}

// Id returns the entity being edited
func (m *EntityMut) Id() Entity {
	return m.entity
}

// Insert adds or overwrites components and returns the handle for chaining.
func (m *EntityMut) Insert(components ...any) *EntityMut {
	m.world.Insert(m.entity, components...)
	return m
}

// Remove removes component types and returns the handle for chaining.
func (m *EntityMut) Remove(types ...reflect.Type) *EntityMut {
	m.world.Remove(m.entity, types...)
	return m
}

// Has reports whether the entity holds a component of type t
func (m *EntityMut) Has(t reflect.Type) bool {
	return m.world.HasComponent(m.entity, t)
}

// Get returns a pointer to the component of type t, or nil
func (m *EntityMut) Get(t reflect.Type) any {
	return m.world.GetComponent(m.entity, t)
}

// Despawn removes the entity. The handle is unusable afterwards.
func (m *EntityMut) Despawn() bool {
	return m.world.Despawn(m.entity)
}
