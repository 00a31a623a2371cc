package ecs

import (
	"reflect"
	"slices"
)

// Access is the declared data access of a query or system. The scheduler uses
// it to decide which systems may run at the same time.
type Access struct {
	Shared    ComponentSet
	Exclusive ComponentSet
	// Resources lists resource types a system reaches through Singleton fields.
	// Singletons hand out mutable pointers, so resource access is always exclusive.
	Resources []reflect.Type
}

// Conflicts reports whether a and other cannot run concurrently: one writes a
// component the other reads or writes, or both touch the same resource.
func (a Access) Conflicts(other Access) bool {
	if a.Exclusive.Intersects(other.Exclusive) ||
		a.Exclusive.Intersects(other.Shared) ||
		other.Exclusive.Intersects(a.Shared) {
		return true
	}
	for _, t := range a.Resources {
		if slices.Contains(other.Resources, t) {
			return true
		}
	}
	return false
}

// merge folds other into a.
func (a *Access) merge(other Access) {
	for _, id := range other.Shared.Ids() {
		a.Shared.Insert(id)
	}
	for _, id := range other.Exclusive.Ids() {
		a.Exclusive.Insert(id)
	}
	for _, t := range other.Resources {
		if !slices.Contains(a.Resources, t) {
			a.Resources = append(a.Resources, t)
		}
	}
}
