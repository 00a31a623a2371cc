package ecs

import (
	"reflect"
	"sync"
	"sync/atomic"
)

// ResourceId identifies a resource slot. Ids of removed resources are reused.
type ResourceId int

// Resources is a keyed-singleton store: at most one value per Go type, each
// addressed by a stable pointer until it is removed. A World and the cached
// state of queries are themselves kept here.
//
// All methods are safe for concurrent use. Values returned as pointers are not
// guarded; synchronising access to their contents is up to the caller.
type Resources struct {
	mu      sync.RWMutex
	items   []any
	types   map[reflect.Type]ResourceId
	freeIds []ResourceId

	// removals counts RemoveResource calls so cached pointers can detect staleness
	removals atomic.Uint64
}

// NewResources creates an empty resource store
func NewResources() *Resources {
	return &Resources{
		types: make(map[reflect.Type]ResourceId),
	}
}

func (r *Resources) lookup(t reflect.Type) (any, ResourceId, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.types[t]
	if !ok {
		return nil, -1, false
	}
	return r.items[id], id, true
}

// put stores item for t unless another goroutine got there first, in which
// case the existing value wins.
func (r *Resources) put(t reflect.Type, item any) (any, ResourceId) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.types[t]; ok {
		return r.items[id], id
	}

	var id ResourceId
	if n := len(r.freeIds); n > 0 {
		id = r.freeIds[n-1]
		r.freeIds = r.freeIds[:n-1]
		r.items[id] = item
	} else {
		id = ResourceId(len(r.items))
		r.items = append(r.items, item)
	}
	r.types[t] = id
	return item, id
}

// Get returns the resource stored under id as a pointer, or nil.
func (r *Resources) Get(id ResourceId) any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if id < 0 || int(id) >= len(r.items) {
		return nil
	}
	return r.items[id]
}

// Len returns the number of stored resources
func (r *Resources) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.types)
}

// Types returns the types of all stored resources
func (r *Resources) Types() []reflect.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]reflect.Type, 0, len(r.types))
	for _, item := range r.items {
		if item != nil {
			types = append(types, reflect.TypeOf(item).Elem())
		}
	}
	return types
}

// InsertResource stores value as the resource of type T. An existing value is
// overwritten in place, so pointers handed out earlier observe the new value.
func InsertResource[T any](r *Resources, value T) (*T, ResourceId) {
	t := reflect.TypeFor[T]()
	if item, id, ok := r.lookup(t); ok {
		ptr := item.(*T)
		*ptr = value
		return ptr, id
	}
	cell := new(T)
	*cell = value
	item, id := r.put(t, cell)
	ptr := item.(*T)
	if ptr != cell {
		*ptr = value
	}
	return ptr, id
}

// InitResource returns the resource of type T, creating it with init (or the
// zero value when init is nil) if it does not exist yet. init runs without
// the store lock held and may itself use the store.
func InitResource[T any](r *Resources, init func() *T) (*T, ResourceId) {
	t := reflect.TypeFor[T]()
	if item, id, ok := r.lookup(t); ok {
		return item.(*T), id
	}

	var cell *T
	if init != nil {
		cell = init()
	}
	if cell == nil {
		cell = new(T)
	}
	item, id := r.put(t, cell)
	return item.(*T), id
}

// GetResource returns the resource of type T, or nil.
func GetResource[T any](r *Resources) *T {
	item, _, ok := r.lookup(reflect.TypeFor[T]())
	if !ok {
		return nil
	}
	return item.(*T)
}

// ResourceIdOf returns the id of the resource of type T
func ResourceIdOf[T any](r *Resources) (ResourceId, bool) {
	_, id, ok := r.lookup(reflect.TypeFor[T]())
	return id, ok
}

// RemoveResource deletes the resource of type T. Returns false if none existed.
func RemoveResource[T any](r *Resources) bool {
	t := reflect.TypeFor[T]()
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.types[t]
	if !ok {
		return false
	}
	delete(r.types, t)
	r.items[id] = nil
	r.freeIds = append(r.freeIds, id)
	r.removals.Add(1)
	return true
}

// WorldFrom returns the World hosted in r, creating it with opts on first use.
func WorldFrom(r *Resources, opts ...WorldOption) *World {
	w, _ := InitResource(r, func() *World {
		return NewWorld(opts...)
	})
	return w
}

// cachedQuery is the resource under which the compiled state of Query[T] is
// kept, one per pattern type.
type cachedQuery[T any] struct {
	state *QueryState
	err   error
}

// QueryFrom returns a query for T over the world hosted in r. The compiled
// state is cached as a resource, so all callers share one QueryState and its
// archetype cache.
func QueryFrom[T any](r *Resources) (*Query[T], error) {
	w := WorldFrom(r)
	cached, _ := InitResource(r, func() *cachedQuery[T] {
		state, err := NewQueryState(w, reflect.TypeFor[T]())
		return &cachedQuery[T]{state: state, err: err}
	})
	if cached.err != nil {
		return nil, cached.err
	}

	q := &Query[T]{}
	q.initFrom(w, cached.state)
	return q, nil
}
