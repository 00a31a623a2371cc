package ecs

import "reflect"

// Singleton provides efficient access to a single value that is not
// associated with any entity. Use this for global game state, configuration,
// or other singleton data. The value lives in Resources.
type Singleton[T any] struct {
	resources *Resources
	ptr       *T
	removals  uint64
}

// NewSingleton creates a Singleton accessor over r. If the value does not exist
// yet it is created from initializer, or the zero value when none is given.
// This guarantees the value exists after the call.
func NewSingleton[T any](r *Resources, initializer ...T) *Singleton[T] {
	ptr, _ := InitResource(r, func() *T {
		value := new(T)
		if len(initializer) > 0 {
			*value = initializer[0]
		}
		return value
	})

	return &Singleton[T]{
		resources: r,
		ptr:       ptr,
		removals:  r.removals.Load(),
	}
}

// Init binds the Singleton to r, creating a zero value if none exists.
// This is called automatically by the Scheduler during system registration.
func (s *Singleton[T]) Init(r *Resources) {
	s.resources = r
	s.removals = r.removals.Load()
	s.ptr, _ = InitResource[T](r, nil)
}

// Get returns a pointer to the singleton value, or nil if it does not exist.
func (s *Singleton[T]) Get() *T {
	if s.ptr == nil || s.stale() {
		s.updateCache()
	}
	return s.ptr
}

// Exists returns true if the singleton value is present
func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}

func (s *Singleton[T]) stale() bool {
	return s.resources != nil && s.resources.removals.Load() != s.removals
}

// updateCache refreshes the cached pointer from the store
func (s *Singleton[T]) updateCache() {
	if s.resources == nil {
		return
	}
	s.removals = s.resources.removals.Load()
	s.ptr = GetResource[T](s.resources)
}

func (s *Singleton[T]) resourceType() reflect.Type {
	return reflect.TypeFor[T]()
}
