package ecs

import (
	"reflect"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// ComponentId identifies a component type within one Components registry.
// Ids from different registries must never be compared.
type ComponentId uint32

// StorageKind selects how values of a component type are stored.
type StorageKind uint8

const (
	// StorageDense stores values in archetype columns; presence is part of the archetype signature.
	StorageDense StorageKind = iota
	// StorageSparse stores values in a per-type map keyed by entity; presence does not affect the archetype.
	StorageSparse
)

func (k StorageKind) String() string {
	switch k {
	case StorageDense:
		return "dense"
	case StorageSparse:
		return "sparse"
	default:
		return "unknown"
	}
}

// ComponentInfo is the registry record of one component type. The function
// fields form the type-erased table used by storage code.
type ComponentInfo struct {
	id   ComponentId
	typ  reflect.Type
	kind StorageKind

	newColumn func() column
	newSparse func() sparseStorage
}

func (i *ComponentInfo) Id() ComponentId    { return i.id }
func (i *ComponentInfo) Type() reflect.Type { return i.typ }
func (i *ComponentInfo) Kind() StorageKind  { return i.kind }
func (i *ComponentInfo) Name() string       { return i.typ.String() }
func (i *ComponentInfo) IsSparse() bool     { return i.kind == StorageSparse }

// Components manages component type registration for one World.
type Components struct {
	byType map[reflect.Type]ComponentId
	infos  []*ComponentInfo
	logger *zerolog.Logger
}

func newComponents(logger *zerolog.Logger) *Components {
	return &Components{
		byType: make(map[reflect.Type]ComponentId),
		logger: logger,
	}
}

// RegisterComponent returns the id of T, registering it with dense storage on first use.
// Calling it for a type already registered as sparse returns the existing id.
func RegisterComponent[T any](c *Components) ComponentId {
	if id, ok := c.byType[reflect.TypeFor[T]()]; ok {
		return id
	}
	id, _ := RegisterComponentWithStorage[T](c, StorageDense)
	return id
}

// RegisterSparseComponent registers T with sparse storage.
func RegisterSparseComponent[T any](c *Components) (ComponentId, error) {
	return RegisterComponentWithStorage[T](c, StorageSparse)
}

// RegisterComponentWithStorage registers T with the given storage kind. Registering the
// same type again with the same kind is a no-op; with a different kind it fails with
// ErrStorageKindConflict.
func RegisterComponentWithStorage[T any](c *Components, kind StorageKind) (ComponentId, error) {
	t := reflect.TypeFor[T]()
	validateComponentType(t)

	if id, ok := c.byType[t]; ok {
		info := c.infos[id]
		if info.kind != kind {
			return id, eris.Wrapf(ErrStorageKindConflict, "component %s is registered as %s, requested %s", t, info.kind, kind)
		}
		return id, nil
	}

	id := ComponentId(len(c.infos))
	info := &ComponentInfo{
		id:   id,
		typ:  t,
		kind: kind,
		newColumn: func() column {
			return &denseColumn[T]{}
		},
		newSparse: func() sparseStorage {
			return newSparseSet[T]()
		},
	}
	c.add(info)
	return id, nil
}

// registerType registers t as a dense component when only its reflect.Type is
// known. Its columns go through reflection; registering the type with
// RegisterComponent beforehand gives it typed columns.
func (c *Components) registerType(t reflect.Type) ComponentId {
	if id, ok := c.byType[t]; ok {
		return id
	}
	validateComponentType(t)

	id := ComponentId(len(c.infos))
	c.add(&ComponentInfo{
		id:   id,
		typ:  t,
		kind: StorageDense,
		newColumn: func() column {
			return newReflectColumn(t)
		},
	})
	return id
}

func (c *Components) add(info *ComponentInfo) {
	c.infos = append(c.infos, info)
	c.byType[info.typ] = info.id

	c.logger.Debug().
		Int("component_id", int(info.id)).
		Str("component_name", info.Name()).
		Str("storage", info.kind.String()).
		Msg("component registered")
}

// ComponentIdFor returns the id of T if it has been registered.
func ComponentIdFor[T any](c *Components) (ComponentId, bool) {
	id, ok := c.byType[reflect.TypeFor[T]()]
	return id, ok
}

// IdOf returns the id registered for t.
func (c *Components) IdOf(t reflect.Type) (ComponentId, bool) {
	id, ok := c.byType[t]
	return id, ok
}

// Info returns the registry record for id. Unknown ids panic.
func (c *Components) Info(id ComponentId) *ComponentInfo {
	return c.infos[id]
}

// Len returns the number of registered component types.
func (c *Components) Len() int {
	return len(c.infos)
}

// All returns every registered component in id order.
func (c *Components) All() []*ComponentInfo {
	return c.infos
}

// mustIdOf returns the id registered for t, panicking when the type is unknown.
// Values passed as any can only be stored once their type has been registered.
func (c *Components) mustIdOf(t reflect.Type) ComponentId {
	id, ok := c.byType[t]
	if !ok {
		panic("ecs: component type " + t.String() + " not registered")
	}
	return id
}

// componentType strips one level of pointer from a component value's type.
func componentType(component any) reflect.Type {
	t := reflect.TypeOf(component)
	if t == nil {
		panic("ecs: nil component")
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

func validateComponentType(t reflect.Type) {
	// Components can be structs or primitives (int, string, etc.)
	// But not pointers, maps, channels, or functions (those aren't value types)
	switch t.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		panic("ecs: components cannot be pointers, maps, channels, functions or interfaces: " + t.String())
	}
}
