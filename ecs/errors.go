package ecs

import "github.com/rotisserie/eris"

var (
	// ErrStorageKindConflict is returned when a component type is registered under a
	// storage kind different from the one it was first registered with.
	ErrStorageKindConflict = eris.New("component already registered with a different storage kind")

	// ErrConflictingAccess is returned when a query declares shared and exclusive
	// access (or exclusive access twice) to the same component type.
	ErrConflictingAccess = eris.New("query declares conflicting access to a component")

	// ErrInvalidQuery is returned when a query type parameter is not a valid access pattern.
	ErrInvalidQuery = eris.New("invalid query type")

	ErrEntityNotFound = eris.New("entity does not exist")
)
