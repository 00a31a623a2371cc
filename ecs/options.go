package ecs

import "github.com/rs/zerolog"

// WorldOption configures a World at construction time.
type WorldOption func(*World)

// WithLogger sets the logger used for registry and archetype graph events.
// The default logger discards everything.
func WithLogger(logger zerolog.Logger) WorldOption {
	return func(w *World) {
		w.logger = logger
	}
}

// WithEntityCapacity preallocates the entity directory for n entities.
func WithEntityCapacity(n int) WorldOption {
	return func(w *World) {
		if n > 0 {
			w.capacity = n
		}
	}
}
