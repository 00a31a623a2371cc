package ecs

import (
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// Logger writes structured dumps of world state.
type Logger struct {
	*zerolog.Logger
}

// NewLogger wraps l
func NewLogger(l *zerolog.Logger) *Logger {
	return &Logger{Logger: l}
}

func (_ *Logger) loadComponentIntoArrayLogger(info *ComponentInfo, arrayLogger *zerolog.Array) *zerolog.Array {
	dictLogger := zerolog.Dict()
	dictLogger = dictLogger.Int("component_id", int(info.Id()))
	dictLogger = dictLogger.Str("component_name", info.Name())
	dictLogger = dictLogger.Str("storage", info.Kind().String())
	return arrayLogger.Dict(dictLogger)
}

func (l *Logger) loadComponentsToEvent(zeroLoggerEvent *zerolog.Event, w *World) *zerolog.Event {
	infos := w.Components().All()
	zeroLoggerEvent.Int("total_components", len(infos))
	arrayLogger := zerolog.Arr()
	for _, info := range infos {
		arrayLogger = l.loadComponentIntoArrayLogger(info, arrayLogger)
	}
	return zeroLoggerEvent.Array("components", arrayLogger)
}

func (l *Logger) loadArchetypesToEvent(zeroLoggerEvent *zerolog.Event, w *World) *zerolog.Event {
	zeroLoggerEvent.Int("total_archetypes", w.ArchetypeCount())
	arrayLogger := zerolog.Arr()
	for _, archetype := range w.Archetypes() {
		ids := zerolog.Arr()
		for _, id := range archetype.Components() {
			ids = ids.Int(int(id))
		}
		dictLogger := zerolog.Dict().
			Int("archetype_id", int(archetype.Id())).
			Int("entity_count", archetype.Len()).
			Array("component_ids", ids)
		arrayLogger = arrayLogger.Dict(dictLogger)
	}
	return zeroLoggerEvent.Array("archetypes", arrayLogger)
}

// LogComponents logs every component type registered with the world
func (l *Logger) LogComponents(w *World, level zerolog.Level) {
	zeroLoggerEvent := l.WithLevel(level)
	zeroLoggerEvent = l.loadComponentsToEvent(zeroLoggerEvent, w)
	zeroLoggerEvent.Send()
}

// LogArchetypes logs every archetype with its components and entity count
func (l *Logger) LogArchetypes(w *World, level zerolog.Level) {
	zeroLoggerEvent := l.WithLevel(level)
	zeroLoggerEvent = l.loadArchetypesToEvent(zeroLoggerEvent, w)
	zeroLoggerEvent.Send()
}

// LogEntity logs the location and components of e
func (l *Logger) LogEntity(level zerolog.Level, w *World, e Entity) error {
	archetypeId, row, ok := w.Location(e)
	if !ok {
		err := eris.Wrapf(ErrEntityNotFound, "entity %s", e)
		l.Err(err).Msg("cannot log entity")
		return err
	}

	arrayLogger := zerolog.Arr()
	for _, id := range w.Archetype(archetypeId).Components() {
		arrayLogger = l.loadComponentIntoArrayLogger(w.Components().Info(id), arrayLogger)
	}
	for _, info := range w.Components().All() {
		if info.IsSparse() && w.HasComponent(e, info.Type()) {
			arrayLogger = l.loadComponentIntoArrayLogger(info, arrayLogger)
		}
	}

	l.WithLevel(level).
		Array("components", arrayLogger).
		Uint64("entity_id", uint64(e)).
		Int("archetype_id", int(archetypeId)).
		Int("row", row).
		Send()
	return nil
}

// LogWorld logs everything about the world (components and archetypes)
func (l *Logger) LogWorld(w *World, level zerolog.Level) {
	zeroLoggerEvent := l.WithLevel(level)
	zeroLoggerEvent = l.loadComponentsToEvent(zeroLoggerEvent, w)
	zeroLoggerEvent = l.loadArchetypesToEvent(zeroLoggerEvent, w)
	zeroLoggerEvent.Int("total_entities", w.Len())
	zeroLoggerEvent.Send()
}

// CreateSystemLogger creates a sub logger with the entry {"system": systemName}
func (l *Logger) CreateSystemLogger(systemName string) Logger {
	zeroLogger := l.Logger.With().
		Str("system", systemName).Logger()
	return Logger{
		&zeroLogger,
	}
}
