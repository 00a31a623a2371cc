package ecs

import (
	"github.com/rs/zerolog"
)

// archetypes is the archetype graph: an append-only list of archetypes, a
// signature index, and the add/remove edges cached on each archetype.
type archetypes struct {
	list        []*Archetype
	bySignature map[string]ArchetypeId
	registry    *Components
	logger      *zerolog.Logger
}

func newArchetypes(registry *Components, logger *zerolog.Logger) *archetypes {
	g := &archetypes{
		list:        make([]*Archetype, 0, 16),
		bySignature: make(map[string]ArchetypeId),
		registry:    registry,
		logger:      logger,
	}
	// pre-create the empty archetype so it always has id 0
	g.getOrCreate(ComponentSet{})
	return g
}

// getOrCreate returns the archetype whose signature is exactly signature,
// appending a new one when none exists.
func (g *archetypes) getOrCreate(signature ComponentSet) *Archetype {
	key := signature.key()
	if id, ok := g.bySignature[key]; ok {
		return g.list[id]
	}

	id := ArchetypeId(len(g.list))
	a := newArchetype(id, signature, g.registry)
	g.list = append(g.list, a)
	g.bySignature[key] = id

	if e := g.logger.Debug(); e.Enabled() {
		names := make([]string, len(a.ids))
		for i, compId := range a.ids {
			names[i] = g.registry.Info(compId).Name()
		}
		e.Int("archetype_id", int(id)).Strs("components", names).Msg("archetype created")
	}
	return a
}

// lookup returns the archetype with the given signature without creating it.
func (g *archetypes) lookup(signature ComponentSet) (*Archetype, bool) {
	id, ok := g.bySignature[signature.key()]
	if !ok {
		return nil, false
	}
	return g.list[id], true
}

// addTarget returns the archetype reached from a by adding id, caching the
// edge in both directions.
func (g *archetypes) addTarget(a *Archetype, id ComponentId) *Archetype {
	if target, ok := a.addEdges.Get(id); ok {
		return g.list[target]
	}
	target := g.getOrCreate(a.signature.With(id))
	a.addEdges.Put(id, target.id)
	target.removeEdges.Put(id, a.id)
	return target
}

// removeTarget returns the archetype reached from a by removing id, caching
// the edge in both directions.
func (g *archetypes) removeTarget(a *Archetype, id ComponentId) *Archetype {
	if target, ok := a.removeEdges.Get(id); ok {
		return g.list[target]
	}
	target := g.getOrCreate(a.signature.Without(id))
	a.removeEdges.Put(id, target.id)
	target.addEdges.Put(id, a.id)
	return target
}

func (g *archetypes) get(id ArchetypeId) *Archetype {
	return g.list[id]
}

func (g *archetypes) len() int {
	return len(g.list)
}
