package ecs

import "reflect"

// Commands provides a buffer for deferred structural changes that are applied
// at the end of a frame. This keeps the world stable while systems iterate it.
type Commands struct {
	spawns   []spawnCommand
	despawns []Entity
	inserts  []insertCommand
	removes  []removeCommand
	defers   []func()
}

func newCommands() *Commands {
	return &Commands{}
}

// NewCommands creates an empty command buffer
func NewCommands() *Commands {
	return newCommands()
}

type spawnCommand struct {
	components []any
}

type insertCommand struct {
	entity     Entity
	components []any
}

type removeCommand struct {
	entity Entity
	types  []reflect.Type
}

// Defer queues a function to run after every other command.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Spawn queues an entity spawn with the given components.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, spawnCommand{components: components})
}

// Despawn queues an entity removal.
func (c *Commands) Despawn(entity Entity) {
	c.despawns = append(c.despawns, entity)
}

// Insert queues adding or overwriting components on entity.
func (c *Commands) Insert(entity Entity, components ...any) {
	c.inserts = append(c.inserts, insertCommand{
		entity:     entity,
		components: components,
	})
}

// Remove queues removing component types from entity.
func (c *Commands) Remove(entity Entity, types ...reflect.Type) {
	c.removes = append(c.removes, removeCommand{
		entity: entity,
		types:  types,
	})
}

// Len returns the number of queued commands
func (c *Commands) Len() int {
	return len(c.spawns) + len(c.despawns) + len(c.inserts) + len(c.removes) + len(c.defers)
}

// Flush applies all queued commands to w, then resets the buffer. Despawns
// run first, then removes, inserts, spawns and deferred functions. Changes to
// entities despawned in the same pass are skipped. Commands queued by a
// deferred function are applied in a further pass before Flush returns.
func (c *Commands) Flush(w *World) {
	for c.Len() > 0 {
		pass := *c
		*c = Commands{}
		pass.apply(w)

		if c.Len() == 0 {
			pass.reset()
			*c = pass
		}
	}
}

func (c *Commands) apply(w *World) {
	var despawned map[Entity]struct{}
	if len(c.despawns) > 0 {
		despawned = make(map[Entity]struct{}, len(c.despawns))
	}

	for _, e := range c.despawns {
		w.Despawn(e)
		despawned[e] = struct{}{}
	}

	for _, cmd := range c.removes {
		if _, ok := despawned[cmd.entity]; !ok {
			w.Remove(cmd.entity, cmd.types...)
		}
	}

	for _, cmd := range c.inserts {
		if _, ok := despawned[cmd.entity]; !ok {
			w.Insert(cmd.entity, cmd.components...)
		}
	}

	for _, cmd := range c.spawns {
		w.Spawn(cmd.components...)
	}

	for _, fn := range c.defers {
		fn()
	}
}

// reset truncates every buffer, keeping capacity.
func (c *Commands) reset() {
	clear(c.spawns)
	clear(c.inserts)
	clear(c.removes)
	clear(c.defers)
	c.spawns = c.spawns[:0]
	c.despawns = c.despawns[:0]
	c.inserts = c.inserts[:0]
	c.removes = c.removes[:0]
	c.defers = c.defers[:0]
}
