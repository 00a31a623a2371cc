package ecs

import "fmt"

// Entity encodes both the generation (upper 32 bits) and the directory index (lower 32 bits).
// The zero Entity is never issued and can be used as "no entity".
type Entity uint64

// NewEntity creates an Entity from a directory index and generation
func NewEntity(index uint32, generation uint32) Entity {
	return Entity(uint64(generation)<<32 | uint64(index))
}

// Index extracts the directory index from the entity
func (e Entity) Index() uint32 {
	return uint32(e & 0xFFFFFFFF)
}

// Generation extracts the generation counter from the entity
func (e Entity) Generation() uint32 {
	return uint32(e >> 32)
}

func (e Entity) String() string {
	return fmt.Sprintf("%dv%d", e.Index(), e.Generation())
}

// location is where the row data of a live entity currently lives.
type location struct {
	archetype ArchetypeId
	row       int
}

type entityMeta struct {
	generation uint32
	alive      bool
	loc        location
}

// entities is the entity directory. Freed indices are reused LIFO and every
// reuse bumps the generation so stale handles stop resolving.
type entities struct {
	metas    []entityMeta
	freeList []uint32
	live     int
}

func newEntities(capacity int) *entities {
	return &entities{
		metas: make([]entityMeta, 0, capacity),
	}
}

// alloc hands out a fresh entity placed at loc.
func (d *entities) alloc(loc location) Entity {
	var index uint32
	if n := len(d.freeList); n > 0 {
		index = d.freeList[n-1]
		d.freeList = d.freeList[:n-1]
	} else {
		index = uint32(len(d.metas))
		d.metas = append(d.metas, entityMeta{})
	}

	meta := &d.metas[index]
	if meta.alive {
		panic(fmt.Sprintf("ecs: entity directory slot %d handed out while still alive", index))
	}
	meta.generation++
	if meta.generation == 0 {
		// wrapped: skip 0 so the zero Entity stays invalid
		meta.generation = 1
	}
	meta.alive = true
	meta.loc = loc
	d.live++
	return NewEntity(index, meta.generation)
}

// resolve is the single source of truth for handle liveness.
func (d *entities) resolve(e Entity) (location, bool) {
	index := e.Index()
	if int(index) >= len(d.metas) {
		return location{}, false
	}
	meta := &d.metas[index]
	if !meta.alive || meta.generation != e.Generation() {
		return location{}, false
	}
	return meta.loc, true
}

// free releases the slot of e. Returns false for dead or stale handles.
func (d *entities) free(e Entity) bool {
	if _, ok := d.resolve(e); !ok {
		return false
	}
	d.release(e.Index())
	return true
}

func (d *entities) release(index uint32) {
	meta := &d.metas[index]
	if !meta.alive {
		panic(fmt.Sprintf("ecs: double free of entity directory slot %d", index))
	}
	meta.alive = false
	meta.loc = location{}
	d.freeList = append(d.freeList, index)
	d.live--
}

// setLocation moves the bookkeeping of a live entity.
func (d *entities) setLocation(e Entity, loc location) {
	meta := &d.metas[e.Index()]
	if !meta.alive || meta.generation != e.Generation() {
		panic(fmt.Sprintf("ecs: relocating dead entity %s", e))
	}
	meta.loc = loc
}

func (d *entities) setRow(e Entity, row int) {
	meta := &d.metas[e.Index()]
	if !meta.alive || meta.generation != e.Generation() {
		panic(fmt.Sprintf("ecs: relocating dead entity %s", e))
	}
	meta.loc.row = row
}

func (d *entities) len() int {
	return d.live
}
