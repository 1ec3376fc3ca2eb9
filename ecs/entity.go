package ecs

import "fmt"

// Entity packs a slot index in the low 32 bits and the slot's generation in
// the high 32 bits. Index 0 is never handed out, so the zero Entity is
// invalid.
type Entity uint64

type entityID uint32
type generation uint32

const entityIDBits = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() entityID {
	return entityID(uint32(e))
}

func (e Entity) generation() generation {
	return generation(uint32(uint64(e) >> entityIDBits))
}

func (e Entity) String() string {
	return fmt.Sprintf("%d:%d", e.id(), e.generation())
}

func (e Entity) Valid() bool {
	return e.id() > 0
}

// entityTable hands out entity slots and recycles destroyed ones with a bumped
// generation so stale handles stop resolving.
type entityTable struct {
	gens  []generation
	alive []bool
	free  []entityID
	live  int
}

func (t *entityTable) create() Entity {
	if n := len(t.free); n > 0 {
		id := t.free[n-1]
		t.free = t.free[:n-1]
		t.alive[id] = true
		t.live++
		return makeEntity(id, t.gens[id])
	}
	if len(t.gens) == 0 {
		// Slot 0 is reserved.
		t.gens = append(t.gens, 0)
		t.alive = append(t.alive, false)
	}
	id := entityID(len(t.gens))
	t.gens = append(t.gens, 0)
	t.alive = append(t.alive, true)
	t.live++
	return makeEntity(id, 0)
}

func (t *entityTable) isAlive(e Entity) bool {
	id := e.id()
	if id == 0 || int(id) >= len(t.gens) {
		return false
	}
	return t.alive[id] && t.gens[id] == e.generation()
}

func (t *entityTable) destroy(e Entity) bool {
	if !t.isAlive(e) {
		return false
	}
	id := e.id()
	t.alive[id] = false
	t.gens[id]++
	t.free = append(t.free, id)
	t.live--
	return true
}

func (t *entityTable) entities() []Entity {
	out := make([]Entity, 0, t.live)
	for i := 1; i < len(t.gens); i++ {
		if t.alive[i] {
			out = append(out, makeEntity(entityID(i), t.gens[i]))
		}
	}
	return out
}
