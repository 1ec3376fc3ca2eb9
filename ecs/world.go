package ecs

import (
	"sort"

	"github.com/milk9111/platformer/ecs/component"
)

// World holds entities and one sparse set per component kind. It has no
// systems of its own; a Scheduler drives them.
type World struct {
	entities entityTable
	stores   map[component.ComponentID]*SparseSet
}

func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*SparseSet)}
}

func CreateEntity(w *World) Entity {
	if w == nil {
		return 0
	}
	return w.entities.create()
}

// DestroyEntity removes e and all of its components. It returns false when e
// was already dead.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.destroy(e) {
		return false
	}
	for _, store := range w.stores {
		store.Remove(e)
	}
	return true
}

func IsAlive(w *World, e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

// Entities returns the live entities in slot order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.entities()
}

// Components lists the names of the kinds attached to e, sorted.
func Components(w *World, e Entity) []string {
	if !IsAlive(w, e) {
		return nil
	}
	var names []string
	for id, store := range w.stores {
		if store.Has(e) {
			names = append(names, component.Name(id))
		}
	}
	sort.Strings(names)
	return names
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	s := w.stores[id]
	if s == nil && create {
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}
