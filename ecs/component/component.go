package component

import (
	"errors"
	"reflect"
	"sync"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

// ComponentID numbers a component store. Zero is never issued.
type ComponentID uint32

// ComponentKind is the typed key of one store. Two kinds of the same Go type
// are distinct stores.
type ComponentKind[T any] struct {
	id ComponentID
}

// NewComponentKind registers a new store for T under T's type name.
func NewComponentKind[T any]() ComponentKind[T] {
	t := reflect.TypeFor[T]()
	name := t.Name()
	if name == "" {
		name = t.String()
	}
	return ComponentKind[T]{id: kinds.register(name)}
}

func (k ComponentKind[T]) ID() ComponentID {
	return k.id
}

func (k ComponentKind[T]) Valid() bool {
	return k.id != 0
}

// Name is the registered type name, empty for the zero kind.
func (k ComponentKind[T]) Name() string {
	return Name(k.id)
}

// ComponentHandle is how the component files declare their stores:
//
//	var TransformComponent = NewComponent[Transform]()
type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{kind: NewComponentKind[T]()}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] {
	return h.kind
}

// Name returns the type name id was registered under, or "" if id was never
// issued.
func Name(id ComponentID) string {
	return kinds.name(id)
}

type registry struct {
	mu    sync.RWMutex
	names []string
}

var kinds registry

func (r *registry) register(name string) ComponentID {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.names = append(r.names, name)
	return ComponentID(len(r.names))
}

func (r *registry) name(id ComponentID) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if id == 0 || int(id) > len(r.names) {
		return ""
	}
	return r.names[id-1]
}
