package ecs

import "reflect"

// ComponentRegistry manages component type registration for an ECS instance.
// Each Storage instance has its own ComponentRegistry, allowing multiple
// independent ECS worlds to coexist without interference.
type ComponentRegistry struct {
	factories map[reflect.Type]func() componentStorage
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() componentStorage),
	}
}

// RegisterComponent registers a component type with the given registry.
// This must be called for each component type before it is spawned or queried.
//
// Zero-size types (tags such as `struct{}` markers) get flag storage that only
// records presence. Every other type gets dense block storage.
func RegisterComponent[T any](r *ComponentRegistry) {
	t := reflect.TypeFor[T]()
	if t.Size() == 0 {
		r.factories[t] = func() componentStorage {
			return &flagStorage[T]{}
		}
		return
	}
	r.factories[t] = func() componentStorage {
		return &denseStorage[T]{}
	}
}

// Registered reports whether t has been registered.
func (r *ComponentRegistry) Registered(t reflect.Type) bool {
	_, ok := r.factories[t]
	return ok
}

// newStorage builds the storage for t, panicking for unregistered types.
func (r *ComponentRegistry) newStorage(t reflect.Type) componentStorage {
	factory := r.factories[t]
	if factory == nil {
		panic("component type " + t.String() + " not registered")
	}
	return factory()
}

// mustBeRegistered panics if t was never registered.
func (r *ComponentRegistry) mustBeRegistered(t reflect.Type) {
	if !r.Registered(t) {
		panic("component type " + t.String() + " not registered")
	}
}
