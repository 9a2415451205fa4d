package ecs

import (
	"iter"
	"reflect"
	"slices"
	"strings"
)

func sortTypes(types []reflect.Type) {
	slices.SortFunc(types, func(a, b reflect.Type) int {
		return strings.Compare(a.String(), b.String())
	})
}

// Archetype holds every entity that has exactly the same set of component types.
// Each type has its own column; an entity's row index is the same in every column.
// The archetype with no types still counts rows, so bare entities get ids too.
type Archetype struct {
	id       uint32
	types    []reflect.Type
	storages []componentStorage
	rows     uint32
}

// newArchetype creates an archetype for the given sorted component types
func newArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:       id,
		types:    types,
		storages: make([]componentStorage, len(types)),
	}

	for idx, typ := range types {
		a.storages[idx] = registry.newStorage(typ)
	}

	return a
}

// column returns the storage index for compType, or -1.
func (a *Archetype) column(compType reflect.Type) int {
	return slices.Index(a.types, compType)
}

// Spawn appends one row built from components and returns its index.
// components must hold exactly one value per archetype type.
func (a *Archetype) Spawn(components []any) uint32 {
	row := a.rows
	for _, comp := range components {
		col := a.column(componentType(comp))
		if col == -1 {
			panic("component type " + componentType(comp).String() + " not part of archetype")
		}

		if idx := a.storages[col].Append(comp); uint32(idx) != row {
			panic("archetype columns out of step")
		}
	}

	a.rows++
	return row
}

// GetComponent returns a pointer to the component of the given type for the
// entity at entityIndex, or nil.
func (a *Archetype) GetComponent(entityIndex uint32, compType reflect.Type) any {
	col := a.column(compType)
	if col == -1 {
		return nil
	}
	return a.storages[col].Get(int(entityIndex))
}

// HasComponent checks if this archetype has the given component type
func (a *Archetype) HasComponent(compType reflect.Type) bool {
	return a.column(compType) != -1
}

// ID returns the archetype's unique identifier
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the sorted component types for this archetype
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of entities in this archetype.
func (a *Archetype) Len() int {
	return int(a.rows)
}

func (a *Archetype) hasRow(index uint32) bool {
	return index < a.rows
}

// Iter returns an iterator over all EntityIds in this archetype
func (a *Archetype) Iter() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		for index := range a.rows {
			if !yield(NewEntityId(a.id, index)) {
				return
			}
		}
	}
}
