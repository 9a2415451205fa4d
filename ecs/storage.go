package ecs

import (
	"encoding/binary"
	"iter"
	"reflect"
	"slices"
	"unsafe"

	"github.com/cespare/xxhash/v2"
	"github.com/kamstrup/intmap"
)

// Storage owns every archetype, component column and singleton of one ECS world.
type Storage struct {
	registry   *ComponentRegistry
	archetypes *intmap.Map[uint32, *Archetype]
	// order keeps archetypes in creation order so iteration is repeatable.
	order      []*Archetype
	singletons map[reflect.Type]*singletonEntry
}

type singletonEntry struct {
	value   reflect.Value
	dataPtr unsafe.Pointer
}

// NewStorage creates a new ECS storage system with the given component registry
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		registry:   registry,
		archetypes: intmap.New[uint32, *Archetype](16),
		singletons: make(map[reflect.Type]*singletonEntry),
	}
}

// Registry returns the component registry this storage was built with.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// Spawn creates a new entity with the provided components.
// An entity may have no components at all.
func (s *Storage) Spawn(components ...any) EntityId {
	types := extractComponentTypes(components)
	archetype := s.archetypeFor(types)

	entityIndex := archetype.Spawn(components)
	return NewEntityId(archetype.id, entityIndex)
}

func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	archetype, freeId := s.lookupArchetype(types)
	if archetype != nil {
		return archetype
	}

	archetype = newArchetype(freeId, types, s.registry)
	s.archetypes.Put(freeId, archetype)
	s.order = append(s.order, archetype)
	return archetype
}

// lookupArchetype finds the archetype for a sorted type set. Ids start at the
// hash of the set and step past archetypes of other sets one at a time, so
// when none matches the returned id is the first free one.
func (s *Storage) lookupArchetype(types []reflect.Type) (*Archetype, uint32) {
	id := hashTypesToUint32(types)
	for {
		archetype, exists := s.archetypes.Get(id)
		if !exists {
			return nil, id
		}
		if slices.Equal(archetype.types, types) {
			return archetype, id
		}
		id++
	}
}

// GetArchetype returns the archetype holding exactly the given component values' types, if one exists
func (s *Storage) GetArchetype(components ...any) *Archetype {
	archetype, _ := s.lookupArchetype(extractComponentTypes(components))
	return archetype
}

// GetArchetypeById returns the archetype with the given id, or nil.
func (s *Storage) GetArchetypeById(id uint32) *Archetype {
	archetype, _ := s.archetypes.Get(id)
	return archetype
}

// Archetypes iterates archetypes in creation order.
func (s *Storage) Archetypes() iter.Seq[*Archetype] {
	return func(yield func(*Archetype) bool) {
		for _, a := range s.order {
			if !yield(a) {
				return
			}
		}
	}
}

// EntityCount returns the number of entities across all archetypes.
func (s *Storage) EntityCount() int {
	total := 0
	for _, a := range s.order {
		total += a.Len()
	}
	return total
}

// GetComponent returns the component for the given entity ID and component type
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	archetype, ok := s.archetypes.Get(id.ArchetypeId())
	if !ok {
		return nil
	}
	return archetype.GetComponent(id.Index(), compType)
}

// HasComponent checks if an entity has a specific component type
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	archetype, ok := s.archetypes.Get(id.ArchetypeId())
	if !ok {
		return false
	}
	return archetype.HasComponent(compType)
}

// AddSingleton stores value as the single instance of its type.
// Adding a value of a type that already exists overwrites it in place, so
// existing Singleton accessors keep seeing it.
func (s *Storage) AddSingleton(value any) {
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	if entry, ok := s.singletons[v.Type()]; ok {
		entry.value.Elem().Set(v)
		return
	}

	ptr := reflect.New(v.Type())
	ptr.Elem().Set(v)
	s.singletons[v.Type()] = &singletonEntry{
		value:   ptr,
		dataPtr: ptr.UnsafePointer(),
	}
}

// ReadSingleton points target (a **T) at the stored singleton of type T.
// Returns false if no such singleton exists.
func (s *Storage) ReadSingleton(target any) bool {
	tv := reflect.ValueOf(target)
	if tv.Kind() != reflect.Ptr || tv.Elem().Kind() != reflect.Ptr {
		panic("ReadSingleton target must be a pointer to a pointer")
	}

	entry := s.getSingletonEntry(tv.Elem().Type().Elem())
	if entry == nil {
		return false
	}
	tv.Elem().Set(entry.value)
	return true
}

func (s *Storage) getSingletonEntry(t reflect.Type) *singletonEntry {
	return s.singletons[t]
}

// componentType returns the value type of a component, looking through pointers.
func componentType(comp any) reflect.Type {
	compType := reflect.TypeOf(comp)
	if compType.Kind() == reflect.Ptr {
		compType = compType.Elem()
	}
	return compType
}

// extractComponentTypes extracts and sorts component types from a slice of components
func extractComponentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		compType := componentType(comp)

		// Components can be structs or primitives (int, string, etc.)
		// But not pointers, maps, channels, or functions (those aren't value types)
		if compType.Kind() == reflect.Ptr || compType.Kind() == reflect.Map ||
			compType.Kind() == reflect.Chan || compType.Kind() == reflect.Func {
			panic("components cannot be pointers, maps, channels, or functions")
		}

		for _, seen := range types {
			if seen == compType {
				panic("duplicate component type " + compType.String())
			}
		}

		types = append(types, compType)
	}
	sortTypes(types)
	return types
}

func typeId(t reflect.Type) uintptr {
	return uintptr((*iface)(unsafe.Pointer(&t)).data)
}

// hashTypesToUint32 generates a uint32 hash for a sorted slice of types
func hashTypesToUint32(types []reflect.Type) uint32 {
	d := xxhash.New()
	var buf [8]byte
	for _, t := range types {
		binary.LittleEndian.PutUint64(buf[:], uint64(typeId(t)))
		d.Write(buf[:])
	}
	h := d.Sum64()
	return uint32(h) ^ uint32(h>>32)
}

type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the T component of an entity, or nil if it has none.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp := reader.GetComponent(entityId, reflect.TypeFor[T]())
	if comp == nil {
		return nil
	}
	return comp.(*T)
}
