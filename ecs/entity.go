package ecs

// EntityId encodes both the archetype ID (upper 32 bits) and the entity row (lower 32 bits)
type EntityId uint64

// NewEntityId creates an EntityId from an archetype ID and entity index
func NewEntityId(archetypeId uint32, index uint32) EntityId {
	return EntityId(uint64(archetypeId)<<32 | uint64(index))
}

// ArchetypeId extracts the archetype ID from the entity ID
func (e EntityId) ArchetypeId() uint32 {
	return uint32(e >> 32)
}

// Index extracts the entity index from the entity ID
func (e EntityId) Index() uint32 {
	return uint32(e & 0xFFFFFFFF)
}

// EntityBuilder collects components for one entity and spawns them together,
// so the entity never exists with only part of its components.
type EntityBuilder struct {
	storage    *Storage
	components []any
}

// Builder starts a new entity in this storage.
func (s *Storage) Builder() *EntityBuilder {
	return &EntityBuilder{storage: s}
}

// With attaches a component value to the entity being built.
func (b *EntityBuilder) With(component any) *EntityBuilder {
	b.components = append(b.components, component)
	return b
}

// Build spawns the entity with every attached component.
func (b *EntityBuilder) Build() EntityId {
	return b.storage.Spawn(b.components...)
}
