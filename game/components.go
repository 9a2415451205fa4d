package game

import (
	"github.com/plus3/glyphwalk/ecs"
	"github.com/plus3/glyphwalk/geom"
)

// Position is an entity's cell on the world grid.
type Position struct {
	geom.Vector2i
}

// Tile is the character drawn for an entity.
type Tile struct {
	Glyph rune
}

// Playable marks entities moved by player input.
type Playable struct{}

// NewRegistry registers every component type the game uses.
func NewRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Tile](registry)
	ecs.RegisterComponent[Playable](registry)
	return registry
}
