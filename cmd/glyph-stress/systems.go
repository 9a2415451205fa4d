package main

import (
	"math/rand/v2"

	"github.com/plus3/glyphwalk/ecs"
	"github.com/plus3/glyphwalk/game"
	"github.com/plus3/glyphwalk/geom"
	"github.com/plus3/glyphwalk/input"
)

// Wander makes a tile drift one cell in a random direction now and then.
type Wander struct {
	Chance float64
}

var directions = [...]geom.Vector2i{
	geom.Vec(0, -1),
	geom.Vec(0, 1),
	geom.Vec(-1, 0),
	geom.Vec(1, 0),
}

var glyphs = []rune("#%&*+=~")

// WanderSystem moves wandering tiles and occasionally splits one in two.
// New tiles are queued through Commands and appear after the stage ends.
type WanderSystem struct {
	Tiles ecs.Query[struct {
		*game.Position
		*Wander
	}]

	SpawnChance float64
	MaxEntities int
}

func (s *WanderSystem) Execute(frame *ecs.UpdateFrame) {
	count := frame.Storage.EntityCount()

	for tile := range s.Tiles.Values() {
		if rand.Float64() < tile.Wander.Chance {
			tile.Position.AddAssign(directions[rand.IntN(len(directions))])
		}

		if count < s.MaxEntities && rand.Float64() < s.SpawnChance {
			frame.Commands.Spawn(
				game.Position{tile.Position.Vector2i},
				game.Tile{Glyph: glyphs[rand.IntN(len(glyphs))]},
				Wander{Chance: tile.Wander.Chance},
			)
			count++
		}
	}
}

// InputNoiseSystem stands in for a player by holding a random set of keys
// each frame.
type InputNoiseSystem struct {
	Input ecs.Singleton[input.EdgeTracker]
}

func (s *InputNoiseSystem) Execute(frame *ecs.UpdateFrame) {
	tracker := s.Input.Get()
	if tracker == nil {
		return
	}

	var live input.KeyState
	for _, key := range input.AllKeys {
		if rand.IntN(4) == 0 {
			live.SetDown(key)
		}
	}

	tracker.Retire()
	tracker.Sync(live)
}
