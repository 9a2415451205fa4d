package ecs_test

import (
	"fmt"

	"github.com/plus3/glyphwalk/ecs"
)

type GameConfig struct {
	MaxPlayers int
	Difficulty string
}

// ExampleNewSingleton demonstrates creating and accessing singleton components.
// Singletons are global components not associated with any entity.
func ExampleNewSingleton() {
	registry := ecs.NewComponentRegistry()
	storage := ecs.NewStorage(registry)

	config := ecs.NewSingleton[GameConfig](storage, GameConfig{
		MaxPlayers: 4,
		Difficulty: "Normal",
	})
	fmt.Printf("Config: %d players, %s difficulty\n", config.Get().MaxPlayers, config.Get().Difficulty)

	config.Get().Difficulty = "Hard"

	// A second accessor sees the same data
	sameConfig := ecs.NewSingleton[GameConfig](storage)
	fmt.Printf("Same config: %s difficulty\n", sameConfig.Get().Difficulty)

	var read *GameConfig
	if storage.ReadSingleton(&read) {
		fmt.Printf("Read: %d players\n", read.MaxPlayers)
	}

	// Output:
	// Config: 4 players, Normal difficulty
	// Same config: Hard difficulty
	// Read: 4 players
}

// ExampleView shows an inner join over two component types. Entities
// missing either component are skipped.
func ExampleView() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Name](registry)
	storage := ecs.NewStorage(registry)

	storage.Spawn(Position{X: 1, Y: 2}, Name{Value: "player"})
	storage.Spawn(Position{X: 5, Y: 5})
	storage.Spawn(Name{Value: "ghost"})

	view := ecs.NewView[struct {
		*Position
		*Name
	}](storage)

	for item := range view.Values() {
		fmt.Printf("%s at (%.0f, %.0f)\n", item.Name.Value, item.Position.X, item.Position.Y)
	}

	// Output:
	// player at (1, 2)
}

// ExampleScheduler_Barrier shows that a system after a barrier observes
// entities spawned through Commands before it.
func ExampleScheduler_Barrier() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	storage := ecs.NewStorage(registry)

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&SpawnerSystem{})
	scheduler.Barrier()
	counter := &PositionLogSystem{}
	scheduler.Register(counter)

	for i := 0; i < 3; i++ {
		scheduler.Once(1.0 / 60.0)
		fmt.Printf("frame %d: %d entities\n", i+1, len(counter.Seen))
	}

	// Output:
	// frame 1: 1 entities
	// frame 2: 2 entities
	// frame 3: 3 entities
}
