// Package game wires the ECS world, input tracking and systems of glyphwalk.
package game

import (
	"errors"
	"fmt"

	"github.com/plus3/glyphwalk/config"
	"github.com/plus3/glyphwalk/ecs"
	"github.com/plus3/glyphwalk/geom"
	"github.com/plus3/glyphwalk/input"
	"go.uber.org/zap"
)

// ErrNoViewport is returned by New when the host has no output surface.
var ErrNoViewport = errors.New("game: no viewport to render into")

// Game is one running world with a single player character.
//
// KeyDown and KeyUp may be called from any goroutine. Update must be
// called from one goroutine at a time, once per frame.
type Game struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	keyboard  *input.Keyboard
	tracker   *ecs.Singleton[input.EdgeTracker]
	render    *RenderSystem
	player    ecs.EntityId
	logger    *zap.Logger

	started  bool
	lastTime float64
}

// New builds the world: registers components, adds the input tracker
// resource, spawns the player at the origin and schedules the player
// control and render systems with a barrier between them.
// A nil cfg uses config.Default and a nil logger discards logs.
func New(cfg *config.Config, viewport Viewport, logger *zap.Logger) (*Game, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if viewport == nil {
		return nil, ErrNoViewport
	}
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	bindings, err := cfg.KeyBindings()
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	storage := ecs.NewStorage(NewRegistry())
	tracker := ecs.NewSingleton[input.EdgeTracker](storage)

	player := storage.Builder().
		With(Position{geom.Zero()}).
		With(Tile{Glyph: cfg.GlyphRune()}).
		With(Playable{}).
		Build()

	render := &RenderSystem{
		HalfWidth:  int32(cfg.HalfWidth),
		HalfHeight: int32(cfg.HalfHeight),
		Viewport:   viewport,
	}

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&PlayerControlSystem{})
	scheduler.Barrier()
	scheduler.Register(render)

	logger.Info("game created",
		zap.Int("half_width", cfg.HalfWidth),
		zap.Int("half_height", cfg.HalfHeight),
		zap.String("glyph", cfg.Glyph),
		zap.Int("bindings", len(bindings)))

	return &Game{
		storage:   storage,
		scheduler: scheduler,
		keyboard:  input.NewKeyboard(bindings),
		tracker:   tracker,
		render:    render,
		player:    player,
		logger:    logger,
	}, nil
}

// Update advances one frame. time is the host clock in milliseconds; the
// first call only sets the baseline. The frame snapshots the live keys,
// runs the systems and then retires this frame's keys for edge detection.
func (g *Game) Update(time float64) {
	if !g.started {
		g.started = true
		g.lastTime = time
	}
	delta := (time - g.lastTime) / 1000
	g.lastTime = time

	tracker := g.tracker.Get()

	var live input.KeyState
	g.keyboard.Snapshot(&live)
	tracker.Sync(live)

	g.scheduler.Once(delta)

	tracker.Retire()
}

// KeyDown records a host key press. Unbound codes are ignored.
func (g *Game) KeyDown(code string) {
	if !g.keyboard.KeyDown(code) {
		g.logger.Debug("ignored key", zap.String("code", code))
		return
	}
	g.logger.Debug("key down", zap.String("code", code))
}

// KeyUp records a host key release. Unbound codes are ignored.
func (g *Game) KeyUp(code string) {
	if !g.keyboard.KeyUp(code) {
		g.logger.Debug("ignored key", zap.String("code", code))
		return
	}
	g.logger.Debug("key up", zap.String("code", code))
}

// ReleaseAll drops every held key, for hosts that lose focus.
func (g *Game) ReleaseAll() {
	g.keyboard.Reset()
}

// AddTile spawns a non-playable tile. Call it between frames.
func (g *Game) AddTile(pos geom.Vector2i, glyph rune) ecs.EntityId {
	return g.storage.Spawn(Position{pos}, Tile{Glyph: glyph})
}

// Player returns the player entity.
func (g *Game) Player() ecs.EntityId {
	return g.player
}

// PlayerPosition returns the player's current cell.
func (g *Game) PlayerPosition() geom.Vector2i {
	return ecs.ReadComponent[Position](g.storage, g.player).Vector2i
}

// Frame returns the text rendered by the last Update.
func (g *Game) Frame() string {
	return g.render.Last()
}

// Storage exposes the ECS world.
func (g *Game) Storage() *ecs.Storage {
	return g.storage
}

// Stats returns per-system timing collected so far.
func (g *Game) Stats() *ecs.SchedulerStats {
	return g.scheduler.GetStats()
}

// LogStats writes per-system timing to the game's logger.
func (g *Game) LogStats() {
	stats := g.Stats()
	g.logger.Info("scheduler stats",
		zap.Uint64("frames", stats.Frames),
		zap.Int("systems", stats.SystemCount),
		zap.Int("stages", stats.StageCount))

	for _, s := range stats.Systems {
		g.logger.Info("system stats",
			zap.String("system", s.Name),
			zap.Int("stage", s.Stage),
			zap.Int64("runs", s.ExecutionCount),
			zap.Duration("avg", s.AvgDuration),
			zap.Duration("max", s.MaxDuration))
	}
}
