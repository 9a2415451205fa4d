package game

import (
	"iter"

	"github.com/plus3/glyphwalk/ecs"
	"github.com/plus3/glyphwalk/geom"
	"github.com/plus3/glyphwalk/input"
)

var steps = [...]struct {
	key   input.Key
	delta geom.Vector2i
}{
	{input.Up, geom.Vec(0, -1)},
	{input.Down, geom.Vec(0, 1)},
	{input.Left, geom.Vec(-1, 0)},
	{input.Right, geom.Vec(1, 0)},
}

// PlayerControlSystem moves playable entities one cell per freshly pressed
// direction. Directions are checked independently, so two keys pressed in
// the same frame move diagonally.
type PlayerControlSystem struct {
	Players ecs.Query[struct {
		*Position
		*Playable
	}]
	Input ecs.Singleton[input.EdgeTracker]
}

func (s *PlayerControlSystem) Execute(frame *ecs.UpdateFrame) {
	tracker := s.Input.Get()
	if tracker == nil {
		return
	}

	for player := range s.Players.Values() {
		for _, step := range steps {
			if tracker.IsPressed(step.key) {
				player.Position.AddAssign(step.delta)
			}
		}
	}
}

// RenderSystem draws every tiled entity into a text grid centered on the
// origin and hands the grid to the viewport.
type RenderSystem struct {
	Tiles ecs.Query[struct {
		*Position
		*Tile
	}]
	HalfWidth  int32
	HalfHeight int32
	Viewport   Viewport

	last string
}

func (s *RenderSystem) Execute(frame *ecs.UpdateFrame) {
	s.last = Rasterize(s.HalfWidth, s.HalfHeight, s.tiles())
	if s.Viewport != nil {
		s.Viewport.Present(s.last)
	}
}

func (s *RenderSystem) tiles() iter.Seq2[geom.Vector2i, rune] {
	return func(yield func(geom.Vector2i, rune) bool) {
		for item := range s.Tiles.Values() {
			if !yield(item.Position.Vector2i, item.Tile.Glyph) {
				return
			}
		}
	}
}

// Last returns the text produced by the most recent Execute.
func (s *RenderSystem) Last() string {
	return s.last
}

// Rasterize draws tiles into a grid covering [-halfWidth, halfWidth) by
// [-halfHeight, halfHeight). Rows run from the most negative y down, cells
// within a row from the most negative x right; every row ends in '\n' and
// empty cells are spaces. When several tiles share a cell the last one
// yielded wins.
func Rasterize(halfWidth, halfHeight int32, tiles iter.Seq2[geom.Vector2i, rune]) string {
	width := int(2 * halfWidth)
	height := int(2 * halfHeight)
	stride := width + 1

	grid := make([]rune, stride*height)
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			grid[row*stride+col] = ' '
		}
		grid[row*stride+width] = '\n'
	}

	for pos, glyph := range tiles {
		if pos.X < -halfWidth || pos.X >= halfWidth || pos.Y < -halfHeight || pos.Y >= halfHeight {
			continue
		}
		row := int(pos.Y + halfHeight)
		col := int(pos.X + halfWidth)
		grid[row*stride+col] = glyph
	}

	return string(grid)
}
