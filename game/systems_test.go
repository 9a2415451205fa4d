package game_test

import (
	"maps"
	"strings"
	"testing"

	"github.com/plus3/glyphwalk/ecs"
	"github.com/plus3/glyphwalk/game"
	"github.com/plus3/glyphwalk/geom"
	"github.com/plus3/glyphwalk/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tilesAt(tiles map[geom.Vector2i]rune) func(func(geom.Vector2i, rune) bool) {
	return maps.All(tiles)
}

func TestRasterizeSingleTile(t *testing.T) {
	out := game.Rasterize(2, 2, tilesAt(map[geom.Vector2i]rune{geom.Zero(): '@'}))

	rows := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, rows, 4)
	for y, row := range rows {
		require.Len(t, []rune(row), 4)
		for x, ch := range row {
			if y == 2 && x == 2 {
				assert.Equal(t, '@', ch)
			} else {
				assert.Equal(t, ' ', ch, "row %d col %d", y, x)
			}
		}
	}
}

func TestRasterizeCorners(t *testing.T) {
	out := game.Rasterize(2, 1, tilesAt(map[geom.Vector2i]rune{
		geom.Vec(-2, -1): 'a',
		geom.Vec(1, -1):  'b',
		geom.Vec(-2, 0):  'c',
		geom.Vec(1, 0):   'd',
		geom.Vec(2, 0):   'x',
		geom.Vec(0, 1):   'y',
		geom.Vec(-3, -1): 'z',
	}))

	assert.Equal(t, "a  b\nc  d\n", out)
}

func TestRasterizeEmpty(t *testing.T) {
	out := game.Rasterize(1, 1, tilesAt(nil))
	assert.Equal(t, "  \n  \n", out)
}

func TestRasterizeLastWins(t *testing.T) {
	seq := func(yield func(geom.Vector2i, rune) bool) {
		_ = yield(geom.Zero(), 'a') && yield(geom.Zero(), 'b')
	}
	assert.Equal(t, "  \n b\n", game.Rasterize(1, 1, seq))
}

func TestRasterizeWideGlyph(t *testing.T) {
	out := game.Rasterize(1, 1, tilesAt(map[geom.Vector2i]rune{geom.Vec(-1, -1): 'λ'}))
	assert.Equal(t, "λ \n  \n", out)
}

func newSystemWorld() (*ecs.Storage, *ecs.Scheduler, *game.RenderSystem) {
	storage := ecs.NewStorage(game.NewRegistry())
	ecs.NewSingleton[input.EdgeTracker](storage)

	render := &game.RenderSystem{HalfWidth: 2, HalfHeight: 2}
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&game.PlayerControlSystem{})
	scheduler.Barrier()
	scheduler.Register(render)
	return storage, scheduler, render
}

func TestPlayerControlMovesEveryPlayable(t *testing.T) {
	storage, scheduler, _ := newSystemWorld()

	a := storage.Spawn(game.Position{geom.Vec(0, 0)}, game.Tile{Glyph: 'a'}, game.Playable{})
	b := storage.Spawn(game.Position{geom.Vec(5, 5)}, game.Playable{})
	rock := storage.Spawn(game.Position{geom.Vec(1, 1)}, game.Tile{Glyph: '#'})

	var tracker *input.EdgeTracker
	require.True(t, storage.ReadSingleton(&tracker))
	tracker.Current.SetDown(input.Down)

	scheduler.Once(0)

	assert.Equal(t, geom.Vec(0, 1), ecs.ReadComponent[game.Position](storage, a).Vector2i)
	assert.Equal(t, geom.Vec(5, 6), ecs.ReadComponent[game.Position](storage, b).Vector2i)
	assert.Equal(t, geom.Vec(1, 1), ecs.ReadComponent[game.Position](storage, rock).Vector2i)
}

func TestPlayerControlHeldKey(t *testing.T) {
	storage, scheduler, _ := newSystemWorld()
	id := storage.Spawn(game.Position{}, game.Playable{})

	var tracker *input.EdgeTracker
	require.True(t, storage.ReadSingleton(&tracker))
	tracker.Current.SetDown(input.Left)
	tracker.Previous.SetDown(input.Left)

	scheduler.Once(0)
	assert.Equal(t, geom.Zero(), ecs.ReadComponent[game.Position](storage, id).Vector2i)
}

func TestPlayerControlWithoutPlayables(t *testing.T) {
	storage, scheduler, render := newSystemWorld()
	storage.Spawn(game.Position{geom.Vec(-1, 0)}, game.Tile{Glyph: '#'})

	var tracker *input.EdgeTracker
	require.True(t, storage.ReadSingleton(&tracker))
	tracker.Current.SetDown(input.Up)

	scheduler.Once(0)
	assert.Equal(t, "    \n    \n #  \n    \n", render.Last())
}

func TestRenderSystemPresents(t *testing.T) {
	storage, scheduler, render := newSystemWorld()
	var presented []string
	render.Viewport = game.ViewportFunc(func(text string) {
		presented = append(presented, text)
	})

	storage.Spawn(game.Position{geom.Vec(1, 1)}, game.Tile{Glyph: '*'})
	scheduler.Once(0)
	scheduler.Once(0)

	require.Len(t, presented, 2)
	assert.Equal(t, "    \n    \n    \n   *\n", presented[1])
}
