package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/glyphwalk/config"
	"github.com/plus3/glyphwalk/ecs/debugui"
	debugui_ebiten "github.com/plus3/glyphwalk/ecs/debugui/ebiten"
	"github.com/plus3/glyphwalk/game"
	"github.com/plus3/glyphwalk/logging"
	"go.uber.org/zap"
)

// Debug font cell size.
const (
	cellWidth  = 6
	cellHeight = 16
)

// Window size when the inspector is open.
const (
	debugWidth  = 1280
	debugHeight = 720
)

// Window adapts a Game to ebiten's update and draw callbacks.
type Window struct {
	game     *game.Game
	viewport *game.TextViewport
	start    time.Time
	width    int
	height   int

	keys []ebiten.Key

	// overlay is nil unless the window runs with -debug.
	overlay *debugui_ebiten.Overlay
	last    time.Time
}

func (w *Window) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	w.keys = inpututil.AppendJustPressedKeys(w.keys[:0])
	for _, key := range w.keys {
		if code := keyCode(key); code != "" && !w.typing() {
			w.game.KeyDown(code)
		}
	}

	w.keys = inpututil.AppendJustReleasedKeys(w.keys[:0])
	for _, key := range w.keys {
		if code := keyCode(key); code != "" {
			w.game.KeyUp(code)
		}
	}

	if !ebiten.IsFocused() {
		w.game.ReleaseAll()
	}

	now := time.Now()
	w.game.Update(float64(now.Sub(w.start).Milliseconds()))

	if w.overlay != nil {
		w.overlay.Update(now.Sub(w.last).Seconds())
	}
	w.last = now
	return nil
}

// typing reports whether the inspector has keyboard focus, in which case
// key presses belong to it and not to the game.
func (w *Window) typing() bool {
	return w.overlay != nil && w.overlay.WantsKeyboard()
}

func (w *Window) Draw(screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, w.viewport.Text())
	if w.overlay != nil {
		w.overlay.Draw(screen)
	}
}

func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	if w.overlay != nil {
		w.overlay.Layout(outsideWidth, outsideHeight)
		return outsideWidth, outsideHeight
	}
	return w.width, w.height
}

// keyCode translates an ebiten key into a browser-style key code
// ("KeyW", "ArrowUp"). It returns "" for keys without one.
func keyCode(key ebiten.Key) string {
	name := key.String()
	switch {
	case len(name) == 1 && name[0] >= 'A' && name[0] <= 'Z':
		return "Key" + name
	case strings.HasPrefix(name, "Arrow"):
		return name
	}
	return ""
}

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file.")
	scale := flag.Int("scale", 2, "Window scale factor.")
	debug := flag.Bool("debug", false, "Open the ECS inspector over the game.")
	flag.Parse()

	cfg, err := config.LoadFile(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "glyphwalk-window: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "glyphwalk-window: %v\n", err)
		os.Exit(1)
	}
	logger = logger.With(zap.String("session", uuid.NewString()))
	defer logger.Sync()

	viewport := &game.TextViewport{}
	g, err := game.New(cfg, viewport, logger)
	if err != nil {
		logger.Fatal("failed to create game", zap.Error(err))
	}

	w := &Window{
		game:     g,
		viewport: viewport,
		start:    time.Now(),
		last:     time.Now(),
		width:    (2*cfg.HalfWidth + 1) * cellWidth,
		height:   (2*cfg.HalfHeight + 1) * cellHeight,
	}

	if *debug {
		inspector := debugui.NewInspector(g.Storage(), g.Stats)
		inspector.Select(g.Player())
		w.overlay = debugui_ebiten.NewOverlay("glyphwalk", debugWidth, debugHeight, inspector)
		logger.Info("inspector enabled")
	} else {
		ebiten.SetWindowSize(w.width*(*scale), w.height*(*scale))
		ebiten.SetWindowTitle("glyphwalk")
	}
	ebiten.SetTPS(cfg.FrameRate)

	if err := ebiten.RunGame(w); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Error("window host stopped", zap.Error(err))
	}

	g.LogStats()
	logger.Info("goodbye")
}
