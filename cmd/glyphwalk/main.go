package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/plus3/glyphwalk/config"
	"github.com/plus3/glyphwalk/game"
	"github.com/plus3/glyphwalk/logging"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultLogFile = "glyphwalk.log"

var errQuit = errors.New("quit requested")

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file.")
	logFile := flag.String("log", "", "Log file (overrides log_file from the config).")
	flag.Parse()

	cfg, err := config.LoadFile(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "glyphwalk: %v\n", err)
		os.Exit(1)
	}
	if *logFile != "" {
		cfg.LogFile = *logFile
	}
	if cfg.LogFile == "" {
		cfg.LogFile = defaultLogFile
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "glyphwalk: %v\n", err)
		os.Exit(1)
	}
	logger = logger.With(zap.String("session", uuid.NewString()))
	defer logger.Sync()

	screen, err := tcell.NewScreen()
	if err != nil {
		logger.Fatal("failed to create screen", zap.Error(err))
	}
	if err := screen.Init(); err != nil {
		logger.Fatal("failed to init screen", zap.Error(err))
	}
	screen.EnableFocus()

	g, err := game.New(cfg, newScreenViewport(screen), logger)
	if err != nil {
		screen.Fini()
		logger.Fatal("failed to create game", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, screen, g, time.Second/time.Duration(cfg.FrameRate)); err != nil {
		logger.Error("terminal host stopped", zap.Error(err))
	}

	g.LogStats()
	logger.Info("goodbye")
}

// run pumps terminal events into the game and ticks frames until the
// player quits or ctx ends. It finalizes the screen before returning.
func run(ctx context.Context, screen tcell.Screen, g *game.Game, interval time.Duration) error {
	group, ctx := errgroup.WithContext(ctx)
	keys := &releaser{}

	group.Go(func() error {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return nil
			}

			switch ev := ev.(type) {
			case *tcell.EventKey:
				if isQuit(ev) {
					return errQuit
				}
				if code := keyCode(ev); code != "" {
					keys.press(code)
				}
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventFocus:
				if !ev.Focused {
					g.ReleaseAll()
				}
			}
		}
	})

	group.Go(func() error {
		defer screen.Fini()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		start := time.Now()
		for {
			select {
			case <-ctx.Done():
				return nil
			case now := <-ticker.C:
				keys.frame(g.KeyDown, g.KeyUp, func() {
					g.Update(float64(now.Sub(start).Milliseconds()))
				})
			}
		}
	})

	if err := group.Wait(); err != nil && !errors.Is(err, errQuit) {
		return err
	}
	return nil
}
