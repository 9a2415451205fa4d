package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/plus3/glyphwalk/ecs"
	"github.com/plus3/glyphwalk/game"
	"github.com/plus3/glyphwalk/geom"
	"github.com/plus3/glyphwalk/input"
	"github.com/plus3/glyphwalk/logging"
	"go.uber.org/zap"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	entityCount := flag.Int("entities", 10000, "The initial number of wandering tiles.")
	maxEntities := flag.Int("max-entities", 50000, "Stop splitting tiles at this many entities.")
	spawnChance := flag.Float64("spawn-chance", 0.0005, "Per-tile chance to split each frame.")
	halfWidth := flag.Int("half-width", 40, "Viewport half width.")
	halfHeight := flag.Int("half-height", 12, "Viewport half height.")
	interval := flag.Duration("interval", 0, "Frame interval; 0 runs frames back to back.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	logLevel := flag.String("log-level", "info", "Log level.")
	flag.Parse()

	logger, err := logging.New(*logLevel, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "glyph-stress: %v\n", err)
		os.Exit(1)
	}
	logger = logger.With(zap.String("session", uuid.NewString()))
	defer logger.Sync()

	logger.Info("starting stress test")

	registry := game.NewRegistry()
	ecs.RegisterComponent[Wander](registry)
	storage := ecs.NewStorage(registry)
	ecs.NewSingleton[input.EdgeTracker](storage)

	storage.Builder().
		With(game.Position{}).
		With(game.Tile{Glyph: '@'}).
		With(game.Playable{}).
		Build()

	// Tiles start across twice the viewport so some wander in and out.
	spreadX, spreadY := 2*(*halfWidth), 2*(*halfHeight)

	logger.Info("populating storage", zap.Int("entities", *entityCount))
	for i := 0; i < *entityCount; i++ {
		pos := geom.Vec(
			int32(rand.IntN(2*spreadX)-spreadX),
			int32(rand.IntN(2*spreadY)-spreadY),
		)
		storage.Spawn(
			game.Position{pos},
			game.Tile{Glyph: glyphs[rand.IntN(len(glyphs))]},
			Wander{Chance: rand.Float64()},
		)
	}

	var rendered atomic.Int64
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&InputNoiseSystem{})
	scheduler.Register(&WanderSystem{SpawnChance: *spawnChance, MaxEntities: *maxEntities})
	scheduler.Barrier()
	scheduler.Register(&game.PlayerControlSystem{})
	scheduler.Barrier()
	scheduler.Register(&game.RenderSystem{
		HalfWidth:  int32(*halfWidth),
		HalfHeight: int32(*halfHeight),
		Viewport: game.ViewportFunc(func(text string) {
			rendered.Add(int64(len(text)))
		}),
	})

	report := &Report{
		Duration:       *duration,
		Entities:       *entityCount,
		MaxEntities:    *maxEntities,
		HalfWidth:      *halfWidth,
		HalfHeight:     *halfHeight,
		Interval:       *interval,
		GCPauseMetrics: *gcPauseMetrics,
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	logger.Info("running simulation", zap.Duration("duration", *duration))
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	if *interval > 0 {
		scheduler.Run(ctx, *interval)
	} else {
		runUnthrottled(ctx, scheduler, &report.FrameTime)
	}

	report.TotalTime = time.Since(startTime)
	report.FrameTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	report.Scheduler = scheduler.GetStats()
	report.Storage = storage.CollectStats()
	report.TotalFrames = report.Scheduler.Frames
	report.RenderedBytes = rendered.Load()

	logger.Info("simulation finished",
		zap.Uint64("frames", report.TotalFrames),
		zap.Int("entities", report.Storage.TotalEntityCount))

	if err := report.Generate(os.Stdout); err != nil {
		logger.Fatal("failed to generate report", zap.Error(err))
	}
}

func runUnthrottled(ctx context.Context, scheduler *ecs.Scheduler, samples *Samples) {
	lastFrameTime := time.Now()

	for ctx.Err() == nil {
		deltaTime := time.Since(lastFrameTime)
		lastFrameTime = time.Now()

		frameStart := time.Now()
		scheduler.Once(deltaTime.Seconds())
		samples.Add(time.Since(frameStart))
	}
}
