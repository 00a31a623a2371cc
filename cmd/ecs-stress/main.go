// Command ecs-stress populates a world with random entities and runs a
// generated system set against it for a fixed duration.
package main

//go:generate go run ./gen -components 32 -systems 16 -out generated.go

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/plus3/archstore/ecs"
)

func main() {
	cfg, duration, err := loadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, eris.ToString(err, false))
		os.Exit(2)
	}

	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).With().Timestamp().Logger()

	switch cfg.Profile {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	}

	if err := run(cfg, duration, logger, os.Stdout); err != nil {
		logger.Error().Err(err).Msg("stress test failed")
		os.Exit(1)
	}
}

func run(cfg Config, duration time.Duration, logger zerolog.Logger, out io.Writer) error {
	logger.Info().Msg("starting ECS stress test")

	// 1. Setup Resources, World, and Scheduler
	resources := ecs.NewResources()
	world := ecs.WorldFrom(resources, ecs.WithLogger(logger), ecs.WithEntityCapacity(cfg.Entities))
	if err := RegisterAllGeneratedComponents(world.Components()); err != nil {
		return eris.Wrap(err, "register components")
	}

	opts := []ecs.SchedulerOption{ecs.WithParallel(cfg.Parallel)}
	if cfg.Workers > 0 {
		opts = append(opts, ecs.WithMaxWorkers(cfg.Workers))
	}
	scheduler := ecs.NewScheduler(resources, opts...)
	if err := RegisterAllGeneratedSystems(scheduler); err != nil {
		return eris.Wrap(err, "register systems")
	}

	// 2. Populate the world with initial entities
	logger.Info().Int("entities", cfg.Entities).Msg("populating world")
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	for range cfg.Entities {
		SpawnRandomEntity(world, rng, rng.IntN(cfg.MaxComponents)+1)
	}
	logger.Info().
		Int("archetypes", world.ArchetypeCount()).
		Int("batches", len(scheduler.Batches())).
		Msg("population complete")

	// 3. Run the simulation loop
	report := &Report{
		Duration:       duration,
		Entities:       cfg.Entities,
		Components:     componentCount,
		Systems:        systemCount,
		Parallel:       cfg.Parallel,
		GCPauseMetrics: cfg.GCPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	logger.Info().Dur("duration", duration).Msg("running simulation")
	ctx, cancel := context.WithTimeout(context.Background(), duration)
	defer cancel()

	startTime := time.Now()
	lastFrameTime := startTime

	for ctx.Err() == nil {
		deltaTime := time.Since(lastFrameTime)
		lastFrameTime = time.Now()

		updateStart := time.Now()
		scheduler.Once(deltaTime.Seconds())
		report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
		report.TotalUpdates++
	}

	report.TotalTime = time.Since(startTime)
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)
	report.Scheduler = scheduler.GetStats()
	report.World = world.CollectStats()

	logger.Info().Int64("updates", report.TotalUpdates).Msg("simulation finished")
	ecs.NewLogger(&logger).LogWorld(world, zerolog.DebugLevel)

	// 4. Write the report
	if cfg.Format == "json" {
		return report.GenerateJSON(out)
	}
	return report.Generate(out)
}
