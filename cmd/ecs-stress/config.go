package main

import (
	"flag"
	"time"

	"github.com/JeremyLoy/config"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// Config controls one stress run. Values come from STRESS_* environment
// variables first; command-line flags override them.
type Config struct {
	Duration       string `config:"STRESS_DURATION"`
	Entities       int    `config:"STRESS_ENTITIES"`
	MaxComponents  int    `config:"STRESS_MAX_COMPONENTS"`
	Parallel       bool   `config:"STRESS_PARALLEL"`
	Workers        int    `config:"STRESS_WORKERS"`
	Seed           uint64 `config:"STRESS_SEED"`
	GCPauseMetrics bool   `config:"STRESS_GC_PAUSE_METRICS"`
	Format         string `config:"STRESS_FORMAT"`
	Profile        string `config:"STRESS_PROFILE"`
	LogLevel       string `config:"STRESS_LOG_LEVEL"`
}

func defaultConfig() Config {
	return Config{
		Duration:      "10s",
		Entities:      10000,
		MaxComponents: 5,
		Seed:          1,
		Format:        "text",
		LogLevel:      "info",
	}
}

// loadConfig merges defaults, the environment and args, then validates the result.
func loadConfig(args []string) (Config, time.Duration, error) {
	cfg := defaultConfig()
	if err := config.FromEnv().To(&cfg); err != nil {
		return cfg, 0, eris.Wrap(err, "read STRESS_* environment")
	}

	fs := flag.NewFlagSet("ecs-stress", flag.ContinueOnError)
	fs.StringVar(&cfg.Duration, "duration", cfg.Duration, "The total duration the test should run for.")
	fs.IntVar(&cfg.Entities, "entities", cfg.Entities, "The initial number of entities to create.")
	fs.IntVar(&cfg.MaxComponents, "max-components", cfg.MaxComponents, "Upper bound of random components per spawned entity.")
	fs.BoolVar(&cfg.Parallel, "parallel", cfg.Parallel, "Run non-conflicting systems concurrently.")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "Limit on concurrent systems per batch (0 = unlimited).")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Seed of the entity population.")
	fs.BoolVar(&cfg.GCPauseMetrics, "gc-pause-metrics", cfg.GCPauseMetrics, "Enable detailed GC pause metrics in the report.")
	fs.StringVar(&cfg.Format, "format", cfg.Format, "Report format: text or json.")
	fs.StringVar(&cfg.Profile, "profile", cfg.Profile, "Write a profile: cpu or mem.")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "zerolog level.")
	if err := fs.Parse(args); err != nil {
		return cfg, 0, eris.Wrap(err, "parse flags")
	}

	duration, err := time.ParseDuration(cfg.Duration)
	if err != nil {
		return cfg, 0, eris.Wrapf(err, "invalid duration %q", cfg.Duration)
	}
	if cfg.Entities < 0 {
		return cfg, 0, eris.Errorf("entities must not be negative, got %d", cfg.Entities)
	}
	if cfg.MaxComponents < 1 {
		return cfg, 0, eris.Errorf("max-components must be at least 1, got %d", cfg.MaxComponents)
	}
	switch cfg.Format {
	case "text", "json":
	default:
		return cfg, 0, eris.Errorf("unknown report format %q", cfg.Format)
	}
	switch cfg.Profile {
	case "", "cpu", "mem":
	default:
		return cfg, 0, eris.Errorf("unknown profile mode %q", cfg.Profile)
	}
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return cfg, 0, eris.Wrapf(err, "invalid log level %q", cfg.LogLevel)
	}
	return cfg, duration, nil
}
