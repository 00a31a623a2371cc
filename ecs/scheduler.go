package ecs

import (
	"context"
	"reflect"
	"time"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	BatchCount      int
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	Batch          int
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

func (s *systemStatsInternal) record(duration time.Duration) {
	s.executionCount++
	s.lastDuration = duration
	s.totalDuration += duration

	if duration < s.minDuration {
		s.minDuration = duration
	}
	if duration > s.maxDuration {
		s.maxDuration = duration
	}
}

type scheduledSystem struct {
	system System
	access Access
	// exclusive systems declare no access and always run alone
	exclusive bool
	batch     int
	stats     *systemStatsInternal
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithParallel runs the systems of a batch concurrently. Systems in a batch
// never conflict on declared access, but they must then only touch world data
// through their Query and Singleton fields.
func WithParallel(parallel bool) SchedulerOption {
	return func(s *Scheduler) {
		s.parallel = parallel
	}
}

// WithMaxWorkers bounds how many systems of a batch run at the same time.
func WithMaxWorkers(n int) SchedulerOption {
	return func(s *Scheduler) {
		s.maxWorkers = n
	}
}

// Scheduler manages and executes systems in registration order, grouping
// consecutive systems whose declared access does not conflict into batches.
type Scheduler struct {
	resources *Resources
	world     *World
	systems   []*scheduledSystem
	batches   [][]int
	names     map[string]int

	parallel   bool
	maxWorkers int
	logger     *zerolog.Logger
}

// NewScheduler creates a scheduler over the world hosted in r.
func NewScheduler(r *Resources, opts ...SchedulerOption) *Scheduler {
	w := WorldFrom(r)
	s := &Scheduler{
		resources: r,
		world:     w,
		names:     make(map[string]int),
		logger:    w.Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// World returns the world the scheduler runs on
func (s *Scheduler) World() *World {
	return s.world
}

// Register adds a system to the scheduler, initializes its Query and Singleton
// fields and records its declared access.
func (s *Scheduler) Register(system System) error {
	access, declared, err := s.initializeParams(system)
	if err != nil {
		return err
	}

	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	systemName := systemType.Name()
	if systemName == "" {
		systemName = systemType.String()
	}
	if n := s.names[systemName]; n > 0 {
		s.logger.Warn().Str("system", systemName).Int("count", n+1).Msg("system registered more than once")
	}
	s.names[systemName]++

	entry := &scheduledSystem{
		system:    system,
		access:    access,
		exclusive: !declared,
		stats: &systemStatsInternal{
			name:        systemName,
			minDuration: time.Duration(1<<63 - 1),
		},
	}
	index := len(s.systems)
	s.systems = append(s.systems, entry)
	s.assignBatch(index)
	return nil
}

// MustRegister is Register for systems known to be valid. It panics on error.
func (s *Scheduler) MustRegister(system System) {
	if err := s.Register(system); err != nil {
		panic(err)
	}
}

type queryParam interface {
	Init(w *World) error
	Access() Access
}

type resourceParam interface {
	Init(r *Resources)
	resourceType() reflect.Type
}

func (s *Scheduler) initializeParams(system System) (Access, bool, error) {
	var access Access
	declared := false

	systemValue := reflect.ValueOf(system)
	if systemValue.Kind() == reflect.Ptr {
		systemValue = systemValue.Elem()
	}
	if systemValue.Kind() != reflect.Struct {
		return access, false, nil
	}

	systemType := systemValue.Type()
	for i := 0; i < systemValue.NumField(); i++ {
		field := systemValue.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		switch param := field.Addr().Interface().(type) {
		case queryParam:
			if err := param.Init(s.world); err != nil {
				return access, false, eris.Wrapf(err, "system %s field %s", systemType.Name(), systemType.Field(i).Name)
			}
			access.merge(param.Access())
			declared = true
		case resourceParam:
			param.Init(s.resources)
			access.merge(Access{Resources: []reflect.Type{param.resourceType()}})
			declared = true
		}
	}
	return access, declared, nil
}

// assignBatch appends system index to the last batch when it conflicts with
// none of its members, or opens a new batch.
func (s *Scheduler) assignBatch(index int) {
	entry := s.systems[index]
	if n := len(s.batches); n > 0 && !entry.exclusive {
		last := s.batches[n-1]
		fits := true
		for _, other := range last {
			if s.Conflicts(index, other) {
				fits = false
				break
			}
		}
		if fits {
			s.batches[n-1] = append(last, index)
			entry.batch = n - 1
			return
		}
	}
	s.batches = append(s.batches, []int{index})
	entry.batch = len(s.batches) - 1
}

// Conflicts reports whether systems i and j (registration indices) may not
// run concurrently.
func (s *Scheduler) Conflicts(i, j int) bool {
	a, b := s.systems[i], s.systems[j]
	if a.exclusive || b.exclusive {
		return true
	}
	return a.access.Conflicts(b.access)
}

// Batches returns the registration indices of the systems in each batch
func (s *Scheduler) Batches() [][]int {
	return s.batches
}

func (s *Scheduler) execute(entry *scheduledSystem, frame *UpdateFrame) {
	start := time.Now()
	entry.system.Execute(frame)
	entry.stats.record(time.Since(start))
}

// Once executes all registered systems once with the given delta time, then
// applies every system's commands in registration order.
func (s *Scheduler) Once(dt float64) {
	frames := make([]*UpdateFrame, len(s.systems))
	for i := range s.systems {
		frames[i] = newUpdateFrame(dt, s.world, s.resources)
	}

	for _, batch := range s.batches {
		if !s.parallel || len(batch) == 1 {
			for _, index := range batch {
				s.execute(s.systems[index], frames[index])
			}
			continue
		}

		var g errgroup.Group
		if s.maxWorkers > 0 {
			g.SetLimit(s.maxWorkers)
		}
		for _, index := range batch {
			g.Go(func() error {
				s.execute(s.systems[index], frames[index])
				return nil
			})
		}
		_ = g.Wait()
	}

	for _, frame := range frames {
		frame.Commands.Flush(s.world)
	}
}

// Run executes all systems repeatedly at the given interval until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Once(dt)
		}
	}
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		BatchCount:  len(s.batches),
		Systems:     make([]SystemStats, len(s.systems)),
	}

	var totalExecs int64
	for i, entry := range s.systems {
		internal := entry.stats
		avgDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			Batch:          entry.batch,
			ExecutionCount: internal.executionCount,
			MinDuration:    internal.minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
