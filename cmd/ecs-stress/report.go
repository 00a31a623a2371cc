package main

import (
	"fmt"
	"io"
	"runtime"
	"slices"
	"text/template"
	"time"

	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"

	"github.com/plus3/archstore/ecs"
)

type Report struct {
	// Configuration
	Duration   time.Duration
	Entities   int
	Components int
	Systems    int
	Parallel   bool

	// Results
	TotalUpdates   int64
	TotalTime      time.Duration
	UpdateTime     Stats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
	Scheduler      *ecs.SchedulerStats
	World          ecs.WorldStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	P99     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))

	sorted := slices.Clone(s.Samples)
	slices.Sort(sorted)
	s.P99 = sorted[(len(sorted)-1)*99/100]
}

const reportTemplate = `
# ECS Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Initial Entities:** {{.Entities}}
- **Generated Components:** {{.Components}}
- **Generated Systems:** {{.Systems}}
- **Parallel:** {{.Parallel}}

## Performance Results
- **Total Updates:** {{.TotalUpdates}}
- **Total Test Time:** {{.TotalTime}}
- **Update Time (Frame):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}
  - **P99:** {{.UpdateTime.P99}}
{{with .Scheduler}}
## Scheduler
- **Batches:** {{.BatchCount}}
- **System Executions:** {{.TotalExecutions}}
{{end}}
## World
- **Live Entities:** {{.World.TotalEntityCount}}
- **Archetypes:** {{.World.ArchetypeCount}}
- **Sparse Components:** {{.World.SparseComponentCount}} of {{.World.ComponentCount}}

## Memory Usage
- Heap Alloc:     {{.MemStatsStart.HeapAlloc | mb}} MiB (start) -> {{.MemStatsEnd.HeapAlloc | mb}} MiB (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}} bytes
- Total Alloc:    {{.MemStatsStart.TotalAlloc | mb}} MiB (start) -> {{.MemStatsEnd.TotalAlloc | mb}} MiB (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}} bytes
- Sys Memory:     {{.MemStatsStart.Sys | mb}} MiB (start) -> {{.MemStatsEnd.Sys | mb}} MiB (end) -> delta: {{bsub .MemStatsEnd.Sys .MemStatsStart.Sys}} bytes
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{nsub .MemStatsEnd.PauseTotalNs .MemStatsStart.PauseTotalNs}}
- **Num GC Cycles:** {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{end}}`

var reportFuncs = template.FuncMap{
	"mb": func(v uint64) string {
		return fmt.Sprintf("%.2f", float64(v)/1024/1024)
	},
	"bsub": func(a, b uint64) int64 {
		return int64(a) - int64(b)
	},
	"usub": func(a, b uint32) uint32 {
		return a - b
	},
	"nsub": func(a, b uint64) string {
		return time.Duration(a - b).String()
	},
}

var reportTmpl = template.Must(template.New("report").Funcs(reportFuncs).Parse(reportTemplate))

func (r *Report) Generate(w io.Writer) error {
	return eris.Wrap(reportTmpl.Execute(w, r), "render report")
}

type jsonStats struct {
	AvgNs int64 `json:"avg_ns"`
	MinNs int64 `json:"min_ns"`
	MaxNs int64 `json:"max_ns"`
	P99Ns int64 `json:"p99_ns"`
}

type jsonSystem struct {
	Name       string `json:"name"`
	Batch      int    `json:"batch"`
	Executions int64  `json:"executions"`
	AvgNs      int64  `json:"avg_ns"`
}

type jsonReport struct {
	DurationNs     int64        `json:"duration_ns"`
	Entities       int          `json:"entities"`
	Components     int          `json:"components"`
	Systems        int          `json:"systems"`
	Parallel       bool         `json:"parallel"`
	TotalUpdates   int64        `json:"total_updates"`
	TotalTimeNs    int64        `json:"total_time_ns"`
	UpdateTime     jsonStats    `json:"update_time"`
	Batches        int          `json:"batches"`
	SystemStats    []jsonSystem `json:"system_stats,omitempty"`
	LiveEntities   int          `json:"live_entities"`
	Archetypes     int          `json:"archetypes"`
	HeapAllocDelta int64        `json:"heap_alloc_delta"`
	NumGC          uint32       `json:"num_gc"`
	GCPauseNs      uint64       `json:"gc_pause_ns,omitempty"`
}

// GenerateJSON writes a machine-readable summary without the raw samples.
func (r *Report) GenerateJSON(w io.Writer) error {
	out := jsonReport{
		DurationNs:   int64(r.Duration),
		Entities:     r.Entities,
		Components:   r.Components,
		Systems:      r.Systems,
		Parallel:     r.Parallel,
		TotalUpdates: r.TotalUpdates,
		TotalTimeNs:  int64(r.TotalTime),
		UpdateTime: jsonStats{
			AvgNs: int64(r.UpdateTime.Avg),
			MinNs: int64(r.UpdateTime.Min),
			MaxNs: int64(r.UpdateTime.Max),
			P99Ns: int64(r.UpdateTime.P99),
		},
		LiveEntities:   r.World.TotalEntityCount,
		Archetypes:     r.World.ArchetypeCount,
		HeapAllocDelta: int64(r.MemStatsEnd.HeapAlloc) - int64(r.MemStatsStart.HeapAlloc),
		NumGC:          r.MemStatsEnd.NumGC - r.MemStatsStart.NumGC,
	}
	if r.GCPauseMetrics {
		out.GCPauseNs = r.MemStatsEnd.PauseTotalNs - r.MemStatsStart.PauseTotalNs
	}
	if r.Scheduler != nil {
		out.Batches = r.Scheduler.BatchCount
		for _, s := range r.Scheduler.Systems {
			out.SystemStats = append(out.SystemStats, jsonSystem{
				Name:       s.Name,
				Batch:      s.Batch,
				Executions: s.ExecutionCount,
				AvgNs:      int64(s.AvgDuration),
			})
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(out), "encode report")
}
