package main

import (
	"fmt"
	"io"
	"reflect"
	"runtime"
	"strings"
	"text/template"
	"time"

	"github.com/plus3/glyphwalk/ecs"
)

// Report gathers the configuration and results of one stress run.
type Report struct {
	Duration    time.Duration
	Entities    int
	MaxEntities int
	HalfWidth   int
	HalfHeight  int
	Interval    time.Duration

	TotalFrames    uint64
	TotalTime      time.Duration
	FrameTime      Samples
	RenderedBytes  int64
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats

	Storage   *ecs.StorageStats
	Scheduler *ecs.SchedulerStats
}

// Samples summarizes frame durations measured outside the scheduler.
type Samples struct {
	Min    time.Duration
	Max    time.Duration
	Avg    time.Duration
	Values []time.Duration
}

func (s *Samples) Add(d time.Duration) {
	s.Values = append(s.Values, d)
}

func (s *Samples) Finalize() {
	if len(s.Values) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Values[0]
	s.Max = s.Values[0]

	for _, v := range s.Values {
		s.Min = min(s.Min, v)
		s.Max = max(s.Max, v)
		total += v
	}
	s.Avg = total / time.Duration(len(s.Values))
}

const reportTemplate = `
# glyphwalk Stress Report

## Configuration
- **Run Duration:** {{.Duration}}
- **Initial Tiles:** {{.Entities}}
- **Entity Cap:** {{.MaxEntities}}
- **Viewport:** {{mul2 .HalfWidth}}x{{mul2 .HalfHeight}}
- **Frame Interval:** {{if .Interval}}{{.Interval}}{{else}}unthrottled{{end}}

## Frames
- **Total Frames:** {{.TotalFrames}}
- **Total Time:** {{.TotalTime}}
- **Rendered:** {{.RenderedBytes}} bytes
{{- if .FrameTime.Values}}
- **Frame Time:** avg {{.FrameTime.Avg}}, min {{.FrameTime.Min}}, max {{.FrameTime.Max}}
{{- end}}

## Systems
{{range .Scheduler.Systems -}}
- **{{.Name}}** (stage {{.Stage}}): {{.ExecutionCount}} runs, avg {{.AvgDuration}}, min {{.MinDuration}}, max {{.MaxDuration}}
{{end}}
## Storage
- **Entities:** {{.Storage.TotalEntityCount}}
- **Archetypes:** {{.Storage.ArchetypeCount}}
- **Singletons:** {{.Storage.SingletonCount}}
{{range .Storage.ArchetypeBreakdown -}}
  - {{printf "%08x" .ID}} [{{types .ComponentTypes}}]: {{.EntityCount}}
{{end}}
## Memory Usage (Raw Bytes)
- Heap Alloc:  {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc: {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:      {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{ns .MemStatsEnd.PauseTotalNs}}
{{end}}`

var reportFuncs = template.FuncMap{
	"mul2": func(v int) int {
		return 2 * v
	},
	"bsub": func(a, b uint64) int64 {
		return int64(a) - int64(b)
	},
	"usub": func(a, b uint32) uint32 {
		return a - b
	},
	"ns": func(ns uint64) string {
		return time.Duration(ns).String()
	},
	"types": func(types []reflect.Type) string {
		names := make([]string, len(types))
		for i, t := range types {
			names[i] = t.String()
		}
		return strings.Join(names, ", ")
	},
}

// Generate writes the report as markdown.
func (r *Report) Generate(w io.Writer) error {
	tmpl, err := template.New("report").Funcs(reportFuncs).Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("parse report template: %w", err)
	}
	return tmpl.Execute(w, r)
}
