package ecs

import (
	"context"
	"reflect"
	"time"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	StageCount      int
	Frames          uint64
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	Stage          int
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type registeredSystem struct {
	system  System
	queries []executable

	name           string
	stage          int
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Scheduler runs systems in registration order, grouped into stages.
// A stage ends at each Barrier: everything the systems of one stage did,
// including queued Commands, is applied before the next stage starts.
type Scheduler struct {
	storage *Storage
	stages  [][]*registeredSystem
	frames  uint64
}

// NewScheduler creates a new scheduler for the given storage.
func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{
		storage: storage,
		stages:  [][]*registeredSystem{nil},
	}
}

// Register adds a system to the current stage and initializes its Query and Singleton fields.
func (s *Scheduler) Register(system System) {
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}

	stage := len(s.stages) - 1
	s.stages[stage] = append(s.stages[stage], &registeredSystem{
		system:      system,
		queries:     s.initializeFields(system),
		name:        systemType.Name(),
		stage:       stage,
		minDuration: time.Duration(1<<63 - 1),
	})
}

// Barrier closes the current stage. Systems registered afterwards observe
// every effect of the systems registered before it.
func (s *Scheduler) Barrier() {
	if len(s.stages[len(s.stages)-1]) == 0 {
		return
	}
	s.stages = append(s.stages, nil)
}

// initializeFields binds Query and Singleton fields to the storage and
// returns the queries that need executing before each run.
func (s *Scheduler) initializeFields(system System) []executable {
	systemValue := reflect.ValueOf(system)
	if systemValue.Kind() == reflect.Ptr {
		systemValue = systemValue.Elem()
	}

	if systemValue.Kind() != reflect.Struct || !systemValue.CanAddr() {
		return nil
	}

	var queries []executable
	for i := 0; i < systemValue.NumField(); i++ {
		field := systemValue.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		bound, ok := field.Addr().Interface().(storageBound)
		if !ok {
			continue
		}
		bound.Init(s.storage)

		if q, ok := bound.(executable); ok {
			queries = append(queries, q)
		}
	}
	return queries
}

// Once executes all registered systems once with the given delta time.
func (s *Scheduler) Once(dt float64) {
	s.frames++
	frame := newUpdateFrame(s.frames, dt, s.storage)

	for _, stage := range s.stages {
		for _, rs := range stage {
			for _, q := range rs.queries {
				q.Execute()
			}

			start := time.Now()
			rs.system.Execute(frame)
			rs.record(time.Since(start))
		}

		frame.Commands.Flush(s.storage)
	}
}

func (rs *registeredSystem) record(duration time.Duration) {
	rs.executionCount++
	rs.lastDuration = duration
	rs.totalDuration += duration

	if duration < rs.minDuration {
		rs.minDuration = duration
	}
	if duration > rs.maxDuration {
		rs.maxDuration = duration
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
		Frames: s.frames,
	}

	for _, stage := range s.stages {
		if len(stage) > 0 {
			stats.StageCount++
		}

		for _, rs := range stage {
			var avgDuration time.Duration
			minDuration := rs.minDuration
			if rs.executionCount > 0 {
				avgDuration = rs.totalDuration / time.Duration(rs.executionCount)
			} else {
				minDuration = 0
			}

			stats.Systems = append(stats.Systems, SystemStats{
				Name:           rs.name,
				Stage:          rs.stage,
				ExecutionCount: rs.executionCount,
				MinDuration:    minDuration,
				MaxDuration:    rs.maxDuration,
				AvgDuration:    avgDuration,
				LastDuration:   rs.lastDuration,
				TotalDuration:  rs.totalDuration,
			})
			stats.TotalExecutions += rs.executionCount
		}
	}

	stats.SystemCount = len(stats.Systems)
	return stats
}
