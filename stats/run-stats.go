// Package stats tracks per-step row counts and elapsed times for one pipeline run.
package stats

import (
	"fmt"
	"sync"
	"time"

	"github.com/cevaris/ordered_map"

	"github.com/playlake/starload/logger"
)

// Stats is the rendered snapshot of one step, as logged and served over HTTP.
type Stats struct {
	StepName       string `json:"stepName"`
	StatusText     string `json:"statusText"`
	ElapsedTimeSec int    `json:"elapsedTimeSec"`
	RowsAffected   int64  `json:"rowsAffected"`
}

// StepWatcher times a single pipeline step and records the rows it affected.
// The mutex allows the web server to render stats while the step is still running.
type StepWatcher struct {
	mu        sync.Mutex
	log       logger.Logger
	stepName  string
	startTime time.Time
	elapsed   time.Duration
	rows      int64
	running   bool
	failed    bool
}

func (w *StepWatcher) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.startTime = time.Now()
	w.running = true
}

// Stop ends the step, recording the rows affected by its statement.
func (w *StepWatcher) Stop(rowsAffected int64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.elapsed = time.Since(w.startTime)
	w.rows = rowsAffected
	w.running = false
	w.log.Debug("STATS: ", w.stepName, " affected ", w.rows, " rows in ", w.elapsed.Round(time.Millisecond))
}

// Fail ends the step without a row count, freezing its elapsed time.
func (w *StepWatcher) Fail() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.elapsed = time.Since(w.startTime)
	w.rows = -1
	w.running = false
	w.failed = true
	w.log.Debug("STATS: ", w.stepName, " failed after ", w.elapsed.Round(time.Millisecond))
}

// RenderStats gets a struct filled with stats at the point in time it is called.
func (w *StepWatcher) RenderStats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	statusText := "complete"
	elapsed := w.elapsed
	if w.running {
		statusText = "running"
		elapsed = time.Since(w.startTime)
	} else if w.failed {
		statusText = "failed"
	}
	return Stats{
		StepName:       w.stepName,
		StatusText:     statusText,
		ElapsedTimeSec: int(elapsed.Seconds()),
		RowsAffected:   w.rows,
	}
}

// RunStatsManager saves stats from each pipeline step added via calls to AddStepWatcher.
type RunStatsManager struct {
	mu           sync.Mutex
	log          logger.Logger
	mapStepStats *ordered_map.OrderedMap // step name -> *StepWatcher, in execution order.
}

type StatsFetcher interface {
	GetStats() []Stats
}

func NewRunStats(log logger.Logger) *RunStatsManager {
	return &RunStatsManager{log: log, mapStepStats: ordered_map.NewOrderedMap()}
}

// AddStepWatcher creates a StepWatcher and saves it into this RunStatsManager struct.
// To be used per pipeline step that is started.
func (t *RunStatsManager) AddStepWatcher(stepName string) *StepWatcher {
	t.mu.Lock()
	defer t.mu.Unlock()
	sw := &StepWatcher{log: t.log, stepName: stepName}
	t.mapStepStats.Set(stepName, sw)
	return sw
}

// GetStats renders all steps in execution order.
func (t *RunStatsManager) GetStats() []Stats {
	t.mu.Lock()
	defer t.mu.Unlock()
	retval := make([]Stats, 0, t.mapStepStats.Len())
	iter := t.mapStepStats.IterFunc()
	for kv, ok := iter(); ok; kv, ok = iter() {
		retval = append(retval, kv.Value.(*StepWatcher).RenderStats())
	}
	return retval
}

// LogStats dumps one line per step through the logger, in execution order.
func (t *RunStatsManager) LogStats() {
	for _, s := range t.GetStats() {
		t.log.Info(fmt.Sprintf("step %v: %v, %v rows, %v sec", s.StepName, s.StatusText, s.RowsAffected, s.ElapsedTimeSec))
	}
}
