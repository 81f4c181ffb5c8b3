package stats

import (
	"testing"

	"github.com/playlake/starload/logger"
)

func TestRunStatsOrderAndValues(t *testing.T) {
	log := logger.NewLogger("starload", "info", true)
	mgr := NewRunStats(log)
	// Steps render in the order they were added.
	a := mgr.AddStepWatcher("reset_schema")
	b := mgr.AddStepWatcher("load_staging_events")
	a.Start()
	a.Stop(0)
	b.Start()
	b.Stop(8056)
	stats := mgr.GetStats()
	if len(stats) != 2 {
		t.Fatal("expected 2 steps; got ", len(stats))
	}
	if stats[0].StepName != "reset_schema" || stats[1].StepName != "load_staging_events" {
		t.Fatalf("unexpected step order: %+v", stats)
	}
	if stats[1].RowsAffected != 8056 {
		t.Fatal("expected 8056 rows; got ", stats[1].RowsAffected)
	}
	if stats[1].StatusText != "complete" {
		t.Fatal("expected complete status; got ", stats[1].StatusText)
	}
}

func TestStepWatcherRunningStatus(t *testing.T) {
	log := logger.NewLogger("starload", "info", true)
	mgr := NewRunStats(log)
	w := mgr.AddStepWatcher("fact_songplay")
	w.Start()
	if got := w.RenderStats().StatusText; got != "running" {
		t.Fatal("expected running status; got ", got)
	}
	w.Stop(1)
	if got := w.RenderStats().StatusText; got != "complete" {
		t.Fatal("expected complete status; got ", got)
	}
}

func TestStepWatcherFailedStatus(t *testing.T) {
	log := logger.NewLogger("starload", "info", true)
	mgr := NewRunStats(log)
	w := mgr.AddStepWatcher("load_staging_events")
	w.Start()
	w.Fail()
	s := w.RenderStats()
	if s.StatusText != "failed" {
		t.Fatal("expected failed status; got ", s.StatusText)
	}
	if s.RowsAffected != -1 {
		t.Fatal("expected unknown row count; got ", s.RowsAffected)
	}
	// Elapsed time is frozen at the point of failure.
	first := s.ElapsedTimeSec
	if got := w.RenderStats().ElapsedTimeSec; got != first {
		t.Fatal("expected elapsed time to stay frozen after failure")
	}
}

func TestStatsFetcherInterface(t *testing.T) {
	log := logger.NewLogger("starload", "info", true)
	var f StatsFetcher = NewRunStats(log)
	if got := len(f.GetStats()); got != 0 {
		t.Fatal("expected no steps; got ", got)
	}
}
