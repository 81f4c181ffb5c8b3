package actions

import (
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
)

func TestRunRegistryLoadReturnsCopy(t *testing.T) {
	m := NewSafeMapRunInfo()
	m.Store("r1", &RunInfo{RunId: "r1", Status: RunStatusRunning})
	before, ok := m.Load("r1")
	if !ok {
		t.Fatal("expected to find run r1")
	}
	m.setOutcome("r1", &TransformError{Step: "dim_users", Err: errors.New("boom")})
	// The earlier copy is decoupled from the live run.
	if before.Status != RunStatusRunning {
		t.Fatal("expected the loaded copy to be unaffected by setOutcome; got ", before.Status)
	}
	after, _ := m.Load("r1")
	if after.Status != RunStatusFailed {
		t.Fatal("expected failed status; got ", after.Status)
	}
	if after.FailedStep != "dim_users" {
		t.Fatal("unexpected failed step: ", after.FailedStep)
	}
	if after.ErrorText == "" {
		t.Fatal("expected the error text to be recorded")
	}
	m.setOutcome("r1", nil)
	done, _ := m.Load("r1")
	if done.Status != RunStatusComplete {
		t.Fatal("expected complete status; got ", done.Status)
	}
}

func TestRunRegistryLoadAll(t *testing.T) {
	m := NewSafeMapRunInfo()
	m.Store("r1", &RunInfo{RunId: "r1", Status: RunStatusRunning})
	m.Store("r2", &RunInfo{RunId: "r2", Status: RunStatusComplete})
	runs := m.LoadAll()
	if len(runs) != 2 {
		t.Fatal("expected 2 runs; got ", len(runs))
	}
}

// Status polls must be able to marshal run info while the run's goroutine is
// still writing its outcome.
func TestRunRegistryConcurrentStatusReads(t *testing.T) {
	m := NewSafeMapRunInfo()
	m.Store("r1", &RunInfo{RunId: "r1", Status: RunStatusRunning})
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			if i%2 == 0 {
				m.setOutcome("r1", errors.New("boom"))
			} else {
				m.setOutcome("r1", nil)
			}
		}
	}()
	for {
		info, ok := m.Load("r1")
		if !ok {
			t.Fatal("expected to find run r1")
		}
		if _, err := json.Marshal(info); err != nil {
			t.Fatal("unexpected marshal error: ", err)
		}
		select {
		case <-done:
			return
		default:
		}
	}
}
