package actions

import (
	"sync"
	"time"

	"github.com/playlake/starload/stats"
)

type RunStatus string

const (
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// RunInfo describes one pipeline run launched via the web server.
type RunInfo struct {
	RunId      string             `json:"runId"`
	StartTime  time.Time          `json:"startTime"`
	Status     RunStatus          `json:"status"`
	FailedStep string             `json:"failedStep,omitempty"`
	ErrorText  string             `json:"errorText,omitempty"`
	Stats      stats.StatsFetcher `json:"-"`
}

// SafeMapRunInfo is a mutex-protected registry of runs keyed by run ID.
type SafeMapRunInfo struct {
	sync.RWMutex
	Internal map[string]*RunInfo
}

func NewSafeMapRunInfo() *SafeMapRunInfo {
	return &SafeMapRunInfo{Internal: make(map[string]*RunInfo)}
}

func (m *SafeMapRunInfo) Store(id string, info *RunInfo) {
	m.Lock()
	defer m.Unlock()
	m.Internal[id] = info
}

// Load returns a copy of the registered run so callers can read and marshal it
// while the run's goroutine is still updating the live struct.
func (m *SafeMapRunInfo) Load(id string) (RunInfo, bool) {
	m.RLock()
	defer m.RUnlock()
	info, ok := m.Internal[id]
	if !ok {
		return RunInfo{}, false
	}
	return *info, true
}

// LoadAll returns copies of every registered run.
func (m *SafeMapRunInfo) LoadAll() []RunInfo {
	m.RLock()
	defer m.RUnlock()
	runs := make([]RunInfo, 0, len(m.Internal))
	for _, v := range m.Internal { // for each registered run...
		runs = append(runs, *v)
	}
	return runs
}

func (m *SafeMapRunInfo) setOutcome(id string, err error) {
	m.Lock()
	defer m.Unlock()
	info, ok := m.Internal[id]
	if !ok {
		return
	}
	if err != nil {
		info.Status = RunStatusFailed
		info.FailedStep = FailedStepName(err)
		info.ErrorText = err.Error()
	} else {
		info.Status = RunStatusComplete
	}
}
