package metrics

import (
	"sync"
	"time"
)

type persistStats struct {
	ops         int
	errors      int
	lastLatency time.Duration
}

// Recorder captures lightweight, in-memory counters about scoreboard activity,
// mirrored to OpenTelemetry instruments when telemetry is enabled.
type Recorder struct {
	mu      sync.Mutex
	actions map[string]int
	ignored int
	persist map[string]*persistStats
	otel    *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		actions: make(map[string]int),
		persist: make(map[string]*persistStats),
		otel:    otel,
	}
}

// RecordAction counts a dispatched scoreboard action. Unapplied actions (empty undo/redo,
// unknown names) are counted separately.
func (r *Recorder) RecordAction(action string, applied bool) {
	if r == nil {
		return
	}
	r.mu.Lock()
	if applied {
		r.actions[action]++
	} else {
		r.ignored++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordAction(action, applied)
	}
}

// RecordPersist tracks a persistence operation ("save" or "load") and its latency.
func (r *Recorder) RecordPersist(op string, duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	stats, ok := r.persist[op]
	if !ok {
		stats = &persistStats{}
		r.persist[op] = stats
	}
	stats.ops++
	stats.lastLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordPersist(op, duration, err)
	}
}

// RecordBroadcast counts a view pushed to connected clients.
func (r *Recorder) RecordBroadcast(clients int) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordBroadcast(clients)
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// ActionCount returns how many times action was applied.
func (r *Recorder) ActionCount(action string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.actions[action]
}

// IgnoredActions returns how many dispatched actions changed nothing.
func (r *Recorder) IgnoredActions() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ignored
}

// Snapshot is a copy of the stats for one persistence operation.
type Snapshot struct {
	Ops         int
	Errors      int
	LastLatency time.Duration
}

// PersistSnapshot returns the current stats for op.
func (r *Recorder) PersistSnapshot(op string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stats, ok := r.persist[op]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{Ops: stats.ops, Errors: stats.errors, LastLatency: stats.lastLatency}
}
