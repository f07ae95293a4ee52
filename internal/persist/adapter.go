package persist

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/rink-scoreboard/internal/domain/scoreboard"
	"github.com/preston-bernstein/rink-scoreboard/internal/history"
	"github.com/preston-bernstein/rink-scoreboard/internal/logging"
	"github.com/preston-bernstein/rink-scoreboard/internal/metrics"
	"github.com/preston-bernstein/rink-scoreboard/internal/store"
)

const (
	// DefaultKey names the slot holding the scoreboard.
	DefaultKey     = "trickshot_scoreboard"
	defaultTimeout = 2 * time.Second

	opSave = "save"
	opLoad = "load"
)

// Options configure an Adapter. Zero values take defaults.
type Options struct {
	Key          string
	Rules        scoreboard.Rules
	HistoryLimit int
	Timeout      time.Duration
}

// Status describes the recent health of the persistence slot.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether the slot is not failing repeatedly.
func (s Status) IsReady() bool {
	return s.ConsecutiveFailures < 3
}

// RestoreResult tells how Restore arrived at its payload.
type RestoreResult int

const (
	// Restored means the stored payload was adopted.
	Restored RestoreResult = iota
	// RestoreEmpty means the slot held nothing.
	RestoreEmpty
	// RestoreDiscarded means the stored bytes were malformed and dropped.
	RestoreDiscarded
	// RestoreFailed means the store could not be read. The slot may still hold a good payload.
	RestoreFailed
)

// Loaded reports whether the stored payload was adopted.
func (r RestoreResult) Loaded() bool {
	return r == Restored
}

// NeedsSeed reports whether the slot should be overwritten with a fresh payload.
// An unreadable slot is left alone.
func (r RestoreResult) NeedsSeed() bool {
	return r == RestoreEmpty || r == RestoreDiscarded
}

func (r RestoreResult) String() string {
	switch r {
	case Restored:
		return "restored"
	case RestoreEmpty:
		return "empty"
	case RestoreDiscarded:
		return "discarded"
	case RestoreFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Adapter saves and restores payloads on a best-effort basis: store failures are logged,
// counted and recorded in Status, never returned.
type Adapter struct {
	store   store.Store
	opts    Options
	logger  *slog.Logger
	metrics *metrics.Recorder
	now     func() time.Time

	statusMu sync.RWMutex
	status   Status
}

// NewAdapter wraps s with the given options.
func NewAdapter(s store.Store, opts Options, logger *slog.Logger, recorder *metrics.Recorder) *Adapter {
	if opts.Key == "" {
		opts.Key = DefaultKey
	}
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = history.DefaultLimit
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	opts.Rules = opts.Rules.Normalized()
	return &Adapter{
		store:   s,
		opts:    opts,
		logger:  logger,
		metrics: recorder,
		now:     time.Now,
	}
}

// Key returns the slot key.
func (a *Adapter) Key() string {
	return a.opts.Key
}

// Save writes p to the slot.
func (a *Adapter) Save(ctx context.Context, p Payload) {
	raw, err := Encode(p)
	if err != nil {
		logging.Error(a.log(ctx), "encode scoreboard payload failed", err)
		return
	}

	start := a.now()
	a.recordAttempt(start)
	opCtx, cancel := context.WithTimeout(ctx, a.opts.Timeout)
	defer cancel()
	err = a.store.Save(opCtx, a.opts.Key, raw)
	a.metrics.RecordPersist(opSave, time.Since(start), err)
	if err != nil {
		a.recordFailure(err, start)
		logging.Warn(a.log(ctx), "scoreboard save failed", logging.FieldKey, a.opts.Key, "error", err)
		return
	}
	a.recordSuccess(start)
}

// Restore loads and validates the slot. Anything but Restored comes with the default payload.
func (a *Adapter) Restore(ctx context.Context) (Payload, RestoreResult) {
	fallback := DefaultPayload(a.opts.Rules)

	start := a.now()
	a.recordAttempt(start)
	opCtx, cancel := context.WithTimeout(ctx, a.opts.Timeout)
	defer cancel()
	raw, err := a.store.Load(opCtx, a.opts.Key)
	if errors.Is(err, store.ErrNotFound) {
		err = nil
		raw = nil
	}
	a.metrics.RecordPersist(opLoad, time.Since(start), err)
	if err != nil {
		a.recordFailure(err, start)
		logging.Warn(a.log(ctx), "scoreboard load failed", logging.FieldKey, a.opts.Key, "error", err)
		return fallback, RestoreFailed
	}
	a.recordSuccess(start)

	p, err := Decode(raw, a.opts.Rules, a.opts.HistoryLimit)
	switch {
	case errors.Is(err, ErrNoPayload):
		logging.Info(a.log(ctx), "no stored scoreboard", logging.FieldKey, a.opts.Key)
		return fallback, RestoreEmpty
	case err != nil:
		logging.Warn(a.log(ctx), "discarding stored scoreboard", logging.FieldKey, a.opts.Key, "error", err)
		return fallback, RestoreDiscarded
	}
	logging.Info(a.log(ctx), "scoreboard restored",
		logging.FieldKey, a.opts.Key,
		"undo", len(p.UndoStack),
		"redo", len(p.RedoStack),
	)
	return p, Restored
}

// Status returns a snapshot of the slot's recent health.
func (a *Adapter) Status() Status {
	a.statusMu.RLock()
	defer a.statusMu.RUnlock()
	return a.status
}

func (a *Adapter) log(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx, a.logger)
}

func (a *Adapter) recordAttempt(at time.Time) {
	a.statusMu.Lock()
	defer a.statusMu.Unlock()
	a.status.LastAttempt = at
}

func (a *Adapter) recordSuccess(at time.Time) {
	a.statusMu.Lock()
	defer a.statusMu.Unlock()
	a.status.ConsecutiveFailures = 0
	a.status.LastError = ""
	a.status.LastSuccess = at
}

func (a *Adapter) recordFailure(err error, at time.Time) {
	a.statusMu.Lock()
	defer a.statusMu.Unlock()
	a.status.ConsecutiveFailures++
	if err != nil {
		a.status.LastError = err.Error()
	}
	a.status.LastAttempt = at
}
