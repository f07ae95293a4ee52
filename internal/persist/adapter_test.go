package persist

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/rink-scoreboard/internal/domain/scoreboard"
	"github.com/preston-bernstein/rink-scoreboard/internal/metrics"
	"github.com/preston-bernstein/rink-scoreboard/internal/store"
)

type brokenStore struct {
	loadErr error
	saveErr error
	saves   int
}

func (b *brokenStore) Load(context.Context, string) ([]byte, error) { return nil, b.loadErr }

func (b *brokenStore) Save(context.Context, string, []byte) error {
	b.saves++
	return b.saveErr
}

func (b *brokenStore) Close() error { return nil }

func newTestAdapter(s store.Store) (*Adapter, *bytes.Buffer, *metrics.Recorder) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	rec := metrics.NewRecorder()
	return NewAdapter(s, Options{}, logger, rec), &buf, rec
}

func TestAdapterRoundTrip(t *testing.T) {
	mem := store.NewMemoryStore()
	a, _, rec := newTestAdapter(mem)
	ctx := context.Background()

	p := Payload{
		State:     scoreboard.State{Period: scoreboard.PeriodSecond, ClockSeconds: 1080, HomeScore: 2},
		UndoStack: []scoreboard.State{scoreboard.DefaultState()},
	}
	a.Save(ctx, p)

	raw, err := mem.Load(ctx, DefaultKey)
	if err != nil {
		t.Fatalf("expected payload in slot %q: %v", DefaultKey, err)
	}
	if !strings.Contains(string(raw), `"redoStack":[]`) {
		t.Fatalf("expected empty redo array, got %s", raw)
	}

	got, res := a.Restore(ctx)
	if !res.Loaded() {
		t.Fatalf("expected restore to succeed, got %s", res)
	}
	if got.State != p.State || len(got.UndoStack) != 1 {
		t.Fatalf("expected %+v, got %+v", p, got)
	}
	if rec.PersistSnapshot("save").Ops != 1 || rec.PersistSnapshot("load").Ops != 1 {
		t.Fatalf("expected one save and one load recorded")
	}
	if !a.Status().IsReady() || a.Status().LastSuccess.IsZero() {
		t.Fatalf("expected ready status, got %+v", a.Status())
	}
}

func TestAdapterRestoreEmptySlot(t *testing.T) {
	a, buf, _ := newTestAdapter(store.NewMemoryStore())
	got, res := a.Restore(context.Background())
	if res != RestoreEmpty || !res.NeedsSeed() {
		t.Fatalf("expected empty result, got %s", res)
	}
	if got.State != scoreboard.DefaultState() {
		t.Fatalf("expected default state, got %+v", got.State)
	}
	if a.Status().ConsecutiveFailures != 0 {
		t.Fatalf("expected empty slot not to count as failure")
	}
	if !strings.Contains(buf.String(), "no stored scoreboard") {
		t.Fatalf("expected info log, got %q", buf.String())
	}
}

func TestAdapterRestoreMalformedFallsBack(t *testing.T) {
	mem := store.NewMemoryStore()
	_ = mem.Save(context.Background(), DefaultKey, []byte(`{"state":{"period":"2"`))
	a, buf, _ := newTestAdapter(mem)

	got, res := a.Restore(context.Background())
	if res != RestoreDiscarded || got.State != scoreboard.DefaultState() || len(got.UndoStack) != 0 {
		t.Fatalf("expected full fallback, got %+v result=%s", got, res)
	}
	if !res.NeedsSeed() {
		t.Fatalf("expected malformed slot to need a fresh payload")
	}
	if !strings.Contains(buf.String(), "discarding stored scoreboard") {
		t.Fatalf("expected warn log, got %q", buf.String())
	}
}

func TestAdapterSwallowsStoreFailures(t *testing.T) {
	broken := &brokenStore{loadErr: errors.New("disk gone"), saveErr: errors.New("read-only")}
	a, buf, rec := newTestAdapter(broken)
	ctx := context.Background()

	got, res := a.Restore(ctx)
	if res != RestoreFailed || got.State != scoreboard.DefaultState() {
		t.Fatalf("expected default on load failure, got %+v result=%s", got, res)
	}
	if res.NeedsSeed() {
		t.Fatalf("expected unreadable slot not to be overwritten")
	}
	a.Save(ctx, got)
	a.Save(ctx, got)

	status := a.Status()
	if status.ConsecutiveFailures != 3 || status.LastError != "read-only" {
		t.Fatalf("unexpected status %+v", status)
	}
	if status.IsReady() {
		t.Fatalf("expected not ready after 3 failures")
	}
	if rec.PersistSnapshot("save").Errors != 2 || rec.PersistSnapshot("load").Errors != 1 {
		t.Fatalf("expected failures counted")
	}
	if !strings.Contains(buf.String(), "scoreboard save failed") {
		t.Fatalf("expected warn log for save, got %q", buf.String())
	}

	broken.saveErr = nil
	a.Save(ctx, got)
	if a.Status().ConsecutiveFailures != 0 || !a.Status().IsReady() {
		t.Fatalf("expected success to reset failures, got %+v", a.Status())
	}
}

func TestAdapterAppliesOptions(t *testing.T) {
	mem := store.NewMemoryStore()
	a := NewAdapter(mem, Options{
		Key:          "rink_two",
		Rules:        scoreboard.Rules{PeriodSeconds: 600, ClockStepSeconds: 60},
		HistoryLimit: 1,
		Timeout:      time.Second,
	}, nil, nil)
	if a.Key() != "rink_two" {
		t.Fatalf("expected custom key, got %s", a.Key())
	}

	_ = mem.Save(context.Background(), "rink_two", []byte(`{"state":{"clockSeconds":1200},"undoStack":[{},{"homeScore":4}]}`))
	got, res := a.Restore(context.Background())
	if !res.Loaded() {
		t.Fatalf("expected restore, got %s", res)
	}
	if got.State.ClockSeconds != 600 {
		t.Fatalf("expected clock clamped to custom period, got %d", got.State.ClockSeconds)
	}
	if len(got.UndoStack) != 1 || got.UndoStack[0].HomeScore != 4 {
		t.Fatalf("expected undo trimmed to newest entry, got %v", got.UndoStack)
	}
}

func TestAdapterUsesFixedClockForStatus(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	a := NewAdapter(store.NewMemoryStore(), Options{}, nil, nil)
	a.now = func() time.Time { return at }

	a.Save(context.Background(), DefaultPayload(scoreboard.DefaultRules()))
	if st := a.Status(); !st.LastAttempt.Equal(at) || !st.LastSuccess.Equal(at) {
		t.Fatalf("expected timestamps at %v, got %+v", at, st)
	}
}
