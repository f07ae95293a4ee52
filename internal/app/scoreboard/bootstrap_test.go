package scoreboard

import (
	"context"
	"errors"
	"testing"

	domain "github.com/preston-bernstein/rink-scoreboard/internal/domain/scoreboard"
	"github.com/preston-bernstein/rink-scoreboard/internal/persist"
	"github.com/preston-bernstein/rink-scoreboard/internal/store"
)

type fakeSlot struct {
	payload persist.Payload
	result  persist.RestoreResult
	saved   []persist.Payload
}

func (f *fakeSlot) Restore(context.Context) (persist.Payload, persist.RestoreResult) {
	return f.payload, f.result
}

func (f *fakeSlot) Save(_ context.Context, p persist.Payload) { f.saved = append(f.saved, p) }

func TestRestoreLoadsStoredPayload(t *testing.T) {
	stored := domain.State{Period: domain.PeriodThird, ClockSeconds: 300, HomeScore: 4, AwayScore: 1}
	slot := &fakeSlot{result: persist.Restored, payload: persist.Payload{
		State:     stored,
		UndoStack: []domain.State{domain.DefaultState()},
	}}
	s := NewSession(domain.DefaultRules(), 10)

	if !Restore(context.Background(), s, slot) {
		t.Fatalf("expected restore to report true")
	}
	if s.State() != stored || !s.CanUndo() {
		t.Fatalf("expected stored session, got %+v", s.Payload())
	}
	if len(slot.saved) != 0 {
		t.Fatalf("expected no write on successful restore")
	}
}

func TestRestoreSeedsEmptyOrMalformedSlot(t *testing.T) {
	for _, res := range []persist.RestoreResult{persist.RestoreEmpty, persist.RestoreDiscarded} {
		t.Run(res.String(), func(t *testing.T) {
			slot := &fakeSlot{result: res, payload: persist.DefaultPayload(domain.DefaultRules())}
			s := NewSession(domain.DefaultRules(), 10)

			if Restore(context.Background(), s, slot) {
				t.Fatalf("expected restore to report false")
			}
			if len(slot.saved) != 1 || slot.saved[0].State != domain.DefaultState() {
				t.Fatalf("expected default payload written once, got %+v", slot.saved)
			}
			if s.State() != domain.DefaultState() {
				t.Fatalf("expected default state, got %+v", s.State())
			}
		})
	}
}

// loadOnceFailingStore fails its first Load and then defers to the wrapped store.
type loadOnceFailingStore struct {
	store.Store
	failed bool
}

func (l *loadOnceFailingStore) Load(ctx context.Context, key string) ([]byte, error) {
	if !l.failed {
		l.failed = true
		return nil, errors.New("connection reset")
	}
	return l.Store.Load(ctx, key)
}

func TestRestoreLeavesUnreadableSlotUntouched(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore()
	stored := domain.State{Period: domain.PeriodThird, ClockSeconds: 300, HomeScore: 5, AwayScore: 4}
	seed := persist.NewAdapter(mem, persist.Options{}, nil, nil)
	seed.Save(ctx, persist.Payload{State: stored})

	flaky := &loadOnceFailingStore{Store: mem}
	adapter := persist.NewAdapter(flaky, persist.Options{}, nil, nil)
	s := NewSession(domain.DefaultRules(), 10)

	if Restore(ctx, s, adapter) {
		t.Fatalf("expected restore to report false on load error")
	}
	if s.State() != domain.DefaultState() {
		t.Fatalf("expected defaults in memory, got %+v", s.State())
	}

	got, res := seed.Restore(ctx)
	if !res.Loaded() || got.State != stored {
		t.Fatalf("expected stored game kept, got %+v result=%s", got.State, res)
	}

	again := NewSession(domain.DefaultRules(), 10)
	if !Restore(ctx, again, adapter) || again.State() != stored {
		t.Fatalf("expected stored game on retry, got %+v", again.State())
	}
}
