package store

import (
	"context"
	"errors"
	"testing"
	"time"
)

type flakeyStore struct {
	failures int
	calls    int
	err      error
}

func (f *flakeyStore) Load(ctx context.Context, key string) ([]byte, error) {
	_ = ctx
	f.calls++
	if f.calls <= f.failures {
		return nil, f.failure(key)
	}
	return []byte("ok"), nil
}

func (f *flakeyStore) Save(ctx context.Context, key string, payload []byte) error {
	_ = ctx
	_ = payload
	f.calls++
	if f.calls <= f.failures {
		return f.failure(key)
	}
	return nil
}

func (f *flakeyStore) Close() error { return nil }

func (f *flakeyStore) failure(key string) error {
	if f.err != nil {
		return f.err
	}
	return &OpError{Backend: "flakey", Op: "io", Key: key, Err: errors.New("boom")}
}

func TestRetryingStoreRetriesAndSucceeds(t *testing.T) {
	fs := &flakeyStore{failures: 2}
	rs := NewRetryingStore(fs, nil, 3, time.Millisecond)

	got, err := rs.Load(context.Background(), "slot")
	if err != nil {
		t.Fatalf("expected success, got error %v", err)
	}
	if string(got) != "ok" {
		t.Fatalf("unexpected payload %s", got)
	}
	if fs.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", fs.calls)
	}
}

func TestRetryingStoreStopsAfterMaxAttempts(t *testing.T) {
	fs := &flakeyStore{failures: 5}
	rs := NewRetryingStore(fs, nil, 2, time.Millisecond)

	err := rs.Save(context.Background(), "slot", []byte("x"))
	if _, ok := AsOpError(err); !ok {
		t.Fatalf("expected op error after retries, got %v", err)
	}
	if fs.calls != 2 {
		t.Fatalf("expected 2 attempts, got %d", fs.calls)
	}
}

func TestRetryingStoreDoesNotRetryNotFound(t *testing.T) {
	fs := &flakeyStore{failures: 5, err: ErrNotFound}
	rs := NewRetryingStore(fs, nil, 3, time.Millisecond)

	if _, err := rs.Load(context.Background(), "slot"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if fs.calls != 1 {
		t.Fatalf("expected a single attempt, got %d", fs.calls)
	}
}

func TestRetryingStoreRespectsContextCancel(t *testing.T) {
	fs := &flakeyStore{failures: 5}
	rs := NewRetryingStore(fs, nil, 3, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := rs.Save(ctx, "slot", nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
}

func TestRetryingStoreUsesCustomBackoff(t *testing.T) {
	fs := &flakeyStore{failures: 1}
	rs := NewRetryingStore(fs, nil, 2, time.Hour).(*retryingStore)

	calls := 0
	rs.backoffFn = func(attempt int) time.Duration {
		calls++
		return 0
	}
	if err := rs.Save(context.Background(), "slot", nil); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected custom backoff to be used once, got %d", calls)
	}
}
