package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/rink-scoreboard/internal/logging"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 50 * time.Millisecond
)

type backoffFunc func(attempt int) time.Duration

// retryingStore wraps a Store with retry/backoff on backend failures.
// Empty slots and invalid keys are returned immediately.
type retryingStore struct {
	inner       Store
	logger      *slog.Logger
	maxAttempts int
	backoffFn   backoffFunc
}

// NewRetryingStore wraps inner with retries. If maxAttempts/backoff are <= 0, defaults are used.
func NewRetryingStore(inner Store, logger *slog.Logger, maxAttempts int, backoff time.Duration) Store {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	return &retryingStore{
		inner:       inner,
		logger:      logger,
		maxAttempts: maxAttempts,
		backoffFn: func(attempt int) time.Duration {
			return time.Duration(attempt) * backoff
		},
	}
}

func (r *retryingStore) Load(ctx context.Context, key string) ([]byte, error) {
	var payload []byte
	err := r.do(ctx, "load", key, func() error {
		var err error
		payload, err = r.inner.Load(ctx, key)
		return err
	})
	return payload, err
}

func (r *retryingStore) Save(ctx context.Context, key string, payload []byte) error {
	return r.do(ctx, "save", key, func() error {
		return r.inner.Save(ctx, key, payload)
	})
}

func (r *retryingStore) Close() error {
	return r.inner.Close()
}

func (r *retryingStore) do(ctx context.Context, op, key string, fn func() error) error {
	var lastErr error
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		if _, retryable := AsOpError(err); !retryable {
			return err
		}
		lastErr = err
		if attempt == r.maxAttempts {
			break
		}
		r.logWarn(ctx, "store retry", "op", op, logging.FieldKey, key, "attempt", attempt, "max_attempts", r.maxAttempts, "err", err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.backoffFn(attempt)):
		}
	}
	return lastErr
}

func (r *retryingStore) logWarn(ctx context.Context, msg string, args ...any) {
	logger := logging.FromContext(ctx, r.logger)
	if logger != nil {
		logger.Warn(msg, args...)
	}
}
