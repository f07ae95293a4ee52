// Package store provides durable key-value slots for scoreboard payloads.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound reports an empty slot.
var ErrNotFound = errors.New("slot is empty")

// Store reads and writes opaque payloads keyed by a fixed slot identifier.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, payload []byte) error
	Close() error
}

// OpError describes a failed store operation.
type OpError struct {
	Backend string
	Op      string
	Key     string
	Err     error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s %s %q: %v", e.Backend, e.Op, e.Key, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// AsOpError attempts to unwrap an error into an OpError.
func AsOpError(err error) (*OpError, bool) {
	var opErr *OpError
	if errors.As(err, &opErr) {
		return opErr, true
	}
	return nil, false
}

// ValidateKey rejects keys that cannot be used as a slot name by every backend.
func ValidateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("slot key required")
	}
	if strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return fmt.Errorf("slot key %q contains path characters", key)
	}
	return nil
}
