package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FSStore keeps each slot as {basePath}/{key}.json.
type FSStore struct {
	basePath string
}

// NewFSStore constructs a filesystem-backed store rooted at basePath.
func NewFSStore(basePath string) *FSStore {
	return &FSStore{basePath: basePath}
}

// BasePath exposes the store root (primarily for testing).
func (s *FSStore) BasePath() string {
	if s == nil {
		return ""
	}
	return s.basePath
}

// SlotPath builds the file path backing key.
func (s *FSStore) SlotPath(key string) string {
	return filepath.Join(s.basePath, fmt.Sprintf("%s.json", key))
}

// Load reads the slot file.
func (s *FSStore) Load(ctx context.Context, key string) ([]byte, error) {
	if err := s.check(ctx, key); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.SlotPath(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, &OpError{Backend: "file", Op: "load", Key: key, Err: err}
	}
	return data, nil
}

// Save writes the slot through a temp file and rename so readers never see a partial payload.
// Identical payloads are not rewritten.
func (s *FSStore) Save(ctx context.Context, key string, payload []byte) error {
	if err := s.check(ctx, key); err != nil {
		return err
	}
	target := s.SlotPath(key)
	if existing, err := os.ReadFile(target); err == nil && bytes.Equal(existing, payload) {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return &OpError{Backend: "file", Op: "save", Key: key, Err: err}
	}

	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return &OpError{Backend: "file", Op: "save", Key: key, Err: err}
	}
	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return &OpError{Backend: "file", Op: "save", Key: key, Err: err}
	}
	return nil
}

// Close is a no-op.
func (s *FSStore) Close() error {
	return nil
}

func (s *FSStore) check(ctx context.Context, key string) error {
	if s == nil {
		return errors.New("file store not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return ValidateKey(key)
}
