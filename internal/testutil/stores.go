package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/preston-bernstein/rink-scoreboard/internal/render"
	"github.com/preston-bernstein/rink-scoreboard/internal/store"
)

// ErrStoreDown is returned by FailingStore.
var ErrStoreDown = errors.New("store down")

// FailingStore fails every operation and counts attempts.
type FailingStore struct {
	mu         sync.Mutex
	LoadCalls  int
	SaveCalls  int
	CloseCalls int
}

var _ store.Store = (*FailingStore)(nil)

func (s *FailingStore) Load(context.Context, string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.LoadCalls++
	return nil, ErrStoreDown
}

func (s *FailingStore) Save(context.Context, string, []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SaveCalls++
	return ErrStoreDown
}

func (s *FailingStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.CloseCalls++
	return nil
}

// Saves returns the number of Save attempts.
func (s *FailingStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.SaveCalls
}

// RecordingSink collects every rendered view.
type RecordingSink struct {
	mu    sync.Mutex
	views []render.View
}

var _ render.Sink = (*RecordingSink)(nil)

func (s *RecordingSink) Render(v render.View) {
	s.mu.Lock()
	s.views = append(s.views, v)
	s.mu.Unlock()
}

// Views returns a copy of the rendered views in order.
func (s *RecordingSink) Views() []render.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]render.View{}, s.views...)
}

// Last returns the most recent view and whether one exists.
func (s *RecordingSink) Last() (render.View, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.views) == 0 {
		return render.View{}, false
	}
	return s.views[len(s.views)-1], true
}
