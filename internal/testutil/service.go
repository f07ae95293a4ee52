package testutil

import (
	"context"

	appscoreboard "github.com/preston-bernstein/rink-scoreboard/internal/app/scoreboard"
	domain "github.com/preston-bernstein/rink-scoreboard/internal/domain/scoreboard"
	"github.com/preston-bernstein/rink-scoreboard/internal/persist"
	"github.com/preston-bernstein/rink-scoreboard/internal/store"
)

// Scoreboard bundles a service with the collaborators tests usually inspect.
type Scoreboard struct {
	Service *appscoreboard.Service
	Adapter *persist.Adapter
	Store   store.Store
	Sink    *RecordingSink
}

// NewScoreboardService builds a service over st, restoring whatever the slot holds.
// A nil st uses a fresh in-memory store.
func NewScoreboardService(st store.Store) Scoreboard {
	if st == nil {
		st = store.NewMemoryStore()
	}
	rules := domain.DefaultRules()
	adapter := persist.NewAdapter(st, persist.Options{Rules: rules}, nil, nil)
	session := appscoreboard.NewSession(rules, 0)
	appscoreboard.Restore(context.Background(), session, adapter)
	sink := &RecordingSink{}
	return Scoreboard{
		Service: appscoreboard.NewService(session, sink, adapter, nil, nil),
		Adapter: adapter,
		Store:   st,
		Sink:    sink,
	}
}
