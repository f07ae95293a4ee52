package scoreboard

import (
	"context"

	"github.com/preston-bernstein/rink-scoreboard/internal/persist"
)

// Slot is the persistence surface a session is restored from.
type Slot interface {
	Persister
	Restore(ctx context.Context) (persist.Payload, persist.RestoreResult)
}

// Restore loads the stored session into s. An empty or malformed slot is seeded with the
// fresh session right away. An unreadable slot is not written: s keeps its defaults in
// memory and the next applied change saves over the slot.
func Restore(ctx context.Context, s *Session, slot Slot) bool {
	payload, res := slot.Restore(ctx)
	if res.Loaded() {
		s.Load(payload)
		return true
	}
	if res.NeedsSeed() {
		slot.Save(ctx, s.Payload())
	}
	return false
}
