// Package input maps named user events onto scoreboard operations.
package input

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domain "github.com/preston-bernstein/rink-scoreboard/internal/domain/scoreboard"
	"github.com/preston-bernstein/rink-scoreboard/internal/render"
)

// ErrUnknownEvent is returned by Parse for names outside Events.
var ErrUnknownEvent = errors.New("unknown event")

// Event is a discrete user input.
type Event string

const (
	EventScoreHome  Event = "score-home"
	EventScoreAway  Event = "score-away"
	EventClock      Event = "clock"
	EventPeriod     Event = "period"
	EventMenuOpen   Event = "menu-open"
	EventMenuClose  Event = "menu-close"
	EventUndo       Event = "undo"
	EventRedo       Event = "redo"
	EventResetClock Event = "reset-clock"
	EventNewGame    Event = "new-game"
)

var eventActions = map[Event]domain.Action{
	EventScoreHome:  domain.ActionScoreHome,
	EventScoreAway:  domain.ActionScoreAway,
	EventClock:      domain.ActionStepClock,
	EventPeriod:     domain.ActionCyclePeriod,
	EventResetClock: domain.ActionResetClock,
	EventNewGame:    domain.ActionNewGame,
}

// Events lists every recognised event.
func Events() []Event {
	return []Event{
		EventScoreHome, EventScoreAway, EventClock, EventPeriod,
		EventMenuOpen, EventMenuClose,
		EventUndo, EventRedo, EventResetClock, EventNewGame,
	}
}

// Parse resolves a case-insensitive event name.
func Parse(name string) (Event, error) {
	e := Event(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Events() {
		if e == known {
			return e, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEvent, name)
}

// Action returns the mutation bound to e. Undo, redo and menu events have none.
func (e Event) Action() (domain.Action, bool) {
	a, ok := eventActions[e]
	return a, ok
}

// IsMenu reports whether e only toggles the controls panel.
func (e Event) IsMenu() bool {
	return e == EventMenuOpen || e == EventMenuClose
}

// Controller is the scoreboard surface events are dispatched to.
type Controller interface {
	Apply(ctx context.Context, action domain.Action) (render.View, bool)
	Undo(ctx context.Context) (render.View, bool)
	Redo(ctx context.Context) (render.View, bool)
	View() render.View
}

// Dispatch routes e to c. It reports whether the scoreboard changed; menu events and
// undo/redo on an empty history return the current view unchanged.
func Dispatch(ctx context.Context, c Controller, e Event) (render.View, bool, error) {
	switch e {
	case EventUndo:
		v, ok := c.Undo(ctx)
		return v, ok, nil
	case EventRedo:
		v, ok := c.Redo(ctx)
		return v, ok, nil
	case EventMenuOpen, EventMenuClose:
		return c.View(), false, nil
	}
	action, ok := e.Action()
	if !ok {
		return c.View(), false, fmt.Errorf("%w: %q", ErrUnknownEvent, string(e))
	}
	v, applied := c.Apply(ctx, action)
	return v, applied, nil
}
