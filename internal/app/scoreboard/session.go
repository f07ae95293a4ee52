// Package scoreboard hosts a live scoreboard session: the current state, its undo/redo
// history and the controller that renders and persists every change.
package scoreboard

import (
	domain "github.com/preston-bernstein/rink-scoreboard/internal/domain/scoreboard"
	"github.com/preston-bernstein/rink-scoreboard/internal/history"
	"github.com/preston-bernstein/rink-scoreboard/internal/persist"
	"github.com/preston-bernstein/rink-scoreboard/internal/render"
)

// Session owns one scoreboard's live state and history. It is not safe for concurrent use.
type Session struct {
	rules   domain.Rules
	state   domain.State
	history *history.Stack[domain.State]
}

// NewSession starts a new game. limit bounds the undo history.
func NewSession(rules domain.Rules, limit int) *Session {
	rules = rules.Normalized()
	return &Session{
		rules:   rules,
		state:   rules.NewGame(),
		history: history.New[domain.State](limit),
	}
}

// State returns the live state.
func (s *Session) State() domain.State {
	return s.state
}

// Rules returns the mutation rules in effect.
func (s *Session) Rules() domain.Rules {
	return s.rules
}

func (s *Session) CanUndo() bool {
	return s.history.CanUndo()
}

func (s *Session) CanRedo() bool {
	return s.history.CanRedo()
}

// Apply runs action and commits the previous state to history. Unknown actions change nothing.
func (s *Session) Apply(action domain.Action) bool {
	next, ok := s.rules.Apply(s.state, action)
	if !ok {
		return false
	}
	prev := s.state
	s.state = next
	s.history.Commit(prev)
	return true
}

// Undo steps back one entry. It reports false when there is nothing to undo.
func (s *Session) Undo() bool {
	prev, ok := s.history.Undo(s.state)
	if ok {
		s.state = prev
	}
	return ok
}

// Redo steps forward one entry. It reports false when there is nothing to redo.
func (s *Session) Redo() bool {
	next, ok := s.history.Redo(s.state)
	if ok {
		s.state = next
	}
	return ok
}

// Payload captures the session for persistence.
func (s *Session) Payload() persist.Payload {
	return persist.Payload{
		State:     s.state,
		UndoStack: s.history.Undos(),
		RedoStack: s.history.Redos(),
	}
}

// Load replaces the session with p. The state is normalized and the undo stack trimmed
// to the history limit.
func (s *Session) Load(p persist.Payload) {
	s.state = s.rules.Normalize(p.State)
	s.history.Restore(p.UndoStack, p.RedoStack)
}

// View renders the live state.
func (s *Session) View() render.View {
	return render.NewView(s.state, s.CanUndo(), s.CanRedo())
}
