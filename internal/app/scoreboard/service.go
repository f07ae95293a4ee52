package scoreboard

import (
	"context"
	"log/slog"
	"sync"

	domain "github.com/preston-bernstein/rink-scoreboard/internal/domain/scoreboard"
	"github.com/preston-bernstein/rink-scoreboard/internal/logging"
	"github.com/preston-bernstein/rink-scoreboard/internal/metrics"
	"github.com/preston-bernstein/rink-scoreboard/internal/persist"
	"github.com/preston-bernstein/rink-scoreboard/internal/render"
)

const (
	actionUndo = "undo"
	actionRedo = "redo"
)

// Persister stores session payloads. Save is best-effort and reports nothing.
type Persister interface {
	Save(ctx context.Context, p persist.Payload)
}

// Service serializes events against a Session. Each change is rendered and then
// persisted before the next event is accepted.
type Service struct {
	mu        sync.Mutex
	session   *Session
	sink      render.Sink
	persister Persister
	logger    *slog.Logger
	metrics   *metrics.Recorder
}

// NewService wires session to its collaborators. A nil sink discards views; a nil
// persister keeps the session in memory only.
func NewService(session *Session, sink render.Sink, persister Persister, logger *slog.Logger, recorder *metrics.Recorder) *Service {
	if sink == nil {
		sink = render.Discard
	}
	return &Service{
		session:   session,
		sink:      sink,
		persister: persister,
		logger:    logger,
		metrics:   recorder,
	}
}

// Apply runs action. It reports false, without rendering or persisting, for unknown actions.
func (s *Service) Apply(ctx context.Context, action domain.Action) (render.View, bool) {
	return s.do(ctx, string(action), func() bool { return s.session.Apply(action) })
}

// Undo reverts the last change. An empty history is a silent no-op.
func (s *Service) Undo(ctx context.Context) (render.View, bool) {
	return s.do(ctx, actionUndo, s.session.Undo)
}

// Redo reapplies the last undone change. An empty redo stack is a silent no-op.
func (s *Service) Redo(ctx context.Context) (render.View, bool) {
	return s.do(ctx, actionRedo, s.session.Redo)
}

// View returns the current view without side effects.
func (s *Service) View() render.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.View()
}

// State returns the live state.
func (s *Service) State() domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.State()
}

// Refresh pushes the current view to the sink without touching history or storage.
func (s *Service) Refresh() render.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	view := s.session.View()
	s.sink.Render(view)
	return view
}

func (s *Service) do(ctx context.Context, name string, change func() bool) (render.View, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	applied := change()
	s.metrics.RecordAction(name, applied)
	view := s.session.View()
	logger := logging.FromContext(ctx, s.logger)
	if !applied {
		logging.Debug(logger, "scoreboard action ignored", logging.FieldAction, name)
		return view, false
	}

	s.sink.Render(view)
	if s.persister != nil {
		// Persist even when the caller's context is already cancelled.
		s.persister.Save(context.WithoutCancel(ctx), s.session.Payload())
	}
	logging.Debug(logger, "scoreboard action applied",
		logging.FieldAction, name,
		"period", view.Period,
		"clock", view.Clock,
	)
	return view, true
}
