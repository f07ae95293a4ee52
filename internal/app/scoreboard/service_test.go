package scoreboard

import (
	"context"
	"testing"

	domain "github.com/preston-bernstein/rink-scoreboard/internal/domain/scoreboard"
	"github.com/preston-bernstein/rink-scoreboard/internal/metrics"
	"github.com/preston-bernstein/rink-scoreboard/internal/persist"
	"github.com/preston-bernstein/rink-scoreboard/internal/render"
)

type recordedSave struct {
	payload persist.Payload
	ctxErr  error
}

type recordingPersister struct {
	events *[]string
	saves  []recordedSave
}

func (p *recordingPersister) Save(ctx context.Context, payload persist.Payload) {
	*p.events = append(*p.events, "persist")
	p.saves = append(p.saves, recordedSave{payload: payload, ctxErr: ctx.Err()})
}

func newTestService() (*Service, *[]string, *[]render.View, *recordingPersister, *metrics.Recorder) {
	events := &[]string{}
	views := &[]render.View{}
	sink := render.SinkFunc(func(v render.View) {
		*events = append(*events, "render")
		*views = append(*views, v)
	})
	p := &recordingPersister{events: events}
	rec := metrics.NewRecorder()
	svc := NewService(NewSession(domain.DefaultRules(), 10), sink, p, nil, rec)
	return svc, events, views, p, rec
}

func TestServiceRendersThenPersistsOncePerChange(t *testing.T) {
	svc, events, views, p, rec := newTestService()
	ctx := context.Background()

	view, ok := svc.Apply(ctx, domain.ActionScoreHome)
	if !ok || view.Home != "01" {
		t.Fatalf("expected applied score, got %+v ok=%v", view, ok)
	}
	if len(*events) != 2 || (*events)[0] != "render" || (*events)[1] != "persist" {
		t.Fatalf("expected render then persist, got %v", *events)
	}
	if (*views)[0] != view {
		t.Fatalf("expected rendered view to match returned view")
	}
	saved := p.saves[0].payload
	if saved.State.HomeScore != 1 || len(saved.UndoStack) != 1 || saved.UndoStack[0] != domain.DefaultState() {
		t.Fatalf("unexpected saved payload %+v", saved)
	}
	if rec.ActionCount(string(domain.ActionScoreHome)) != 1 {
		t.Fatalf("expected action counted")
	}
}

func TestServiceEmptyUndoRedoHaveNoSideEffects(t *testing.T) {
	svc, events, _, p, rec := newTestService()
	ctx := context.Background()

	if _, ok := svc.Undo(ctx); ok {
		t.Fatalf("expected empty undo to report false")
	}
	if _, ok := svc.Redo(ctx); ok {
		t.Fatalf("expected empty redo to report false")
	}
	if len(*events) != 0 || len(p.saves) != 0 {
		t.Fatalf("expected no render or persist, got %v", *events)
	}
	if rec.IgnoredActions() != 2 {
		t.Fatalf("expected 2 ignored actions, got %d", rec.IgnoredActions())
	}
}

func TestServiceUndoRedoPersistHistory(t *testing.T) {
	svc, _, _, p, _ := newTestService()
	ctx := context.Background()

	svc.Apply(ctx, domain.ActionStepClock)
	view, ok := svc.Undo(ctx)
	if !ok || view.Clock != "20:00" || !view.CanRedo {
		t.Fatalf("unexpected undo view %+v", view)
	}
	last := p.saves[len(p.saves)-1].payload
	if len(last.UndoStack) != 0 || len(last.RedoStack) != 1 || last.RedoStack[0].ClockSeconds != 1080 {
		t.Fatalf("expected redo entry persisted, got %+v", last)
	}

	view, ok = svc.Redo(ctx)
	if !ok || view.Clock != "18:00" {
		t.Fatalf("unexpected redo view %+v", view)
	}
	if len(p.saves) != 3 {
		t.Fatalf("expected 3 saves, got %d", len(p.saves))
	}
}

func TestServiceUnknownActionIsIgnored(t *testing.T) {
	svc, events, _, _, _ := newTestService()
	if _, ok := svc.Apply(context.Background(), domain.Action("icing")); ok {
		t.Fatalf("expected unknown action rejected")
	}
	if len(*events) != 0 {
		t.Fatalf("expected no side effects, got %v", *events)
	}
}

func TestServicePersistsWithCancelledContext(t *testing.T) {
	svc, _, _, p, _ := newTestService()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc.Apply(ctx, domain.ActionScoreAway)
	if len(p.saves) != 1 || p.saves[0].ctxErr != nil {
		t.Fatalf("expected save with live context, got %+v", p.saves)
	}
}

func TestServiceWithoutCollaborators(t *testing.T) {
	svc := NewService(NewSession(domain.DefaultRules(), 10), nil, nil, nil, nil)
	if _, ok := svc.Apply(context.Background(), domain.ActionNewGame); !ok {
		t.Fatalf("expected action applied without sink or persister")
	}
	if svc.State() != domain.DefaultState() {
		t.Fatalf("unexpected state %+v", svc.State())
	}
}

func TestServiceRefreshRendersWithoutPersisting(t *testing.T) {
	svc, events, views, p, _ := newTestService()
	view := svc.Refresh()
	if len(*views) != 1 || (*views)[0] != view || len(p.saves) != 0 {
		t.Fatalf("expected one render and no save, got %v", *events)
	}
	if svc.View() != view {
		t.Fatalf("expected View to match refreshed view")
	}
}
