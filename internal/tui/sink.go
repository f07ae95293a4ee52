package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/preston-bernstein/rink-scoreboard/internal/render"
)

// ViewMsg carries a rendered view into the program.
type ViewMsg render.View

// Sink hands rendered views to the terminal program. Only the latest pending view is
// kept, so Render never blocks the service.
type Sink struct {
	views chan render.View
}

// NewSink returns an empty Sink.
func NewSink() *Sink {
	return &Sink{views: make(chan render.View, 1)}
}

// Render queues v, replacing any view the program has not picked up yet.
func (s *Sink) Render(v render.View) {
	for {
		select {
		case s.views <- v:
			return
		default:
		}
		select {
		case <-s.views:
		default:
		}
	}
}

// wait returns a command that delivers the next queued view.
func (s *Sink) wait() tea.Cmd {
	return func() tea.Msg {
		return ViewMsg(<-s.views)
	}
}
