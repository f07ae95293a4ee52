// Package tui is the terminal surface of the scoreboard.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/preston-bernstein/rink-scoreboard/internal/input"
	"github.com/preston-bernstein/rink-scoreboard/internal/render"
)

// Options tunes the terminal surface.
type Options struct {
	// DoubleTapUndo turns a quick second tap on a score key into an undo.
	DoubleTapUndo bool
	TapWindow     time.Duration
}

type tapExpiredMsg struct{}

// Model is the Bubble Tea model driving a scoreboard controller.
type Model struct {
	ctx      context.Context
	ctrl     input.Controller
	sink     *Sink
	taps     *input.TapDetector
	view     render.View
	menuOpen bool
	status   string
	styles   styles
}

// New builds a model over ctrl. sink may be nil when views only come from key handling.
func New(ctx context.Context, ctrl input.Controller, sink *Sink, opts Options) Model {
	m := Model{
		ctx:    ctx,
		ctrl:   ctrl,
		sink:   sink,
		view:   ctrl.View(),
		styles: defaultStyles(),
	}
	if opts.DoubleTapUndo {
		m.taps = input.NewTapDetector(opts.TapWindow)
	}
	return m
}

func (m Model) Init() tea.Cmd {
	if m.sink == nil {
		return nil
	}
	return m.sink.wait()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ViewMsg:
		m.view = render.View(msg)
		if m.sink == nil {
			return m, nil
		}
		return m, m.sink.wait()
	case tapExpiredMsg:
		if m.taps != nil {
			for _, e := range m.taps.Expired() {
				m = m.dispatch(e)
			}
		}
		return m, nil
	case tea.KeyMsg:
		key := msg.String()
		if isQuit(key) {
			return m, tea.Quit
		}
		e, ok := lookupKey(m.menuOpen, key)
		if !ok {
			return m, nil
		}
		if m.taps != nil {
			out, ready := m.taps.Tap(e)
			if !ready {
				return m, tea.Tick(m.taps.Window(), func(time.Time) tea.Msg { return tapExpiredMsg{} })
			}
			e = out
		}
		return m.dispatch(e), nil
	}
	return m, nil
}

func (m Model) dispatch(e input.Event) Model {
	switch e {
	case input.EventMenuOpen:
		m.menuOpen = true
	case input.EventMenuClose:
		m.menuOpen = false
	}
	view, applied, err := input.Dispatch(m.ctx, m.ctrl, e)
	if err != nil {
		m.status = err.Error()
		return m
	}
	m.view = view
	m.status = statusLine(e, applied)
	return m
}

func statusLine(e input.Event, applied bool) string {
	switch {
	case e.IsMenu():
		return ""
	case e == input.EventUndo && !applied:
		return "nothing to undo"
	case e == input.EventRedo && !applied:
		return "nothing to redo"
	default:
		return string(e)
	}
}

// MenuOpen reports whether the controls panel is showing.
func (m Model) MenuOpen() bool {
	return m.menuOpen
}

// Current returns the view on screen.
func (m Model) Current() render.View {
	return m.view
}

func (m Model) View() string {
	s := m.styles
	column := func(label, value string, style lipgloss.Style) string {
		return lipgloss.JoinVertical(lipgloss.Center, s.label.Render(label), style.Render(value))
	}
	board := lipgloss.JoinHorizontal(lipgloss.Top,
		column("HOME", m.view.Home, s.score),
		column("PERIOD", m.view.Period, s.clock),
		column("CLOCK", m.view.Clock, s.clock),
		column("AWAY", m.view.Away, s.score),
	)

	var b strings.Builder
	b.WriteString(s.title.Render("Rink Scoreboard"))
	b.WriteString("\n")
	b.WriteString(s.panel.Render(board))
	b.WriteString("\n")
	if m.menuOpen {
		b.WriteString(s.panel.Render(m.controls()))
		b.WriteString("\n")
		b.WriteString(s.help.Render("u undo • r redo • x reset clock • n new game • m close • q quit"))
	} else {
		b.WriteString(s.help.Render("h home • a away • c clock • p period • u undo • r redo • m menu • q quit"))
	}
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(s.label.Render(m.status))
	}
	return b.String()
}

func (m Model) controls() string {
	s := m.styles
	control := func(label string, enabled bool) string {
		if !enabled {
			return s.disabled.Render(label)
		}
		return s.control.Render(label)
	}
	return fmt.Sprintf("%s  %s  %s  %s",
		control("[u] Undo", m.view.CanUndo),
		control("[r] Redo", m.view.CanRedo),
		control("[x] Reset clock", true),
		control("[n] New game", true),
	)
}

// Run drives the terminal program until the user quits or ctx is cancelled.
func Run(ctx context.Context, ctrl input.Controller, sink *Sink, opts Options) error {
	p := tea.NewProgram(New(ctx, ctrl, sink, opts), tea.WithContext(ctx), tea.WithAltScreen())
	_, err := p.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
