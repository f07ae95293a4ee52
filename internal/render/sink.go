package render

import "log/slog"

// Sink receives every view the scoreboard produces. Render must not block for long;
// it runs while the scoreboard holds its event lock.
type Sink interface {
	Render(View)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(View)

func (f SinkFunc) Render(v View) {
	f(v)
}

type multiSink []Sink

// Multi fans a view out to every non-nil sink in order.
func Multi(sinks ...Sink) Sink {
	out := make(multiSink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

func (m multiSink) Render(v View) {
	for _, s := range m {
		s.Render(v)
	}
}

// LogSink writes each view at debug level.
func LogSink(logger *slog.Logger) Sink {
	return SinkFunc(func(v View) {
		if logger == nil {
			return
		}
		logger.Debug("scoreboard rendered",
			"period", v.Period,
			"clock", v.Clock,
			"home", v.Home,
			"away", v.Away,
			"can_undo", v.CanUndo,
			"can_redo", v.CanRedo,
		)
	})
}

// Discard drops every view.
var Discard Sink = SinkFunc(func(View) {})
