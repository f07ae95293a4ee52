// Package render turns scoreboard state into display views and pushes them to sinks.
package render

import "github.com/preston-bernstein/rink-scoreboard/internal/domain/scoreboard"

// View is everything a display needs: the raw state, its formatted fields and
// whether the undo/redo controls should be enabled.
type View struct {
	State   scoreboard.State `json:"state"`
	Period  string           `json:"period"`
	Clock   string           `json:"clock"`
	Home    string           `json:"home"`
	Away    string           `json:"away"`
	CanUndo bool             `json:"canUndo"`
	CanRedo bool             `json:"canRedo"`
}

// NewView formats s for display.
func NewView(s scoreboard.State, canUndo, canRedo bool) View {
	return View{
		State:   s,
		Period:  string(s.Period),
		Clock:   scoreboard.FormatClock(s.ClockSeconds),
		Home:    scoreboard.FormatScore(s.HomeScore),
		Away:    scoreboard.FormatScore(s.AwayScore),
		CanUndo: canUndo,
		CanRedo: canRedo,
	}
}
