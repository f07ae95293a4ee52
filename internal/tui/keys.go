package tui

import "github.com/preston-bernstein/rink-scoreboard/internal/input"

// Board keys are active while the controls menu is closed.
var boardKeys = map[string]input.Event{
	"h":      input.EventScoreHome,
	"left":   input.EventScoreHome,
	"a":      input.EventScoreAway,
	"right":  input.EventScoreAway,
	"c":      input.EventClock,
	" ":      input.EventClock,
	"p":      input.EventPeriod,
	"m":      input.EventMenuOpen,
	"tab":    input.EventMenuOpen,
	"u":      input.EventUndo,
	"ctrl+z": input.EventUndo,
	"r":      input.EventRedo,
	"ctrl+y": input.EventRedo,
}

// Menu keys are active while the controls menu is open.
var menuKeys = map[string]input.Event{
	"u":      input.EventUndo,
	"ctrl+z": input.EventUndo,
	"r":      input.EventRedo,
	"ctrl+y": input.EventRedo,
	"x":      input.EventResetClock,
	"n":      input.EventNewGame,
	"m":      input.EventMenuClose,
	"tab":    input.EventMenuClose,
	"esc":    input.EventMenuClose,
}

func lookupKey(menuOpen bool, key string) (input.Event, bool) {
	if menuOpen {
		e, ok := menuKeys[key]
		return e, ok
	}
	e, ok := boardKeys[key]
	return e, ok
}

func isQuit(key string) bool {
	return key == "q" || key == "ctrl+c"
}
