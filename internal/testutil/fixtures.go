package testutil

import (
	domain "github.com/preston-bernstein/rink-scoreboard/internal/domain/scoreboard"
	"github.com/preston-bernstein/rink-scoreboard/internal/persist"
)

// SampleState returns a mid-game state fixture.
func SampleState() domain.State {
	return domain.State{
		Period:       domain.PeriodSecond,
		ClockSeconds: 840,
		HomeScore:    3,
		AwayScore:    2,
	}
}

// SamplePayload returns a payload with one undo entry leading to SampleState.
func SamplePayload() persist.Payload {
	prev := SampleState()
	prev.HomeScore--
	return persist.Payload{
		State:     SampleState(),
		UndoStack: []domain.State{prev},
		RedoStack: []domain.State{},
	}
}
