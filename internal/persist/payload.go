// Package persist serializes the scoreboard session to a single key-value slot and
// restores it with field-level validation.
package persist

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/preston-bernstein/rink-scoreboard/internal/domain/scoreboard"
)

var (
	// ErrNoPayload is returned when the slot holds nothing.
	ErrNoPayload = errors.New("no stored payload")
	// ErrMalformed is returned when the stored bytes cannot be adopted at all.
	ErrMalformed = errors.New("malformed payload")
)

// Payload is the persisted shape: the live state plus both history stacks, oldest first.
type Payload struct {
	State     scoreboard.State   `json:"state"`
	UndoStack []scoreboard.State `json:"undoStack"`
	RedoStack []scoreboard.State `json:"redoStack"`
}

// DefaultPayload is a new game with empty history.
func DefaultPayload(rules scoreboard.Rules) Payload {
	return Payload{
		State:     rules.NewGame(),
		UndoStack: []scoreboard.State{},
		RedoStack: []scoreboard.State{},
	}
}

// Encode renders p as JSON. Nil stacks are written as empty arrays.
func Encode(p Payload) ([]byte, error) {
	if p.UndoStack == nil {
		p.UndoStack = []scoreboard.State{}
	}
	if p.RedoStack == nil {
		p.RedoStack = []scoreboard.State{}
	}
	return json.Marshal(p)
}

// Decode validates raw field by field. Invalid or missing fields take their defaults;
// only an unreadable document or a missing state object rejects the whole payload.
// The undo stack keeps at most the newest limit entries.
func Decode(raw []byte, rules scoreboard.Rules, limit int) (Payload, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return Payload{}, ErrNoPayload
	}
	if !gjson.ValidBytes(raw) {
		return Payload{}, ErrMalformed
	}
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return Payload{}, ErrMalformed
	}
	state := root.Get("state")
	if !state.IsObject() {
		return Payload{}, ErrMalformed
	}

	rules = rules.Normalized()
	p := Payload{
		State:     decodeState(state, rules),
		UndoStack: decodeStack(root.Get("undoStack"), rules),
		RedoStack: decodeStack(root.Get("redoStack"), rules),
	}
	if limit > 0 && len(p.UndoStack) > limit {
		p.UndoStack = p.UndoStack[len(p.UndoStack)-limit:]
	}
	return p, nil
}

func decodeState(obj gjson.Result, rules scoreboard.Rules) scoreboard.State {
	return rules.Normalize(scoreboard.State{
		Period:       decodePeriod(obj.Get("period")),
		ClockSeconds: decodeInt(obj.Get("clockSeconds"), rules.PeriodSeconds),
		HomeScore:    decodeInt(obj.Get("homeScore"), 0),
		AwayScore:    decodeInt(obj.Get("awayScore"), 0),
	})
}

func decodeStack(v gjson.Result, rules scoreboard.Rules) []scoreboard.State {
	out := []scoreboard.State{}
	if !v.IsArray() {
		return out
	}
	v.ForEach(func(_, entry gjson.Result) bool {
		if entry.IsObject() {
			out = append(out, decodeState(entry, rules))
		}
		return true
	})
	return out
}

func decodePeriod(v gjson.Result) scoreboard.Period {
	if v.Type == gjson.String {
		if p, ok := scoreboard.ParsePeriod(v.Str); ok {
			return p
		}
	}
	return scoreboard.PeriodFirst
}

// decodeInt coerces numbers, numeric strings and booleans. Missing, null and
// non-numeric values yield fallback.
func decodeInt(v gjson.Result, fallback int) int {
	switch v.Type {
	case gjson.Number:
		return truncate(v.Num, fallback)
	case gjson.True:
		return 1
	case gjson.False:
		return 0
	case gjson.String:
		s := strings.TrimSpace(v.Str)
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fallback
		}
		return truncate(f, fallback)
	default:
		return fallback
	}
}

// truncate drops the fraction after bounding f so the conversion cannot overflow.
// Callers clamp the result into the field domain.
func truncate(f float64, fallback int) int {
	if math.IsNaN(f) {
		return fallback
	}
	f = math.Max(math.MinInt32, math.Min(math.MaxInt32, f))
	return int(f)
}
