package scoreboard

// Action names a mutating scoreboard operation.
type Action string

const (
	ActionScoreHome   Action = "score-home"
	ActionScoreAway   Action = "score-away"
	ActionStepClock   Action = "step-clock"
	ActionResetClock  Action = "reset-clock"
	ActionCyclePeriod Action = "cycle-period"
	ActionNewGame     Action = "new-game"
)

// Actions lists every mutating action.
func Actions() []Action {
	return []Action{
		ActionScoreHome,
		ActionScoreAway,
		ActionStepClock,
		ActionResetClock,
		ActionCyclePeriod,
		ActionNewGame,
	}
}

// Valid reports whether a names a known action.
func (a Action) Valid() bool {
	for _, known := range Actions() {
		if a == known {
			return true
		}
	}
	return false
}

// Rules holds the tunable constants of the mutation layer.
// PeriodSeconds must stay within (0, MaxClockSeconds].
type Rules struct {
	PeriodSeconds    int
	ClockStepSeconds int
}

// DefaultRules returns a 20 minute period stepped down two minutes per clock tap.
func DefaultRules() Rules {
	return Rules{
		PeriodSeconds:    DefaultPeriodSeconds,
		ClockStepSeconds: DefaultClockStepSeconds,
	}
}

// Normalized replaces out-of-range values with the defaults.
func (r Rules) Normalized() Rules {
	if r.PeriodSeconds <= 0 || r.PeriodSeconds > MaxClockSeconds {
		r.PeriodSeconds = DefaultPeriodSeconds
	}
	if r.ClockStepSeconds <= 0 {
		r.ClockStepSeconds = DefaultClockStepSeconds
	}
	return r
}

// Apply runs the named action against s. It reports false for an unknown action and
// leaves s untouched.
func (r Rules) Apply(s State, action Action) (State, bool) {
	switch action {
	case ActionScoreHome:
		return r.AddScore(s, TeamHome), true
	case ActionScoreAway:
		return r.AddScore(s, TeamAway), true
	case ActionStepClock:
		return r.StepClock(s), true
	case ActionResetClock:
		return r.ResetClock(s), true
	case ActionCyclePeriod:
		return r.CyclePeriod(s), true
	case ActionNewGame:
		return r.NewGame(), true
	default:
		return s, false
	}
}

// AddScore increments the team's score, saturating at MaxScore.
func (r Rules) AddScore(s State, team Team) State {
	switch team {
	case TeamHome:
		s.HomeScore = Clamp(s.HomeScore+1, 0, MaxScore)
	case TeamAway:
		s.AwayScore = Clamp(s.AwayScore+1, 0, MaxScore)
	}
	return s
}

// StepClock takes one step off the clock without going below zero.
func (r Rules) StepClock(s State) State {
	r = r.Normalized()
	s.ClockSeconds = Clamp(s.ClockSeconds-r.ClockStepSeconds, 0, r.PeriodSeconds)
	return s
}

// ResetClock puts a full period back on the clock.
func (r Rules) ResetClock(s State) State {
	s.ClockSeconds = r.Normalized().PeriodSeconds
	return s
}

// CyclePeriod moves to the next period and resets the clock.
func (r Rules) CyclePeriod(s State) State {
	s.Period = s.Period.Next()
	s.ClockSeconds = r.Normalized().PeriodSeconds
	return s
}

// NewGame returns the initial state.
func (r Rules) NewGame() State {
	return State{
		Period:       PeriodFirst,
		ClockSeconds: r.Normalized().PeriodSeconds,
	}
}

// Normalize forces every field of s into its legal domain.
func (r Rules) Normalize(s State) State {
	if !s.Period.Valid() {
		s.Period = PeriodFirst
	}
	s.ClockSeconds = Clamp(s.ClockSeconds, 0, r.Normalized().PeriodSeconds)
	s.HomeScore = Clamp(s.HomeScore, 0, MaxScore)
	s.AwayScore = Clamp(s.AwayScore, 0, MaxScore)
	return s
}
