package scoreboard

// Period is one of the four ordinal game segments.
type Period string

const (
	PeriodFirst    Period = "1"
	PeriodSecond   Period = "2"
	PeriodThird    Period = "3"
	PeriodOvertime Period = "OT"
)

var periodOrder = [...]Period{PeriodFirst, PeriodSecond, PeriodThird, PeriodOvertime}

// Periods returns the periods in play order.
func Periods() []Period {
	out := make([]Period, len(periodOrder))
	copy(out, periodOrder[:])
	return out
}

// ParsePeriod returns the period named by value.
func ParsePeriod(value string) (Period, bool) {
	p := Period(value)
	return p, p.Valid()
}

// Valid reports whether p is one of the enumerated periods.
func (p Period) Valid() bool {
	return p.index() >= 0
}

// Next advances circularly: 1 -> 2 -> 3 -> OT -> 1. Unknown periods restart at 1.
func (p Period) Next() Period {
	idx := p.index()
	if idx < 0 {
		return PeriodFirst
	}
	return periodOrder[(idx+1)%len(periodOrder)]
}

func (p Period) index() int {
	for i, candidate := range periodOrder {
		if candidate == p {
			return i
		}
	}
	return -1
}

// Team identifies one side of the scoreboard.
type Team string

const (
	TeamHome Team = "home"
	TeamAway Team = "away"
)

// Valid reports whether t names a known team.
func (t Team) Valid() bool {
	return t == TeamHome || t == TeamAway
}

// Domain bounds for every State field.
const (
	MaxClockSeconds = 20 * 60
	MaxScore        = 99

	DefaultPeriodSeconds    = MaxClockSeconds
	DefaultClockStepSeconds = 2 * 60
)

// State is the authoritative game snapshot. It is a plain value: copies never alias.
type State struct {
	Period       Period `json:"period"`
	ClockSeconds int    `json:"clockSeconds"`
	HomeScore    int    `json:"homeScore"`
	AwayScore    int    `json:"awayScore"`
}

// DefaultState is period 1, a full 20 minute clock and a 0-0 score.
func DefaultState() State {
	return State{
		Period:       PeriodFirst,
		ClockSeconds: DefaultPeriodSeconds,
	}
}

// Score returns the score for team.
func (s State) Score(team Team) int {
	if team == TeamAway {
		return s.AwayScore
	}
	return s.HomeScore
}
