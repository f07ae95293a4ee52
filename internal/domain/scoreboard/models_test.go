package scoreboard

import (
	"reflect"
	"testing"
)

func TestPeriodNextCycles(t *testing.T) {
	cases := []struct {
		from Period
		want Period
	}{
		{PeriodFirst, PeriodSecond},
		{PeriodSecond, PeriodThird},
		{PeriodThird, PeriodOvertime},
		{PeriodOvertime, PeriodFirst},
		{Period("Q5"), PeriodFirst},
	}
	for _, tc := range cases {
		if got := tc.from.Next(); got != tc.want {
			t.Fatalf("expected %q after %q, got %q", tc.want, tc.from, got)
		}
	}
}

func TestParsePeriod(t *testing.T) {
	for _, p := range Periods() {
		got, ok := ParsePeriod(string(p))
		if !ok || got != p {
			t.Fatalf("expected %q to parse, got %q ok=%v", p, got, ok)
		}
	}
	if _, ok := ParsePeriod("Q5"); ok {
		t.Fatalf("expected Q5 to be rejected")
	}
	if _, ok := ParsePeriod(""); ok {
		t.Fatalf("expected empty period to be rejected")
	}
}

func TestPeriodsReturnsCopy(t *testing.T) {
	ps := Periods()
	ps[0] = "X"
	if Periods()[0] != PeriodFirst {
		t.Fatalf("expected Periods to return an independent slice")
	}
}

func TestDefaultState(t *testing.T) {
	want := State{Period: PeriodFirst, ClockSeconds: 1200}
	if got := DefaultState(); got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestStateJSONTags(t *testing.T) {
	stateType := reflect.TypeOf(State{})
	fields := map[string]string{
		"Period":       "period",
		"ClockSeconds": "clockSeconds",
		"HomeScore":    "homeScore",
		"AwayScore":    "awayScore",
	}
	for name, tag := range fields {
		f, ok := stateType.FieldByName(name)
		if !ok {
			t.Fatalf("missing field %s", name)
		}
		if got := f.Tag.Get("json"); got != tag {
			t.Fatalf("expected json tag %q on %s, got %q", tag, name, got)
		}
	}
}

func TestTeamValid(t *testing.T) {
	if !TeamHome.Valid() || !TeamAway.Valid() {
		t.Fatalf("expected home and away to be valid")
	}
	if Team("visitors").Valid() {
		t.Fatalf("expected unknown team to be invalid")
	}
}
