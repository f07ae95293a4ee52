package scoreboard

import "fmt"

// Clamp bounds n to [lo, hi].
func Clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// FormatScore renders a score as two zero-padded digits.
func FormatScore(n int) string {
	return fmt.Sprintf("%02d", Clamp(n, 0, MaxScore))
}

// FormatClock renders seconds as MM:SS after clamping to the clock domain.
func FormatClock(seconds int) string {
	s := Clamp(seconds, 0, MaxClockSeconds)
	return fmt.Sprintf("%02d:%02d", s/60, s%60)
}
