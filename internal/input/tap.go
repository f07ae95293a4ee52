package input

import (
	"sync"
	"time"
)

// DoubleTapWindow is how long a score tap waits for a second tap before it counts.
const DoubleTapWindow = 260 * time.Millisecond

type heldTap struct {
	event Event
	at    time.Time
}

// TapDetector turns two taps on the same score control inside the window into an undo.
// A lone tap is held until the window passes and is then released by Expired, so a
// double tap never scores.
type TapDetector struct {
	window time.Duration
	now    func() time.Time

	mu   sync.Mutex
	held []heldTap
}

// NewTapDetector returns a detector using window, or DoubleTapWindow when window <= 0.
func NewTapDetector(window time.Duration) *TapDetector {
	if window <= 0 {
		window = DoubleTapWindow
	}
	return &TapDetector{window: window, now: time.Now}
}

// Window returns the double-tap threshold.
func (d *TapDetector) Window() time.Duration {
	return d.window
}

// Tap registers e. Events other than score taps pass straight through. A second score
// tap on the same control inside the window yields EventUndo; otherwise the tap is held
// and Tap reports false.
func (d *TapDetector) Tap(e Event) (Event, bool) {
	if e != EventScoreHome && e != EventScoreAway {
		return e, true
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	for i, h := range d.held {
		if h.event == e && now.Sub(h.at) < d.window {
			d.held = append(d.held[:i], d.held[i+1:]...)
			return EventUndo, true
		}
	}
	d.held = append(d.held, heldTap{event: e, at: now})
	return "", false
}

// Expired releases held taps whose window has passed, oldest first.
func (d *TapDetector) Expired() []Event {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	var out []Event
	kept := d.held[:0]
	for _, h := range d.held {
		if now.Sub(h.at) >= d.window {
			out = append(out, h.event)
			continue
		}
		kept = append(kept, h)
	}
	d.held = kept
	return out
}

// Pending reports how many taps are waiting for their window to pass.
func (d *TapDetector) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.held)
}
