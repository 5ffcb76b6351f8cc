package hotkey

import "time"

// DefaultDebounce suppresses electrical and driver bounce on the hotkey.
const DefaultDebounce = 100 * time.Millisecond

// Debouncer collapses raw per-device events for one key code into a clean
// alternating Press/Release stream. Two keyboards reporting the same
// physical key produce a single logical transition, and repeated presses
// inside the debounce window are dropped.
//
// Feed must be called from a single goroutine; Down is safe to call from
// anywhere via the owning listener.
type Debouncer struct {
	code   uint16
	window time.Duration
	down   bool
	last   time.Time // last accepted transition
}

func NewDebouncer(code uint16, window time.Duration) *Debouncer {
	if window <= 0 {
		window = DefaultDebounce
	}
	return &Debouncer{code: code, window: window}
}

// Feed consumes one raw event and reports the logical event it produces,
// if any. Events for other key codes are ignored.
func (d *Debouncer) Feed(ev RawEvent) (Event, bool) {
	if ev.Code != d.code {
		return Event{}, false
	}

	if ev.Pressed {
		if d.down {
			// Another device is already holding the key.
			return Event{}, false
		}
		if !d.last.IsZero() && ev.Time.Sub(d.last) < d.window {
			return Event{}, false
		}
		d.down = true
		d.last = ev.Time
		return Event{Kind: Press, Time: ev.Time}, true
	}

	// Stray release with no matching press.
	if !d.down {
		return Event{}, false
	}
	d.down = false
	d.last = ev.Time
	return Event{Kind: Release, Time: ev.Time}, true
}

// Down reports the logical key state after the events fed so far.
func (d *Debouncer) Down() bool {
	return d.down
}
