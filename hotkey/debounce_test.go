package hotkey

import (
	"testing"
	"time"
)

var t0 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func press(dev string, at time.Duration) RawEvent {
	return RawEvent{Device: dev, Code: 110, Pressed: true, Time: t0.Add(at)}
}

func release(dev string, at time.Duration) RawEvent {
	return RawEvent{Device: dev, Code: 110, Pressed: false, Time: t0.Add(at)}
}

func TestDebouncerSingleCycle(t *testing.T) {
	d := NewDebouncer(110, 100*time.Millisecond)

	ev, ok := d.Feed(press("kb0", 0))
	if !ok || ev.Kind != Press {
		t.Fatalf("expected Press, got %+v ok=%v", ev, ok)
	}
	if !d.Down() {
		t.Error("expected Down after press")
	}

	ev, ok = d.Feed(release("kb0", 500*time.Millisecond))
	if !ok || ev.Kind != Release {
		t.Fatalf("expected Release, got %+v ok=%v", ev, ok)
	}
	if d.Down() {
		t.Error("expected !Down after release")
	}
}

func TestDebouncerBounceWithinWindow(t *testing.T) {
	d := NewDebouncer(110, 100*time.Millisecond)

	emitted := 0
	events := []RawEvent{
		press("kb0", 0),
		release("kb0", 10*time.Millisecond),
		press("kb0", 20*time.Millisecond), // bounce, inside window
		release("kb0", 30*time.Millisecond),
		press("kb0", 40*time.Millisecond), // bounce
	}
	var kinds []EventKind
	for _, raw := range events {
		if ev, ok := d.Feed(raw); ok {
			emitted++
			kinds = append(kinds, ev.Kind)
		}
	}
	// At most one Press and one Release pair inside the window.
	if emitted != 2 || kinds[0] != Press || kinds[1] != Release {
		t.Fatalf("got %d events %v, want exactly Press,Release", emitted, kinds)
	}
}

func TestDebouncerSecondDeviceSuppressed(t *testing.T) {
	d := NewDebouncer(110, 100*time.Millisecond)

	if _, ok := d.Feed(press("kb0", 0)); !ok {
		t.Fatal("first press should emit")
	}
	if _, ok := d.Feed(press("kb1", 200*time.Millisecond)); ok {
		t.Fatal("press from second device while held should be suppressed")
	}
	// First release wins; exactly one Release overall.
	ev, ok := d.Feed(release("kb1", 300*time.Millisecond))
	if !ok || ev.Kind != Release {
		t.Fatalf("expected Release, got %+v ok=%v", ev, ok)
	}
	if _, ok := d.Feed(release("kb0", 400*time.Millisecond)); ok {
		t.Fatal("second release should be dropped")
	}
}

func TestDebouncerStrayRelease(t *testing.T) {
	d := NewDebouncer(110, 100*time.Millisecond)
	if _, ok := d.Feed(release("kb0", 0)); ok {
		t.Fatal("release without press should be dropped")
	}
}

func TestDebouncerIgnoresOtherKeys(t *testing.T) {
	d := NewDebouncer(110, 100*time.Millisecond)
	if _, ok := d.Feed(RawEvent{Device: "kb0", Code: 57, Pressed: true, Time: t0}); ok {
		t.Fatal("event for another key code should be ignored")
	}
}

func TestDebouncerPressAfterWindow(t *testing.T) {
	d := NewDebouncer(110, 100*time.Millisecond)
	d.Feed(press("kb0", 0))
	d.Feed(release("kb0", 50*time.Millisecond))
	// Next press arrives past the window measured from the release.
	if _, ok := d.Feed(press("kb0", 200*time.Millisecond)); !ok {
		t.Fatal("press after debounce window should emit")
	}
}
