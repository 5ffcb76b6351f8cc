// Package hotkey turns raw per-device key events into a single logical
// press/release stream for one configured key.
package hotkey

import "time"

// RawEvent is one press or release as reported by a physical device.
// Ordering is only guaranteed per device.
type RawEvent struct {
	Device  string
	Code    uint16
	Pressed bool
	Time    time.Time
}

type EventKind int

const (
	Press EventKind = iota
	Release
)

// Event is a debounced logical transition of the configured key.
type Event struct {
	Kind EventKind
	Time time.Time
}

// Listener delivers logical hotkey events for one configured key.
type Listener interface {
	Start() error
	Stop()
	Events() <-chan Event
	// Down reports whether the key is physically held right now.
	Down() bool
}
