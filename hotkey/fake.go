package hotkey

import (
	"sync/atomic"
	"time"
)

// FakeListener drives the pipeline from tests.
type FakeListener struct {
	events chan Event
	held   atomic.Bool
}

func NewFake() *FakeListener {
	return &FakeListener{events: make(chan Event, 4)}
}

func (f *FakeListener) Start() error         { return nil }
func (f *FakeListener) Stop()                {}
func (f *FakeListener) Events() <-chan Event { return f.events }
func (f *FakeListener) Down() bool           { return f.held.Load() }

func (f *FakeListener) SimPress() {
	f.held.Store(true)
	f.events <- Event{Kind: Press, Time: time.Now()}
}

func (f *FakeListener) SimRelease() {
	f.held.Store(false)
	f.events <- Event{Kind: Release, Time: time.Now()}
}

// SetDown overrides the physical-hold flag without emitting an event, for
// exercising the stale-press re-check.
func (f *FakeListener) SetDown(down bool) { f.held.Store(down) }
