package audio

import "sync/atomic"

// FakeCapture feeds samples from tests in place of a real microphone.
type FakeCapture struct {
	callback atomic.Pointer[DataCallback]
	started  atomic.Bool
}

func NewFakeCapture() *FakeCapture { return &FakeCapture{} }

func (f *FakeCapture) Start() error {
	f.started.Store(true)
	return nil
}

func (f *FakeCapture) Stop()  { f.started.Store(false) }
func (f *FakeCapture) Close() {}

// Started reports whether the device is between Start and Stop.
func (f *FakeCapture) Started() bool { return f.started.Load() }

func (f *FakeCapture) SetCallback(cb DataCallback) { f.callback.Store(&cb) }
func (f *FakeCapture) ClearCallback()              { f.callback.Store(nil) }
func (f *FakeCapture) DeviceName() string          { return "fake" }

// Feed pushes samples through the registered callback, as the audio
// thread would.
func (f *FakeCapture) Feed(samples []float32) {
	if cb := f.callback.Load(); cb != nil {
		(*cb)(samples)
	}
}
