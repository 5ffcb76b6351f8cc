// Package audio provides microphone capture and the fixed-capacity ring
// buffer shared between the capture callback and the pipeline.
package audio

// The whole pipeline runs on a fixed 16 kHz mono contract; capture
// backends are configured to deliver exactly this format.
const (
	SampleRate = 16000
	Channels   = 1
)

// DataCallback receives one chunk of mono float32 samples from the
// capture backend. It runs on the backend's audio thread, must not
// block, and must copy anything it keeps: the slice is reused by the
// next callback.
type DataCallback func(samples []float32)

type CaptureConfig struct {
	SampleRate uint32
	Channels   uint32
}

type DeviceInfo struct {
	ID   string // opaque platform-specific identifier
	Name string
}

type Context interface {
	Devices() ([]DeviceInfo, error)
	NewCapture(device *DeviceInfo, config CaptureConfig) (CaptureDevice, error)
	Close()
}

type CaptureDevice interface {
	Start() error
	Stop()
	Close()
	SetCallback(cb DataCallback)
	ClearCallback()
	DeviceName() string
}
