package audio

import (
	"sync"
	"time"
)

// DefaultRingCapacity holds 10 minutes of audio at the pipeline rate.
const DefaultRingCapacity = 10 * 60 * SampleRate

// Ring is a fixed-capacity circular sample store written by the capture
// callback and drained by the pipeline. Once full it overwrites its oldest
// samples, so a session longer than the capacity keeps only its tail.
//
// Append and Extract hold the lock only for the copy itself; normalization
// runs on the extracted private copy so the producer is never stalled by
// it.
type Ring struct {
	mu      sync.Mutex
	data    []float32
	written uint64 // total samples ever appended, never wraps in practice
}

// Session marks the write position at which a recording started.
type Session struct {
	start uint64
}

func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		capacity = DefaultRingCapacity
	}
	return &Ring{data: make([]float32, capacity)}
}

// Capacity returns the fixed sample capacity.
func (r *Ring) Capacity() int { return len(r.data) }

// Append copies samples in at the write cursor, wrapping and overwriting
// the oldest data. Called from the capture callback: O(len(samples)), no
// allocation.
func (r *Ring) Append(samples []float32) {
	if len(samples) == 0 {
		return
	}
	r.mu.Lock()
	chunk := samples
	skipped := 0
	if len(chunk) > len(r.data) {
		// Only the last Capacity() samples of an oversized chunk can
		// survive; skip the rest and land the write cursor where they
		// belong.
		skipped = len(chunk) - len(r.data)
		chunk = chunk[skipped:]
	}
	pos := int((r.written + uint64(skipped)) % uint64(len(r.data)))
	n := copy(r.data[pos:], chunk)
	if n < len(chunk) {
		copy(r.data, chunk[n:])
	}
	r.written += uint64(len(samples))
	r.mu.Unlock()
}

// BeginSession records the current write cursor as the session start.
func (r *Ring) BeginSession() Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Session{start: r.written}
}

// Extract returns an owned, peak-normalized copy of the samples written
// since the session began, clipped to the most recent Capacity() samples
// when the session outran the ring.
func (r *Ring) Extract(s Session) []float32 {
	r.mu.Lock()
	span := r.written - s.start
	if span > uint64(len(r.data)) {
		span = uint64(len(r.data))
	}
	out := make([]float32, span)
	if span > 0 {
		// Oldest surviving sample of the session.
		first := r.written - span
		pos := int(first % uint64(len(r.data)))
		n := copy(out, r.data[pos:])
		if n < len(out) {
			copy(out[n:], r.data)
		}
	}
	r.mu.Unlock()

	Normalize(out)
	return out
}

// Duration converts a sample count to wall time at the pipeline rate.
func Duration(samples int) time.Duration {
	return time.Duration(samples) * time.Second / SampleRate
}

// silenceFloor is the peak below which a buffer is left untouched rather
// than amplified into noise.
const silenceFloor = 1e-7

// Normalize scales samples in place so the maximum absolute amplitude
// reaches full scale. Silence is returned unchanged.
func Normalize(samples []float32) {
	var peak float32
	for _, s := range samples {
		if s < 0 {
			s = -s
		}
		if s > peak {
			peak = s
		}
	}
	if peak <= silenceFloor {
		return
	}
	inv := 1 / peak
	for i := range samples {
		samples[i] *= inv
	}
}
