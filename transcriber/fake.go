package transcriber

import (
	"context"
	"sync/atomic"
	"time"
)

// Fake returns canned results for tests.
type Fake struct {
	Text  string
	Err   error
	Delay time.Duration
	calls atomic.Int64
}

func (f *Fake) Transcribe(ctx context.Context, samples []float32) (string, error) {
	f.calls.Add(1)
	if f.Delay > 0 {
		select {
		case <-time.After(f.Delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if f.Err != nil {
		return "", f.Err
	}
	return f.Text, nil
}

func (f *Fake) Close() error { return nil }

func (f *Fake) Calls() int { return int(f.calls.Load()) }
