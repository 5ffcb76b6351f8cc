// Package transcriber runs speech-to-text over recorded sample buffers.
package transcriber

import (
	"context"
	"errors"
	"fmt"
)

// ErrTranscription is the single error kind surfaced to the pipeline;
// engine-specific failures (model not loaded, inference error, malformed
// audio) all wrap it.
var ErrTranscription = errors.New("transcription failed")

// Transcriber is the opaque inference engine. Transcribe is synchronous
// and must honor ctx cancellation between calls (an in-flight inference
// cannot be interrupted).
type Transcriber interface {
	Transcribe(ctx context.Context, samples []float32) (string, error)
	Close() error
}

func wrapErr(err error) error {
	if err == nil || errors.Is(err, ErrTranscription) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrTranscription, err)
}
