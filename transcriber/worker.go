package transcriber

import (
	"context"
	"time"

	"whisp/audio"
	"whisp/log"
)

// Request carries one extracted recording to the worker. Samples are an
// owned copy; nothing else references them after submission.
type Request struct {
	ID      uint64
	Samples []float32
}

// Result is the worker's answer for one accepted Request. Exactly one
// Result is emitted per accepted Request, in submission order.
type Result struct {
	ID      uint64
	Text    string
	InferMs float64
	Err     error
}

// Worker serializes inference: one request in flight, one queued. Submit
// rejects further requests while both slots are occupied, so a stuck or
// slow engine can never pile up stale recordings.
type Worker struct {
	t        Transcriber
	requests chan Request
	results  chan Result
}

func NewWorker(t Transcriber) *Worker {
	return &Worker{
		t: t,
		// One buffered slot is the pending queue; the in-flight request
		// has already been taken out of the channel.
		requests: make(chan Request, 1),
		results:  make(chan Result, 2),
	}
}

// Start launches the worker goroutine. It exits when ctx is cancelled.
func (w *Worker) Start(ctx context.Context) {
	go w.run(ctx)
}

// Submit hands a request to the worker. It never blocks; false means both
// the in-flight and pending slots are occupied and the request was
// dropped.
func (w *Worker) Submit(req Request) bool {
	select {
	case w.requests <- req:
		return true
	default:
		return false
	}
}

// Results delivers one Result per accepted Request.
func (w *Worker) Results() <-chan Result {
	return w.results
}

func (w *Worker) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case req := <-w.requests:
			start := time.Now()
			text, err := w.t.Transcribe(ctx, req.Samples)
			res := Result{
				ID:      req.ID,
				Text:    text,
				InferMs: float64(time.Since(start).Microseconds()) / 1000,
				Err:     wrapErr(err),
			}
			if err == nil {
				log.Transcription(text, audio.Duration(len(req.Samples)).Seconds(), res.InferMs)
			}
			select {
			case w.results <- res:
			case <-ctx.Done():
				return
			}
		}
	}
}
