package transcriber

import (
	"context"
	"errors"
	"testing"
	"time"
)

func waitResult(t *testing.T, w *Worker) Result {
	t.Helper()
	select {
	case res := <-w.Results():
		return res
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for result")
		return Result{}
	}
}

func TestWorkerOneResultPerRequest(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := NewWorker(&Fake{Text: "hello world"})
	w.Start(ctx)

	if !w.Submit(Request{ID: 1, Samples: make([]float32, 1600)}) {
		t.Fatal("submit rejected with empty queue")
	}
	res := waitResult(t, w)
	if res.ID != 1 || res.Err != nil || res.Text != "hello world" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestWorkerErrorMappedToTranscriptionError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := NewWorker(&Fake{Err: errors.New("model exploded")})
	w.Start(ctx)

	w.Submit(Request{ID: 7, Samples: make([]float32, 16)})
	res := waitResult(t, w)
	if !errors.Is(res.Err, ErrTranscription) {
		t.Fatalf("error %v not wrapped as ErrTranscription", res.Err)
	}
	if res.ID != 7 {
		t.Fatalf("result ID = %d, want 7", res.ID)
	}
}

func TestWorkerQueuesOnePendingDropsRest(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Slow engine keeps the first request in flight while more arrive.
	w := NewWorker(&Fake{Text: "ok", Delay: 100 * time.Millisecond})
	w.Start(ctx)

	if !w.Submit(Request{ID: 1, Samples: make([]float32, 16)}) {
		t.Fatal("first submit rejected")
	}
	// Give the worker time to move request 1 into flight.
	time.Sleep(20 * time.Millisecond)
	if !w.Submit(Request{ID: 2, Samples: make([]float32, 16)}) {
		t.Fatal("second submit should occupy the pending slot")
	}
	if w.Submit(Request{ID: 3, Samples: make([]float32, 16)}) {
		t.Fatal("third submit should be dropped")
	}

	first := waitResult(t, w)
	second := waitResult(t, w)
	if first.ID != 1 || second.ID != 2 {
		t.Fatalf("results out of order: %d then %d", first.ID, second.ID)
	}
	select {
	case res := <-w.Results():
		t.Fatalf("unexpected third result: %+v", res)
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWorkerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	fake := &Fake{Text: "ok"}
	w := NewWorker(fake)
	w.Start(ctx)
	cancel()
	time.Sleep(20 * time.Millisecond)

	w.Submit(Request{ID: 1, Samples: make([]float32, 16)})
	select {
	case res := <-w.Results():
		t.Fatalf("worker still running after cancel: %+v", res)
	case <-time.After(100 * time.Millisecond):
	}
}
