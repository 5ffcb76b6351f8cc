package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"whisp/audio"
	"whisp/hotkey"
	"whisp/log"
	"whisp/transcriber"
)

// submitter is the transcription worker as the orchestrator sees it.
type submitter interface {
	Submit(transcriber.Request) bool
	Results() <-chan transcriber.Result
}

// textSink delivers finished transcriptions to the focused application.
type textSink interface {
	Dispatch(text string) error
}

// notifier raises user-visible notifications for pipeline failures.
type notifier func(summary, body string)

// orchestrator owns the dictation state machine: hotkey press starts
// capture into the ring, release extracts the session and hands it to
// the transcription worker, results are dispatched as they arrive.
// Recording and transcription overlap; a new recording may start while
// the previous one is still being transcribed.
type orchestrator struct {
	keys    hotkey.Listener
	ring    *audio.Ring
	capture audio.CaptureDevice
	worker  submitter
	sink    textSink
	alert   notifier

	minRecord time.Duration
	timeout   time.Duration

	// events feeds the TUI; nil in headless mode and in tests.
	events func(msg any)

	nextID    uint64
	staleID   uint64 // results with ID <= staleID are dropped
	pending   []submitted
	recording bool
	session   audio.Session
	started   time.Time
}

type submitted struct {
	id       uint64
	deadline time.Time
}

func newOrchestrator(keys hotkey.Listener, ring *audio.Ring, capture audio.CaptureDevice,
	worker submitter, sink textSink, alert notifier, minRecord, timeout time.Duration) *orchestrator {
	if alert == nil {
		alert = func(string, string) {}
	}
	return &orchestrator{
		keys:      keys,
		ring:      ring,
		capture:   capture,
		worker:    worker,
		sink:      sink,
		alert:     alert,
		minRecord: minRecord,
		timeout:   timeout,
	}
}

func (o *orchestrator) send(msg any) {
	if o.events != nil {
		o.events(msg)
	}
}

// run drives the state machine until ctx is canceled.
func (o *orchestrator) run(ctx context.Context) {
	o.capture.SetCallback(o.ring.Append)
	defer o.capture.ClearCallback()

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			if o.recording {
				o.capture.Stop()
			}
			return

		case ev, ok := <-o.keys.Events():
			if !ok {
				return
			}
			o.handleKey(ev, timer)

		case res := <-o.worker.Results():
			o.handleResult(res, timer)

		case <-timer.C:
			o.handleTimeout(timer)
		}
	}
}

func (o *orchestrator) handleKey(ev hotkey.Event, timer *time.Timer) {
	switch ev.Kind {
	case hotkey.Press:
		if o.recording {
			return
		}
		// A press that sat in the queue while we were busy is stale if
		// the key has already been released; its release event was
		// dropped as stray, so starting now would record forever.
		if !o.keys.Down() {
			log.Info("stale hotkey press ignored")
			return
		}
		o.session = o.ring.BeginSession()
		if err := o.capture.Start(); err != nil {
			log.Errorf("starting capture: %v", err)
			o.alert("Recording failed", err.Error())
			o.send(PipelineErrorMsg{Text: fmt.Sprintf("capture: %v", err)})
			return
		}
		o.recording = true
		o.started = time.Now()
		log.Info("recording started on " + o.capture.DeviceName())
		o.send(RecordingStartMsg{})

	case hotkey.Release:
		if !o.recording {
			return
		}
		o.recording = false
		o.capture.Stop()
		o.finishRecording(timer)
	}
}

func (o *orchestrator) finishRecording(timer *time.Timer) {
	samples := o.ring.Extract(o.session)
	dur := audio.Duration(len(samples))
	o.send(RecordingStopMsg{Duration: dur.Seconds()})

	if dur < o.minRecord {
		log.Infof("discarding %.0fms recording, below minimum", float64(dur.Milliseconds()))
		o.send(DiscardedMsg{Duration: dur.Seconds()})
		return
	}

	o.nextID++
	req := transcriber.Request{ID: o.nextID, Samples: samples}
	if !o.worker.Submit(req) {
		// The worker holds one in-flight and one queued request; a
		// third recording before either finishes is dropped whole.
		log.Warn("transcription queue full, recording dropped")
		o.send(PipelineErrorMsg{Text: "transcriber busy, recording dropped"})
		o.nextID--
		return
	}
	o.pending = append(o.pending, submitted{id: req.ID, deadline: time.Now().Add(o.timeout)})
	o.armTimer(timer)
	log.Infof("submitted %.1fs of audio for transcription", dur.Seconds())
	o.send(TranscribingMsg{})
}

func (o *orchestrator) handleResult(res transcriber.Result, timer *time.Timer) {
	o.dropPending(res.ID)
	o.armTimer(timer)

	if res.ID <= o.staleID {
		log.Infof("discarding stale transcription result %d", res.ID)
		return
	}
	if res.Err != nil {
		log.Errorf("transcription failed: %v", res.Err)
		o.alert("Transcription failed", userMessage(res.Err))
		o.send(PipelineErrorMsg{Text: userMessage(res.Err)})
		return
	}
	if res.Text == "" {
		log.Info("no speech detected")
		o.send(TranscriptionMsg{InferMs: res.InferMs})
		return
	}

	dispatched := true
	if err := o.sink.Dispatch(res.Text); err != nil {
		dispatched = false
		log.Errorf("output failed: %v", err)
		o.alert("Output failed", userMessage(err))
		o.send(PipelineErrorMsg{Text: userMessage(err)})
	}
	o.send(TranscriptionMsg{Text: res.Text, InferMs: res.InferMs, Dispatched: dispatched})
}

// handleTimeout gives up on every overdue request. The worker may still
// be grinding on one of them; bumping staleID makes its eventual result
// fall on the floor.
func (o *orchestrator) handleTimeout(timer *time.Timer) {
	now := time.Now()
	for len(o.pending) > 0 && !o.pending[0].deadline.After(now) {
		id := o.pending[0].id
		o.pending = o.pending[1:]
		if id > o.staleID {
			o.staleID = id
		}
		log.Errorf("transcription %d timed out after %s", id, o.timeout)
	}
	o.alert("Transcription timed out", "the model is taking too long, recording abandoned")
	o.send(PipelineErrorMsg{Text: "transcription timed out"})
	o.armTimer(timer)
}

func (o *orchestrator) dropPending(id uint64) {
	for i := range o.pending {
		if o.pending[i].id == id {
			o.pending = append(o.pending[:i], o.pending[i+1:]...)
			break
		}
	}
}

func (o *orchestrator) armTimer(timer *time.Timer) {
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	if len(o.pending) > 0 {
		timer.Reset(time.Until(o.pending[0].deadline))
	}
}

// userMessage strips wrapping noise for the notification popup.
func userMessage(err error) string {
	if errors.Is(err, transcriber.ErrTranscription) {
		return "speech recognition failed, see log for details"
	}
	return err.Error()
}
