package main

// Messages exchanged between the dictation pipeline and the TUI.
type RecordingStartMsg struct{}
type RecordingStopMsg struct{ Duration float64 }
type TranscribingMsg struct{}
type TranscriptionMsg struct {
	Text         string
	AudioSeconds float64
	InferMs      float64
	Dispatched   bool
}
type DiscardedMsg struct{ Duration float64 }
type PipelineErrorMsg struct{ Text string }
type StatusLineMsg struct{ Text string }
