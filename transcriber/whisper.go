package transcriber

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	whisperlib "github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"
)

// Whisper runs inference through the whisper.cpp CGO bindings. The model
// is loaded once; each Transcribe call uses a fresh context since
// contexts are not thread-safe but the model is shareable.
//
// The whisper.cpp static library (libwhisper.a) and headers must be
// available at link time via LIBRARY_PATH / C_INCLUDE_PATH.
type Whisper struct {
	model    whisperlib.Model
	language string
}

func NewWhisper(modelPath, language string) (*Whisper, error) {
	if modelPath == "" {
		return nil, errors.New("model path must not be empty")
	}
	model, err := whisperlib.New(modelPath)
	if err != nil {
		return nil, fmt.Errorf("loading whisper model %q: %w", modelPath, err)
	}
	if language == "" {
		language = "en"
	}
	return &Whisper{model: model, language: language}, nil
}

func (w *Whisper) Transcribe(ctx context.Context, samples []float32) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", wrapErr(err)
	}
	if len(samples) == 0 {
		return "", wrapErr(errors.New("empty audio"))
	}

	wctx, err := w.model.NewContext()
	if err != nil {
		return "", wrapErr(fmt.Errorf("create context: %v", err))
	}
	if err := wctx.SetLanguage(w.language); err != nil {
		return "", wrapErr(fmt.Errorf("set language %q: %v", w.language, err))
	}

	if err := wctx.Process(samples, nil, nil, nil); err != nil {
		return "", wrapErr(fmt.Errorf("process audio: %v", err))
	}

	var parts []string
	for {
		segment, err := wctx.NextSegment()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", wrapErr(fmt.Errorf("read segment: %v", err))
		}
		if text := strings.TrimSpace(segment.Text); text != "" {
			parts = append(parts, text)
		}
	}

	return strings.Join(parts, " "), nil
}

func (w *Whisper) Close() error {
	if w.model != nil {
		return w.model.Close()
	}
	return nil
}
