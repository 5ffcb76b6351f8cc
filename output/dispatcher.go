package output

import (
	"fmt"
	"os"
	"time"

	"whisp/log"
)

// Config carries the resolved output settings. Combos are parsed once at
// config load, not per dispatch.
type Config struct {
	Mode          Mode
	Backend       Backend
	DefaultCombo  Combo
	TerminalCombo Combo
	AppOverrides  map[string]Combo
}

// Dispatcher delivers transcribed text into the focused application.
type Dispatcher struct {
	cfg    Config
	runner Runner
	clip   Clipboard
	kb     Keyboard
	getenv func(string) string

	// restoreDelay is the wait between sending the paste combo and
	// putting the user's clipboard back. The target application reads
	// the clipboard asynchronously after receiving the keystroke.
	restoreDelay time.Duration
}

// NewDispatcher wires the dispatcher with real collaborators. kb may be
// nil when the uinput device could not be opened; Type mode then falls
// back to the external backends.
func NewDispatcher(cfg Config, r Runner, clip Clipboard, kb Keyboard) *Dispatcher {
	return &Dispatcher{
		cfg:          cfg,
		runner:       r,
		clip:         clip,
		kb:           kb,
		getenv:       os.Getenv,
		restoreDelay: 500 * time.Millisecond,
	}
}

// Dispatch injects text into whatever window is focused right now.
func (d *Dispatcher) Dispatch(text string) error {
	if text == "" {
		return nil
	}
	if d.cfg.Mode == ModeType {
		return d.dispatchType(text)
	}
	return d.dispatchPaste(text)
}

func (d *Dispatcher) dispatchType(text string) error {
	if d.kb != nil {
		err := d.kb.Type(text)
		if err == nil {
			return nil
		}
		log.Warnf("virtual keyboard typing failed, falling back to external tool: %v", err)
	}
	comp := DetectCompositor(d.getenv)
	backends, err := resolveBackends(d.runner, d.cfg.Backend, comp)
	if err != nil {
		return err
	}
	for _, b := range backends {
		if err = typeText(d.runner, b, text); err == nil {
			return nil
		}
		log.Warnf("typing via %s failed: %v", b, err)
	}
	return fmt.Errorf("%w: %v", ErrBackendFailed, err)
}

// dispatchPaste stashes the user's clipboard, loads the transcription,
// sends the paste combo and restores the original contents. The restore
// happens even when the combo fails; the user's clipboard is never left
// holding our text.
func (d *Dispatcher) dispatchPaste(text string) error {
	target := FocusedTarget(d.runner, DetectCompositor(d.getenv))
	combo := d.comboFor(target)

	backends, err := resolveBackends(d.runner, d.cfg.Backend, target.Compositor)
	if err != nil {
		return err
	}

	saved, readErr := d.clip.Read()
	if readErr != nil {
		log.Warnf("could not read clipboard, original contents will not be restored: %v", readErr)
	}
	if err := d.clip.Write(text); err != nil {
		return fmt.Errorf("loading clipboard: %w", err)
	}
	defer func() {
		if readErr == nil {
			time.Sleep(d.restoreDelay)
			if err := d.clip.Write(saved); err != nil {
				log.Warnf("restoring clipboard: %v", err)
			}
		}
	}()

	for _, b := range backends {
		if err = sendCombo(d.runner, b, combo); err == nil {
			log.Infof("pasted %d chars into %s via %s (%s)", len(text), target.AppClass, b, combo)
			return nil
		}
		log.Warnf("paste via %s failed: %v", b, err)
	}
	return fmt.Errorf("%w: %v", ErrBackendFailed, err)
}

// comboFor resolves the paste combo for a target: explicit per-app
// override first, then the terminal combo for terminal windows, then the
// default.
func (d *Dispatcher) comboFor(t Target) Combo {
	if t.AppClass != "" {
		if c, ok := d.cfg.AppOverrides[t.AppClass]; ok {
			return c
		}
	}
	if t.Kind == KindTerminal {
		return d.cfg.TerminalCombo
	}
	return d.cfg.DefaultCombo
}
