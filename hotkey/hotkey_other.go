//go:build !linux

package hotkey

import (
	"fmt"
	"sync/atomic"
	"time"

	xhotkey "golang.design/x/hotkey"
)

// Non-Linux platforms have no raw device access; golang.design/x/hotkey
// delivers already-deduplicated press/release pairs, so the Debouncer's
// multi-device rules do not apply here.
type xListener struct {
	code   uint16
	hk     *xhotkey.Hotkey
	events chan Event
	stop   chan struct{}
	held   atomic.Bool
}

func NewListener(code uint16, _ time.Duration) Listener {
	return &xListener{
		code:   code,
		events: make(chan Event, 4),
		stop:   make(chan struct{}),
	}
}

func (l *xListener) Start() error {
	// The key was validated at config time against the evdev table; only a
	// subset is registrable through the platform hotkey API.
	key, ok := xKeys[KeyName(l.code)]
	if !ok {
		return fmt.Errorf("hotkey %q is not supported on this platform", KeyName(l.code))
	}
	l.hk = xhotkey.New(nil, key)
	if err := l.hk.Register(); err != nil {
		return err
	}
	go func() {
		for {
			select {
			case <-l.stop:
				return
			case <-l.hk.Keydown():
				l.held.Store(true)
				l.events <- Event{Kind: Press, Time: time.Now()}
			case <-l.hk.Keyup():
				l.held.Store(false)
				l.events <- Event{Kind: Release, Time: time.Now()}
			}
		}
	}()
	return nil
}

func (l *xListener) Stop() {
	close(l.stop)
	if l.hk != nil {
		l.hk.Unregister()
	}
}

func (l *xListener) Events() <-chan Event { return l.events }

func (l *xListener) Down() bool { return l.held.Load() }

var xKeys = map[string]xhotkey.Key{
	"space": xhotkey.KeySpace, "enter": xhotkey.KeyReturn,
	"esc": xhotkey.KeyEscape, "tab": xhotkey.KeyTab,
	"delete": xhotkey.KeyDelete, "up": xhotkey.KeyUp,
	"down": xhotkey.KeyDown, "left": xhotkey.KeyLeft,
	"right": xhotkey.KeyRight,
	"f1":    xhotkey.KeyF1, "f2": xhotkey.KeyF2, "f3": xhotkey.KeyF3,
	"f4": xhotkey.KeyF4, "f5": xhotkey.KeyF5, "f6": xhotkey.KeyF6,
	"f7": xhotkey.KeyF7, "f8": xhotkey.KeyF8, "f9": xhotkey.KeyF9,
	"f10": xhotkey.KeyF10, "f11": xhotkey.KeyF11, "f12": xhotkey.KeyF12,
}
