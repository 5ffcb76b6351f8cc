//go:build linux

package hotkey

import (
	"encoding/binary"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"whisp/log"
)

const (
	evKey      = 1
	keyPress   = 1
	keyRelease = 0
)

// input_event is 24 bytes on 64-bit Linux:
// timeval (16 bytes) + type (2) + code (2) + value (4)
const inputEventSize = 24

type linuxListener struct {
	code   uint16
	deb    *Debouncer
	events chan Event
	raw    chan RawEvent
	files  []*os.File
	stop   chan struct{}
	once   sync.Once
	held   atomic.Bool
}

// NewListener opens every /dev/input device that advertises the given key
// code and merges their event streams through a Debouncer.
// Requires the user to be in the 'input' group.
func NewListener(code uint16, debounce time.Duration) Listener {
	return &linuxListener{
		code:   code,
		deb:    NewDebouncer(code, debounce),
		events: make(chan Event, 4),
		raw:    make(chan RawEvent, 16),
	}
}

func (l *linuxListener) Start() error {
	paths, err := devicesWithKey(l.code)
	if err != nil {
		return fmt.Errorf("scanning input devices: %w", err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no input devices report key %q (is user in the 'input' group?)", KeyName(l.code))
	}

	l.stop = make(chan struct{})

	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			log.Warnf("cannot open %s: %v", path, err)
			continue
		}
		l.files = append(l.files, f)
		go l.readDevice(f)
	}

	if len(l.files) == 0 {
		return fmt.Errorf("could not open any input device (run: sudo usermod -aG input $USER, then re-login)")
	}

	go l.debounceLoop()
	return nil
}

// debounceLoop is the only goroutine that touches the Debouncer.
func (l *linuxListener) debounceLoop() {
	for {
		select {
		case <-l.stop:
			return
		case raw := <-l.raw:
			ev, ok := l.deb.Feed(raw)
			if !ok {
				continue
			}
			l.held.Store(l.deb.Down())
			select {
			case l.events <- ev:
			default:
				log.Warn("hotkey event dropped: consumer not keeping up")
			}
		}
	}
}

func (l *linuxListener) readDevice(f *os.File) {
	buf := make([]byte, inputEventSize*16)
	for {
		select {
		case <-l.stop:
			return
		default:
		}

		n, err := f.Read(buf)
		if err != nil {
			return
		}

		for i := 0; i+inputEventSize <= n; i += inputEventSize {
			evType := binary.LittleEndian.Uint16(buf[i+16:])
			evCode := binary.LittleEndian.Uint16(buf[i+18:])
			evValue := int32(binary.LittleEndian.Uint32(buf[i+20:]))

			if evType != evKey || evCode != l.code {
				continue
			}
			// value 2 is autorepeat; only edges matter.
			if evValue != keyPress && evValue != keyRelease {
				continue
			}
			select {
			case l.raw <- RawEvent{
				Device:  f.Name(),
				Code:    evCode,
				Pressed: evValue == keyPress,
				Time:    time.Now(),
			}:
			case <-l.stop:
				return
			}
		}
	}
}

func (l *linuxListener) Stop() {
	l.once.Do(func() {
		if l.stop != nil {
			close(l.stop)
		}
		for _, f := range l.files {
			f.Close()
		}
	})
}

func (l *linuxListener) Events() <-chan Event { return l.events }

func (l *linuxListener) Down() bool { return l.held.Load() }

// devicesWithKey returns the event devices whose key capability bitmask
// includes the given code.
func devicesWithKey(code uint16) ([]string, error) {
	entries, err := os.ReadDir("/dev/input")
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), "event") {
			continue
		}
		if supportsKey(e.Name(), code) {
			paths = append(paths, filepath.Join("/dev/input", e.Name()))
		}
	}
	return paths, nil
}

// supportsKey parses /sys/class/input/eventN/device/capabilities/key, a
// space-separated list of hex words (most significant first), and tests
// the bit for the given key code.
func supportsKey(eventName string, code uint16) bool {
	capsPath := filepath.Join("/sys/class/input", eventName, "device", "capabilities", "key")
	data, err := os.ReadFile(capsPath)
	if err != nil {
		return false
	}
	mask := new(big.Int)
	for _, word := range strings.Fields(strings.TrimSpace(string(data))) {
		w, ok := new(big.Int).SetString(word, 16)
		if !ok {
			return false
		}
		mask.Lsh(mask, 64)
		mask.Or(mask, w)
	}
	return mask.Bit(int(code)) == 1
}
