//go:build linux

// Package uinput synthesizes keystrokes through a kernel virtual
// keyboard device.
package uinput

import (
	"encoding/binary"
	"errors"
	"os"
	"sync"
	"syscall"
	"time"

	"whisp/log"
)

// ioctl constants from linux/uinput.h
const (
	uiSetEvbit   = 0x40045564 // UI_SET_EVBIT
	uiSetKeybit  = 0x40045565 // UI_SET_KEYBIT
	uiDevCreate  = 0x5501     // UI_DEV_CREATE
	uiDevDestroy = 0x5502     // UI_DEV_DESTROY
)

// input event types from linux/input-event-codes.h
const (
	evSyn = 0x00
	evKey = 0x01
)

const busUSB = 0x03

const keyLeftShift = 42

type inputEvent struct {
	Time  syscall.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

type inputID struct {
	Bustype uint16
	Vendor  uint16
	Product uint16
	Version uint16
}

type uinputUserDev struct {
	Name         [80]byte
	ID           inputID
	FfEffectsMax uint32
	Absmax       [64]int32
	Absmin       [64]int32
	Absfuzz      [64]int32
	Absflat      [64]int32
}

// Keyboard is a virtual input device created through /dev/uinput.
type Keyboard struct {
	mu sync.Mutex
	f  *os.File
}

// New opens /dev/uinput and registers a virtual keyboard carrying every
// standard key so udev classifies it correctly.
func New() (*Keyboard, error) {
	path := "/dev/uinput"
	if _, err := os.Stat(path); err != nil {
		path = "/dev/input/uinput"
		if _, err := os.Stat(path); err != nil {
			return nil, errors.New("uinput device not found, try: sudo modprobe uinput")
		}
	}
	f, err := os.OpenFile(path, os.O_WRONLY|syscall.O_NONBLOCK, os.ModeDevice)
	if err != nil {
		return nil, err
	}
	// Set EV_KEY and EV_SYN capabilities
	if _, _, errno := syscall.Syscall(syscall.SYS_IOCTL, f.Fd(), uiSetEvbit, evKey); errno != 0 {
		f.Close()
		return nil, errno
	}
	if _, _, errno := syscall.Syscall(syscall.SYS_IOCTL, f.Fd(), uiSetEvbit, evSyn); errno != 0 {
		f.Close()
		return nil, errno
	}
	for i := uintptr(0); i < 256; i++ {
		if _, _, errno := syscall.Syscall(syscall.SYS_IOCTL, f.Fd(), uiSetKeybit, i); errno != 0 {
			f.Close()
			return nil, errno
		}
	}

	dev := uinputUserDev{}
	copy(dev.Name[:], "whisp-virtual-keyboard")
	dev.ID.Bustype = busUSB
	dev.ID.Vendor = 0x1234
	dev.ID.Product = 0x5678
	dev.ID.Version = 1
	if err := binary.Write(f, binary.LittleEndian, &dev); err != nil {
		f.Close()
		return nil, err
	}
	if _, _, errno := syscall.Syscall(syscall.SYS_IOCTL, f.Fd(), uiDevCreate, 0); errno != 0 {
		f.Close()
		return nil, errno
	}

	// Give the compositor time to recognize the new input device.
	time.Sleep(200 * time.Millisecond)
	return &Keyboard{f: f}, nil
}

func (k *Keyboard) Close() error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.f == nil {
		return nil
	}
	syscall.Syscall(syscall.SYS_IOCTL, k.f.Fd(), uiDevDestroy, 0)
	err := k.f.Close()
	k.f = nil
	return err
}

func (k *Keyboard) writeEvent(typ, code uint16, value int32) error {
	ev := inputEvent{}
	ev.Type = typ
	ev.Code = code
	ev.Value = value
	return binary.Write(k.f, binary.LittleEndian, &ev)
}

func (k *Keyboard) syn() error {
	return k.writeEvent(evSyn, 0, 0)
}

// Press emits a key-down for the given evdev code.
func (k *Keyboard) Press(code uint16) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if err := k.writeEvent(evKey, code, 1); err != nil {
		return err
	}
	return k.syn()
}

// Release emits a key-up for the given evdev code.
func (k *Keyboard) Release(code uint16) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if err := k.writeEvent(evKey, code, 0); err != nil {
		return err
	}
	return k.syn()
}

func (k *Keyboard) keyTap(code uint16, shift bool) error {
	if shift {
		if err := k.Press(keyLeftShift); err != nil {
			return err
		}
	}
	if err := k.Press(code); err != nil {
		return err
	}
	if err := k.Release(code); err != nil {
		return err
	}
	if shift {
		if err := k.Release(keyLeftShift); err != nil {
			return err
		}
	}
	return nil
}

// Type sends each character of text as a press+release pair. Characters
// outside the ASCII table are skipped with a warning; skipping never
// fails the operation.
func (k *Keyboard) Type(text string) error {
	for _, ch := range text {
		code, shift, ok := charToKey(ch)
		if !ok {
			log.Warnf("no key mapping for character %q (U+%04X), skipping", ch, ch)
			continue
		}
		if err := k.keyTap(code, shift); err != nil {
			return err
		}
	}
	return nil
}
