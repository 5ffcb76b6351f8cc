//go:build !linux

package uinput

import "errors"

// ErrUnsupported is returned on platforms without /dev/uinput; output
// falls back to the external-tool backends.
var ErrUnsupported = errors.New("uinput is only available on linux")

type Keyboard struct{}

func New() (*Keyboard, error) { return nil, ErrUnsupported }

func (k *Keyboard) Close() error              { return nil }
func (k *Keyboard) Press(code uint16) error   { return ErrUnsupported }
func (k *Keyboard) Release(code uint16) error { return ErrUnsupported }
func (k *Keyboard) Type(text string) error    { return ErrUnsupported }
