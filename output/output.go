// Package output injects transcribed text into the focused application,
// either by direct keystroke synthesis or by a clipboard-paste sequence.
package output

import "errors"

// ErrNoBackend means no usable external input tool was found for the
// current session type.
var ErrNoBackend = errors.New("no usable input backend")

// ErrBackendFailed means the chosen backend and its single fallback both
// failed for this output event.
var ErrBackendFailed = errors.New("output backend failed")

type Mode int

const (
	ModeType Mode = iota
	ModePaste
)

func (m Mode) String() string {
	if m == ModePaste {
		return "paste"
	}
	return "type"
}

// ParseMode maps the config spelling to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "type":
		return ModeType, nil
	case "paste":
		return ModePaste, nil
	}
	return ModeType, errors.New("output mode must be \"type\" or \"paste\"")
}

type Compositor int

const (
	CompositorX11 Compositor = iota
	CompositorWaylandKDE
	CompositorWaylandOther
)

func (c Compositor) String() string {
	switch c {
	case CompositorWaylandKDE:
		return "wayland-kde"
	case CompositorWaylandOther:
		return "wayland"
	default:
		return "x11"
	}
}

type WindowKind int

const (
	KindGUI WindowKind = iota
	KindTerminal
	KindUnknown
)

// Target describes the currently focused application. Resolved fresh for
// every output event; focus can change between recording and output.
type Target struct {
	AppClass   string
	Kind       WindowKind
	Compositor Compositor
}

// Clipboard is the external clipboard collaborator.
type Clipboard interface {
	Read() (string, error)
	Write(text string) error
}

// Keyboard is the virtual-input collaborator used by Type mode.
type Keyboard interface {
	Type(text string) error
}
