package output

import (
	"errors"
	"fmt"
	"strings"

	"whisp/hotkey"
)

// Backend is one of the external keystroke-injection tools.
type Backend int

const (
	BackendAuto Backend = iota
	BackendXdotool
	BackendWtype
	BackendYdotool
)

func (b Backend) String() string {
	switch b {
	case BackendXdotool:
		return "xdotool"
	case BackendWtype:
		return "wtype"
	case BackendYdotool:
		return "ydotool"
	default:
		return "auto"
	}
}

// ParseBackend maps the config spelling to a Backend.
func ParseBackend(s string) (Backend, error) {
	switch s {
	case "", "auto":
		return BackendAuto, nil
	case "xdotool":
		return BackendXdotool, nil
	case "wtype":
		return BackendWtype, nil
	case "ydotool":
		return BackendYdotool, nil
	}
	return BackendAuto, fmt.Errorf("unknown output backend %q (supported: auto, xdotool, wtype, ydotool)", s)
}

// candidates returns the preferred backend order for a session type.
// X11 has exactly one workable tool. On Wayland the order depends on the
// desktop: KDE's compositor rejects wtype's virtual keyboard protocol, so
// ydotool goes first there.
func candidates(c Compositor) []Backend {
	switch c {
	case CompositorX11:
		return []Backend{BackendXdotool}
	case CompositorWaylandKDE:
		return []Backend{BackendYdotool, BackendWtype}
	default:
		return []Backend{BackendWtype, BackendYdotool}
	}
}

// available filters order down to the backends whose binary is installed.
func available(r Runner, order []Backend) []Backend {
	var out []Backend
	for _, b := range order {
		if r.Has(b.String()) {
			out = append(out, b)
		}
	}
	return out
}

// resolveBackends picks the backends to try for one output event. An
// explicit backend choice is honored as-is with no fallback; auto yields
// the compositor-ordered installed candidates, capped at two attempts.
func resolveBackends(r Runner, pref Backend, comp Compositor) ([]Backend, error) {
	if pref != BackendAuto {
		return []Backend{pref}, nil
	}
	got := available(r, candidates(comp))
	if len(got) == 0 {
		return nil, fmt.Errorf("%w for %s session", ErrNoBackend, comp)
	}
	if len(got) > 2 {
		got = got[:2]
	}
	return got, nil
}

// sendCombo presses the combo through one backend, using that tool's own
// argument conventions.
func sendCombo(r Runner, b Backend, c Combo) error {
	switch b {
	case BackendXdotool:
		return r.Run("xdotool", "key", "--delay", "0", "--clearmodifiers", c.String())
	case BackendWtype:
		return r.Run("wtype", wtypeArgs(c)...)
	case BackendYdotool:
		return r.Run("ydotool", ydotoolArgs(c)...)
	}
	return errors.New("cannot send key combo with auto backend")
}

// wtypeArgs builds a press-modifiers, tap-key, release-in-reverse
// invocation: -d 0 -M ctrl -M shift -k v -m shift -m ctrl.
func wtypeArgs(c Combo) []string {
	args := []string{"-d", "0"}
	for _, m := range c.Modifiers {
		args = append(args, "-M", wtypeModifier(m))
	}
	args = append(args, "-k", wtypeKeysym(c.Key))
	for i := len(c.Modifiers) - 1; i >= 0; i-- {
		args = append(args, "-m", wtypeModifier(c.Modifiers[i]))
	}
	return args
}

func wtypeModifier(m Modifier) string {
	if m == ModSuper {
		return "logo"
	}
	return m.String()
}

// wtypeKeysym translates an evdev key name into the XKB keysym wtype
// expects. Letters and digits pass through unchanged.
func wtypeKeysym(key string) string {
	switch key {
	case "esc":
		return "Escape"
	case "enter":
		return "Return"
	case "backspace":
		return "BackSpace"
	case "tab":
		return "Tab"
	case "space":
		return "space"
	case "delete":
		return "Delete"
	case "insert":
		return "Insert"
	case "home":
		return "Home"
	case "end":
		return "End"
	case "pageup":
		return "Page_Up"
	case "pagedown":
		return "Page_Down"
	case "up":
		return "Up"
	case "down":
		return "Down"
	case "left":
		return "Left"
	case "right":
		return "Right"
	}
	if len(key) > 1 && key[0] == 'f' {
		if _, err := hotkey.KeyCode(key); err == nil {
			return "F" + key[1:]
		}
	}
	return key
}

// ydotoolArgs emits raw evdev code:state pairs, pressing modifiers and
// key in order and releasing them in reverse: key --key-delay 0
// 29:1 42:1 47:1 47:0 42:0 29:0.
func ydotoolArgs(c Combo) []string {
	args := []string{"key", "--key-delay", "0"}
	codes := make([]uint16, 0, len(c.Modifiers)+1)
	for _, m := range c.Modifiers {
		code, _ := hotkey.KeyCode(m.KeyName())
		codes = append(codes, code)
	}
	codes = append(codes, c.KeyCode)
	for _, code := range codes {
		args = append(args, fmt.Sprintf("%d:1", code))
	}
	for i := len(codes) - 1; i >= 0; i-- {
		args = append(args, fmt.Sprintf("%d:0", codes[i]))
	}
	return args
}

// typeText injects literal text through one backend, for Type mode when
// the uinput device is unavailable.
func typeText(r Runner, b Backend, text string) error {
	switch b {
	case BackendXdotool:
		return r.Run("xdotool", "type", "--delay", "0", "--clearmodifiers", "--", text)
	case BackendWtype:
		return r.Run("wtype", "-d", "0", "--", text)
	case BackendYdotool:
		return r.Run("ydotool", "type", "--key-delay", "0", "--", text)
	}
	return errors.New("cannot type text with auto backend")
}

// DependencyWarnings reports missing external tools at startup so the
// user learns about a broken setup before the first dictation.
func DependencyWarnings(r Runner, comp Compositor) []string {
	var warns []string
	if len(available(r, candidates(comp))) == 0 {
		names := make([]string, 0, 2)
		for _, b := range candidates(comp) {
			names = append(names, b.String())
		}
		warns = append(warns, fmt.Sprintf("no input backend found for %s session, install one of: %s",
			comp, strings.Join(names, ", ")))
	}
	switch comp {
	case CompositorX11:
		if !r.Has("xprop") {
			warns = append(warns, "xprop not found, per-application paste combos will not work")
		}
	case CompositorWaylandKDE:
		if !r.Has("kdotool") {
			warns = append(warns, "kdotool not found, per-application paste combos will not work")
		}
	default:
		if !r.Has("swaymsg") {
			warns = append(warns, "swaymsg not found, per-application paste combos will not work")
		}
	}
	return warns
}
