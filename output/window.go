package output

import (
	"encoding/json"
	"strings"
)

// DetectCompositor classifies the session from the environment. getenv is
// injectable for tests.
func DetectCompositor(getenv func(string) string) Compositor {
	if getenv("WAYLAND_DISPLAY") == "" {
		return CompositorX11
	}
	desktop := strings.ToLower(getenv("XDG_CURRENT_DESKTOP") + " " + getenv("XDG_SESSION_DESKTOP"))
	if strings.Contains(desktop, "kde") || strings.Contains(desktop, "plasma") {
		return CompositorWaylandKDE
	}
	return CompositorWaylandOther
}

// terminals holds the window classes treated as terminal emulators.
// Matching is case-insensitive on the normalized class.
var terminals = map[string]bool{
	"alacritty":              true,
	"kitty":                  true,
	"foot":                   true,
	"footclient":             true,
	"konsole":                true,
	"gnome-terminal":         true,
	"org.gnome.terminal":     true,
	"org.gnome.console":      true,
	"xterm":                  true,
	"urxvt":                  true,
	"rxvt":                   true,
	"st":                     true,
	"st-256color":            true,
	"wezterm":                true,
	"org.wezfurlong.wezterm": true,
	"terminator":             true,
	"tilix":                  true,
	"xfce4-terminal":         true,
	"ghostty":                true,
	"com.mitchellh.ghostty":  true,
}

func classifyWindow(class string) WindowKind {
	if class == "" {
		return KindUnknown
	}
	if terminals[strings.ToLower(class)] {
		return KindTerminal
	}
	return KindGUI
}

// FocusedTarget resolves the currently focused application. Failure to
// identify the window is not an error: output still happens, just with
// the default combo.
func FocusedTarget(r Runner, comp Compositor) Target {
	var class string
	switch comp {
	case CompositorX11:
		class = x11FocusedClass(r)
	case CompositorWaylandKDE:
		class = kdeFocusedClass(r)
	default:
		class = swayFocusedClass(r)
	}
	return Target{AppClass: class, Kind: classifyWindow(class), Compositor: comp}
}

func x11FocusedClass(r Runner) string {
	id, err := r.Output("xdotool", "getactivewindow")
	if err != nil {
		return ""
	}
	out, err := r.Output("xprop", "-id", strings.TrimSpace(id), "WM_CLASS")
	if err != nil {
		return ""
	}
	// WM_CLASS(STRING) = "navigator", "Firefox"; the second quoted value
	// is the class.
	parts := strings.Split(out, "\"")
	if len(parts) >= 4 {
		return parts[3]
	}
	return ""
}

func kdeFocusedClass(r Runner) string {
	id, err := r.Output("kdotool", "getactivewindow")
	if err != nil {
		return ""
	}
	class, err := r.Output("kdotool", "getwindowclassname", strings.TrimSpace(id))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(class)
}

type swayNode struct {
	Focused       bool       `json:"focused"`
	AppID         string     `json:"app_id"`
	WindowProps   swayProps  `json:"window_properties"`
	Nodes         []swayNode `json:"nodes"`
	FloatingNodes []swayNode `json:"floating_nodes"`
}

type swayProps struct {
	Class string `json:"class"`
}

func swayFocusedClass(r Runner) string {
	out, err := r.Output("swaymsg", "-t", "get_tree")
	if err != nil {
		return ""
	}
	var root swayNode
	if err := json.Unmarshal([]byte(out), &root); err != nil {
		return ""
	}
	return findFocused(&root)
}

func findFocused(n *swayNode) string {
	if n.Focused {
		if n.AppID != "" {
			return n.AppID
		}
		return n.WindowProps.Class
	}
	for i := range n.Nodes {
		if c := findFocused(&n.Nodes[i]); c != "" {
			return c
		}
	}
	for i := range n.FloatingNodes {
		if c := findFocused(&n.FloatingNodes[i]); c != "" {
			return c
		}
	}
	return ""
}
