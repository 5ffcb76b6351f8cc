package output

import "testing"

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestDetectCompositor(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		want Compositor
	}{
		{"x11", map[string]string{}, CompositorX11},
		{"kde", map[string]string{"WAYLAND_DISPLAY": "wayland-0", "XDG_CURRENT_DESKTOP": "KDE"}, CompositorWaylandKDE},
		{"plasma session", map[string]string{"WAYLAND_DISPLAY": "wayland-0", "XDG_SESSION_DESKTOP": "plasmawayland"}, CompositorWaylandKDE},
		{"sway", map[string]string{"WAYLAND_DISPLAY": "wayland-1", "XDG_CURRENT_DESKTOP": "sway"}, CompositorWaylandOther},
	}
	for _, c := range cases {
		if got := DetectCompositor(envMap(c.env)); got != c.want {
			t.Errorf("%s: got %v, want %v", c.name, got, c.want)
		}
	}
}

func TestClassifyWindow(t *testing.T) {
	if classifyWindow("Alacritty") != KindTerminal {
		t.Error("Alacritty should be a terminal")
	}
	if classifyWindow("firefox") != KindGUI {
		t.Error("firefox should be a GUI window")
	}
	if classifyWindow("") != KindUnknown {
		t.Error("empty class should be unknown")
	}
}

func TestX11FocusedClass(t *testing.T) {
	r := newFakeRunner("xdotool", "xprop")
	r.outputs["xdotool getactivewindow"] = "73400323\n"
	r.outputs["xprop -id 73400323 WM_CLASS"] = `WM_CLASS(STRING) = "navigator", "firefox"` + "\n"

	target := FocusedTarget(r, CompositorX11)
	if target.AppClass != "firefox" {
		t.Fatalf("class = %q", target.AppClass)
	}
	if target.Kind != KindGUI {
		t.Fatalf("kind = %v", target.Kind)
	}
}

func TestKDEFocusedClass(t *testing.T) {
	r := newFakeRunner("kdotool")
	r.outputs["kdotool getactivewindow"] = "{some-uuid}\n"
	r.outputs["kdotool getwindowclassname {some-uuid}"] = "konsole\n"

	target := FocusedTarget(r, CompositorWaylandKDE)
	if target.AppClass != "konsole" || target.Kind != KindTerminal {
		t.Fatalf("got %+v", target)
	}
}

func TestSwayFocusedClass(t *testing.T) {
	r := newFakeRunner("swaymsg")
	r.outputs["swaymsg -t get_tree"] = `{
		"focused": false,
		"nodes": [
			{"focused": false, "app_id": "", "nodes": []},
			{"focused": false, "nodes": [
				{"focused": true, "app_id": "foot", "nodes": []}
			]}
		]
	}`

	target := FocusedTarget(r, CompositorWaylandOther)
	if target.AppClass != "foot" || target.Kind != KindTerminal {
		t.Fatalf("got %+v", target)
	}
}

func TestSwayXwaylandClass(t *testing.T) {
	r := newFakeRunner("swaymsg")
	r.outputs["swaymsg -t get_tree"] = `{
		"focused": false,
		"nodes": [{"focused": true, "app_id": "", "window_properties": {"class": "Steam"}}]
	}`

	target := FocusedTarget(r, CompositorWaylandOther)
	if target.AppClass != "Steam" || target.Kind != KindGUI {
		t.Fatalf("got %+v", target)
	}
}

func TestFocusedTargetToolFailure(t *testing.T) {
	r := newFakeRunner()
	r.fail["xdotool"] = errNope

	target := FocusedTarget(r, CompositorX11)
	if target.AppClass != "" || target.Kind != KindUnknown {
		t.Fatalf("got %+v", target)
	}
}
