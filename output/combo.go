package output

import (
	"fmt"
	"strings"

	"whisp/hotkey"
)

// Combo is a parsed key combination like "ctrl+shift+v": zero or more
// modifiers plus one final key, all resolved against the hotkey key
// table at parse time.
type Combo struct {
	Modifiers []Modifier
	Key       string
	KeyCode   uint16
}

type Modifier int

const (
	ModCtrl Modifier = iota
	ModShift
	ModAlt
	ModSuper
)

func (m Modifier) String() string {
	switch m {
	case ModShift:
		return "shift"
	case ModAlt:
		return "alt"
	case ModSuper:
		return "super"
	default:
		return "ctrl"
	}
}

// KeyName returns the evdev key name carrying this modifier.
func (m Modifier) KeyName() string {
	switch m {
	case ModShift:
		return "leftshift"
	case ModAlt:
		return "leftalt"
	case ModSuper:
		return "leftmeta"
	default:
		return "leftctrl"
	}
}

func parseModifier(token string) (Modifier, error) {
	switch hotkey.Normalize(token) {
	case "leftctrl", "rightctrl":
		return ModCtrl, nil
	case "leftshift", "rightshift":
		return ModShift, nil
	case "leftalt", "rightalt":
		return ModAlt, nil
	case "leftmeta", "rightmeta":
		return ModSuper, nil
	}
	return 0, fmt.Errorf("invalid modifier %q (supported: ctrl, shift, alt, super/meta)", token)
}

// ParseCombo validates and splits a "+"-separated key combination.
func ParseCombo(combo string) (Combo, error) {
	var parts []string
	for _, p := range strings.Split(combo, "+") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return Combo{}, fmt.Errorf("invalid combo %q: empty key combination", combo)
	}

	c := Combo{Key: hotkey.Normalize(parts[len(parts)-1])}
	for _, token := range parts[:len(parts)-1] {
		mod, err := parseModifier(token)
		if err != nil {
			return Combo{}, fmt.Errorf("combo %q: %w", combo, err)
		}
		c.Modifiers = append(c.Modifiers, mod)
	}

	code, err := hotkey.KeyCode(c.Key)
	if err != nil {
		return Combo{}, fmt.Errorf("combo %q: %w", combo, err)
	}
	c.KeyCode = code
	return c, nil
}

func (c Combo) String() string {
	var sb strings.Builder
	for _, m := range c.Modifiers {
		sb.WriteString(m.String())
		sb.WriteByte('+')
	}
	sb.WriteString(c.Key)
	return sb.String()
}
