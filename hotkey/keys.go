package hotkey

import (
	"fmt"
	"sort"
	"strings"
)

// keyCodes maps evdev KEY_* names (lowercased, prefix stripped) to their
// kernel key codes. The same table serves the config parser, the -list-keys
// command, and combo synthesis, so the recognized names cannot drift apart.
var keyCodes = map[string]uint16{
	"esc": 1, "1": 2, "2": 3, "3": 4, "4": 5, "5": 6, "6": 7, "7": 8,
	"8": 9, "9": 10, "0": 11, "minus": 12, "equal": 13, "backspace": 14,
	"tab": 15, "q": 16, "w": 17, "e": 18, "r": 19, "t": 20, "y": 21,
	"u": 22, "i": 23, "o": 24, "p": 25, "leftbrace": 26, "rightbrace": 27,
	"enter": 28, "leftctrl": 29, "a": 30, "s": 31, "d": 32, "f": 33,
	"g": 34, "h": 35, "j": 36, "k": 37, "l": 38, "semicolon": 39,
	"apostrophe": 40, "grave": 41, "leftshift": 42, "backslash": 43,
	"z": 44, "x": 45, "c": 46, "v": 47, "b": 48, "n": 49, "m": 50,
	"comma": 51, "dot": 52, "slash": 53, "rightshift": 54,
	"kpasterisk": 55, "leftalt": 56, "space": 57, "capslock": 58,
	"f1": 59, "f2": 60, "f3": 61, "f4": 62, "f5": 63, "f6": 64,
	"f7": 65, "f8": 66, "f9": 67, "f10": 68, "numlock": 69,
	"scrolllock": 70, "kp7": 71, "kp8": 72, "kp9": 73, "kpminus": 74,
	"kp4": 75, "kp5": 76, "kp6": 77, "kpplus": 78, "kp1": 79, "kp2": 80,
	"kp3": 81, "kp0": 82, "kpdot": 83, "f11": 87, "f12": 88,
	"kpenter": 96, "rightctrl": 97, "kpslash": 98, "sysrq": 99,
	"rightalt": 100, "home": 102, "up": 103, "pageup": 104, "left": 105,
	"right": 106, "end": 107, "down": 108, "pagedown": 109, "insert": 110,
	"delete": 111, "mute": 113, "volumedown": 114, "volumeup": 115,
	"kpequal": 117, "pause": 119, "leftmeta": 125, "rightmeta": 126,
	"compose": 127, "f13": 183, "f14": 184, "f15": 185, "f16": 186,
	"f17": 187, "f18": 188, "f19": 189, "f20": 190, "f21": 191,
	"f22": 192, "f23": 193, "f24": 194,
}

// aliases resolve the short modifier spellings users write in config to
// concrete key names. Resolution happens at config time, never at runtime.
var aliases = map[string]string{
	"ctrl":    "leftctrl",
	"control": "leftctrl",
	"shift":   "leftshift",
	"alt":     "leftalt",
	"super":   "leftmeta",
	"meta":    "leftmeta",
	"win":     "leftmeta",
	"escape":  "esc",
	"return":  "enter",
}

// Normalize lowercases a key name and resolves modifier aliases.
func Normalize(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if resolved, ok := aliases[n]; ok {
		return resolved
	}
	return n
}

// KeyCode resolves a key name (e.g. "insert", "f4", "ctrl") to its evdev
// code.
func KeyCode(name string) (uint16, error) {
	code, ok := keyCodes[Normalize(name)]
	if !ok {
		return 0, fmt.Errorf("unknown key name %q", name)
	}
	return code, nil
}

// KeyName returns the canonical name for a code, or "" if unknown.
func KeyName(code uint16) string {
	for name, c := range keyCodes {
		if c == code {
			return name
		}
	}
	return ""
}

// KeyNames lists every recognized key name, sorted. Used by -list-keys.
func KeyNames() []string {
	names := make([]string, 0, len(keyCodes))
	for name := range keyCodes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
