// Package config loads and validates the user configuration from a TOML
// file, creating a commented default on first run.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"whisp/hotkey"
	"whisp/output"
)

// Config mirrors the on-disk TOML layout.
type Config struct {
	Hotkey             string `toml:"hotkey"`
	DebounceMs         int    `toml:"debounce_ms"`
	MinRecordMs        int    `toml:"min_record_ms"`
	Language           string `toml:"language"`
	Model              string `toml:"model"`
	AudioDevice        string `toml:"audio_device"`
	TranscribeTimeoutS int    `toml:"transcribe_timeout_s"`
	LogPath            string `toml:"log_path"`

	Output OutputConfig `toml:"output"`
}

type OutputConfig struct {
	Mode          string            `toml:"mode"`
	Backend       string            `toml:"backend"`
	DefaultCombo  string            `toml:"default_combo"`
	TerminalCombo string            `toml:"terminal_combo"`
	AppOverrides  map[string]string `toml:"app_overrides"`
}

// Settings is the validated, parsed form the rest of the program works
// with.
type Settings struct {
	Hotkey            string
	HotkeyCode        uint16
	Debounce          time.Duration
	MinRecord         time.Duration
	TranscribeTimeout time.Duration
	Language          string
	Model             string
	AudioDevice       string
	LogPath           string
	Output            output.Config
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Hotkey:             "insert",
		DebounceMs:         100,
		MinRecordMs:        200,
		Language:           "en",
		TranscribeTimeoutS: 30,
		Output: OutputConfig{
			Mode:          "type",
			Backend:       "auto",
			DefaultCombo:  "ctrl+v",
			TerminalCombo: "ctrl+shift+v",
		},
	}
}

// DefaultPath is where the config file lives unless -config overrides
// it.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving config dir: %w", err)
	}
	return filepath.Join(dir, "whisp", "config.toml"), nil
}

// DefaultModelPath is where a bare model filename is looked up.
func DefaultModelPath(name string) (string, error) {
	if name == "" {
		name = "ggml-base.en.bin"
	}
	if strings.ContainsRune(name, os.PathSeparator) || strings.HasPrefix(name, "~") {
		return expandHome(name), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home dir: %w", err)
	}
	return filepath.Join(home, ".local", "share", "whisp", "models", name), nil
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, p[1:])
		}
	}
	return p
}

// Load reads the config at path, creating a commented default file on
// first run. Unknown keys are reported back so a typo does not silently
// fall back to defaults.
func Load(path string) (Settings, []string, error) {
	cfg := Default()
	var unknown []string

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := writeDefault(path); err != nil {
			return Settings{}, nil, err
		}
	} else {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Settings{}, nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		for _, k := range md.Undecoded() {
			unknown = append(unknown, k.String())
		}
	}

	s, err := cfg.parse()
	if err != nil {
		return Settings{}, nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, unknown, nil
}

func (c Config) parse() (Settings, error) {
	key := hotkey.Normalize(c.Hotkey)
	code, err := hotkey.KeyCode(key)
	if err != nil {
		return Settings{}, fmt.Errorf("hotkey: %w", err)
	}
	if c.DebounceMs < 0 {
		return Settings{}, fmt.Errorf("debounce_ms must not be negative, got %d", c.DebounceMs)
	}
	if c.MinRecordMs < 0 {
		return Settings{}, fmt.Errorf("min_record_ms must not be negative, got %d", c.MinRecordMs)
	}
	if c.TranscribeTimeoutS <= 0 {
		return Settings{}, fmt.Errorf("transcribe_timeout_s must be positive, got %d", c.TranscribeTimeoutS)
	}

	mode, err := output.ParseMode(c.Output.Mode)
	if err != nil {
		return Settings{}, err
	}
	backend, err := output.ParseBackend(c.Output.Backend)
	if err != nil {
		return Settings{}, err
	}
	def, err := output.ParseCombo(c.Output.DefaultCombo)
	if err != nil {
		return Settings{}, fmt.Errorf("default_combo: %w", err)
	}
	term, err := output.ParseCombo(c.Output.TerminalCombo)
	if err != nil {
		return Settings{}, fmt.Errorf("terminal_combo: %w", err)
	}
	overrides := make(map[string]output.Combo, len(c.Output.AppOverrides))
	for app, combo := range c.Output.AppOverrides {
		parsed, err := output.ParseCombo(combo)
		if err != nil {
			return Settings{}, fmt.Errorf("app_overrides.%s: %w", app, err)
		}
		overrides[app] = parsed
	}

	model, err := DefaultModelPath(c.Model)
	if err != nil {
		return Settings{}, err
	}

	return Settings{
		Hotkey:            key,
		HotkeyCode:        code,
		Debounce:          time.Duration(c.DebounceMs) * time.Millisecond,
		MinRecord:         time.Duration(c.MinRecordMs) * time.Millisecond,
		TranscribeTimeout: time.Duration(c.TranscribeTimeoutS) * time.Second,
		Language:          c.Language,
		Model:             model,
		AudioDevice:       c.AudioDevice,
		LogPath:           expandHome(c.LogPath),
		Output: output.Config{
			Mode:          mode,
			Backend:       backend,
			DefaultCombo:  def,
			TerminalCombo: term,
			AppOverrides:  overrides,
		},
	}, nil
}

const defaultTOML = `# whisp configuration

# Push-to-talk key. Run "whisp -list-keys" for valid names.
hotkey = "insert"

# Ignore key repeats and switch bounce within this window.
debounce_ms = 100

# Discard recordings shorter than this.
min_record_ms = 200

# Transcription language ("auto" to detect).
language = "en"

# Whisper model: a bare filename is looked up under
# ~/.local/share/whisp/models, anything with a path separator is used
# as-is.
model = "ggml-base.en.bin"

# Preferred capture device. Leave empty for the system default, or run
# "whisp -setup" to pick one.
audio_device = ""

# Abandon a transcription that takes longer than this.
transcribe_timeout_s = 30

[output]
# "type" synthesizes keystrokes, "paste" goes through the clipboard.
mode = "type"

# "auto" picks per session type; or force xdotool, wtype, ydotool.
backend = "auto"

default_combo = "ctrl+v"
terminal_combo = "ctrl+shift+v"

# Per-application paste combos, keyed by window class.
# [output.app_overrides]
# "org.gnome.Terminal" = "ctrl+shift+v"
`

func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultTOML), 0o644); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
