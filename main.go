package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"whisp/audio"
	"whisp/clipboard"
	"whisp/config"
	"whisp/hotkey"
	"whisp/log"
	"whisp/notify"
	"whisp/output"
	"whisp/transcriber"
	"whisp/uinput"
)

var version = "dev"

// clipboardDevice adapts the clipboard package to the output package's
// collaborator interface.
type clipboardDevice struct{}

func (clipboardDevice) Read() (string, error)   { return clipboard.Read() }
func (clipboardDevice) Write(text string) error { return clipboard.Copy(text) }

func run() int {
	configFlag := flag.String("config", "", "config file path (default: ~/.config/whisp/config.toml)")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	listKeysFlag := flag.Bool("list-keys", false, "Print valid hotkey names and exit")
	listDevicesFlag := flag.Bool("list-devices", false, "Print capture devices and exit")
	setupFlag := flag.Bool("setup", false, "Select microphone device interactively")
	tuiFlag := flag.Bool("tui", true, "Run with terminal UI")
	logPathFlag := flag.String("logpath", "", "log directory path (default: OS-specific location, use ./ for current dir)")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("whisp %s\n", version)
		return 0
	}
	if *listKeysFlag {
		for _, name := range hotkey.KeyNames() {
			fmt.Println(name)
		}
		return 0
	}

	configPath := *configFlag
	if configPath == "" {
		var err error
		configPath, err = config.DefaultPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}
	settings, unknown, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	for _, key := range unknown {
		fmt.Fprintf(os.Stderr, "Warning: unknown config key %q in %s\n", key, configPath)
	}

	logDirFlag := *logPathFlag
	if logDirFlag == "" {
		logDirFlag = settings.LogPath
	}
	logDir, err := log.ResolveDir(logDirFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to resolve log directory: %v\n", err)
		return 1
	}
	log.SetDir(logDir)
	if err := log.EnsureDir(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create log directory: %v\n", err)
	}

	crashPath := filepath.Join(log.Dir(), "crash_log.txt")
	if crashFile, err := os.OpenFile(crashPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644); err == nil {
		fmt.Fprintf(crashFile, "\n=== Session %s [pid=%d] ===\n", time.Now().Format("2006-01-02 15:04:05"), os.Getpid())
		debug.SetCrashOutput(crashFile, debug.CrashOptions{})
	}

	if err := log.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not init logging: %v\n", err)
	}
	defer log.Close()
	log.SessionStart(settings.Hotkey, settings.Output.Mode.String(), settings.Output.Backend.String())

	actx, err := audio.NewContext()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing audio: %v\n", err)
		log.Errorf("audio context init error: %v", err)
		return 1
	}
	defer actx.Close()

	if *listDevicesFlag {
		devices, err := actx.Devices()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		for _, dev := range devices {
			fmt.Println(dev.Name)
		}
		return 0
	}

	deviceName := settings.AudioDevice
	if *setupFlag {
		dev, err := audio.SelectDevice(actx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: device selection failed: %v\n", err)
			fmt.Fprintln(os.Stderr, "Falling back to default device")
		} else if dev != nil {
			deviceName = dev.Name
			fmt.Printf("Using %s for this session. Set audio_device = %q in %s to make it permanent.\n",
				dev.Name, dev.Name, configPath)
		}
	}

	var selected *audio.DeviceInfo
	if deviceName != "" {
		devices, err := actx.Devices()
		if err == nil {
			for i := range devices {
				if devices[i].Name == deviceName {
					selected = &devices[i]
					break
				}
			}
		}
		if selected == nil {
			fmt.Fprintf(os.Stderr, "Warning: device %q not found, using system default\n", deviceName)
			log.Warnf("device not found: %s", deviceName)
		}
	}

	capture, err := actx.NewCapture(selected, audio.CaptureConfig{
		SampleRate: audio.SampleRate,
		Channels:   audio.Channels,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing capture device: %v\n", err)
		log.Errorf("capture device init error: %v", err)
		return 1
	}
	defer capture.Close()

	if _, err := os.Stat(settings.Model); err != nil {
		fmt.Fprintf(os.Stderr, "Error: whisper model not found at %s\n", settings.Model)
		fmt.Fprintln(os.Stderr, "Download one with:")
		fmt.Fprintf(os.Stderr, "  mkdir -p %s\n", filepath.Dir(settings.Model))
		fmt.Fprintf(os.Stderr, "  curl -Lo %s https://huggingface.co/ggerganov/whisper.cpp/resolve/main/%s\n",
			settings.Model, filepath.Base(settings.Model))
		return 1
	}
	whisper, err := transcriber.NewWhisper(settings.Model, settings.Language)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading whisper model: %v\n", err)
		log.Errorf("model load error: %v", err)
		return 1
	}
	defer whisper.Close()

	var kb output.Keyboard
	if vkb, err := uinput.New(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: virtual keyboard unavailable: %v\n", err)
		fmt.Fprintln(os.Stderr, "Fix with: sudo chmod 660 /dev/uinput && sudo chgrp input /dev/uinput")
		log.Warnf("uinput init failed: %v", err)
	} else {
		kb = vkb
		defer vkb.Close()
	}

	runner := output.NewRunner()
	comp := output.DetectCompositor(os.Getenv)
	for _, warn := range output.DependencyWarnings(runner, comp) {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", warn)
		log.Warn(warn)
	}

	dispatcher := output.NewDispatcher(settings.Output, runner, clipboardDevice{}, kb)

	keys := hotkey.NewListener(settings.HotkeyCode, settings.Debounce)
	if err := keys.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Error listening for hotkey: %v\n", err)
		fmt.Fprintln(os.Stderr, "Fix with: sudo usermod -aG input $USER (then log out and back in)")
		log.Errorf("hotkey listener error: %v", err)
		return 1
	}
	defer keys.Stop()

	worker := transcriber.NewWorker(whisper)
	orch := newOrchestrator(keys, audio.NewRing(audio.DefaultRingCapacity), capture,
		worker, dispatcher, notify.Error, settings.MinRecord, settings.TranscribeTimeout)

	ctx, stop := newSignalContext()
	defer stop()
	worker.Start(ctx)

	if *tuiFlag {
		tuiMu.Lock()
		tuiProgram = NewTUIProgram()
		tuiMu.Unlock()
		orch.events = func(msg any) { tuiSend(msg) }

		go func() {
			if _, err := tuiProgram.Run(); err != nil {
				log.Errorf("TUI error: %v", err)
			}
			stop()
		}()
		defer tuiProgram.Quit()

		tuiSend(StatusLineMsg{Text: statusLine(settings, capture.DeviceName())})
	} else {
		fmt.Printf("whisp %s, hold %q to dictate (ctrl+c to quit)\n", version, settings.Hotkey)
	}

	log.Info("pipeline ready on " + capture.DeviceName())
	orch.run(ctx)
	return 0
}

func statusLine(s config.Settings, device string) string {
	return fmt.Sprintf("[%s | %s | %s | mic: %s]", s.Hotkey, s.Output.Mode, s.Output.Backend, device)
}
