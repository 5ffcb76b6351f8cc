//go:build !linux

package main

import (
	"context"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"golang.design/x/hotkey/mainthread"
)

func init() {
	runtime.LockOSThread()
}

func newSignalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func main() {
	// The X11 hotkey backend needs the process main thread.
	code := 0
	mainthread.Init(func() { code = run() })
	os.Exit(code)
}
