// Package notify raises desktop notifications over the session D-Bus.
// Notifications are best effort: a missing bus or daemon never breaks
// the dictation pipeline.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"

	"whisp/log"
)

const (
	busName    = "org.freedesktop.Notifications"
	objectPath = "/org/freedesktop/Notifications"
	method     = "org.freedesktop.Notifications.Notify"

	appName   = "whisp"
	expireMs  = 4000
	urgencyHi = byte(2)

	// callTimeout bounds the bus round trip so a wedged notification
	// daemon cannot stall the pipeline.
	callTimeout = 2 * time.Second
)

var (
	mu   sync.Mutex
	conn *dbus.Conn
	dead bool
)

func connect() *dbus.Conn {
	mu.Lock()
	defer mu.Unlock()
	if conn != nil || dead {
		return conn
	}
	c, err := dbus.SessionBus()
	if err != nil {
		log.Warnf("session bus unavailable, desktop notifications disabled: %v", err)
		dead = true
		return nil
	}
	conn = c
	return conn
}

func send(summary, body string, hints map[string]dbus.Variant) {
	c := connect()
	if c == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()
	obj := c.Object(busName, objectPath)
	call := obj.CallWithContext(ctx, method, 0, appName, uint32(0), "audio-input-microphone",
		summary, body, []string{}, hints, int32(expireMs))
	if call.Err != nil {
		log.Warnf("notification failed: %v", call.Err)
	}
}

// Info shows a transient informational notification.
func Info(summary, body string) {
	send(summary, body, map[string]dbus.Variant{})
}

// Error shows a critical-urgency notification for pipeline failures.
func Error(summary, body string) {
	send(summary, body, map[string]dbus.Variant{
		"urgency": dbus.MakeVariant(urgencyHi),
	})
}
