// Package dbusnotify sends desktop notifications over the session bus.
package dbusnotify

import (
	"errors"
	"fmt"

	"github.com/godbus/dbus/v5"

	"github.com/user/xcandb/pkg/ports"
)

const (
	destination = "org.freedesktop.Notifications"
	objectPath  = "/org/freedesktop/Notifications"
	notifyCall  = destination + ".Notify"
)

// ErrUnavailable is returned when no notification server can be reached.
var ErrUnavailable = errors.New("dbusnotify: notification service unavailable")

// caller is the part of dbus.BusObject used to send notifications.
type caller interface {
	Call(method string, flags dbus.Flags, args ...interface{}) *dbus.Call
}

// Notifier implements ports.Notifier with org.freedesktop.Notifications.
type Notifier struct {
	conn      *dbus.Conn
	obj       caller
	appName   string
	timeoutMs int32
	lastID    uint32
}

// New connects to the session bus. Notifications from the same Notifier
// replace each other instead of stacking up.
func New(appName string, timeoutMs int) (*Notifier, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return &Notifier{
		conn:      conn,
		obj:       conn.Object(destination, objectPath),
		appName:   appName,
		timeoutMs: int32(timeoutMs),
	}, nil
}

// Notify shows body under summary.
func (n *Notifier) Notify(summary, body string) error {
	call := n.obj.Call(notifyCall, 0,
		n.appName,
		n.lastID,
		"",
		summary,
		body,
		[]string{},
		map[string]dbus.Variant{},
		n.timeoutMs,
	)
	if call.Err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, call.Err)
	}

	var id uint32
	if err := call.Store(&id); err != nil {
		return fmt.Errorf("notify reply: %w", err)
	}
	n.lastID = id
	return nil
}

// Close disconnects from the bus.
func (n *Notifier) Close() error {
	if n.conn == nil {
		return nil
	}
	err := n.conn.Close()
	n.conn = nil
	return err
}

// Ensure Notifier implements ports.Notifier
var _ ports.Notifier = (*Notifier)(nil)
