// Package lognotify provides a notifier that writes to the log.
package lognotify

import "github.com/user/xcandb/pkg/ports"

// Notifier implements ports.Notifier by logging each notification.
// Used when desktop notifications are disabled or unavailable.
type Notifier struct {
	logger ports.Logger
}

// New creates a Notifier logging at info level.
func New(logger ports.Logger) *Notifier {
	return &Notifier{logger: logger}
}

// Notify logs the notification.
func (n *Notifier) Notify(summary, body string) error {
	n.logger.Info("%s: %s", summary, body)
	return nil
}

// Close does nothing.
func (n *Notifier) Close() error {
	return nil
}

// Ensure Notifier implements ports.Notifier
var _ ports.Notifier = (*Notifier)(nil)
