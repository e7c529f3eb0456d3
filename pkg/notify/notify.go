// Package notify defines the user-notification contract.
//
// The engine reports save and export outcomes through a Notifier; how the
// message is presented (toast, log line, HTTP response) is the host's
// concern. Notifications are fire-and-forget: implementations must not
// block and must never return control-flow errors into the engine.
package notify

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
)

// Kind classifies a notification.
type Kind string

// Notification kinds.
const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Notifier delivers a user-facing message. Implementations must be safe for
// concurrent use.
type Notifier interface {
	Notify(ctx context.Context, kind Kind, title, body string)
}

// =============================================================================
// Implementations
// =============================================================================

// LogNotifier writes notifications to a structured logger.
type LogNotifier struct {
	Logger *log.Logger
}

// NewLogNotifier creates a notifier backed by the given logger.
// A nil logger falls back to log.Default().
func NewLogNotifier(logger *log.Logger) *LogNotifier {
	if logger == nil {
		logger = log.Default()
	}
	return &LogNotifier{Logger: logger}
}

// Notify logs the notification at a level matching its kind.
func (n *LogNotifier) Notify(ctx context.Context, kind Kind, title, body string) {
	if kind == KindError {
		n.Logger.Error(title, "detail", body)
		return
	}
	n.Logger.Info(title, "detail", body)
}

// NullNotifier discards all notifications.
type NullNotifier struct{}

// Notify does nothing.
func (NullNotifier) Notify(ctx context.Context, kind Kind, title, body string) {}

// CaptureNotifier records notifications for test assertions.
type CaptureNotifier struct {
	mu       sync.Mutex
	captured []Captured
}

// Captured is one recorded notification.
type Captured struct {
	Kind  Kind
	Title string
	Body  string
}

// Notify records the notification.
func (n *CaptureNotifier) Notify(ctx context.Context, kind Kind, title, body string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.captured = append(n.captured, Captured{Kind: kind, Title: title, Body: body})
}

// All returns a copy of the recorded notifications.
func (n *CaptureNotifier) All() []Captured {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Captured, len(n.captured))
	copy(out, n.captured)
	return out
}

// Ensure implementations satisfy Notifier.
var (
	_ Notifier = (*LogNotifier)(nil)
	_ Notifier = NullNotifier{}
	_ Notifier = (*CaptureNotifier)(nil)
)
