// Package notify delivers user-facing sync notifications.
// The embedding application supplies its own Notifier to surface toasts
// or banners; the default just logs.
package notify

import "log/slog"

// Level classifies a notification for presentation
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notifier receives user-facing messages about sync outcomes.
// Implementations must be safe for concurrent use.
type Notifier interface {
	Notify(level Level, message string)
}

// SlogNotifier routes notifications to a structured logger.
// It is the default when the embedder does not provide a Notifier.
type SlogNotifier struct {
	logger *slog.Logger
}

func NewSlogNotifier(logger *slog.Logger) *SlogNotifier {
	return &SlogNotifier{logger: logger}
}

func (n *SlogNotifier) Notify(level Level, message string) {
	switch level {
	case LevelError:
		n.logger.Error(message)
	case LevelWarning:
		n.logger.Warn(message)
	default:
		n.logger.Info(message)
	}
}

// Func adapts a plain function to the Notifier interface
type Func func(level Level, message string)

func (f Func) Notify(level Level, message string) { f(level, message) }
