package serviceutil

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

// SignalContext returns a context that is cancelled on the first SIGINT or SIGTERM.
// The returned stop function restores the default signal behavior.
func SignalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// Fatal logs the error along with any extra key value pairs and exits with status 1.
func Fatal(message string, err error, attrs ...any) {
	args := append([]any{"err", err}, attrs...)
	slog.Error(message, args...)
	os.Exit(1)
}
