package render

import (
	"log/slog"
	"sync/atomic"
)

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with a running render loop.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(slog.DiscardHandler))
}

// SetLogger configures the logger used by the renderer.
// By default nothing is logged. Pass nil to restore that.
//
// Log levels:
//   - [slog.LevelDebug]: per-frame diagnostics (resizes, dropped commands)
//   - [slog.LevelInfo]: lifecycle events (loop start/stop, sprite registration)
//   - [slog.LevelWarn]: failures that degrade to "nothing drawn"
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
