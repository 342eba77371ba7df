// Package logger holds the process-wide structured logger used by heapkit.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// EnvLogAlloc enables debug logging to stderr at start-up when set to any
// non-empty value.
const EnvLogAlloc = "HEAPKIT_LOG_ALLOC"

// L is the global logger instance. It discards all output unless
// HEAPKIT_LOG_ALLOC is set or Init enables it.
var L = defaultLogger()

// Options configures the logger initialization.
type Options struct {
	Enabled bool       // If false, all logging is discarded
	Output  io.Writer  // Destination. Default: os.Stderr
	Level   slog.Level // Minimum log level. Default: LevelInfo when enabled
	JSON    bool       // Emit JSON records instead of logfmt-style text
}

// Init configures logging. Call from main() before any allocator is created;
// allocators capture the logger at construction.
func Init(opts Options) {
	L = New(opts)
}

// New builds a logger from opts without touching the global instance.
func New(opts Options) *slog.Logger {
	if !opts.Enabled {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	w := opts.Output
	if w == nil {
		w = os.Stderr
	}

	level := opts.Level
	if level == 0 {
		level = slog.LevelInfo
	}

	ho := &slog.HandlerOptions{Level: level}
	if opts.JSON {
		return slog.New(slog.NewJSONHandler(w, ho))
	}
	return slog.New(slog.NewTextHandler(w, ho))
}

func defaultLogger() *slog.Logger {
	return New(Options{
		Enabled: os.Getenv(EnvLogAlloc) != "",
		Level:   slog.LevelDebug,
	})
}
