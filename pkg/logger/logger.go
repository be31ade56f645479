package logger

import (
	"io"
	"log/slog"
	"os"
)

var level = new(slog.LevelVar)

// Logger is the process-wide logger. It writes key/value records to stderr and
// only shows warnings and errors until SetVerbose is called.
var Logger = New(os.Stderr)

func init() {
	level.Set(slog.LevelWarn)
}

// New builds a text logger bound to the shared level
func New(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// SetVerbose switches the shared level between debug and warn
func SetVerbose(verbose bool) {
	if verbose {
		level.Set(slog.LevelDebug)
		return
	}
	level.Set(slog.LevelWarn)
}
