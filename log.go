package textstrip

import (
	"log/slog"
	"os"
)

// stripLogLevel controls logging for the package.
// Default is LevelInfo, which suppresses Debug messages.
var stripLogLevel = new(slog.LevelVar)

// stripLogger is the logger used for layout diagnostics, notably missing
// glyph warnings.
var stripLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: stripLogLevel}))

// SetVerbose enables or disables debug logging for the package.
// Call this from main() after parsing flags.
func SetVerbose(v bool) {
	if v {
		stripLogLevel.Set(slog.LevelDebug)
	} else {
		stripLogLevel.Set(slog.LevelInfo)
	}
}

// SetLogger replaces the package logger. Useful for routing warnings into an
// application-wide handler or capturing them in tests.
func SetLogger(l *slog.Logger) {
	if l != nil {
		stripLogger = l
	}
}
