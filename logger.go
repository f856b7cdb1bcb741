package match

import (
	"io"
	"log/slog"
	"os"
)

// logger is shared by every book and engine of the process: JSON on stdout at
// info level until replaced.
var logger = DefaultConfig().NewLogger(os.Stdout)

// SetLogger replaces the package logger. A nil logger silences it.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	logger = l
}
