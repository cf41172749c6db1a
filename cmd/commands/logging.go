package commands

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
)

// newLogHandler returns a leveled, colored slog handler. Timestamps are
// only shown at debug level.
func newLogHandler(w io.Writer, level slog.Level) slog.Handler {
	return log.NewWithOptions(w, log.Options{
		Level:           log.Level(level),
		Formatter:       log.TextFormatter,
		ReportTimestamp: level <= slog.LevelDebug,
		Prefix:          "simpsched",
	})
}
