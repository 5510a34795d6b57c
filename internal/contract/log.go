package contract

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the application-wide structured logger.
var Logger = newConsoleLogger(os.Stderr, zerolog.InfoLevel)

var logMu sync.Mutex

// InitLogger replaces Logger with a console logger writing to w at the given level.
// An unknown level falls back to info. A nil writer means stderr.
func InitLogger(level string, w io.Writer) {
	logMu.Lock()
	defer logMu.Unlock()

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	if w == nil {
		w = os.Stderr
	}
	Logger = newConsoleLogger(w, lvl)
}

func newConsoleLogger(w io.Writer, lvl zerolog.Level) zerolog.Logger {
	consoleWriter := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    !IsTerminalWriter(w),
	}
	return zerolog.New(consoleWriter).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}
