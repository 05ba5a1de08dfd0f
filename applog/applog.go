// Package applog sets up structured logging for the application. The
// TUI owns the terminal, so log output goes to a rotating file.
package applog

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger wraps slog with the location of the file it writes to.
type Logger struct {
	*slog.Logger
	LogFile string
	Start   time.Time
}

// New creates a logger writing JSON records to dir/gridnav.slog,
// rotated at 32 MB with one backup kept.
func New(level, dir string) *Logger {
	if dir == "" {
		var err error
		dir, err = os.UserConfigDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Unable to find user config dir: %v", err)
			dir = "."
		}
		dir = filepath.Join(dir, "gridnav")
	}

	w := &lumberjack.Logger{
		Filename:   filepath.Join(dir, "gridnav.slog"),
		MaxSize:    32, // MB
		MaxBackups: 1,
	}

	lvl := slog.LevelInfo
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info", "":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		fmt.Fprintf(os.Stderr, "%s: invalid log level", level)
	}

	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	l := &Logger{
		Logger:  slog.New(h),
		LogFile: w.Filename,
		Start:   time.Now(),
	}

	l.Info("Hello logging", slog.Time("start", l.Start))
	return l
}
