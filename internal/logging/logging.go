// Package logging builds the structured loggers used by the commands.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/invaders/internal/config"
)

// New returns a logger writing to w. INVADERS_LOG_LEVEL (debug, info, warn,
// error) overrides the default info level.
func New(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          prefix,
	})

	if name := config.GetEnv("INVADERS_LOG_LEVEL", ""); name != "" {
		level, err := log.ParseLevel(name)
		if err != nil {
			logger.Warn("unknown log level, using info", "level", name)
		} else {
			logger.SetLevel(level)
		}
	}
	return logger
}

// NewFromEnv returns a logger appending to the file named by INVADERS_LOG,
// or one that discards everything when it is unset. Full-screen commands
// use it because the terminal belongs to the game. The returned func
// closes the file.
func NewFromEnv(prefix string) (*log.Logger, func() error, error) {
	path := config.GetEnv("INVADERS_LOG", "")
	if path == "" {
		return New(io.Discard, prefix), func() error { return nil }, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return New(f, prefix), f.Close, nil
}
