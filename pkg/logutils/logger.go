// Package logutils builds the application's zerolog logger.
package logutils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// New builds a logger at the given level. With a file path, JSON log lines go
// to that file and parent directories are created as needed; with an empty
// path, lines go to stdout. The returned func closes the log file.
//
// Accepted levels are the zerolog names: trace, debug, info, warn, error,
// fatal, panic.
func New(level, file string) (zerolog.Logger, func(), error) {
	closer := func() {}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, closer, fmt.Errorf("parse log level: %w", err)
	}

	var w io.Writer = os.Stdout
	if file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			return zerolog.Logger{}, closer, fmt.Errorf("create log dir: %w", err)
		}

		f, err := os.Create(file)
		if err != nil {
			return zerolog.Logger{}, closer, fmt.Errorf("open log file: %w", err)
		}
		closer = func() { _ = f.Close() }
		w = f
	}

	logger := zerolog.New(w).With().Timestamp().Logger().Level(lvl)
	return logger, closer, nil
}
