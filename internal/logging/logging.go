// Package logging holds the launcher's structured logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/vstratful/openrouter-launcher/internal/config"
)

// Logger is discarded until Setup enables it. The TUI owns the terminal, so
// logs never go to stdout or stderr.
var Logger = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.InfoLevel)
	return l
}

// DefaultPath returns <config dir>/launcher.log.
func DefaultPath() (string, error) {
	dir, err := config.GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "launcher.log"), nil
}

// Setup points Logger at path with debug level when debug is set. The
// returned function closes the log file.
func Setup(debug bool, path string) (func() error, error) {
	if !debug {
		Logger.SetOutput(io.Discard)
		Logger.SetLevel(logrus.InfoLevel)
		return func() error { return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	Logger.SetOutput(f)
	Logger.SetLevel(logrus.DebugLevel)
	return func() error {
		Logger.SetOutput(io.Discard)
		return f.Close()
	}, nil
}
