// Package logging configures the process-wide logrus logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Options selects where and how verbosely to log.
type Options struct {
	Level string
	// File, when set, receives all log output instead of Stderr.
	File string
}

// Setup configures the standard logrus logger. The returned closer
// points the logger back at Stderr and releases the log file, if one was
// opened.
func Setup(opts Options) (io.Closer, error) {
	logger := logrus.StandardLogger()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	level := logrus.InfoLevel
	if opts.Level != "" {
		parsed, err := logrus.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		level = parsed
	}
	logger.SetLevel(level)

	if opts.File == "" {
		logger.SetOutput(os.Stderr)
		return nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	logger.SetOutput(f)
	return &fileCloser{logger: logger, f: f}, nil
}

// fileCloser detaches the logger from f before closing it so late log
// calls do not write to a closed file.
type fileCloser struct {
	logger *logrus.Logger
	f      *os.File
}

func (c *fileCloser) Close() error {
	c.logger.SetOutput(os.Stderr)
	return c.f.Close()
}

// DefaultFile places the log next to the database file.
func DefaultFile(dbPath string) string {
	return filepath.Join(filepath.Dir(dbPath), "codegenome.log")
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
