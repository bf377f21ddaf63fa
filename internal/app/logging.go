package app

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// SetupLogging routes the standard logger. An empty path discards output,
// "-" keeps stderr, anything else appends to that file. The returned closer
// is nil unless a file was opened.
func SetupLogging(path string) (io.Closer, error) {
	switch path {
	case "":
		log.SetOutput(io.Discard)
		return nil, nil
	case "-":
		log.SetOutput(os.Stderr)
		return nil, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(f)
	return f, nil
}

// NewLogger returns a logger writing to the standard logger's current output
// with the given component prefix.
func NewLogger(component string) *log.Logger {
	return log.New(log.Writer(), component+": ", log.LstdFlags)
}
