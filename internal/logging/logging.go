package logging

import (
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
)

// Logger is the global slog instance for the application
var Logger *slog.Logger

// Init initializes the logging system, appending to the file at path
// (usually ~/.todometer/logs/todometer.log). Uses text format for human
// readability. The returned closer releases the file.
func Init(path string, level slog.Level) (io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}

	Setup(file, level)
	return file, nil
}

// Setup points the default slog logger and the standard log package at w
func Setup(w io.Writer, level slog.Level) {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})

	Logger = slog.New(handler)
	slog.SetDefault(Logger)

	// Redirect standard log package output to the same destination
	log.SetOutput(w)
	log.SetFlags(log.LstdFlags)
}
