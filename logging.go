package main

import (
	"io"
	"log/slog"
	"os"
)

// setupLogger initializes the structured logger. When LOG_FILE is set,
// log lines are mirrored to that file in addition to stdout.
func setupLogger() {
	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	var out io.Writer = os.Stdout
	var fileErr error

	logPath := os.Getenv("LOG_FILE")
	if logPath != "" {
		logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			fileErr = err
		} else {
			out = io.MultiWriter(os.Stdout, logFile)
		}
	}

	handler := slog.NewTextHandler(out, opts)
	logger := slog.New(handler).With("app", "nomadmon")
	slog.SetDefault(logger)

	if fileErr != nil {
		slog.Error("Persistent logging disabled: failed to open log file", "file", logPath, "err", fileErr)
	} else if logPath != "" {
		slog.Info("Persistent logging enabled", "file", logPath)
	}
}
