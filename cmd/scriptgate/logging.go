package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

// initLogging installs the default logger. SCRIPTGATE_LOG_FILE adds a JSON
// handler next to the stderr text handler.
func initLogging() {
	level := logLevelFromEnv(os.Getenv("SCRIPTGATE_LOG_LEVEL"))
	opts := &slog.HandlerOptions{Level: level}
	handlers := []slog.Handler{slog.NewTextHandler(os.Stderr, opts)}

	if path := strings.TrimSpace(os.Getenv("SCRIPTGATE_LOG_FILE")); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "scriptgate: open log file: %v\n", err)
		} else {
			handlers = append(handlers, slog.NewJSONHandler(f, opts))
		}
	}
	if len(handlers) == 1 {
		slog.SetDefault(slog.New(handlers[0]))
		return
	}
	slog.SetDefault(slog.New(slogmulti.Fanout(handlers...)))
}

func logLevelFromEnv(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
