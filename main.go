package main

import (
	"log/slog"
	"os"
	"strings"

	"AnnotationBoard/internal/ui"
)

func main() {
	level := slog.LevelInfo
	switch strings.ToLower(os.Getenv("ANNOTATION_LOG")) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	var path string
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	slog.Info("starting", "image", path)
	ui.RunApp(path)
}
