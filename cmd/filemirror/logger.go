package main

import (
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"filemirror/internal/config"
	"filemirror/internal/util/logger/handlers/slogmulti"
	"filemirror/internal/util/logger/handlers/slogpretty"
)

// setupLogger builds the console logger for env and, when logFile is set,
// tees every record into a size-rotated JSON file.
func setupLogger(env, logFile string) (*slog.Logger, *lumberjack.Logger) {
	var handler slog.Handler

	switch env {
	case config.EnvDev:
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	case config.EnvProd:
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		handler = setupPrettyHandler()
	}

	if logFile == "" {
		return slog.New(handler), nil
	}

	rotator := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}

	fileHandler := slog.NewJSONHandler(rotator, &slog.HandlerOptions{Level: slog.LevelDebug})

	return slog.New(slogmulti.New(handler, fileHandler)), rotator
}

func setupPrettyHandler() slog.Handler {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	return opts.NewPrettyHandler(os.Stdout)
}
