package main

import (
	"log"
	"log/slog"
	"os"

	"communication-service/logger"
	"communication-service/src/config"
	"communication-service/src/server"
)

// @title Communication Session Service API
// @version 1.0
// @description Session lifecycle service for case voice/video calls

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg.LogLevel)

	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	if err := srv.Run(); err != nil {
		os.Exit(1)
	}
}

func setupLogging(level string) {
	logger.Init(level)

	slogLevel := slog.LevelInfo
	switch level {
	case "debug":
		slogLevel = slog.LevelDebug
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slogLevel,
	})))
}
