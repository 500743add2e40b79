// Package main is the entry point for the python-sandbox server. It reads
// configuration, builds the logger, and hands off to internal/server —
// all actual logic lives in the imported packages.
package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sakif/python-sandbox/internal/config"
	"github.com/sakif/python-sandbox/internal/server"
)

func main() {
	logLevel := slog.LevelInfo
	if os.Getenv("SANDBOX_DEBUG") != "" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// The database lives in a subdirectory by default; create it up front
	// so sqlite.New does not fail on a missing parent.
	if dbDir := filepath.Dir(cfg.Storage.DBPath); dbDir != "." {
		if err := os.MkdirAll(dbDir, 0o755); err != nil {
			logger.Error("failed to create database directory",
				slog.String("dir", dbDir),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start blocks until the server is shut down (Ctrl+C or SIGTERM).
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
