package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/nfrund/enroll/internal/config"
	"github.com/nfrund/enroll/internal/logging"
	"github.com/nfrund/enroll/internal/server"
)

func main() {
	// Load .env and the environment before anything else; slog is not configured yet.
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logging.New(cfg.LogFormat, cfg.LogLevel)

	// Create a new server instance.
	s, err := server.New(cfg)
	if err != nil {
		slog.Error("Failed to initialize server", "error", err)
		os.Exit(1)
	}

	// Register all application routes.
	s.RegisterRoutes()

	// Start the server.
	s.Start(cfg.Addr)
}
