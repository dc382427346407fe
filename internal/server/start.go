package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const shutdownTimeout = 10 * time.Second

// Start runs the HTTP server until an interrupt or terminate signal arrives, then shuts down gracefully.
func (s *Server) Start(addr string) {
	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		slog.Info("Starting server", "addr", addr, "account_api", s.Cfg.AccountAPIProvider)
		if err := s.E.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server stopped unexpectedly", "error", err)
			stopSignals()
		}
	}()

	<-sigCtx.Done()
	slog.Info("Shutting down", "timeout", shutdownTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}

// Shutdown stops accepting requests, then stops the wizard sweeper and closes the event bus.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.E.Shutdown(ctx)
	s.Store.Shutdown()
	s.stop()
	if cerr := s.Bus.Close(); cerr != nil {
		err = errors.Join(err, cerr)
	}
	slog.Info("Server stopped", "wizards_in_memory", s.Store.Len())
	return err
}
