// Command bran runs the aggregator-planner: an HTTP ingress server in
// front of the in-memory application register, and a reconciliation
// planner loop that periodically dispatches corrective orders to the
// downstream executor.
//
// Grounded on original_source/bran/src/main.rs (one task serving HTTP, one
// task running the planner loop, both sharing the register) and keda's
// cmd/operator/main.go for process wiring (logger setup, graceful
// shutdown via a cancellable context).
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ChipDepot/Bran/internal/api"
	"github.com/ChipDepot/Bran/internal/config"
	"github.com/ChipDepot/Bran/internal/logging"
	"github.com/ChipDepot/Bran/internal/planner"
	"github.com/ChipDepot/Bran/internal/register"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	development := os.Getenv("BRAN_DEV_LOGS") != ""
	logger, sync, err := logging.New(development)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer sync() //nolint:errcheck // best-effort flush on exit

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := register.New()

	handler := api.New(reg, logger.WithName("api")).Router()
	server := &http.Server{
		Addr:    fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		Handler: handler,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("initializing server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	loop := &planner.Loop{
		Register:     reg,
		Dispatcher:   planner.NewDispatcher(cfg.ExecutorBaseURL, &http.Client{Timeout: 30 * time.Second}),
		Memory:       planner.NewRemediationMemory(),
		Logger:       logger.WithName("planner"),
		InitialDelay: cfg.WatcherDelay,
		Interval:     cfg.WatcherInterval,
	}

	loopDone := make(chan struct{})
	go func() {
		loop.Run(ctx)
		close(loopDone)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Error(err, "server could not start")
			stop()
			return fmt.Errorf("serve: %w", err)
		}
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error(err, "error during server shutdown")
	}

	<-loopDone
	return nil
}
