// Package daemon provides batchd startup and graceful shutdown.
//
// STARTUP ORDER:
//  1. Build the executor and the batcher from validated config
//  2. Pre-bind the API listener so a port conflict fails before any task is accepted
//  3. Start the batcher, then the HTTP API
//
// SHUTDOWN ORDER (SIGINT/SIGTERM):
//  1. Drain the batcher: new submissions get ShuttingDown, queued tasks are
//     flushed, in-flight batches finish. The API stays up so clients can
//     collect results and health reports draining.
//  2. Shut down the HTTP API
//
// A second signal during the drain abandons it.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/concave-dev/batchd/cmd/batchd/config"
	"github.com/concave-dev/batchd/internal/api"
	"github.com/concave-dev/batchd/internal/batching"
	"github.com/concave-dev/batchd/internal/executor"
	"github.com/concave-dev/batchd/internal/logging"
	"github.com/concave-dev/batchd/internal/netutil"
)

// apiShutdownTimeout bounds HTTP shutdown after the drain completed
const apiShutdownTimeout = 5 * time.Second

// buildAPIConfig converts daemon config to API config
func buildAPIConfig(tasks *batching.Batcher) *api.Config {
	apiConfig := api.DefaultConfig()

	apiConfig.BindAddr = config.Global.APIAddr
	apiConfig.BindPort = config.Global.APIPort
	apiConfig.MaxStatusWait = config.Global.MaxStatusWait
	apiConfig.Tasks = tasks

	return apiConfig
}

// Run starts the daemon and blocks until a shutdown signal has been handled.
func Run() error {
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	return run(sigCh)
}

func run(sigCh <-chan os.Signal) error {
	logging.Info("Starting batchd (executor=%s)", config.Global.Executor.Kind)

	exec, err := executor.New(&config.Global.Executor)
	if err != nil {
		return fmt.Errorf("failed to create executor: %w", err)
	}

	batcher, err := batching.New(&config.Global.Batching, exec)
	if err != nil {
		return fmt.Errorf("failed to create batcher: %w", err)
	}

	listener, err := netutil.BindTCP(config.Global.APIAddr, config.Global.APIPort)
	if err != nil {
		var inUse *netutil.AddressInUseError
		if errors.As(err, &inUse) {
			logging.Error("TIP: Another batchd may already be running; choose a different port with --api")
		}
		return fmt.Errorf("failed to bind API listener: %w", err)
	}

	apiServer, err := api.NewServerWithListener(buildAPIConfig(batcher), listener)
	if err != nil {
		listener.Close() // Clean up pre-bound listener on error
		return fmt.Errorf("failed to create API server: %w", err)
	}

	batcher.Start()

	if err := apiServer.Start(); err != nil {
		drainCtx, cancel := context.WithTimeout(context.Background(), config.Global.ShutdownTimeout)
		defer cancel()
		_ = batcher.DrainAndStop(drainCtx)
		return fmt.Errorf("failed to start API server: %w", err)
	}

	logging.Success("batchd started successfully")
	logging.Info("  - HTTP API: %s", listener.Addr())
	logging.Info("  - Batching: max_batch_size=%d max_wait=%s queue_capacity=%d",
		config.Global.Batching.MaxBatchSize, config.Global.Batching.MaxWait, config.Global.Batching.QueueCapacity)
	logging.Info("Daemon running... Press Ctrl+C to shutdown")

	sig := <-sigCh
	logging.Info("Received signal: %v", sig)
	logging.Info("Initiating graceful shutdown...")

	drainCtx, cancelDrain := context.WithTimeout(context.Background(), config.Global.ShutdownTimeout)
	defer cancelDrain()

	go func() {
		select {
		case sig := <-sigCh:
			logging.Warn("Received second signal (%v), abandoning drain", sig)
			cancelDrain()
		case <-drainCtx.Done():
		}
	}()

	drainErr := batcher.DrainAndStop(drainCtx)
	if drainErr != nil {
		stats := batcher.Stats()
		logging.Error("Drain incomplete: %v (%d tasks queued, %d batches in flight)",
			drainErr, stats.QueueDepth, stats.InflightBatches)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), apiShutdownTimeout)
	defer cancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		logging.Error("Error shutting down API server: %v", err)
	}

	if drainErr != nil {
		return drainErr
	}

	logging.Success("batchd shutdown completed")
	return nil
}
