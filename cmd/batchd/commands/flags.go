// Package commands contains Cobra CLI command definitions for batchd.
package commands

import (
	"github.com/concave-dev/batchd/cmd/batchd/config"
	"github.com/concave-dev/batchd/internal/api"
	"github.com/concave-dev/batchd/internal/batching"
	configDefaults "github.com/concave-dev/batchd/internal/config"
	"github.com/concave-dev/batchd/internal/executor"
	"github.com/spf13/cobra"
)

// SetupFlags configures all command line flags for the daemon. Every flag
// except --config has a key in config.FlagKeys and can also come from the
// environment or the config file.
func SetupFlags(cmd *cobra.Command) {
	batchDefaults := batching.DefaultConfig()
	execDefaults := executor.DefaultConfig()

	cmd.Flags().StringVar(&config.Global.ConfigFile, "config", "",
		"Path to a YAML config file (or set BATCHD_CONFIG)")

	// API flags
	cmd.Flags().String("api", config.DefaultAPI,
		"Address and port for HTTP API server (e.g., 0.0.0.0:8008)")
	cmd.Flags().Duration("max-status-wait", api.DefaultMaxStatusWait,
		"Longest ?wait= a task status request may block")

	// Batching flags
	cmd.Flags().Int("queue-capacity", batchDefaults.QueueCapacity,
		"Maximum number of tasks waiting to be dispatched before submissions get QueueFull")
	cmd.Flags().Int("max-batch-size", batchDefaults.MaxBatchSize,
		"Seal a batch as soon as this many tasks are pending")
	cmd.Flags().Duration("max-wait", batchDefaults.MaxWait,
		"Seal a partial batch this long after its first task arrived")
	cmd.Flags().Int("max-inflight-batches", batchDefaults.MaxInflightBatches,
		"Reject submissions with QueueFull while this many batches are executing (0 = unlimited)")
	cmd.Flags().Int("result-retention", batchDefaults.ResultRetention,
		"Number of finished task results kept for status lookups")

	// Executor flags
	cmd.Flags().String("executor", execDefaults.Kind,
		"Batch executor: log (process locally) or http (POST batches to --executor-url)")
	cmd.Flags().String("executor-url", execDefaults.URL,
		"Backend URL for the http executor")
	cmd.Flags().Duration("executor-timeout", execDefaults.Timeout,
		"Per-batch request timeout for the http executor")
	cmd.Flags().Int("executor-retries", execDefaults.RetryCount,
		"Connection retries for the http executor (only safe for idempotent backends)")

	// Operational flags
	cmd.Flags().String("log-level", configDefaults.DefaultLogLevel,
		"Log level: DEBUG, INFO, WARN, ERROR")
	cmd.Flags().String("log-file", "",
		"Write logs to this file instead of stdout/stderr")
	cmd.Flags().Duration("shutdown-timeout", configDefaults.DefaultShutdownTimeout,
		"How long to wait for queued and in-flight tasks to finish on shutdown")
}
