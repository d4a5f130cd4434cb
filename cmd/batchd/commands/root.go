// Package commands provides the CLI command structure for the batchd daemon.
//
// batchd is a single root command: it loads configuration from flags,
// environment and an optional YAML file, validates it, then runs the daemon
// until SIGINT or SIGTERM triggers a graceful drain.
package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/concave-dev/batchd/cmd/batchd/config"
	"github.com/concave-dev/batchd/cmd/batchd/daemon"
	"github.com/concave-dev/batchd/cmd/batchd/utils"
	"github.com/concave-dev/batchd/internal/logging"
	"github.com/concave-dev/batchd/internal/version"
	"github.com/spf13/cobra"
)

// Global variable to track log file handle for cleanup
var logFileHandle *os.File

// CleanupLogFile closes the log file handle if it exists
func CleanupLogFile() {
	if logFileHandle != nil {
		if err := logFileHandle.Close(); err != nil {
			// Use fmt.Fprintf instead of logging to avoid writing to the closed file
			fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", err)
		}
		logFileHandle = nil
	}
}

// Root command for the batchd daemon
var RootCmd = &cobra.Command{
	Use:   "batchd",
	Short: "Task batching daemon that groups submissions into batches for a compute backend",
	Long: `batchd accepts individual tasks over HTTP, groups them into batches by size
or age, and runs each batch against a compute backend.

Submissions are never blocked: when the queue is full they are rejected with
QueueFull so clients can back off. On SIGINT/SIGTERM every queued task is
flushed and every in-flight batch finishes before the daemon exits.`,
	Version:      version.BatchdVersion,
	SilenceUsage: true, // Don't show usage on errors
	Example: `  # Run locally with the log executor
  batchd

  # Batches of 50 or every 200ms, forwarded to a backend
  batchd --max-batch-size=50 --max-wait=200ms --executor=http --executor-url=http://backend:9000/batch

  # Load settings from a file, overriding one via the environment
  BATCHD_BATCHING_QUEUE_CAPACITY=5000 batchd --config=/etc/batchd.yaml`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Display logo first, before any validation or logging
		utils.DisplayLogo(version.BatchdVersion)
	},
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(cmd.Flags()); err != nil {
			return err
		}

		// Setup log file redirection if a log file was configured
		if config.Global.LogFile != "" {
			logDir := filepath.Dir(config.Global.LogFile)
			if err := os.MkdirAll(logDir, 0755); err != nil {
				return fmt.Errorf("failed to create log directory %s: %w", logDir, err)
			}

			var err error
			logFileHandle, err = os.OpenFile(config.Global.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err != nil {
				return fmt.Errorf("failed to open log file %s: %w", config.Global.LogFile, err)
			}

			logging.SetOutput(logFileHandle)
		}

		// Libraries that use the standard logger end up in the same stream
		logging.RedirectStandardLog(logging.NewLevelWriter("WARN", "stdlib"))

		config.InitializeConfig()
		logging.SetLevel(config.Global.LogLevel)

		if err := config.ValidateConfig(); err != nil {
			// Close log file handle if validation fails to prevent resource leak
			CleanupLogFile()
			return err
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		defer CleanupLogFile()
		return daemon.Run()
	},
}

// SetupCommands initializes all commands and their relationships
func SetupCommands() {
	SetupFlags(RootCmd)
}
