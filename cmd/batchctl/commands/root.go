// Package commands provides the command tree for batchctl.
//
// COMMAND STRUCTURE:
//   - task submit / task status: submit work and follow it to a result
//   - flush: seal pending tasks into batches now
//   - stats: queue, batch and outcome counters (with --watch)
//   - info: daemon overview
package commands

import (
	"github.com/spf13/cobra"
)

// Root command
var RootCmd = &cobra.Command{
	Use:   "batchctl",
	Short: "CLI tool for submitting tasks to and inspecting a batchd daemon",
	Long: `batchctl talks to a batchd daemon over its HTTP API.

Submit tasks, follow them to their results, force pending tasks into
batches, and watch queue and batch statistics.`,
	SilenceUsage: true,
	Example: `  # Submit a task and wait for its result
  batchctl task submit resize --data width=100 --data format=png --wait

  # Check on a task later
  batchctl task status 3f1c9a2e-...

  # Watch batching statistics
  batchctl stats --watch

  # Seal whatever is pending right now
  batchctl flush

  # Talk to a remote daemon, JSON output
  batchctl --api=10.0.0.5:8008 -o json info`,
}

// SetupCommands initializes all commands and their relationships
func SetupCommands() {
	RootCmd.AddCommand(taskCmd)
	RootCmd.AddCommand(flushCmd)
	RootCmd.AddCommand(statsCmd)
	RootCmd.AddCommand(infoCmd)

	taskCmd.AddCommand(taskSubmitCmd)
	taskCmd.AddCommand(taskStatusCmd)
}

// SetupGlobalFlags configures all global persistent flags
func SetupGlobalFlags(rootCmd *cobra.Command, apiAddrPtr *string, logLevelPtr *string,
	timeoutPtr *int, verbosePtr *bool, outputPtr *string, defaultAPIAddr, defaultLogLevel string) {
	rootCmd.PersistentFlags().StringVar(apiAddrPtr, "api", defaultAPIAddr,
		"batchd API server address")
	rootCmd.PersistentFlags().StringVar(logLevelPtr, "log-level", defaultLogLevel,
		"Log level: DEBUG, INFO, WARN, ERROR")
	rootCmd.PersistentFlags().IntVar(timeoutPtr, "timeout", 8,
		"Connection timeout in seconds")
	rootCmd.PersistentFlags().BoolVarP(verbosePtr, "verbose", "v", false,
		"Show verbose output")
	rootCmd.PersistentFlags().StringVarP(outputPtr, "output", "o", "table",
		"Output format: table, json")
}
