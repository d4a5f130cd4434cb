package commands

import (
	"github.com/spf13/cobra"
)

// Stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show queue, batch and outcome statistics",
	Long: `Show queue depth and capacity, in-flight batches, batches formed by
trigger (size, time, flush, shutdown), task outcomes and rejections by reason.`,
	Example: `  # One-off snapshot
  batchctl stats

  # Live view refreshed every 2 seconds
  batchctl stats --watch`,
	Args: cobra.NoArgs,
}

// Flush command
var flushCmd = &cobra.Command{
	Use:   "flush",
	Short: "Seal all pending tasks into batches now",
	Long: `Seal every pending task into batches immediately instead of waiting for
the size or time trigger. Batches keep forming on their own either way.`,
	Args: cobra.NoArgs,
}

// Info command
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show daemon information",
	Long:  `Show daemon version, health, uptime and a summary of batching activity.`,
	Example: `  # Show daemon information
  batchctl info

  # From a specific API server, as JSON
  batchctl --api=10.0.0.5:8008 -o json info`,
	Args: cobra.NoArgs,
}

// GetStatsCommands returns the stats, flush and info commands for flag and handler setup
func GetStatsCommands() (*cobra.Command, *cobra.Command, *cobra.Command) {
	return statsCmd, flushCmd, infoCmd
}

// SetupStatsFlags configures flags for the stats command
func SetupStatsFlags(statsCmd *cobra.Command, watchPtr *bool) {
	statsCmd.Flags().BoolVarP(watchPtr, "watch", "w", false,
		"Watch for live updates")
}
