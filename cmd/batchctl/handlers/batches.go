package handlers

import (
	"github.com/concave-dev/batchd/cmd/batchctl/client"
	"github.com/concave-dev/batchd/cmd/batchctl/config"
	"github.com/concave-dev/batchd/cmd/batchctl/display"
	"github.com/concave-dev/batchd/cmd/batchctl/utils"
	"github.com/concave-dev/batchd/internal/logging"
	"github.com/spf13/cobra"
)

// HandleFlush handles `batchctl flush`.
func HandleFlush(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	logging.Info("Flushing pending tasks on API server: %s", config.Global.APIAddr)

	apiClient := client.CreateAPIClient(0)
	res, err := apiClient.Flush()
	if err != nil {
		return err
	}

	display.DisplayFlush(res)
	logging.Success("Flushed %d tasks into %d batches", res.Tasks, res.Batches)
	return nil
}

// HandleStats handles `batchctl stats [--watch]`.
func HandleStats(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	apiClient := client.CreateAPIClient(0)
	fetchAndDisplayStats := func() error {
		logging.Info("Fetching stats from API server: %s", config.Global.APIAddr)

		stats, err := apiClient.GetStats()
		if err != nil {
			return err
		}

		display.DisplayStats(stats)
		return nil
	}

	return utils.RunWithWatch(fetchAndDisplayStats, config.Stats.Watch)
}
