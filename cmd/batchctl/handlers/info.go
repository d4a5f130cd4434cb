package handlers

import (
	"github.com/concave-dev/batchd/cmd/batchctl/client"
	"github.com/concave-dev/batchd/cmd/batchctl/config"
	"github.com/concave-dev/batchd/cmd/batchctl/display"
	"github.com/concave-dev/batchd/cmd/batchctl/utils"
	"github.com/concave-dev/batchd/internal/logging"
	"github.com/spf13/cobra"
)

// HandleInfo handles `batchctl info`. Stats are best effort: a daemon that
// answers health but not stats still gets an overview.
func HandleInfo(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	logging.Info("Fetching daemon info from API server: %s", config.Global.APIAddr)

	apiClient := client.CreateAPIClient(0)
	health, err := apiClient.GetHealth()
	if err != nil {
		return err
	}

	info := display.Info{APIAddr: config.Global.APIAddr, Health: health}
	if stats, err := apiClient.GetStats(); err != nil {
		logging.Warn("Failed to fetch stats: %v", err)
	} else {
		info.Stats = stats
	}

	display.DisplayInfo(info)
	return nil
}
