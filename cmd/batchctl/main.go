// Package main provides the entry point for the batchd CLI tool (batchctl).
//
// INITIALIZATION FLOW:
// 1. Command structure setup
// 2. Global and command-specific flags
// 3. Handler assignment linking commands to API operations
// 4. Global flag validation before every command
package main

import (
	"os"

	"github.com/concave-dev/batchd/cmd/batchctl/commands"
	"github.com/concave-dev/batchd/cmd/batchctl/config"
	"github.com/concave-dev/batchd/cmd/batchctl/handlers"
)

func init() {
	rootCmd := commands.RootCmd

	rootCmd.Version = config.Version
	rootCmd.PersistentPreRunE = config.ValidateGlobalFlags

	commands.SetupCommands()

	commands.SetupGlobalFlags(rootCmd, &config.Global.APIAddr, &config.Global.LogLevel,
		&config.Global.Timeout, &config.Global.Verbose, &config.Global.Output,
		config.DefaultAPIAddr, config.DefaultLogLevel)

	taskSubmitCmd, taskStatusCmd := commands.GetTaskCommands()
	commands.SetupTaskFlags(taskSubmitCmd, taskStatusCmd, &config.Task.Data, &config.Task.JSONData,
		&config.Task.Wait, &config.Task.WaitFor, config.DefaultWait)

	statsCmd, _, _ := commands.GetStatsCommands()
	commands.SetupStatsFlags(statsCmd, &config.Stats.Watch)

	setupCommandHandlers()
}

// setupCommandHandlers assigns RunE functions to commands
func setupCommandHandlers() {
	taskSubmitCmd, taskStatusCmd := commands.GetTaskCommands()
	statsCmd, flushCmd, infoCmd := commands.GetStatsCommands()

	taskSubmitCmd.RunE = handlers.HandleTaskSubmit
	taskStatusCmd.RunE = handlers.HandleTaskStatus
	statsCmd.RunE = handlers.HandleStats
	flushCmd.RunE = handlers.HandleFlush
	infoCmd.RunE = handlers.HandleInfo
}

// main is the main entry point
func main() {
	if err := commands.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
