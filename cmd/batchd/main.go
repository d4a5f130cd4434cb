// Package main implements the batchd daemon.
//
// batchd sits in front of a batch compute backend: it admits individual tasks
// over HTTP, forms them into batches and dispatches each batch to an executor,
// resolving every task with exactly one outcome.
package main

import (
	"os"

	"github.com/concave-dev/batchd/cmd/batchd/commands"
)

// Main entry point
func main() {
	commands.SetupCommands()

	if err := commands.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
