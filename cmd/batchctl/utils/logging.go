// Package utils provides utility functions for the batchctl CLI.
package utils

import (
	"os"

	"github.com/concave-dev/batchd/cmd/batchctl/config"
	"github.com/concave-dev/batchd/internal/logging"
)

// SetupLogging configures CLI logging behavior based on environment and config.
// Enables debug output when DEBUG=true or --verbose, otherwise suppresses
// everything below the configured level so command output stays clean.
func SetupLogging() {
	if os.Getenv("DEBUG") == "true" {
		logging.RestoreOutput()
		logging.SetLevel("DEBUG")
		return
	}

	if config.Global.Verbose {
		logging.RestoreOutput()
		logging.SetLevel("INFO")
		return
	}

	logging.SuppressOutput()
	logging.SetLevel(config.Global.LogLevel)
}
