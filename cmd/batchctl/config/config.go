// Package config provides configuration management for the batchctl CLI.
package config

import (
	"fmt"
	"time"

	configDefaults "github.com/concave-dev/batchd/internal/config"
	"github.com/concave-dev/batchd/internal/version"
)

// DefaultAPIAddr is the default API server address (routable)
var DefaultAPIAddr = fmt.Sprintf("%s:%d", configDefaults.DefaultBindAddr, configDefaults.DefaultAPIPort)

const (
	DefaultLogLevel = "ERROR" // CLI only shows errors unless asked otherwise

	// DefaultWait is how long `task submit --wait` and `task status --wait`
	// block for a terminal result
	DefaultWait = 10 * time.Second
)

// Version returns the current batchctl CLI version from the centralized version package
var Version = version.BatchctlVersion

// Global holds the global CLI configuration
var Global struct {
	APIAddr  string // Address of batchd API server to connect to
	LogLevel string // Log level for CLI operations
	Timeout  int    // Connection timeout in seconds
	Verbose  bool   // Show verbose output
	Output   string // Output format: table, json
}

// Task holds the task command configuration
var Task struct {
	Data     []string      // task_data entries in key=value form
	JSONData string        // task_data as a raw JSON object
	Wait     bool          // Block until the task reaches a terminal status
	WaitFor  time.Duration // Upper bound for --wait
}

// Stats holds the stats command configuration
var Stats struct {
	Watch bool // Enable watch mode for live updates
}
