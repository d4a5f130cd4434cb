// Package config provides common default configuration values shared by the
// batchd daemon and the batchctl CLI.
package config

import "time"

const (
	// DefaultBindAddr is the default bind address for the HTTP API.
	// Loopback keeps a development daemon off the network until --api says otherwise.
	DefaultBindAddr = "127.0.0.1"

	// DefaultAPIPort is the default HTTP API port
	DefaultAPIPort = 8008

	// DefaultLogLevel is the default log level for all components
	DefaultLogLevel = "INFO"

	// EnvPrefix prefixes every environment variable the daemon reads
	// (BATCHD_API, BATCHD_BATCHING_MAX_WAIT, ...)
	EnvPrefix = "BATCHD"

	// DefaultShutdownTimeout bounds the drain on SIGINT/SIGTERM
	DefaultShutdownTimeout = 30 * time.Second
)
