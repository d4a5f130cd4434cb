// Package api provides the HTTP API server for batchd.
//
// This file defines configuration structures and validation logic for the REST
// API server that fronts the batcher. The server exposes task submission,
// status polling, flush and stats endpoints to batchctl and other clients.
package api

import (
	"fmt"
	"time"

	"github.com/concave-dev/batchd/internal/api/handlers"
	configDefaults "github.com/concave-dev/batchd/internal/config"
	"github.com/concave-dev/batchd/internal/validate"
)

const (
	// DefaultAPIPort is the default port for HTTP API server
	DefaultAPIPort = configDefaults.DefaultAPIPort

	// DefaultMaxStatusWait caps ?wait= long-polls on the task status endpoint.
	// Kept below the server's write timeout.
	DefaultMaxStatusWait = 10 * time.Second
)

// Config holds all configuration parameters required for running the HTTP
// API server.
//
// TODO: Add support for TLS/HTTPS configuration (cert/key files)
type Config struct {
	BindAddr      string               // HTTP server bind address (e.g., "0.0.0.0")
	BindPort      int                  // HTTP server bind port
	MaxStatusWait time.Duration        // Upper bound for status long-polls
	Tasks         handlers.TaskService // Batcher backing the task endpoints
}

// DefaultConfig creates a Config with loopback binding for safer local
// development. The daemon overrides BindAddr from its --api flag and must set
// Tasks.
func DefaultConfig() *Config {
	return &Config{
		BindAddr:      configDefaults.DefaultBindAddr,
		BindPort:      DefaultAPIPort,
		MaxStatusWait: DefaultMaxStatusWait,
		Tasks:         nil, // Must be set by caller
	}
}

// Validate checks network settings and that the task service is wired.
func (c *Config) Validate() error {
	if err := validate.ValidateRequiredString(c.BindAddr, "bind address"); err != nil {
		return err
	}
	if err := validate.ValidatePortRange(c.BindPort); err != nil {
		return fmt.Errorf("bind port validation failed: %w", err)
	}
	if err := validate.ValidatePositiveTimeout(c.MaxStatusWait, "max status wait"); err != nil {
		return err
	}
	if c.Tasks == nil {
		return fmt.Errorf("task service cannot be nil")
	}

	return nil
}
