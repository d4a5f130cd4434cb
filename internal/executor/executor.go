// Package executor provides the concrete batch executors batchd can run
// sealed batches against.
//
// EXECUTORS:
//   - log: processes every task locally by logging it and returning a
//     processed record, useful for development and smoke tests
//   - http: POSTs the whole batch to a remote compute backend and maps its
//     per-task results back onto the batch
//
// Both satisfy batching.Executor and are selected by the daemon's
// --executor flag (or executor.kind in the config file).
package executor

import (
	"fmt"
	"time"

	"github.com/concave-dev/batchd/internal/batching"
	"github.com/concave-dev/batchd/internal/validate"
)

const (
	KindLog  = "log"
	KindHTTP = "http"
)

// Config selects and configures an executor.
type Config struct {
	Kind       string        `json:"kind" mapstructure:"kind" validate:"oneof=log http"`
	URL        string        `json:"url" mapstructure:"url" validate:"required_if=Kind http,omitempty,url"`
	Timeout    time.Duration `json:"timeout" mapstructure:"timeout"`
	RetryCount int           `json:"retry_count" mapstructure:"retry_count" validate:"gte=0,max=10"`
}

// DefaultConfig returns the local log executor with settings that also suit
// the HTTP executor once a URL is provided.
func DefaultConfig() *Config {
	return &Config{
		Kind:       KindLog,
		Timeout:    30 * time.Second,
		RetryCount: 0, // backends are not assumed to be idempotent
	}
}

// Validate checks the executor selection and its settings.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid executor config: %w", err)
	}
	if c.Kind == KindHTTP {
		if err := validate.ValidatePositiveTimeout(c.Timeout, "executor timeout"); err != nil {
			return fmt.Errorf("invalid executor config: %w", err)
		}
	}
	return nil
}

// New builds the executor named by config.Kind.
func New(config *Config) (batching.Executor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Kind {
	case KindLog:
		return NewLogExecutor(), nil
	case KindHTTP:
		return NewHTTPExecutor(config.URL, config.Timeout, config.RetryCount), nil
	default:
		return nil, fmt.Errorf("unknown executor kind: %s", config.Kind)
	}
}
