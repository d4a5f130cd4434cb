package batching

import (
	"fmt"
	"time"

	"github.com/concave-dev/batchd/internal/validate"
)

// Config holds all configuration parameters for the batching core. Defines
// queue capacity, batch triggers, and the optional in-flight ceiling used for
// admission backpressure.
//
// The mapstructure tags match the keys accepted by the daemon's config file
// and BATCHD_ environment variables.
type Config struct {
	// Queue capacity settings
	QueueCapacity int `json:"queue_capacity" mapstructure:"queue_capacity" validate:"gt=0,max=1000000"` // Max pending (not yet dispatched) tasks

	// Batch triggers
	MaxBatchSize int           `json:"max_batch_size" mapstructure:"max_batch_size" validate:"gt=0,max=100000"` // Size trigger
	MaxWait      time.Duration `json:"max_wait" mapstructure:"max_wait"`                                        // Time trigger, measured from the first item

	// Backpressure
	MaxInflightBatches int `json:"max_inflight_batches" mapstructure:"max_inflight_batches" validate:"gte=0"` // 0 = unlimited

	// Number of finished results kept for status lookups
	ResultRetention int `json:"result_retention" mapstructure:"result_retention" validate:"gt=0"`
}

// DefaultConfig returns a Config with defaults suited to a single daemon in
// front of a batch backend: small batches formed quickly, with enough queue
// depth to absorb short bursts.
func DefaultConfig() *Config {
	return &Config{
		QueueCapacity:      1000,
		MaxBatchSize:       10,
		MaxWait:            500 * time.Millisecond,
		MaxInflightBatches: 0,
		ResultRetention:    10000,
	}
}

// Validate checks every parameter the batching core depends on so that a bad
// value fails at startup instead of stalling the former or the queue.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("batching config is nil")
	}
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid batching config: %w", err)
	}
	if err := validate.ValidatePositiveTimeout(c.MaxWait, "max_wait"); err != nil {
		return fmt.Errorf("invalid batching config: %w", err)
	}
	return nil
}
