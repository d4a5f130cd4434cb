// Package config provides configuration management for the batchd daemon.
//
// Configuration comes from three layers, highest precedence first:
//
//   - Command line flags explicitly set by the user
//   - BATCHD_ environment variables (BATCHD_API, BATCHD_BATCHING_MAX_WAIT, ...)
//   - An optional YAML file passed with --config or BATCHD_CONFIG
//
// Flag defaults fill anything none of the layers set. All layers are merged by
// viper and decoded into Global through the mapstructure tags on Config and on
// the batching and executor config structs it embeds.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/concave-dev/batchd/internal/batching"
	configDefaults "github.com/concave-dev/batchd/internal/config"
	"github.com/concave-dev/batchd/internal/executor"
	"github.com/concave-dev/batchd/internal/logging"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultAPI      = configDefaults.DefaultBindAddr + ":8008" // Default API address
	DefaultLogLevel = configDefaults.DefaultLogLevel           // Default log level
)

// Config holds all daemon configuration values
type Config struct {
	APIAddr         string        `mapstructure:"api"`              // HTTP API "host:port", split into APIAddr/APIPort by validation
	APIPort         int           `mapstructure:"-"`                // HTTP API port (derived from APIAddr)
	LogLevel        string        `mapstructure:"log_level"`        // Log level: DEBUG, INFO, WARN, ERROR
	LogFile         string        `mapstructure:"log_file"`         // Optional log file, stdout/stderr when empty
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"` // Upper bound on the drain at shutdown
	MaxStatusWait   time.Duration `mapstructure:"max_status_wait"`  // Cap for GET /tasks/:id?wait=

	ConfigFile string `mapstructure:"-"` // Path given with --config

	Batching batching.Config `mapstructure:"batching"`
	Executor executor.Config `mapstructure:"executor"`
}

// Global configuration instance
var Global Config

// FlagKeys maps daemon flag names to their viper keys. Nested keys are also
// the YAML paths and, upper-cased with "." replaced by "_", the env suffixes.
var FlagKeys = map[string]string{
	"api":              "api",
	"log-level":        "log_level",
	"log-file":         "log_file",
	"shutdown-timeout": "shutdown_timeout",
	"max-status-wait":  "max_status_wait",

	"queue-capacity":       "batching.queue_capacity",
	"max-batch-size":       "batching.max_batch_size",
	"max-wait":             "batching.max_wait",
	"max-inflight-batches": "batching.max_inflight_batches",
	"result-retention":     "batching.result_retention",

	"executor":         "executor.kind",
	"executor-url":     "executor.url",
	"executor-timeout": "executor.timeout",
	"executor-retries": "executor.retry_count",
}

// Load merges flags, environment and the optional config file into Global.
// Values are not validated here; ValidateConfig runs afterwards.
func Load(flags *pflag.FlagSet) error {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(configDefaults.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	for name, key := range FlagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag --%s: %w", name, err)
		}
	}

	path := Global.ConfigFile
	if path == "" {
		path = os.Getenv(configDefaults.EnvPrefix + "_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		Global.ConfigFile = path
		logging.Info("Loaded config file %s", v.ConfigFileUsed())
	}

	if err := v.Unmarshal(&Global); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}
	return nil
}
