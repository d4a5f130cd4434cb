package config

import (
	"strings"
	"testing"
	"time"

	"github.com/concave-dev/batchd/internal/batching"
	"github.com/concave-dev/batchd/internal/executor"
)

func validConfig() Config {
	return Config{
		APIAddr:         "127.0.0.1:8008",
		LogLevel:        "INFO",
		ShutdownTimeout: 30 * time.Second,
		MaxStatusWait:   10 * time.Second,
		Batching:        *batching.DefaultConfig(),
		Executor:        *executor.DefaultConfig(),
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(c *Config)
		errorContains string
	}{
		{
			name:   "defaults_ok",
			mutate: func(c *Config) {},
		},
		{
			name:   "wildcard_api_ok",
			mutate: func(c *Config) { c.APIAddr = "0.0.0.0:9000" },
		},
		{
			name:          "api_missing_port",
			mutate:        func(c *Config) { c.APIAddr = "127.0.0.1" },
			errorContains: "invalid API address",
		},
		{
			name:          "api_port_zero",
			mutate:        func(c *Config) { c.APIAddr = "127.0.0.1:0" },
			errorContains: "Port must be at least 1",
		},
		{
			name:          "api_hostname_rejected",
			mutate:        func(c *Config) { c.APIAddr = "localhost:8008" },
			errorContains: "invalid API address",
		},
		{
			name:          "bad_log_level",
			mutate:        func(c *Config) { c.LogLevel = "TRACE" },
			errorContains: "invalid log level",
		},
		{
			name:          "zero_shutdown_timeout",
			mutate:        func(c *Config) { c.ShutdownTimeout = 0 },
			errorContains: "shutdown timeout",
		},
		{
			name:          "zero_status_wait",
			mutate:        func(c *Config) { c.MaxStatusWait = 0 },
			errorContains: "max status wait",
		},
		{
			name:          "zero_queue_capacity",
			mutate:        func(c *Config) { c.Batching.QueueCapacity = 0 },
			errorContains: "invalid batching config",
		},
		{
			name:   "long_max_wait_ok",
			mutate: func(c *Config) { c.Batching.MaxWait = 2 * time.Minute },
		},
		{
			name:          "zero_max_wait",
			mutate:        func(c *Config) { c.Batching.MaxWait = 0 },
			errorContains: "invalid batching config",
		},
		{
			name:          "http_executor_without_url",
			mutate:        func(c *Config) { c.Executor.Kind = executor.KindHTTP },
			errorContains: "invalid executor config",
		},
		{
			name: "http_executor_with_url_ok",
			mutate: func(c *Config) {
				c.Executor.Kind = executor.KindHTTP
				c.Executor.URL = "http://backend:9000/batch"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Global = validConfig()
			tt.mutate(&Global)

			err := ValidateConfig()
			if tt.errorContains == "" {
				if err != nil {
					t.Fatalf("ValidateConfig() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("ValidateConfig() expected error containing %q", tt.errorContains)
			}
			if !strings.Contains(err.Error(), tt.errorContains) {
				t.Errorf("ValidateConfig() error = %q, want substring %q", err.Error(), tt.errorContains)
			}
		})
	}
}

func TestValidateConfig_SplitsAPIAddress(t *testing.T) {
	Global = validConfig()
	Global.APIAddr = "0.0.0.0:9123"

	if err := ValidateConfig(); err != nil {
		t.Fatalf("ValidateConfig() error = %v", err)
	}
	if Global.APIAddr != "0.0.0.0" || Global.APIPort != 9123 {
		t.Errorf("APIAddr/APIPort = %s/%d, want 0.0.0.0/9123", Global.APIAddr, Global.APIPort)
	}
}

func TestInitializeConfig_DebugOverride(t *testing.T) {
	Global = validConfig()
	t.Setenv("DEBUG", "true")

	InitializeConfig()

	if Global.LogLevel != "DEBUG" {
		t.Errorf("LogLevel = %q, want DEBUG", Global.LogLevel)
	}
}
