package config

import (
	"fmt"
	"os"

	"github.com/concave-dev/batchd/internal/logging"
	"github.com/concave-dev/batchd/internal/validate"
)

// InitializeConfig applies environment overrides that are not part of the
// BATCHD_ namespace.
func InitializeConfig() {
	// Initialize DEBUG environment variable override
	if os.Getenv("DEBUG") == "true" {
		Global.LogLevel = "DEBUG"
		logging.Info("DEBUG environment variable detected, setting log level to DEBUG")
	}
}

// ValidateConfig validates and normalizes every daemon setting before any
// component is built. The API address is split into APIAddr and APIPort;
// port 0 is refused since batchctl needs a predictable address.
func ValidateConfig() error {
	if err := logging.ValidateLogLevel(Global.LogLevel); err != nil {
		return err
	}

	apiNetAddr, err := validate.ParseBindAddress(Global.APIAddr)
	if err != nil {
		logging.Error("Invalid API address '%s': %v", Global.APIAddr, err)
		return fmt.Errorf("invalid API address: %w", err)
	}

	Global.APIAddr = apiNetAddr.Host
	Global.APIPort = apiNetAddr.Port

	if err := validate.ValidatePositiveTimeout(Global.ShutdownTimeout, "shutdown timeout"); err != nil {
		return err
	}
	if err := validate.ValidatePositiveTimeout(Global.MaxStatusWait, "max status wait"); err != nil {
		return err
	}

	if err := Global.Batching.Validate(); err != nil {
		logging.Error("%v", err)
		return err
	}
	if err := Global.Executor.Validate(); err != nil {
		logging.Error("%v", err)
		return err
	}

	return nil
}
