package config

import (
	"fmt"
	"slices"

	"github.com/concave-dev/batchd/internal/logging"
	"github.com/concave-dev/batchd/internal/validate"
	"github.com/spf13/cobra"
)

// OutputFormats lists the accepted --output values.
var OutputFormats = []string{"table", "json"}

// ValidateGlobalFlags runs before every command. The first bad flag wins.
func ValidateGlobalFlags(cmd *cobra.Command, args []string) error {
	checks := []func() error{
		validateAPIAddr,
		func() error {
			if !slices.Contains(OutputFormats, Global.Output) {
				return fmt.Errorf("invalid output format %q (valid: table, json)", Global.Output)
			}
			return nil
		},
		func() error { return logging.ValidateLogLevel(Global.LogLevel) },
		func() error {
			if err := validate.ValidateField(Global.Timeout, "min=1,max=300"); err != nil {
				return fmt.Errorf("timeout must be between 1 and 300 seconds, got %d", Global.Timeout)
			}
			return nil
		},
	}

	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

// validateAPIAddr requires a dialable ip:port; a wildcard listen address
// like 0.0.0.0 is not something a client can connect to.
func validateAPIAddr() error {
	addr, err := validate.ParseBindAddress(Global.APIAddr)
	if err != nil {
		logging.Debug("Rejected --api %q: %v", Global.APIAddr, err)
		return fmt.Errorf("invalid API address %q, expected ip:port such as 127.0.0.1:8008", Global.APIAddr)
	}
	if addr.Host == "0.0.0.0" || addr.Host == "::" {
		return fmt.Errorf("API address %s is a wildcard listen address, use 127.0.0.1 or the daemon's IP", addr)
	}
	return nil
}
