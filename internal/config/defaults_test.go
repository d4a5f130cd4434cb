package config

import (
	"net"
	"strings"
	"testing"
)

// TestDefaultBindAddrIsValidIP validates that the default bind address is a valid IPv4 loopback
func TestDefaultBindAddrIsValidIP(t *testing.T) {
	ip := net.ParseIP(DefaultBindAddr)
	if ip == nil {
		t.Fatalf("DefaultBindAddr %q is not a valid IP address", DefaultBindAddr)
	}

	if ip.To4() == nil {
		t.Errorf("DefaultBindAddr %q is not a valid IPv4 address", DefaultBindAddr)
	}
	if !ip.IsLoopback() {
		t.Errorf("DefaultBindAddr %q should be loopback", DefaultBindAddr)
	}
}

// TestDefaultLogLevel validates the default log level constant
func TestDefaultLogLevel(t *testing.T) {
	validLevels := []string{"DEBUG", "INFO", "WARN", "ERROR"}

	found := false
	for _, level := range validLevels {
		if DefaultLogLevel == level {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("DefaultLogLevel %q is not one of %v", DefaultLogLevel, validLevels)
	}
}

// TestDefaultsSanity checks port, prefix and timeout defaults
func TestDefaultsSanity(t *testing.T) {
	if DefaultAPIPort < 1 || DefaultAPIPort > 65535 {
		t.Errorf("DefaultAPIPort %d out of range", DefaultAPIPort)
	}
	if EnvPrefix != strings.ToUpper(EnvPrefix) || strings.Contains(EnvPrefix, "_") {
		t.Errorf("EnvPrefix %q should be upper case without underscores", EnvPrefix)
	}
	if DefaultShutdownTimeout <= 0 {
		t.Errorf("DefaultShutdownTimeout %s should be positive", DefaultShutdownTimeout)
	}
}
