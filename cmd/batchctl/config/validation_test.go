package config

import "testing"

func TestValidateGlobalFlags(t *testing.T) {
	tests := []struct {
		name     string
		apiAddr  string
		output   string
		logLevel string
		timeout  int
		wantErr  bool
	}{
		{"defaults", DefaultAPIAddr, "table", DefaultLogLevel, 8, false},
		{"json output", "10.0.0.5:9000", "json", "DEBUG", 30, false},
		{"missing port", "127.0.0.1", "table", "ERROR", 8, true},
		{"unroutable wildcard", "0.0.0.0:8008", "table", "ERROR", 8, true},
		{"port zero", "127.0.0.1:0", "table", "ERROR", 8, true},
		{"hostname not accepted", "localhost:8008", "table", "ERROR", 8, true},
		{"bad output", DefaultAPIAddr, "yaml", "ERROR", 8, true},
		{"bad log level", DefaultAPIAddr, "table", "verbose", 8, true},
		{"zero timeout", DefaultAPIAddr, "table", "ERROR", 0, true},
		{"huge timeout", DefaultAPIAddr, "table", "ERROR", 301, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Global.APIAddr = tt.apiAddr
			Global.Output = tt.output
			Global.LogLevel = tt.logLevel
			Global.Timeout = tt.timeout

			err := ValidateGlobalFlags(nil, nil)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateGlobalFlags() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
