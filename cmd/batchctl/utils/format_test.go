package utils

import (
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0s"},
		{45 * time.Second, "45s"},
		{3 * time.Minute, "3m"},
		{2*time.Hour + 10*time.Minute, "2h"},
		{50 * time.Hour, "2d"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.in); got != tt.want {
			t.Errorf("FormatDuration(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatFill(t *testing.T) {
	tests := []struct {
		used, total int
		want        string
	}{
		{0, 10, "0/10 (0%)"},
		{250, 1000, "250/1,000 (25%)"},
		{5, 0, "5/-"},
	}

	for _, tt := range tests {
		if got := FormatFill(tt.used, tt.total); got != tt.want {
			t.Errorf("FormatFill(%d, %d) = %q, want %q", tt.used, tt.total, got, tt.want)
		}
	}
}

func TestFormatCountAndAge(t *testing.T) {
	if got := FormatCount(1234567); got != "1,234,567" {
		t.Errorf("FormatCount() = %q, want %q", got, "1,234,567")
	}
	if got := FormatAge(time.Time{}); got != "-" {
		t.Errorf("FormatAge(zero) = %q, want %q", got, "-")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"a long task name here", 10, "a long..."},
		{"abcdef", 3, "abc"},
	}

	for _, tt := range tests {
		if got := Truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
