package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatDuration renders a duration in its largest whole unit (45s, 3m, 2h, 5d).
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	} else if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	} else if d < 24*time.Hour {
		return fmt.Sprintf("%dh", int(d.Hours()))
	}
	return fmt.Sprintf("%dd", int(d.Hours()/24))
}

// FormatAge renders how long ago t was, e.g. "3 seconds ago".
func FormatAge(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.Time(t)
}

// FormatCount renders a counter with thousands separators.
func FormatCount(n uint64) string {
	return humanize.Comma(int64(n))
}

// FormatFill renders used/total with a percentage, e.g. "250/1,000 (25%)".
func FormatFill(used, total int) string {
	if total <= 0 {
		return fmt.Sprintf("%d/-", used)
	}
	pct := float64(used) * 100 / float64(total)
	return fmt.Sprintf("%s/%s (%.0f%%)", humanize.Comma(int64(used)), humanize.Comma(int64(total)), pct)
}

// Truncate shortens s to max runes, marking the cut with "...".
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return strings.TrimSpace(string(r[:max-3])) + "..."
}
