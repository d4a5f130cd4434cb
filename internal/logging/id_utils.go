package logging

// ID formatting keeps full IDs in debug output and short IDs elsewhere, so
// normal logs stay readable while troubleshooting still has full traceability.

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/concave-dev/batchd/internal/utils"
)

// FormatID formats an ID for logging based on the current log level. Returns
// the full ID when debug logging is enabled and a 12-character prefix
// otherwise.
func FormatID(id string) string {
	// Debug messages go to stderr, so its level decides
	if stderrLogger.GetLevel() <= log.DebugLevel {
		return id
	}
	return utils.TruncateIDSafe(id)
}

// FormatTaskID formats a task ID for logging with context-aware truncation.
//
// Usage: logging.Info("Accepted task %s", logging.FormatTaskID(taskID))
func FormatTaskID(taskID string) string {
	return FormatID(taskID)
}

// FormatBatchID renders a batch sequence number the same way everywhere.
func FormatBatchID(batchID uint64) string {
	return fmt.Sprintf("batch-%d", batchID)
}
