package netutil

import (
	"errors"
	"syscall"
)

// IsAddressInUseError reports whether err wraps EADDRINUSE.
func IsAddressInUseError(err error) bool {
	return errors.Is(err, syscall.EADDRINUSE)
}

// IsConnectionRefusedError reports whether err wraps ECONNREFUSED, which
// batchctl takes to mean the daemon is not running.
func IsConnectionRefusedError(err error) bool {
	return errors.Is(err, syscall.ECONNREFUSED)
}
