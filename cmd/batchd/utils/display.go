// Package utils contains utility functions for the batchd daemon.
package utils

import (
	"fmt"
)

// DisplayLogo prints the batchd ASCII logo with version information
func DisplayLogo(version string) {
	fmt.Println()
	fmt.Println(` ░░░░░░░░░░░░░░░░░░░░░░░░░░░
 ░█▀▄░█▀█░▀█▀░█▀▀░█░█░█▀▄░
 ░█▀▄░█▀█░░█░░█░░░█▀█░█░█░
 ░▀▀░░▀░▀░░▀░░▀▀▀░▀░▀░▀▀░░
 ░░░░░░░░░░░░░░░░░░░░░░░░░░░`)
	fmt.Printf("\n batchd v%s - Task Batching Daemon\n", version)
	fmt.Println(" Bounded admission, size/time batching, graceful drain")
	fmt.Println()
}
