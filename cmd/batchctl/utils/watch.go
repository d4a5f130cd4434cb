package utils

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/concave-dev/batchd/internal/logging"
)

// WatchInterval is the refresh period for --watch
const WatchInterval = 2 * time.Second

// RunWithWatch executes fn once, or in watch mode clears the screen and
// reruns it every WatchInterval until SIGINT/SIGTERM. Errors during a refresh
// are logged and the loop keeps going, so a daemon restart does not end the watch.
func RunWithWatch(fn func() error, enableWatch bool) error {
	if !enableWatch {
		return fn()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	ticker := time.NewTicker(WatchInterval)
	defer ticker.Stop()

	footer := fmt.Sprintf("\nRefreshing every %s, Ctrl+C to stop\n", FormatDuration(WatchInterval))

	fmt.Print("\033[2J\033[H") // Clear screen and move cursor to top
	if err := fn(); err != nil {
		return err
	}
	fmt.Print(footer)

	for {
		select {
		case <-ticker.C:
			fmt.Print("\033[2J\033[H")
			if err := fn(); err != nil {
				logging.Error("Error updating display: %v", err)
				continue
			}
			fmt.Print(footer)
		case <-sigChan:
			fmt.Println("\nWatch mode interrupted")
			return nil
		}
	}
}
