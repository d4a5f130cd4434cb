// Package handlers provides command handler functions for batchctl.
//
// Each handler is a cobra RunE: it sets up CLI logging, calls the daemon
// through the client package and hands the response to the display package.
//
//   - task.go: task submit and task status
//   - batches.go: flush and stats
//   - info.go: daemon overview
package handlers
