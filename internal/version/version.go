// Package version holds the release versions of the batchd daemon and the
// batchctl CLI. The two binaries are versioned independently so the CLI can
// ship fixes without a daemon release. Both follow semver.
package version

// BatchdVersion is reported by the daemon's health endpoint and sent as the
// HTTP executor's User-Agent.
const BatchdVersion = "0.1.0-dev"

// BatchctlVersion is sent as the CLI's User-Agent and shown by `batchctl --version`.
const BatchctlVersion = "0.1.0-dev"
