// Package utils provides common utility functions shared by the batchd daemon,
// the batchctl CLI and the batching core.
//
// This file implements task ID generation and the truncation used when IDs
// are shown in logs and tables. Task IDs are random UUIDv4 strings so clients
// can poll by ID without coordinating with each other.
package utils

import (
	"fmt"

	"github.com/google/uuid"
)

// ShortIDLength is the display length for truncated IDs, similar to Docker
// short IDs.
const ShortIDLength = 12

// GenerateID creates a unique task identifier in canonical UUIDv4 form.
//
// Returns format: "9b2f0d4e-7c1a-4f3e-b6d2-5a8c9e0f1d2b"
func GenerateID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate task id: %w", err)
	}
	return id.String(), nil
}

// TruncateIDSafe shortens an ID to ShortIDLength characters for display.
// IDs that are already short are returned unchanged.
func TruncateIDSafe(id string) string {
	if len(id) <= ShortIDLength {
		return id
	}
	return id[:ShortIDLength]
}
