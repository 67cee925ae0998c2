package common

import (
	"fmt"

	"github.com/google/uuid"
)

const (
	// MaxConcurrencyLimit caps the encode worker pool regardless of CPU count
	MaxConcurrencyLimit = 8

	// DefaultFilePermissions is used for created data directories
	DefaultFilePermissions = 0755
)

// GenerateUUID generates a new UUID string
func GenerateUUID() string {
	return uuid.New().String()
}

// FormatBytes renders a byte count in a human readable unit
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
