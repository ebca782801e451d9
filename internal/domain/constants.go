package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

// Execution constants
const (
	// DefaultCommandTimeout bounds a single invocation when nothing is configured
	DefaultCommandTimeout = 30 * time.Second
	// DefaultMaxOutputBytes caps captured stdout/stderr per invocation;
	// output beyond the cap is truncated, which is documented degradation
	DefaultMaxOutputBytes = 10000
)

// History constants
const (
	// DefaultHistoryLimit is the default number of history records to display
	DefaultHistoryLimit = 20
	// DefaultHistorySearchLimit is the default number of search results to return
	DefaultHistorySearchLimit = 50
)

// Time formats
const (
	// TimestampFormat is the standard timestamp format
	TimestampFormat = time.RFC3339
)
