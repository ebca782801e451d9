package filesystem

import (
	"os"
	"path/filepath"
)

// UserHomeDir returns the current user's home directory.
// If the home directory cannot be determined, it returns "." as a fallback.
func UserHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

// VoxDir returns the per-user vox data directory (~/.vox plus any subpath).
func VoxDir(parts ...string) string {
	elems := append([]string{UserHomeDir(), ".vox"}, parts...)
	return filepath.Join(elems...)
}

// ExpandPath resolves ~/ prefixes and cleans relative paths.
func ExpandPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if len(path) > 1 && path[:2] == "~/" {
		return filepath.Join(UserHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}
