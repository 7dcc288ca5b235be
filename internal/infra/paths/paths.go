package paths

import (
	"log/slog"
	"os"
	"path/filepath"
)

const (
	appDirName  = "atlas-agent"
	homeDirName = ".atlas-agent"
)

// DefaultDataDir returns the per-user config directory for the agent, or
// an empty string when the OS does not report one.
func DefaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return ""
	}
	return filepath.Join(dir, appDirName)
}

// Resolve returns dir/name when dir can be created, otherwise
// ~/.atlas-agent/name, and the current directory as the last resort.
func Resolve(dir, name string, logger *slog.Logger) string {
	if logger == nil {
		logger = slog.Default()
	}
	if dir != "" {
		err := os.MkdirAll(dir, 0o700)
		if err == nil {
			return filepath.Join(dir, name)
		}
		logger.Warn("data dir unavailable", "dir", dir, "error", err)
	}

	fallbackDir := "."
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		fallbackDir = filepath.Join(home, homeDirName)
	} else {
		logger.Warn("home dir unavailable, using current directory")
	}

	if err := os.MkdirAll(fallbackDir, 0o700); err != nil {
		logger.Error("failed to create fallback dir", "dir", fallbackDir, "error", err)
	}
	path := filepath.Join(fallbackDir, name)
	logger.Debug("using fallback path", "path", path)
	return path
}
