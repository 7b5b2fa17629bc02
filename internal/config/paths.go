package config

import (
	"os"
	"path/filepath"
)

// GetHome returns $SITENOTES_HOME or ~/.sitenotes
func GetHome() string {
	home := os.Getenv("SITENOTES_HOME")
	if home == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ".sitenotes"
		}
		return filepath.Join(homeDir, ".sitenotes")
	}
	return ExpandPath(home)
}

// GetDBPath returns $SITENOTES_HOME/sitenotes.db
func GetDBPath() string {
	return filepath.Join(GetHome(), "sitenotes.db")
}

// GetScreenshotsDir returns $SITENOTES_HOME/agwp-sn-screenshots
func GetScreenshotsDir() string {
	return filepath.Join(GetHome(), "agwp-sn-screenshots")
}

// GetHostKeyPath returns $SITENOTES_HOME/ssh/id_ed25519
func GetHostKeyPath() string {
	return filepath.Join(GetHome(), "ssh", "id_ed25519")
}

// GetSettingsPath returns $SITENOTES_HOME/settings.json
func GetSettingsPath() string {
	return filepath.Join(GetHome(), "settings.json")
}

// ExpandPath expands ~ to home directory
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			if len(path) == 1 {
				return homeDir
			}
			return filepath.Join(homeDir, path[1:])
		}
	}
	return path
}
