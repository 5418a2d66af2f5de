package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// AppName names the per-user configuration directory.
	AppName = "taskman"
	// DataFileName is the default data file inside the configuration directory.
	DataFileName = "tasks.json"
)

// GetGlobalConfigDir returns the path to the global configuration directory
// (<UserConfigDir>/taskman). It's a variable to allow overriding in tests.
var GetGlobalConfigDir = func() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName), nil
}

// DefaultDataFile returns the default task file location. If the user
// configuration directory cannot be determined, it falls back to
// tasks.json in the working directory.
func DefaultDataFile() string {
	dir, err := GetGlobalConfigDir()
	if err != nil {
		return DataFileName
	}
	return filepath.Join(dir, DataFileName)
}

// ExpandHome replaces a leading "~" or "~/" with the user's home directory.
// Other paths are returned unchanged.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}
