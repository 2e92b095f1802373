package config

import (
	"path/filepath"
)

// AppName is used in generating file system paths.
var AppName = "soweego"

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/soweego by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/soweego by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/soweego/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the soweego.yaml file.
// Returns ~/.config/soweego/soweego.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "soweego.yaml")
}
