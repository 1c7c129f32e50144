package config

import (
	"os"
	"path/filepath"
)

// Config file names searched in the working directory, in priority order
var ConfigFileNames = []string{"topoconf.yaml", "topoconf.yml", "topoconf.toml"}

// FindConfigPath searches for a config file in priority order:
// 1. explicit (the --config flag)
// 2. ./topoconf.yaml, ./topoconf.yml, ./topoconf.toml
//
// Returns empty string if no config file found. An explicit path that does
// not exist is returned as-is so the caller reports the read error.
func FindConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}

	for _, name := range ConfigFileNames {
		if fileExists(name) {
			if abs, err := filepath.Abs(name); err == nil {
				return abs
			}
			return name
		}
	}

	return ""
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir(configPath string) error {
	dir := filepath.Dir(configPath)
	return os.MkdirAll(dir, 0755)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
