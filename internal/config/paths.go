package config

import (
	"os"
	"path/filepath"
)

// SimpschedPath returns the root directory for simpsched data.
// It uses $SIMPSCHED_PATH if set, otherwise defaults to ~/.simpsched.
func SimpschedPath() string {
	if v := os.Getenv("SIMPSCHED_PATH"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".simpsched")
	}
	return filepath.Join(home, ".simpsched")
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	return filepath.Join(SimpschedPath(), "config.jsonc")
}

// DotenvPath returns the path to the .env file.
func DotenvPath() string {
	return filepath.Join(SimpschedPath(), ".env")
}

// DBPath returns the default path of the task database.
func DBPath() string {
	return filepath.Join(SimpschedPath(), "tasks.db")
}
