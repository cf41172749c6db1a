package config

import "log/slog"

// Config is the root configuration for simpsched.
type Config struct {
	Store StoreConfig `json:"store"`
	Log   LogConfig   `json:"log"`
	Purge PurgeConfig `json:"purge"`
}

// StoreConfig locates the task database.
type StoreConfig struct {
	Path string `json:"path"` // default: $SIMPSCHED_PATH/tasks.db
}

// LogConfig sets the slog level used when --debug is not given.
type LogConfig struct {
	Level string `json:"level"` // "debug" | "info" | "warn" | "error"
}

// SlogLevel parses Level, falling back to warn.
func (c LogConfig) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelWarn
	}
	return lvl
}

// PurgeConfig controls removal of finished tasks.
type PurgeConfig struct {
	// OnStartup purges done/cancelled tasks last touched before today
	// whenever a command opens the store. Default true.
	OnStartup *bool `json:"on_startup,omitempty"`
}

// Enabled reports whether startup purge is on.
func (c PurgeConfig) Enabled() bool {
	return c.OnStartup == nil || *c.OnStartup
}
