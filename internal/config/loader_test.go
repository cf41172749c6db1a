package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	return writeConfigAs(t, "config.jsonc", content)
}

func writeConfigAs(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `{
	// JSONC comments and trailing commas are allowed
	"store": {
		"path": "${{ .Env.TASKS_DB }}",
	},
	"log": {"level": "debug"},
	"purge": {"on_startup": false},
}`)
	t.Setenv("TASKS_DB", "/data/tasks.db")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Store.Path != "/data/tasks.db" {
		t.Errorf("expected store path /data/tasks.db, got %s", cfg.Store.Path)
	}
	if cfg.Log.SlogLevel() != slog.LevelDebug {
		t.Errorf("expected debug level, got %v", cfg.Log.SlogLevel())
	}
	if cfg.Purge.Enabled() {
		t.Error("expected startup purge disabled")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SIMPSCHED_PATH", "/tmp/simpsched-defaults")
	path := writeConfig(t, `{}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Store.Path != "/tmp/simpsched-defaults/tasks.db" {
		t.Errorf("expected default store path, got %s", cfg.Store.Path)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("expected default log level 'warn', got %q", cfg.Log.Level)
	}
	if !cfg.Purge.Enabled() {
		t.Error("expected startup purge enabled by default")
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("SIMPSCHED_PATH", "/tmp/simpsched-missing")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.jsonc"))
	if err != nil {
		t.Fatalf("missing file should yield defaults, got: %v", err)
	}
	if cfg.Store.Path != "/tmp/simpsched-missing/tasks.db" {
		t.Errorf("expected default store path, got %s", cfg.Store.Path)
	}
}

func TestLoadInvalid(t *testing.T) {
	path := writeConfig(t, `{"store": `)
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadTOML(t *testing.T) {
	t.Setenv("TASKS_DB", "/data/toml.db")
	path := writeConfigAs(t, "config.toml", `
[store]
path = "${{ .Env.TASKS_DB }}"

[log]
level = "info"

[purge]
on_startup = false
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Store.Path != "/data/toml.db" {
		t.Errorf("expected store path /data/toml.db, got %s", cfg.Store.Path)
	}
	if cfg.Log.SlogLevel() != slog.LevelInfo {
		t.Errorf("expected info level, got %v", cfg.Log.SlogLevel())
	}
	if cfg.Purge.Enabled() {
		t.Error("expected startup purge disabled")
	}
}

func TestLoadSchemaViolations(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown section", `{"stroe": {}}`, "stroe"},
		{"bad level", `{"log": {"level": "loud"}}`, "/log/level"},
		{"wrong type", `{"purge": {"on_startup": "yes"}}`, "/purge/on_startup"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			var serr *SchemaError
			if !errors.As(err, &serr) {
				t.Fatalf("expected SchemaError, got %v", err)
			}
			if !strings.Contains(serr.Error(), tt.want) {
				t.Errorf("expected %q in %q", tt.want, serr.Error())
			}
		})
	}
}

func TestSlogLevelFallback(t *testing.T) {
	if got := (LogConfig{Level: "loud"}).SlogLevel(); got != slog.LevelWarn {
		t.Errorf("expected warn fallback, got %v", got)
	}
}

func TestExpandEnvTemplates(t *testing.T) {
	t.Setenv("TEST_KEY", "my-value")
	result := expandEnvTemplates(`{"key": "${{ .Env.TEST_KEY }}"}`)
	expected := `{"key": "my-value"}`
	if result != expected {
		t.Errorf("expected %s, got %s", expected, result)
	}
}
