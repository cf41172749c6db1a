package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tailscale/hujson"
)

var envTemplateRe = regexp.MustCompile(`\$\{\{\s*\.Env\.(\w+)\s*\}\}`)

// Load reads a config file, expands ${{ .Env.VAR }} templates, checks it
// against the config schema, unmarshals it into Config and applies
// defaults. Files ending in .toml are read as TOML, anything else as
// JSONC. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return Default(), nil
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand before parsing, since templates live inside strings.
	expanded := expandEnvTemplates(string(data))

	var std []byte
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		std, err = tomlToJSON(expanded)
	} else {
		std, err = hujson.Standardize([]byte(expanded))
	}
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := validateSchema(std); err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(std, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

// tomlToJSON re-encodes a TOML document as JSON so both formats share the
// schema check and the json struct tags.
func tomlToJSON(doc string) ([]byte, error) {
	var raw map[string]any
	if _, err := toml.Decode(doc, &raw); err != nil {
		return nil, err
	}
	return json.Marshal(raw)
}

// expandEnvTemplates replaces ${{ .Env.VAR }} with the env var value.
func expandEnvTemplates(s string) string {
	return envTemplateRe.ReplaceAllStringFunc(s, func(match string) string {
		parts := envTemplateRe.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}
		return os.Getenv(parts[1])
	})
}

// applyDefaults fills in zero-value fields.
func applyDefaults(cfg *Config) {
	if cfg.Store.Path == "" {
		cfg.Store.Path = DBPath()
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "warn"
	}
}
