package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSimpschedPath_Default(t *testing.T) {
	t.Setenv("SIMPSCHED_PATH", "")

	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatal(err)
	}

	got := SimpschedPath()
	want := filepath.Join(home, ".simpsched")
	if got != want {
		t.Errorf("SimpschedPath() = %q, want %q", got, want)
	}
}

func TestSimpschedPath_EnvOverride(t *testing.T) {
	t.Setenv("SIMPSCHED_PATH", "/tmp/custom-simpsched")

	if got := SimpschedPath(); got != "/tmp/custom-simpsched" {
		t.Errorf("SimpschedPath() = %q, want %q", got, "/tmp/custom-simpsched")
	}
}

func TestDerivedPaths(t *testing.T) {
	t.Setenv("SIMPSCHED_PATH", "/tmp/test-simpsched")

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"config", ConfigPath(), "/tmp/test-simpsched/config.jsonc"},
		{"dotenv", DotenvPath(), "/tmp/test-simpsched/.env"},
		{"db", DBPath(), "/tmp/test-simpsched/tasks.db"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s path = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}
