package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default(t.TempDir())
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if cfg.MaxDepth != 21 || cfg.Timeout != 5*time.Second {
		t.Errorf("defaults: depth %d timeout %v", cfg.MaxDepth, cfg.Timeout)
	}
}

func TestLoadLayers(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := "max_depth: 18\ntimeout: 2s\nlog:\n  level: info\n  format: json\n  output: stdout\nserver:\n  addr: \":9000\"\n"
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CUBESOLVER_MAX_DEPTH", "20")
	t.Setenv("CUBESOLVER_SERVER_MAX_CONCURRENT", "8")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if cfg.MaxDepth != 20 {
		t.Errorf("MaxDepth = %d, env should win over file", cfg.MaxDepth)
	}
	if cfg.Timeout != 2*time.Second {
		t.Errorf("Timeout = %v", cfg.Timeout)
	}
	if cfg.Log.Format != "json" || cfg.Log.Output != "stdout" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if cfg.Server.Addr != ":9000" || cfg.Server.MaxConcurrent != 8 {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if !cfg.Cache {
		t.Error("Cache default lost")
	}
}

func TestLoadWithoutFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if want := filepath.Join(home, ".cubesolver", "cubesolver.db"); cfg.DBPath != want {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, want)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() = %v, want os.ErrNotExist", err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"depth zero", func(c *Config) { c.MaxDepth = 0 }},
		{"depth too big", func(c *Config) { c.MaxDepth = 31 }},
		{"no timeout", func(c *Config) { c.Timeout = 0 }},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }},
		{"no concurrency", func(c *Config) { c.Server.MaxConcurrent = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default(t.TempDir())
			tt.mutate(&cfg)
			err := cfg.Validate()
			var verrs validator.ValidationErrors
			if !errors.As(err, &verrs) {
				t.Errorf("Validate() = %v, want validation errors", err)
			}
		})
	}
}

func TestBadEnvValue(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CUBESOLVER_TIMEOUT", "soon")
	if _, err := Load(""); err == nil {
		t.Error("expected an error for an unparsable duration")
	}
}
