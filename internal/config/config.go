// Package config loads solver settings from defaults, a YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/SeamusWaldron/cubesolver/internal/telemetry"
)

// EnvPrefix prefixes every environment variable the loader reads.
const EnvPrefix = "CUBESOLVER_"

// Config holds every setting the command line and service use.
type Config struct {
	// TablePath is the twist-slice pruning table. Empty means generate on start.
	TablePath string `yaml:"table_path" env:"TABLE_PATH"`

	// FlipTablePath is the optional flip-slice table.
	FlipTablePath string `yaml:"flip_table_path" env:"FLIP_TABLE_PATH"`

	MaxDepth int           `yaml:"max_depth" env:"MAX_DEPTH" validate:"min=1,max=30"`
	Timeout  time.Duration `yaml:"timeout" env:"TIMEOUT" validate:"gt=0"`

	// DBPath is the solve history database. Empty disables history.
	DBPath string `yaml:"db_path" env:"DB_PATH"`

	// Cache answers repeated solves from history.
	Cache bool `yaml:"cache" env:"CACHE"`

	Log    telemetry.LoggingConfig `yaml:"log" envPrefix:"LOG_"`
	Server ServerConfig            `yaml:"server" envPrefix:"SERVER_"`
}

// ServerConfig configures the HTTP service.
type ServerConfig struct {
	Addr          string `yaml:"addr" env:"ADDR" validate:"required"`
	MaxConcurrent int    `yaml:"max_concurrent" env:"MAX_CONCURRENT" validate:"min=1,max=1024"`
}

// Dir returns ~/.cubesolver.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".cubesolver"), nil
}

// Default returns the built-in settings rooted at dir.
func Default(dir string) Config {
	return Config{
		TablePath: filepath.Join(dir, "twist_slice.prun"),
		MaxDepth:  21,
		Timeout:   5 * time.Second,
		DBPath:    filepath.Join(dir, "cubesolver.db"),
		Cache:     true,
		Log:       telemetry.DefaultLoggingConfig(),
		Server: ServerConfig{
			Addr:          "127.0.0.1:8080",
			MaxConcurrent: 4,
		},
	}
}

// Load builds a Config from defaults, then path (or dir/config.yaml when
// path is empty and that file exists), then the environment.
func Load(path string) (Config, error) {
	dir, err := Dir()
	if err != nil {
		return Config{}, err
	}
	cfg := Default(dir)

	explicit := path != ""
	if !explicit {
		path = filepath.Join(dir, "config.yaml")
	}
	if err := loadFile(path, &cfg); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return Config{}, err
		}
	}

	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// ParseEnv overlays CUBESOLVER_* environment variables onto target.
func ParseEnv(target any) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field ranges.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
