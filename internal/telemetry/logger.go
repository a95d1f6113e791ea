// Package telemetry sets up logging and Prometheus metrics.
package telemetry

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// LoggingConfig selects the level, encoding and destination of log output.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level" env:"LEVEL" validate:"oneof=debug info warn error"`

	// Format is console or json.
	Format string `yaml:"format" env:"FORMAT" validate:"oneof=console json"`

	// Output is stdout, stderr or a file path.
	Output string `yaml:"output" env:"OUTPUT" validate:"required"`
}

// DefaultLoggingConfig logs warnings and errors to stderr in console format.
func DefaultLoggingConfig() LoggingConfig {
	return LoggingConfig{Level: "warn", Format: "console", Output: "stderr"}
}

// NewLogger builds a logger. The returned closer releases the log file, if
// any; it is safe to call for stdout and stderr.
func NewLogger(cfg LoggingConfig) (zerolog.Logger, io.Closer, error) {
	var (
		writer io.Writer
		closer io.Closer = nopCloser{}
	)
	switch cfg.Output {
	case "", "stderr":
		writer = os.Stderr
	case "stdout":
		writer = os.Stdout
	default:
		f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), nil, err
		}
		writer, closer = f, f
	}

	if cfg.Format != "json" {
		writer = zerolog.ConsoleWriter{Out: writer, TimeFormat: time.Kitchen}
	}

	log := zerolog.New(writer).
		Level(parseLevel(cfg.Level)).
		With().Timestamp().Logger()
	return log, closer, nil
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.WarnLevel
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
