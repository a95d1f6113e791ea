// Package cli implements the cubesolve command line.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesolver/internal/app"
	"github.com/SeamusWaldron/cubesolver/internal/config"
)

const version = "0.1.0"

var (
	// Global flags
	configPath    string
	dbPath        string
	tablePath     string
	flipTablePath string
	verbose       bool

	cfg config.Config
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "cubesolve",
	Short: "Rubik's Cube solver",
	Long: `cubesolve finds face-turn solutions for 3x3x3 cube states given as
54-character facelet strings (URFDLB face order).

Pruning tables are generated on first use and kept in ~/.cubesolver.
Solutions are recorded in a local SQLite history and reused when the same
state is solved again.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ~/.cubesolver/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file path (default: ~/.cubesolver/cubesolver.db)")
	rootCmd.PersistentFlags().StringVar(&tablePath, "table", "", "Twist-slice pruning table path")
	rootCmd.PersistentFlags().StringVar(&flipTablePath, "flip-table", "", "Optional flip-slice pruning table path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

// loadConfig layers flags over the file and environment settings.
func loadConfig(cmd *cobra.Command, _ []string) error {
	c, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if dbPath != "" {
		c.DBPath = dbPath
	}
	if tablePath != "" {
		c.TablePath = tablePath
	}
	if flipTablePath != "" {
		c.FlipTablePath = flipTablePath
	}
	if verbose {
		c.Log.Level = "debug"
	}
	if err := c.Validate(); err != nil {
		return err
	}
	cfg = c
	return nil
}

func newRuntime(withMetrics bool) (*app.Runtime, error) {
	return app.NewRuntime(cfg, withMetrics)
}
