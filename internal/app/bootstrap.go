package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/SeamusWaldron/cubesolver"
	"github.com/SeamusWaldron/cubesolver/internal/config"
	"github.com/SeamusWaldron/cubesolver/internal/storage"
	"github.com/SeamusWaldron/cubesolver/internal/telemetry"
)

// OpenTables loads the pruning tables named by twistPath and flipPath and
// checks their provenance. Missing files are generated and written back;
// an empty twistPath generates in memory only. flipPath may be empty.
func OpenTables(twistPath, flipPath string, log zerolog.Logger) (*cubesolver.Tables, error) {
	if twistPath != "" && exists(twistPath) && (flipPath == "" || exists(flipPath)) {
		start := time.Now()
		tables, err := cubesolver.LoadTables(twistPath, flipPath)
		if err != nil {
			return nil, err
		}
		if err := tables.Verify(); err != nil {
			return nil, err
		}
		log.Debug().
			Str("path", twistPath).
			Bool("flip_slice", tables.HasFlipSlice()).
			Dur("elapsed", time.Since(start)).
			Msg("pruning tables loaded")
		return tables, nil
	}

	start := time.Now()
	tables, err := cubesolver.GenerateTables(flipPath != "")
	if err != nil {
		return nil, err
	}
	log.Info().Dur("elapsed", time.Since(start)).Msg("pruning tables generated")

	if twistPath == "" {
		return tables, nil
	}
	for _, p := range []string{twistPath, flipPath} {
		if p == "" {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return nil, fmt.Errorf("%w: %w", cubesolver.ErrResource, err)
		}
	}
	if err := tables.WriteFiles(twistPath, flipPath); err != nil {
		log.Warn().Err(err).Msg("could not save pruning tables")
	}
	return tables, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, os.ErrNotExist)
}

// Runtime is everything a command needs, built from a Config.
type Runtime struct {
	Config  config.Config
	Log     zerolog.Logger
	Service *Service
	Metrics *telemetry.Metrics

	closers []io.Closer
}

// NewRuntime builds the logger, tables, history and service for cfg.
func NewRuntime(cfg config.Config, withMetrics bool) (*Runtime, error) {
	log, logCloser, err := telemetry.NewLogger(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to open log output: %w", err)
	}
	rt := &Runtime{Config: cfg, Log: log, closers: []io.Closer{logCloser}}

	tables, err := OpenTables(cfg.TablePath, cfg.FlipTablePath, log)
	if err != nil {
		rt.Close()
		return nil, err
	}
	solver, err := cubesolver.NewSolver(tables,
		cubesolver.WithMaxDepth(cfg.MaxDepth),
		cubesolver.WithTimeout(cfg.Timeout),
		cubesolver.WithLogger(log),
	)
	if err != nil {
		rt.Close()
		return nil, err
	}

	deps := Deps{Log: log, Cache: cfg.Cache, MaxDepth: cfg.MaxDepth, Timeout: cfg.Timeout}
	if cfg.DBPath != "" {
		db, err := storage.Open(cfg.DBPath)
		if err != nil {
			rt.Close()
			return nil, err
		}
		rt.closers = append(rt.closers, db)
		deps.Repo = storage.NewSolveRepository(db)
	}
	if withMetrics {
		rt.Metrics = telemetry.NewMetrics()
		deps.Metrics = rt.Metrics
	}

	rt.Service = NewService(solver, deps)
	return rt, nil
}

// Close releases the database and log file, newest first.
func (rt *Runtime) Close() error {
	var errs []error
	for i := len(rt.closers) - 1; i >= 0; i-- {
		errs = append(errs, rt.closers[i].Close())
	}
	return errors.Join(errs...)
}
