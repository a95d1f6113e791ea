package cubesolver

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/SeamusWaldron/cubesolver/internal/search"
)

// Defaults used when no option overrides them.
const (
	DefaultMaxDepth = 21
	DefaultTimeout  = 5 * time.Second
)

// Option configures a Solver, or a single Solve call.
type Option func(*config)

type config struct {
	maxDepth int
	timeout  time.Duration
	logger   zerolog.Logger
	onDepth  func(bound int, nodes uint64)
}

func defaultConfig() config {
	return config{
		maxDepth: DefaultMaxDepth,
		timeout:  DefaultTimeout,
		logger:   zerolog.Nop(),
	}
}

func (c config) validate() error {
	if c.maxDepth < 1 || c.maxDepth > search.MaxDepthLimit {
		return fmt.Errorf("%w: max depth %d not in 1..%d", ErrInvalidOption, c.maxDepth, search.MaxDepthLimit)
	}
	if c.timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalidOption, c.timeout)
	}
	return nil
}

// WithMaxDepth sets the longest solution the search will look for.
// Default is 21.
func WithMaxDepth(n int) Option {
	return func(c *config) {
		c.maxDepth = n
	}
}

// WithTimeout sets the wall-clock budget of one search. Default is 5s.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}

// WithLogger sets the logger. The solver logs each search outcome at info
// level and each depth iteration at debug level.
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithDepthHook registers a callback that fires each time the search starts
// a deeper iteration.
func WithDepthHook(fn func(bound int, nodes uint64)) Option {
	return func(c *config) {
		c.onDepth = fn
	}
}
