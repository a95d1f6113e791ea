// Package app wires the solver to solve history and metrics for the command
// line and the HTTP service.
package app

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/SeamusWaldron/cubesolver"
	"github.com/SeamusWaldron/cubesolver/internal/storage"
	"github.com/SeamusWaldron/cubesolver/internal/telemetry"
)

// Service solves cubes, answering repeats from history when caching is on.
type Service struct {
	solver  *cubesolver.Solver
	repo    *storage.SolveRepository
	metrics *telemetry.Metrics
	log     zerolog.Logger
	cache   bool

	maxDepth int
	timeout  time.Duration
}

// Deps are the optional collaborators of a Service. A nil Repo disables
// history and caching; a nil Metrics disables metrics.
type Deps struct {
	Repo    *storage.SolveRepository
	Metrics *telemetry.Metrics
	Log     zerolog.Logger
	Cache   bool

	// Defaults for requests that leave them zero.
	MaxDepth int
	Timeout  time.Duration
}

// NewService creates a service around solver.
func NewService(solver *cubesolver.Solver, deps Deps) *Service {
	s := &Service{
		solver:   solver,
		repo:     deps.Repo,
		metrics:  deps.Metrics,
		log:      deps.Log,
		cache:    deps.Cache && deps.Repo != nil,
		maxDepth: deps.MaxDepth,
		timeout:  deps.Timeout,
	}
	if s.maxDepth == 0 {
		s.maxDepth = cubesolver.DefaultMaxDepth
	}
	if s.timeout == 0 {
		s.timeout = cubesolver.DefaultTimeout
	}
	return s
}

// Request is one solve.
type Request struct {
	Facelets string
	MaxDepth int
	Timeout  time.Duration
	Source   string // "cli", "http" or "live"
	NoCache  bool
}

// Result is a solution plus where it came from. ID is empty when history is
// off.
type Result struct {
	cubesolver.Solution
	ID     string
	Cached bool
}

// Solve validates the request, consults history, and searches.
func (s *Service) Solve(req Request) (Result, error) {
	if req.MaxDepth == 0 {
		req.MaxDepth = s.maxDepth
	}
	if req.Timeout == 0 {
		req.Timeout = s.timeout
	}
	state, err := cubesolver.Inspect(req.Facelets)
	if err != nil {
		s.reject(err)
		return Result{}, err
	}

	if s.cache && !req.NoCache {
		if res, ok := s.lookup(state.Facelets, req.MaxDepth); ok {
			return res, nil
		}
	}

	done := func() {}
	if s.metrics != nil {
		done = s.metrics.TrackInflight()
	}
	sol, err := s.solver.Solve(state.Facelets,
		cubesolver.WithMaxDepth(req.MaxDepth),
		cubesolver.WithTimeout(req.Timeout),
	)
	done()
	if err != nil {
		s.reject(err)
		return Result{}, err
	}

	if s.metrics != nil {
		s.metrics.RecordSolve(sol.Status.String(), sol.Elapsed, sol.Nodes, sol.Len())
	}

	res := Result{Solution: sol}
	if s.repo != nil {
		res.ID = s.record(sol, req.Source)
	}
	return res, nil
}

func (s *Service) lookup(facelets string, maxDepth int) (Result, bool) {
	rec, err := s.repo.FindSolution(facelets, maxDepth)
	if err != nil {
		s.log.Warn().Err(err).Msg("history lookup failed")
		return Result{}, false
	}
	if rec == nil {
		return Result{}, false
	}
	moves, err := cubesolver.ParseMoves(rec.Solution)
	if err != nil {
		s.log.Warn().Err(err).Str("solve_id", rec.SolveID).Msg("stored solution does not parse")
		return Result{}, false
	}

	if s.metrics != nil {
		s.metrics.RecordSolve("cached", 0, 0, len(moves))
	}
	s.log.Debug().Str("solve_id", rec.SolveID).Msg("solution served from history")
	return Result{
		Solution: cubesolver.Solution{
			Status:   cubesolver.StatusSolved,
			Moves:    moves,
			Facelets: facelets,
			MaxDepth: maxDepth,
			Depth:    len(moves),
		},
		ID:     rec.SolveID,
		Cached: true,
	}, true
}

func (s *Service) record(sol cubesolver.Solution, source string) string {
	id, err := s.repo.Create(storage.Solve{
		Facelets:  sol.Facelets,
		Status:    sol.Status.String(),
		Solution:  sol.String(),
		Length:    sol.Len(),
		MaxDepth:  sol.MaxDepth,
		Nodes:     sol.Nodes,
		ElapsedMs: sol.Elapsed.Milliseconds(),
		Source:    source,
	})
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to record solve")
		return ""
	}
	return id
}

func (s *Service) reject(err error) {
	kind := cubesolver.ErrorKind(err)
	if s.metrics != nil {
		s.metrics.RecordRejected(kind)
	}
	s.log.Debug().Err(err).Str("kind", kind).Msg("solve rejected")
}

// Solver returns the underlying solver.
func (s *Service) Solver() *cubesolver.Solver {
	return s.solver
}

// Logger returns the service logger.
func (s *Service) Logger() zerolog.Logger {
	return s.log
}

// History returns the repository, or nil when history is off.
func (s *Service) History() *storage.SolveRepository {
	return s.repo
}

func (r Result) String() string {
	if r.Status != cubesolver.StatusSolved {
		return fmt.Sprintf("(%s)", r.Status)
	}
	return r.Solution.String()
}
