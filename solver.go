package cubesolver

import (
	"errors"
	"fmt"
	"time"

	"github.com/SeamusWaldron/cubesolver/internal/coord"
	"github.com/SeamusWaldron/cubesolver/internal/cubie"
	"github.com/SeamusWaldron/cubesolver/internal/search"
)

// Status is how a search ended.
type Status int

const (
	StatusSolved     Status = iota // Moves solves the cube
	StatusTimeout                  // the deadline passed first
	StatusNoSolution               // nothing within the move ceiling
)

func (s Status) String() string {
	switch s {
	case StatusSolved:
		return "solved"
	case StatusTimeout:
		return "timeout"
	case StatusNoSolution:
		return "no_solution"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Solution is the result of a search. Moves is only set when Status is
// StatusSolved, and is empty for a cube that was already solved.
type Solution struct {
	Status   Status
	Moves    []Move
	Facelets string // input in URFDLB form
	MaxDepth int
	Depth    int // deepest bound searched
	Nodes    uint64
	Elapsed  time.Duration
}

// String returns the space-separated move string.
func (s Solution) String() string {
	return FormatMoves(s.Moves)
}

// Len returns the number of moves in the solution.
func (s Solution) Len() int {
	return len(s.Moves)
}

// Err returns nil for a solved search, ErrSearchTimeout or
// ErrNoSolutionWithinBound otherwise.
func (s Solution) Err() error {
	switch s.Status {
	case StatusSolved:
		return nil
	case StatusTimeout:
		return fmt.Errorf("%w after %s", ErrSearchTimeout, s.Elapsed.Round(time.Millisecond))
	default:
		return fmt.Errorf("%w of %d", ErrNoSolutionWithinBound, s.MaxDepth)
	}
}

// Solver finds solutions using a shared set of pruning tables. It is safe
// for concurrent use.
type Solver struct {
	tables *Tables
	cfg    config
}

// NewSolver creates a solver. Options set the defaults for every Solve call.
func NewSolver(tables *Tables, opts ...Option) (*Solver, error) {
	if tables == nil || tables.twistSlice == nil {
		return nil, fmt.Errorf("%w: twist-slice table is required", ErrResource)
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Solver{tables: tables, cfg: cfg}, nil
}

// Solve parses facelets and searches for a solution. Rejected input is
// reported as an error wrapping ErrMalformedInput, ErrUndecodableState or
// ErrInvalidCubeState; a search that times out or exhausts the move ceiling
// returns a Solution with the matching Status and a nil error.
func (s *Solver) Solve(facelets string, opts ...Option) (Solution, error) {
	cc, canon, err := decode(facelets)
	if err != nil {
		return Solution{}, err
	}
	sol, err := s.solve(cc, opts)
	sol.Facelets = canon
	return sol, err
}

// SolveCube searches for a solution of c.
func (s *Solver) SolveCube(c *Cube, opts ...Option) (Solution, error) {
	if err := c.state.Verify(); err != nil {
		return Solution{}, fmt.Errorf("%w: %w", ErrInvalidCubeState, err)
	}
	sol, err := s.solve(c.state, opts)
	sol.Facelets = c.Facelets()
	return sol, err
}

func (s *Solver) solve(cc cubie.Cube, opts []Option) (Solution, error) {
	cfg := s.cfg
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return Solution{}, err
	}

	engine, err := search.NewEngine(cubie.Moves(), s.tables.twistSlice, s.tables.flipSlice, cfg.logger)
	if err != nil {
		return Solution{}, fmt.Errorf("%w: %w", ErrResource, err)
	}
	engine.OnDepth = cfg.onDepth

	res, err := engine.Run(cc, cfg.maxDepth, cfg.timeout)
	if err != nil {
		if errors.Is(err, search.ErrInvalidCube) {
			return Solution{}, fmt.Errorf("%w: %w", ErrInvalidCubeState, err)
		}
		return Solution{}, fmt.Errorf("%w: %w", ErrSearchFault, err)
	}

	sol := Solution{
		MaxDepth: cfg.maxDepth,
		Depth:    res.Depth,
		Nodes:    res.Nodes,
		Elapsed:  res.Elapsed,
	}
	switch res.Outcome {
	case search.OutcomeSolved:
		sol.Status = StatusSolved
		sol.Moves = make([]Move, len(res.Path))
		for i, m := range res.Path {
			sol.Moves[i] = moveFromIndex(m)
		}
	case search.OutcomeTimedOut:
		sol.Status = StatusTimeout
	default:
		sol.Status = StatusNoSolution
	}
	return sol, nil
}

// State describes a decoded cube.
type State struct {
	Facelets     string     `json:"facelets"`
	Corners      [8]string  `json:"corners"` // cubie/twist per slot, e.g. "UFL/1"
	Edges        [12]string `json:"edges"`   // cubie/flip per slot
	Twist        int        `json:"twist"`
	Flip         int        `json:"flip"`
	Slice        int        `json:"slice"`
	CornerParity int        `json:"corner_parity"`
	EdgeParity   int        `json:"edge_parity"`
	LowerBound   int        `json:"lower_bound"` // -1 without tables
}

// Inspect decodes and validates facelets without searching.
func Inspect(facelets string) (State, error) {
	cc, canon, err := decode(facelets)
	if err != nil {
		return State{}, err
	}
	return describe(&cc, canon), nil
}

// Inspect decodes facelets and adds the pruning-table lower bound.
func (s *Solver) Inspect(facelets string) (State, error) {
	cc, canon, err := decode(facelets)
	if err != nil {
		return State{}, err
	}
	st := describe(&cc, canon)

	engine, err := search.NewEngine(cubie.Moves(), s.tables.twistSlice, s.tables.flipSlice, s.cfg.logger)
	if err != nil {
		return State{}, fmt.Errorf("%w: %w", ErrResource, err)
	}
	h, err := engine.Heuristic(&cc)
	if err != nil {
		return State{}, fmt.Errorf("%w: %w", ErrSearchFault, err)
	}
	st.LowerBound = h
	return st, nil
}

func describe(cc *cubie.Cube, canon string) State {
	st := State{
		Facelets:     canon,
		Twist:        coord.Twist(cc),
		Flip:         coord.Flip(cc),
		Slice:        coord.Slice(cc),
		CornerParity: cc.CornerParity(),
		EdgeParity:   cc.EdgeParity(),
		LowerBound:   -1,
	}
	for i := range st.Corners {
		st.Corners[i] = fmt.Sprintf("%s/%d", cc.CP[i], cc.CO[i])
	}
	for i := range st.Edges {
		st.Edges[i] = fmt.Sprintf("%s/%d", cc.EP[i], cc.EO[i])
	}
	return st
}
