// Package search finds a face-turn sequence that solves a cube with
// iterative-deepening A* over the cubie model, bounded by a move ceiling and
// a wall-clock deadline.
package search

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/SeamusWaldron/cubesolver/internal/cubie"
	"github.com/SeamusWaldron/cubesolver/internal/prune"
)

// Outcome is how a search ended.
type Outcome int

const (
	// OutcomeSolved means Path solves the cube.
	OutcomeSolved Outcome = iota
	// OutcomeExhausted means no solution exists within the move ceiling.
	OutcomeExhausted
	// OutcomeTimedOut means the deadline passed before a solution was found.
	OutcomeTimedOut
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSolved:
		return "solved"
	case OutcomeExhausted:
		return "exhausted"
	case OutcomeTimedOut:
		return "timed_out"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Result reports a finished search. Path is only set when Outcome is
// OutcomeSolved; it is empty (not nil) for an already solved cube.
type Result struct {
	Outcome Outcome
	Path    []int
	Depth   int // last bound searched
	Nodes   uint64
	Elapsed time.Duration
}

// Engine errors.
var (
	ErrNoTable      = errors.New("search: twist-slice table is required")
	ErrInvalidDepth = errors.New("search: max depth must be between 0 and 30")
	ErrInvalidCube  = errors.New("search: cube is not solvable")
)

// MaxDepthLimit caps the move ceiling a caller may request.
const MaxDepthLimit = 30

// Engine holds the read-only tables a search needs. One Engine may run many
// searches concurrently; each Run owns its own working memory.
type Engine struct {
	moves  *cubie.MoveTable
	tables []*prune.Table
	log    zerolog.Logger

	// OnDepth, when set, is called each time a new bound starts.
	OnDepth func(bound int, nodes uint64)
}

// NewEngine creates an engine. flipSlice may be nil.
func NewEngine(moves *cubie.MoveTable, twistSlice, flipSlice *prune.Table, log zerolog.Logger) (*Engine, error) {
	if moves == nil {
		moves = cubie.Moves()
	}
	if twistSlice == nil || twistSlice.Kind() != prune.TwistSlice {
		return nil, ErrNoTable
	}
	e := &Engine{
		moves:  moves,
		tables: []*prune.Table{twistSlice},
		log:    log,
	}
	if flipSlice != nil {
		if flipSlice.Kind() != prune.FlipSlice {
			return nil, fmt.Errorf("search: second table must be flip-slice, got %s", flipSlice.Kind())
		}
		e.tables = append(e.tables, flipSlice)
	}
	return e, nil
}

// Heuristic returns the largest lower bound the loaded tables give for c.
func (e *Engine) Heuristic(c *cubie.Cube) (int, error) {
	h := 0
	for _, t := range e.tables {
		b, err := t.Bound(c)
		if err != nil {
			return 0, err
		}
		if b > h {
			h = b
		}
	}
	return h, nil
}

var errDeadline = errors.New("search: deadline exceeded")

// run is the state of one search: a per-depth cube arena and the path of
// moves that produced each arena slot.
type run struct {
	e        *Engine
	stack    []cubie.Cube
	path     []int
	deadline time.Time
	nodes    uint64
}

// Run searches for at most maxDepth moves solving c. Timeout and exhaustion
// are reported through Result.Outcome; an error means the input was not
// solvable or a table lookup failed.
func (e *Engine) Run(c cubie.Cube, maxDepth int, timeout time.Duration) (Result, error) {
	start := time.Now()
	if maxDepth < 0 || maxDepth > MaxDepthLimit {
		return Result{}, fmt.Errorf("%w: got %d", ErrInvalidDepth, maxDepth)
	}
	if err := c.Verify(); err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrInvalidCube, err)
	}

	if c.IsSolved() {
		return Result{Outcome: OutcomeSolved, Path: []int{}, Elapsed: time.Since(start)}, nil
	}

	r := &run{
		e:        e,
		stack:    make([]cubie.Cube, maxDepth+1),
		path:     make([]int, maxDepth),
		deadline: start.Add(timeout),
	}
	r.stack[0] = c

	finish := func(o Outcome, depth int, path []int) (Result, error) {
		res := Result{Outcome: o, Path: path, Depth: depth, Nodes: r.nodes, Elapsed: time.Since(start)}
		e.log.Info().
			Str("outcome", o.String()).
			Int("depth", depth).
			Uint64("nodes", r.nodes).
			Dur("elapsed", res.Elapsed).
			Msg("search finished")
		return res, nil
	}

	if maxDepth == 0 {
		return finish(OutcomeExhausted, 0, nil)
	}

	// Single-move solutions are checked directly.
	for m := 0; m < cubie.NumMoves; m++ {
		r.nodes++
		cubie.Multiply(&c, e.moves.Get(m), &r.stack[1])
		if r.stack[1].IsSolved() {
			return finish(OutcomeSolved, 1, []int{m})
		}
	}

	bound, err := e.Heuristic(&c)
	if err != nil {
		return Result{}, fmt.Errorf("search: start state: %w", err)
	}
	if bound < 2 {
		bound = 2
	}

	for ; bound <= maxDepth; bound++ {
		if e.OnDepth != nil {
			e.OnDepth(bound, r.nodes)
		}
		e.log.Debug().
			Int("bound", bound).
			Uint64("nodes", r.nodes).
			Dur("elapsed", time.Since(start)).
			Msg("search depth")

		found, err := r.dfs(0, bound, -1)
		switch {
		case errors.Is(err, errDeadline):
			return finish(OutcomeTimedOut, bound, nil)
		case err != nil:
			return Result{Nodes: r.nodes, Depth: bound, Elapsed: time.Since(start)}, err
		case found:
			path := make([]int, bound)
			copy(path, r.path[:bound])
			return finish(OutcomeSolved, bound, path)
		}
	}
	return finish(OutcomeExhausted, maxDepth, nil)
}

// dfs explores every sequence of length bound-depth from stack[depth].
// prevFace is the face turned to reach stack[depth], or -1 at the root.
func (r *run) dfs(depth, bound int, prevFace int) (bool, error) {
	r.nodes++
	if time.Now().After(r.deadline) {
		return false, errDeadline
	}

	cur := &r.stack[depth]
	if depth == bound {
		return cur.IsSolved(), nil
	}

	for m := 0; m < cubie.NumMoves; m++ {
		f := int(cubie.MoveFace(m))
		if f == prevFace || prevFace == f+3 {
			continue
		}

		child := &r.stack[depth+1]
		cubie.Multiply(cur, r.e.moves.Get(m), child)

		h, err := r.e.Heuristic(child)
		if err != nil {
			return false, fmt.Errorf("search: depth %d after %s: %w", depth+1, cubie.MoveName(m), err)
		}
		if depth+1+h > bound {
			continue
		}

		r.path[depth] = m
		found, err := r.dfs(depth+1, bound, f)
		if err != nil || found {
			return found, err
		}
	}
	return false, nil
}
