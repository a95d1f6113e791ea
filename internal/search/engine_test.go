package search

import (
	"errors"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/SeamusWaldron/cubesolver/internal/coord"
	"github.com/SeamusWaldron/cubesolver/internal/cubie"
	"github.com/SeamusWaldron/cubesolver/internal/prune"
)

var (
	tablesOnce sync.Once
	twistSlice *prune.Table
	flipSlice  *prune.Table
	tablesErr  error
)

func loadTables(t *testing.T) (*prune.Table, *prune.Table) {
	t.Helper()
	tablesOnce.Do(func() {
		mt := coord.NewMoveTables(cubie.Moves())
		twistSlice, tablesErr = prune.Generate(prune.TwistSlice, mt)
		if tablesErr != nil {
			return
		}
		flipSlice, tablesErr = prune.Generate(prune.FlipSlice, mt)
	})
	if tablesErr != nil {
		t.Fatalf("generate tables: %v", tablesErr)
	}
	return twistSlice, flipSlice
}

func newEngine(t *testing.T, withFlip bool) *Engine {
	t.Helper()
	ts, fs := loadTables(t)
	if !withFlip {
		fs = nil
	}
	e, err := NewEngine(cubie.Moves(), ts, fs, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func scramble(t *testing.T, moves ...string) cubie.Cube {
	t.Helper()
	mt := cubie.Moves()
	c := cubie.Solved()
	for _, s := range moves {
		m, err := cubie.ParseMoveName(s)
		if err != nil {
			t.Fatal(err)
		}
		c = mt.Apply(c, m)
	}
	return c
}

func names(path []int) []string {
	out := make([]string, len(path))
	for i, m := range path {
		out[i] = cubie.MoveName(m)
	}
	return out
}

func TestSolvedCubeHasEmptyPath(t *testing.T) {
	e := newEngine(t, false)
	res, err := e.Run(cubie.Solved(), 21, 5*time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome != OutcomeSolved {
		t.Fatalf("outcome = %s", res.Outcome)
	}
	if res.Path == nil || len(res.Path) != 0 {
		t.Errorf("path = %v, want empty", res.Path)
	}
}

func TestSingleMoveIsUndone(t *testing.T) {
	e := newEngine(t, false)
	for m := 0; m < cubie.NumMoves; m++ {
		c := cubie.Moves().Apply(cubie.Solved(), m)
		res, err := e.Run(c, 21, 5*time.Second)
		if err != nil {
			t.Fatal(err)
		}
		if res.Outcome != OutcomeSolved || len(res.Path) != 1 {
			t.Fatalf("%s: outcome %s path %v", cubie.MoveName(m), res.Outcome, names(res.Path))
		}
		inv := cubie.MoveIndex(cubie.MoveFace(m), 4-cubie.MovePower(m))
		if res.Path[0] != inv {
			t.Errorf("%s solved by %s, want %s", cubie.MoveName(m), cubie.MoveName(res.Path[0]), cubie.MoveName(inv))
		}
	}
}

func TestShortScramblesAreSolved(t *testing.T) {
	for _, withFlip := range []bool{false, true} {
		e := newEngine(t, withFlip)
		mt := cubie.Moves()
		r := rand.New(rand.NewPCG(41, 42))

		for i := 0; i < 20; i++ {
			n := 2 + r.IntN(4)
			c := cubie.Solved()
			for k := 0; k < n; k++ {
				c = mt.Apply(c, r.IntN(cubie.NumMoves))
			}

			res, err := e.Run(c, 21, 30*time.Second)
			if err != nil {
				t.Fatal(err)
			}
			if res.Outcome != OutcomeSolved {
				t.Fatalf("flip=%v: outcome %s for %s", withFlip, res.Outcome, c)
			}
			if len(res.Path) > n {
				t.Errorf("flip=%v: %d-move scramble solved in %d moves", withFlip, n, len(res.Path))
			}
			if got := mt.ApplyAll(c, res.Path); !got.IsSolved() {
				t.Errorf("flip=%v: %v does not solve %s", withFlip, names(res.Path), c)
			}
		}
	}
}

func TestSolutionRespectsFaceOrdering(t *testing.T) {
	e := newEngine(t, true)
	c := scramble(t, "U", "D", "R", "L'", "F2")
	res, err := e.Run(c, 21, 30*time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome != OutcomeSolved {
		t.Fatalf("outcome = %s", res.Outcome)
	}
	for i := 1; i < len(res.Path); i++ {
		prev, cur := cubie.MoveFace(res.Path[i-1]), cubie.MoveFace(res.Path[i])
		if prev == cur {
			t.Errorf("consecutive turns of %s in %v", cur, names(res.Path))
		}
		if prev == cur+3 {
			t.Errorf("%s directly after %s in %v", cur, prev, names(res.Path))
		}
	}
}

func TestInvalidCubeIsRejected(t *testing.T) {
	e := newEngine(t, false)
	c := cubie.Solved()
	c.CO[0] = 1
	_, err := e.Run(c, 21, time.Second)
	if !errors.Is(err, ErrInvalidCube) {
		t.Errorf("Run() = %v, want ErrInvalidCube", err)
	}
	if !errors.Is(err, cubie.ErrCornerTwist) {
		t.Errorf("Run() = %v, should wrap ErrCornerTwist", err)
	}
}

func TestInvalidDepth(t *testing.T) {
	e := newEngine(t, false)
	for _, d := range []int{-1, MaxDepthLimit + 1} {
		if _, err := e.Run(cubie.Solved(), d, time.Second); !errors.Is(err, ErrInvalidDepth) {
			t.Errorf("Run(maxDepth=%d) = %v, want ErrInvalidDepth", d, err)
		}
	}
}

func TestTinyTimeout(t *testing.T) {
	e := newEngine(t, false)
	c := scramble(t, "R", "U", "F", "L", "D2", "B'", "R2", "F'", "U2", "L'", "B", "D")
	res, err := e.Run(c, 21, time.Nanosecond)
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome != OutcomeTimedOut {
		t.Fatalf("outcome = %s, want timed_out", res.Outcome)
	}
	if res.Path != nil {
		t.Errorf("timed out search returned a path: %v", names(res.Path))
	}
}

func TestExhaustedWithinCeiling(t *testing.T) {
	e := newEngine(t, false)
	c := scramble(t, "R", "U", "F")
	res, err := e.Run(c, 2, 30*time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome != OutcomeExhausted {
		t.Errorf("outcome = %s, want exhausted", res.Outcome)
	}
	if res.Path != nil {
		t.Errorf("exhausted search returned a path: %v", names(res.Path))
	}
}

func TestOnDepthHook(t *testing.T) {
	e := newEngine(t, false)
	var bounds []int
	e.OnDepth = func(bound int, _ uint64) { bounds = append(bounds, bound) }

	res, err := e.Run(scramble(t, "R", "U", "F"), 21, 30*time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome != OutcomeSolved {
		t.Fatalf("outcome = %s", res.Outcome)
	}
	if len(bounds) == 0 {
		t.Fatal("OnDepth was never called")
	}
	for i := 1; i < len(bounds); i++ {
		if bounds[i] != bounds[i-1]+1 {
			t.Errorf("bounds not consecutive: %v", bounds)
		}
	}
	if last := bounds[len(bounds)-1]; last != res.Depth {
		t.Errorf("last bound %d, result depth %d", last, res.Depth)
	}
}

func TestNewEngineRequiresTwistSlice(t *testing.T) {
	_, fs := loadTables(t)
	if _, err := NewEngine(cubie.Moves(), nil, nil, zerolog.Nop()); !errors.Is(err, ErrNoTable) {
		t.Errorf("nil table: %v, want ErrNoTable", err)
	}
	if _, err := NewEngine(cubie.Moves(), fs, nil, zerolog.Nop()); !errors.Is(err, ErrNoTable) {
		t.Errorf("flip table as twist: %v, want ErrNoTable", err)
	}
}

func TestEngineIsSafeForConcurrentRuns(t *testing.T) {
	e := newEngine(t, false)
	mt := cubie.Moves()
	scrambles := [][]string{
		{"R", "U"}, {"F2", "L"}, {"B", "D'"}, {"U", "R2", "F"},
	}

	var wg sync.WaitGroup
	errs := make([]error, len(scrambles))
	for i, s := range scrambles {
		wg.Add(1)
		go func(i int, c cubie.Cube) {
			defer wg.Done()
			res, err := e.Run(c, 21, 30*time.Second)
			if err != nil {
				errs[i] = err
				return
			}
			if got := mt.ApplyAll(c, res.Path); !got.IsSolved() {
				errs[i] = errors.New("path does not solve the cube")
			}
		}(i, scramble(t, s...))
	}
	wg.Wait()
	for i, err := range errs {
		if err != nil {
			t.Errorf("scramble %v: %v", scrambles[i], err)
		}
	}
}

func TestHeuristicReportsCoordinateFault(t *testing.T) {
	e := newEngine(t, true)

	twisted := cubie.Solved()
	twisted.CO[0] = 5
	if _, err := e.Heuristic(&twisted); !errors.Is(err, prune.ErrCoordinateRange) {
		t.Errorf("Heuristic(CO[0]=5) = %v, want ErrCoordinateRange", err)
	}

	flipped := cubie.Solved()
	flipped.EO[0] = 2
	if _, err := e.Heuristic(&flipped); !errors.Is(err, prune.ErrCoordinateRange) {
		t.Errorf("Heuristic(EO[0]=2) = %v, want ErrCoordinateRange", err)
	}
}
