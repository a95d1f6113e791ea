package cubesolver

import (
	"bytes"
	"errors"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

var (
	tablesOnce sync.Once
	testTables *Tables
	tablesErr  error
)

func sharedTables(t *testing.T) *Tables {
	t.Helper()
	tablesOnce.Do(func() {
		testTables, tablesErr = GenerateTables(true)
	})
	if tablesErr != nil {
		t.Fatalf("GenerateTables: %v", tablesErr)
	}
	return testTables
}

func newTestSolver(t *testing.T, opts ...Option) *Solver {
	t.Helper()
	s, err := NewSolver(sharedTables(t), opts...)
	if err != nil {
		t.Fatalf("NewSolver: %v", err)
	}
	return s
}

func TestSolveSolvedCube(t *testing.T) {
	s := newTestSolver(t)
	sol, err := s.Solve(solvedFacelets)
	if err != nil {
		t.Fatal(err)
	}
	if sol.Status != StatusSolved || sol.Err() != nil {
		t.Fatalf("status = %s, err = %v", sol.Status, sol.Err())
	}
	if sol.String() != "" || sol.Len() != 0 {
		t.Errorf("solution = %q, want empty", sol.String())
	}
}

func TestSolveSingleR(t *testing.T) {
	s := newTestSolver(t)
	sol, err := s.Solve("UUFUUFUUFRRRRRRRRRFFDFFDFFDDDBDDBDDBLLLLLLLLLUBBUBBUBB")
	if err != nil {
		t.Fatal(err)
	}
	if got := sol.String(); got != "R'" {
		t.Errorf("solution = %q, want R'", got)
	}
}

func TestSolveAlternateAlphabet(t *testing.T) {
	c := NewCube()
	c.Apply(F, U2)
	painted := paint(c.Facelets(), "WRGYOB")

	s := newTestSolver(t)
	sol, err := s.Solve(painted)
	if err != nil {
		t.Fatal(err)
	}
	if sol.Facelets != c.Facelets() {
		t.Errorf("canonical facelets = %s, want %s", sol.Facelets, c.Facelets())
	}
	c.Apply(sol.Moves...)
	if !c.IsSolved() {
		t.Errorf("%q does not solve the cube", sol)
	}
}

func TestSolveShortScrambles(t *testing.T) {
	s := newTestSolver(t, WithTimeout(30*time.Second))
	r := rand.New(rand.NewPCG(61, 62))

	for i := 0; i < 15; i++ {
		scramble := RandomScramble(r, 2+r.IntN(4))
		c := NewCube()
		c.Apply(scramble...)

		sol, err := s.Solve(c.Facelets())
		if err != nil {
			t.Fatalf("Solve(%s): %v", FormatMoves(scramble), err)
		}
		if sol.Status != StatusSolved {
			t.Fatalf("scramble %q: status %s", FormatMoves(scramble), sol.Status)
		}
		if sol.Len() > len(scramble) {
			t.Errorf("scramble %q solved with longer %q", FormatMoves(scramble), sol)
		}
		c.Apply(sol.Moves...)
		if !c.IsSolved() {
			t.Errorf("%q does not solve %q", sol, FormatMoves(scramble))
			t.Log(c.String())
		}
	}
}

func TestSolveRejectsTwistedCornerBeforeSearch(t *testing.T) {
	b := []byte(solvedFacelets)
	b[8], b[9], b[20] = 'F', 'U', 'R'

	searched := false
	s := newTestSolver(t, WithDepthHook(func(int, uint64) { searched = true }))
	_, err := s.Solve(string(b))
	if !errors.Is(err, ErrInvalidCubeState) {
		t.Fatalf("Solve() = %v, want ErrInvalidCubeState", err)
	}
	if searched {
		t.Error("search should not start for an invalid cube")
	}
	if ErrorKind(err) != "invalid_cube_state" {
		t.Errorf("ErrorKind = %q", ErrorKind(err))
	}
}

func TestSolveTinyTimeout(t *testing.T) {
	s := newTestSolver(t)
	c := NewCube()
	c.Apply(Superflip...)

	sol, err := s.Solve(c.Facelets(), WithTimeout(time.Nanosecond))
	if err != nil {
		t.Fatal(err)
	}
	if sol.Status != StatusTimeout {
		t.Fatalf("status = %s, want timeout", sol.Status)
	}
	if sol.Moves != nil {
		t.Errorf("timed out solve returned moves %q", sol)
	}
	if !errors.Is(sol.Err(), ErrSearchTimeout) {
		t.Errorf("Err() = %v, want ErrSearchTimeout", sol.Err())
	}
}

func TestSolveNoSolutionWithinBound(t *testing.T) {
	s := newTestSolver(t)
	c := NewCube()
	c.Apply(R, U, F)

	sol, err := s.Solve(c.Facelets(), WithMaxDepth(2))
	if err != nil {
		t.Fatal(err)
	}
	if sol.Status != StatusNoSolution {
		t.Fatalf("status = %s, want no_solution", sol.Status)
	}
	if !errors.Is(sol.Err(), ErrNoSolutionWithinBound) {
		t.Errorf("Err() = %v", sol.Err())
	}
	if ErrorKind(sol.Err()) != "no_solution" {
		t.Errorf("ErrorKind = %q", ErrorKind(sol.Err()))
	}
}

func TestInvalidOptions(t *testing.T) {
	tables := sharedTables(t)
	if _, err := NewSolver(tables, WithMaxDepth(0)); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("max depth 0: %v", err)
	}
	if _, err := NewSolver(tables, WithTimeout(-time.Second)); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("negative timeout: %v", err)
	}
	if _, err := NewSolver(nil); !errors.Is(err, ErrResource) {
		t.Errorf("nil tables: %v", err)
	}

	s := newTestSolver(t)
	if _, err := s.Solve(solvedFacelets, WithMaxDepth(99)); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("per-call max depth 99: %v", err)
	}
}

func TestInspect(t *testing.T) {
	c := NewCube()
	c.Apply(R)

	st, err := Inspect(c.Facelets())
	if err != nil {
		t.Fatal(err)
	}
	if st.Twist == 0 || st.Slice == 0 {
		t.Errorf("R should move twist and slice: %+v", st)
	}
	if st.Flip != 0 {
		t.Errorf("R keeps edge orientation, flip = %d", st.Flip)
	}
	if st.LowerBound != -1 {
		t.Errorf("LowerBound without tables = %d", st.LowerBound)
	}
	if st.CornerParity != st.EdgeParity {
		t.Error("parities should match")
	}

	st, err = newTestSolver(t).Inspect(c.Facelets())
	if err != nil {
		t.Fatal(err)
	}
	if st.LowerBound != 1 {
		t.Errorf("LowerBound after R = %d, want 1", st.LowerBound)
	}

	if _, err := Inspect("nope"); !errors.Is(err, ErrMalformedInput) {
		t.Errorf("Inspect(nope) = %v", err)
	}
}

func TestTablesVerifyAndReload(t *testing.T) {
	tables := sharedTables(t)
	if err := tables.Verify(); err != nil {
		t.Fatalf("generated tables should verify: %v", err)
	}

	dir := t.TempDir()
	twistPath := filepath.Join(dir, "twist.prun")
	var buf bytes.Buffer
	if _, err := tables.twistSlice.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(twistPath, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadTables(twistPath, "")
	if err != nil {
		t.Fatalf("LoadTables: %v", err)
	}
	if loaded.HasFlipSlice() {
		t.Error("flip-slice should be absent")
	}
	if loaded.Digests()["twist-slice"] != tables.Digests()["twist-slice"] {
		t.Error("digest changed after reload")
	}

	if _, err := LoadTables(filepath.Join(dir, "missing.prun"), ""); !errors.Is(err, ErrResource) {
		t.Errorf("missing table: %v, want ErrResource", err)
	}
	if _, err := ReadTables(bytes.NewReader(buf.Bytes()[:100]), nil); !errors.Is(err, ErrResource) {
		t.Errorf("short table: %v, want ErrResource", err)
	}
}

func TestTablesWriteFiles(t *testing.T) {
	tables := sharedTables(t)
	dir := t.TempDir()
	twistPath, flipPath := filepath.Join(dir, "ts.prun"), filepath.Join(dir, "fs.prun")
	if err := tables.WriteFiles(twistPath, flipPath); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadTables(twistPath, flipPath)
	if err != nil {
		t.Fatal(err)
	}
	if !loaded.HasFlipSlice() {
		t.Error("flip-slice table was not written")
	}
	for kind, d := range tables.Digests() {
		if loaded.Digests()[kind] != d {
			t.Errorf("%s digest changed", kind)
		}
	}
	if err := tables.WriteFiles(filepath.Join(dir, "missing", "ts.prun"), ""); !errors.Is(err, ErrResource) {
		t.Errorf("unwritable path: %v, want ErrResource", err)
	}
}

func TestSolverConcurrentUse(t *testing.T) {
	s := newTestSolver(t)
	inputs := [][]Move{{R, U}, {F2, LPrime}, {B, D}, {U, R2, F}}

	var wg sync.WaitGroup
	errs := make(chan error, len(inputs))
	for _, seq := range inputs {
		wg.Add(1)
		go func(seq []Move) {
			defer wg.Done()
			c := NewCube()
			c.Apply(seq...)
			sol, err := s.Solve(c.Facelets())
			if err != nil {
				errs <- err
				return
			}
			c.Apply(sol.Moves...)
			if !c.IsSolved() {
				errs <- errors.New("solution for " + FormatMoves(seq) + " does not solve")
			}
		}(seq)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

// paint rewrites a URFDLB facelet string with another six-letter alphabet.
func paint(facelets, alphabet string) string {
	const faces = "URFDLB"
	b := []byte(facelets)
	for i, ch := range b {
		for j := 0; j < len(faces); j++ {
			if faces[j] == ch {
				b[i] = alphabet[j]
				break
			}
		}
	}
	return string(b)
}
