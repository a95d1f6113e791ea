package coord

import (
	"math/rand/v2"
	"testing"

	"github.com/SeamusWaldron/cubesolver/internal/cubie"
)

func TestSolvedCoordinatesAreZero(t *testing.T) {
	c := cubie.Solved()
	if got := Twist(&c); got != 0 {
		t.Errorf("Twist(solved) = %d", got)
	}
	if got := Flip(&c); got != 0 {
		t.Errorf("Flip(solved) = %d", got)
	}
	if got := Slice(&c); got != 0 {
		t.Errorf("Slice(solved) = %d", got)
	}
}

func TestChoose(t *testing.T) {
	tests := []struct{ n, k, want int }{
		{12, 4, 495},
		{11, 4, 330},
		{4, 4, 1},
		{5, 0, 1},
		{3, 4, 0},
		{0, 1, 0},
	}
	for _, tt := range tests {
		if got := choose(tt.n, tt.k); got != tt.want {
			t.Errorf("choose(%d, %d) = %d, want %d", tt.n, tt.k, got, tt.want)
		}
	}
}

func TestTwistRoundTrip(t *testing.T) {
	for i := 0; i < NumTwist; i++ {
		c := cubie.Solved()
		SetTwist(&c, i)
		if got := Twist(&c); got != i {
			t.Fatalf("Twist(SetTwist(%d)) = %d", i, got)
		}
		if err := c.Verify(); err != nil {
			t.Fatalf("SetTwist(%d) produced invalid cube: %v", i, err)
		}
	}
}

func TestFlipRoundTrip(t *testing.T) {
	for i := 0; i < NumFlip; i++ {
		c := cubie.Solved()
		SetFlip(&c, i)
		if got := Flip(&c); got != i {
			t.Fatalf("Flip(SetFlip(%d)) = %d", i, got)
		}
		if err := c.Verify(); err != nil {
			t.Fatalf("SetFlip(%d) produced invalid cube: %v", i, err)
		}
	}
}

func TestSliceRoundTrip(t *testing.T) {
	seen := make(map[[cubie.NumEdges]bool]int)
	for i := 0; i < NumSlice; i++ {
		c := cubie.Solved()
		SetSlice(&c, i)
		if got := Slice(&c); got != i {
			t.Fatalf("Slice(SetSlice(%d)) = %d", i, got)
		}

		var mask [cubie.NumEdges]bool
		n := 0
		for j, e := range c.EP {
			if e.IsSliceEdge() {
				mask[j] = true
				n++
			}
		}
		if n != 4 {
			t.Fatalf("SetSlice(%d) placed %d slice edges", i, n)
		}
		if prev, dup := seen[mask]; dup {
			t.Fatalf("SetSlice(%d) and SetSlice(%d) share a slot set", prev, i)
		}
		seen[mask] = i
	}
}

func TestCoordinatesInRangeAfterRandomMoves(t *testing.T) {
	mt := cubie.Moves()
	r := rand.New(rand.NewPCG(21, 22))
	c := cubie.Solved()
	for i := 0; i < 2000; i++ {
		c = mt.Apply(c, r.IntN(cubie.NumMoves))
		if tw := Twist(&c); tw < 0 || tw >= NumTwist {
			t.Fatalf("twist %d out of range", tw)
		}
		if fl := Flip(&c); fl < 0 || fl >= NumFlip {
			t.Fatalf("flip %d out of range", fl)
		}
		if sl := Slice(&c); sl < 0 || sl >= NumSlice {
			t.Fatalf("slice %d out of range", sl)
		}
	}
}

func TestUDTurnsKeepSliceAndOrientation(t *testing.T) {
	mt := cubie.Moves()
	for _, f := range []cubie.Face{cubie.FaceU, cubie.FaceD} {
		for p := 1; p <= 3; p++ {
			c := mt.Apply(cubie.Solved(), cubie.MoveIndex(f, p))
			if Twist(&c) != 0 || Flip(&c) != 0 || Slice(&c) != 0 {
				t.Errorf("%s should not change twist, flip or slice", cubie.MoveName(cubie.MoveIndex(f, p)))
			}
		}
	}
}

func TestMoveTablesAgreeWithCubieMoves(t *testing.T) {
	mt := cubie.Moves()
	tables := NewMoveTables(mt)
	r := rand.New(rand.NewPCG(23, 24))

	c := cubie.Solved()
	for i := 0; i < 500; i++ {
		m := r.IntN(cubie.NumMoves)
		next := mt.Apply(c, m)

		if got, want := int(tables.Twist[Twist(&c)][m]), Twist(&next); got != want {
			t.Fatalf("twist table after %s: got %d want %d", cubie.MoveName(m), got, want)
		}
		if got, want := int(tables.Flip[Flip(&c)][m]), Flip(&next); got != want {
			t.Fatalf("flip table after %s: got %d want %d", cubie.MoveName(m), got, want)
		}
		if got, want := int(tables.Slice[Slice(&c)][m]), Slice(&next); got != want {
			t.Fatalf("slice table after %s: got %d want %d", cubie.MoveName(m), got, want)
		}
		c = next
	}
}
