package cubie

import (
	"fmt"
	"strings"
	"sync"
)

// Face indexes the six faces in move-table order.
type Face uint8

const (
	FaceU Face = iota
	FaceR
	FaceF
	FaceD
	FaceL
	FaceB
)

// NumFaces is the number of turnable faces.
const NumFaces = 6

// NumMoves is the number of elementary moves: 6 faces x 3 powers.
const NumMoves = NumFaces * 3

const faceLetters = "URFDLB"

func (f Face) String() string {
	if int(f) < NumFaces {
		return faceLetters[f : f+1]
	}
	return "?"
}

// Opposite returns the face on the same axis.
func (f Face) Opposite() Face {
	return (f + 3) % NumFaces
}

// MoveIndex returns the move index for a face turned power quarter turns
// clockwise (1, 2 or 3).
func MoveIndex(f Face, power int) int {
	return int(f)*3 + power - 1
}

// MoveFace returns the face turned by move m.
func MoveFace(m int) Face {
	return Face(m / 3)
}

// MovePower returns the number of clockwise quarter turns of move m (1..3).
func MovePower(m int) int {
	return m%3 + 1
}

var powerSuffix = [3]string{"", "2", "'"}

// MoveName returns the notation token for move m, e.g. "R", "R2", "R'".
func MoveName(m int) string {
	if m < 0 || m >= NumMoves {
		return "?"
	}
	return MoveFace(m).String() + powerSuffix[m%3]
}

// ParseMoveName is the inverse of MoveName.
func ParseMoveName(s string) (int, error) {
	if len(s) == 0 || len(s) > 2 {
		return 0, fmt.Errorf("invalid move %q", s)
	}
	f := strings.IndexByte(faceLetters, s[0])
	if f < 0 {
		return 0, fmt.Errorf("invalid move %q", s)
	}
	power := 1
	if len(s) == 2 {
		switch s[1] {
		case '2':
			power = 2
		case '\'':
			power = 3
		default:
			return 0, fmt.Errorf("invalid move %q", s)
		}
	}
	return MoveIndex(Face(f), power), nil
}

// Clockwise quarter turns of each face, in "is replaced by" form: after the
// turn, slot i holds the cubie that was in slot CP[i] before it.
var baseMoves = [NumFaces]Cube{
	FaceU: {
		CP: [NumCorners]Corner{UBR, URF, UFL, ULB, DFR, DLF, DBL, DRB},
		EP: [NumEdges]Edge{UB, UR, UF, UL, DR, DF, DL, DB, FR, FL, BL, BR},
	},
	FaceR: {
		CP: [NumCorners]Corner{DFR, UFL, ULB, URF, DRB, DLF, DBL, UBR},
		CO: [NumCorners]uint8{2, 0, 0, 1, 1, 0, 0, 2},
		EP: [NumEdges]Edge{FR, UF, UL, UB, BR, DF, DL, DB, DR, FL, BL, UR},
	},
	FaceF: {
		CP: [NumCorners]Corner{UFL, DLF, ULB, UBR, URF, DFR, DBL, DRB},
		CO: [NumCorners]uint8{1, 2, 0, 0, 2, 1, 0, 0},
		EP: [NumEdges]Edge{UR, FL, UL, UB, DR, FR, DL, DB, UF, DF, BL, BR},
		EO: [NumEdges]uint8{0, 1, 0, 0, 0, 1, 0, 0, 1, 1, 0, 0},
	},
	FaceD: {
		CP: [NumCorners]Corner{URF, UFL, ULB, UBR, DLF, DBL, DRB, DFR},
		EP: [NumEdges]Edge{UR, UF, UL, UB, DF, DL, DB, DR, FR, FL, BL, BR},
	},
	FaceL: {
		CP: [NumCorners]Corner{URF, ULB, DBL, UBR, DFR, UFL, DLF, DRB},
		CO: [NumCorners]uint8{0, 1, 2, 0, 0, 2, 1, 0},
		EP: [NumEdges]Edge{UR, UF, BL, UB, DR, DF, FL, DB, FR, UL, DL, BR},
	},
	FaceB: {
		CP: [NumCorners]Corner{URF, UFL, UBR, DRB, DFR, DLF, ULB, DBL},
		CO: [NumCorners]uint8{0, 0, 1, 2, 0, 0, 2, 1},
		EP: [NumEdges]Edge{UR, UF, UL, BR, DR, DF, DL, BL, FR, FL, UB, DB},
		EO: [NumEdges]uint8{0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 1, 1},
	},
}

// MoveTable holds the 18 move deltas. It is immutable once built.
type MoveTable struct {
	moves [NumMoves]Cube
}

// NewMoveTable derives all 18 moves from the six quarter turns. Half and
// counter-clockwise turns are compositions of the quarter turn with itself.
func NewMoveTable() *MoveTable {
	t := &MoveTable{}
	for f := 0; f < NumFaces; f++ {
		cur := Solved()
		for p := 0; p < 3; p++ {
			Multiply(&cur, &baseMoves[f], &cur)
			t.moves[f*3+p] = cur
		}
	}
	return t
}

var sharedMoves = sync.OnceValue(NewMoveTable)

// Moves returns the process-wide move table, building it on first use.
func Moves() *MoveTable {
	return sharedMoves()
}

// Get returns a pointer to the delta for move m. Callers must not modify it.
func (t *MoveTable) Get(m int) *Cube {
	return &t.moves[m]
}

// Apply returns c after move m.
func (t *MoveTable) Apply(c Cube, m int) Cube {
	var out Cube
	Multiply(&c, &t.moves[m], &out)
	return out
}

// ApplyAll applies a sequence of moves in order.
func (t *MoveTable) ApplyAll(c Cube, moves []int) Cube {
	for _, m := range moves {
		c = t.Apply(c, m)
	}
	return c
}
