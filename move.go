package cubesolver

import (
	"fmt"
	"strings"
	"time"

	"github.com/SeamusWaldron/cubesolver/internal/cubie"
)

// Face represents a cube face in standard notation.
type Face string

const (
	FaceU Face = "U" // Up
	FaceR Face = "R" // Right
	FaceF Face = "F" // Front
	FaceD Face = "D" // Down
	FaceL Face = "L" // Left
	FaceB Face = "B" // Back
)

// Faces lists the faces in move-table order.
var Faces = [...]Face{FaceU, FaceR, FaceF, FaceD, FaceL, FaceB}

func (f Face) index() (cubie.Face, bool) {
	for i, face := range Faces {
		if face == f {
			return cubie.Face(i), true
		}
	}
	return 0, false
}

// Turn represents the direction and magnitude of a face turn.
type Turn int

const (
	CW     Turn = 1  // Clockwise (90 degrees)
	CCW    Turn = -1 // Counter-clockwise (90 degrees)
	Double Turn = 2  // Half turn (180 degrees)
)

// quarterTurns returns the number of clockwise quarter turns, 1 to 3.
func (t Turn) quarterTurns() (int, bool) {
	switch t {
	case CW:
		return 1, true
	case Double:
		return 2, true
	case CCW:
		return 3, true
	}
	return 0, false
}

// Move represents a single cube move with face, turn direction, and optional timestamp.
type Move struct {
	Face Face      // Which face to turn
	Turn Turn      // Direction and amount
	Time time.Time // When the move occurred (optional)
}

// Notation returns the standard cube notation string for this move.
// Examples: R, R', R2, U, U', U2
func (m Move) Notation() string {
	suffix := ""
	switch m.Turn {
	case CCW:
		suffix = "'"
	case Double:
		suffix = "2"
	}
	return string(m.Face) + suffix
}

// Inverse returns the inverse of this move.
// R becomes R', R' becomes R, R2 stays R2.
func (m Move) Inverse() Move {
	inv := m
	switch m.Turn {
	case CW:
		inv.Turn = CCW
	case CCW:
		inv.Turn = CW
	}
	return inv
}

// WithTime returns a copy of the move with the specified timestamp.
func (m Move) WithTime(t time.Time) Move {
	m.Time = t
	return m
}

// String returns the notation string (alias for Notation).
func (m Move) String() string {
	return m.Notation()
}

// Valid reports whether m names one of the 18 face turns.
func (m Move) Valid() bool {
	_, ok := m.index()
	return ok
}

// index maps m to its move-table index.
func (m Move) index() (int, bool) {
	f, ok := m.Face.index()
	if !ok {
		return 0, false
	}
	power, ok := m.Turn.quarterTurns()
	if !ok {
		return 0, false
	}
	return cubie.MoveIndex(f, power), true
}

// moveFromIndex is the inverse of Move.index.
func moveFromIndex(idx int) Move {
	turn := CW
	switch cubie.MovePower(idx) {
	case 2:
		turn = Double
	case 3:
		turn = CCW
	}
	return Move{Face: Faces[cubie.MoveFace(idx)], Turn: turn}
}

// ParseMove parses a standard notation string into a Move.
// Examples: R, R', R2, U, U', U2
// Returns an error if the notation is invalid.
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return Move{}, ErrInvalidNotation
	}

	var face Face
	switch s[0] {
	case 'R', 'r':
		face = FaceR
	case 'L', 'l':
		face = FaceL
	case 'U', 'u':
		face = FaceU
	case 'D', 'd':
		face = FaceD
	case 'F', 'f':
		face = FaceF
	case 'B', 'b':
		face = FaceB
	default:
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}

	turn := CW
	if len(s) > 1 {
		switch s[1:] {
		case "'", "`":
			turn = CCW
		case "2", "2'", "2`":
			turn = Double
		default:
			return Move{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
		}
	}

	return Move{Face: face, Turn: turn}, nil
}

// ParseMoves parses a space-separated sequence of moves.
// Example: "R U R' U'"
// The first invalid token aborts parsing.
func ParseMoves(s string) ([]Move, error) {
	parts := strings.Fields(s)
	moves := make([]Move, 0, len(parts))

	for _, part := range parts {
		move, err := ParseMove(part)
		if err != nil {
			return nil, err
		}
		moves = append(moves, move)
	}

	return moves, nil
}

// FormatMoves formats a slice of moves as a space-separated notation string.
func FormatMoves(moves []Move) string {
	if len(moves) == 0 {
		return ""
	}

	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.Notation()
	}

	return strings.Join(parts, " ")
}

// InvertMoves returns the sequence that undoes moves.
func InvertMoves(moves []Move) []Move {
	inv := make([]Move, len(moves))
	for i, m := range moves {
		inv[len(moves)-1-i] = m.Inverse()
	}
	return inv
}

// ExpandQuarterTurns rewrites half turns as two clockwise quarter turns, for
// consumers that animate one quarter turn at a time.
func ExpandQuarterTurns(moves []Move) []Move {
	out := make([]Move, 0, len(moves))
	for _, m := range moves {
		if m.Turn == Double {
			q := Move{Face: m.Face, Turn: CW, Time: m.Time}
			out = append(out, q, q)
			continue
		}
		out = append(out, m)
	}
	return out
}

// SimplifyMoves merges consecutive turns of the same face, so R R becomes
// R2 and R R' disappears. The merged move keeps the time of the last turn.
func SimplifyMoves(moves []Move) []Move {
	out := make([]Move, 0, len(moves))
	for _, m := range moves {
		if n := len(out); n > 0 && out[n-1].Face == m.Face {
			q := (quarterTurns(out[n-1].Turn) + quarterTurns(m.Turn)) % 4
			out = out[:n-1]
			if q != 0 {
				out = append(out, Move{Face: m.Face, Turn: turnOf(q), Time: m.Time})
			}
			continue
		}
		out = append(out, m)
	}
	return out
}

// quarterTurns counts clockwise quarter turns, 1..3.
func quarterTurns(t Turn) int {
	return (int(t) + 4) % 4
}

func turnOf(q int) Turn {
	switch q {
	case 2:
		return Double
	case 3:
		return CCW
	default:
		return CW
	}
}
