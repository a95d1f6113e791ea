package prune

import (
	"fmt"

	"github.com/SeamusWaldron/cubesolver/internal/coord"
	"github.com/SeamusWaldron/cubesolver/internal/cubie"
)

const unvisited = 0xFF

// rowMoves returns the orientation transition table for kind.
func rowMoves(kind Kind, mt *coord.MoveTables) [][cubie.NumMoves]uint16 {
	if kind == FlipSlice {
		return mt.Flip
	}
	return mt.Twist
}

// Generate builds a table by breadth-first search from the solved
// coordinate pair. It takes a few hundred milliseconds and is meant for
// offline use and tests.
func Generate(kind Kind, mt *coord.MoveTables) (*Table, error) {
	if kind != TwistSlice && kind != FlipSlice {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(kind))
	}
	rows := rowMoves(kind, mt)

	data := make([]byte, kind.Size())
	for i := range data {
		data[i] = unvisited
	}
	data[0] = 0

	frontier := []int32{0}
	for depth := byte(0); len(frontier) > 0; depth++ {
		if depth == unvisited-1 {
			return nil, fmt.Errorf("prune: %s search did not converge", kind)
		}
		var next []int32
		for _, idx := range frontier {
			a, s := int(idx)/coord.NumSlice, int(idx)%coord.NumSlice
			for m := 0; m < cubie.NumMoves; m++ {
				n := int32(int(rows[a][m])*coord.NumSlice + int(mt.Slice[s][m]))
				if data[n] == unvisited {
					data[n] = depth + 1
					next = append(next, n)
				}
			}
		}
		frontier = next
	}

	return &Table{kind: kind, data: data}, nil
}
