package prune

import (
	"fmt"

	"github.com/SeamusWaldron/cubesolver/internal/coord"
	"github.com/SeamusWaldron/cubesolver/internal/cubie"
)

// Verify checks that the table is the breadth-first distance table for the
// coordinate encoding used by this package. A table produced with any other
// slice numbering, or damaged on disk, fails one of these checks:
//
//   - only the solved pair has distance zero
//   - no entry is unvisited
//   - one move changes the distance by at most one
//   - every positive entry has a neighbour one closer
func (t *Table) Verify(mt *coord.MoveTables) error {
	rows := rowMoves(t.kind, mt)

	if t.data[0] != 0 {
		return fmt.Errorf("%w: solved entry is %d", ErrProvenance, t.data[0])
	}

	for idx, v := range t.data {
		if v == unvisited {
			return fmt.Errorf("%w: entry %d is unvisited", ErrProvenance, idx)
		}
		if v == 0 && idx != 0 {
			return fmt.Errorf("%w: entry %d claims to be solved", ErrProvenance, idx)
		}

		a, s := idx/coord.NumSlice, idx%coord.NumSlice
		closer := v == 0
		for m := 0; m < cubie.NumMoves; m++ {
			n := t.data[int(rows[a][m])*coord.NumSlice+int(mt.Slice[s][m])]
			if n > v+1 || v > n+1 {
				return fmt.Errorf("%w: entry %d=%d next to %d after %s",
					ErrProvenance, idx, v, n, cubie.MoveName(m))
			}
			if n+1 == v {
				closer = true
			}
		}
		if !closer {
			return fmt.Errorf("%w: entry %d=%d has no neighbour at %d", ErrProvenance, idx, v, v-1)
		}
	}
	return nil
}
