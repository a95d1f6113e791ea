package coord

import "github.com/SeamusWaldron/cubesolver/internal/cubie"

// MoveTables maps each coordinate value and move to the coordinate value
// after the move.
type MoveTables struct {
	Twist [][cubie.NumMoves]uint16
	Flip  [][cubie.NumMoves]uint16
	Slice [][cubie.NumMoves]uint16
}

// NewMoveTables builds the coordinate transition tables from the cubie moves.
// Each entry is computed by setting the coordinate on a solved cube and
// applying the face's quarter turn one to three times.
func NewMoveTables(mt *cubie.MoveTable) *MoveTables {
	t := &MoveTables{
		Twist: make([][cubie.NumMoves]uint16, NumTwist),
		Flip:  make([][cubie.NumMoves]uint16, NumFlip),
		Slice: make([][cubie.NumMoves]uint16, NumSlice),
	}

	build := func(dst [][cubie.NumMoves]uint16, set func(*cubie.Cube, int), get func(*cubie.Cube) int) {
		for i := range dst {
			for f := cubie.Face(0); f < cubie.NumFaces; f++ {
				c := cubie.Solved()
				set(&c, i)
				q := mt.Get(cubie.MoveIndex(f, 1))
				for p := 1; p <= 3; p++ {
					cubie.Multiply(&c, q, &c)
					dst[i][cubie.MoveIndex(f, p)] = uint16(get(&c))
				}
			}
		}
	}

	build(t.Twist, SetTwist, Twist)
	build(t.Flip, SetFlip, Flip)
	build(t.Slice, SetSlice, Slice)
	return t
}
