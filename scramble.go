package cubesolver

import "math/rand/v2"

// RandomScramble returns n random face turns with no two consecutive turns
// of the same face. A nil r uses the global source.
func RandomScramble(r *rand.Rand, n int) []Move {
	intN := rand.IntN
	if r != nil {
		intN = r.IntN
	}

	moves := make([]Move, 0, n)
	prev := -1
	for len(moves) < n {
		idx := intN(18)
		face := idx / 3
		if face == prev {
			continue
		}
		prev = face
		moves = append(moves, moveFromIndex(idx))
	}
	return moves
}
