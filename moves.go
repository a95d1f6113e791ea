package cubesolver

// Predefined moves, so sequences can be written without building Move values:
//
//	cube.Apply(cubesolver.R, cubesolver.U, cubesolver.RPrime, cubesolver.UPrime)
var (
	U, UPrime, U2 = turnsOf(FaceU)
	R, RPrime, R2 = turnsOf(FaceR)
	F, FPrime, F2 = turnsOf(FaceF)
	D, DPrime, D2 = turnsOf(FaceD)
	L, LPrime, L2 = turnsOf(FaceL)
	B, BPrime, B2 = turnsOf(FaceB)
)

func turnsOf(f Face) (cw, ccw, half Move) {
	return Move{Face: f, Turn: CW}, Move{Face: f, Turn: CCW}, Move{Face: f, Turn: Double}
}

// SexyMove is R U R' U'. Six repetitions return to the start.
var SexyMove = []Move{R, U, RPrime, UPrime}

// Superflip flips all twelve edges in place. It needs 20 moves in the face
// turn metric.
var Superflip = []Move{U, R2, F, B, R, B2, R, U2, L, B2, R, UPrime, DPrime, R2, F, RPrime, L, B2, U2, F2}
