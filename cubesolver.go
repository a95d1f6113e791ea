// Package cubesolver solves 3x3 Rubik's cubes described by their 54
// stickers.
//
// # Quick Start
//
// Load the pruning tables once and share the solver:
//
//	tables, err := cubesolver.LoadTables("twist_slice.prun", "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	solver, err := cubesolver.NewSolver(tables)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	sol, err := solver.Solve("UUFUUFUUFRRRRRRRRRFFDFFDFFDDDBDDBDDBLLLLLLLLLUBBUBBUBB")
//	if err != nil {
//	    log.Fatal(err) // the input was rejected
//	}
//	if err := sol.Err(); err != nil {
//	    log.Fatal(err) // timeout or no solution within the move ceiling
//	}
//	fmt.Println(sol) // R'
//
// # Facelet Strings
//
// A cube is written as 54 symbols, face by face in the order U, R, F, D, L,
// B, each face row by row. The symbol on each center names its face, so any
// six-letter alphabet works as long as the centers differ.
//
// # Moves
//
// Solutions are space-separated tokens: a face letter (U, D, L, R, F, B)
// optionally followed by 2 (half turn) or ' (counter-clockwise). An empty
// solution means the cube was already solved.
//
// # Cube Simulation
//
// The Cube type applies moves without a solver:
//
//	cube := cubesolver.NewCube()
//	cube.Apply(cubesolver.R, cubesolver.U, cubesolver.RPrime, cubesolver.UPrime)
//	fmt.Println(cube.Facelets())
package cubesolver
