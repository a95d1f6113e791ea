package facelet

import (
	"errors"
	"fmt"

	"github.com/SeamusWaldron/cubesolver/internal/cubie"
)

// Decoding errors.
var (
	ErrUndecodableCorner = errors.New("facelet: corner stickers do not form a cube corner")
	ErrUndecodableEdge   = errors.New("facelet: edge stickers do not form a cube edge")
)

// Facelet positions of each corner slot, starting with the U or D sticker and
// continuing clockwise.
var cornerFacelet = [cubie.NumCorners][3]int{
	{8, 9, 20},   // URF: U9 R1 F3
	{6, 18, 38},  // UFL: U7 F1 L3
	{0, 36, 47},  // ULB: U1 L1 B3
	{2, 45, 11},  // UBR: U3 B1 R3
	{29, 26, 15}, // DFR: D3 F9 R7
	{27, 44, 24}, // DLF: D1 L9 F7
	{33, 53, 42}, // DBL: D7 B9 L7
	{35, 17, 51}, // DRB: D9 R9 B7
}

// Facelet positions of each edge slot; the first one is the reference
// sticker (U/D for layer edges, F/B for slice edges).
var edgeFacelet = [cubie.NumEdges][2]int{
	{5, 10},  // UR: U6 R2
	{7, 19},  // UF: U8 F2
	{3, 37},  // UL: U4 L2
	{1, 46},  // UB: U2 B2
	{32, 16}, // DR: D6 R8
	{28, 25}, // DF: D2 F8
	{30, 43}, // DL: D4 L8
	{34, 52}, // DB: D8 B8
	{23, 12}, // FR: F6 R4
	{21, 41}, // FL: F4 L6
	{50, 39}, // BL: B6 L4
	{48, 14}, // BR: B4 R6
}

// Colors of each corner cubie, in the same sticker order as cornerFacelet.
var cornerColor = [cubie.NumCorners][3]Color{
	{U, R, F}, {U, F, L}, {U, L, B}, {U, B, R},
	{D, F, R}, {D, L, F}, {D, B, L}, {D, R, B},
}

// Colors of each edge cubie, in the same sticker order as edgeFacelet.
var edgeColor = [cubie.NumEdges][2]Color{
	{U, R}, {U, F}, {U, L}, {U, B},
	{D, R}, {D, F}, {D, L}, {D, B},
	{F, R}, {F, L}, {B, L}, {B, R},
}

// ToCubie decodes the stickers into corner and edge permutation and
// orientation. The result is not checked for reachability; call Verify.
func (c Cube) ToCubie() (cubie.Cube, error) {
	var cc cubie.Cube

	var cornerTaken [cubie.NumCorners]bool
	for i := 0; i < cubie.NumCorners; i++ {
		slot, ori, ok := c.matchCorner(i)
		if !ok {
			fc := cornerFacelet[i]
			return cc, fmt.Errorf("%w: slot %s reads %s%s%s", ErrUndecodableCorner,
				cubie.Corner(i), c[fc[0]], c[fc[1]], c[fc[2]])
		}
		if cornerTaken[slot] {
			return cc, fmt.Errorf("%w: %s appears twice", ErrUndecodableCorner, slot)
		}
		cornerTaken[slot] = true
		cc.CP[i] = slot
		cc.CO[i] = uint8(ori)
	}

	var edgeTaken [cubie.NumEdges]bool
	for i := 0; i < cubie.NumEdges; i++ {
		slot, ori, ok := c.matchEdge(i)
		if !ok {
			fe := edgeFacelet[i]
			return cc, fmt.Errorf("%w: slot %s reads %s%s", ErrUndecodableEdge,
				cubie.Edge(i), c[fe[0]], c[fe[1]])
		}
		if edgeTaken[slot] {
			return cc, fmt.Errorf("%w: %s appears twice", ErrUndecodableEdge, slot)
		}
		edgeTaken[slot] = true
		cc.EP[i] = slot
		cc.EO[i] = uint8(ori)
	}

	return cc, nil
}

// matchCorner finds the corner cubie whose colors, read from corner slot i
// starting at rotation ori, match a canonical label exactly.
func (c Cube) matchCorner(i int) (cubie.Corner, int, bool) {
	fc := cornerFacelet[i]
	for ori := 0; ori < 3; ori++ {
		label := [3]Color{c[fc[ori]], c[fc[(ori+1)%3]], c[fc[(ori+2)%3]]}
		for j := 0; j < cubie.NumCorners; j++ {
			if cornerColor[j] == label {
				return cubie.Corner(j), ori, true
			}
		}
	}
	return 0, 0, false
}

func (c Cube) matchEdge(i int) (cubie.Edge, int, bool) {
	fe := edgeFacelet[i]
	for ori := 0; ori < 2; ori++ {
		label := [2]Color{c[fe[ori]], c[fe[(ori+1)%2]]}
		for j := 0; j < cubie.NumEdges; j++ {
			if edgeColor[j] == label {
				return cubie.Edge(j), ori, true
			}
		}
	}
	return 0, 0, false
}

// FromCubie renders a cubie cube as stickers. Centers are fixed.
func FromCubie(cc cubie.Cube) Cube {
	var c Cube
	for f := U; f <= B; f++ {
		c[9*int(f)+4] = f
	}
	for i := 0; i < cubie.NumCorners; i++ {
		j := cc.CP[i]
		ori := int(cc.CO[i])
		for n := 0; n < 3; n++ {
			c[cornerFacelet[i][(n+ori)%3]] = cornerColor[j][n]
		}
	}
	for i := 0; i < cubie.NumEdges; i++ {
		j := cc.EP[i]
		ori := int(cc.EO[i])
		for n := 0; n < 2; n++ {
			c[edgeFacelet[i][(n+ori)%2]] = edgeColor[j][n]
		}
	}
	return c
}
