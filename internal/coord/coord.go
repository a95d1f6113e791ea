// Package coord computes the integer coordinates used to index pruning
// tables: corner twist, edge flip and UD-slice position.
package coord

import "github.com/SeamusWaldron/cubesolver/internal/cubie"

// Coordinate ranges.
const (
	NumTwist = 2187 // 3^7
	NumFlip  = 2048 // 2^11
	NumSlice = 495  // C(12,4)
)

// Twist reads corner orientations 0..6 as a base-3 number. The last corner
// is implied by the orientation sum.
func Twist(c *cubie.Cube) int {
	t := 0
	for i := 0; i < cubie.NumCorners-1; i++ {
		t = 3*t + int(c.CO[i])
	}
	return t
}

// SetTwist sets corner orientations so that Twist(c) == t.
func SetTwist(c *cubie.Cube, t int) {
	sum := 0
	for i := cubie.NumCorners - 2; i >= 0; i-- {
		c.CO[i] = uint8(t % 3)
		sum += int(c.CO[i])
		t /= 3
	}
	c.CO[cubie.NumCorners-1] = uint8((3 - sum%3) % 3)
}

// Flip reads edge orientations 0..10 as a base-2 number.
func Flip(c *cubie.Cube) int {
	f := 0
	for i := 0; i < cubie.NumEdges-1; i++ {
		f = 2*f + int(c.EO[i])
	}
	return f
}

// SetFlip sets edge orientations so that Flip(c) == f.
func SetFlip(c *cubie.Cube, f int) {
	sum := 0
	for i := cubie.NumEdges - 2; i >= 0; i-- {
		c.EO[i] = uint8(f & 1)
		sum += int(c.EO[i])
		f >>= 1
	}
	c.EO[cubie.NumEdges-1] = uint8(sum & 1)
}

// Slice ranks the set of edge slots occupied by FR, FL, BL and BR among the
// C(12,4) possible sets, ignoring their order. The solved cube has slice 0.
func Slice(c *cubie.Cube) int {
	a, x := 0, 0
	for j := cubie.NumEdges - 1; j >= 0; j-- {
		if c.EP[j].IsSliceEdge() {
			a += choose(cubie.NumEdges-1-j, x+1)
			x++
		}
	}
	return a
}

var (
	sliceEdges = [4]cubie.Edge{cubie.FR, cubie.FL, cubie.BL, cubie.BR}
	otherEdges = [8]cubie.Edge{cubie.UR, cubie.UF, cubie.UL, cubie.UB, cubie.DR, cubie.DF, cubie.DL, cubie.DB}
)

// SetSlice places the slice edges so that Slice(c) == idx. The order of the
// slice edges among themselves, and of the other edges, is arbitrary.
func SetSlice(c *cubie.Cube, idx int) {
	var placed [cubie.NumEdges]bool
	x := 4
	for j := 0; j < cubie.NumEdges && x > 0; j++ {
		if n := choose(cubie.NumEdges-1-j, x); idx >= n {
			c.EP[j] = sliceEdges[4-x]
			placed[j] = true
			idx -= n
			x--
		}
	}
	k := 0
	for j := 0; j < cubie.NumEdges; j++ {
		if !placed[j] {
			c.EP[j] = otherEdges[k]
			k++
		}
	}
}

// choose returns the binomial coefficient C(n, k), or 0 when k > n.
func choose(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	r := 1
	for i := 1; i <= k; i++ {
		r = r * (n - k + i) / i
	}
	return r
}
