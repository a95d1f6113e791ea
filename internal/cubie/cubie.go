// Package cubie provides the permutation/orientation model of a 3x3 cube
// and the group operation used to apply face turns to it.
package cubie

import (
	"fmt"
	"strings"
)

// Corner identifies a corner slot (or the cubie that belongs there when solved).
type Corner uint8

const (
	URF Corner = iota
	UFL
	ULB
	UBR
	DFR
	DLF
	DBL
	DRB
)

// NumCorners is the number of corner cubies.
const NumCorners = 8

var cornerNames = [NumCorners]string{"URF", "UFL", "ULB", "UBR", "DFR", "DLF", "DBL", "DRB"}

func (c Corner) String() string {
	if int(c) < NumCorners {
		return cornerNames[c]
	}
	return "?"
}

// Edge identifies an edge slot (or the cubie that belongs there when solved).
type Edge uint8

const (
	UR Edge = iota
	UF
	UL
	UB
	DR
	DF
	DL
	DB
	FR
	FL
	BL
	BR
)

// NumEdges is the number of edge cubies.
const NumEdges = 12

var edgeNames = [NumEdges]string{"UR", "UF", "UL", "UB", "DR", "DF", "DL", "DB", "FR", "FL", "BL", "BR"}

func (e Edge) String() string {
	if int(e) < NumEdges {
		return edgeNames[e]
	}
	return "?"
}

// IsSliceEdge reports whether e is one of the four UD-slice edges.
func (e Edge) IsSliceEdge() bool {
	return e >= FR && e <= BR
}

// Cube is the cubie-level state of a cube.
//
// CP[i] is the corner cubie sitting in corner slot i and CO[i] its twist.
// EP[i] is the edge cubie sitting in edge slot i and EO[i] its flip.
// The zero value is not a valid cube; use Solved.
type Cube struct {
	CP [NumCorners]Corner
	CO [NumCorners]uint8
	EP [NumEdges]Edge
	EO [NumEdges]uint8
}

// Solved returns the identity cube.
func Solved() Cube {
	var c Cube
	for i := 0; i < NumCorners; i++ {
		c.CP[i] = Corner(i)
	}
	for i := 0; i < NumEdges; i++ {
		c.EP[i] = Edge(i)
	}
	return c
}

// IsSolved returns true if every cubie is home and oriented.
func (c *Cube) IsSolved() bool {
	for i := 0; i < NumCorners; i++ {
		if c.CP[i] != Corner(i) || c.CO[i] != 0 {
			return false
		}
	}
	for i := 0; i < NumEdges; i++ {
		if c.EP[i] != Edge(i) || c.EO[i] != 0 {
			return false
		}
	}
	return true
}

// Multiply writes a*b into out: the state reached by applying a, then b.
// out may not alias b; it may alias a only if the caller does not need a.
func Multiply(a, b, out *Cube) {
	if out == a {
		tmp := *a
		a = &tmp
	}
	for i := 0; i < NumCorners; i++ {
		src := b.CP[i]
		out.CP[i] = a.CP[src]
		out.CO[i] = (a.CO[src] + b.CO[i]) % 3
	}
	for i := 0; i < NumEdges; i++ {
		src := b.EP[i]
		out.EP[i] = a.EP[src]
		out.EO[i] = (a.EO[src] + b.EO[i]) & 1
	}
}

// Compose returns c*b.
func (c Cube) Compose(b Cube) Cube {
	var out Cube
	Multiply(&c, &b, &out)
	return out
}

// Inverse returns the cube x with c*x == Solved().
func (c Cube) Inverse() Cube {
	var inv Cube
	for i := 0; i < NumCorners; i++ {
		inv.CP[c.CP[i]] = Corner(i)
	}
	for i := 0; i < NumCorners; i++ {
		inv.CO[i] = (3 - c.CO[inv.CP[i]]) % 3
	}
	for i := 0; i < NumEdges; i++ {
		inv.EP[c.EP[i]] = Edge(i)
	}
	for i := 0; i < NumEdges; i++ {
		inv.EO[i] = c.EO[inv.EP[i]]
	}
	return inv
}

// String returns a compact debug representation.
func (c Cube) String() string {
	var b strings.Builder
	b.WriteString("corners:")
	for i := 0; i < NumCorners; i++ {
		fmt.Fprintf(&b, " %s/%d", c.CP[i], c.CO[i])
	}
	b.WriteString(" edges:")
	for i := 0; i < NumEdges; i++ {
		fmt.Fprintf(&b, " %s/%d", c.EP[i], c.EO[i])
	}
	return b.String()
}
