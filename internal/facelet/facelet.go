// Package facelet converts between the 54-sticker representation of a cube
// and the cubie model.
//
// Facelets are indexed face by face in the order U, R, F, D, L, B. Each face
// is read row by row as seen from outside the cube with U on top of F, R and
// L, and B on top of U when the net is folded:
//
//	             |*U1**U2**U3*|
//	             |*U4**U5**U6*|
//	             |*U7**U8**U9*|
//	|*L1**L2**L3*|*F1**F2**F3*|*R1**R2**R3*|*B1**B2**B3*|
//	|*L4**L5**L6*|*F4**F5**F6*|*R4**R5**R6*|*B4**B5**B6*|
//	|*L7**L8**L9*|*F7**F8**F9*|*R7**R8**R9*|*B7**B8**B9*|
//	             |*D1**D2**D3*|
//	             |*D4**D5**D6*|
//	             |*D7**D8**D9*|
package facelet

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Color is the face a sticker belongs to once the cube is solved.
type Color uint8

const (
	U Color = iota
	R
	F
	D
	L
	B
)

// Count is the number of facelets on a cube.
const Count = 54

const letters = "URFDLB"

func (c Color) String() string {
	if c <= B {
		return letters[c : c+1]
	}
	return "?"
}

// Parse errors.
var (
	ErrInvalidLength        = errors.New("facelet: cube string must be 54 characters")
	ErrInvalidFaceletCounts = errors.New("facelet: each of six symbols must appear exactly 9 times")
	ErrInvalidCenters       = errors.New("facelet: face centers must be six distinct symbols")
)

// Cube is a facelet cube with colors already mapped to face identities.
type Cube [Count]Color

// Solved returns the solved facelet cube.
func Solved() Cube {
	var c Cube
	for i := range c {
		c[i] = Color(i / 9)
	}
	return c
}

// Parse reads a 54-symbol facelet string. The sticker alphabet is not fixed:
// the symbol on each face's center names that face, so "UUUU...BBB" and
// "WWWW...GGG" style inputs are both accepted.
func Parse(s string) (Cube, error) {
	var c Cube
	if len(s) != Count {
		return c, fmt.Errorf("%w: got %d", ErrInvalidLength, len(s))
	}

	counts := make(map[byte]int, 6)
	for i := 0; i < Count; i++ {
		counts[s[i]]++
	}
	if len(counts) != 6 || !allNine(counts) {
		return c, fmt.Errorf("%w: %s", ErrInvalidFaceletCounts, formatCounts(counts))
	}

	faceOf := make(map[byte]Color, 6)
	for f := U; f <= B; f++ {
		sym := s[9*int(f)+4]
		if _, dup := faceOf[sym]; dup {
			return c, fmt.Errorf("%w: %q is the center of two faces", ErrInvalidCenters, sym)
		}
		faceOf[sym] = f
	}

	for i := 0; i < Count; i++ {
		c[i] = faceOf[s[i]]
	}
	return c, nil
}

// Canonical parses s and returns it rewritten in the URFDLB alphabet.
func Canonical(s string) (string, error) {
	c, err := Parse(s)
	if err != nil {
		return "", err
	}
	return c.String(), nil
}

func allNine(counts map[byte]int) bool {
	for _, n := range counts {
		if n != 9 {
			return false
		}
	}
	return true
}

func formatCounts(counts map[byte]int) string {
	keys := make([]byte, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%q=%d", k, counts[k])
	}
	return strings.Join(parts, " ")
}

// String returns the 54-character URFDLB form.
func (c Cube) String() string {
	var b [Count]byte
	for i, col := range c {
		b[i] = letters[col]
	}
	return string(b[:])
}

// Net returns an unfolded text view of the cube:
//
//	      U U U
//	      U U U
//	      U U U
//	L L L F F F R R R B B B
//	...
func (c Cube) Net() string {
	var b strings.Builder
	row := func(face Color, r int) {
		for col := 0; col < 3; col++ {
			b.WriteString(c[9*int(face)+3*r+col].String())
			b.WriteByte(' ')
		}
	}

	for r := 0; r < 3; r++ {
		b.WriteString("      ")
		row(U, r)
		b.WriteString("\n")
	}
	for r := 0; r < 3; r++ {
		for _, face := range []Color{L, F, R, B} {
			row(face, r)
		}
		b.WriteString("\n")
	}
	for r := 0; r < 3; r++ {
		b.WriteString("      ")
		row(D, r)
		b.WriteString("\n")
	}
	return b.String()
}

// Face returns the nine facelets of face f in row-major order.
func (c Cube) Face(f Color) [9]Color {
	var out [9]Color
	copy(out[:], c[9*int(f):9*int(f)+9])
	return out
}
