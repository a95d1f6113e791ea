package cubesolver

import (
	"fmt"

	"github.com/SeamusWaldron/cubesolver/internal/cubie"
	"github.com/SeamusWaldron/cubesolver/internal/facelet"
)

// Cube represents a 3x3 Rubik's cube as cubie permutations and orientations.
// The zero value is not usable; create one with NewCube or ParseCube.
type Cube struct {
	state cubie.Cube
}

// NewCube creates a solved cube.
func NewCube() *Cube {
	return &Cube{state: cubie.Solved()}
}

// ParseCube reads a 54-symbol facelet string and checks that the cube can be
// reached from solved. Errors wrap ErrMalformedInput, ErrUndecodableState or
// ErrInvalidCubeState together with the specific cause.
func ParseCube(facelets string) (*Cube, error) {
	cc, _, err := decode(facelets)
	if err != nil {
		return nil, err
	}
	return &Cube{state: cc}, nil
}

// decode runs the full input pipeline and also returns the canonical
// URFDLB form of the input.
func decode(facelets string) (cubie.Cube, string, error) {
	fc, err := facelet.Parse(facelets)
	if err != nil {
		return cubie.Cube{}, "", fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}
	cc, err := fc.ToCubie()
	if err != nil {
		return cubie.Cube{}, "", fmt.Errorf("%w: %w", ErrUndecodableState, err)
	}
	if err := cc.Verify(); err != nil {
		return cubie.Cube{}, "", fmt.Errorf("%w: %w", ErrInvalidCubeState, err)
	}
	return cc, fc.String(), nil
}

// Clone creates a copy of the cube.
func (c *Cube) Clone() *Cube {
	clone := *c
	return &clone
}

// Reset returns the cube to the solved state.
func (c *Cube) Reset() {
	c.state = cubie.Solved()
}

// Apply applies moves in order. Moves with an unknown face or turn are
// skipped.
func (c *Cube) Apply(moves ...Move) {
	mt := cubie.Moves()
	for _, m := range moves {
		if idx, ok := m.index(); ok {
			c.state = mt.Apply(c.state, idx)
		}
	}
}

// ApplyNotation parses and applies a move string such as "R U R' U'".
func (c *Cube) ApplyNotation(s string) error {
	moves, err := ParseMoves(s)
	if err != nil {
		return err
	}
	c.Apply(moves...)
	return nil
}

// IsSolved returns true if the cube is in the solved state.
func (c *Cube) IsSolved() bool {
	return c.state.IsSolved()
}

// Facelets returns the 54-character URFDLB facelet string.
func (c *Cube) Facelets() string {
	return facelet.FromCubie(c.state).String()
}

// String returns the cube as an unfolded net.
func (c *Cube) String() string {
	return facelet.FromCubie(c.state).Net()
}
