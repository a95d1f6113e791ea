package cubie

import (
	"errors"
	"fmt"
)

// Invariant violations reported by Verify.
var (
	ErrPermutation = errors.New("cubie: permutation is not a bijection")
	ErrOrientation = errors.New("cubie: orientation value out of range")
	ErrCornerTwist = errors.New("cubie: corner twist sum is not divisible by 3")
	ErrEdgeFlip    = errors.New("cubie: edge flip sum is odd")
	ErrParity      = errors.New("cubie: corner and edge permutation parities differ")
)

// Verify checks that c is reachable from the solved cube by face turns.
func (c *Cube) Verify() error {
	var seenC [NumCorners]bool
	twist := 0
	for i := 0; i < NumCorners; i++ {
		if int(c.CP[i]) >= NumCorners || seenC[c.CP[i]] {
			return fmt.Errorf("%w: corner slot %d", ErrPermutation, i)
		}
		seenC[c.CP[i]] = true
		if c.CO[i] > 2 {
			return fmt.Errorf("%w: corner slot %d has twist %d", ErrOrientation, i, c.CO[i])
		}
		twist += int(c.CO[i])
	}

	var seenE [NumEdges]bool
	flip := 0
	for i := 0; i < NumEdges; i++ {
		if int(c.EP[i]) >= NumEdges || seenE[c.EP[i]] {
			return fmt.Errorf("%w: edge slot %d", ErrPermutation, i)
		}
		seenE[c.EP[i]] = true
		if c.EO[i] > 1 {
			return fmt.Errorf("%w: edge slot %d has flip %d", ErrOrientation, i, c.EO[i])
		}
		flip += int(c.EO[i])
	}

	if twist%3 != 0 {
		return fmt.Errorf("%w (sum %d)", ErrCornerTwist, twist)
	}
	if flip%2 != 0 {
		return fmt.Errorf("%w (sum %d)", ErrEdgeFlip, flip)
	}
	if c.CornerParity() != c.EdgeParity() {
		return ErrParity
	}
	return nil
}

// IsValid reports whether Verify succeeds.
func (c *Cube) IsValid() bool {
	return c.Verify() == nil
}

// CornerParity returns 0 for an even corner permutation and 1 for odd.
func (c *Cube) CornerParity() int {
	s := 0
	for i := NumCorners - 1; i > 0; i-- {
		for j := i - 1; j >= 0; j-- {
			if c.CP[j] > c.CP[i] {
				s++
			}
		}
	}
	return s % 2
}

// EdgeParity returns 0 for an even edge permutation and 1 for odd.
func (c *Cube) EdgeParity() int {
	s := 0
	for i := NumEdges - 1; i > 0; i-- {
		for j := i - 1; j >= 0; j-- {
			if c.EP[j] > c.EP[i] {
				s++
			}
		}
	}
	return s % 2
}
