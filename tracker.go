package cubesolver

// Tracker follows a physical cube from a known start state by applying the
// moves it reports. It is not safe for concurrent use; SmartCube guards its
// tracker with a mutex.
type Tracker struct {
	cube    *Cube
	history []Move
	keep    bool

	onSolved func()
}

// NewTracker creates a tracker starting from a solved cube. When keepHistory
// is false, Moves always returns nil.
func NewTracker(keepHistory bool) *Tracker {
	return &Tracker{cube: NewCube(), keep: keepHistory}
}

// SetSolvedCallback sets a callback that fires when a move leaves the cube
// solved.
func (t *Tracker) SetSolvedCallback(cb func()) {
	t.onSolved = cb
}

// Reset returns the tracked state to solved and clears the history.
func (t *Tracker) Reset() {
	t.cube.Reset()
	t.history = nil
}

// ApplyMove applies one move. It reports whether the cube is now solved.
func (t *Tracker) ApplyMove(m Move) bool {
	if !m.Valid() {
		return t.cube.IsSolved()
	}
	t.cube.Apply(m)
	if t.keep {
		t.history = append(t.history, m)
	}
	solved := t.cube.IsSolved()
	if solved && t.onSolved != nil {
		t.onSolved()
	}
	return solved
}

// ApplyMoves applies multiple moves.
func (t *Tracker) ApplyMoves(moves []Move) {
	for _, m := range moves {
		t.ApplyMove(m)
	}
}

// Moves returns a copy of the applied moves.
func (t *Tracker) Moves() []Move {
	if t.history == nil {
		return nil
	}
	out := make([]Move, len(t.history))
	copy(out, t.history)
	return out
}

// IsSolved returns true if the cube is solved.
func (t *Tracker) IsSolved() bool {
	return t.cube.IsSolved()
}

// Cube returns a copy of the tracked cube.
func (t *Tracker) Cube() *Cube {
	return t.cube.Clone()
}

// Facelets returns the tracked state as a facelet string.
func (t *Tracker) Facelets() string {
	return t.cube.Facelets()
}

// CubeString returns the tracked state as a net.
func (t *Tracker) CubeString() string {
	return t.cube.String()
}
