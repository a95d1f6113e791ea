package facelet

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/SeamusWaldron/cubesolver/internal/cubie"
)

const solvedString = "UUUUUUUUURRRRRRRRRFFFFFFFFFDDDDDDDDDLLLLLLLLLBBBBBBBBB"

// swap returns s with the bytes at i and j exchanged.
func swap(s string, i, j int) string {
	b := []byte(s)
	b[i], b[j] = b[j], b[i]
	return string(b)
}

func TestParseSolved(t *testing.T) {
	c, err := Parse(solvedString)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c != Solved() {
		t.Errorf("parsed cube differs from Solved():\n%s", c.Net())
	}
	if c.String() != solvedString {
		t.Errorf("String() = %s", c.String())
	}
	cc, err := c.ToCubie()
	if err != nil {
		t.Fatalf("ToCubie: %v", err)
	}
	if !cc.IsSolved() {
		t.Errorf("solved facelets should decode to solved cubies, got %s", cc)
	}
}

func TestParseCenterDerivedAlphabet(t *testing.T) {
	// Same cube painted with color initials instead of face letters.
	repaint := strings.NewReplacer("U", "W", "R", "R", "F", "G", "D", "Y", "L", "O", "B", "B")
	painted := repaint.Replace(solvedString)

	c, err := Parse(painted)
	if err != nil {
		t.Fatalf("Parse(%s): %v", painted, err)
	}
	if c != Solved() {
		t.Errorf("repainted solved cube should parse as solved:\n%s", c.Net())
	}

	canon, err := Canonical(painted)
	if err != nil {
		t.Fatal(err)
	}
	if canon != solvedString {
		t.Errorf("Canonical() = %s", canon)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"empty", "", ErrInvalidLength},
		{"too short", solvedString[:53], ErrInvalidLength},
		{"too long", solvedString + "U", ErrInvalidLength},
		{"ten of one symbol", "U" + solvedString[1:9] + "U" + solvedString[10:], ErrInvalidFaceletCounts},
		{"seven symbols", "X" + solvedString[1:], ErrInvalidFaceletCounts},
		// R5 <-> U1: counts stay at nine but U and R share a center symbol.
		{"duplicate centers", swap(solvedString, 13, 0), ErrInvalidCenters},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRMoveFacelets(t *testing.T) {
	mt := cubie.Moves()
	m, _ := cubie.ParseMoveName("R")
	cc := mt.Apply(cubie.Solved(), m)

	got := FromCubie(cc).String()
	want := "UUFUUFUUFRRRRRRRRRFFDFFDFFDDDBDDBDDBLLLLLLLLLUBBUBBUBB"
	if got != want {
		t.Errorf("R from solved:\n got %s\nwant %s", got, want)
	}
}

func TestRoundTripRandomSequences(t *testing.T) {
	mt := cubie.Moves()
	r := rand.New(rand.NewPCG(11, 12))

	for i := 0; i < 200; i++ {
		cc := cubie.Solved()
		n := 1 + r.IntN(30)
		for k := 0; k < n; k++ {
			cc = mt.Apply(cc, r.IntN(cubie.NumMoves))
		}

		s := FromCubie(cc).String()
		fc, err := Parse(s)
		if err != nil {
			t.Fatalf("Parse(%s): %v", s, err)
		}
		back, err := fc.ToCubie()
		if err != nil {
			t.Fatalf("ToCubie(%s): %v", s, err)
		}
		if back != cc {
			t.Fatalf("round trip mismatch for %s\n got %s\nwant %s", s, back, cc)
		}
		if err := back.Verify(); err != nil {
			t.Fatalf("reachable cube %s rejected: %v", s, err)
		}
	}
}

func TestTwistedCornerDecodesButFailsVerify(t *testing.T) {
	// Rotate the URF corner's stickers in place: U9 R1 F3 = F U R.
	b := []byte(solvedString)
	b[8], b[9], b[20] = 'F', 'U', 'R'

	fc, err := Parse(string(b))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	cc, err := fc.ToCubie()
	if err != nil {
		t.Fatalf("ToCubie: %v", err)
	}
	if cc.CP[cubie.URF] != cubie.URF || cc.CO[cubie.URF] != 1 {
		t.Errorf("URF slot = %s/%d, want URF/1", cc.CP[cubie.URF], cc.CO[cubie.URF])
	}
	if err := cc.Verify(); !errors.Is(err, cubie.ErrCornerTwist) {
		t.Errorf("Verify() = %v, want ErrCornerTwist", err)
	}
}

func TestFlippedEdgeFailsVerify(t *testing.T) {
	// Flip UF: U8 <-> F2.
	fc, err := Parse(swap(solvedString, 7, 19))
	if err != nil {
		t.Fatal(err)
	}
	cc, err := fc.ToCubie()
	if err != nil {
		t.Fatal(err)
	}
	if err := cc.Verify(); !errors.Is(err, cubie.ErrEdgeFlip) {
		t.Errorf("Verify() = %v, want ErrEdgeFlip", err)
	}
}

func TestSwappedEdgesFailParity(t *testing.T) {
	// Exchange the UR and UF edges: both U stickers stay, R2 <-> F2.
	fc, err := Parse(swap(solvedString, 10, 19))
	if err != nil {
		t.Fatal(err)
	}
	cc, err := fc.ToCubie()
	if err != nil {
		t.Fatal(err)
	}
	if err := cc.Verify(); !errors.Is(err, cubie.ErrParity) {
		t.Errorf("Verify() = %v, want ErrParity", err)
	}
}

func TestUndecodableCorner(t *testing.T) {
	// U9 <-> F3 turns URF into U F R read clockwise, which is no real corner.
	fc, err := Parse(swap(solvedString, 8, 20))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fc.ToCubie(); !errors.Is(err, ErrUndecodableCorner) {
		t.Errorf("ToCubie() = %v, want ErrUndecodableCorner", err)
	}
}

func TestUndecodableEdge(t *testing.T) {
	// U8 <-> R2 leaves UR reading U U.
	fc, err := Parse(swap(solvedString, 7, 10))
	if err != nil {
		t.Fatal(err)
	}
	_, err = fc.ToCubie()
	if err == nil {
		t.Fatal("ToCubie() should fail")
	}
	if !errors.Is(err, ErrUndecodableEdge) {
		t.Errorf("ToCubie() = %v, want ErrUndecodableEdge", err)
	}
}

func TestDuplicateCornerRejected(t *testing.T) {
	// Paint UFL with URF's colors so two slots claim URF. R2 becomes L to keep
	// the symbol counts at nine.
	b := []byte(solvedString)
	b[6], b[18], b[38] = 'U', 'R', 'F'
	b[10] = 'L'

	fc, err := Parse(string(b))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	_, err = fc.ToCubie()
	if !errors.Is(err, ErrUndecodableCorner) {
		t.Fatalf("ToCubie() = %v, want ErrUndecodableCorner", err)
	}
	if !strings.Contains(err.Error(), "twice") {
		t.Errorf("error should mention the duplicate: %v", err)
	}
}

func TestNetLayout(t *testing.T) {
	net := Solved().Net()
	lines := strings.Split(strings.TrimRight(net, "\n"), "\n")
	if len(lines) != 9 {
		t.Fatalf("net has %d lines, want 9:\n%s", len(lines), net)
	}
	if strings.TrimSpace(lines[0]) != "U U U" {
		t.Errorf("first line = %q", lines[0])
	}
	if strings.TrimSpace(lines[4]) != "L L L F F F R R R B B B" {
		t.Errorf("middle line = %q", lines[4])
	}
	if strings.TrimSpace(lines[8]) != "D D D" {
		t.Errorf("last line = %q", lines[8])
	}
}
