// Package prune holds the pruning tables that give the search a lower bound
// on the number of moves left.
//
// A table is a flat byte array indexed by a*NumSlice + slice, where a is the
// corner twist or the edge flip coordinate depending on the table kind. Each
// byte is the exact number of moves needed to bring both coordinates to zero.
package prune

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/SeamusWaldron/cubesolver/internal/coord"
	"github.com/SeamusWaldron/cubesolver/internal/cubie"
)

// Table errors.
var (
	ErrTableSize       = errors.New("prune: table has the wrong size")
	ErrCoordinateRange = errors.New("prune: coordinate out of range")
	ErrUnknownKind     = errors.New("prune: unknown table kind")
	ErrProvenance      = errors.New("prune: table is not a distance table for this coordinate encoding")
)

// Kind selects which orientation coordinate a table pairs with the slice.
type Kind int

const (
	TwistSlice Kind = iota
	FlipSlice
)

func (k Kind) String() string {
	switch k {
	case TwistSlice:
		return "twist-slice"
	case FlipSlice:
		return "flip-slice"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind maps "twist-slice" or "flip-slice" to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "twist-slice", "twistslice", "twist":
		return TwistSlice, nil
	case "flip-slice", "flipslice", "flip":
		return FlipSlice, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Rows returns the size of the orientation coordinate.
func (k Kind) Rows() int {
	if k == FlipSlice {
		return coord.NumFlip
	}
	return coord.NumTwist
}

// Size returns the table length in bytes.
func (k Kind) Size() int {
	return k.Rows() * coord.NumSlice
}

// orientation returns the coordinate this kind indexes rows by.
func (k Kind) orientation(c *cubie.Cube) int {
	if k == FlipSlice {
		return coord.Flip(c)
	}
	return coord.Twist(c)
}

// Table is an immutable pruning table. It is safe for concurrent use.
type Table struct {
	kind Kind
	data []byte
}

// Kind returns the table kind.
func (t *Table) Kind() Kind {
	return t.kind
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.data)
}

// New wraps raw table bytes, checking only the length.
func New(kind Kind, data []byte) (*Table, error) {
	if kind != TwistSlice && kind != FlipSlice {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(kind))
	}
	if len(data) != kind.Size() {
		return nil, fmt.Errorf("%w: %s table needs %d bytes, got %d", ErrTableSize, kind, kind.Size(), len(data))
	}
	return &Table{kind: kind, data: data}, nil
}

// Load reads a table of the given kind from r. r must hold exactly the table.
func Load(r io.Reader, kind Kind) (*Table, error) {
	data, err := io.ReadAll(io.LimitReader(r, int64(kind.Size())+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s table: %w", kind, err)
	}
	return New(kind, data)
}

// LoadFile reads a table from path.
func LoadFile(path string, kind Kind) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := Load(f, kind)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Lookup returns the stored bound for the coordinate pair. Out-of-range
// coordinates are an error, never clamped.
func (t *Table) Lookup(a, slice int) (int, error) {
	if a < 0 || a >= t.kind.Rows() || slice < 0 || slice >= coord.NumSlice {
		return 0, fmt.Errorf("%w: %s (%d, %d)", ErrCoordinateRange, t.kind, a, slice)
	}
	return int(t.data[a*coord.NumSlice+slice]), nil
}

// Bound returns the table's lower bound for cube c.
func (t *Table) Bound(c *cubie.Cube) (int, error) {
	return t.Lookup(t.kind.orientation(c), coord.Slice(c))
}

// WriteTo writes the raw table bytes.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(t.data)
	return int64(n), err
}

// WriteFile writes the table to path, replacing any existing file.
func (t *Table) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create table file: %w", err)
	}
	if _, err := t.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write table file: %w", err)
	}
	return f.Close()
}

// Digest returns the hex SHA-256 of the table bytes.
func (t *Table) Digest() string {
	sum := sha256.Sum256(t.data)
	return hex.EncodeToString(sum[:])
}

// Histogram counts entries per distance. Index i holds the number of
// coordinate pairs at distance i.
func (t *Table) Histogram() []int {
	var hist []int
	for _, v := range t.data {
		for int(v) >= len(hist) {
			hist = append(hist, 0)
		}
		hist[v]++
	}
	return hist
}
