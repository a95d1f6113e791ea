package cubesolver

import (
	"fmt"
	"io"
	"sync"

	"github.com/SeamusWaldron/cubesolver/internal/coord"
	"github.com/SeamusWaldron/cubesolver/internal/cubie"
	"github.com/SeamusWaldron/cubesolver/internal/prune"
)

// Tables holds the pruning tables a Solver consults. The twist-slice table
// is required; the flip-slice table is optional and tightens the bound.
// Tables are read-only and may be shared by any number of solvers.
type Tables struct {
	twistSlice *prune.Table
	flipSlice  *prune.Table
}

// LoadTables reads the tables from disk. flipSlicePath may be empty.
func LoadTables(twistSlicePath, flipSlicePath string) (*Tables, error) {
	ts, err := prune.LoadFile(twistSlicePath, prune.TwistSlice)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrResource, err)
	}
	t := &Tables{twistSlice: ts}

	if flipSlicePath != "" {
		fs, err := prune.LoadFile(flipSlicePath, prune.FlipSlice)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrResource, err)
		}
		t.flipSlice = fs
	}
	return t, nil
}

// ReadTables reads the tables from readers. flipSlice may be nil.
func ReadTables(twistSlice, flipSlice io.Reader) (*Tables, error) {
	ts, err := prune.Load(twistSlice, prune.TwistSlice)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrResource, err)
	}
	t := &Tables{twistSlice: ts}

	if flipSlice != nil {
		fs, err := prune.Load(flipSlice, prune.FlipSlice)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrResource, err)
		}
		t.flipSlice = fs
	}
	return t, nil
}

var coordMoves = sync.OnceValue(func() *coord.MoveTables {
	return coord.NewMoveTables(cubie.Moves())
})

// GenerateTables builds the tables in memory. This takes around a second
// per table.
func GenerateTables(withFlipSlice bool) (*Tables, error) {
	ts, err := prune.Generate(prune.TwistSlice, coordMoves())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrResource, err)
	}
	t := &Tables{twistSlice: ts}

	if withFlipSlice {
		fs, err := prune.Generate(prune.FlipSlice, coordMoves())
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrResource, err)
		}
		t.flipSlice = fs
	}
	return t, nil
}

// Verify checks that every loaded table is a distance table for the
// coordinates this package uses. Tables produced by another encoding fail.
func (t *Tables) Verify() error {
	for _, tbl := range t.all() {
		if err := tbl.Verify(coordMoves()); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrResource, tbl.Kind(), err)
		}
	}
	return nil
}

// WriteFiles saves the tables. flipSlicePath is ignored when no flip-slice
// table is loaded.
func (t *Tables) WriteFiles(twistSlicePath, flipSlicePath string) error {
	if err := t.twistSlice.WriteFile(twistSlicePath); err != nil {
		return fmt.Errorf("%w: %w", ErrResource, err)
	}
	if t.flipSlice != nil && flipSlicePath != "" {
		if err := t.flipSlice.WriteFile(flipSlicePath); err != nil {
			return fmt.Errorf("%w: %w", ErrResource, err)
		}
	}
	return nil
}

// HasFlipSlice reports whether the optional flip-slice table is loaded.
func (t *Tables) HasFlipSlice() bool {
	return t.flipSlice != nil
}

// Digests returns the SHA-256 of each loaded table keyed by kind name.
func (t *Tables) Digests() map[string]string {
	out := make(map[string]string, 2)
	for _, tbl := range t.all() {
		out[tbl.Kind().String()] = tbl.Digest()
	}
	return out
}

func (t *Tables) all() []*prune.Table {
	if t.flipSlice != nil {
		return []*prune.Table{t.twistSlice, t.flipSlice}
	}
	return []*prune.Table{t.twistSlice}
}
