package cellstore

import (
	"context"
	"errors"

	"github.com/forestrie/go-cellmap/boc"
)

var (
	ErrNotFound     = errors.New("cellstore: cell not found")
	ErrHashMismatch = errors.New("cellstore: stored data does not reproduce the requested hash")
)

// Store is a content-addressed archive of cell trees.
type Store interface {
	// Put persists c and every cell it references, returning the root hash.
	Put(ctx context.Context, c *boc.Cell) ([boc.HashBytes]byte, error)

	// Get reconstructs the cell tree rooted at hash. Absent roots are
	// reported as ErrNotFound.
	Get(ctx context.Context, hash [boc.HashBytes]byte) (*boc.Cell, error)

	// Has reports whether the root is present without reconstructing it.
	Has(ctx context.Context, hash [boc.HashBytes]byte) (bool, error)
}
