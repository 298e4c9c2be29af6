package hashmap

import (
	"errors"

	"github.com/forestrie/go-cellmap/boc"
)

var (
	ErrKeyBits           = errors.New("hashmap: key bit length out of range")
	ErrKeyCodecSize      = errors.New("hashmap: key codec static size does not match the dictionary key length")
	ErrEmptyRoot         = errors.New("hashmap: an empty dictionary has no root")
	ErrKeyLengthMismatch = errors.New("hashmap: serialized bit length does not match the expected length")
	ErrMalformedLabel    = errors.New("hashmap: malformed edge label")
	ErrInternalInvariant = errors.New("hashmap: tree invariant violated")
	ErrPrunedSubtree     = errors.New("hashmap: pruned subtree encountered in strict mode")
	ErrUnaryOverflow     = errors.New("hashmap: unary value exceeds its bound")
)

// ErrBudgetExhausted reports that a builder ran out of bit capacity while
// writing a label or value. It is the cell overflow error, re-exported
// under the name the dictionary layer uses for it.
var ErrBudgetExhausted = boc.ErrCellOverflow
