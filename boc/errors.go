package boc

import "errors"

var (
	ErrCellOverflow = errors.New("boc: cell data capacity exceeded")
	ErrTooManyRefs  = errors.New("boc: cell reference capacity exceeded")
	ErrUintRange    = errors.New("boc: value does not fit the requested bit width")
	ErrBitWidth     = errors.New("boc: bit width out of range")

	ErrSliceUnderflow = errors.New("boc: not enough bits in slice")
	ErrNoMoreRefs     = errors.New("boc: not enough refs in slice")

	ErrNotPruned = errors.New("boc: cell is not a pruned branch")

	ErrBocMagic     = errors.New("boc: bad bag-of-cells magic")
	ErrBocTruncated = errors.New("boc: bag-of-cells data truncated")
	ErrBocInvalid   = errors.New("boc: bag-of-cells structure invalid")
	ErrBocCRC       = errors.New("boc: bag-of-cells checksum mismatch")
)
