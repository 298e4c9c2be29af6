package hashmap

import (
	"github.com/forestrie/go-cellmap/boc"
)

// Codec serializes values of type T into a cell builder and parses them
// back out of a slice. Implementations must be stateless: a dictionary
// coder holds its codecs for its whole lifetime and may invoke them from
// concurrent calls.
type Codec[T any] interface {
	Store(src T, b *boc.Builder) error
	Load(s *boc.Slice) (T, error)
}

// StaticSize is implemented by codecs whose serialized bit length is a
// constant. A key codec that implements it must report the dictionary's
// key bit length; key codecs without it are accepted, and keys they
// serialize shorter than the key bit length are left-padded with zeros.
type StaticSize interface {
	BitSize() int
}

// UintCodec stores unsigned integers in a fixed big-endian bit width.
type UintCodec struct {
	Bits int
}

func (c UintCodec) Store(src uint64, b *boc.Builder) error {
	return b.WriteUint(src, c.Bits)
}

func (c UintCodec) Load(s *boc.Slice) (uint64, error) {
	return s.LoadUint(c.Bits)
}

func (c UintCodec) BitSize() int { return c.Bits }

// BitsCodec stores a raw fixed-width BitString.
type BitsCodec struct {
	Bits int
}

func (c BitsCodec) Store(src boc.BitString, b *boc.Builder) error {
	if src.Len() != c.Bits {
		return ErrKeyLengthMismatch
	}
	return b.WriteBits(src)
}

func (c BitsCodec) Load(s *boc.Slice) (boc.BitString, error) {
	return s.LoadBits(c.Bits)
}

func (c BitsCodec) BitSize() int { return c.Bits }

// CellRefCodec stores a value as a single reference, leaving the current
// cell's data untouched. Useful for values of unbounded size.
type CellRefCodec struct{}

func (CellRefCodec) Store(src *boc.Cell, b *boc.Builder) error {
	return b.StoreRef(src)
}

func (CellRefCodec) Load(s *boc.Slice) (*boc.Cell, error) {
	return s.LoadRef()
}

// SliceCodec stores the full remainder of a slice (bits and refs) inline
// and parses a value back as the remainder of the leaf cell. It must be
// the last field of a leaf value for parsing to be unambiguous.
type SliceCodec struct{}

func (SliceCodec) Store(src *boc.Slice, b *boc.Builder) error {
	bits, err := src.LoadBits(src.RemainingBits())
	if err != nil {
		return err
	}
	if err := b.WriteBits(bits); err != nil {
		return err
	}
	for src.RemainingRefs() > 0 {
		ref, err := src.LoadRef()
		if err != nil {
			return err
		}
		if err := b.StoreRef(ref); err != nil {
			return err
		}
	}
	return nil
}

func (SliceCodec) Load(s *boc.Slice) (*boc.Slice, error) {
	b := boc.NewBuilder()
	if err := (SliceCodec{}).Store(s, b); err != nil {
		return nil, err
	}
	c, err := b.EndCell()
	if err != nil {
		return nil, err
	}
	return c.BeginParse(), nil
}

// writeUnary emits n as n one bits followed by a terminating zero.
func writeUnary(b *boc.Builder, n int) error {
	for i := 0; i < n; i++ {
		if err := b.WriteBit(true); err != nil {
			return err
		}
	}
	return b.WriteBit(false)
}

// readUnary counts leading one bits up to the terminating zero. Counts
// beyond max are rejected, bounding adversarial reads.
func readUnary(s *boc.Slice, max int) (int, error) {
	n := 0
	for {
		bit, err := s.LoadBit()
		if err != nil {
			return 0, err
		}
		if !bit {
			return n, nil
		}
		n++
		if n > max {
			return 0, ErrUnaryOverflow
		}
	}
}
