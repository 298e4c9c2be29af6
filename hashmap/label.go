package hashmap

import (
	"errors"
	"math/bits"

	"github.com/forestrie/go-cellmap/boc"
)

// labelLenBits returns k = ceil(log2(maxLen+1)), the width of the length
// field in the long and same label schemes.
func labelLenBits(maxLen int) int {
	return bits.Len(uint(maxLen))
}

// writeLabel emits label under a remaining key budget of maxLen bits,
// selecting the cheapest of the three HmLabel schemes. Ties break toward
// the lexicographically smaller header, making the output bit-for-bit
// deterministic.
func writeLabel(b *boc.Builder, label boc.BitString, maxLen int) error {
	n := label.Len()
	if n > maxLen {
		return ErrInternalInvariant
	}
	k := labelLenBits(maxLen)

	if same, ok := label.RepeatsSameBit(); ok && n > 1 && k < 2*n-1 {
		// hml_same$11 v:Bit n:(#<= m)
		if err := b.WriteUint(0b11, 2); err != nil {
			return err
		}
		if err := b.WriteBit(same); err != nil {
			return err
		}
		return b.WriteUint(uint64(n), k)
	}

	if k < n {
		// hml_long$10 n:(#<= m) s:(n * Bit)
		if err := b.WriteUint(0b10, 2); err != nil {
			return err
		}
		if err := b.WriteUint(uint64(n), k); err != nil {
			return err
		}
		return b.WriteBits(label)
	}

	// hml_short$0 len:(Unary ~n) s:(n * Bit)
	if err := b.WriteBit(false); err != nil {
		return err
	}
	if err := writeUnary(b, n); err != nil {
		return err
	}
	return b.WriteBits(label)
}

// readLabel decodes one HmLabel under a remaining key budget of maxLen
// bits. Length fields exceeding the budget and over-long unary runs are
// rejected as malformed.
func readLabel(s *boc.Slice, maxLen int) (boc.BitString, error) {
	long, err := s.LoadBit()
	if err != nil {
		return boc.BitString{}, err
	}
	if !long {
		n, err := readUnary(s, maxLen)
		if err != nil {
			if errors.Is(err, ErrUnaryOverflow) {
				return boc.BitString{}, ErrMalformedLabel
			}
			return boc.BitString{}, err
		}
		return s.LoadBits(n)
	}

	same, err := s.LoadBit()
	if err != nil {
		return boc.BitString{}, err
	}
	k := labelLenBits(maxLen)
	if !same {
		n, err := s.LoadUint(k)
		if err != nil {
			return boc.BitString{}, err
		}
		if n > uint64(maxLen) {
			return boc.BitString{}, ErrMalformedLabel
		}
		return s.LoadBits(int(n))
	}

	bit, err := s.LoadBit()
	if err != nil {
		return boc.BitString{}, err
	}
	n, err := s.LoadUint(k)
	if err != nil {
		return boc.BitString{}, err
	}
	if n > uint64(maxLen) {
		return boc.BitString{}, ErrMalformedLabel
	}
	label := boc.BitString{}
	for i := 0; i < int(n); i++ {
		label = label.AppendBit(bit)
	}
	return label, nil
}
