package boc

import (
	"crypto/sha256"
	"encoding/binary"
)

// HashBytes is the width of the cell representation hash.
const HashBytes = sha256.Size

// finalize fixes the hash and depth of a newly constructed cell.
//
// The representation hash of an ordinary cell commits to the descriptor
// bytes, the completion-tagged data and, for every reference, the child
// depth followed by the child hash:
//
//	sha256( d1 || d2 || data || depth_be2(r_0)..depth_be2(r_k) || hash(r_0)..hash(r_k) )
//
// Pruned-branch cells adopt the hash and depth recorded in their body
// instead (see exotic.go), which NewPrunedCell installs directly.
func (c *Cell) finalize() {
	for _, r := range c.refs {
		if d := r.Depth() + 1; d > c.depth {
			c.depth = d
		}
	}

	h := sha256.New()
	d1, d2 := c.descriptors()
	h.Write([]byte{d1, d2})
	h.Write(completionTagged(c.bits))
	var be2 [2]byte
	for _, r := range c.refs {
		binary.BigEndian.PutUint16(be2[:], r.Depth())
		h.Write(be2[:])
	}
	for _, r := range c.refs {
		rh := r.Hash()
		h.Write(rh[:])
	}
	sum := h.Sum(nil)
	copy(c.hash[:], sum)
}

// descriptors returns the two cell descriptor bytes.
//
//	d1 = refCount + 8*isExotic
//	d2 = floor(bits/8) + ceil(bits/8)
//
// d2 being odd marks a partial final byte, which carries a completion tag.
func (c *Cell) descriptors() (d1, d2 byte) {
	d1 = byte(len(c.refs))
	if c.IsExotic() {
		d1 |= 8
	}
	d2 = byte(c.bits.Len()/8 + (c.bits.Len()+7)/8)
	return d1, d2
}

// completionTagged returns the data bytes with the completion tag applied:
// if the bit length is not a byte multiple, a 1 bit is appended followed by
// zero bits up to the byte boundary.
func completionTagged(bits BitString) []byte {
	out := bits.Bytes()
	if r := bits.Len() % 8; r != 0 {
		out[len(out)-1] |= 1 << (7 - r)
	}
	return out
}
