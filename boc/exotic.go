package boc

import "encoding/binary"

// prunedBits is the exact data size of a pruned-branch cell:
// type_u8 || levelMask_u8 || hash[32] || depth_be2.
const prunedBits = 8 + 8 + HashBytes*8 + 16

// NewPrunedCell builds a pruned-branch exotic cell standing in for a
// subtree with the given representation hash and depth. The cell reports
// that hash and depth as its own, so substituting it for the subtree
// leaves ancestor hashes unchanged.
func NewPrunedCell(hash [HashBytes]byte, depth uint16) *Cell {
	body := make([]byte, prunedBits/8)
	body[0] = byte(CellPrunedBranch)
	body[1] = 1 // level mask
	copy(body[2:2+HashBytes], hash[:])
	binary.BigEndian.PutUint16(body[2+HashBytes:], depth)

	return &Cell{
		bits:  NewBitString(body, prunedBits),
		typ:   CellPrunedBranch,
		hash:  hash,
		depth: depth,
	}
}

// PruneCell returns a pruned-branch stand-in for c.
func PruneCell(c *Cell) *Cell {
	return NewPrunedCell(c.Hash(), c.Depth())
}

// prunedFromBody reconstructs a pruned-branch cell from its serialized
// body, as found in a bag of cells.
func prunedFromBody(bits BitString) (*Cell, error) {
	if bits.Len() != prunedBits {
		return nil, ErrNotPruned
	}
	body := bits.Bytes()
	if CellType(body[0]) != CellPrunedBranch {
		return nil, ErrNotPruned
	}
	var hash [HashBytes]byte
	copy(hash[:], body[2:2+HashBytes])
	depth := binary.BigEndian.Uint16(body[2+HashBytes:])
	return NewPrunedCell(hash, depth), nil
}
