package boc

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"math/bits"
)

// bocMagic identifies the generic bag-of-cells framing.
const bocMagic = 0xb5ee9c72

const (
	flagHasIndex     = 0x80
	flagHasCRC32c    = 0x40
	flagHasCacheBits = 0x20
)

var crcTable = crc32.MakeTable(crc32.Castagnoli)

// Serialize encodes root and every cell it transitively references as a
// bag of cells with a CRC32-C trailer. Cells are deduplicated by
// representation hash and ordered so references always point forward.
func Serialize(root *Cell) ([]byte, error) {
	ordered := topoOrder(root)

	index := make(map[[HashBytes]byte]int, len(ordered))
	for i, c := range ordered {
		index[c.Hash()] = i
	}

	sizeBytes := byteWidth(uint64(len(ordered)))
	var records [][]byte
	totSize := uint64(0)
	for _, c := range ordered {
		rec := cellRecord(c, index, sizeBytes)
		records = append(records, rec)
		totSize += uint64(len(rec))
	}
	offBytes := byteWidth(totSize)

	var out []byte
	out = binary.BigEndian.AppendUint32(out, bocMagic)
	out = append(out, byte(flagHasCRC32c|sizeBytes))
	out = append(out, byte(offBytes))
	out = appendUintN(out, uint64(len(ordered)), sizeBytes)
	out = appendUintN(out, 1, sizeBytes) // roots
	out = appendUintN(out, 0, sizeBytes) // absent
	out = appendUintN(out, totSize, offBytes)
	out = appendUintN(out, 0, sizeBytes) // root index
	for _, rec := range records {
		out = append(out, rec...)
	}
	out = binary.LittleEndian.AppendUint32(out, crc32.Checksum(out, crcTable))
	return out, nil
}

// Deserialize decodes a bag of cells and returns its first root.
func Deserialize(data []byte) (*Cell, error) {
	rd := &bocReader{data: data}

	magic, err := rd.uintN(4)
	if err != nil {
		return nil, err
	}
	if magic != bocMagic {
		return nil, ErrBocMagic
	}
	b1, err := rd.byte()
	if err != nil {
		return nil, err
	}
	if b1&flagHasCacheBits != 0 {
		return nil, fmt.Errorf("%w: cache bits unsupported", ErrBocInvalid)
	}
	sizeBytes := int(b1 & 0x07)
	hasIndex := b1&flagHasIndex != 0
	hasCRC := b1&flagHasCRC32c != 0
	offByte, err := rd.byte()
	if err != nil {
		return nil, err
	}
	offBytes := int(offByte)
	if sizeBytes < 1 || sizeBytes > 8 || offBytes < 1 || offBytes > 8 {
		return nil, ErrBocInvalid
	}

	cellCount, err := rd.uintN(sizeBytes)
	if err != nil {
		return nil, err
	}
	rootCount, err := rd.uintN(sizeBytes)
	if err != nil {
		return nil, err
	}
	absentCount, err := rd.uintN(sizeBytes)
	if err != nil {
		return nil, err
	}
	totSize, err := rd.uintN(offBytes)
	if err != nil {
		return nil, err
	}
	if rootCount < 1 || absentCount != 0 || cellCount == 0 || cellCount > 1<<24 {
		return nil, ErrBocInvalid
	}

	rootIdx := make([]uint64, rootCount)
	for i := range rootIdx {
		if rootIdx[i], err = rd.uintN(sizeBytes); err != nil {
			return nil, err
		}
		if rootIdx[i] >= cellCount {
			return nil, ErrBocInvalid
		}
	}
	if hasIndex {
		if err := rd.skip(int(cellCount) * offBytes); err != nil {
			return nil, err
		}
	}

	if hasCRC {
		if len(rd.data) < rd.pos+int(totSize)+4 {
			return nil, ErrBocTruncated
		}
		body := rd.data[:rd.pos+int(totSize)]
		want := binary.LittleEndian.Uint32(rd.data[rd.pos+int(totSize):])
		if crc32.Checksum(body, crcTable) != want {
			return nil, ErrBocCRC
		}
	}

	type rawCell struct {
		bits   BitString
		exotic bool
		refs   []uint64
	}
	raw := make([]rawCell, cellCount)
	for i := range raw {
		d1, err := rd.byte()
		if err != nil {
			return nil, err
		}
		d2, err := rd.byte()
		if err != nil {
			return nil, err
		}
		refCount := int(d1 & 0x07)
		if refCount > MaxCellRefs {
			return nil, ErrBocInvalid
		}
		byteLen := (int(d2) + 1) / 2
		body, err := rd.bytes(byteLen)
		if err != nil {
			return nil, err
		}
		cellBits, err := untagged(body, d2&1 == 1)
		if err != nil {
			return nil, err
		}
		raw[i].bits = cellBits
		raw[i].exotic = d1&0x08 != 0
		for j := 0; j < refCount; j++ {
			ref, err := rd.uintN(sizeBytes)
			if err != nil {
				return nil, err
			}
			// References always point forward.
			if ref <= uint64(i) || ref >= cellCount {
				return nil, ErrBocInvalid
			}
			raw[i].refs = append(raw[i].refs, ref)
		}
	}

	// Children live at higher indexes, so build back to front.
	cells := make([]*Cell, cellCount)
	for i := int(cellCount) - 1; i >= 0; i-- {
		if raw[i].exotic {
			if len(raw[i].refs) != 0 {
				return nil, fmt.Errorf("%w: pruned cell with refs", ErrBocInvalid)
			}
			c, err := prunedFromBody(raw[i].bits)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrBocInvalid, err)
			}
			cells[i] = c
			continue
		}
		c := &Cell{bits: raw[i].bits, typ: CellOrdinary}
		for _, ref := range raw[i].refs {
			c.refs = append(c.refs, cells[ref])
		}
		c.finalize()
		cells[i] = c
	}

	return cells[rootIdx[0]], nil
}

// FromBase64 decodes a standard-base64 bag of cells.
func FromBase64(s string) (*Cell, error) {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBocInvalid, err)
	}
	return Deserialize(data)
}

// FromBase64URL decodes a url-base64 bag of cells.
func FromBase64URL(s string) (*Cell, error) {
	data, err := base64.URLEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBocInvalid, err)
	}
	return Deserialize(data)
}

// topoOrder returns the unique cells reachable from root in reverse DFS
// postorder, which places every cell before all of its descendants.
func topoOrder(root *Cell) []*Cell {
	var post []*Cell
	seen := make(map[[HashBytes]byte]bool)
	var walk func(c *Cell)
	walk = func(c *Cell) {
		if seen[c.Hash()] {
			return
		}
		seen[c.Hash()] = true
		for _, r := range c.refs {
			walk(r)
		}
		post = append(post, c)
	}
	walk(root)

	out := make([]*Cell, len(post))
	for i, c := range post {
		out[len(post)-1-i] = c
	}
	return out
}

func cellRecord(c *Cell, index map[[HashBytes]byte]int, refBytes int) []byte {
	d1, d2 := c.descriptors()
	rec := []byte{d1, d2}
	rec = append(rec, completionTagged(c.bits)...)
	for _, r := range c.refs {
		rec = appendUintN(rec, uint64(index[r.Hash()]), refBytes)
	}
	return rec
}

// untagged recovers the bit length from a completion-tagged final byte.
func untagged(body []byte, partial bool) (BitString, error) {
	if !partial {
		return NewBitString(body, len(body)*8), nil
	}
	if len(body) == 0 || body[len(body)-1] == 0 {
		return BitString{}, fmt.Errorf("%w: missing completion tag", ErrBocInvalid)
	}
	tz := bits.TrailingZeros8(body[len(body)-1])
	return NewBitString(body, len(body)*8-tz-1), nil
}

func byteWidth(v uint64) int {
	w := 1
	for v >= 1<<(8*w) && w < 8 {
		w++
	}
	return w
}

func appendUintN(dst []byte, v uint64, n int) []byte {
	for i := n - 1; i >= 0; i-- {
		dst = append(dst, byte(v>>(8*i)))
	}
	return dst
}

type bocReader struct {
	data []byte
	pos  int
}

func (r *bocReader) byte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, ErrBocTruncated
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

func (r *bocReader) bytes(n int) ([]byte, error) {
	if n < 0 || r.pos+n > len(r.data) {
		return nil, ErrBocTruncated
	}
	out := r.data[r.pos : r.pos+n]
	r.pos += n
	return out, nil
}

func (r *bocReader) skip(n int) error {
	if r.pos+n > len(r.data) {
		return ErrBocTruncated
	}
	r.pos += n
	return nil
}

func (r *bocReader) uintN(n int) (uint64, error) {
	b, err := r.bytes(n)
	if err != nil {
		return 0, err
	}
	var v uint64
	for _, x := range b {
		v = v<<8 | uint64(x)
	}
	return v, nil
}
