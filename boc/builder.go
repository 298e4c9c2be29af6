package boc

// Builder accumulates bits and cell references and finalizes them into an
// ordinary Cell. The zero value is ready to use.
type Builder struct {
	bits BitString
	refs []*Cell
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder { return &Builder{} }

// RemainingBits returns the unused data capacity.
func (b *Builder) RemainingBits() int { return MaxCellBits - b.bits.Len() }

// RemainingRefs returns the unused reference capacity.
func (b *Builder) RemainingRefs() int { return MaxCellRefs - len(b.refs) }

// WriteBit appends a single bit.
func (b *Builder) WriteBit(bit bool) error {
	if b.RemainingBits() < 1 {
		return ErrCellOverflow
	}
	b.bits = b.bits.AppendBit(bit)
	return nil
}

// WriteBits appends all bits of bs.
func (b *Builder) WriteBits(bs BitString) error {
	if b.RemainingBits() < bs.Len() {
		return ErrCellOverflow
	}
	b.bits = b.bits.Append(bs)
	return nil
}

// WriteUint appends v as a width-bit big-endian unsigned integer.
func (b *Builder) WriteUint(v uint64, width int) error {
	if width < 0 || width > 64 {
		return ErrBitWidth
	}
	if width < 64 && v >= 1<<width {
		return ErrUintRange
	}
	return b.WriteBits(BitStringFromUint(v, width))
}

// WriteBytes appends data as whole bytes.
func (b *Builder) WriteBytes(data []byte) error {
	return b.WriteBits(NewBitString(data, len(data)*8))
}

// StoreRef appends a reference to cell.
func (b *Builder) StoreRef(cell *Cell) error {
	if b.RemainingRefs() < 1 {
		return ErrTooManyRefs
	}
	b.refs = append(b.refs, cell)
	return nil
}

// Bits returns a snapshot of the accumulated bits.
func (b *Builder) Bits() BitString { return b.bits }

// EndCell finalizes the accumulated bits and refs into an ordinary cell.
// The builder remains valid but further writes do not affect the returned
// cell.
func (b *Builder) EndCell() (*Cell, error) {
	c := &Cell{
		bits: b.bits,
		refs: append([]*Cell(nil), b.refs...),
		typ:  CellOrdinary,
	}
	c.finalize()
	return c, nil
}
