package boc

// MaxCellBits is the data capacity of a single cell.
const MaxCellBits = 1023

// MaxCellRefs is the reference capacity of a single cell.
const MaxCellRefs = 4

// CellType discriminates ordinary cells from the exotic variants. The
// non-ordinary values match the type byte exotic cells carry as their first
// eight data bits.
type CellType uint8

const (
	CellOrdinary     CellType = 0
	CellPrunedBranch CellType = 1
)

// Cell is an immutable record of up to MaxCellBits data bits and up to
// MaxCellRefs references to child cells. Cells are finalized at
// construction; the hash and depth are fixed for the cell's lifetime.
type Cell struct {
	bits  BitString
	refs  []*Cell
	typ   CellType
	hash  [HashBytes]byte
	depth uint16
}

// NewCellFromBits finalizes an ordinary cell holding bits and no refs.
func NewCellFromBits(bits BitString) (*Cell, error) {
	if bits.Len() > MaxCellBits {
		return nil, ErrCellOverflow
	}
	c := &Cell{bits: bits, typ: CellOrdinary}
	c.finalize()
	return c, nil
}

// IsExotic reports whether the cell is one of the exotic variants. The
// contents of an exotic cell must not be interpreted as data.
func (c *Cell) IsExotic() bool { return c.typ != CellOrdinary }

// Type returns the cell variant.
func (c *Cell) Type() CellType { return c.typ }

// BitLen returns the number of data bits.
func (c *Cell) BitLen() int { return c.bits.Len() }

// Bits returns the cell data as a BitString.
func (c *Cell) Bits() BitString { return c.bits }

// RefCount returns the number of child references.
func (c *Cell) RefCount() int { return len(c.refs) }

// Ref returns the i-th child reference.
func (c *Cell) Ref(i int) *Cell { return c.refs[i] }

// Hash returns the representation hash. For a pruned-branch cell this is
// the hash of the subtree the cell stands in for, so eliding a subtree
// leaves every ancestor hash unchanged.
func (c *Cell) Hash() [HashBytes]byte { return c.hash }

// Depth returns the height of the reference DAG below this cell. For a
// pruned-branch cell it is the recorded depth of the elided subtree.
func (c *Cell) Depth() uint16 { return c.depth }

// BeginParse returns a fresh read cursor over the cell.
func (c *Cell) BeginParse() *Slice {
	return &Slice{cell: c}
}
