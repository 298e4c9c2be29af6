package hashmap

import (
	"github.com/forestrie/go-cellmap/boc"
)

// Prune rewrites a serialized Hashmap root so that every subtree holding no
// key accepted by keep is replaced with a pruned-branch exotic cell. The
// returned root has the same representation hash as the input, so existing
// signatures and parent references over it stay valid, while parsing it
// yields only the kept keys.
//
// Subtrees that are already pruned in the input are carried through
// untouched. Prune fails with ErrEmptyRoot when keep accepts nothing
// reachable: a fully elided dictionary has no root form, only the absent
// envelope.
func Prune(root *boc.Cell, keyBits int, keep func(key boc.BitString) bool) (*boc.Cell, error) {
	if keyBits < 1 || keyBits > MaxKeyBits {
		return nil, ErrKeyBits
	}
	if root.IsExotic() {
		return nil, ErrPrunedSubtree
	}
	out, kept, err := pruneEdge(root, boc.BitString{}, keyBits, keep)
	if err != nil {
		return nil, err
	}
	if !kept {
		return nil, ErrEmptyRoot
	}
	return out, nil
}

// pruneEdge walks one edge cell. It returns the (possibly rebuilt) cell
// and whether any kept key is reachable through it.
func pruneEdge(c *boc.Cell, prefix boc.BitString, n int, keep func(key boc.BitString) bool) (*boc.Cell, bool, error) {
	s := c.BeginParse()
	label, err := readLabel(s, n)
	if err != nil {
		return nil, false, err
	}
	prefix = prefix.Append(label)
	rest := n - label.Len()

	if rest == 0 {
		return c, keep(prefix), nil
	}

	left, err := s.LoadRef()
	if err != nil {
		return nil, false, err
	}
	right, err := s.LoadRef()
	if err != nil {
		return nil, false, err
	}

	children := [2]*boc.Cell{left, right}
	kept := [2]bool{}
	anyKept := false
	for i, child := range children {
		if child.IsExotic() {
			continue
		}
		rebuilt, k, err := pruneEdge(child, prefix.AppendBit(i == 1), rest-1, keep)
		if err != nil {
			return nil, false, err
		}
		children[i], kept[i] = rebuilt, k
		anyKept = anyKept || k
	}
	if !anyKept {
		return c, false, nil
	}

	// A fork cell's own data is exactly its label encoding, so rebuilding
	// is copying the bits and re-attaching the two children, pruning the
	// side that keeps nothing.
	b := boc.NewBuilder()
	if err := b.WriteBits(c.Bits()); err != nil {
		return nil, false, err
	}
	for i, child := range children {
		if !kept[i] && !child.IsExotic() {
			child = boc.PruneCell(child)
		}
		if err := b.StoreRef(child); err != nil {
			return nil, false, err
		}
	}
	rebuilt, err := b.EndCell()
	if err != nil {
		return nil, false, err
	}
	return rebuilt, true, nil
}
