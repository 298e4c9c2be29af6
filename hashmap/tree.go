package hashmap

import (
	"sort"

	"github.com/forestrie/go-cellmap/boc"
)

// The encoder works over an ephemeral edge/node tree built from the padded
// key map. Keys are carried as "01" pattern strings of uniform length,
// which makes lexicographic ordering and prefix arithmetic plain string
// operations. The tree is built bottom-up, consumed by one write traversal
// and dropped.

type node[V any] struct {
	leaf  bool
	value V        // set when leaf
	left  *edge[V] // set when fork
	right *edge[V]
}

type edge[V any] struct {
	label string
	node  *node[V]
}

// findCommonPrefix returns the longest common prefix of all keys. The
// common prefix of the lexicographic minimum and maximum equals the common
// prefix of the whole set.
func findCommonPrefix(keys []string) string {
	if len(keys) == 0 {
		return ""
	}
	lo, hi := keys[0], keys[0]
	for _, k := range keys[1:] {
		if k < lo {
			lo = k
		}
		if k > hi {
			hi = k
		}
	}
	i := 0
	for i < len(lo) && lo[i] == hi[i] {
		i++
	}
	return lo[:i]
}

// removePrefix drops the first length characters of every key.
func removePrefix[V any](m map[string]V, length int) map[string]V {
	if length == 0 {
		return m
	}
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k[length:]] = v
	}
	return out
}

// forkMap partitions by leading bit, dropping it. Both sides are non-empty
// whenever the caller has already stripped the common prefix of a map with
// two or more keys.
func forkMap[V any](m map[string]V) (left, right map[string]V, err error) {
	left = make(map[string]V)
	right = make(map[string]V)
	for k, v := range m {
		if len(k) == 0 {
			return nil, nil, ErrInternalInvariant
		}
		if k[0] == '0' {
			left[k[1:]] = v
		} else {
			right[k[1:]] = v
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return nil, nil, ErrInternalInvariant
	}
	return left, right, nil
}

func buildNode[V any](m map[string]V) (*node[V], error) {
	if len(m) == 0 {
		return nil, ErrInternalInvariant
	}
	if len(m) == 1 {
		for _, v := range m {
			return &node[V]{leaf: true, value: v}, nil
		}
	}
	l, r, err := forkMap(m)
	if err != nil {
		return nil, err
	}
	le, err := buildEdge(l)
	if err != nil {
		return nil, err
	}
	re, err := buildEdge(r)
	if err != nil {
		return nil, err
	}
	return &node[V]{left: le, right: re}, nil
}

func buildEdge[V any](m map[string]V) (*edge[V], error) {
	if len(m) == 0 {
		return nil, ErrInternalInvariant
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	label := findCommonPrefix(keys)
	n, err := buildNode(removePrefix(m, len(label)))
	if err != nil {
		return nil, err
	}
	return &edge[V]{label: label, node: n}, nil
}

// writeEdge emits the edge label under the remaining key budget n, then
// the node it leads to.
func writeEdge[V any](e *edge[V], n int, valueCodec Codec[V], b *boc.Builder) error {
	label := boc.MustParseBits(e.label)
	if err := writeLabel(b, label, n); err != nil {
		return err
	}
	return writeNode(e.node, n-label.Len(), valueCodec, b)
}

// writeNode emits a leaf value inline, or finalizes both fork children
// into fresh cells referenced left first.
func writeNode[V any](nd *node[V], n int, valueCodec Codec[V], b *boc.Builder) error {
	if nd.leaf {
		if n != 0 {
			return ErrInternalInvariant
		}
		return valueCodec.Store(nd.value, b)
	}
	if n < 1 {
		return ErrInternalInvariant
	}
	for _, child := range []*edge[V]{nd.left, nd.right} {
		cb := boc.NewBuilder()
		if err := writeEdge(child, n-1, valueCodec, cb); err != nil {
			return err
		}
		cell, err := cb.EndCell()
		if err != nil {
			return err
		}
		if err := b.StoreRef(cell); err != nil {
			return err
		}
	}
	return nil
}
