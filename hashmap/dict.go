package hashmap

import (
	"github.com/forestrie/go-cellmap/boc"
)

// MaxKeyBits bounds the dictionary key width; a leaf label must fit the
// data capacity of a single cell.
const MaxKeyBits = boc.MaxCellBits

// PrunedHook observes pruned-branch references skipped during parsing.
// prefix holds the key bits accumulated down to the elided subtree,
// including the branch bit that selected it (empty for a pruned outer
// root). cell is the exotic cell itself.
type PrunedHook func(prefix boc.BitString, cell *boc.Cell)

type options struct {
	prunedHook   PrunedHook
	strictPruned bool
}

// Option configures a dictionary coder.
type Option func(*options)

// WithPrunedHook registers a diagnostic callback invoked for every
// pruned-branch reference the parser skips.
func WithPrunedHook(hook PrunedHook) Option {
	return func(o *options) { o.prunedHook = hook }
}

// WithStrictPruned makes pruned-branch references a parse error instead of
// silently absent subtrees.
func WithStrictPruned() Option {
	return func(o *options) { o.strictPruned = true }
}

// Dict converts between map[K]V and the HashmapE cell representation.
// A Dict is a configuration record: it holds no per-call state and may be
// shared freely across goroutines.
type Dict[K comparable, V any] struct {
	keyBits    int
	keyCodec   Codec[K]
	valueCodec Codec[V]
	opts       options
}

// New returns a dictionary coder for keyBits-wide keys. Every key must
// serialize to at most keyBits bits; shorter keys are left-padded with zero
// bits. A key codec with a known static size must report exactly keyBits
// and is checked here; other key codecs are checked per key during Store,
// where only over-long keys are rejected.
func New[K comparable, V any](keyBits int, keyCodec Codec[K], valueCodec Codec[V], opts ...Option) (*Dict[K, V], error) {
	if keyBits < 1 || keyBits > MaxKeyBits {
		return nil, ErrKeyBits
	}
	if ss, ok := keyCodec.(StaticSize); ok && ss.BitSize() != keyBits {
		return nil, ErrKeyCodecSize
	}
	d := &Dict[K, V]{keyBits: keyBits, keyCodec: keyCodec, valueCodec: valueCodec}
	for _, opt := range opts {
		opt(&d.opts)
	}
	return d, nil
}

// KeyBits returns the configured key width.
func (d *Dict[K, V]) KeyBits() int { return d.keyBits }

// Store writes the HashmapE envelope: a single 0 bit for an empty map, or
// a 1 bit followed by a reference to the root cell.
func (d *Dict[K, V]) Store(m map[K]V, b *boc.Builder) error {
	if len(m) == 0 {
		return b.WriteBit(false)
	}
	if err := b.WriteBit(true); err != nil {
		return err
	}
	rb := boc.NewBuilder()
	if err := d.StoreRoot(m, rb); err != nil {
		return err
	}
	root, err := rb.EndCell()
	if err != nil {
		return err
	}
	return b.StoreRef(root)
}

// StoreRoot writes the raw Hashmap root for a non-empty map.
func (d *Dict[K, V]) StoreRoot(m map[K]V, b *boc.Builder) error {
	if len(m) == 0 {
		return ErrEmptyRoot
	}
	padded, err := d.padKeys(m)
	if err != nil {
		return err
	}
	root, err := buildEdge(padded)
	if err != nil {
		return err
	}
	return writeEdge(root, d.keyBits, d.valueCodec, b)
}

// padKeys serializes every key and left-pads it with zero bits to the
// configured key width. Keys serializing beyond the width are rejected.
func (d *Dict[K, V]) padKeys(m map[K]V) (map[string]V, error) {
	padded := make(map[string]V, len(m))
	for k, v := range m {
		kb := boc.NewBuilder()
		if err := d.keyCodec.Store(k, kb); err != nil {
			return nil, err
		}
		bits := kb.Bits()
		if bits.Len() > d.keyBits {
			return nil, ErrKeyLengthMismatch
		}
		padded[bits.PadLeft(d.keyBits).String()] = v
	}
	return padded, nil
}

// Load reads the HashmapE envelope and returns the decoded map. An absent
// dictionary decodes to an empty map, as does a pruned outer root (the
// pruned hook still observes it; strict mode rejects it).
func (d *Dict[K, V]) Load(s *boc.Slice) (map[K]V, error) {
	root, err := s.LoadMaybeRef()
	if err != nil {
		return nil, err
	}
	if root == nil {
		return map[K]V{}, nil
	}
	if root.IsExotic() {
		if d.opts.strictPruned {
			return nil, ErrPrunedSubtree
		}
		if d.opts.prunedHook != nil {
			d.opts.prunedHook(boc.BitString{}, root)
		}
		return map[K]V{}, nil
	}
	return d.LoadRoot(root.BeginParse())
}

// LoadRoot parses a raw Hashmap root.
func (d *Dict[K, V]) LoadRoot(s *boc.Slice) (map[K]V, error) {
	out := make(map[K]V)
	if err := d.doParse(s, boc.BitString{}, d.keyBits, out); err != nil {
		return nil, err
	}
	return out, nil
}

// doParse consumes one edge: label, then either an inline leaf value or
// two child references. prefix accumulates the key bits on the path from
// the root; n is the remaining key budget.
func (d *Dict[K, V]) doParse(s *boc.Slice, prefix boc.BitString, n int, out map[K]V) error {
	label, err := readLabel(s, n)
	if err != nil {
		return err
	}
	prefix = prefix.Append(label)
	rest := n - label.Len()

	if rest == 0 {
		keyCell, err := boc.NewCellFromBits(prefix)
		if err != nil {
			return err
		}
		key, err := d.keyCodec.Load(keyCell.BeginParse())
		if err != nil {
			return err
		}
		value, err := d.valueCodec.Load(s)
		if err != nil {
			return err
		}
		out[key] = value
		return nil
	}

	left, err := s.LoadRef()
	if err != nil {
		return err
	}
	right, err := s.LoadRef()
	if err != nil {
		return err
	}
	for i, child := range []*boc.Cell{left, right} {
		branch := prefix.AppendBit(i == 1)
		if child.IsExotic() {
			if d.opts.strictPruned {
				return ErrPrunedSubtree
			}
			if d.opts.prunedHook != nil {
				d.opts.prunedHook(branch, child)
			}
			continue
		}
		if err := d.doParse(child.BeginParse(), branch, rest-1, out); err != nil {
			return err
		}
	}
	return nil
}
