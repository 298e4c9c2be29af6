package hashmap

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/forestrie/go-cellmap/boc"
)

func TestPruneKeepsSelectedKeysAndRootHash(t *testing.T) {
	d := newUintDict(t, 8)
	m := map[uint64]uint64{0x00: 1, 0x01: 2, 0x80: 3, 0xC1: 4, 0xFF: 5}
	root := storeRootCell(t, d, m)

	pruned, err := Prune(root, 8, func(key boc.BitString) bool {
		return key.Uint() == 0x80
	})
	require.NoError(t, err)

	// Eliding subtrees must not change the root commitment.
	require.Equal(t, root.Hash(), pruned.Hash())
	require.Equal(t, root.Depth(), pruned.Depth())

	got, err := d.LoadRoot(pruned.BeginParse())
	require.NoError(t, err)
	require.Equal(t, map[uint64]uint64{0x80: 3}, got)
}

func TestPruneKeepAllIsIdentity(t *testing.T) {
	d := newUintDict(t, 8)
	m := map[uint64]uint64{1: 1, 2: 2, 3: 3}
	root := storeRootCell(t, d, m)

	pruned, err := Prune(root, 8, func(boc.BitString) bool { return true })
	require.NoError(t, err)
	require.Equal(t, root.Hash(), pruned.Hash())

	got, err := d.LoadRoot(pruned.BeginParse())
	require.NoError(t, err)
	require.Equal(t, m, got)
}

func TestPruneKeepNothingFails(t *testing.T) {
	d := newUintDict(t, 8)
	root := storeRootCell(t, d, map[uint64]uint64{1: 1, 200: 2})

	_, err := Prune(root, 8, func(boc.BitString) bool { return false })
	require.ErrorIs(t, err, ErrEmptyRoot)
}

func TestPruneRejectsExoticRoot(t *testing.T) {
	d := newUintDict(t, 8)
	root := storeRootCell(t, d, map[uint64]uint64{1: 1, 200: 2})
	_, err := Prune(boc.PruneCell(root), 8, func(boc.BitString) bool { return true })
	require.ErrorIs(t, err, ErrPrunedSubtree)
}

func TestPrunedHookObservesElidedSubtrees(t *testing.T) {
	var observed []string
	d := newUintDict(t, 8, WithPrunedHook(func(prefix boc.BitString, cell *boc.Cell) {
		require.True(t, cell.IsExotic())
		observed = append(observed, prefix.String())
	}))

	m := map[uint64]uint64{0x00: 1, 0x80: 2}
	root := storeRootCell(t, d, m)
	pruned, err := Prune(root, 8, func(key boc.BitString) bool {
		return key.Uint() == 0x80
	})
	require.NoError(t, err)

	got, err := d.LoadRoot(pruned.BeginParse())
	require.NoError(t, err)
	require.Equal(t, map[uint64]uint64{0x80: 2}, got)

	// The left branch under the empty root label was elided; the hook sees
	// the prefix including the branch bit.
	require.Equal(t, []string{"0"}, observed)
}

func TestStrictPrunedRejectsElidedSubtrees(t *testing.T) {
	strict := newUintDict(t, 8, WithStrictPruned())

	m := map[uint64]uint64{0x00: 1, 0x80: 2}
	root := storeRootCell(t, strict, m)
	pruned, err := Prune(root, 8, func(key boc.BitString) bool {
		return key.Uint() == 0x80
	})
	require.NoError(t, err)

	_, err = strict.LoadRoot(pruned.BeginParse())
	require.ErrorIs(t, err, ErrPrunedSubtree)
}

func TestLoadPrunedOuterRoot(t *testing.T) {
	var observedOuter bool
	d := newUintDict(t, 8, WithPrunedHook(func(prefix boc.BitString, cell *boc.Cell) {
		require.Zero(t, prefix.Len())
		observedOuter = true
	}))
	root := storeRootCell(t, d, map[uint64]uint64{9: 9})

	b := boc.NewBuilder()
	require.NoError(t, b.WriteBit(true))
	require.NoError(t, b.StoreRef(boc.PruneCell(root)))
	env, err := b.EndCell()
	require.NoError(t, err)

	got, err := d.Load(env.BeginParse())
	require.NoError(t, err)
	require.Empty(t, got)
	require.True(t, observedOuter)

	strict := newUintDict(t, 8, WithStrictPruned())
	_, err = strict.Load(env.BeginParse())
	require.ErrorIs(t, err, ErrPrunedSubtree)
}

func TestPruneSerializesThroughBoc(t *testing.T) {
	d := newUintDict(t, 8)
	m := map[uint64]uint64{0x10: 1, 0x20: 2, 0x30: 3}
	root := storeRootCell(t, d, m)

	pruned, err := Prune(root, 8, func(key boc.BitString) bool {
		return key.Uint() != 0x20
	})
	require.NoError(t, err)

	data, err := boc.Serialize(pruned)
	require.NoError(t, err)
	back, err := boc.Deserialize(data)
	require.NoError(t, err)
	require.Equal(t, root.Hash(), back.Hash())

	got, err := d.LoadRoot(back.BeginParse())
	require.NoError(t, err)
	require.Equal(t, map[uint64]uint64{0x10: 1, 0x30: 3}, got)
}
