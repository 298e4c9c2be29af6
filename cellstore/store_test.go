package cellstore

import (
	"context"
	"os"
	"testing"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"gotest.tools/v3/assert"

	"github.com/forestrie/go-cellmap/boc"
	"github.com/forestrie/go-cellmap/hashmap"
)

func testDictRoot(t *testing.T) *boc.Cell {
	t.Helper()
	d, err := hashmap.New[uint64, uint64](16, hashmap.UintCodec{Bits: 16}, hashmap.UintCodec{Bits: 32})
	require.NoError(t, err)
	b := boc.NewBuilder()
	require.NoError(t, d.StoreRoot(map[uint64]uint64{1: 100, 2: 200, 999: 300}, b))
	c, err := b.EndCell()
	require.NoError(t, err)
	return c
}

func TestMemStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore(nil)
	root := testDictRoot(t)

	hash, err := s.Put(ctx, root)
	assert.NilError(t, err)
	assert.Equal(t, root.Hash(), hash)
	assert.Equal(t, 1, s.Len())

	got, err := s.Get(ctx, hash)
	assert.NilError(t, err)
	assert.Equal(t, root.Hash(), got.Hash())

	ok, err := s.Has(ctx, hash)
	assert.NilError(t, err)
	assert.Equal(t, true, ok)

	_, err = s.Get(ctx, [boc.HashBytes]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDirStoreRoundTrip(t *testing.T) {
	logger.New("NOOP")
	defer logger.OnExit()

	ctx := context.Background()
	s, err := NewDirStore(DirStoreConfig{Dir: t.TempDir(), Log: logger.Sugar.WithServiceName("cellstore")})
	require.NoError(t, err)

	root := testDictRoot(t)
	hash, err := s.Put(ctx, root)
	require.NoError(t, err)

	got, err := s.Get(ctx, hash)
	require.NoError(t, err)
	require.Equal(t, root.Hash(), got.Hash())

	ok, err := s.Has(ctx, hash)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = s.Has(ctx, [boc.HashBytes]byte{0xAA})
	require.NoError(t, err)
	require.False(t, ok)

	_, err = s.Get(ctx, [boc.HashBytes]byte{0xAA})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDirStoreDetectsCorruption(t *testing.T) {
	ctx := context.Background()
	s, err := NewDirStore(DirStoreConfig{Dir: t.TempDir()})
	require.NoError(t, err)

	root := testDictRoot(t)
	hash, err := s.Put(ctx, root)
	require.NoError(t, err)

	// Overwrite the stored tree with a different, valid one.
	other, err := boc.NewCellFromBits(boc.MustParseBits("1111"))
	require.NoError(t, err)
	data, err := boc.Serialize(other)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(s.path(hash), data, 0o644))

	_, err = s.Get(ctx, hash)
	require.ErrorIs(t, err, ErrHashMismatch)
}

func TestStoreMetrics(t *testing.T) {
	ctx := context.Background()
	m := &Metrics{
		Puts:   prometheus.NewCounter(prometheus.CounterOpts{Name: "test_puts"}),
		Gets:   prometheus.NewCounter(prometheus.CounterOpts{Name: "test_gets"}),
		Misses: prometheus.NewCounter(prometheus.CounterOpts{Name: "test_misses"}),
	}
	s := NewMemStore(m)

	root := testDictRoot(t)
	hash, err := s.Put(ctx, root)
	require.NoError(t, err)
	_, err = s.Get(ctx, hash)
	require.NoError(t, err)
	_, err = s.Get(ctx, [boc.HashBytes]byte{9})
	require.ErrorIs(t, err, ErrNotFound)

	require.Equal(t, 1.0, testutil.ToFloat64(m.Puts))
	require.Equal(t, 2.0, testutil.ToFloat64(m.Gets))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Misses))
}
