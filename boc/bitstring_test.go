package boc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBitStringBasics(t *testing.T) {
	bs := MustParseBits("10110")
	require.Equal(t, 5, bs.Len())
	require.True(t, bs.At(0))
	require.False(t, bs.At(1))
	require.True(t, bs.At(2))
	require.Equal(t, "10110", bs.String())
	require.Equal(t, uint64(0b10110), bs.Uint())
}

func TestBitStringFromUint(t *testing.T) {
	require.Equal(t, "1000", BitStringFromUint(8, 4).String())
	require.Equal(t, "00101010", BitStringFromUint(0x2A, 8).String())
	require.Equal(t, "", BitStringFromUint(0, 0).String())
}

func TestBitStringSubstringDropPad(t *testing.T) {
	bs := MustParseBits("110100")

	require.Equal(t, "101", bs.Substring(1, 3).String())
	require.Equal(t, "0100", bs.DropFirst(2).String())
	require.Equal(t, "00110100", bs.PadLeft(8).String())
	require.Equal(t, bs.String(), bs.PadLeft(6).String())

	require.Panics(t, func() { bs.Substring(4, 4) })
	require.Panics(t, func() { bs.PadLeft(3) })
}

func TestBitStringAppend(t *testing.T) {
	a := MustParseBits("101")
	b := MustParseBits("0111")
	require.Equal(t, "1010111", a.Append(b).String())
	require.Equal(t, "1011", a.AppendBit(true).String())
	// Append never mutates its receiver.
	require.Equal(t, "101", a.String())
}

func TestBitStringRepeatsSameBit(t *testing.T) {
	for _, tc := range []struct {
		pattern string
		bit     bool
		ok      bool
	}{
		{"", false, false},
		{"0", false, true},
		{"1", true, true},
		{"0000", false, true},
		{"1111", true, true},
		{"01", false, false},
		{"1110", false, false},
	} {
		bit, ok := MustParseBits(tc.pattern).RepeatsSameBit()
		require.Equal(t, tc.ok, ok, "pattern %q", tc.pattern)
		if ok {
			require.Equal(t, tc.bit, bit, "pattern %q", tc.pattern)
		}
	}
}

func TestBitStringCompare(t *testing.T) {
	for _, tc := range []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"0", "1", -1},
		{"1", "0", 1},
		{"01", "011", -1}, // shorter prefix sorts first
		{"011", "01", 1},
		{"0101", "0101", 0},
		{"0011", "0100", -1},
	} {
		require.Equal(t, tc.want, MustParseBits(tc.a).Compare(MustParseBits(tc.b)),
			"compare %q %q", tc.a, tc.b)
	}
}

func TestBitStringEqualIncludesLength(t *testing.T) {
	require.True(t, MustParseBits("0101").Equal(MustParseBits("0101")))
	require.False(t, MustParseBits("0101").Equal(MustParseBits("01010")))
	require.False(t, MustParseBits("010").Equal(MustParseBits("011")))
}

func TestNewBitStringMasksTailBits(t *testing.T) {
	// Construction from bytes must ignore bits beyond the stated length.
	a := NewBitString([]byte{0b10110111}, 4)
	b := NewBitString([]byte{0b10110000}, 4)
	require.True(t, a.Equal(b))
	require.Equal(t, a.Bytes(), b.Bytes())
}
