package hashmap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindCommonPrefix(t *testing.T) {
	for _, tc := range []struct {
		keys []string
		want string
	}{
		{[]string{"0101"}, "0101"},
		{[]string{"0101", "0100"}, "010"},
		{[]string{"0101", "1101"}, ""},
		{[]string{"0011", "0010", "0001"}, "00"},
		{[]string{}, ""},
	} {
		require.Equal(t, tc.want, findCommonPrefix(tc.keys), "keys %v", tc.keys)
	}
}

func TestForkMapPartitionsExactly(t *testing.T) {
	m := map[string]int{"001": 1, "010": 2, "110": 3}
	left, right, err := forkMap(m)
	require.NoError(t, err)
	require.Equal(t, map[string]int{"01": 1, "10": 2}, left)
	require.Equal(t, map[string]int{"10": 3}, right)
}

func TestForkMapRequiresBothSides(t *testing.T) {
	_, _, err := forkMap(map[string]int{"01": 1, "10": 2})
	require.NoError(t, err)

	// A map that was not stripped of its common prefix has an empty side.
	_, _, err = forkMap(map[string]int{"01": 1, "00": 2, "0": 3})
	require.ErrorIs(t, err, ErrInternalInvariant)

	_, _, err = forkMap(map[string]int{"11": 1, "10": 2})
	require.ErrorIs(t, err, ErrInternalInvariant)
}

func TestBuildNodeRejectsEmptyMap(t *testing.T) {
	_, err := buildNode(map[string]int{})
	require.ErrorIs(t, err, ErrInternalInvariant)
	_, err = buildEdge(map[string]int{})
	require.ErrorIs(t, err, ErrInternalInvariant)
}

// Every fork in a built tree has two non-empty children, and every edge
// label is the longest common prefix of the keys routed through it.
func TestBuiltTreeInvariants(t *testing.T) {
	m := map[string]int{
		"00000000": 1,
		"00000001": 2,
		"00001111": 3,
		"10100000": 4,
		"10100001": 5,
	}
	root, err := buildEdge(m)
	require.NoError(t, err)

	var walk func(e *edge[int], budget int) int
	walk = func(e *edge[int], budget int) int {
		require.LessOrEqual(t, len(e.label), budget)
		if e.node.leaf {
			require.Equal(t, len(e.label), budget)
			return 1
		}
		require.NotNil(t, e.node.left)
		require.NotNil(t, e.node.right)
		left := walk(e.node.left, budget-len(e.label)-1)
		right := walk(e.node.right, budget-len(e.label)-1)
		require.Positive(t, left)
		require.Positive(t, right)
		return left + right
	}
	require.Equal(t, len(m), walk(root, 8))

	// Longest-common-prefix optimality at the root.
	require.Equal(t, "", root.label)
	require.Equal(t, "000", root.node.left.label)
	require.Equal(t, "010000", root.node.right.label)
}
