package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGCD(t *testing.T) {
	require.Equal(t, 4, GCD(12, 8))
	require.Equal(t, 1, GCD(15, 8))
	require.Equal(t, 7, GCD(0, 7))
	require.Equal(t, 3, GCD(-9, 6))
}

func TestIsPowerOfTwo(t *testing.T) {
	for _, x := range []int{1, 2, 4, 1024} {
		require.True(t, IsPowerOfTwo(x), x)
	}
	for _, x := range []int{0, -2, 3, 12, 1023} {
		require.False(t, IsPowerOfTwo(x), x)
	}
}

func TestMinMax(t *testing.T) {
	require.Equal(t, 3, Min(3, 5))
	require.Equal(t, 5.5, Max(3.0, 5.5))
	require.Equal(t, -1.0, Min(-1.0, 0.5))
	require.Equal(t, 64, Max(64, 3))
}

func TestLog2(t *testing.T) {
	require.Equal(t, -1, Log2(0))
	require.Equal(t, 0, Log2(1))
	require.Equal(t, 3, Log2(8))
	require.Equal(t, 3, Log2(15))
	require.Equal(t, 63, Log2(1<<63))
}

func TestBitReverseInPlaceSlice(t *testing.T) {
	s := []int{0, 1, 2, 3, 4, 5, 6, 7}
	BitReverseInPlaceSlice(s, len(s))
	require.Equal(t, []int{0, 4, 2, 6, 1, 5, 3, 7}, s)
	BitReverseInPlaceSlice(s, len(s))
	require.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, s)
}

func TestSlices(t *testing.T) {
	s := []int{1, 2, 5, 9}
	require.True(t, EqualSlice(s, []int{1, 2, 5, 9}))
	require.False(t, EqualSlice(s, []int{1, 2, 5}))
	require.False(t, EqualSlice(s, []int{1, 2, 5, 8}))
}
