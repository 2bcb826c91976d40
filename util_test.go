package poolalloc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundUp(t *testing.T) {
	require.Equal(t, 8, RoundUp(1))
	require.Equal(t, 8, RoundUp(8))
	require.Equal(t, 16, RoundUp(9))
	require.Equal(t, 128, RoundUp(121))
	require.Equal(t, 0, RoundUp(0))

	for n := 1; n <= 1024; n++ {
		rounded := RoundUp(n)
		require.Zero(t, rounded%Align)
		require.GreaterOrEqual(t, rounded, n)
		require.Less(t, rounded-n, Align)
	}
}

func TestAlignUp(t *testing.T) {
	require.Equal(t, 64, AlignUp(33, 32))
	require.Equal(t, 32, AlignUp(32, 32))
	require.Equal(t, 4, AlignUp(3, 4))
}
