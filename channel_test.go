package coop

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChannel_BasicFIFO(t *testing.T) {
	ch := NewChannel[byte](4)
	require.True(t, ch.CanWrite())
	require.False(t, ch.CanRead())

	require.True(t, ch.Write('H'))
	require.True(t, ch.Write('i'))
	require.True(t, ch.Write('\n'))
	require.Equal(t, 3, ch.Len())

	require.Equal(t, byte('H'), ch.Read())
	require.Equal(t, byte('i'), ch.Read())
	require.Equal(t, byte('\n'), ch.Read())
	require.Equal(t, 0, ch.Len())
	require.False(t, ch.CanRead())
}

// TestChannel_Overflow matches spec §8 scenario 5: capacity 2, writes of
// 'a','b','c','d' without a reader running. The first two succeed, the
// last two are dropped and report false; count stays at 2; subsequent
// reads return 'a' then 'b'.
func TestChannel_Overflow(t *testing.T) {
	ch := NewChannel[byte](2)

	require.True(t, ch.Write('a'))
	require.True(t, ch.Write('b'))
	require.False(t, ch.Write('c'))
	require.False(t, ch.Write('d'))
	require.Equal(t, 2, ch.Len())
	require.False(t, ch.CanWrite())

	require.Equal(t, byte('a'), ch.Read())
	require.Equal(t, byte('b'), ch.Read())
	require.Equal(t, byte(0), ch.Read())
}

func TestChannel_WrapAroundIndices(t *testing.T) {
	ch := NewChannel[int](3)
	for i := 0; i < 10; i++ {
		require.True(t, ch.Write(i))
		require.Equal(t, i, ch.Read())
	}
}

func TestChannel_NewPanicsOnNonPositiveCapacity(t *testing.T) {
	require.Panics(t, func() { NewChannel[byte](0) })
	require.Panics(t, func() { NewChannel[byte](-1) })
}

func TestChannel_CapReflectsCapacity(t *testing.T) {
	ch := NewChannel[byte](7)
	require.Equal(t, 7, ch.Cap())
}
