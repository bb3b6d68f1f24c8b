package hash

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeccak256(t *testing.T) {
	t.Run("known digest", func(t *testing.T) {
		// keccak-256 of the empty input
		require.Equal(t,
			"c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470",
			fmt.Sprintf("%x", Keccak256()))
	})

	t.Run("segments equal their concatenation", func(t *testing.T) {
		require.Equal(t, Keccak256([]byte("abcd")), Keccak256([]byte("ab"), []byte("cd")))
		require.Equal(t, Keccak256([]byte("abcd")), Keccak256([]byte("abcd"), nil))
		require.NotEqual(t, Keccak256([]byte("ab")), Keccak256([]byte("ac")))
	})

	t.Run("size", func(t *testing.T) {
		require.Len(t, Keccak256([]byte{1}), Size)
	})
}

func TestIsZero(t *testing.T) {
	require.True(t, IsZero(Zero32))
	require.True(t, IsZero(make([]byte, Size)))
	require.False(t, IsZero(nil))
	require.False(t, IsZero(Keccak256()))
}
