package cmt

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leafmint/leafmint-go/types/hex"
)

func TestSnapshot_CBOR(t *testing.T) {
	tr, err := New(3)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		_, _, err = tr.Append(testLeaf(byte(i)))
		require.NoError(t, err)
	}

	s := tr.Snapshot()
	require.EqualValues(t, 1, s.GetVersion())
	data, err := s.MarshalCBOR()
	require.NoError(t, err)

	decoded := &Snapshot{}
	require.NoError(t, decoded.UnmarshalCBOR(data))
	require.Equal(t, s, decoded)

	restored, err := FromSnapshot(decoded)
	require.NoError(t, err)
	require.Equal(t, tr.Root(), restored.Root())
	require.Equal(t, tr.Count(), restored.Count())

	t.Run("invalid version", func(t *testing.T) {
		s := tr.Snapshot()
		s.Version = 2
		data, err := s.MarshalCBOR()
		require.NoError(t, err)
		require.ErrorContains(t, (&Snapshot{}).UnmarshalCBOR(data),
			"invalid version (type *cmt.Snapshot), expected 1, got 2")
	})
}

func TestSnapshot_IsValid(t *testing.T) {
	valid := func() *Snapshot {
		return &Snapshot{Version: 1, Depth: 2, Leaves: []hex.Bytes{testLeaf(1), testLeaf(2)}}
	}
	t.Run("ok", func(t *testing.T) {
		require.NoError(t, valid().IsValid())
	})
	t.Run("nil", func(t *testing.T) {
		var s *Snapshot
		require.EqualError(t, s.IsValid(), "snapshot is nil")
	})
	t.Run("depth out of range", func(t *testing.T) {
		s := valid()
		s.Depth = 0
		require.ErrorIs(t, s.IsValid(), ErrInvalidDepth)
	})
	t.Run("too many leaves", func(t *testing.T) {
		s := valid()
		s.Depth = 1
		require.EqualError(t, s.IsValid(), "2 leaves do not fit a tree of depth 1")
	})
	t.Run("invalid leaf hash", func(t *testing.T) {
		s := valid()
		s.Leaves[1] = s.Leaves[1][:4]
		require.EqualError(t, s.IsValid(),
			"invalid leaf hash length at position 1: expected 32, got 4")
	})
	t.Run("from invalid snapshot", func(t *testing.T) {
		s := valid()
		s.Depth = 40
		tr, err := FromSnapshot(s)
		require.ErrorIs(t, err, ErrInvalidDepth)
		require.Nil(t, tr)
	})
}

func TestSnapshot_EmptyTree(t *testing.T) {
	tr, err := New(2)
	require.NoError(t, err)
	s := tr.Snapshot()
	require.Empty(t, s.Leaves)

	restored, err := FromSnapshot(s)
	require.NoError(t, err)
	require.Equal(t, tr.Root(), restored.Root())
}
