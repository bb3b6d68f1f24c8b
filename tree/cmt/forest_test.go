package cmt

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leafmint/leafmint-go/types"
)

func TestForest(t *testing.T) {
	treeA := types.Address{0xA}
	treeB := types.Address{0xB}

	t.Run("new tree", func(t *testing.T) {
		f := NewForest()
		capacity, err := f.NewTree(treeA, 3)
		require.NoError(t, err)
		require.EqualValues(t, 8, capacity)

		_, err = f.NewTree(treeA, 3)
		require.ErrorIs(t, err, ErrTreeExists)

		_, err = f.NewTree(treeB, 64)
		require.ErrorIs(t, err, ErrInvalidDepth)
	})
	t.Run("unknown tree", func(t *testing.T) {
		f := NewForest()
		_, _, err := f.Append(treeA, testLeaf(1))
		require.ErrorIs(t, err, ErrUnknownTree)
		_, err = f.Prove(treeA, 0)
		require.ErrorIs(t, err, ErrUnknownTree)
		_, err = f.Root(treeA)
		require.ErrorIs(t, err, ErrUnknownTree)
		_, err = f.VerifyAndReplace(treeA, 0, testLeaf(1), testLeaf(2), nil)
		require.ErrorIs(t, err, ErrUnknownTree)
		_, err = f.VerifyAndRemove(treeA, 0, testLeaf(1), nil)
		require.ErrorIs(t, err, ErrUnknownTree)
		_, err = f.SnapshotTree(treeA)
		require.ErrorIs(t, err, ErrUnknownTree)
	})
	t.Run("trees are independent", func(t *testing.T) {
		f := NewForest()
		_, err := f.NewTree(treeA, 3)
		require.NoError(t, err)
		_, err = f.NewTree(treeB, 3)
		require.NoError(t, err)

		_, rootA, err := f.Append(treeA, testLeaf(1))
		require.NoError(t, err)
		rootB, err := f.Root(treeB)
		require.NoError(t, err)
		require.NotEqual(t, rootA, rootB, "writing tree A must not touch tree B")
	})
	t.Run("replace through the register", func(t *testing.T) {
		f := NewForest()
		_, err := f.NewTree(treeA, 3)
		require.NoError(t, err)
		index, _, err := f.Append(treeA, testLeaf(1))
		require.NoError(t, err)

		proof, err := f.Prove(treeA, index)
		require.NoError(t, err)
		newRoot, err := f.VerifyAndReplace(treeA, index, testLeaf(1), testLeaf(2), proof)
		require.NoError(t, err)
		root, err := f.Root(treeA)
		require.NoError(t, err)
		require.Equal(t, newRoot, root)

		_, err = f.VerifyAndReplace(treeA, index, testLeaf(1), testLeaf(3), proof)
		require.ErrorIs(t, err, ErrProofMismatch)
	})
}

func TestForest_SnapshotRestore(t *testing.T) {
	f := NewForest()
	tree := types.Address{0xA}
	_, err := f.NewTree(tree, 4)
	require.NoError(t, err)
	for i := 0; i < 6; i++ {
		_, _, err = f.Append(tree, testLeaf(byte(i)))
		require.NoError(t, err)
	}
	proof, err := f.Prove(tree, 3)
	require.NoError(t, err)
	_, err = f.VerifyAndRemove(tree, 3, testLeaf(3), proof)
	require.NoError(t, err)
	root, err := f.Root(tree)
	require.NoError(t, err)

	s, err := f.SnapshotTree(tree)
	require.NoError(t, err)

	restored := NewForest()
	require.NoError(t, restored.RestoreTree(tree, s))
	restoredRoot, err := restored.Root(tree)
	require.NoError(t, err)
	require.Equal(t, root, restoredRoot)

	// removed position stays occupied after a restore
	index, _, err := restored.Append(tree, testLeaf(9))
	require.NoError(t, err)
	require.EqualValues(t, 6, index)

	require.ErrorIs(t, restored.RestoreTree(tree, s), ErrTreeExists)
}
