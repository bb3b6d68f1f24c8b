package cnft

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leafmint/leafmint-go/fault"
	"github.com/leafmint/leafmint-go/leaf"
	"github.com/leafmint/leafmint-go/metadata"
	"github.com/leafmint/leafmint-go/testutils"
	"github.com/leafmint/leafmint-go/tree/cmt"
	"github.com/leafmint/leafmint-go/types"
)

func TestMint(t *testing.T) {
	env := newTestEnv(t)
	creator := testutils.RandomAddress(t)
	minter := testutils.RandomAddress(t)
	recipient := testutils.RandomAddress(t)
	delegate := testutils.RandomAddress(t)
	tree := env.createTree(t, creator, 3)
	env.approve(t, creator, tree, minter, 10)

	t.Run("nil params", func(t *testing.T) {
		_, err := env.proc.Mint(minter, nil)
		require.ErrorIs(t, err, ErrParamsIsNil)
	})
	t.Run("zero recipient", func(t *testing.T) {
		_, err := env.proc.Mint(minter, &MintParams{Tree: tree, Args: testutils.DefaultArgs(minter)})
		require.ErrorIs(t, err, ErrRecipientIsNil)
	})
	t.Run("unknown tree", func(t *testing.T) {
		_, err := env.proc.Mint(minter, &MintParams{Tree: testutils.RandomAddress(t), Recipient: recipient, Args: testutils.DefaultArgs(minter)})
		require.ErrorIs(t, err, ErrTreeNotFound)
	})
	t.Run("invalid metadata", func(t *testing.T) {
		args := testutils.DefaultArgs(minter)
		args.Name = strings.Repeat("n", metadata.MaxNameLength+1)
		_, err := env.proc.Mint(minter, &MintParams{Tree: tree, Recipient: recipient, Args: args})
		require.ErrorIs(t, err, metadata.ErrNameTooLong)
	})
	t.Run("ok", func(t *testing.T) {
		args := testutils.DefaultArgs(minter)
		res := env.mint(t, minter, tree, recipient, args)

		require.Equal(t, recipient, res.Leaf.Owner)
		require.Equal(t, recipient, res.Leaf.Delegate)
		require.Zero(t, res.Leaf.Nonce)
		require.Equal(t, leaf.NewID(tree, 0), res.Leaf.ID)
		require.Zero(t, res.Index)
		require.EqualValues(t, env.root(t, tree), res.Root)

		dataHash, err := metadata.HashData(args)
		require.NoError(t, err)
		require.EqualValues(t, dataHash, res.Leaf.DataHash)
		require.EqualValues(t, metadata.HashCreators(args.Creators), res.Leaf.CreatorHash)
	})
	t.Run("explicit delegate", func(t *testing.T) {
		res, err := env.proc.Mint(minter, &MintParams{Tree: tree, Recipient: recipient, Delegate: delegate, Args: testutils.DefaultArgs(minter)})
		require.NoError(t, err)
		require.Equal(t, recipient, res.Leaf.Owner)
		require.Equal(t, delegate, res.Leaf.Delegate)
	})
	t.Run("nonce follows the mint counter", func(t *testing.T) {
		a := env.mint(t, minter, tree, recipient, testutils.DefaultArgs(minter))
		b := env.mint(t, minter, tree, recipient, testutils.DefaultArgs(minter))
		require.Equal(t, a.Leaf.Nonce+1, b.Leaf.Nonce)
		require.Equal(t, a.Index+1, b.Index)
		require.NotEqual(t, a.Leaf.ID, b.Leaf.ID)
	})
}

func TestMintCreators(t *testing.T) {
	env := newTestEnv(t)
	creator := testutils.RandomAddress(t)
	minter := testutils.RandomAddress(t)
	recipient := testutils.RandomAddress(t)
	first := testutils.RandomAddress(t)
	second := testutils.RandomAddress(t)
	third := testutils.RandomAddress(t)
	tree := env.createTree(t, creator, 3)
	env.approve(t, creator, tree, minter, 10)

	mint := func(args *metadata.MetadataArgs) error {
		_, err := env.proc.Mint(minter, &MintParams{Tree: tree, Recipient: recipient, Args: args})
		return err
	}

	t.Run("shares must sum to 100", func(t *testing.T) {
		err := mint(testutils.ArgsWithCreators(
			metadata.Creator{Address: first, Share: 20},
			metadata.Creator{Address: second, Share: 20},
			metadata.Creator{Address: third, Share: 20},
			metadata.Creator{Address: minter, Share: 41},
		))
		require.ErrorIs(t, err, metadata.ErrShareTotalMustBe100)

		var verr fault.ValidationError
		require.ErrorAs(t, err, &verr)
	})
	t.Run("four creators", func(t *testing.T) {
		require.NoError(t, mint(testutils.ArgsWithCreators(
			metadata.Creator{Address: first, Share: 20},
			metadata.Creator{Address: second, Share: 20},
			metadata.Creator{Address: third, Share: 20},
			metadata.Creator{Address: minter, Share: 40},
		)))
	})
	t.Run("duplicate creator address", func(t *testing.T) {
		err := mint(testutils.ArgsWithCreators(
			metadata.Creator{Address: first, Share: 50},
			metadata.Creator{Address: first, Share: 50},
		))
		require.ErrorIs(t, err, metadata.ErrDuplicateCreatorAddress)
	})
	t.Run("signer vouches only for itself", func(t *testing.T) {
		require.NoError(t, mint(testutils.ArgsWithCreators(
			metadata.Creator{Address: minter, Verified: true, Share: 100},
		)))

		err := mint(testutils.ArgsWithCreators(
			metadata.Creator{Address: first, Verified: true, Share: 100},
		))
		require.ErrorIs(t, err, metadata.ErrCannotVerifyAnotherCreator)
	})
}

func TestTransfer(t *testing.T) {
	env := newTestEnv(t)
	creator := testutils.RandomAddress(t)
	minter := testutils.RandomAddress(t)
	alice := testutils.RandomAddress(t)
	bob := testutils.RandomAddress(t)
	outsider := testutils.RandomAddress(t)
	tree := env.createTree(t, creator, 3)
	env.approve(t, creator, tree, minter, 10)
	minted := env.mint(t, minter, tree, alice, testutils.DefaultArgs(minter))

	transfer := func(signer types.Address, l *leaf.Schema, newOwner types.Address, proof *cmt.Proof) (*LeafUpdate, error) {
		return env.proc.Transfer(signer, &TransferParams{Tree: tree, Index: minted.Index, Leaf: l, NewOwner: newOwner, Proof: proof})
	}

	t.Run("nil params", func(t *testing.T) {
		_, err := env.proc.Transfer(alice, nil)
		require.ErrorIs(t, err, ErrParamsIsNil)
	})
	t.Run("zero new owner", func(t *testing.T) {
		_, err := transfer(alice, minted.Leaf, types.Address{}, env.prove(t, tree, minted.Index))
		require.ErrorIs(t, err, ErrNewOwnerIsNil)
	})
	t.Run("invalid leaf", func(t *testing.T) {
		_, err := transfer(alice, nil, bob, env.prove(t, tree, minted.Index))
		require.EqualError(t, err, "invalid leaf: leaf schema is nil")
	})
	t.Run("not the leaf authority", func(t *testing.T) {
		_, err := transfer(outsider, minted.Leaf, bob, env.prove(t, tree, minted.Index))
		require.ErrorIs(t, err, ErrNotLeafAuthority)
	})

	var current *leaf.Schema
	t.Run("owner transfers", func(t *testing.T) {
		res, err := transfer(alice, minted.Leaf, bob, env.prove(t, tree, minted.Index))
		require.NoError(t, err)
		require.Equal(t, bob, res.Leaf.Owner)
		require.Equal(t, bob, res.Leaf.Delegate)
		require.Equal(t, minted.Leaf.ID, res.Leaf.ID)
		require.Equal(t, minted.Leaf.Nonce, res.Leaf.Nonce)
		require.EqualValues(t, env.root(t, tree), res.Root)
		current = res.Leaf
	})
	t.Run("replaced contents no longer move", func(t *testing.T) {
		_, err := transfer(alice, minted.Leaf, bob, env.prove(t, tree, minted.Index))
		require.ErrorIs(t, err, cmt.ErrProofMismatch)

		var perr fault.ProofError
		require.ErrorAs(t, err, &perr)
	})
	t.Run("concurrent write invalidates a captured proof", func(t *testing.T) {
		captured := env.prove(t, tree, minted.Index)
		env.mint(t, minter, tree, alice, testutils.DefaultArgs(minter))

		_, err := transfer(bob, current, alice, captured)
		require.ErrorIs(t, err, cmt.ErrProofMismatch)

		// refetching the proof against the new root makes the same call land
		res, err := transfer(bob, current, alice, env.prove(t, tree, minted.Index))
		require.NoError(t, err)
		require.Equal(t, alice, res.Leaf.Owner)

		// back with the original owner the leaf matches its minted form
		require.Equal(t, minted.Leaf, res.Leaf)
		require.Equal(t, minted.Leaf.Hash(), res.Leaf.Hash())
	})
}

func TestDelegate(t *testing.T) {
	env := newTestEnv(t)
	creator := testutils.RandomAddress(t)
	minter := testutils.RandomAddress(t)
	alice := testutils.RandomAddress(t)
	carol := testutils.RandomAddress(t)
	tree := env.createTree(t, creator, 3)
	env.approve(t, creator, tree, minter, 10)
	minted := env.mint(t, minter, tree, alice, testutils.DefaultArgs(minter))

	delegate := func(signer types.Address, l *leaf.Schema, newDelegate types.Address) (*LeafUpdate, error) {
		return env.proc.Delegate(signer, &DelegateParams{
			Tree: tree, Index: minted.Index, Leaf: l, NewDelegate: newDelegate,
			Proof: env.prove(t, tree, minted.Index),
		})
	}

	t.Run("nil params", func(t *testing.T) {
		_, err := env.proc.Delegate(alice, nil)
		require.ErrorIs(t, err, ErrParamsIsNil)
	})
	t.Run("invalid leaf", func(t *testing.T) {
		_, err := delegate(alice, nil, carol)
		require.EqualError(t, err, "invalid leaf: leaf schema is nil")
	})
	t.Run("only the owner delegates", func(t *testing.T) {
		_, err := delegate(carol, minted.Leaf, carol)
		require.ErrorIs(t, err, ErrNotLeafOwner)
	})

	var current *leaf.Schema
	t.Run("appoint", func(t *testing.T) {
		res, err := delegate(alice, minted.Leaf, carol)
		require.NoError(t, err)
		require.Equal(t, alice, res.Leaf.Owner)
		require.Equal(t, carol, res.Leaf.Delegate)
		current = res.Leaf
	})
	t.Run("the delegate cannot reassign", func(t *testing.T) {
		_, err := delegate(carol, current, carol)
		require.ErrorIs(t, err, ErrNotLeafOwner)
	})
	t.Run("zero resets to the owner", func(t *testing.T) {
		res, err := delegate(alice, current, types.Address{})
		require.NoError(t, err)
		require.Equal(t, alice, res.Leaf.Delegate)
		require.Equal(t, minted.Leaf.Hash(), res.Leaf.Hash())
	})
}

func TestBurn(t *testing.T) {
	env := newTestEnv(t)
	creator := testutils.RandomAddress(t)
	minter := testutils.RandomAddress(t)
	alice := testutils.RandomAddress(t)
	outsider := testutils.RandomAddress(t)
	tree := env.createTree(t, creator, 2)
	env.approve(t, creator, tree, minter, 10)

	emptyRoot := env.root(t, tree)
	minted := env.mint(t, minter, tree, alice, testutils.DefaultArgs(minter))

	t.Run("nil params", func(t *testing.T) {
		_, err := env.proc.Burn(alice, nil)
		require.ErrorIs(t, err, ErrParamsIsNil)
	})
	t.Run("not the leaf authority", func(t *testing.T) {
		_, err := env.proc.Burn(outsider, &BurnParams{Tree: tree, Index: minted.Index, Leaf: minted.Leaf, Proof: env.prove(t, tree, minted.Index)})
		require.ErrorIs(t, err, ErrNotLeafAuthority)
	})
	t.Run("owner burns", func(t *testing.T) {
		root, err := env.proc.Burn(alice, &BurnParams{Tree: tree, Index: minted.Index, Leaf: minted.Leaf, Proof: env.prove(t, tree, minted.Index)})
		require.NoError(t, err)
		// the only leaf is gone, the root is the empty tree root again
		require.EqualValues(t, emptyRoot, root)
	})
	t.Run("burned contents cannot move", func(t *testing.T) {
		_, err := env.proc.Transfer(alice, &TransferParams{Tree: tree, Index: minted.Index, Leaf: minted.Leaf, NewOwner: outsider, Proof: env.prove(t, tree, minted.Index)})
		require.ErrorIs(t, err, cmt.ErrProofMismatch)
	})
	var second *LeafUpdate
	t.Run("the position is not reused", func(t *testing.T) {
		second = env.mint(t, minter, tree, alice, testutils.DefaultArgs(minter))
		require.EqualValues(t, 1, second.Index)
		require.EqualValues(t, 1, second.Leaf.Nonce)
	})
	t.Run("delegate burns", func(t *testing.T) {
		appointed, err := env.proc.Delegate(alice, &DelegateParams{
			Tree: tree, Index: second.Index, Leaf: second.Leaf, NewDelegate: outsider,
			Proof: env.prove(t, tree, second.Index),
		})
		require.NoError(t, err)
		_, err = env.proc.Burn(outsider, &BurnParams{Tree: tree, Index: second.Index, Leaf: appointed.Leaf, Proof: env.prove(t, tree, second.Index)})
		require.NoError(t, err)
	})
}
