package cnft

import (
	"bytes"
	"fmt"

	"github.com/leafmint/leafmint-go/hash"
	"github.com/leafmint/leafmint-go/kv"
	"github.com/leafmint/leafmint-go/metadata"
	"github.com/leafmint/leafmint-go/tree/cmt"
	"github.com/leafmint/leafmint-go/types"
)

// Redeem takes the leaf out of the tree into a voucher that pends
// until it is either cancelled or decompressed. The owner or delegate
// must sign.
func (p *Processor) Redeem(signer types.Address, params *RedeemParams) (v *Voucher, err error) {
	defer func() { p.observe("redeem", err) }()
	if params == nil {
		return nil, ErrParamsIsNil
	}
	if err := params.Leaf.IsValid(); err != nil {
		return nil, fmt.Errorf("invalid leaf: %w", err)
	}
	if signer != params.Leaf.Owner && signer != params.Leaf.Delegate {
		return nil, ErrNotLeafAuthority
	}
	if params.Proof == nil {
		return nil, cmt.ErrProofSize
	}
	err = p.db.Update(func(tx kv.WritableTx) error {
		existing, err := loadVoucher(tx, params.Tree, params.Leaf.Nonce)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrVoucherExists
		}
		oldHash := params.Leaf.Hash()
		// the root the caller's proof was built against
		root, err := params.Proof.Eval(params.Index, oldHash)
		if err != nil {
			return fmt.Errorf("evaluating proof: %w", err)
		}
		v = &Voucher{
			Version: 1,
			Leaf:    params.Leaf.Copy(),
			Index:   params.Index,
			Root:    root,
		}
		if err := saveVoucher(tx, params.Tree, v); err != nil {
			return err
		}
		if _, err := p.engine.VerifyAndRemove(params.Tree, params.Index, oldHash, params.Proof); err != nil {
			return fmt.Errorf("removing leaf: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	p.log.Debug().
		Stringer("tree", params.Tree).
		Stringer("asset", v.Leaf.ID).
		Uint64("index", v.Index).
		Msg("leaf redeemed")
	return v, nil
}

// CancelRedeem puts the redeemed leaf back at its original position
// and destroys the voucher. The voucher's owner or delegate must sign
// and supply a sibling path of the emptied position against the
// current root.
func (p *Processor) CancelRedeem(signer types.Address, params *CancelRedeemParams) (res *LeafUpdate, err error) {
	defer func() { p.observe("cancel_redeem", err) }()
	if params == nil {
		return nil, ErrParamsIsNil
	}
	err = p.db.Update(func(tx kv.WritableTx) error {
		v, err := loadVoucher(tx, params.Tree, params.Nonce)
		if err != nil {
			return err
		}
		if v == nil {
			return ErrVoucherNotFound
		}
		if signer != v.Leaf.Owner && signer != v.Leaf.Delegate {
			return ErrNotLeafAuthority
		}
		if err := tx.GetBucket(bucketVouchers).Delete(voucherKey(params.Tree, params.Nonce)); err != nil {
			return err
		}
		root, err := p.engine.VerifyAndReplace(params.Tree, v.Index, hash.Zero32, v.Leaf.Hash(), params.Proof)
		if err != nil {
			return fmt.Errorf("restoring leaf: %w", err)
		}
		res = &LeafUpdate{Leaf: v.Leaf, Index: v.Index, Root: root}
		return nil
	})
	if err != nil {
		return nil, err
	}
	p.log.Debug().
		Stringer("tree", params.Tree).
		Stringer("asset", res.Leaf.ID).
		Uint64("index", res.Index).
		Msg("redeem cancelled")
	return res, nil
}

// Decompress materializes the redeemed asset as a discrete one through
// the asset minter and retires the voucher. Only the voucher's owner
// may sign, and the supplied metadata must hash to exactly the
// committed data and creator hashes. Terminal: the voucher is gone and
// the tree position stays empty.
func (p *Processor) Decompress(signer types.Address, params *DecompressParams) (asset types.Address, err error) {
	defer func() { p.observe("decompress", err) }()
	if params == nil {
		return types.Address{}, ErrParamsIsNil
	}
	if params.Args == nil {
		return types.Address{}, metadata.ErrArgsIsNil
	}
	if p.minter == nil {
		return types.Address{}, ErrNoAssetMinter
	}
	err = p.db.Update(func(tx kv.WritableTx) error {
		v, err := loadVoucher(tx, params.Tree, params.Nonce)
		if err != nil {
			return err
		}
		if v == nil {
			return ErrVoucherNotFound
		}
		if signer != v.Leaf.Owner {
			return ErrNotLeafOwner
		}
		dataHash, err := metadata.HashData(params.Args)
		if err != nil {
			return err
		}
		if !bytes.Equal(dataHash, v.Leaf.DataHash) ||
			!bytes.Equal(metadata.HashCreators(params.Args.Creators), v.Leaf.CreatorHash) {
			return ErrHashMismatch
		}
		if err := tx.GetBucket(bucketVouchers).Delete(voucherKey(params.Tree, params.Nonce)); err != nil {
			return err
		}
		if err := p.minter.MintOne(v.Leaf.ID, v.Leaf.Owner, params.Args); err != nil {
			return fmt.Errorf("minting asset: %w", err)
		}
		asset = v.Leaf.ID
		return nil
	})
	if err != nil {
		return types.Address{}, err
	}
	p.log.Debug().
		Stringer("tree", params.Tree).
		Stringer("asset", asset).
		Msg("asset decompressed")
	return asset, nil
}
