package cnft

import (
	"fmt"

	"github.com/leafmint/leafmint-go/kv"
	"github.com/leafmint/leafmint-go/leaf"
	"github.com/leafmint/leafmint-go/metadata"
	"github.com/leafmint/leafmint-go/types"
	"github.com/leafmint/leafmint-go/types/hex"
)

// Mint creates a new leaf for the recipient at the tree's next
// position and consumes one unit of the signer's approved mint
// allowance. The leaf's nonce is the tree's mint counter at the time
// of the call and never changes afterwards.
func (p *Processor) Mint(signer types.Address, params *MintParams) (res *LeafUpdate, err error) {
	defer func() { p.observe("mint", err) }()
	if params == nil {
		return nil, ErrParamsIsNil
	}
	if params.Recipient.IsZero() {
		return nil, ErrRecipientIsNil
	}
	err = p.db.Update(func(tx kv.WritableTx) error {
		cfg, err := loadTreeConfig(tx, params.Tree)
		if err != nil {
			return err
		}
		req, err := loadMintRequest(tx, params.Tree, signer)
		if err != nil {
			return err
		}
		if req == nil {
			return ErrNoMintRequest
		}
		if req.Remaining() == 0 {
			return ErrMintQuotaExceeded
		}
		if cfg.Minted >= cfg.Capacity {
			return ErrTreeFull
		}
		if err := metadata.ValidateCreate(params.Args, signer); err != nil {
			return err
		}
		delegate := params.Delegate
		if delegate.IsZero() {
			delegate = params.Recipient
		}
		dataHash, err := metadata.HashData(params.Args)
		if err != nil {
			return err
		}
		l := leaf.New(params.Tree, params.Recipient, delegate, cfg.Minted,
			dataHash, metadata.HashCreators(params.Args.Creators))

		req.Consumed++
		cfg.Minted++
		if err := saveMintRequest(tx, params.Tree, req); err != nil {
			return err
		}
		if err := saveTreeConfig(tx, params.Tree, cfg); err != nil {
			return err
		}
		index, root, err := p.engine.Append(params.Tree, l.Hash())
		if err != nil {
			return fmt.Errorf("appending leaf: %w", err)
		}
		if index != l.Nonce {
			return ErrTreeOutOfSync
		}
		res = &LeafUpdate{Leaf: l, Index: index, Root: root}
		return nil
	})
	if err != nil {
		return nil, err
	}
	p.log.Debug().
		Stringer("tree", params.Tree).
		Stringer("asset", res.Leaf.ID).
		Uint64("index", res.Index).
		Msg("leaf minted")
	return res, nil
}

// Transfer hands the leaf to a new owner. The current owner or
// delegate must sign, and the delegate always resets to the new owner.
func (p *Processor) Transfer(signer types.Address, params *TransferParams) (res *LeafUpdate, err error) {
	defer func() { p.observe("transfer", err) }()
	if params == nil {
		return nil, ErrParamsIsNil
	}
	if params.NewOwner.IsZero() {
		return nil, ErrNewOwnerIsNil
	}
	if err := params.Leaf.IsValid(); err != nil {
		return nil, fmt.Errorf("invalid leaf: %w", err)
	}
	if signer != params.Leaf.Owner && signer != params.Leaf.Delegate {
		return nil, ErrNotLeafAuthority
	}
	next := params.Leaf.Copy()
	next.Owner = params.NewOwner
	next.Delegate = params.NewOwner
	root, err := p.engine.VerifyAndReplace(params.Tree, params.Index, params.Leaf.Hash(), next.Hash(), params.Proof)
	if err != nil {
		return nil, fmt.Errorf("replacing leaf: %w", err)
	}
	p.log.Debug().
		Stringer("tree", params.Tree).
		Stringer("asset", next.ID).
		Stringer("owner", next.Owner).
		Msg("leaf transferred")
	return &LeafUpdate{Leaf: next, Index: params.Index, Root: root}, nil
}

// Delegate appoints a new delegate for the leaf. Only the owner may
// sign; a zero delegate resets it to the owner.
func (p *Processor) Delegate(signer types.Address, params *DelegateParams) (res *LeafUpdate, err error) {
	defer func() { p.observe("delegate", err) }()
	if params == nil {
		return nil, ErrParamsIsNil
	}
	if err := params.Leaf.IsValid(); err != nil {
		return nil, fmt.Errorf("invalid leaf: %w", err)
	}
	if signer != params.Leaf.Owner {
		return nil, ErrNotLeafOwner
	}
	delegate := params.NewDelegate
	if delegate.IsZero() {
		delegate = params.Leaf.Owner
	}
	next := params.Leaf.Copy()
	next.Delegate = delegate
	root, err := p.engine.VerifyAndReplace(params.Tree, params.Index, params.Leaf.Hash(), next.Hash(), params.Proof)
	if err != nil {
		return nil, fmt.Errorf("replacing leaf: %w", err)
	}
	p.log.Debug().
		Stringer("tree", params.Tree).
		Stringer("asset", next.ID).
		Stringer("delegate", next.Delegate).
		Msg("leaf delegated")
	return &LeafUpdate{Leaf: next, Index: params.Index, Root: root}, nil
}

// Burn permanently empties the leaf's position. The owner or delegate
// must sign. There is no way back: the position is never reused and no
// voucher is produced.
func (p *Processor) Burn(signer types.Address, params *BurnParams) (root hex.Bytes, err error) {
	defer func() { p.observe("burn", err) }()
	if params == nil {
		return nil, ErrParamsIsNil
	}
	if err := params.Leaf.IsValid(); err != nil {
		return nil, fmt.Errorf("invalid leaf: %w", err)
	}
	if signer != params.Leaf.Owner && signer != params.Leaf.Delegate {
		return nil, ErrNotLeafAuthority
	}
	root, err = p.engine.VerifyAndRemove(params.Tree, params.Index, params.Leaf.Hash(), params.Proof)
	if err != nil {
		return nil, fmt.Errorf("removing leaf: %w", err)
	}
	p.log.Debug().
		Stringer("tree", params.Tree).
		Stringer("asset", params.Leaf.ID).
		Msg("leaf burned")
	return root, nil
}
