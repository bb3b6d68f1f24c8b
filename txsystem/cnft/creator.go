package cnft

import (
	"fmt"

	"github.com/leafmint/leafmint-go/metadata"
	"github.com/leafmint/leafmint-go/types"
)

// VerifyCreator sets the verified flag of the named creator in the
// asset's metadata. Verification is a self attestation: the named
// creator itself must sign.
func (p *Processor) VerifyCreator(signer types.Address, params *CreatorVerificationParams) (*LeafUpdate, error) {
	return p.setCreatorVerified(signer, params, true, "verify_creator")
}

// UnverifyCreator clears the verified flag of the named creator. Like
// verification, only the named creator may sign.
func (p *Processor) UnverifyCreator(signer types.Address, params *CreatorVerificationParams) (*LeafUpdate, error) {
	return p.setCreatorVerified(signer, params, false, "unverify_creator")
}

func (p *Processor) setCreatorVerified(signer types.Address, params *CreatorVerificationParams, verified bool, op string) (res *LeafUpdate, err error) {
	defer func() { p.observe(op, err) }()
	if params == nil {
		return nil, ErrParamsIsNil
	}
	if params.Args == nil {
		return nil, metadata.ErrArgsIsNil
	}
	if signer != params.Creator {
		return nil, ErrNotCreator
	}
	newArgs := params.Args.Copy()
	found := false
	for i := range newArgs.Creators {
		if newArgs.Creators[i].Address == params.Creator {
			newArgs.Creators[i].Verified = verified
			found = true
			break
		}
	}
	if !found {
		return nil, ErrCreatorNotFound
	}
	oldLeaf, err := buildLeaf(params.Tree, params.Owner, params.Delegate, params.Nonce, params.Args)
	if err != nil {
		return nil, err
	}
	newLeaf, err := buildLeaf(params.Tree, params.Owner, params.Delegate, params.Nonce, newArgs)
	if err != nil {
		return nil, err
	}
	root, err := p.engine.VerifyAndReplace(params.Tree, params.Index, oldLeaf.Hash(), newLeaf.Hash(), params.Proof)
	if err != nil {
		return nil, fmt.Errorf("replacing leaf: %w", err)
	}
	p.log.Debug().
		Stringer("tree", params.Tree).
		Stringer("asset", newLeaf.ID).
		Stringer("creator", params.Creator).
		Bool("verified", verified).
		Msg("creator verification changed")
	return &LeafUpdate{Leaf: newLeaf, Index: params.Index, Root: root}, nil
}

// UpdateMetadata replaces the asset's descriptive record, subject to
// the full update rule set: immutability, length caps, creator share
// arithmetic, creator and collection verification authority and uses
// consumption. The tree creator or delegate must sign.
func (p *Processor) UpdateMetadata(signer types.Address, params *UpdateMetadataParams) (res *LeafUpdate, err error) {
	defer func() { p.observe("update_metadata", err) }()
	if params == nil {
		return nil, ErrParamsIsNil
	}
	cfg, err := p.GetTreeConfig(params.Tree)
	if err != nil {
		return nil, err
	}
	if signer != cfg.Creator && signer != cfg.Delegate {
		return nil, ErrNotTreeAuthority
	}
	if err := metadata.ValidateUpdate(params.NewArgs, params.OldArgs, signer); err != nil {
		return nil, err
	}
	oldLeaf, err := buildLeaf(params.Tree, params.Owner, params.Delegate, params.Nonce, params.OldArgs)
	if err != nil {
		return nil, err
	}
	newLeaf, err := buildLeaf(params.Tree, params.Owner, params.Delegate, params.Nonce, params.NewArgs)
	if err != nil {
		return nil, err
	}
	root, err := p.engine.VerifyAndReplace(params.Tree, params.Index, oldLeaf.Hash(), newLeaf.Hash(), params.Proof)
	if err != nil {
		return nil, fmt.Errorf("replacing leaf: %w", err)
	}
	p.log.Debug().
		Stringer("tree", params.Tree).
		Stringer("asset", newLeaf.ID).
		Msg("metadata updated")
	return &LeafUpdate{Leaf: newLeaf, Index: params.Index, Root: root}, nil
}
