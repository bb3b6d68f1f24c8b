package cnft

import (
	"github.com/leafmint/leafmint-go/kv"
	"github.com/leafmint/leafmint-go/types"
	"github.com/leafmint/leafmint-go/util"
)

// CreateMintRequest records a mint allowance request for the authority
// on the tree, approved for the initial capacity. The tree creator or
// delegate must sign. The call is an upsert: it reports whether the
// request was newly created, and an existing request is returned
// unchanged whatever capacity the call asked for.
func (p *Processor) CreateMintRequest(signer types.Address, params *CreateMintRequestParams) (req *MintRequest, created bool, err error) {
	defer func() { p.observe("create_mint_request", err) }()
	if params == nil {
		return nil, false, ErrParamsIsNil
	}
	if params.Authority.IsZero() {
		return nil, false, ErrAuthorityIsNil
	}
	err = p.db.Update(func(tx kv.WritableTx) error {
		cfg, err := loadTreeConfig(tx, params.Tree)
		if err != nil {
			return err
		}
		if signer != cfg.Creator && signer != cfg.Delegate {
			return ErrNotTreeAuthority
		}
		req, err = loadMintRequest(tx, params.Tree, params.Authority)
		if err != nil {
			return err
		}
		if req != nil {
			return nil
		}
		created = true
		req = &MintRequest{
			Version:   1,
			Authority: params.Authority,
			Approved:  params.Capacity,
		}
		return saveMintRequest(tx, params.Tree, req)
	})
	if err != nil {
		return nil, false, err
	}
	p.log.Debug().
		Stringer("tree", params.Tree).
		Stringer("authority", req.Authority).
		Bool("created", created).
		Msg("mint request")
	return req, created, nil
}

// ApproveMintRequest raises the authority's approved mint count by
// delta, creating the request first when none exists. Only the tree
// delegate may approve.
func (p *Processor) ApproveMintRequest(signer types.Address, params *ApproveMintRequestParams) (req *MintRequest, err error) {
	defer func() { p.observe("approve_mint_request", err) }()
	if params == nil {
		return nil, ErrParamsIsNil
	}
	if params.Authority.IsZero() {
		return nil, ErrAuthorityIsNil
	}
	err = p.db.Update(func(tx kv.WritableTx) error {
		cfg, err := loadTreeConfig(tx, params.Tree)
		if err != nil {
			return err
		}
		if signer != cfg.Delegate {
			return ErrNotTreeDelegate
		}
		req, err = loadMintRequest(tx, params.Tree, params.Authority)
		if err != nil {
			return err
		}
		if req == nil {
			req = &MintRequest{Version: 1, Authority: params.Authority}
		}
		approved, ok := util.SafeAdd(req.Approved, params.Delta)
		if !ok {
			return ErrApprovalOverflow
		}
		req.Approved = approved
		return saveMintRequest(tx, params.Tree, req)
	})
	if err != nil {
		return nil, err
	}
	p.log.Debug().
		Stringer("tree", params.Tree).
		Stringer("authority", req.Authority).
		Uint64("approved", req.Approved).
		Msg("mint request approved")
	return req, nil
}
