package cnft

import (
	"fmt"

	"github.com/leafmint/leafmint-go/kv"
	"github.com/leafmint/leafmint-go/types"
)

// CreateTree registers a new commitment tree of the given depth with
// the signer as both its creator and its delegate.
func (p *Processor) CreateTree(signer types.Address, params *CreateTreeParams) (cfg *TreeConfig, err error) {
	defer func() { p.observe("create_tree", err) }()
	if params == nil {
		return nil, ErrParamsIsNil
	}
	if params.Tree.IsZero() {
		return nil, ErrTreeIsNil
	}
	if signer.IsZero() {
		return nil, ErrSignerIsNil
	}
	err = p.db.Update(func(tx kv.WritableTx) error {
		trees, err := tx.GetBucketOrCreate(bucketTrees)
		if err != nil {
			return err
		}
		if trees.Get(params.Tree[:]) != nil {
			return ErrTreeExists
		}
		capacity, err := p.engine.NewTree(params.Tree, params.Depth)
		if err != nil {
			return fmt.Errorf("creating tree: %w", err)
		}
		cfg = &TreeConfig{
			Version:  1,
			Creator:  signer,
			Delegate: signer,
			Capacity: capacity,
		}
		return saveTreeConfig(tx, params.Tree, cfg)
	})
	if err != nil {
		return nil, err
	}
	p.log.Debug().
		Stringer("tree", params.Tree).
		Uint64("capacity", cfg.Capacity).
		Msg("tree created")
	return cfg, nil
}

// SetTreeDelegate hands the tree's approval authority to a new
// delegate. Only the tree creator may do this.
func (p *Processor) SetTreeDelegate(signer types.Address, params *SetTreeDelegateParams) (cfg *TreeConfig, err error) {
	defer func() { p.observe("set_tree_delegate", err) }()
	if params == nil {
		return nil, ErrParamsIsNil
	}
	if params.NewDelegate.IsZero() {
		return nil, ErrDelegateIsNil
	}
	err = p.db.Update(func(tx kv.WritableTx) error {
		cfg, err = loadTreeConfig(tx, params.Tree)
		if err != nil {
			return err
		}
		if signer != cfg.Creator {
			return ErrNotTreeCreator
		}
		cfg.Delegate = params.NewDelegate
		return saveTreeConfig(tx, params.Tree, cfg)
	})
	if err != nil {
		return nil, err
	}
	p.log.Debug().
		Stringer("tree", params.Tree).
		Stringer("delegate", cfg.Delegate).
		Msg("tree delegate changed")
	return cfg, nil
}
