package cmt

import (
	"sync"

	"github.com/leafmint/leafmint-go/fault"
	"github.com/leafmint/leafmint-go/types"
)

var (
	ErrTreeExists  = fault.StateError("tree already exists")
	ErrUnknownTree = fault.StateError("unknown tree")
)

// Forest is a register of commitment trees keyed by address. It is
// safe for concurrent use: proof verification and the subsequent write
// run as one step under the register lock, so two writers racing on
// the same leaf serialize and the later proof fails with
// ErrProofMismatch instead of clobbering the first write.
type Forest struct {
	mu    sync.RWMutex
	trees map[types.Address]*Tree
}

func NewForest() *Forest {
	return &Forest{trees: map[types.Address]*Tree{}}
}

// NewTree creates an empty tree of the given depth under the address
// and returns its fixed leaf capacity.
func (f *Forest) NewTree(tree types.Address, depth uint32) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.trees[tree]; ok {
		return 0, ErrTreeExists
	}
	t, err := New(depth)
	if err != nil {
		return 0, err
	}
	f.trees[tree] = t
	return t.Capacity(), nil
}

func (f *Forest) Append(tree types.Address, leafHash []byte) (uint64, []byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.trees[tree]
	if !ok {
		return 0, nil, ErrUnknownTree
	}
	return t.Append(leafHash)
}

func (f *Forest) VerifyAndReplace(tree types.Address, index uint64, oldHash, newHash []byte, proof *Proof) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.trees[tree]
	if !ok {
		return nil, ErrUnknownTree
	}
	return t.VerifyAndReplace(index, oldHash, newHash, proof)
}

func (f *Forest) VerifyAndRemove(tree types.Address, index uint64, oldHash []byte, proof *Proof) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.trees[tree]
	if !ok {
		return nil, ErrUnknownTree
	}
	return t.VerifyAndRemove(index, oldHash, proof)
}

func (f *Forest) Prove(tree types.Address, index uint64) (*Proof, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	t, ok := f.trees[tree]
	if !ok {
		return nil, ErrUnknownTree
	}
	return t.Prove(index)
}

func (f *Forest) Root(tree types.Address) ([]byte, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	t, ok := f.trees[tree]
	if !ok {
		return nil, ErrUnknownTree
	}
	return t.Root(), nil
}

// SnapshotTree captures the state of one tree for persisting.
func (f *Forest) SnapshotTree(tree types.Address) (*Snapshot, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	t, ok := f.trees[tree]
	if !ok {
		return nil, ErrUnknownTree
	}
	return t.Snapshot(), nil
}

// RestoreTree rebuilds a previously snapshotted tree under the
// address.
func (f *Forest) RestoreTree(tree types.Address, s *Snapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.trees[tree]; ok {
		return ErrTreeExists
	}
	t, err := FromSnapshot(s)
	if err != nil {
		return err
	}
	f.trees[tree] = t
	return nil
}
