package cmt

import (
	"bytes"
	"fmt"

	"github.com/leafmint/leafmint-go/cbor"
	"github.com/leafmint/leafmint-go/hash"
	"github.com/leafmint/leafmint-go/types"
	"github.com/leafmint/leafmint-go/types/hex"
)

// Snapshot is the serializable state of a tree: its depth and every
// appended leaf hash in append order, removed positions included as
// zero sentinels. Restoring replays the appends, so a snapshot and the
// tree it was taken from always agree on the root.
type Snapshot struct {
	_       struct{}      `cbor:",toarray"`
	Version types.Version `json:"version"`
	Depth   uint32        `json:"depth"`
	Leaves  []hex.Bytes   `json:"leaves"`
}

// Snapshot captures the current leaves of the tree.
func (t *Tree) Snapshot() *Snapshot {
	leaves := make([]hex.Bytes, t.count)
	for i := range leaves {
		leaves[i] = bytes.Clone(t.nodes[0][i])
	}
	return &Snapshot{
		Version: 1,
		Depth:   t.depth,
		Leaves:  leaves,
	}
}

// FromSnapshot rebuilds a tree from a snapshot.
func FromSnapshot(s *Snapshot) (*Tree, error) {
	if err := s.IsValid(); err != nil {
		return nil, fmt.Errorf("invalid tree snapshot: %w", err)
	}
	t, err := New(s.Depth)
	if err != nil {
		return nil, err
	}
	for _, leafHash := range s.Leaves {
		if _, _, err := t.Append(leafHash); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (s *Snapshot) IsValid() error {
	if s == nil {
		return fmt.Errorf("snapshot is nil")
	}
	if s.Depth < MinDepth || s.Depth > MaxDepth {
		return ErrInvalidDepth
	}
	if uint64(len(s.Leaves)) > 1<<s.Depth {
		return fmt.Errorf("%d leaves do not fit a tree of depth %d", len(s.Leaves), s.Depth)
	}
	for i, leafHash := range s.Leaves {
		if len(leafHash) != hash.Size {
			return fmt.Errorf("invalid leaf hash length at position %d: expected %d, got %d", i, hash.Size, len(leafHash))
		}
	}
	return nil
}

func (s *Snapshot) GetVersion() types.Version {
	if s == nil || s.Version == 0 {
		return 1
	}
	return s.Version
}

func (s *Snapshot) MarshalCBOR() ([]byte, error) {
	type alias Snapshot
	if s.Version == 0 {
		s.Version = s.GetVersion()
	}
	return cbor.MarshalTaggedValue(types.TreeSnapshotTag, (*alias)(s))
}

func (s *Snapshot) UnmarshalCBOR(data []byte) error {
	type alias Snapshot
	if err := cbor.UnmarshalTaggedValue(types.TreeSnapshotTag, data, (*alias)(s)); err != nil {
		return err
	}
	return types.EnsureVersion(s, s.Version, 1)
}
