package main

import (
	"fmt"

	"github.com/leafmint/leafmint-go/kv"
	"github.com/leafmint/leafmint-go/tree/cmt"
	"github.com/leafmint/leafmint-go/types"
)

// The registry records live in the processor's buckets. The reference
// trees are kept alongside them as snapshots, one per tree address,
// and restored into the forest when the command opens the database.
var bucketSnapshots = []byte("tree_snapshots")

func loadSnapshots(db kv.DB, forest *cmt.Forest) error {
	return db.View(func(tx kv.ReadableTx) error {
		b := tx.GetBucket(bucketSnapshots)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			tree, err := types.AddressFromBytes(k)
			if err != nil {
				return fmt.Errorf("loading tree snapshot: %w", err)
			}
			s := &cmt.Snapshot{}
			if err := s.UnmarshalCBOR(v); err != nil {
				return fmt.Errorf("loading snapshot of tree %s: %w", tree, err)
			}
			return forest.RestoreTree(tree, s)
		})
	})
}

func saveSnapshot(db kv.DB, forest *cmt.Forest, tree types.Address) error {
	s, err := forest.SnapshotTree(tree)
	if err != nil {
		return err
	}
	data, err := s.MarshalCBOR()
	if err != nil {
		return fmt.Errorf("encoding snapshot of tree %s: %w", tree, err)
	}
	return db.Update(func(tx kv.WritableTx) error {
		b, err := tx.GetBucketOrCreate(bucketSnapshots)
		if err != nil {
			return err
		}
		return b.Set(tree.Bytes(), data)
	})
}
