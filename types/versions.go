package types

import (
	"fmt"

	"github.com/leafmint/leafmint-go/cbor"
)

type Version uint64

type Versioned interface {
	GetVersion() Version
}

// CBOR tags of the persisted record types.
const (
	_ = iota + cbor.Tag(1000)
	TreeConfigTag
	MintRequestTag
	VoucherTag
	TreeSnapshotTag
)

// EnsureVersion returns an error when got is not the version expected for v.
func EnsureVersion(v Versioned, got, expected Version) error {
	if got != expected {
		return fmt.Errorf("invalid version (type %T), expected %d, got %d", v, expected, got)
	}
	return nil
}
