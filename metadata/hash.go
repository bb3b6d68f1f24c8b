package metadata

import (
	"fmt"

	"github.com/near/borsh-go"

	"github.com/leafmint/leafmint-go/hash"
	"github.com/leafmint/leafmint-go/types"
	"github.com/leafmint/leafmint-go/util"
)

// HashData returns the keccak-256 digest of the canonical serialization
// of args. The serialization writes the MetadataArgs fields in struct
// declaration order: strings as u32 little-endian length plus bytes,
// integers little-endian, optional fields as one presence byte followed
// by the value, lists as u32 little-endian count plus items. The layout
// must never change for records sharing a schema version.
func HashData(args *MetadataArgs) ([]byte, error) {
	data, err := borsh.Serialize(*args)
	if err != nil {
		return nil, fmt.Errorf("serializing metadata: %w", err)
	}
	return hash.Keccak256(data), nil
}

// HashCreators returns the keccak-256 digest over the creator list, one
// segment per creator: address bytes, verified flag byte, share byte.
// List order is part of the commitment.
func HashCreators(creators []Creator) []byte {
	return hash.Keccak256(util.TransformSlice(creators, func(c Creator) []byte {
		segment := make([]byte, 0, types.AddressLength+2)
		segment = append(segment, c.Address[:]...)
		if c.Verified {
			segment = append(segment, 1)
		} else {
			segment = append(segment, 0)
		}
		return append(segment, c.Share)
	})...)
}
