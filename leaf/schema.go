/*
Package leaf defines the record committed into a commitment tree for one
compressed asset, its identity derivation and its hashing.
*/
package leaf

import (
	"fmt"

	"github.com/leafmint/leafmint-go/hash"
	"github.com/leafmint/leafmint-go/types"
	"github.com/leafmint/leafmint-go/types/hex"
	"github.com/leafmint/leafmint-go/util"
)

// Version tags the hash layout of a leaf. Everything committed so far
// uses V1; a new version means a new layout, never a changed one.
type Version uint8

const V1 Version = 1

// Schema is the full state of one compressed asset. Only its hash is
// committed into the tree; the record itself travels with every
// operation and is never stored by this module outside of vouchers.
// ID and Nonce are fixed at mint, the other fields change over the
// asset's life.
type Schema struct {
	_           struct{}      `cbor:",toarray"`
	Version     Version       `json:"version"`
	ID          types.Address `json:"id"`
	Owner       types.Address `json:"owner"`
	Delegate    types.Address `json:"delegate"`
	Nonce       uint64        `json:"nonce"`
	DataHash    hex.Bytes     `json:"dataHash"`
	CreatorHash hex.Bytes     `json:"creatorHash"`
}

// asset ids are derived from this seed, the tree and the mint counter
const idSeed = "asset"

// NewID derives the identifier of the asset minted as leaf number nonce
// of the given tree. The id depends only on the mint position, not on
// the asset's contents.
func NewID(tree types.Address, nonce uint64) types.Address {
	id, _ := types.AddressFromBytes(hash.Keccak256([]byte(idSeed), tree[:], util.Uint64ToLEBytes(nonce)))
	return id
}

func New(tree, owner, delegate types.Address, nonce uint64, dataHash, creatorHash []byte) *Schema {
	return &Schema{
		Version:     V1,
		ID:          NewID(tree, nonce),
		Owner:       owner,
		Delegate:    delegate,
		Nonce:       nonce,
		DataHash:    dataHash,
		CreatorHash: creatorHash,
	}
}

// Hash returns the 32 byte digest committed into the tree for this leaf:
// keccak-256 over the version byte, id, owner, delegate, nonce as 8
// little-endian bytes, data hash and creator hash, each written as its
// own segment.
func (s *Schema) Hash() []byte {
	return hash.Keccak256(
		[]byte{byte(s.Version)},
		s.ID[:],
		s.Owner[:],
		s.Delegate[:],
		util.Uint64ToLEBytes(s.Nonce),
		s.DataHash,
		s.CreatorHash,
	)
}

func (s *Schema) IsValid() error {
	if s == nil {
		return fmt.Errorf("leaf schema is nil")
	}
	if s.Version != V1 {
		return fmt.Errorf("unsupported schema version %d", s.Version)
	}
	if len(s.DataHash) != hash.Size {
		return fmt.Errorf("invalid data hash length: expected %d, got %d", hash.Size, len(s.DataHash))
	}
	if len(s.CreatorHash) != hash.Size {
		return fmt.Errorf("invalid creator hash length: expected %d, got %d", hash.Size, len(s.CreatorHash))
	}
	return nil
}

func (s *Schema) Copy() *Schema {
	if s == nil {
		return nil
	}
	c := *s
	c.DataHash = append(hex.Bytes(nil), s.DataHash...)
	c.CreatorHash = append(hex.Bytes(nil), s.CreatorHash...)
	return &c
}
