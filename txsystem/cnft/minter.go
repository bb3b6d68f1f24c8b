package cnft

import (
	"sync"

	"github.com/leafmint/leafmint-go/fault"
	"github.com/leafmint/leafmint-go/metadata"
	"github.com/leafmint/leafmint-go/types"
)

var ErrAssetMaterialized = fault.StateError("asset is already materialized")

// AssetBook is an in-memory AssetMinter that records every
// materialized asset and who received it. It stands in for an external
// token registry.
type AssetBook struct {
	mu     sync.Mutex
	assets map[types.Address]types.Address
}

func NewAssetBook() *AssetBook {
	return &AssetBook{assets: map[types.Address]types.Address{}}
}

func (b *AssetBook) MintOne(asset, recipient types.Address, args *metadata.MetadataArgs) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.assets[asset]; ok {
		return ErrAssetMaterialized
	}
	b.assets[asset] = recipient
	return nil
}

// Holder returns who the asset was materialized to.
func (b *AssetBook) Holder(asset types.Address) (types.Address, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	recipient, ok := b.assets[asset]
	return recipient, ok
}
