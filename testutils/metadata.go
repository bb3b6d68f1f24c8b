package testutils

import (
	"github.com/leafmint/leafmint-go/metadata"
	"github.com/leafmint/leafmint-go/types"
)

// DefaultArgs returns a valid metadata record with a single unverified
// creator holding the full share.
func DefaultArgs(creator types.Address) *metadata.MetadataArgs {
	return &metadata.MetadataArgs{
		Name:                 "Test Asset",
		Symbol:               "TEST",
		URI:                  "https://example.com/asset.json",
		SellerFeeBasisPoints: 500,
		IsMutable:            true,
		TokenStandard:        tokenStandard(metadata.TokenStandardNonFungible),
		TokenProgramVersion:  metadata.TokenProgramVersionOriginal,
		Creators: []metadata.Creator{
			{Address: creator, Share: 100},
		},
	}
}

// ArgsWithCreators returns a valid metadata record with the given
// creator list.
func ArgsWithCreators(creators ...metadata.Creator) *metadata.MetadataArgs {
	args := DefaultArgs(types.Address{})
	args.Creators = creators
	return args
}

func tokenStandard(s metadata.TokenStandard) *metadata.TokenStandard {
	return &s
}
