/*
Package metadata defines the descriptive record attached to a compressed
asset, its canonical hashing and the rules governing changes to it.
*/
package metadata

import (
	"strings"

	"github.com/leafmint/leafmint-go/types"
)

// Field limits. Committed hashes are computed over records that passed
// these limits, so the values are fixed for the lifetime of a tree.
const (
	MaxNameLength   = 32
	MaxSymbolLength = 10
	MaxURILength    = 200

	MaxCreatorLimit = 5

	MaxSellerFeeBasisPoints = 10000
)

type (
	TokenProgramVersion uint8
	TokenStandard       uint8
	UseMethod           uint8
)

const (
	TokenProgramVersionOriginal TokenProgramVersion = iota
	TokenProgramVersionToken2022
)

const (
	TokenStandardNonFungible TokenStandard = iota
	TokenStandardFungibleAsset
	TokenStandardFungible
	TokenStandardNonFungibleEdition
)

const (
	UseMethodBurn UseMethod = iota
	UseMethodMultiple
	UseMethodSingle
)

type (
	// MetadataArgs is the full descriptive record of one asset. The struct
	// field order is a compatibility contract: HashData serializes the
	// fields in declaration order with fixed-width optional encodings, so
	// reordering or retyping a field changes every committed hash.
	MetadataArgs struct {
		Name                 string              `json:"name"`                 // the name of the asset
		Symbol               string              `json:"symbol"`               // the symbol of the asset
		URI                  string              `json:"uri"`                  // URI of an external resource describing the asset
		SellerFeeBasisPoints uint16              `json:"sellerFeeBasisPoints"` // royalty basis points, 0..10000
		PrimarySaleHappened  bool                `json:"primarySaleHappened"`  // whether the first sale has occurred
		IsMutable            bool                `json:"isMutable"`            // whether the record may still be updated
		EditionNonce         *uint8              `json:"editionNonce"`         // optional edition nonce
		TokenStandard        *TokenStandard      `json:"tokenStandard"`        // optional token standard tag
		Collection           *Collection         `json:"collection"`           // optional collection membership
		Uses                 *Uses               `json:"uses"`                 // optional consumption record
		TokenProgramVersion  TokenProgramVersion `json:"tokenProgramVersion"`  // target token program for decompression
		Creators             []Creator           `json:"creators"`             // ordered creator list; order is part of the commitment
	}

	// Creator is one entry of the creator list.
	Creator struct {
		Address  types.Address `json:"address"`  // the creator's address
		Verified bool          `json:"verified"` // whether the creator has attested to this asset
		Share    uint8         `json:"share"`    // royalty share in percent, all shares sum to 100
	}

	// Collection is a reference to the collection the asset belongs to.
	Collection struct {
		Verified bool          `json:"verified"` // whether the membership has been attested by the collection authority
		Key      types.Address `json:"key"`      // the collection's address
	}

	// Uses tracks how many times the asset may still be used.
	Uses struct {
		UseMethod UseMethod `json:"useMethod"` // Burn, Multiple or Single
		Remaining uint64    `json:"remaining"` // uses left
		Total     uint64    `json:"total"`     // uses granted initially
	}
)

func (m *MetadataArgs) Copy() *MetadataArgs {
	if m == nil {
		return nil
	}
	c := &MetadataArgs{
		Name:                 strings.Clone(m.Name),
		Symbol:               strings.Clone(m.Symbol),
		URI:                  strings.Clone(m.URI),
		SellerFeeBasisPoints: m.SellerFeeBasisPoints,
		PrimarySaleHappened:  m.PrimarySaleHappened,
		IsMutable:            m.IsMutable,
		TokenProgramVersion:  m.TokenProgramVersion,
		Collection:           m.Collection.Copy(),
		Uses:                 m.Uses.Copy(),
	}
	if m.EditionNonce != nil {
		n := *m.EditionNonce
		c.EditionNonce = &n
	}
	if m.TokenStandard != nil {
		s := *m.TokenStandard
		c.TokenStandard = &s
	}
	if m.Creators != nil {
		c.Creators = make([]Creator, len(m.Creators))
		copy(c.Creators, m.Creators)
	}
	return c
}

func (c *Collection) Copy() *Collection {
	if c == nil {
		return nil
	}
	cc := *c
	return &cc
}

func (u *Uses) Copy() *Uses {
	if u == nil {
		return nil
	}
	uc := *u
	return &uc
}

// Eq reports whether two collection references are identical, both key
// and verified flag.
func (c *Collection) Eq(o *Collection) bool {
	if c == nil || o == nil {
		return c == o
	}
	return c.Verified == o.Verified && c.Key == o.Key
}
