package cnft

import (
	"github.com/leafmint/leafmint-go/leaf"
	"github.com/leafmint/leafmint-go/metadata"
	"github.com/leafmint/leafmint-go/tree/cmt"
	"github.com/leafmint/leafmint-go/types"
)

// Operation parameters. A leaf is never stored by the registry, so
// every operation on an existing leaf carries its full current
// contents (or the metadata they were hashed from) together with the
// position and a sibling path against the current root.
type (
	CreateTreeParams struct {
		_     struct{}      `cbor:",toarray"`
		Tree  types.Address // address of the new tree
		Depth uint32        // fixed depth, the tree commits to 2^depth leaf positions
	}

	SetTreeDelegateParams struct {
		_           struct{} `cbor:",toarray"`
		Tree        types.Address
		NewDelegate types.Address // the new approval authority of the tree
	}

	CreateMintRequestParams struct {
		_         struct{} `cbor:",toarray"`
		Tree      types.Address
		Authority types.Address // principal the request is created for
		Capacity  uint64        // initial approved capacity, zero when not specified
	}

	ApproveMintRequestParams struct {
		_         struct{} `cbor:",toarray"`
		Tree      types.Address
		Authority types.Address // principal whose request the approval raises
		Delta     uint64        // number of additional mints to approve
	}

	MintParams struct {
		_         struct{} `cbor:",toarray"`
		Tree      types.Address
		Recipient types.Address          // owner of the new leaf
		Delegate  types.Address          // optional, defaults to the recipient
		Args      *metadata.MetadataArgs // full metadata of the new asset
	}

	TransferParams struct {
		_        struct{} `cbor:",toarray"`
		Tree     types.Address
		Index    uint64       // position of the leaf in the tree
		Leaf     *leaf.Schema // current contents of the leaf
		NewOwner types.Address
		Proof    *cmt.Proof // sibling path of the leaf against the current root
	}

	DelegateParams struct {
		_           struct{} `cbor:",toarray"`
		Tree        types.Address
		Index       uint64
		Leaf        *leaf.Schema
		NewDelegate types.Address // optional, a zero address resets the delegate to the owner
		Proof       *cmt.Proof
	}

	BurnParams struct {
		_     struct{} `cbor:",toarray"`
		Tree  types.Address
		Index uint64
		Leaf  *leaf.Schema
		Proof *cmt.Proof
	}

	RedeemParams struct {
		_     struct{} `cbor:",toarray"`
		Tree  types.Address
		Index uint64
		Leaf  *leaf.Schema
		Proof *cmt.Proof
	}

	CancelRedeemParams struct {
		_     struct{} `cbor:",toarray"`
		Tree  types.Address
		Nonce uint64     // mint nonce of the redeemed leaf, identifies the voucher
		Proof *cmt.Proof // sibling path of the emptied position against the current root
	}

	DecompressParams struct {
		_     struct{} `cbor:",toarray"`
		Tree  types.Address
		Nonce uint64
		Args  *metadata.MetadataArgs // full metadata, must hash to the voucher's committed hashes
	}

	CreatorVerificationParams struct {
		_        struct{} `cbor:",toarray"`
		Tree     types.Address
		Index    uint64
		Owner    types.Address // current owner of the leaf
		Delegate types.Address // current delegate of the leaf
		Nonce    uint64
		Args     *metadata.MetadataArgs // current metadata, source of the committed hashes
		Creator  types.Address          // the creator whose verified flag changes
		Proof    *cmt.Proof
	}

	UpdateMetadataParams struct {
		_        struct{} `cbor:",toarray"`
		Tree     types.Address
		Index    uint64
		Owner    types.Address
		Delegate types.Address
		Nonce    uint64
		OldArgs  *metadata.MetadataArgs // current metadata
		NewArgs  *metadata.MetadataArgs // proposed replacement
		Proof    *cmt.Proof
	}
)
