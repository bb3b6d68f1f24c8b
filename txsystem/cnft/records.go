package cnft

import (
	"bytes"
	"fmt"

	"github.com/leafmint/leafmint-go/cbor"
	"github.com/leafmint/leafmint-go/hash"
	"github.com/leafmint/leafmint-go/leaf"
	"github.com/leafmint/leafmint-go/types"
	"github.com/leafmint/leafmint-go/types/hex"
	"github.com/leafmint/leafmint-go/util"
)

// TreeConfig is the administrative record of one commitment tree.
// Capacity is fixed when the tree is created, Minted only grows and
// never beyond Capacity.
type TreeConfig struct {
	_        struct{}      `cbor:",toarray"`
	Version  types.Version `json:"version"`
	Creator  types.Address `json:"creator"`         // principal that created the tree, immutable
	Delegate types.Address `json:"delegate"`        // approval authority, initially the creator
	Capacity uint64        `json:"capacity,string"` // fixed number of leaf positions
	Minted   uint64        `json:"minted,string"`   // leaves appended so far
}

// MintRequest tracks the mint allowance granted to one authority on
// one tree. Consumed never exceeds Approved and neither ever shrinks.
type MintRequest struct {
	_         struct{}      `cbor:",toarray"`
	Version   types.Version `json:"version"`
	Authority types.Address `json:"authority"`       // principal the allowance is granted to
	Approved  uint64        `json:"approved,string"` // total mints approved so far
	Consumed  uint64        `json:"consumed,string"` // mints performed against the approval
}

// Voucher holds the full contents of a leaf between its removal by a
// redeem and the resolution of that redeem. Root is the root the
// removal proof was verified against.
type Voucher struct {
	_       struct{}      `cbor:",toarray"`
	Version types.Version `json:"version"`
	Leaf    *leaf.Schema  `json:"leaf"`
	Index   uint64        `json:"index,string"`
	Root    hex.Bytes     `json:"root"`
}

func (c *TreeConfig) IsValid() error {
	if c == nil {
		return fmt.Errorf("tree record is nil")
	}
	if c.Creator.IsZero() {
		return fmt.Errorf("tree creator is missing")
	}
	if c.Capacity == 0 {
		return fmt.Errorf("tree capacity is zero")
	}
	if c.Minted > c.Capacity {
		return fmt.Errorf("minted count %d exceeds tree capacity %d", c.Minted, c.Capacity)
	}
	return nil
}

func (c *TreeConfig) Copy() *TreeConfig {
	if c == nil {
		return nil
	}
	cc := *c
	return &cc
}

func (c *TreeConfig) GetVersion() types.Version {
	if c == nil || c.Version == 0 {
		return 1
	}
	return c.Version
}

func (c *TreeConfig) MarshalCBOR() ([]byte, error) {
	type alias TreeConfig
	if c.Version == 0 {
		c.Version = c.GetVersion()
	}
	return cbor.MarshalTaggedValue(types.TreeConfigTag, (*alias)(c))
}

func (c *TreeConfig) UnmarshalCBOR(data []byte) error {
	type alias TreeConfig
	if err := cbor.UnmarshalTaggedValue(types.TreeConfigTag, data, (*alias)(c)); err != nil {
		return err
	}
	return types.EnsureVersion(c, c.Version, 1)
}

func (r *MintRequest) IsValid() error {
	if r == nil {
		return fmt.Errorf("mint request is nil")
	}
	if r.Authority.IsZero() {
		return fmt.Errorf("mint request authority is missing")
	}
	if r.Consumed > r.Approved {
		return fmt.Errorf("consumed count %d exceeds approved count %d", r.Consumed, r.Approved)
	}
	return nil
}

// Remaining returns how many mints the authority has left. A record
// that fails the consumed<=approved invariant counts as exhausted.
func (r *MintRequest) Remaining() uint64 {
	if r == nil {
		return 0
	}
	res, _ := util.SafeSub(r.Approved, r.Consumed)
	return res
}

func (r *MintRequest) Copy() *MintRequest {
	if r == nil {
		return nil
	}
	rc := *r
	return &rc
}

func (r *MintRequest) GetVersion() types.Version {
	if r == nil || r.Version == 0 {
		return 1
	}
	return r.Version
}

func (r *MintRequest) MarshalCBOR() ([]byte, error) {
	type alias MintRequest
	if r.Version == 0 {
		r.Version = r.GetVersion()
	}
	return cbor.MarshalTaggedValue(types.MintRequestTag, (*alias)(r))
}

func (r *MintRequest) UnmarshalCBOR(data []byte) error {
	type alias MintRequest
	if err := cbor.UnmarshalTaggedValue(types.MintRequestTag, data, (*alias)(r)); err != nil {
		return err
	}
	return types.EnsureVersion(r, r.Version, 1)
}

func (v *Voucher) IsValid() error {
	if v == nil {
		return fmt.Errorf("voucher is nil")
	}
	if err := v.Leaf.IsValid(); err != nil {
		return fmt.Errorf("invalid voucher leaf: %w", err)
	}
	if len(v.Root) != hash.Size {
		return fmt.Errorf("invalid voucher root length: expected %d, got %d", hash.Size, len(v.Root))
	}
	return nil
}

func (v *Voucher) Copy() *Voucher {
	if v == nil {
		return nil
	}
	return &Voucher{
		Version: v.Version,
		Leaf:    v.Leaf.Copy(),
		Index:   v.Index,
		Root:    bytes.Clone(v.Root),
	}
}

func (v *Voucher) GetVersion() types.Version {
	if v == nil || v.Version == 0 {
		return 1
	}
	return v.Version
}

func (v *Voucher) MarshalCBOR() ([]byte, error) {
	type alias Voucher
	if v.Version == 0 {
		v.Version = v.GetVersion()
	}
	return cbor.MarshalTaggedValue(types.VoucherTag, (*alias)(v))
}

func (v *Voucher) UnmarshalCBOR(data []byte) error {
	type alias Voucher
	if err := cbor.UnmarshalTaggedValue(types.VoucherTag, data, (*alias)(v)); err != nil {
		return err
	}
	return types.EnsureVersion(v, v.Version, 1)
}
