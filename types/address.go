package types

import (
	"fmt"

	"github.com/leafmint/leafmint-go/cbor"
	"github.com/leafmint/leafmint-go/types/hex"
)

const AddressLength = 32

// Address is a 32 byte identifier of a principal (tree creator, delegate,
// owner, mint authority, creator) or of a derived object (tree, asset).
// Addresses are opaque to this module, the host decides how they are
// generated and how signatures over them are verified.
type Address [AddressLength]byte

func AddressFromBytes(b []byte) (Address, error) {
	var a Address
	if len(b) != AddressLength {
		return a, fmt.Errorf("invalid address length: expected %d, got %d", AddressLength, len(b))
	}
	copy(a[:], b)
	return a, nil
}

func ParseAddress(s string) (Address, error) {
	b, err := hex.Decode([]byte(s))
	if err != nil {
		return Address{}, fmt.Errorf("decoding address: %w", err)
	}
	return AddressFromBytes(b)
}

func (a Address) Bytes() []byte {
	return a[:]
}

func (a Address) IsZero() bool {
	return a == Address{}
}

func (a Address) String() string {
	return string(hex.Encode(a[:]))
}

func (a Address) MarshalText() ([]byte, error) {
	return hex.Encode(a[:]), nil
}

func (a *Address) UnmarshalText(src []byte) error {
	b, err := hex.Decode(src)
	if err != nil {
		return err
	}
	res, err := AddressFromBytes(b)
	if err != nil {
		return err
	}
	*a = res
	return nil
}

// MarshalCBOR encodes the address as a byte string so the encoding does
// not depend on how the CBOR library handles byte arrays.
func (a Address) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(a[:])
}

func (a *Address) UnmarshalCBOR(data []byte) error {
	var b []byte
	if err := cbor.Unmarshal(data, &b); err != nil {
		return err
	}
	res, err := AddressFromBytes(b)
	if err != nil {
		return err
	}
	*a = res
	return nil
}
