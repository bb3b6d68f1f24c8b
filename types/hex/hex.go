/*
Package hex implements hexadecimal encoding with the 0x prefix.
*/
package hex

import (
	"bytes"
	"encoding/hex"
	"fmt"
)

// Bytes is a byte slice that marshals to and from 0x-prefixed hex text.
type Bytes []byte

var prefix = []byte("0x")

func Encode(src []byte) []byte {
	dst := make([]byte, len(src)*2+2)
	copy(dst, prefix)
	hex.Encode(dst[2:], src)
	return dst
}

func Decode(src []byte) ([]byte, error) {
	if len(src) >= 2 && bytes.EqualFold(src[:2], prefix) {
		src = src[2:]
	}
	if len(src)%2 != 0 {
		return nil, fmt.Errorf("hex string of odd length %d", len(src))
	}
	dst := make([]byte, hex.DecodedLen(len(src)))
	if _, err := hex.Decode(dst, src); err != nil {
		return nil, err
	}
	return dst, nil
}

func (b Bytes) String() string {
	return string(Encode(b))
}

func (b Bytes) MarshalText() ([]byte, error) {
	return Encode(b), nil
}

func (b *Bytes) UnmarshalText(src []byte) error {
	res, err := Decode(src)
	if err == nil {
		*b = res
	}
	return err
}
