package hash

import (
	"bytes"

	"github.com/ethereum/go-ethereum/crypto"
)

// Size of all digests produced by this package, in bytes.
const Size = 32

// Zero32 is the hash committed at tree positions holding no leaf, either
// never used or emptied by a burn or redeem.
var Zero32 = make([]byte, Size)

// Keccak256 returns the keccak-256 digest of the given segments. Segments
// are written to the hash in order; the digest equals the digest of their
// concatenation.
func Keccak256(segments ...[]byte) []byte {
	return crypto.Keccak256(segments...)
}

// IsZero reports whether h is the empty-position hash.
func IsZero(h []byte) bool {
	return bytes.Equal(h, Zero32)
}
