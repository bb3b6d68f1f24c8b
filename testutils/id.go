package testutils

import (
	"crypto/rand"
	"testing"

	"github.com/leafmint/leafmint-go/types"
)

// RandomAddress generates a random principal or tree address.
func RandomAddress(t *testing.T) types.Address {
	var a types.Address
	if err := Random(a[:]); err != nil {
		t.Fatal("failed to generate address:", err)
	}
	return a
}

// RandomBytes generates n random bytes.
func RandomBytes(t *testing.T, n int) []byte {
	buf := make([]byte, n)
	if err := Random(buf); err != nil {
		t.Fatal("failed to generate random bytes:", err)
	}
	return buf
}

/*
Random fills the buf with random bytes.
*/
func Random(buf []byte) error {
	_, err := rand.Read(buf)
	return err
}
