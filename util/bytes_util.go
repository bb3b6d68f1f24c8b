package util

import (
	"encoding/binary"
)

// Uint64ToLEBytes returns n as 8 little-endian bytes.
func Uint64ToLEBytes(n uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, n)
	return b
}
