// Package shared holds helpers for handling signing secrets.
package shared

import (
	"crypto/rand"
	"encoding/hex"
)

// RandomHex returns size random bytes encoded as hex, so the result is
// 2*size characters long.
func RandomHex(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Wipe zeroes b in place. A nil slice is ignored.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
