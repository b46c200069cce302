// Package id generates the public identifiers used across the API:
// 32 lowercase hex characters, random, with no separators. Database
// rows keep their own numeric primary keys; these never leak out.
package id

import (
	"crypto/rand"
	"encoding/hex"
)

// NewID32 returns a fresh 32-character lowercase hex identifier.
func NewID32() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
