package core

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// RowKey is the canonical comparable key of one dataset row, used for
// duplicate detection. Equal rows always produce equal keys.
type RowKey Hash

// NewRowKey hashes a canonical row serialization into a RowKey
func NewRowKey(data []byte) RowKey { return RowKey(NewHash(data)) }

// String returns the string representation
func (k RowKey) String() string { return Hash(k).String() }
