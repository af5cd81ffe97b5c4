// Package gitlib wraps the libgit2 bindings behind a small, explicit API.
// Callers own the lifetime of every returned object and release it with Free.
package gitlib

import (
	"encoding/hex"
	"strings"

	git2go "github.com/libgit2/git2go/v34"
)

const (
	// HashSize is the size of a SHA-1 hash in bytes.
	HashSize = 20
	// ShortHashLen is the number of hex digits in an abbreviated hash.
	ShortHashLen = 7
)

// Hash is a git object hash (SHA-1).
type Hash [HashSize]byte

// NewHash parses a hex string into a Hash. Input shorter than a full hash
// fills the leading bytes; invalid hex yields the zero hash.
func NewHash(s string) Hash {
	var h Hash

	if len(s) > 2*HashSize {
		s = s[:2*HashSize]
	}

	if len(s)%2 == 1 {
		s += "0"
	}

	raw, err := hex.DecodeString(s)
	if err != nil {
		return Hash{}
	}

	copy(h[:], raw)

	return h
}

// HashFromOid converts a libgit2 Oid to a Hash.
func HashFromOid(oid *git2go.Oid) Hash {
	var h Hash
	copy(h[:], oid[:])

	return h
}

// ToOid converts the Hash back to a libgit2 Oid.
func (h Hash) ToOid() *git2go.Oid {
	oid := new(git2go.Oid)
	copy(oid[:], h[:])

	return oid
}

// String returns the full hex representation.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// Short returns the abbreviated hex representation.
func (h Hash) Short() string {
	return h.String()[:ShortHashLen]
}

// HasPrefix reports whether the hex representation starts with prefix.
// Matching is case-insensitive since git accepts either case.
func (h Hash) HasPrefix(prefix string) bool {
	return strings.HasPrefix(h.String(), strings.ToLower(prefix))
}

// IsZero reports whether the hash is all zeros.
func (h Hash) IsZero() bool {
	return h == Hash{}
}
