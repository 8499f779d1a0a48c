package ledger

import (
	"bytes"
	"crypto/ed25519"
)

// SignerSet is the set of addresses that cryptographically signed the
// current invocation. Programs use it to verify that a caller-supplied
// authority actually authorized the call, beyond mere key equality.
type SignerSet []ed25519.PublicKey

// NewSignerSet creates a SignerSet from the provided keys.
func NewSignerSet(keys ...ed25519.PublicKey) SignerSet {
	return SignerSet(keys)
}

// Contains reports whether the provided key signed the invocation.
func (s SignerSet) Contains(key ed25519.PublicKey) bool {
	for _, signer := range s {
		if bytes.Equal(signer, key) {
			return true
		}
	}
	return false
}
