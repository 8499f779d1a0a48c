package ledger

import (
	"bytes"
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
)

// MinAccountLamports is the rent floor charged to the payer whenever a
// new account is created.
const MinAccountLamports uint64 = 890_880

// Account is a single byte-addressable storage slot. Data is allocated
// once at creation and never resized.
type Account struct {
	// The program that owns this account. Only the owner may write Data.
	Owner ed25519.PublicKey
	// Funding balance backing the account's storage.
	Lamports uint64
	// The account's fixed-size data buffer.
	Data []byte
}

// IsOwnedBy reports whether the account is owned by the provided program.
func (a *Account) IsOwnedBy(program ed25519.PublicKey) bool {
	return bytes.Equal(a.Owner, program)
}

func (a *Account) String() string {
	return fmt.Sprintf(
		"Account{owner=%s,lamports=%d,size=%d}",
		base58.Encode(a.Owner),
		a.Lamports,
		len(a.Data),
	)
}
