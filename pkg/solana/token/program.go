package token

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"
)

// ProgramKey is the address of the token program whose mints the
// metadata registry describes. The registry only ever reads mint
// accounts owned by this program; it never touches balances.
var ProgramKey = ed25519.PublicKey(mustBase58Decode("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"))

func mustBase58Decode(value string) []byte {
	decoded, err := base58.Decode(value)
	if err != nil {
		panic(err)
	}
	return decoded
}
