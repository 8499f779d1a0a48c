package metadata

import (
	"crypto/ed25519"

	"github.com/archmeta/token-metadata/pkg/solana"
)

type GetMetadataAddressArgs struct {
	Mint ed25519.PublicKey
}

// GetMetadataAddress derives the metadata account address for a mint.
// The derivation is a pure function of (program, "metadata", mint).
func GetMetadataAddress(program ed25519.PublicKey, args *GetMetadataAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		program,
		MetadataSeed,
		args.Mint,
	)
}

type GetAttributesAddressArgs struct {
	Mint ed25519.PublicKey
}

// GetAttributesAddress derives the attributes account address for a mint.
func GetAttributesAddress(program ed25519.PublicKey, args *GetAttributesAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		program,
		AttributesSeed,
		args.Mint,
	)
}
