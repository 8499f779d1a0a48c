package metadata

import (
	"crypto/ed25519"

	"github.com/archmeta/token-metadata/pkg/solana/ledger"
)

// GetTokenMetadata loads and decodes the metadata record for a mint. A
// missing or never-initialized account reports ErrorMetadataNotFound.
func GetTokenMetadata(store *ledger.Store, program, mint ed25519.PublicKey) (*TokenMetadata, error) {
	address, _, err := GetMetadataAddress(program, &GetMetadataAddressArgs{
		Mint: mint,
	})
	if err != nil {
		return nil, err
	}

	account, ok := store.Load(address)
	if !ok || !account.IsOwnedBy(program) {
		return nil, ErrorMetadataNotFound
	}

	var record TokenMetadata
	if err := record.Unmarshal(account.Data); err != nil {
		if err == ErrUninitializedAccount {
			return nil, ErrorMetadataNotFound
		}
		return nil, err
	}
	return &record, nil
}

// GetTokenMetadataAttributes loads and decodes the attributes record
// for a mint. A missing or never-initialized account reports
// ErrorMetadataNotFound.
func GetTokenMetadataAttributes(store *ledger.Store, program, mint ed25519.PublicKey) (*TokenMetadataAttributes, error) {
	address, _, err := GetAttributesAddress(program, &GetAttributesAddressArgs{
		Mint: mint,
	})
	if err != nil {
		return nil, err
	}

	account, ok := store.Load(address)
	if !ok || !account.IsOwnedBy(program) {
		return nil, ErrorMetadataNotFound
	}

	var attributes TokenMetadataAttributes
	if err := attributes.Unmarshal(account.Data); err != nil {
		if err == ErrUninitializedAccount {
			return nil, ErrorMetadataNotFound
		}
		return nil, err
	}
	return &attributes, nil
}
