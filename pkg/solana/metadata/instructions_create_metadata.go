package metadata

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/archmeta/token-metadata/pkg/solana"
	"github.com/archmeta/token-metadata/pkg/solana/ledger"
)

type CreateMetadataInstructionArgs struct {
	Name        string
	Symbol      string
	Image       string
	Description string
	// If true, the record is created without an update authority and
	// can never be mutated.
	Immutable bool
}

type CreateMetadataInstructionAccounts struct {
	Payer ed25519.PublicKey
	Mint  ed25519.PublicKey
	// The mint's mint authority, or its freeze authority when the mint
	// authority has been cleared.
	MintOrFreezeAuthority ed25519.PublicKey
}

// NewCreateMetadataInstruction builds a CreateMetadata instruction.
//
// Accounts (strict order):
//  0. payer (writable, signer)
//  1. account-creation service (readonly)
//  2. mint (readonly)
//  3. metadata account (writable)
//  4. mint or freeze authority (readonly, signer)
func NewCreateMetadataInstruction(
	program ed25519.PublicKey,
	accounts *CreateMetadataInstructionAccounts,
	args *CreateMetadataInstructionArgs,
) (solana.Instruction, error) {
	if err := ValidateMetadataFields(args.Name, args.Symbol, args.Image, args.Description); err != nil {
		return solana.Instruction{}, err
	}

	metadataAddress, _, err := GetMetadataAddress(program, &GetMetadataAddressArgs{
		Mint: accounts.Mint,
	})
	if err != nil {
		return solana.Instruction{}, errors.Wrap(err, "failed to derive metadata address")
	}

	return solana.NewInstruction(
		program,
		args.marshal(),
		solana.NewAccountMeta(accounts.Payer, true),
		solana.NewReadonlyAccountMeta(ledger.ProgramKey, false),
		solana.NewReadonlyAccountMeta(accounts.Mint, false),
		solana.NewAccountMeta(metadataAddress, false),
		solana.NewReadonlyAccountMeta(accounts.MintOrFreezeAuthority, true),
	), nil
}

func (args *CreateMetadataInstructionArgs) instructionType() InstructionType {
	return InstructionTypeCreateMetadata
}

func (args *CreateMetadataInstructionArgs) marshal() []byte {
	data := make([]byte, 1+
		stringSize(args.Name)+
		stringSize(args.Symbol)+
		stringSize(args.Image)+
		stringSize(args.Description)+
		1)

	var offset int
	putInstructionType(data, InstructionTypeCreateMetadata, &offset)
	putString(data, args.Name, &offset)
	putString(data, args.Symbol, &offset)
	putString(data, args.Image, &offset)
	putString(data, args.Description, &offset)
	putBool(data, args.Immutable, &offset)

	return data
}

func unmarshalCreateMetadataInstructionArgs(data []byte) (*CreateMetadataInstructionArgs, error) {
	var args CreateMetadataInstructionArgs
	var offset int
	if err := getString(data, &args.Name, &offset); err != nil {
		return nil, ErrInvalidInstructionData
	}
	if err := getString(data, &args.Symbol, &offset); err != nil {
		return nil, ErrInvalidInstructionData
	}
	if err := getString(data, &args.Image, &offset); err != nil {
		return nil, ErrInvalidInstructionData
	}
	if err := getString(data, &args.Description, &offset); err != nil {
		return nil, ErrInvalidInstructionData
	}
	if err := getBool(data, &args.Immutable, &offset); err != nil {
		return nil, ErrInvalidInstructionData
	}
	if offset != len(data) {
		return nil, ErrInvalidInstructionData
	}
	return &args, nil
}
