package metadata

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/archmeta/token-metadata/pkg/solana"
)

// UpdateMetadataInstructionArgs carries the three-valued per-field
// update semantics: a nil field is left untouched, a non-nil field is
// validated and overwritten.
type UpdateMetadataInstructionArgs struct {
	Name        *string
	Symbol      *string
	Image       *string
	Description *string
}

type UpdateMetadataInstructionAccounts struct {
	Mint            ed25519.PublicKey
	UpdateAuthority ed25519.PublicKey
}

// NewUpdateMetadataInstruction builds an UpdateMetadata instruction.
//
// Accounts (strict order):
//  0. metadata account (writable)
//  1. update authority (readonly, signer)
func NewUpdateMetadataInstruction(
	program ed25519.PublicKey,
	accounts *UpdateMetadataInstructionAccounts,
	args *UpdateMetadataInstructionArgs,
) (solana.Instruction, error) {
	if err := ValidateOptionalMetadataFields(args.Name, args.Symbol, args.Image, args.Description); err != nil {
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
		solana.NewAccountMeta(metadataAddress, false),
		solana.NewReadonlyAccountMeta(accounts.UpdateAuthority, true),
	), nil
}

func (args *UpdateMetadataInstructionArgs) instructionType() InstructionType {
	return InstructionTypeUpdateMetadata
}

func (args *UpdateMetadataInstructionArgs) marshal() []byte {
	data := make([]byte, 1+
		optionalStringSize(args.Name)+
		optionalStringSize(args.Symbol)+
		optionalStringSize(args.Image)+
		optionalStringSize(args.Description))

	var offset int
	putInstructionType(data, InstructionTypeUpdateMetadata, &offset)
	putOptionalString(data, args.Name, &offset)
	putOptionalString(data, args.Symbol, &offset)
	putOptionalString(data, args.Image, &offset)
	putOptionalString(data, args.Description, &offset)

	return data
}

func unmarshalUpdateMetadataInstructionArgs(data []byte) (*UpdateMetadataInstructionArgs, error) {
	var args UpdateMetadataInstructionArgs
	var offset int
	if err := getOptionalString(data, &args.Name, &offset); err != nil {
		return nil, ErrInvalidInstructionData
	}
	if err := getOptionalString(data, &args.Symbol, &offset); err != nil {
		return nil, ErrInvalidInstructionData
	}
	if err := getOptionalString(data, &args.Image, &offset); err != nil {
		return nil, ErrInvalidInstructionData
	}
	if err := getOptionalString(data, &args.Description, &offset); err != nil {
		return nil, ErrInvalidInstructionData
	}
	if offset != len(data) {
		return nil, ErrInvalidInstructionData
	}
	return &args, nil
}
