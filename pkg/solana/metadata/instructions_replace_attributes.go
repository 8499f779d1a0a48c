package metadata

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/archmeta/token-metadata/pkg/solana"
)

type ReplaceAttributesInstructionArgs struct {
	Data []Attribute
}

type ReplaceAttributesInstructionAccounts struct {
	Mint            ed25519.PublicKey
	UpdateAuthority ed25519.PublicKey
}

// NewReplaceAttributesInstruction builds a ReplaceAttributes
// instruction. The stored entry list is replaced wholesale; there is no
// merge.
//
// Accounts (strict order):
//  0. attributes account (writable)
//  1. update authority (readonly, signer)
//  2. metadata account (readonly)
func NewReplaceAttributesInstruction(
	program ed25519.PublicKey,
	accounts *ReplaceAttributesInstructionAccounts,
	args *ReplaceAttributesInstructionArgs,
) (solana.Instruction, error) {
	if err := ValidateAttributes(args.Data); err != nil {
		return solana.Instruction{}, err
	}

	metadataAddress, _, err := GetMetadataAddress(program, &GetMetadataAddressArgs{
		Mint: accounts.Mint,
	})
	if err != nil {
		return solana.Instruction{}, errors.Wrap(err, "failed to derive metadata address")
	}
	attributesAddress, _, err := GetAttributesAddress(program, &GetAttributesAddressArgs{
		Mint: accounts.Mint,
	})
	if err != nil {
		return solana.Instruction{}, errors.Wrap(err, "failed to derive attributes address")
	}

	return solana.NewInstruction(
		program,
		marshalAttributesInstruction(InstructionTypeReplaceAttributes, args.Data),
		solana.NewAccountMeta(attributesAddress, false),
		solana.NewReadonlyAccountMeta(accounts.UpdateAuthority, true),
		solana.NewReadonlyAccountMeta(metadataAddress, false),
	), nil
}

func (args *ReplaceAttributesInstructionArgs) instructionType() InstructionType {
	return InstructionTypeReplaceAttributes
}

func unmarshalReplaceAttributesInstructionArgs(data []byte) (*ReplaceAttributesInstructionArgs, error) {
	attributes, err := unmarshalAttributesInstructionPayload(data)
	if err != nil {
		return nil, err
	}
	return &ReplaceAttributesInstructionArgs{Data: attributes}, nil
}
