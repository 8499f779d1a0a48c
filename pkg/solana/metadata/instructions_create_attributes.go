package metadata

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/archmeta/token-metadata/pkg/solana"
	"github.com/archmeta/token-metadata/pkg/solana/ledger"
)

type CreateAttributesInstructionArgs struct {
	Data []Attribute
}

type CreateAttributesInstructionAccounts struct {
	Payer           ed25519.PublicKey
	Mint            ed25519.PublicKey
	UpdateAuthority ed25519.PublicKey
}

// NewCreateAttributesInstruction builds a CreateAttributes instruction.
//
// Accounts (strict order):
//  0. payer (writable, signer)
//  1. account-creation service (readonly)
//  2. mint (readonly)
//  3. attributes account (writable)
//  4. update authority (readonly, signer)
//  5. metadata account (readonly)
func NewCreateAttributesInstruction(
	program ed25519.PublicKey,
	accounts *CreateAttributesInstructionAccounts,
	args *CreateAttributesInstructionArgs,
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
		marshalAttributesInstruction(InstructionTypeCreateAttributes, args.Data),
		solana.NewAccountMeta(accounts.Payer, true),
		solana.NewReadonlyAccountMeta(ledger.ProgramKey, false),
		solana.NewReadonlyAccountMeta(accounts.Mint, false),
		solana.NewAccountMeta(attributesAddress, false),
		solana.NewReadonlyAccountMeta(accounts.UpdateAuthority, true),
		solana.NewReadonlyAccountMeta(metadataAddress, false),
	), nil
}

func (args *CreateAttributesInstructionArgs) instructionType() InstructionType {
	return InstructionTypeCreateAttributes
}

func marshalAttributesInstruction(instructionType InstructionType, attributes []Attribute) []byte {
	size := 1 + 4
	for _, attribute := range attributes {
		size += stringSize(attribute.Key) + stringSize(attribute.Value)
	}

	data := make([]byte, size)

	var offset int
	putInstructionType(data, instructionType, &offset)
	putUint32(data, uint32(len(attributes)), &offset)
	for _, attribute := range attributes {
		putString(data, attribute.Key, &offset)
		putString(data, attribute.Value, &offset)
	}

	return data
}

func unmarshalAttributesInstructionPayload(data []byte) ([]Attribute, error) {
	var offset int
	var count uint32
	if err := getUint32(data, &count, &offset); err != nil {
		return nil, ErrInvalidInstructionData
	}

	// An entry takes at least 8 bytes, so a hostile count can't force a
	// large allocation without the data to back it.
	if int(count) > (len(data)-offset)/8 {
		return nil, ErrInvalidInstructionData
	}

	attributes := make([]Attribute, 0, count)
	for i := uint32(0); i < count; i++ {
		var attribute Attribute
		if err := getString(data, &attribute.Key, &offset); err != nil {
			return nil, ErrInvalidInstructionData
		}
		if err := getString(data, &attribute.Value, &offset); err != nil {
			return nil, ErrInvalidInstructionData
		}
		attributes = append(attributes, attribute)
	}
	if offset != len(data) {
		return nil, ErrInvalidInstructionData
	}
	return attributes, nil
}

func unmarshalCreateAttributesInstructionArgs(data []byte) (*CreateAttributesInstructionArgs, error) {
	attributes, err := unmarshalAttributesInstructionPayload(data)
	if err != nil {
		return nil, err
	}
	return &CreateAttributesInstructionArgs{Data: attributes}, nil
}
