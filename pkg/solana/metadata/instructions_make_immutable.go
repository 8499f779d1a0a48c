package metadata

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/archmeta/token-metadata/pkg/solana"
)

type MakeImmutableInstructionArgs struct {
}

type MakeImmutableInstructionAccounts struct {
	Mint             ed25519.PublicKey
	CurrentAuthority ed25519.PublicKey
}

// NewMakeImmutableInstruction builds a MakeImmutable instruction.
// Revoking the update authority is irreversible: no operation can ever
// restore it.
//
// Accounts (strict order):
//  0. metadata account (writable)
//  1. current update authority (readonly, signer)
func NewMakeImmutableInstruction(
	program ed25519.PublicKey,
	accounts *MakeImmutableInstructionAccounts,
	args *MakeImmutableInstructionArgs,
) (solana.Instruction, error) {
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
		solana.NewReadonlyAccountMeta(accounts.CurrentAuthority, true),
	), nil
}

func (args *MakeImmutableInstructionArgs) instructionType() InstructionType {
	return InstructionTypeMakeImmutable
}

func (args *MakeImmutableInstructionArgs) marshal() []byte {
	data := make([]byte, 1)

	var offset int
	putInstructionType(data, InstructionTypeMakeImmutable, &offset)

	return data
}

func unmarshalMakeImmutableInstructionArgs(data []byte) (*MakeImmutableInstructionArgs, error) {
	if len(data) != 0 {
		return nil, ErrInvalidInstructionData
	}
	return &MakeImmutableInstructionArgs{}, nil
}
