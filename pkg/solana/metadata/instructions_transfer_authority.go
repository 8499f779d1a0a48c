package metadata

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/archmeta/token-metadata/pkg/solana"
)

type TransferAuthorityInstructionArgs struct {
	NewAuthority ed25519.PublicKey
}

type TransferAuthorityInstructionAccounts struct {
	Mint             ed25519.PublicKey
	CurrentAuthority ed25519.PublicKey
}

// NewTransferAuthorityInstruction builds a TransferAuthority
// instruction. The new authority's identity is not validated; it does
// not need to sign.
//
// Accounts (strict order):
//  0. metadata account (writable)
//  1. current update authority (readonly, signer)
func NewTransferAuthorityInstruction(
	program ed25519.PublicKey,
	accounts *TransferAuthorityInstructionAccounts,
	args *TransferAuthorityInstructionArgs,
) (solana.Instruction, error) {
	if len(args.NewAuthority) != ed25519.PublicKeySize {
		return solana.Instruction{}, ErrInvalidInstructionData
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
		solana.NewReadonlyAccountMeta(accounts.CurrentAuthority, true),
	), nil
}

func (args *TransferAuthorityInstructionArgs) instructionType() InstructionType {
	return InstructionTypeTransferAuthority
}

func (args *TransferAuthorityInstructionArgs) marshal() []byte {
	data := make([]byte, 1+ed25519.PublicKeySize)

	var offset int
	putInstructionType(data, InstructionTypeTransferAuthority, &offset)
	putKey(data, args.NewAuthority, &offset)

	return data
}

func unmarshalTransferAuthorityInstructionArgs(data []byte) (*TransferAuthorityInstructionArgs, error) {
	if len(data) != ed25519.PublicKeySize {
		return nil, ErrInvalidInstructionData
	}

	var args TransferAuthorityInstructionArgs
	var offset int
	if err := getKey(data, &args.NewAuthority, &offset); err != nil {
		return nil, ErrInvalidInstructionData
	}
	return &args, nil
}
