package metadata

import (
	"bytes"
	"crypto/ed25519"

	"github.com/sirupsen/logrus"

	"github.com/archmeta/token-metadata/pkg/solana"
	"github.com/archmeta/token-metadata/pkg/solana/ledger"
	"github.com/archmeta/token-metadata/pkg/solana/token"
)

// Processor executes metadata instructions against an account store.
//
// Every handler checks all of an operation's preconditions before its
// first write, so a failed instruction leaves every account
// byte-for-byte unchanged. The processor holds no cross-invocation
// state beyond its configuration.
type Processor struct {
	log            *logrus.Entry
	store          *ledger.Store
	programID      ed25519.PublicKey
	tokenProgramID ed25519.PublicKey
}

// NewProcessor creates a processor for the program deployed at
// programID, describing mints owned by the default token program.
func NewProcessor(store *ledger.Store, programID ed25519.PublicKey) *Processor {
	return NewProcessorWithTokenProgram(store, programID, token.ProgramKey)
}

// NewProcessorWithTokenProgram creates a processor whose mints are
// owned by a non-default token program. Useful for running multiple
// registries side by side.
func NewProcessorWithTokenProgram(store *ledger.Store, programID, tokenProgramID ed25519.PublicKey) *Processor {
	return &Processor{
		log:            logrus.StandardLogger().WithField("type", "solana/metadata/processor"),
		store:          store,
		programID:      programID,
		tokenProgramID: tokenProgramID,
	}
}

// Process executes a single instruction. Any returned error aborts the
// instruction with no partial effect.
func (p *Processor) Process(ixn solana.Instruction, signers ledger.SignerSet) error {
	if !bytes.Equal(ixn.Program, p.programID) {
		return ErrInvalidProgram
	}

	instruction, err := UnpackInstruction(ixn.Data)
	if err != nil {
		return err
	}

	return instruction.process(p, &instructionContext{
		accounts: ixn.Accounts,
		signers:  signers,
	})
}

// instructionContext carries the per-invocation ambient inputs: the
// strictly-ordered account references and the signer set.
type instructionContext struct {
	accounts []solana.AccountMeta
	signers  ledger.SignerSet
}

func (ctx *instructionContext) requireAccounts(n int) error {
	if len(ctx.accounts) < n {
		return ErrNotEnoughAccounts
	}
	return nil
}

// isSigner reports whether the referenced account was flagged as a
// signer and actually signed the invocation.
func (ctx *instructionContext) isSigner(meta solana.AccountMeta) bool {
	return meta.IsSigner && ctx.signers.Contains(meta.PublicKey)
}

func (args *CreateMetadataInstructionArgs) process(p *Processor, ctx *instructionContext) error {
	log := p.log.WithField("method", "CreateMetadata")

	if err := ctx.requireAccounts(5); err != nil {
		return err
	}
	payer := ctx.accounts[0]
	creationService := ctx.accounts[1]
	mintAccount := ctx.accounts[2]
	metadataAccount := ctx.accounts[3]
	authority := ctx.accounts[4]

	mint, err := p.loadMint(mintAccount.PublicKey)
	if err != nil {
		log.WithError(err).Info("mint rejected")
		return err
	}

	resolvedAuthority, err := resolveMintAuthority(mint, authority.PublicKey)
	if err != nil {
		log.Info("signer does not match any mint authority")
		return err
	}
	if !ctx.isSigner(authority) {
		log.Info("mint authority did not sign")
		return ErrorInvalidAuthority
	}

	expectedAddress, bump, err := GetMetadataAddress(p.programID, &GetMetadataAddressArgs{
		Mint: mintAccount.PublicKey,
	})
	if err != nil {
		return err
	}
	if !bytes.Equal(expectedAddress, metadataAccount.PublicKey) {
		log.Info("metadata account does not match derived address")
		return ErrInvalidSeeds
	}

	if err := ValidateMetadataFields(args.Name, args.Symbol, args.Image, args.Description); err != nil {
		return err
	}

	account, ok := p.store.Load(metadataAccount.PublicKey)
	if !ok || !account.IsOwnedBy(p.programID) {
		if !bytes.Equal(creationService.PublicKey, ledger.ProgramKey) {
			return ErrInvalidProgram
		}
		if !ctx.isSigner(payer) {
			return ErrMissingRequiredSignature
		}

		err = p.store.EnsureAccount(&ledger.EnsureAccountArgs{
			Address: metadataAccount.PublicKey,
			Owner:   p.programID,
			Size:    MaxMetadataAccountSize,
			Seeds:   [][]byte{MetadataSeed, mintAccount.PublicKey, {bump}},
			Payer:   payer.PublicKey,
			Signers: ctx.signers,
		})
		if err != nil {
			log.WithError(err).Warn("failure creating metadata account")
			return err
		}

		account, _ = p.store.Load(metadataAccount.PublicKey)
	}

	if len(account.Data) != MaxMetadataAccountSize {
		return ErrInvalidAccountData
	}
	if account.Data[0] != 0 {
		return ErrorMetadataAlreadyExists
	}

	record := &TokenMetadata{
		IsInitialized:   true,
		Mint:            mintAccount.PublicKey,
		Name:            args.Name,
		Symbol:          args.Symbol,
		Image:           args.Image,
		Description:     args.Description,
		UpdateAuthority: resolvedAuthority,
	}
	if args.Immutable {
		record.UpdateAuthority = nil
	}

	copy(account.Data, record.Marshal())
	return nil
}

func (args *UpdateMetadataInstructionArgs) process(p *Processor, ctx *instructionContext) error {
	log := p.log.WithField("method", "UpdateMetadata")

	if err := ctx.requireAccounts(2); err != nil {
		return err
	}
	metadataAccount := ctx.accounts[0]
	authority := ctx.accounts[1]

	account, record, err := p.loadInitializedMetadata(metadataAccount.PublicKey)
	if err != nil {
		return err
	}

	if err := requireUpdateAuthority(record, authority, ctx); err != nil {
		log.Info("update authority rejected")
		return err
	}

	if err := ValidateOptionalMetadataFields(args.Name, args.Symbol, args.Image, args.Description); err != nil {
		return err
	}

	if args.Name != nil {
		record.Name = *args.Name
	}
	if args.Symbol != nil {
		record.Symbol = *args.Symbol
	}
	if args.Image != nil {
		record.Image = *args.Image
	}
	if args.Description != nil {
		record.Description = *args.Description
	}

	copy(account.Data, record.Marshal())
	return nil
}

func (args *CreateAttributesInstructionArgs) process(p *Processor, ctx *instructionContext) error {
	log := p.log.WithField("method", "CreateAttributes")

	if err := ctx.requireAccounts(6); err != nil {
		return err
	}
	payer := ctx.accounts[0]
	creationService := ctx.accounts[1]
	mintAccount := ctx.accounts[2]
	attributesAccount := ctx.accounts[3]
	authority := ctx.accounts[4]
	metadataAccount := ctx.accounts[5]

	if !ctx.isSigner(authority) {
		return ErrMissingRequiredSignature
	}

	expectedAddress, bump, err := GetAttributesAddress(p.programID, &GetAttributesAddressArgs{
		Mint: mintAccount.PublicKey,
	})
	if err != nil {
		return err
	}
	if !bytes.Equal(expectedAddress, attributesAccount.PublicKey) {
		log.Info("attributes account does not match derived address")
		return ErrInvalidSeeds
	}

	_, record, err := p.loadInitializedMetadata(metadataAccount.PublicKey)
	if err != nil {
		return err
	}
	if !bytes.Equal(record.Mint, mintAccount.PublicKey) {
		log.Info("metadata record describes a different mint")
		return ErrInvalidAccountData
	}

	if err := requireUpdateAuthority(record, authority, ctx); err != nil {
		log.Info("update authority rejected")
		return err
	}

	if err := ValidateAttributes(args.Data); err != nil {
		return err
	}

	account, ok := p.store.Load(attributesAccount.PublicKey)
	if !ok || !account.IsOwnedBy(p.programID) {
		if !bytes.Equal(creationService.PublicKey, ledger.ProgramKey) {
			return ErrInvalidProgram
		}
		if !ctx.isSigner(payer) {
			return ErrMissingRequiredSignature
		}

		err = p.store.EnsureAccount(&ledger.EnsureAccountArgs{
			Address: attributesAccount.PublicKey,
			Owner:   p.programID,
			Size:    MaxAttributesAccountSize,
			Seeds:   [][]byte{AttributesSeed, mintAccount.PublicKey, {bump}},
			Payer:   payer.PublicKey,
			Signers: ctx.signers,
		})
		if err != nil {
			log.WithError(err).Warn("failure creating attributes account")
			return err
		}

		account, _ = p.store.Load(attributesAccount.PublicKey)
	}

	if len(account.Data) != MaxAttributesAccountSize {
		return ErrInvalidAccountData
	}
	if account.Data[0] != 0 {
		return ErrorMetadataAlreadyExists
	}

	attributes := &TokenMetadataAttributes{
		IsInitialized: true,
		Mint:          mintAccount.PublicKey,
		Data:          args.Data,
	}

	copy(account.Data, attributes.Marshal())
	return nil
}

func (args *ReplaceAttributesInstructionArgs) process(p *Processor, ctx *instructionContext) error {
	log := p.log.WithField("method", "ReplaceAttributes")

	if err := ctx.requireAccounts(3); err != nil {
		return err
	}
	attributesAccount := ctx.accounts[0]
	authority := ctx.accounts[1]
	metadataAccount := ctx.accounts[2]

	_, record, err := p.loadInitializedMetadata(metadataAccount.PublicKey)
	if err != nil {
		return err
	}

	if err := requireUpdateAuthority(record, authority, ctx); err != nil {
		log.Info("update authority rejected")
		return err
	}

	// The attributes address is recomputed from the metadata record's
	// own mint, so a caller can never point this instruction at another
	// mint's attributes account.
	expectedAddress, _, err := GetAttributesAddress(p.programID, &GetAttributesAddressArgs{
		Mint: record.Mint,
	})
	if err != nil {
		return err
	}
	if !bytes.Equal(expectedAddress, attributesAccount.PublicKey) {
		log.Info("attributes account does not match derived address")
		return ErrInvalidSeeds
	}

	account, ok := p.store.Load(attributesAccount.PublicKey)
	if !ok {
		return ledger.ErrAccountNotFound
	}
	if !account.IsOwnedBy(p.programID) {
		return ErrInvalidAccountData
	}

	var attributes TokenMetadataAttributes
	if err := attributes.Unmarshal(account.Data); err != nil {
		return err
	}

	if err := ValidateAttributes(args.Data); err != nil {
		return err
	}

	attributes.Data = args.Data
	copy(account.Data, attributes.Marshal())
	return nil
}

func (args *TransferAuthorityInstructionArgs) process(p *Processor, ctx *instructionContext) error {
	log := p.log.WithField("method", "TransferAuthority")

	if err := ctx.requireAccounts(2); err != nil {
		return err
	}
	metadataAccount := ctx.accounts[0]
	authority := ctx.accounts[1]

	account, record, err := p.loadInitializedMetadata(metadataAccount.PublicKey)
	if err != nil {
		return err
	}

	if err := requireUpdateAuthority(record, authority, ctx); err != nil {
		log.Info("update authority rejected")
		return err
	}

	record.UpdateAuthority = args.NewAuthority
	copy(account.Data, record.Marshal())
	return nil
}

func (args *MakeImmutableInstructionArgs) process(p *Processor, ctx *instructionContext) error {
	log := p.log.WithField("method", "MakeImmutable")

	if err := ctx.requireAccounts(2); err != nil {
		return err
	}
	metadataAccount := ctx.accounts[0]
	authority := ctx.accounts[1]

	account, record, err := p.loadInitializedMetadata(metadataAccount.PublicKey)
	if err != nil {
		return err
	}

	if err := requireUpdateAuthority(record, authority, ctx); err != nil {
		log.Info("update authority rejected")
		return err
	}

	record.UpdateAuthority = nil
	copy(account.Data, record.Marshal())
	return nil
}

// loadMint reads and validates the mint account the metadata will
// describe. The mint must be owned by the token program and
// initialized under it.
func (p *Processor) loadMint(address ed25519.PublicKey) (*token.Mint, error) {
	account, ok := p.store.Load(address)
	if !ok || !account.IsOwnedBy(p.tokenProgramID) {
		return nil, ErrorInvalidMint
	}

	var mint token.Mint
	if !mint.Unmarshal(account.Data) {
		return nil, ErrInvalidAccountData
	}
	if !mint.IsInitialized {
		return nil, ErrorInvalidMint
	}
	return &mint, nil
}

// resolveMintAuthority matches a candidate signer against a mint's
// declared authorities: the mint authority when one exists, otherwise
// the freeze authority. A mint with neither can never have metadata
// created for it.
func resolveMintAuthority(mint *token.Mint, candidate ed25519.PublicKey) (ed25519.PublicKey, error) {
	if len(mint.MintAuthority) > 0 {
		if !bytes.Equal(mint.MintAuthority, candidate) {
			return nil, ErrorInvalidAuthority
		}
		return mint.MintAuthority, nil
	}

	if len(mint.FreezeAuthority) > 0 {
		if !bytes.Equal(mint.FreezeAuthority, candidate) {
			return nil, ErrorInvalidAuthority
		}
		return mint.FreezeAuthority, nil
	}

	return nil, ErrorInvalidAuthority
}

func (p *Processor) loadInitializedMetadata(address ed25519.PublicKey) (*ledger.Account, *TokenMetadata, error) {
	account, ok := p.store.Load(address)
	if !ok {
		return nil, nil, ledger.ErrAccountNotFound
	}
	if !account.IsOwnedBy(p.programID) {
		return nil, nil, ErrInvalidAccountData
	}

	var record TokenMetadata
	if err := record.Unmarshal(account.Data); err != nil {
		return nil, nil, err
	}
	return account, &record, nil
}

// requireUpdateAuthority enforces the mutate-path authority policy: the
// record must still be mutable, and its update authority must have
// signed the invocation.
func requireUpdateAuthority(record *TokenMetadata, authority solana.AccountMeta, ctx *instructionContext) error {
	if !ctx.isSigner(authority) {
		return ErrMissingRequiredSignature
	}
	if record.UpdateAuthority == nil {
		return ErrorInvalidAuthority
	}
	if !bytes.Equal(record.UpdateAuthority, authority.PublicKey) {
		return ErrorInvalidAuthority
	}
	return nil
}
