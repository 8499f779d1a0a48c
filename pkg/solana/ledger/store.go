package ledger

import (
	"bytes"
	"crypto/ed25519"
	"sync"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/archmeta/token-metadata/pkg/solana"
)

var (
	// ProgramKey is the address of the account-creation service. Programs
	// that request on-demand account creation reference it by this key.
	ProgramKey = ed25519.PublicKey(make([]byte, ed25519.PublicKeySize))

	ErrAccountNotFound          = errors.New("account not found")
	ErrAccountInUse             = errors.New("account already in use")
	ErrInvalidSeedSignature     = errors.New("address does not derive from provided seeds")
	ErrMissingRequiredSignature = errors.New("missing required signature")
	ErrInsufficientFunds        = errors.New("insufficient funds")
)

// Store is an in-memory account arena keyed by address. It serializes
// all access, so at most one instruction can observe or mutate a given
// account at a time. Atomicity of a failed instruction is the calling
// program's responsibility: it must not write to any account before all
// of its preconditions have been checked.
type Store struct {
	mu       sync.Mutex
	accounts map[string]*Account
}

// NewStore creates an empty account store.
func NewStore() *Store {
	return &Store{
		accounts: make(map[string]*Account),
	}
}

// Load returns the account at the provided address, if it exists.
func (s *Store) Load(address ed25519.PublicKey) (*Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[base58.Encode(address)]
	return account, ok
}

// SetAccount installs an account at the provided address, replacing
// whatever was there. Intended for bootstrapping externally-owned state
// (eg. token mints) that this store does not itself create.
func (s *Store) SetAccount(address ed25519.PublicKey, account *Account) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts[base58.Encode(address)] = account
}

// CreateFundedAccount creates a system-owned account holding the
// provided balance. Typically used to set up a payer.
func (s *Store) CreateFundedAccount(address ed25519.PublicKey, lamports uint64) *Account {
	account := &Account{
		Owner:    ProgramKey,
		Lamports: lamports,
	}
	s.SetAccount(address, account)
	return account
}

type EnsureAccountArgs struct {
	// The address the account must live at.
	Address ed25519.PublicKey
	// The program that will own the created account.
	Owner ed25519.PublicKey
	// Fixed allocation size of the account's data buffer.
	Size int
	// Seeds proving Address is derived from Owner. Creation of a
	// program-derived account is authorized by this seed signature
	// rather than a wallet signature.
	Seeds [][]byte
	// The funded account paying for the allocation. Must have signed.
	Payer ed25519.PublicKey
	// The invocation's signer set.
	Signers SignerSet
}

// EnsureAccount makes sure a program-owned account of the requested size
// exists at the derived address, creating and funding it if necessary.
// The call is idempotent: an account that already exists with the
// requested owner and size is left untouched.
func (s *Store) EnsureAccount(args *EnsureAccountArgs) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.accounts[base58.Encode(args.Address)]; ok {
		if existing.IsOwnedBy(args.Owner) && len(existing.Data) == args.Size {
			return nil
		}
		return ErrAccountInUse
	}

	// Seeds that don't hash to a valid program address can't authorize
	// anything either
	derived, err := solana.CreateProgramAddress(args.Owner, args.Seeds...)
	if err != nil || !bytes.Equal(derived, args.Address) {
		return ErrInvalidSeedSignature
	}

	if !args.Signers.Contains(args.Payer) {
		return ErrMissingRequiredSignature
	}

	payer, ok := s.accounts[base58.Encode(args.Payer)]
	if !ok {
		return ErrAccountNotFound
	}
	if payer.Lamports < MinAccountLamports {
		return ErrInsufficientFunds
	}

	payer.Lamports -= MinAccountLamports
	s.accounts[base58.Encode(args.Address)] = &Account{
		Owner:    args.Owner,
		Lamports: MinAccountLamports,
		Data:     make([]byte, args.Size),
	}
	return nil
}
