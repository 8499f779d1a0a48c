package metadata

import (
	"errors"
)

var (
	ErrInvalidProgram           = errors.New("invalid program id")
	ErrInvalidAccountData       = errors.New("unexpected account data")
	ErrInvalidInstructionData   = errors.New("unexpected instruction data")
	ErrInvalidSeeds             = errors.New("account does not match derived address")
	ErrMissingRequiredSignature = errors.New("missing required signature")
	ErrUninitializedAccount     = errors.New("account not initialized")
	ErrNotEnoughAccounts        = errors.New("not enough accounts")
)

// Namespace seeds combined with a mint to derive the registry's account
// addresses. One metadata account and at most one attributes account
// exist per mint.
var (
	MetadataSeed   = []byte("metadata")
	AttributesSeed = []byte("attributes")
)
