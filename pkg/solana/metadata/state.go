package metadata

import (
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
)

const (
	NameMaxLen        = 256
	SymbolMaxLen      = 16
	ImageMaxLen       = 512
	DescriptionMaxLen = 512

	MaxKeyLen     = 64
	MaxValueLen   = 240
	MaxAttributes = 32
)

// Accounts are allocated once at these worst-case sizes, so replacing a
// short field with a long one never requires a reallocation. The live
// record occupies a prefix of the buffer; the remainder stays zero.
const (
	MaxMetadataAccountSize = (1 + // is_initialized
		32 + // mint
		4 + NameMaxLen + // name
		4 + SymbolMaxLen + // symbol
		4 + ImageMaxLen + // image
		4 + DescriptionMaxLen + // description
		1 + 32) // update_authority

	MaxAttributesAccountSize = (1 + // is_initialized
		32 + // mint
		4 + // count
		MaxAttributes*(4+MaxKeyLen+4+MaxValueLen)) // entries
)

// TokenMetadata is the core descriptive record attached to a mint. At
// most one exists per mint, at the address derived from ("metadata", mint).
type TokenMetadata struct {
	// Whether the record has been written. An account whose first byte
	// is zero is uninitialized; this is the only absence sentinel.
	IsInitialized bool
	// The mint this record describes. Immutable after creation.
	Mint ed25519.PublicKey
	// The name of the token.
	Name string
	// The symbol of the token.
	Symbol string
	// The image URI for the token.
	Image string
	// The description of the token.
	Description string
	// The address allowed to mutate this record and its attributes.
	// A nil authority means the record is permanently immutable.
	UpdateAuthority ed25519.PublicKey
}

// Marshal serializes the record into a buffer of MaxMetadataAccountSize
// bytes. The encoding is compact and written at the front; the rest of
// the buffer is zero, so the same logical value always produces the
// same bytes.
func (obj *TokenMetadata) Marshal() []byte {
	data := make([]byte, MaxMetadataAccountSize)

	var offset int
	putBool(data, obj.IsInitialized, &offset)
	putKey(data, obj.Mint, &offset)
	putString(data, obj.Name, &offset)
	putString(data, obj.Symbol, &offset)
	putString(data, obj.Image, &offset)
	putString(data, obj.Description, &offset)
	putOptionalKey(data, obj.UpdateAuthority, &offset)

	return data
}

// Unmarshal reads a record back from an account buffer. Only as many
// bytes as the encoding declares are consumed; trailing zero padding up
// to the account's allocated size is ignored.
func (obj *TokenMetadata) Unmarshal(data []byte) error {
	if len(data) == 0 || data[0] == 0 {
		return ErrUninitializedAccount
	}

	var offset int
	if err := getBool(data, &obj.IsInitialized, &offset); err != nil {
		return ErrInvalidAccountData
	}
	if err := getKey(data, &obj.Mint, &offset); err != nil {
		return ErrInvalidAccountData
	}
	if err := getString(data, &obj.Name, &offset); err != nil {
		return ErrInvalidAccountData
	}
	if err := getString(data, &obj.Symbol, &offset); err != nil {
		return ErrInvalidAccountData
	}
	if err := getString(data, &obj.Image, &offset); err != nil {
		return ErrInvalidAccountData
	}
	if err := getString(data, &obj.Description, &offset); err != nil {
		return ErrInvalidAccountData
	}
	if err := getOptionalKey(data, &obj.UpdateAuthority, &offset); err != nil {
		return ErrInvalidAccountData
	}

	return nil
}

// IsMutable reports whether the record still has an update authority.
func (obj *TokenMetadata) IsMutable() bool {
	return obj.UpdateAuthority != nil
}

func (obj *TokenMetadata) String() string {
	updateAuthority := "none"
	if obj.UpdateAuthority != nil {
		updateAuthority = base58.Encode(obj.UpdateAuthority)
	}
	return fmt.Sprintf(
		"TokenMetadata{mint=%s,name=%q,symbol=%q,image=%q,description=%q,update_authority=%s}",
		base58.Encode(obj.Mint),
		obj.Name,
		obj.Symbol,
		obj.Image,
		obj.Description,
		updateAuthority,
	)
}

// Attribute is a single free-form key/value pair.
type Attribute struct {
	Key   string
	Value string
}

// TokenMetadataAttributes is the optional extensible record attached to
// a mint, at the address derived from ("attributes", mint). Entries keep
// their insertion order and duplicate keys are permitted; replacement is
// always wholesale.
type TokenMetadataAttributes struct {
	// Whether the record has been written.
	IsInitialized bool
	// The mint these attributes belong to. Always equals the associated
	// TokenMetadata record's mint.
	Mint ed25519.PublicKey
	// The ordered attribute entries.
	Data []Attribute
}

// Marshal serializes the record into a buffer of
// MaxAttributesAccountSize bytes, zero padded past the live encoding.
func (obj *TokenMetadataAttributes) Marshal() []byte {
	data := make([]byte, MaxAttributesAccountSize)

	var offset int
	putBool(data, obj.IsInitialized, &offset)
	putKey(data, obj.Mint, &offset)
	putUint32(data, uint32(len(obj.Data)), &offset)
	for _, attribute := range obj.Data {
		putString(data, attribute.Key, &offset)
		putString(data, attribute.Value, &offset)
	}

	return data
}

// Unmarshal reads a record back from an account buffer, ignoring
// trailing zero padding.
func (obj *TokenMetadataAttributes) Unmarshal(data []byte) error {
	if len(data) == 0 || data[0] == 0 {
		return ErrUninitializedAccount
	}

	var offset int
	if err := getBool(data, &obj.IsInitialized, &offset); err != nil {
		return ErrInvalidAccountData
	}
	if err := getKey(data, &obj.Mint, &offset); err != nil {
		return ErrInvalidAccountData
	}

	var count uint32
	if err := getUint32(data, &count, &offset); err != nil {
		return ErrInvalidAccountData
	}
	if count > MaxAttributes {
		return ErrInvalidAccountData
	}

	obj.Data = make([]Attribute, 0, count)
	for i := uint32(0); i < count; i++ {
		var attribute Attribute
		if err := getString(data, &attribute.Key, &offset); err != nil {
			return ErrInvalidAccountData
		}
		if err := getString(data, &attribute.Value, &offset); err != nil {
			return ErrInvalidAccountData
		}
		obj.Data = append(obj.Data, attribute)
	}

	return nil
}

func (obj *TokenMetadataAttributes) String() string {
	return fmt.Sprintf(
		"TokenMetadataAttributes{mint=%s,entries=%d}",
		base58.Encode(obj.Mint),
		len(obj.Data),
	)
}

// ValidateMetadataFields enforces the length caps on all core fields.
func ValidateMetadataFields(name, symbol, image, description string) error {
	if len(name) > NameMaxLen ||
		len(symbol) > SymbolMaxLen ||
		len(image) > ImageMaxLen ||
		len(description) > DescriptionMaxLen {
		return ErrorStringTooLong
	}
	return nil
}

// ValidateOptionalMetadataFields enforces the length caps on the fields
// that were supplied. A nil field means "leave untouched" and is always
// valid.
func ValidateOptionalMetadataFields(name, symbol, image, description *string) error {
	if name != nil && len(*name) > NameMaxLen {
		return ErrorStringTooLong
	}
	if symbol != nil && len(*symbol) > SymbolMaxLen {
		return ErrorStringTooLong
	}
	if image != nil && len(*image) > ImageMaxLen {
		return ErrorStringTooLong
	}
	if description != nil && len(*description) > DescriptionMaxLen {
		return ErrorStringTooLong
	}
	return nil
}

// ValidateAttributes enforces the pair count and per-entry constraints.
// Validation is all or nothing: one bad pair rejects the entire batch.
func ValidateAttributes(data []Attribute) error {
	if len(data) > MaxAttributes {
		return ErrorTooManyAttributes
	}
	for _, attribute := range data {
		if len(attribute.Key) == 0 || len(attribute.Value) == 0 {
			return ErrorInvalidInstructionData
		}
		if len(attribute.Key) > MaxKeyLen || len(attribute.Value) > MaxValueLen {
			return ErrorStringTooLong
		}
	}
	return nil
}
