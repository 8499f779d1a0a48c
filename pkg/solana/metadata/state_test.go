package metadata

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archmeta/token-metadata/pkg/pointer"
	"github.com/archmeta/token-metadata/pkg/testutil"
)

func TestTokenMetadata_RoundTrip(t *testing.T) {
	keys := testutil.GenerateSolanaKeys(t, 2)

	original := &TokenMetadata{
		IsInitialized:   true,
		Mint:            keys[0],
		Name:            "My Token",
		Symbol:          "MYTKN",
		Image:           "https://example.com/image.png",
		Description:     "A token for testing",
		UpdateAuthority: keys[1],
	}

	marshalled := original.Marshal()
	require.Len(t, marshalled, MaxMetadataAccountSize)

	var unmarshalled TokenMetadata
	require.NoError(t, unmarshalled.Unmarshal(marshalled))
	assert.Equal(t, original, &unmarshalled)
	assert.True(t, unmarshalled.IsMutable())
}

func TestTokenMetadata_RoundTrip_Immutable(t *testing.T) {
	keys := testutil.GenerateSolanaKeys(t, 1)

	original := &TokenMetadata{
		IsInitialized: true,
		Mint:          keys[0],
		Name:          "Frozen Token",
		Symbol:        "FRZN",
		Image:         "https://example.com/frozen.png",
		Description:   "No update authority",
	}

	var unmarshalled TokenMetadata
	require.NoError(t, unmarshalled.Unmarshal(original.Marshal()))
	assert.Equal(t, original, &unmarshalled)
	assert.False(t, unmarshalled.IsMutable())
}

func TestTokenMetadata_RoundTrip_MaxLengthFields(t *testing.T) {
	keys := testutil.GenerateSolanaKeys(t, 2)

	original := &TokenMetadata{
		IsInitialized:   true,
		Mint:            keys[0],
		Name:            strings.Repeat("n", NameMaxLen),
		Symbol:          strings.Repeat("s", SymbolMaxLen),
		Image:           strings.Repeat("i", ImageMaxLen),
		Description:     strings.Repeat("d", DescriptionMaxLen),
		UpdateAuthority: keys[1],
	}

	marshalled := original.Marshal()
	require.Len(t, marshalled, MaxMetadataAccountSize)

	var unmarshalled TokenMetadata
	require.NoError(t, unmarshalled.Unmarshal(marshalled))
	assert.Equal(t, original, &unmarshalled)
}

func TestTokenMetadata_Marshal_Deterministic(t *testing.T) {
	keys := testutil.GenerateSolanaKeys(t, 2)

	record := &TokenMetadata{
		IsInitialized:   true,
		Mint:            keys[0],
		Name:            "My Token",
		Symbol:          "MYTKN",
		Image:           "https://example.com/image.png",
		Description:     "A token for testing",
		UpdateAuthority: keys[1],
	}

	assert.Equal(t, record.Marshal(), record.Marshal())
}

func TestTokenMetadata_Marshal_ZeroPadded(t *testing.T) {
	keys := testutil.GenerateSolanaKeys(t, 2)

	record := &TokenMetadata{
		IsInitialized:   true,
		Mint:            keys[0],
		Name:            "short",
		Symbol:          "S",
		Image:           "i",
		Description:     "d",
		UpdateAuthority: keys[1],
	}

	marshalled := record.Marshal()

	liveSize := 1 + 32 +
		stringSize(record.Name) +
		stringSize(record.Symbol) +
		stringSize(record.Image) +
		stringSize(record.Description) +
		optionalKeySize(record.UpdateAuthority)
	for i := liveSize; i < len(marshalled); i++ {
		require.Zero(t, marshalled[i])
	}
}

func TestTokenMetadata_Unmarshal_Uninitialized(t *testing.T) {
	var record TokenMetadata
	assert.Equal(t, ErrUninitializedAccount, record.Unmarshal(make([]byte, MaxMetadataAccountSize)))
	assert.Equal(t, ErrUninitializedAccount, record.Unmarshal(nil))
}

func TestTokenMetadata_Unmarshal_Truncated(t *testing.T) {
	keys := testutil.GenerateSolanaKeys(t, 2)

	record := &TokenMetadata{
		IsInitialized:   true,
		Mint:            keys[0],
		Name:            "My Token",
		Symbol:          "MYTKN",
		Image:           "https://example.com/image.png",
		Description:     "A token for testing",
		UpdateAuthority: keys[1],
	}

	marshalled := record.Marshal()

	var unmarshalled TokenMetadata
	assert.Equal(t, ErrInvalidAccountData, unmarshalled.Unmarshal(marshalled[:40]))
}

func TestTokenMetadataAttributes_RoundTrip(t *testing.T) {
	keys := testutil.GenerateSolanaKeys(t, 1)

	original := &TokenMetadataAttributes{
		IsInitialized: true,
		Mint:          keys[0],
		Data: []Attribute{
			{Key: AttributeKeyWebsite, Value: "https://example.com"},
			{Key: AttributeKeyTwitter, Value: "https://x.com/example"},
			{Key: "custom", Value: "anything"},
			{Key: "custom", Value: "duplicates are allowed"},
		},
	}

	marshalled := original.Marshal()
	require.Len(t, marshalled, MaxAttributesAccountSize)

	var unmarshalled TokenMetadataAttributes
	require.NoError(t, unmarshalled.Unmarshal(marshalled))
	assert.Equal(t, original, &unmarshalled)
}

func TestTokenMetadataAttributes_RoundTrip_Empty(t *testing.T) {
	keys := testutil.GenerateSolanaKeys(t, 1)

	original := &TokenMetadataAttributes{
		IsInitialized: true,
		Mint:          keys[0],
		Data:          []Attribute{},
	}

	var unmarshalled TokenMetadataAttributes
	require.NoError(t, unmarshalled.Unmarshal(original.Marshal()))
	assert.Equal(t, original, &unmarshalled)
}

func TestTokenMetadataAttributes_RoundTrip_MaxSize(t *testing.T) {
	keys := testutil.GenerateSolanaKeys(t, 1)

	original := &TokenMetadataAttributes{
		IsInitialized: true,
		Mint:          keys[0],
	}
	for i := 0; i < MaxAttributes; i++ {
		original.Data = append(original.Data, Attribute{
			Key:   strings.Repeat("k", MaxKeyLen),
			Value: strings.Repeat("v", MaxValueLen),
		})
	}

	marshalled := original.Marshal()
	require.Len(t, marshalled, MaxAttributesAccountSize)

	var unmarshalled TokenMetadataAttributes
	require.NoError(t, unmarshalled.Unmarshal(marshalled))
	assert.Equal(t, original, &unmarshalled)
}

func TestTokenMetadataAttributes_Unmarshal_Uninitialized(t *testing.T) {
	var attributes TokenMetadataAttributes
	assert.Equal(t, ErrUninitializedAccount, attributes.Unmarshal(make([]byte, MaxAttributesAccountSize)))
}

func TestTokenMetadataAttributes_Unmarshal_CountTooLarge(t *testing.T) {
	keys := testutil.GenerateSolanaKeys(t, 1)

	data := (&TokenMetadataAttributes{
		IsInitialized: true,
		Mint:          keys[0],
	}).Marshal()

	// Count field sits after is_initialized and the mint
	data[33] = MaxAttributes + 1

	var attributes TokenMetadataAttributes
	assert.Equal(t, ErrInvalidAccountData, attributes.Unmarshal(data))
}

func TestValidateMetadataFields(t *testing.T) {
	assert.NoError(t, ValidateMetadataFields("name", "SYM", "image", "description"))
	assert.NoError(t, ValidateMetadataFields(
		strings.Repeat("n", NameMaxLen),
		strings.Repeat("s", SymbolMaxLen),
		strings.Repeat("i", ImageMaxLen),
		strings.Repeat("d", DescriptionMaxLen),
	))

	assert.Equal(t, ErrorStringTooLong, ValidateMetadataFields(strings.Repeat("n", NameMaxLen+1), "SYM", "", ""))
	assert.Equal(t, ErrorStringTooLong, ValidateMetadataFields("name", strings.Repeat("s", SymbolMaxLen+1), "", ""))
	assert.Equal(t, ErrorStringTooLong, ValidateMetadataFields("name", "SYM", strings.Repeat("i", ImageMaxLen+1), ""))
	assert.Equal(t, ErrorStringTooLong, ValidateMetadataFields("name", "SYM", "", strings.Repeat("d", DescriptionMaxLen+1)))
}

func TestValidateOptionalMetadataFields(t *testing.T) {
	assert.NoError(t, ValidateOptionalMetadataFields(nil, nil, nil, nil))
	assert.NoError(t, ValidateOptionalMetadataFields(pointer.String("name"), nil, nil, nil))
	assert.NoError(t, ValidateOptionalMetadataFields(nil, nil, nil, pointer.String(strings.Repeat("d", DescriptionMaxLen))))

	assert.Equal(t, ErrorStringTooLong, ValidateOptionalMetadataFields(pointer.String(strings.Repeat("n", NameMaxLen+1)), nil, nil, nil))
	assert.Equal(t, ErrorStringTooLong, ValidateOptionalMetadataFields(nil, pointer.String(strings.Repeat("s", SymbolMaxLen+1)), nil, nil))
	assert.Equal(t, ErrorStringTooLong, ValidateOptionalMetadataFields(nil, nil, pointer.String(strings.Repeat("i", ImageMaxLen+1)), nil))
	assert.Equal(t, ErrorStringTooLong, ValidateOptionalMetadataFields(nil, nil, nil, pointer.String(strings.Repeat("d", DescriptionMaxLen+1))))
}

func TestValidateAttributes(t *testing.T) {
	assert.NoError(t, ValidateAttributes(nil))
	assert.NoError(t, ValidateAttributes([]Attribute{
		{Key: "k", Value: "v"},
		{Key: strings.Repeat("k", MaxKeyLen), Value: strings.Repeat("v", MaxValueLen)},
	}))

	atCap := make([]Attribute, MaxAttributes)
	for i := range atCap {
		atCap[i] = Attribute{Key: "k", Value: "v"}
	}
	assert.NoError(t, ValidateAttributes(atCap))
	assert.Equal(t, ErrorTooManyAttributes, ValidateAttributes(append(atCap, Attribute{Key: "k", Value: "v"})))

	assert.Equal(t, ErrorInvalidInstructionData, ValidateAttributes([]Attribute{{Key: "", Value: "v"}}))
	assert.Equal(t, ErrorInvalidInstructionData, ValidateAttributes([]Attribute{{Key: "k", Value: ""}}))
	assert.Equal(t, ErrorStringTooLong, ValidateAttributes([]Attribute{{Key: strings.Repeat("k", MaxKeyLen+1), Value: "v"}}))
	assert.Equal(t, ErrorStringTooLong, ValidateAttributes([]Attribute{{Key: "k", Value: strings.Repeat("v", MaxValueLen+1)}}))
}
