package metadata

// Error is the numerical error returned by the metadata program.
type Error uint32

const (
	ErrorInvalidMint Error = iota
	ErrorMetadataAlreadyExists
	ErrorMetadataNotFound
	ErrorInvalidAuthority
	ErrorInvalidInstructionData
	ErrorStringTooLong
	ErrorTooManyAttributes
)

func (e Error) Error() string {
	switch e {
	case ErrorInvalidMint:
		return "invalid mint"
	case ErrorMetadataAlreadyExists:
		return "metadata already exists"
	case ErrorMetadataNotFound:
		return "metadata not found"
	case ErrorInvalidAuthority:
		return "invalid authority"
	case ErrorInvalidInstructionData:
		return "invalid instruction data"
	case ErrorStringTooLong:
		return "string too long"
	case ErrorTooManyAttributes:
		return "too many attributes"
	}
	return "unknown metadata error"
}
