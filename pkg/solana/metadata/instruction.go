package metadata

// InstructionType is the one-byte discriminant leading every
// instruction's data.
type InstructionType uint8

const (
	InstructionTypeCreateMetadata InstructionType = iota
	InstructionTypeUpdateMetadata
	InstructionTypeCreateAttributes
	InstructionTypeReplaceAttributes
	InstructionTypeTransferAuthority
	InstructionTypeMakeImmutable
)

// Instruction is implemented by each operation's argument type. Every
// variant owns its payload and its handler; UnpackInstruction selects
// the variant from the leading discriminant.
type Instruction interface {
	instructionType() InstructionType
	process(p *Processor, ctx *instructionContext) error
}

// UnpackInstruction parses raw instruction data into its tagged variant.
func UnpackInstruction(data []byte) (Instruction, error) {
	if len(data) == 0 {
		return nil, ErrInvalidInstructionData
	}

	payload := data[1:]
	switch InstructionType(data[0]) {
	case InstructionTypeCreateMetadata:
		return unmarshalCreateMetadataInstructionArgs(payload)
	case InstructionTypeUpdateMetadata:
		return unmarshalUpdateMetadataInstructionArgs(payload)
	case InstructionTypeCreateAttributes:
		return unmarshalCreateAttributesInstructionArgs(payload)
	case InstructionTypeReplaceAttributes:
		return unmarshalReplaceAttributesInstructionArgs(payload)
	case InstructionTypeTransferAuthority:
		return unmarshalTransferAuthorityInstructionArgs(payload)
	case InstructionTypeMakeImmutable:
		return unmarshalMakeImmutableInstructionArgs(payload)
	}
	return nil, ErrInvalidInstructionData
}

func putInstructionType(dst []byte, v InstructionType, offset *int) {
	dst[*offset] = uint8(v)
	*offset += 1
}
