package metadata

import (
	"crypto/ed25519"
	"encoding/binary"

	"github.com/pkg/errors"
)

var errUnexpectedEndOfData = errors.New("unexpected end of data")

func putBool(dst []byte, v bool, offset *int) {
	if v {
		dst[*offset] = 1
	} else {
		dst[*offset] = 0
	}
	*offset += 1
}

func putKey(dst []byte, src ed25519.PublicKey, offset *int) {
	copy(dst[*offset:], src)
	*offset += ed25519.PublicKeySize
}

func putUint32(dst []byte, v uint32, offset *int) {
	binary.LittleEndian.PutUint32(dst[*offset:], v)
	*offset += 4
}

func putString(dst []byte, src string, offset *int) {
	putUint32(dst, uint32(len(src)), offset)
	copy(dst[*offset:], src)
	*offset += len(src)
}

func putOptionalKey(dst []byte, src ed25519.PublicKey, offset *int) {
	if len(src) > 0 {
		dst[*offset] = 1
		*offset += 1
		putKey(dst, src, offset)
	} else {
		dst[*offset] = 0
		*offset += 1
	}
}

func putOptionalString(dst []byte, src *string, offset *int) {
	if src != nil {
		dst[*offset] = 1
		*offset += 1
		putString(dst, *src, offset)
	} else {
		dst[*offset] = 0
		*offset += 1
	}
}

func getBool(src []byte, dst *bool, offset *int) error {
	if *offset+1 > len(src) {
		return errUnexpectedEndOfData
	}
	switch src[*offset] {
	case 0:
		*dst = false
	case 1:
		*dst = true
	default:
		return errors.Errorf("invalid bool value: %d", src[*offset])
	}
	*offset += 1
	return nil
}

func getKey(src []byte, dst *ed25519.PublicKey, offset *int) error {
	if *offset+ed25519.PublicKeySize > len(src) {
		return errUnexpectedEndOfData
	}
	*dst = make([]byte, ed25519.PublicKeySize)
	copy(*dst, src[*offset:])
	*offset += ed25519.PublicKeySize
	return nil
}

func getUint32(src []byte, dst *uint32, offset *int) error {
	if *offset+4 > len(src) {
		return errUnexpectedEndOfData
	}
	*dst = binary.LittleEndian.Uint32(src[*offset:])
	*offset += 4
	return nil
}

func getString(src []byte, dst *string, offset *int) error {
	var length uint32
	if err := getUint32(src, &length, offset); err != nil {
		return err
	}
	if *offset+int(length) > len(src) {
		return errUnexpectedEndOfData
	}
	*dst = string(src[*offset : *offset+int(length)])
	*offset += int(length)
	return nil
}

func getOptionalKey(src []byte, dst *ed25519.PublicKey, offset *int) error {
	var isSet bool
	if err := getBool(src, &isSet, offset); err != nil {
		return err
	}
	if !isSet {
		*dst = nil
		return nil
	}
	return getKey(src, dst, offset)
}

func getOptionalString(src []byte, dst **string, offset *int) error {
	var isSet bool
	if err := getBool(src, &isSet, offset); err != nil {
		return err
	}
	if !isSet {
		*dst = nil
		return nil
	}
	var value string
	if err := getString(src, &value, offset); err != nil {
		return err
	}
	*dst = &value
	return nil
}

func stringSize(v string) int {
	return 4 + len(v)
}

func optionalStringSize(v *string) int {
	if v == nil {
		return 1
	}
	return 1 + stringSize(*v)
}

func optionalKeySize(v ed25519.PublicKey) int {
	if len(v) == 0 {
		return 1
	}
	return 1 + ed25519.PublicKeySize
}
