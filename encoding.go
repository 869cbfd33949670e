package jwt

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// maxSegmentLength bounds a single encoded segment to keep decoding
// cost predictable for untrusted input.
const maxSegmentLength = 4096

// Encoding is the bidirectional transform between a segment's raw byte
// form and its textual wire form. Encode and Decode must be exact
// inverses over the encoding's own outputs, otherwise parsed tokens
// cannot reproduce their input string.
//
// Implementations must be stateless or safe for concurrent use.
type Encoding interface {
	// Encode transforms raw bytes into the textual segment form.
	Encode(data []byte) string

	// Decode transforms a textual segment back into raw bytes. Input
	// outside the encoding's alphabet fails with ErrInvalidEncoding.
	Decode(segment string) ([]byte, error)
}

// Base64URL is the default production encoding: URL-safe base64 per
// RFC 4648 section 5, unpadded on encode, padding accepted on decode.
var Base64URL Encoding = base64URLEncoding{}

type base64URLEncoding struct{}

func (base64URLEncoding) Encode(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}

func (base64URLEncoding) Decode(segment string) ([]byte, error) {
	if len(segment) > maxSegmentLength {
		return nil, fmt.Errorf("%w: segment exceeds %d characters", ErrInvalidEncoding, maxSegmentLength)
	}

	// Tokens on the wire omit padding, but tolerate encoders that emit it.
	trimmed := strings.TrimRight(segment, "=")
	if !isValidBase64URL(trimmed) {
		return nil, fmt.Errorf("%w: character outside the base64url alphabet", ErrInvalidEncoding)
	}

	data, err := base64.RawURLEncoding.DecodeString(trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	return data, nil
}

// isValidBase64URL checks if string contains only valid base64url characters
func isValidBase64URL(s string) bool {
	for _, char := range s {
		if !((char >= 'A' && char <= 'Z') ||
			(char >= 'a' && char <= 'z') ||
			(char >= '0' && char <= '9') ||
			char == '-' || char == '_') {
			return false
		}
	}
	return true
}
