package jwt

import (
	// Load the hash functions every shipped signer family relies on.
	_ "crypto/sha256"
	_ "crypto/sha512"
)

// Signer produces and checks a signature over arbitrary bytes. The
// message handed to Sign and Verify is always the byte concatenation
// of the encoded header segment, the separator, and the encoded
// payload segment, binding the signature to the exact wire bytes.
//
// Key material is bound at construction time; the engine never selects
// a signer from a token's self-declared algorithm name. Implementations
// must be stateless or safe for concurrent use across verifications.
type Signer interface {
	// Name identifies the algorithm and becomes the "alg" header value.
	Name() string

	// Sign produces a raw signature over message.
	Sign(message []byte) ([]byte, error)

	// Verify checks signature against message, returning
	// ErrSignatureInvalid on mismatch.
	Verify(signature, message []byte) error
}
